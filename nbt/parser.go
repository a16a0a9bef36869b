package nbt

import (
	"encoding/binary"

	"github.com/mcserver-go/mcserver/internal/xsync"
)

// Parser owns a tape built by [Parse] together with the source buffer it was
// built from and the three (plus, here, array) memoizing caches described in
// the data model: a key, once populated by the first access, never changes
// value, so concurrent readers racing on the same tape index converge on the
// identical materialization.
//
// A Parser is safe for concurrent read access once constructed; nothing
// about it is ever mutated except by populating these caches.
type Parser struct {
	src     []byte
	tape    []tapeEntry
	network bool

	strings    xsync.Map[int, string]
	lists      xsync.Map[int, []Value]
	compounds  xsync.Map[int, map[string]Value]
	byteArrays xsync.Map[int, []int8]
	intArrays  xsync.Map[int, []int32]
	longArrays xsync.Map[int, []int64]
}

// Parse scans src once and builds a tape over it. network selects "network
// NBT" framing, in which the root compound carries no name, as opposed to
// "file" framing, in which it does.
func Parse(src []byte, network bool) (*Parser, error) {
	tape, err := buildTape(src, network)
	if err != nil {
		return nil, err
	}
	return &Parser{src: src, tape: tape, network: network}, nil
}

// Root returns a node bound to the tape's root compound, tape index 0.
func (p *Parser) Root() Node {
	return Node{p: p, ok: true, v: p.valueAt(0)}
}

// successor returns the tape index immediately following the value at idx:
// idx+1 for scalars, arrays, and strings, or one past the matching End entry
// for Compound and List, skipping their body in O(1) via the jump link
// stashed in the payload word at construction time.
func (p *Parser) successor(idx int) int {
	e := &p.tape[idx]
	if e.tag.IsContainer() {
		return int(e.payload) + 1
	}
	return idx + 1
}

// valueAt builds a Value handle for the tape entry at idx.
func (p *Parser) valueAt(idx int) Value {
	e := &p.tape[idx]
	v := Value{tag: e.tag, tapeIndex: idx}
	if e.tag.IsScalar() {
		v.scalar = e.payload
	}
	return v
}

// entryName decodes the name of the tape entry at idx, which must be a
// non-list-item entry (the only kind of entry that carries a name on the
// wire).
func (p *Parser) entryName(idx int) string {
	e := &p.tape[idx]
	start := int(e.sourcePos) + 3
	return decodeModifiedUTF8(p.src[start : start+int(e.nameLen)])
}

// compoundChildren returns, building and caching it on first access, the
// name-to-value map for the compound at tape index idx. Duplicate names
// collapse to the first occurrence encountered during the single linear
// scan of the compound's direct children.
func (p *Parser) compoundChildren(idx int) map[string]Value {
	m, _ := p.compounds.LoadOrStore(idx, func() map[string]Value {
		out := make(map[string]Value)
		end := int(p.tape[idx].payload)
		for i := idx + 1; i < end; i = p.successor(i) {
			name := p.entryName(i)
			if _, exists := out[name]; exists {
				continue
			}
			out[name] = p.valueAt(i)
		}
		return out
	})
	return m
}

// listChildren returns, building and caching it on first access, the
// in-order slice of child value handles for the list at tape index idx.
func (p *Parser) listChildren(idx int) []Value {
	v, _ := p.lists.LoadOrStore(idx, func() []Value {
		end := int(p.tape[idx].payload)
		out := make([]Value, 0, end-idx-1)
		for i := idx + 1; i < end; i = p.successor(i) {
			out = append(out, p.valueAt(i))
		}
		return out
	})
	return v
}

// stringAt returns, decoding and caching it on first access, the UTF-8 text
// of the String entry at tape index idx.
func (p *Parser) stringAt(idx int) string {
	s, _ := p.strings.LoadOrStore(idx, func() string {
		e := &p.tape[idx]
		start := e.payloadPos()
		n := int(e.payload)
		return decodeModifiedUTF8(p.src[start : start+n])
	})
	return s
}

func (p *Parser) byteArraySlice(idx int) []int8 {
	s, _ := p.byteArrays.LoadOrStore(idx, func() []int8 {
		e := &p.tape[idx]
		n := int(e.payload)
		start := e.payloadPos()
		out := make([]int8, n)
		for i := range out {
			out[i] = int8(p.src[start+i])
		}
		return out
	})
	return s
}

func (p *Parser) intArraySlice(idx int) []int32 {
	s, _ := p.intArrays.LoadOrStore(idx, func() []int32 {
		e := &p.tape[idx]
		n := int(e.payload)
		start := e.payloadPos()
		out := make([]int32, n)
		for i := range out {
			out[i] = int32(binary.BigEndian.Uint32(p.src[start+i*4:]))
		}
		return out
	})
	return s
}

func (p *Parser) longArraySlice(idx int) []int64 {
	s, _ := p.longArrays.LoadOrStore(idx, func() []int64 {
		e := &p.tape[idx]
		n := int(e.payload)
		start := e.payloadPos()
		out := make([]int64, n)
		for i := range out {
			out[i] = int64(binary.BigEndian.Uint64(p.src[start+i*8:]))
		}
		return out
	})
	return s
}

// byteArrayElement decodes a single element of the ByteArray at tape index
// idx directly from the source buffer, without populating or consulting the
// array cache — the fast path for one-off indexed reads.
func (p *Parser) byteArrayElement(idx, i int) (int8, bool) {
	e := &p.tape[idx]
	if i < 0 || i >= int(e.payload) {
		return 0, false
	}
	pos := e.payloadPos() + i
	return int8(p.src[pos]), true
}

func (p *Parser) intArrayElement(idx, i int) (int32, bool) {
	e := &p.tape[idx]
	if i < 0 || i >= int(e.payload) {
		return 0, false
	}
	pos := e.payloadPos() + i*4
	return int32(binary.BigEndian.Uint32(p.src[pos:])), true
}

func (p *Parser) longArrayElement(idx, i int) (int64, bool) {
	e := &p.tape[idx]
	if i < 0 || i >= int(e.payload) {
		return 0, false
	}
	pos := e.payloadPos() + i*8
	return int64(binary.BigEndian.Uint64(p.src[pos:])), true
}
