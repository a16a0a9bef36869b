package nbt

import (
	"encoding/binary"
)

// tapeEntry is one fixed-size record of the flat tape built by [Parse].
//
// sourcePos is the offset of the byte at which this entry's own iteration
// began: for a named entry that is the tag byte; for a list item (which has
// no tag byte or name on the wire, since both are implied by the enclosing
// list) it is already the start of the payload.
//
// payload is tag-dependent: the scalar bits for Byte..Double, the element or
// byte count for the array/String kinds, and for Compound/List the tape
// index of the matching End entry (End entries carry the reverse link, the
// index of their opening Compound/List).
type tapeEntry struct {
	tag        Tag
	isListItem bool
	nameLen    uint16
	sourcePos  uint32
	payload    uint64
}

// payloadPos returns the offset in the source buffer at which this entry's
// value payload begins, skipping past the tag byte and any name, and, for a
// String or an array kind, past its length prefix.
func (e *tapeEntry) payloadPos() int {
	pos := int(e.sourcePos)
	switch {
	case e.tag == TagEnd:
		return pos + 1
	case !e.isListItem:
		pos += 3 + int(e.nameLen)
	}
	switch e.tag {
	case TagString:
		pos += 2
	case TagByteArray, TagIntArray, TagLongArray:
		pos += 4
	}
	return pos
}

// scopeFrame is an open Compound or List scope during tape construction.
type scopeFrame struct {
	kind      Tag // TagCompound or TagList
	openIndex int // tape index of the opening entry
	elemTag   Tag // element tag, valid only when kind == TagList
	remaining int32
}

// tapeBuilder runs the single linear scan described in the tape
// construction algorithm, threading an explicit scope stack rather than
// recursing so that deeply nested documents don't blow the Go call stack.
type tapeBuilder struct {
	src     []byte
	network bool
	pos     int
	tape    []tapeEntry
	stack   []scopeFrame
}

func buildTape(src []byte, network bool) ([]tapeEntry, error) {
	b := &tapeBuilder{src: src, network: network}
	b.tape = make([]tapeEntry, 0, 128)
	b.stack = make([]scopeFrame, 0, 16)

	for b.pos < len(b.src) {
		if n := len(b.stack); n > 0 && b.stack[n-1].kind == TagList && b.stack[n-1].remaining <= 0 {
			b.closeList(&b.stack[n-1])
			continue
		}
		if err := b.step(); err != nil {
			return nil, err
		}
	}

	if len(b.stack) != 0 {
		return nil, newErr(errCodeSuddenEnd, b.pos)
	}
	return b.tape, nil
}

// closeList emits the synthetic End entry a list never carries on the wire
// and links it to the list's opening entry, then pops the frame.
func (b *tapeBuilder) closeList(top *scopeFrame) {
	openIndex := top.openIndex
	endIdx := len(b.tape)
	b.tape = append(b.tape, tapeEntry{
		tag:       TagEnd,
		isListItem: true,
		sourcePos: uint32(b.pos),
		payload:   uint64(openIndex),
	})
	b.tape[openIndex].payload = uint64(endIdx)
	b.stack = b.stack[:len(b.stack)-1]
}

// step parses exactly one value: either the next element of an open list
// frame (implied tag, no name) or a fresh tag-byte-prefixed entry.
func (b *tapeBuilder) step() error {
	startPos := b.pos

	var tag Tag
	var isListItem bool
	var nameLen int

	if n := len(b.stack); n > 0 && b.stack[n-1].kind == TagList {
		top := &b.stack[n-1]
		tag = top.elemTag
		isListItem = true
		top.remaining--
	} else {
		raw := b.src[b.pos]
		t, ok := tagFromByte(raw)
		if !ok {
			return newErrTag(errCodeInvalidTag, b.pos, Tag(raw))
		}
		b.pos++
		tag = t

		if len(b.tape) == 0 && tag != TagCompound {
			return newErrTag(errCodeWrongStartingTag, startPos, tag)
		}

		if tag == TagEnd {
			if len(b.stack) == 0 {
				return newErr(errCodeUnexpectedEnd, startPos)
			}
			top := b.stack[len(b.stack)-1]
			b.stack = b.stack[:len(b.stack)-1]
			endIdx := len(b.tape)
			b.tape = append(b.tape, tapeEntry{tag: TagEnd, sourcePos: uint32(startPos), payload: uint64(top.openIndex)})
			b.tape[top.openIndex].payload = uint64(endIdx)
			return nil
		}

		if !(len(b.tape) == 0 && b.network) {
			if b.pos+2 > len(b.src) {
				return newErr(errCodeSuddenEnd, b.pos)
			}
			nameLen = int(binary.BigEndian.Uint16(b.src[b.pos:]))
			b.pos += 2
			if b.pos+nameLen > len(b.src) {
				return newErr(errCodeSuddenEnd, b.pos)
			}
			b.pos += nameLen
		}
	}

	entry := tapeEntry{tag: tag, isListItem: isListItem, nameLen: uint16(nameLen), sourcePos: uint32(startPos)}

	switch tag {
	case TagByte, TagShort, TagInt, TagLong, TagFloat, TagDouble:
		sz := tag.scalarSize()
		if b.pos+sz > len(b.src) {
			return newErr(errCodeSuddenEnd, b.pos)
		}
		entry.payload = readUint(b.src[b.pos : b.pos+sz])
		b.pos += sz
		b.tape = append(b.tape, entry)

	case TagByteArray, TagIntArray, TagLongArray:
		if b.pos+4 > len(b.src) {
			return newErr(errCodeSuddenEnd, b.pos)
		}
		length := int32(binary.BigEndian.Uint32(b.src[b.pos:]))
		b.pos += 4
		if length < 0 {
			length = 0
		}
		nbytes := int(length) * tag.elementSize()
		if b.pos+nbytes > len(b.src) {
			return newErr(errCodeSuddenEnd, b.pos)
		}
		b.pos += nbytes
		entry.payload = uint64(length)
		b.tape = append(b.tape, entry)

	case TagString:
		if b.pos+2 > len(b.src) {
			return newErr(errCodeSuddenEnd, b.pos)
		}
		slen := int(binary.BigEndian.Uint16(b.src[b.pos:]))
		b.pos += 2
		if b.pos+slen > len(b.src) {
			return newErr(errCodeSuddenEnd, b.pos)
		}
		b.pos += slen
		entry.payload = uint64(slen)
		b.tape = append(b.tape, entry)

	case TagCompound:
		idx := len(b.tape)
		b.tape = append(b.tape, entry)
		b.stack = append(b.stack, scopeFrame{kind: TagCompound, openIndex: idx})

	case TagList:
		if b.pos+1 > len(b.src) {
			return newErr(errCodeSuddenEnd, b.pos)
		}
		elemRaw := b.src[b.pos]
		elemTag, ok := tagFromByte(elemRaw)
		if !ok {
			return newErrTag(errCodeInvalidTag, b.pos, Tag(elemRaw))
		}
		b.pos++
		if b.pos+4 > len(b.src) {
			return newErr(errCodeSuddenEnd, b.pos)
		}
		length := int32(binary.BigEndian.Uint32(b.src[b.pos:]))
		b.pos += 4
		if elemTag == TagEnd && length > 0 {
			return newErrTag(errCodeInvalidListType, startPos, elemTag)
		}

		idx := len(b.tape)
		b.tape = append(b.tape, entry)
		if length > 0 {
			b.stack = append(b.stack, scopeFrame{kind: TagList, openIndex: idx, elemTag: elemTag, remaining: length})
		} else {
			// A list with no elements never gets a frame pushed, so it
			// never goes through closeList; synthesize its End right here
			// so every List entry still has a matching End, as every
			// Compound does.
			endIdx := len(b.tape)
			b.tape = append(b.tape, tapeEntry{tag: TagEnd, isListItem: true, sourcePos: uint32(b.pos), payload: uint64(idx)})
			b.tape[idx].payload = uint64(endIdx)
		}
	}

	return nil
}

// readUint decodes a big-endian integer of width 1, 2, 4, or 8 bytes into a
// uint64, preserving the original bit pattern (including for the two
// floating-point tags, whose bits are reinterpreted by the accessor, not
// here).
func readUint(b []byte) uint64 {
	switch len(b) {
	case 1:
		return uint64(b[0])
	case 2:
		return uint64(binary.BigEndian.Uint16(b))
	case 4:
		return uint64(binary.BigEndian.Uint32(b))
	case 8:
		return binary.BigEndian.Uint64(b)
	default:
		panic("nbt: unreachable scalar width")
	}
}
