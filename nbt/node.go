package nbt

import "iter"

// Node pairs a [Value] with the [Parser] it came from, adding the fallible
// chained navigation surface described in the data model:
// root.Compound("a").List("b").CompoundAt(i).Int("c") returns the integer if
// every step exists and has the expected tag, and an absent node (zero
// value, Present() == false) the moment any step doesn't — no error, no
// panic. Distinct reasons for absence (missing key vs. wrong tag) are not
// distinguished, matching the contract in §4.2.
type Node struct {
	p  *Parser
	ok bool
	v  Value
}

// absentNode is returned by every navigation step that cannot find or
// type-match what it was asked for.
var absentNode = Node{}

// Present reports whether this node refers to an actual parsed value.
func (n Node) Present() bool { return n.ok }

// Absent reports whether navigation to this node failed somewhere along the
// chain.
func (n Node) Absent() bool { return !n.ok }

// Tag reports this node's kind, or TagEnd if absent (TagEnd is never the tag
// of a real stored value, so this is an unambiguous sentinel).
func (n Node) Tag() Tag {
	if !n.ok {
		return TagEnd
	}
	return n.v.Tag()
}

// Name returns this node's own name, as recorded on the tape, and whether it
// has one. Root nodes (network framing) and list elements never have a
// name.
func (n Node) Name() (string, bool) {
	if !n.ok {
		return "", false
	}
	e := &n.p.tape[n.v.tapeIndex]
	if e.isListItem {
		return "", false
	}
	if n.v.tapeIndex == 0 && n.p.network {
		return "", false
	}
	return n.p.entryName(n.v.tapeIndex), true
}

// IsListItem reports whether this node is an unnamed element of a list.
func (n Node) IsListItem() bool {
	if !n.ok {
		return false
	}
	return n.p.tape[n.v.tapeIndex].isListItem
}

// Get looks up a named child of this node. n must be present and a
// Compound; the result is present with whatever tag the child actually has.
func (n Node) Get(name string) Node {
	if !n.ok || n.v.Tag() != TagCompound {
		return absentNode
	}
	v, ok := n.p.compoundChildren(n.v.tapeIndex)[name]
	if !ok {
		return absentNode
	}
	return Node{p: n.p, ok: true, v: v}
}

// At looks up the i-th element of this node. n must be present and a List.
func (n Node) At(i int) Node {
	if !n.ok || n.v.Tag() != TagList || i < 0 {
		return absentNode
	}
	items := n.p.listChildren(n.v.tapeIndex)
	if i >= len(items) {
		return absentNode
	}
	return Node{p: n.p, ok: true, v: items[i]}
}

// Compound looks up a named child and requires it to be a Compound.
func (n Node) Compound(name string) Node {
	c := n.Get(name)
	if c.Tag() != TagCompound {
		return absentNode
	}
	return c
}

// List looks up a named child and requires it to be a List.
func (n Node) List(name string) Node {
	c := n.Get(name)
	if c.Tag() != TagList {
		return absentNode
	}
	return c
}

// CompoundAt looks up the i-th element and requires it to be a Compound.
func (n Node) CompoundAt(i int) Node {
	c := n.At(i)
	if c.Tag() != TagCompound {
		return absentNode
	}
	return c
}

// ListAt looks up the i-th element and requires it to be a List.
func (n Node) ListAt(i int) Node {
	c := n.At(i)
	if c.Tag() != TagList {
		return absentNode
	}
	return c
}

// Len reports the element count of a List or Compound, or the element count
// of an array kind. Returns (0, false) for any other tag or an absent node.
func (n Node) Len() (int, bool) {
	if !n.ok {
		return 0, false
	}
	switch n.v.Tag() {
	case TagList:
		return len(n.p.listChildren(n.v.tapeIndex)), true
	case TagCompound:
		return len(n.p.compoundChildren(n.v.tapeIndex)), true
	case TagByteArray, TagIntArray, TagLongArray:
		return int(n.p.tape[n.v.tapeIndex].payload), true
	default:
		return 0, false
	}
}

// Entries iterates the (name, child) pairs of a Compound node in declaration
// order, yielding nothing for any other tag or an absent node. Iteration
// never yields an explicit "end" marker; it simply stops (the Open
// Questions resolution of "absent, not an End sentinel").
func (n Node) Entries() iter.Seq2[string, Node] {
	return func(yield func(string, Node) bool) {
		if !n.ok || n.v.Tag() != TagCompound {
			return
		}
		p := n.p
		for i := n.v.tapeIndex + 1; p.tape[i].tag != TagEnd; i = p.successor(i) {
			if !yield(p.entryName(i), Node{p: p, ok: true, v: p.valueAt(i)}) {
				return
			}
		}
	}
}

// Items iterates the elements of a List node in declaration order, yielding
// nothing for any other tag or an absent node.
func (n Node) Items() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		if !n.ok || n.v.Tag() != TagList {
			return
		}
		p := n.p
		for i := n.v.tapeIndex + 1; p.tape[i].tag != TagEnd; i = p.successor(i) {
			if !yield(Node{p: p, ok: true, v: p.valueAt(i)}) {
				return
			}
		}
	}
}

// Named scalar and array accessors, mirroring the chain step
// `.int("key")` from the spec's worked example: each looks up name, checks
// the result has the expected tag, and extracts the payload — all in one
// fallible step.

func (n Node) Byte(name string) (int8, bool) {
	c := n.Get(name)
	if c.Tag() != TagByte {
		return 0, false
	}
	return c.v.Byte(), true
}

func (n Node) Short(name string) (int16, bool) {
	c := n.Get(name)
	if c.Tag() != TagShort {
		return 0, false
	}
	return c.v.Short(), true
}

func (n Node) Int(name string) (int32, bool) {
	c := n.Get(name)
	if c.Tag() != TagInt {
		return 0, false
	}
	return c.v.Int32(), true
}

func (n Node) Long(name string) (int64, bool) {
	c := n.Get(name)
	if c.Tag() != TagLong {
		return 0, false
	}
	return c.v.Long(), true
}

func (n Node) Float32(name string) (float32, bool) {
	c := n.Get(name)
	if c.Tag() != TagFloat {
		return 0, false
	}
	return c.v.Float32(), true
}

func (n Node) Float64(name string) (float64, bool) {
	c := n.Get(name)
	if c.Tag() != TagDouble {
		return 0, false
	}
	return c.v.Float64(), true
}

func (n Node) Str(name string) (string, bool) {
	c := n.Get(name)
	if c.Tag() != TagString {
		return "", false
	}
	return c.p.stringAt(c.v.tapeIndex), true
}

func (n Node) ByteArray(name string) ([]int8, bool) {
	c := n.Get(name)
	if c.Tag() != TagByteArray {
		return nil, false
	}
	return c.p.byteArraySlice(c.v.tapeIndex), true
}

func (n Node) IntArray(name string) ([]int32, bool) {
	c := n.Get(name)
	if c.Tag() != TagIntArray {
		return nil, false
	}
	return c.p.intArraySlice(c.v.tapeIndex), true
}

func (n Node) LongArray(name string) ([]int64, bool) {
	c := n.Get(name)
	if c.Tag() != TagLongArray {
		return nil, false
	}
	return c.p.longArraySlice(c.v.tapeIndex), true
}

// Indexed array element access, direct from the source buffer at
// payload_pos + index*element_size, bypassing the array cache entirely —
// the O(1) single-element path described in §4.2. n itself must already be
// the array (e.g. via Get/At), not the enclosing compound/list.

func (n Node) ByteArrayAt(i int) (int8, bool) {
	if !n.ok || n.v.Tag() != TagByteArray {
		return 0, false
	}
	return n.p.byteArrayElement(n.v.tapeIndex, i)
}

func (n Node) IntArrayAt(i int) (int32, bool) {
	if !n.ok || n.v.Tag() != TagIntArray {
		return 0, false
	}
	return n.p.intArrayElement(n.v.tapeIndex, i)
}

func (n Node) LongArrayAt(i int) (int64, bool) {
	if !n.ok || n.v.Tag() != TagLongArray {
		return 0, false
	}
	return n.p.longArrayElement(n.v.tapeIndex, i)
}

// Bare value extractors, for when a node was already reached through Get,
// At, or iteration and its tag is already known to the caller (there is no
// name or index left to supply).

func (n Node) ByteValue() (int8, bool) {
	if !n.ok || n.v.Tag() != TagByte {
		return 0, false
	}
	return n.v.Byte(), true
}

func (n Node) ShortValue() (int16, bool) {
	if !n.ok || n.v.Tag() != TagShort {
		return 0, false
	}
	return n.v.Short(), true
}

func (n Node) Int32Value() (int32, bool) {
	if !n.ok || n.v.Tag() != TagInt {
		return 0, false
	}
	return n.v.Int32(), true
}

func (n Node) LongValue() (int64, bool) {
	if !n.ok || n.v.Tag() != TagLong {
		return 0, false
	}
	return n.v.Long(), true
}

func (n Node) Float32Value() (float32, bool) {
	if !n.ok || n.v.Tag() != TagFloat {
		return 0, false
	}
	return n.v.Float32(), true
}

func (n Node) Float64Value() (float64, bool) {
	if !n.ok || n.v.Tag() != TagDouble {
		return 0, false
	}
	return n.v.Float64(), true
}

func (n Node) StringValue() (string, bool) {
	if !n.ok || n.v.Tag() != TagString {
		return "", false
	}
	return n.p.stringAt(n.v.tapeIndex), true
}

func (n Node) ByteArrayValue() ([]int8, bool) {
	if !n.ok || n.v.Tag() != TagByteArray {
		return nil, false
	}
	return n.p.byteArraySlice(n.v.tapeIndex), true
}

func (n Node) IntArrayValue() ([]int32, bool) {
	if !n.ok || n.v.Tag() != TagIntArray {
		return nil, false
	}
	return n.p.intArraySlice(n.v.tapeIndex), true
}

func (n Node) LongArrayValue() ([]int64, bool) {
	if !n.ok || n.v.Tag() != TagLongArray {
		return nil, false
	}
	return n.p.longArraySlice(n.v.tapeIndex), true
}
