package nbt

// Flow is the control-flow value returned by every [Visitor] callback: either
// continue traversal, or break it off early and surface B to the caller of
// [Walk].
type Flow[B any] struct {
	broken bool
	value  B
}

// Continue resumes traversal.
func Continue[B any]() Flow[B] { return Flow[B]{} }

// Break aborts traversal, surfacing v to whoever called [Walk].
func Break[B any](v B) Flow[B] { return Flow[B]{broken: true, value: v} }

// Broken reports whether this flow value requests early termination.
func (f Flow[B]) Broken() bool { return f.broken }

// Value returns the break value; meaningful only when Broken() is true.
func (f Flow[B]) Value() B { return f.value }

// Visitor walks a tape as a stream of events rather than through the
// fallible Node chain. Every callback returns a [Flow]; once any callback
// breaks, traversal stops immediately and the break value is returned from
// [Walk] without visiting anything else.
type Visitor[B any] interface {
	VisitScalar(Node) Flow[B]
	EnterCompound(Node) Flow[B]
	LeaveCompound(Node) Flow[B]
	EnterList(Node) Flow[B]
	LeaveList(Node) Flow[B]
}

// Strategy drives a [Visitor] over a single container node one tape position
// at a time. The default (serial) strategy, constructed by [NewStrategy],
// starts at the container's own tape index and runs until it has emitted the
// matching leave callback for that container.
//
// Used by the pretty-printer ([Printer]). [Decode] does not use a Strategy;
// it reads through the Node accessors (Get, Items, Entries) instead.
type Strategy[B any] struct {
	p    *Parser
	v    Visitor[B]
	root Node
	pos  int
	done bool
}

// NewStrategy returns a serial traversal strategy rooted at n, which must be
// present and a Compound or List.
func NewStrategy[B any](n Node, v Visitor[B]) *Strategy[B] {
	return &Strategy[B]{p: n.p, v: v, root: n, pos: n.v.tapeIndex}
}

// Step advances the traversal by exactly one tape position, invoking
// whichever callback that position implies, and reports whether traversal
// has now concluded (either the container's leave was just emitted, or a
// callback broke). If done is true, flow carries either the break value or
// the zero value for a clean finish.
func (s *Strategy[B]) Step() (flow Flow[B], done bool) {
	if s.done || !s.root.ok {
		return Flow[B]{}, true
	}

	e := &s.p.tape[s.pos]
	node := Node{p: s.p, ok: true, v: s.p.valueAt(s.pos)}

	var f Flow[B]
	switch {
	case e.tag == TagCompound:
		f = s.v.EnterCompound(node)
		s.pos++
	case e.tag == TagList:
		f = s.v.EnterList(node)
		s.pos++
	case e.tag == TagEnd:
		opening := &s.p.tape[int(e.payload)]
		if opening.tag == TagCompound {
			f = s.v.LeaveCompound(Node{p: s.p, ok: true, v: s.p.valueAt(int(e.payload))})
		} else {
			f = s.v.LeaveList(Node{p: s.p, ok: true, v: s.p.valueAt(int(e.payload))})
		}
		if int(e.payload) == s.root.v.tapeIndex {
			s.done = true
		}
		s.pos = s.pos + 1
	default:
		f = s.v.VisitScalar(node)
		s.pos = s.p.successor(s.pos)
	}

	if f.Broken() {
		s.done = true
	}
	return f, s.done
}

// Walk runs strategy to completion, or until a callback breaks, and returns
// the break value (zero value if traversal ran to a clean finish).
func Walk[B any](n Node, v Visitor[B]) Flow[B] {
	if !n.ok || !n.v.Tag().IsContainer() {
		return Flow[B]{}
	}
	s := NewStrategy(n, v)
	var last Flow[B]
	for {
		f, done := s.Step()
		last = f
		if done {
			return last
		}
	}
}
