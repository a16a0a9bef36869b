package nbt

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer is a [Visitor] that renders a tape as a human-readable,
// SNBT-flavored dump, for use in debug logging where a full structured log
// field would be too heavy.
type Printer struct {
	sb     strings.Builder
	indent int
	// afterEnter is true right after entering a container, before its
	// first child (if any) has printed a leading comma.
	afterEnter []bool
}

// NewPrinter returns an empty Printer ready to be driven by [Walk].
func NewPrinter() *Printer { return &Printer{} }

// String returns the text rendered so far.
func (p *Printer) String() string { return p.sb.String() }

func (p *Printer) writeIndent() {
	p.sb.WriteString(strings.Repeat("  ", p.indent))
}

func (p *Printer) comma() {
	n := len(p.afterEnter)
	if n == 0 {
		return
	}
	if p.afterEnter[n-1] {
		p.afterEnter[n-1] = false
	} else {
		p.sb.WriteString(",\n")
		p.writeIndent()
	}
}

func (p *Printer) writeName(n Node) {
	if name, ok := n.Name(); ok {
		p.sb.WriteString(strconv.Quote(name))
		p.sb.WriteString(": ")
	}
}

func (p *Printer) VisitScalar(n Node) Flow[struct{}] {
	p.comma()
	p.writeName(n)
	p.sb.WriteString(formatScalar(n))
	return Continue[struct{}]()
}

func (p *Printer) EnterCompound(n Node) Flow[struct{}] {
	p.comma()
	p.writeName(n)
	p.sb.WriteString("{\n")
	p.indent++
	p.writeIndent()
	p.afterEnter = append(p.afterEnter, true)
	return Continue[struct{}]()
}

func (p *Printer) LeaveCompound(Node) Flow[struct{}] {
	p.afterEnter = p.afterEnter[:len(p.afterEnter)-1]
	p.indent--
	p.sb.WriteString("\n")
	p.writeIndent()
	p.sb.WriteString("}")
	return Continue[struct{}]()
}

func (p *Printer) EnterList(n Node) Flow[struct{}] {
	p.comma()
	p.writeName(n)
	p.sb.WriteString("[\n")
	p.indent++
	p.writeIndent()
	p.afterEnter = append(p.afterEnter, true)
	return Continue[struct{}]()
}

func (p *Printer) LeaveList(Node) Flow[struct{}] {
	p.afterEnter = p.afterEnter[:len(p.afterEnter)-1]
	p.indent--
	p.sb.WriteString("\n")
	p.writeIndent()
	p.sb.WriteString("]")
	return Continue[struct{}]()
}

func formatScalar(n Node) string {
	switch n.Tag() {
	case TagByte:
		v, _ := n.ByteValue()
		return strconv.FormatInt(int64(v), 10) + "b"
	case TagShort:
		v, _ := n.ShortValue()
		return strconv.FormatInt(int64(v), 10) + "s"
	case TagInt:
		v, _ := n.Int32Value()
		return strconv.FormatInt(int64(v), 10)
	case TagLong:
		v, _ := n.LongValue()
		return strconv.FormatInt(v, 10) + "L"
	case TagFloat:
		v, _ := n.Float32Value()
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
	case TagDouble:
		v, _ := n.Float64Value()
		return strconv.FormatFloat(v, 'g', -1, 64) + "d"
	case TagString:
		v, _ := n.StringValue()
		return strconv.Quote(v)
	case TagByteArray:
		v, _ := n.ByteArrayValue()
		return fmt.Sprintf("[B;%d items]", len(v))
	case TagIntArray:
		v, _ := n.IntArrayValue()
		return fmt.Sprintf("[I;%d items]", len(v))
	case TagLongArray:
		v, _ := n.LongArrayValue()
		return fmt.Sprintf("[L;%d items]", len(v))
	default:
		return "?"
	}
}

// PrintTree renders n (a Compound or List) to an SNBT-flavored string via
// [Walk] and [Printer]. Returns "" for an absent or scalar node.
func PrintTree(n Node) string {
	if !n.ok || !n.v.Tag().IsContainer() {
		return ""
	}
	p := NewPrinter()
	Walk(n, p)
	return p.String()
}
