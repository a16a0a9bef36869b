package nbt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcserver-go/mcserver/nbt"
)

type countingVisitor struct {
	scalars   int
	compounds int
	lists     int
}

func (c *countingVisitor) VisitScalar(nbt.Node) nbt.Flow[struct{}]    { c.scalars++; return nbt.Continue[struct{}]() }
func (c *countingVisitor) EnterCompound(nbt.Node) nbt.Flow[struct{}]  { c.compounds++; return nbt.Continue[struct{}]() }
func (c *countingVisitor) LeaveCompound(nbt.Node) nbt.Flow[struct{}]  { return nbt.Continue[struct{}]() }
func (c *countingVisitor) EnterList(nbt.Node) nbt.Flow[struct{}]      { c.lists++; return nbt.Continue[struct{}]() }
func (c *countingVisitor) LeaveList(nbt.Node) nbt.Flow[struct{}]      { return nbt.Continue[struct{}]() }

func TestWalkVisitsEveryNode(t *testing.T) {
	t.Parallel()

	type inner struct {
		Name string
	}
	in := struct {
		ByteTest byte
		Nested   inner
		Tags     []int32
	}{
		ByteTest: 127,
		Nested:   inner{Name: "Hampus"},
		Tags:     []int32{1, 2, 3},
	}

	buf, err := nbt.Encode(in, "", true)
	require.NoError(t, err)
	p, err := nbt.Parse(buf, true)
	require.NoError(t, err)

	cv := &countingVisitor{}
	flow := nbt.Walk(p.Root(), cv)
	assert.False(t, flow.Broken())
	// root compound + nested compound == 2, Tags is an IntArray (scalar kind
	// for traversal purposes), ByteTest is a scalar, Nested.Name is a scalar.
	assert.Equal(t, 2, cv.compounds)
	assert.Equal(t, 0, cv.lists)
	assert.Equal(t, 3, cv.scalars)
}

type breakingVisitor struct{}

func (b *breakingVisitor) VisitScalar(n nbt.Node) nbt.Flow[string] {
	name, _ := n.Name()
	return nbt.Break[string](name)
}
func (b *breakingVisitor) EnterCompound(nbt.Node) nbt.Flow[string] { return nbt.Continue[string]() }
func (b *breakingVisitor) LeaveCompound(nbt.Node) nbt.Flow[string] { return nbt.Continue[string]() }
func (b *breakingVisitor) EnterList(nbt.Node) nbt.Flow[string]     { return nbt.Continue[string]() }
func (b *breakingVisitor) LeaveList(nbt.Node) nbt.Flow[string]     { return nbt.Continue[string]() }

func TestWalkStopsOnBreak(t *testing.T) {
	t.Parallel()

	in := struct {
		A int32
		B int32
	}{A: 1, B: 2}

	buf, err := nbt.Encode(in, "", true)
	require.NoError(t, err)
	p, err := nbt.Parse(buf, true)
	require.NoError(t, err)

	flow := nbt.Walk(p.Root(), &breakingVisitor{})
	require.True(t, flow.Broken())
	assert.Equal(t, "A", flow.Value())
}

func TestPrintTree(t *testing.T) {
	t.Parallel()

	in := struct {
		Name string
	}{Name: "Eggbert"}

	buf, err := nbt.Encode(in, "", true)
	require.NoError(t, err)
	p, err := nbt.Parse(buf, true)
	require.NoError(t, err)

	out := nbt.PrintTree(p.Root())
	assert.Contains(t, out, `"Name": "Eggbert"`)
}
