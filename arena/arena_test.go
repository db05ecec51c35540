package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaAddGet(t *testing.T) {
	a := NewArena[string]()
	h1 := a.Add("alpha")
	h2 := a.Add("beta")
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, "alpha", *a.Get(h1))
	assert.Equal(t, "beta", *a.Get(h2))
	assert.Equal(t, 3, a.Len())
}

func TestArenaClearInvalidatesLength(t *testing.T) {
	a := NewArena[int]()
	a.Add(1)
	a.Add(2)
	a.Clear()
	assert.Equal(t, 1, a.Len())
}

func TestSupplementalArenaAutoCreates(t *testing.T) {
	nodes := NewArena[string]()
	h := nodes.Add("n")
	supp := NewSupplementalArena[string, []int]()
	_, ok := supp.Get(h)
	assert.False(t, ok)
	bucket := supp.GetOrCreate(h)
	*bucket = append(*bucket, 42)
	got, ok := supp.Get(h)
	require.True(t, ok)
	assert.Equal(t, []int{42}, got)
}

func TestHandleSetMembership(t *testing.T) {
	s := NewHandleSet[string]()
	s.Add(Handle[string](3))
	s.Add(Handle[string](130))
	assert.True(t, s.Contains(Handle[string](3)))
	assert.True(t, s.Contains(Handle[string](130)))
	assert.False(t, s.Contains(Handle[string](4)))

	var seen []Handle[string]
	s.Iter(func(h Handle[string]) { seen = append(seen, h) })
	assert.Equal(t, []Handle[string]{3, 130}, seen)

	s.Remove(Handle[string](3))
	assert.False(t, s.Contains(Handle[string](3)))
}

func TestListStructuralSharing(t *testing.T) {
	cells := NewListArena[int]()
	tail := EmptyList[int]()
	tail.PushFront(cells, 3)
	tail.PushFront(cells, 2)

	branchA := tail
	branchA.PushFront(cells, 1)
	branchB := tail
	branchB.PushFront(cells, 99)

	var a, b []int
	branchA.Iter(cells, func(v int) { a = append(a, v) })
	branchB.Iter(cells, func(v int) { b = append(b, v) })
	assert.Equal(t, []int{1, 2, 3}, a)
	assert.Equal(t, []int{99, 2, 3}, b)
}

func TestReversibleListCachesBothDirections(t *testing.T) {
	ra := NewReversibleListArena[int]()
	l := EmptyList[int]()
	l.PushFront(ra.Cells, 3)
	l.PushFront(ra.Cells, 2)
	l.PushFront(ra.Cells, 1)
	r := FromList(l)

	assert.False(t, ra.HaveReversal(r))
	reversed := ra.Reverse(r)
	assert.True(t, ra.HaveReversal(r))
	assert.True(t, ra.HaveReversal(reversed))

	var out []int
	reversed.AsList().Iter(ra.Cells, func(v int) { out = append(out, v) })
	assert.Equal(t, []int{3, 2, 1}, out)

	// Reversing twice returns to a list backed by the same handle.
	roundTrip := ra.Reverse(reversed)
	assert.Equal(t, r.Handle(), roundTrip.Handle())
}

func TestDequePushPopBothEnds(t *testing.T) {
	ra := NewReversibleListArena[int]()
	d := EmptyDeque[int]()
	d.PushBack(ra, 1)
	d.PushBack(ra, 2)
	d.PushBack(ra, 3)

	var out []int
	clone := d
	clone.Iter(ra, func(v int) { out = append(out, v) })
	assert.Equal(t, []int{1, 2, 3}, out)

	front, ok := d.PopFront(ra)
	require.True(t, ok)
	assert.Equal(t, 1, front)

	back, ok := d.PopBack(ra)
	require.True(t, ok)
	assert.Equal(t, 3, back)

	remaining, ok := d.PopFront(ra)
	require.True(t, ok)
	assert.Equal(t, 2, remaining)

	assert.True(t, d.IsEmpty())
}
