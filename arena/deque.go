package arena

// Direction records which end of the underlying reversible list currently
// represents the front of the logical deque.
type Direction int

const (
	Forwards Direction = iota
	Backwards
)

// Deque is a double-ended queue built on top of a ReversibleList. push
// and pop at the "wrong" end trigger a reversal of the underlying list;
// ensure_both_directions lets a caller pay that cost once up front so
// that later reads need no mutable arena access.
type Deque[T any] struct {
	rev ReversibleList[T]
	dir Direction
}

// EmptyDeque returns the empty deque.
func EmptyDeque[T any]() Deque[T] {
	return Deque[T]{rev: EmptyReversibleList[T](), dir: Forwards}
}

// IsEmpty reports whether the deque has no elements.
func (d Deque[T]) IsEmpty() bool {
	return d.rev.IsEmpty()
}

// HaveReversal reports whether this deque can be iterated in both
// directions without needing mutable arena access.
func (d Deque[T]) HaveReversal(a *ReversibleListArena[T]) bool {
	return a.HaveReversal(d.rev)
}

func (d *Deque[T]) ensure(a *ReversibleListArena[T], want Direction) {
	if d.dir == want {
		return
	}
	d.rev = a.Reverse(d.rev)
	d.dir = want
}

// EnsureForwards reverses the underlying list if it is currently
// oriented backwards.
func (d *Deque[T]) EnsureForwards(a *ReversibleListArena[T]) {
	d.ensure(a, Forwards)
}

// EnsureBackwards reverses the underlying list if it is currently
// oriented forwards.
func (d *Deque[T]) EnsureBackwards(a *ReversibleListArena[T]) {
	d.ensure(a, Backwards)
}

// EnsureBothDirections precomputes the reversal so later reads need no
// mutable arena access.
func (d *Deque[T]) EnsureBothDirections(a *ReversibleListArena[T]) {
	_ = a.Reverse(d.rev)
}

// PushFront pushes value onto the front of the deque, reversing first if
// the deque is currently oriented backwards.
func (d *Deque[T]) PushFront(a *ReversibleListArena[T], value T) {
	d.EnsureForwards(a)
	l := d.rev.AsList()
	l.PushFront(a.Cells, value)
	d.rev = FromList(l)
}

// PopFront removes and returns the element at the front of the deque.
func (d *Deque[T]) PopFront(a *ReversibleListArena[T]) (T, bool) {
	d.EnsureForwards(a)
	l := d.rev.AsList()
	v, ok := l.PopFront(a.Cells)
	d.rev = FromList(l)
	return v, ok
}

// PushBack pushes value onto the back of the deque, reversing first if
// the deque is currently oriented forwards.
func (d *Deque[T]) PushBack(a *ReversibleListArena[T], value T) {
	d.EnsureBackwards(a)
	l := d.rev.AsList()
	l.PushFront(a.Cells, value)
	d.rev = FromList(l)
}

// PopBack removes and returns the element at the back of the deque.
func (d *Deque[T]) PopBack(a *ReversibleListArena[T]) (T, bool) {
	d.EnsureBackwards(a)
	l := d.rev.AsList()
	v, ok := l.PopFront(a.Cells)
	d.rev = FromList(l)
	return v, ok
}

// Front returns, without removing, the element at the front of the
// deque, reversing first if necessary.
func (d *Deque[T]) Front(a *ReversibleListArena[T]) (T, bool) {
	d.EnsureForwards(a)
	return d.rev.AsList().Front(a.Cells)
}

// Iter visits every element from front to back, reversing first if the
// deque is currently oriented backwards (mutable arena access).
func (d *Deque[T]) Iter(a *ReversibleListArena[T], fn func(T)) {
	d.EnsureForwards(a)
	d.rev.AsList().Iter(a.Cells, fn)
}

// IterUnordered visits every element in whatever order the deque is
// currently stored, without mutating the arena. Useful when the caller
// does not care about order (e.g. set-like membership checks).
func (d Deque[T]) IterUnordered(a *ReversibleListArena[T], fn func(T)) {
	d.rev.AsList().Iter(a.Cells, fn)
}
