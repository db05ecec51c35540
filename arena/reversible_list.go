package arena

// ReversibleListArena owns both the cells of every ReversibleList[T]
// built on it and the lazily-populated reversal cache described in
// SPEC_FULL.md §4.1: a list's reversal is computed once and cached by
// front handle, and the reverse of that reversal is cached back to the
// original in the same step, so alternating reversals cost nothing after
// the first.
type ReversibleListArena[T any] struct {
	Cells    *ListArena[T]
	reversed *SupplementalArena[Cell[T], Handle[Cell[T]]]
}

// NewReversibleListArena creates an empty reversible-list arena.
func NewReversibleListArena[T any]() *ReversibleListArena[T] {
	return &ReversibleListArena[T]{
		Cells:    NewListArena[T](),
		reversed: NewSupplementalArena[Cell[T], Handle[Cell[T]]](),
	}
}

// Clear empties the underlying cell arena and reversal cache. Existing
// handles become meaningless afterward.
func (a *ReversibleListArena[T]) Clear() {
	a.Cells.Clear()
	a.reversed = NewSupplementalArena[Cell[T], Handle[Cell[T]]]()
}

// ReversibleList is a handle to a list that additionally remembers
// whether its reversal has already been computed.
type ReversibleList[T any] struct {
	handle Handle[Cell[T]]
}

// EmptyReversibleList returns the empty reversible list.
func EmptyReversibleList[T any]() ReversibleList[T] {
	return ReversibleList[T]{handle: Handle[Cell[T]](emptySentinelValue)}
}

// FromList wraps a plain List as a ReversibleList sharing the same
// underlying cells.
func FromList[T any](l List[T]) ReversibleList[T] {
	return ReversibleList[T]{handle: l.Handle()}
}

// AsList exposes the underlying plain list view, for use with the
// unadorned List operations (PushFront, PopFront, Iter).
func (r ReversibleList[T]) AsList() List[T] {
	return FromHandle[T](r.handle)
}

// IsEmpty reports whether the list has no elements.
func (r ReversibleList[T]) IsEmpty() bool {
	return r.handle == Handle[Cell[T]](emptySentinelValue)
}

// Handle returns the handle to the front cell.
func (r ReversibleList[T]) Handle() Handle[Cell[T]] {
	return r.handle
}

// HaveReversal reports whether this list's reversal has already been
// computed and cached, i.e. whether it can be iterated backwards without
// needing mutable arena access.
func (a *ReversibleListArena[T]) HaveReversal(r ReversibleList[T]) bool {
	if r.IsEmpty() {
		return true
	}
	_, ok := a.reversed.Get(r.handle)
	return ok
}

// Reverse returns the reversal of r, computing and caching it (in both
// directions) on first use.
func (a *ReversibleListArena[T]) Reverse(r ReversibleList[T]) ReversibleList[T] {
	if r.IsEmpty() {
		return r
	}
	if cached, ok := a.reversed.Get(r.handle); ok {
		return ReversibleList[T]{handle: cached}
	}
	result := EmptyList[T]()
	r.AsList().Iter(a.Cells, func(v T) {
		result.PushFront(a.Cells, v)
	})
	reversedHandle := result.Handle()
	a.reversed.Set(r.handle, reversedHandle)
	a.reversed.Set(reversedHandle, r.handle)
	return ReversibleList[T]{handle: reversedHandle}
}
