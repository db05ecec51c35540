// Package partial implements partial paths: the file-local unit of
// name-resolution computation that the stitcher later concatenates
// across file boundaries. A partial path's pre/postcondition stacks are
// finite prefixes followed by an optional variable standing for "any
// remaining suffix" (see SPEC_FULL.md §3.4, §4.3).
package partial

import (
	"strings"

	"github.com/viant/stackgraph/arena"
	"github.com/viant/stackgraph/graph"
)

// SymbolStackVariable names the unconstrained suffix of a partial symbol
// stack. Zero means "no variable" (the stack is exactly its concrete
// prefix).
type SymbolStackVariable uint32

// ScopeStackVariable names the unconstrained suffix of a partial scope
// stack. Zero means "no variable".
type ScopeStackVariable uint32

// Paths owns the arena-backed storage shared by every PartialSymbolStack,
// PartialScopeStack, and PartialPathEdgeList built from it. A Paths value
// plays the role of the stack-graphs crate's PartialPaths resolution
// state.
type Paths struct {
	SymbolCells *arena.ReversibleListArena[PartialScopedSymbol]
	ScopeCells  *arena.ReversibleListArena[graph.NodeHandle]
	EdgeCells   *arena.ReversibleListArena[PartialPathEdge]
}

// NewPaths creates empty backing storage for partial stacks and edge
// lists.
func NewPaths() *Paths {
	return &Paths{
		SymbolCells: arena.NewReversibleListArena[PartialScopedSymbol](),
		ScopeCells:  arena.NewReversibleListArena[graph.NodeHandle](),
		EdgeCells:   arena.NewReversibleListArena[PartialPathEdge](),
	}
}

// Clear empties every backing arena. Existing PartialSymbolStack /
// PartialScopeStack / PartialPathEdgeList values built from this Paths
// become meaningless afterward.
func (p *Paths) Clear() {
	p.SymbolCells.Clear()
	p.ScopeCells.Clear()
	p.EdgeCells.Clear()
}

// PartialScopedSymbol is a symbol-stack element: a bare symbol, plus an
// optional attached partial scope stack (present only for symbols pushed
// by a push-scoped-symbol node).
type PartialScopedSymbol struct {
	Symbol    graph.SymbolHandle
	Scopes    PartialScopeStack
	HasScopes bool
}

// Equals reports whether s and other carry the same symbol and, if
// either has an attached scope stack, equal attached scope stacks.
func (s PartialScopedSymbol) Equals(p *Paths, other PartialScopedSymbol) bool {
	if s.Symbol != other.Symbol || s.HasScopes != other.HasScopes {
		return false
	}
	if !s.HasScopes {
		return true
	}
	return s.Scopes.Equals(p, other.Scopes)
}

// Cmp orders s relative to other: first by interned symbol content, then
// by attached scope stack (a symbol with no attached scopes sorts before
// one that has them, matching Rust's None-before-Some Option ordering).
func (s PartialScopedSymbol) Cmp(g *graph.StackGraph, p *Paths, other PartialScopedSymbol) int {
	if c := strings.Compare(g.Symbol(s.Symbol), g.Symbol(other.Symbol)); c != 0 {
		return c
	}
	switch {
	case !s.HasScopes && !other.HasScopes:
		return 0
	case !s.HasScopes:
		return -1
	case !other.HasScopes:
		return 1
	default:
		return s.Scopes.Cmp(p, other.Scopes)
	}
}

// PartialSymbolStack is a finite prefix of scoped symbols, optionally
// followed by a variable standing for an unconstrained suffix.
type PartialSymbolStack struct {
	deque    arena.Deque[PartialScopedSymbol]
	length   int
	variable SymbolStackVariable
}

// EmptySymbolStack returns the partial symbol stack with no elements and
// no variable: matches only another empty stack.
func EmptySymbolStack() PartialSymbolStack {
	return PartialSymbolStack{deque: arena.EmptyDeque[PartialScopedSymbol]()}
}

// VariableSymbolStack returns the partial symbol stack consisting of
// just a variable: matches anything.
func VariableSymbolStack(v SymbolStackVariable) PartialSymbolStack {
	return PartialSymbolStack{deque: arena.EmptyDeque[PartialScopedSymbol](), variable: v}
}

// IsEmpty reports whether the stack's concrete prefix is empty (it may
// still carry a variable).
func (s PartialSymbolStack) IsEmpty() bool { return s.length == 0 }

// Len returns the number of concrete elements in the stack's prefix.
func (s PartialSymbolStack) Len() int { return s.length }

// HasVariable reports whether the stack carries a trailing variable.
func (s PartialSymbolStack) HasVariable() bool { return s.variable != 0 }

// Variable returns the trailing variable, or 0 if none.
func (s PartialSymbolStack) Variable() SymbolStackVariable { return s.variable }

// WithVariable returns a copy of s with its trailing variable replaced.
func (s PartialSymbolStack) WithVariable(v SymbolStackVariable) PartialSymbolStack {
	s.variable = v
	return s
}

// PushFront conses sym onto the front of s's concrete prefix.
func (s *PartialSymbolStack) PushFront(p *Paths, sym PartialScopedSymbol) {
	s.deque.PushFront(p.SymbolCells, sym)
	s.length++
}

// PushBack appends sym to the back of s's concrete prefix (used when a
// pop's lazy requirement extends the precondition).
func (s *PartialSymbolStack) PushBack(p *Paths, sym PartialScopedSymbol) {
	s.deque.PushBack(p.SymbolCells, sym)
	s.length++
}

// PopFront removes and returns the front of s's concrete prefix.
func (s *PartialSymbolStack) PopFront(p *Paths) (PartialScopedSymbol, bool) {
	v, ok := s.deque.PopFront(p.SymbolCells)
	if ok {
		s.length--
	}
	return v, ok
}

// Front returns, without removing, the front of s's concrete prefix.
func (s *PartialSymbolStack) Front(p *Paths) (PartialScopedSymbol, bool) {
	return s.deque.Front(p.SymbolCells)
}

// Iter visits every concrete element from front to back.
func (s *PartialSymbolStack) Iter(p *Paths, fn func(PartialScopedSymbol)) {
	s.deque.Iter(p.SymbolCells, fn)
}

// EnsureForwards precomputes the deque's forwards orientation so later
// reads need no mutable arena access (arena.rs's Deque::ensure_forwards).
func (s *PartialSymbolStack) EnsureForwards(p *Paths) { s.deque.EnsureForwards(p.SymbolCells) }

// EnsureBothDirections precomputes both the deque's current orientation
// and its reversal, including every attached scope stack's.
func (s *PartialSymbolStack) EnsureBothDirections(p *Paths) {
	s.deque.EnsureBothDirections(p.SymbolCells)
	var scopes []PartialScopeStack
	s.Iter(p, func(sym PartialScopedSymbol) {
		if sym.HasScopes {
			scopes = append(scopes, sym.Scopes)
		}
	})
	for i := range scopes {
		scopes[i].EnsureBothDirections(p)
	}
}

// Equals reports whether s and other have the same concrete prefix
// (element-wise, front to back) and the same trailing variable. Both
// stacks are read with Iter, which leaves their contents unchanged but
// may add a cached reversal to the shared arena.
func (s PartialSymbolStack) Equals(p *Paths, other PartialSymbolStack) bool {
	if s.variable != other.variable || s.length != other.length {
		return false
	}
	var as, bs []PartialScopedSymbol
	s.Iter(p, func(sym PartialScopedSymbol) { as = append(as, sym) })
	other.Iter(p, func(sym PartialScopedSymbol) { bs = append(bs, sym) })
	for i := range as {
		if !as[i].Equals(p, bs[i]) {
			return false
		}
	}
	return true
}

// Cmp orders s relative to other element-wise (front to back), then by
// trailing variable (no variable sorts before having one).
func (s PartialSymbolStack) Cmp(g *graph.StackGraph, p *Paths, other PartialSymbolStack) int {
	var as, bs []PartialScopedSymbol
	s.Iter(p, func(sym PartialScopedSymbol) { as = append(as, sym) })
	other.Iter(p, func(sym PartialScopedSymbol) { bs = append(bs, sym) })
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		if c := as[i].Cmp(g, p, bs[i]); c != 0 {
			return c
		}
	}
	if len(as) != len(bs) {
		if len(as) < len(bs) {
			return -1
		}
		return 1
	}
	switch {
	case s.variable == other.variable:
		return 0
	case s.variable < other.variable:
		return -1
	default:
		return 1
	}
}

// LargestScopeStackVariable returns the largest scope-stack variable used
// by any scope stack attached to a symbol in s's concrete prefix, or 0 if
// none is attached. Postconditions are never consulted: it is never valid
// for a postcondition to reference a variable that doesn't already appear
// in the precondition.
func (s *PartialSymbolStack) LargestScopeStackVariable(p *Paths) ScopeStackVariable {
	var max ScopeStackVariable
	s.Iter(p, func(sym PartialScopedSymbol) {
		if sym.HasScopes && sym.Scopes.Variable() > max {
			max = sym.Scopes.Variable()
		}
	})
	return max
}

// PartialScopeStack is a finite prefix of exported-scope node handles,
// optionally followed by a variable.
type PartialScopeStack struct {
	deque    arena.Deque[graph.NodeHandle]
	length   int
	variable ScopeStackVariable
}

// EmptyScopeStack returns the partial scope stack with no elements and
// no variable.
func EmptyScopeStack() PartialScopeStack {
	return PartialScopeStack{deque: arena.EmptyDeque[graph.NodeHandle]()}
}

// VariableScopeStack returns the partial scope stack consisting of just
// a variable.
func VariableScopeStack(v ScopeStackVariable) PartialScopeStack {
	return PartialScopeStack{deque: arena.EmptyDeque[graph.NodeHandle](), variable: v}
}

func (s PartialScopeStack) IsEmpty() bool                { return s.length == 0 }
func (s PartialScopeStack) Len() int                     { return s.length }
func (s PartialScopeStack) HasVariable() bool            { return s.variable != 0 }
func (s PartialScopeStack) Variable() ScopeStackVariable { return s.variable }

func (s PartialScopeStack) WithVariable(v ScopeStackVariable) PartialScopeStack {
	s.variable = v
	return s
}

func (s *PartialScopeStack) PushFront(p *Paths, scope graph.NodeHandle) {
	s.deque.PushFront(p.ScopeCells, scope)
	s.length++
}

func (s *PartialScopeStack) PushBack(p *Paths, scope graph.NodeHandle) {
	s.deque.PushBack(p.ScopeCells, scope)
	s.length++
}

func (s *PartialScopeStack) PopFront(p *Paths) (graph.NodeHandle, bool) {
	v, ok := s.deque.PopFront(p.ScopeCells)
	if ok {
		s.length--
	}
	return v, ok
}

func (s *PartialScopeStack) Front(p *Paths) (graph.NodeHandle, bool) {
	return s.deque.Front(p.ScopeCells)
}

func (s *PartialScopeStack) Iter(p *Paths, fn func(graph.NodeHandle)) {
	s.deque.Iter(p.ScopeCells, fn)
}

// EnsureForwards precomputes the deque's forwards orientation.
func (s *PartialScopeStack) EnsureForwards(p *Paths) { s.deque.EnsureForwards(p.ScopeCells) }

// EnsureBothDirections precomputes both orientations of the deque.
func (s *PartialScopeStack) EnsureBothDirections(p *Paths) { s.deque.EnsureBothDirections(p.ScopeCells) }

// Equals reports whether s and other contain the same scope handles, in
// the same order, with the same trailing variable.
func (s PartialScopeStack) Equals(p *Paths, other PartialScopeStack) bool {
	if s.variable != other.variable || s.length != other.length {
		return false
	}
	var as, bs []graph.NodeHandle
	s.Iter(p, func(h graph.NodeHandle) { as = append(as, h) })
	other.Iter(p, func(h graph.NodeHandle) { bs = append(bs, h) })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// Cmp orders s relative to other element-wise (front to back) by scope
// handle, then by trailing variable (no variable sorts before having
// one).
func (s PartialScopeStack) Cmp(p *Paths, other PartialScopeStack) int {
	var as, bs []graph.NodeHandle
	s.Iter(p, func(h graph.NodeHandle) { as = append(as, h) })
	other.Iter(p, func(h graph.NodeHandle) { bs = append(bs, h) })
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		if as[i] != bs[i] {
			if as[i] < bs[i] {
				return -1
			}
			return 1
		}
	}
	if len(as) != len(bs) {
		if len(as) < len(bs) {
			return -1
		}
		return 1
	}
	switch {
	case s.variable == other.variable:
		return 0
	case s.variable < other.variable:
		return -1
	default:
		return 1
	}
}
