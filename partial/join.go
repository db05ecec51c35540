package partial

import "github.com/viant/stackgraph/graph"

// Cyclicity classifies a partial path's relationship between its own
// precondition and postcondition (SPEC_FULL.md §4.3.7).
type Cyclicity int

const (
	// Free paths are concatenable to themselves without growing either
	// stack: safe to apply unboundedly.
	Free Cyclicity = iota
	// StrengthensPrecondition paths consume more from the input stacks
	// each time they're applied; bounded by stack depth, so kept.
	StrengthensPrecondition
	// StrengthensPostcondition paths produce more onto the output
	// stacks each time; unbounded growth, so discarded.
	StrengthensPostcondition
)

// OffsetVariables returns a copy of path with every symbol/scope stack
// variable shifted up by delta, so that concatenating it with another
// path's variables cannot collide.
func OffsetVariables(path PartialPath, symbolDelta SymbolStackVariable, scopeDelta ScopeStackVariable) PartialPath {
	offsetSymbol := func(s PartialSymbolStack) PartialSymbolStack {
		if s.HasVariable() {
			return s.WithVariable(s.Variable() + symbolDelta)
		}
		return s
	}
	offsetScope := func(s PartialScopeStack) PartialScopeStack {
		if s.HasVariable() {
			return s.WithVariable(s.Variable() + scopeDelta)
		}
		return s
	}
	path.SymbolPrecondition = offsetSymbol(path.SymbolPrecondition)
	path.SymbolPostcondition = offsetSymbol(path.SymbolPostcondition)
	path.ScopePrecondition = offsetScope(path.ScopePrecondition)
	path.ScopePostcondition = offsetScope(path.ScopePostcondition)
	return path
}

// LargestSymbolVariable returns the largest symbol-stack variable number
// appearing anywhere in path (0 if none).
func LargestSymbolVariable(path PartialPath) SymbolStackVariable {
	max := path.SymbolPrecondition.Variable()
	if path.SymbolPostcondition.Variable() > max {
		max = path.SymbolPostcondition.Variable()
	}
	return max
}

// LargestScopeVariable returns the largest scope-stack variable number
// appearing anywhere in path (0 if none).
func LargestScopeVariable(path PartialPath) ScopeStackVariable {
	max := path.ScopePrecondition.Variable()
	if path.ScopePostcondition.Variable() > max {
		max = path.ScopePostcondition.Variable()
	}
	return max
}

// joinNodeEffect reports whether the node just traversed to reach the
// join point pushed something onto the stack it affects, vs. popping.
// Used to decide which side of the join to half-open (SPEC_FULL.md
// §4.5.3).
func joinNodeEffect(g *graph.StackGraph, joinNode graph.NodeHandle) (pushesSymbol, popsSymbol bool) {
	n := g.Node(joinNode)
	switch n.Kind {
	case graph.NodeKindPushSymbol, graph.NodeKindPushScopedSymbol:
		pushesSymbol = true
	case graph.NodeKindPopSymbol, graph.NodeKindPopScopedSymbol:
		popsSymbol = true
	}
	return
}

// halfOpenClosedPartialPrecondition undoes the join node's stack effect
// on e's precondition when that node pops, so concatenation does not
// double-count the pop already reflected in p's postcondition.
func halfOpenClosedPartialPrecondition(p *Paths, e PartialPath, joinNode graph.NodeHandle, g *graph.StackGraph) PartialPath {
	_, popsSymbol := joinNodeEffect(g, joinNode)
	if popsSymbol && !e.SymbolPrecondition.IsEmpty() {
		e.SymbolPrecondition.PopFront(p)
	}
	return e
}

// halfOpenClosedPartialPostcondition undoes the join node's stack effect
// on p's postcondition when that node pushes, for the same reason as
// halfOpenClosedPartialPrecondition but on the other side of the join.
func halfOpenClosedPartialPostcondition(p *Paths, path PartialPath, joinNode graph.NodeHandle, g *graph.StackGraph) PartialPath {
	pushesSymbol, _ := joinNodeEffect(g, joinNode)
	if pushesSymbol && !path.SymbolPostcondition.IsEmpty() {
		if _, ok := path.SymbolPostcondition.Front(p); ok {
			path.SymbolPostcondition.PopFront(p)
		}
	}
	return path
}

// Concatenate joins lhs, the path already accumulated, with rhs, a
// candidate partial path whose start matches lhs.End, producing the path
// that results from traversing lhs then rhs (SPEC_FULL.md §4.5.2 step b).
// rhs's variables must already be offset clear of lhs's (see
// OffsetVariables).
func Concatenate(p *Paths, g *graph.StackGraph, lhs, rhs PartialPath) (PartialPath, error) {
	joinNode := lhs.End
	openRHS := halfOpenClosedPartialPrecondition(p, rhs, joinNode, g)
	openLHS := halfOpenClosedPartialPostcondition(p, lhs, joinNode, g)

	symbolBindings := NewSymbolStackBindings()
	scopeBindings := NewScopeStackBindings()

	if _, err := UnifyScopeStacks(p, openLHS.ScopePostcondition, openRHS.ScopePrecondition, scopeBindings); err != nil {
		return PartialPath{}, err
	}
	if _, err := UnifySymbolStacks(p, openLHS.SymbolPostcondition, openRHS.SymbolPrecondition, symbolBindings); err != nil {
		return PartialPath{}, err
	}

	result := PartialPath{
		Start:               lhs.Start,
		End:                 rhs.End,
		SymbolPrecondition:  ApplyPartialBindings(p, lhs.SymbolPrecondition, symbolBindings),
		SymbolPostcondition: ApplyPartialBindings(p, rhs.SymbolPostcondition, symbolBindings),
		ScopePrecondition:   ApplyPartialScopeBindings(p, lhs.ScopePrecondition, scopeBindings),
		ScopePostcondition:  ApplyPartialScopeBindings(p, rhs.ScopePostcondition, scopeBindings),
		Edges:               lhs.Edges,
	}
	rhs.Edges.Iter(p, func(e PartialPathEdge) { result.Edges.PushBack(p, e) })
	return result, nil
}

// IsCyclic classifies path by unifying its postcondition against a
// freshly-offset copy of its own precondition and inspecting which
// side's variable ended up bound (SPEC_FULL.md §4.3.7).
func IsCyclic(p *Paths, path PartialPath) Cyclicity {
	symbolDelta := LargestSymbolVariable(path)
	scopeDelta := LargestScopeVariable(path)
	offsetPre := OffsetVariables(PartialPath{
		SymbolPrecondition: path.SymbolPrecondition,
		ScopePrecondition:  path.ScopePrecondition,
	}, symbolDelta, scopeDelta)

	scopeBindings := NewScopeStackBindings()
	if _, err := UnifyScopeStacks(p, path.ScopePostcondition, offsetPre.ScopePrecondition, scopeBindings); err != nil {
		return StrengthensPostcondition
	}
	symbolBindings := NewSymbolStackBindings()
	if _, err := UnifySymbolStacks(p, path.SymbolPostcondition, offsetPre.SymbolPrecondition, symbolBindings); err != nil {
		return StrengthensPostcondition
	}

	if path.SymbolPostcondition.HasVariable() {
		if _, ok := symbolBindings.Get(path.SymbolPostcondition.Variable()); ok {
			return StrengthensPrecondition
		}
	}
	if path.SymbolPrecondition.HasVariable() {
		if _, ok := symbolBindings.Get(path.SymbolPrecondition.Variable() + symbolDelta); ok {
			return StrengthensPostcondition
		}
	}
	return Free
}
