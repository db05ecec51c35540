package partial

import (
	"github.com/viant/stackgraph/arena"
	"github.com/viant/stackgraph/graph"
)

// PartialPathEdge records one edge traversed by a partial path: the
// source node's stable identity (so the edge survives a graph merge that
// remaps handles) plus the precedence carried from the graph edge.
type PartialPathEdge struct {
	SourceNodeID graph.NodeID
	Precedence   int32
}

// PartialPathEdgeList is the ordered list of edges making up a partial
// path, oldest first.
type PartialPathEdgeList struct {
	deque  arena.Deque[PartialPathEdge]
	length int
}

// EmptyEdgeList returns an edge list with no edges.
func EmptyEdgeList() PartialPathEdgeList {
	return PartialPathEdgeList{deque: arena.EmptyDeque[PartialPathEdge]()}
}

// Len returns the number of edges.
func (l PartialPathEdgeList) Len() int { return l.length }

// PushBack appends an edge to the end of the list.
func (l *PartialPathEdgeList) PushBack(p *Paths, edge PartialPathEdge) {
	l.deque.PushBack(p.EdgeCells, edge)
	l.length++
}

// Iter visits every edge, oldest first.
func (l *PartialPathEdgeList) Iter(p *Paths, fn func(PartialPathEdge)) {
	l.deque.Iter(p.EdgeCells, fn)
}

// EnsureForwards precomputes the deque's forwards orientation.
func (l *PartialPathEdgeList) EnsureForwards(p *Paths) { l.deque.EnsureForwards(p.EdgeCells) }

// EnsureBothDirections precomputes both orientations of the deque.
func (l *PartialPathEdgeList) EnsureBothDirections(p *Paths) { l.deque.EnsureBothDirections(p.EdgeCells) }

// Shadows reports whether the edge lists self and other represent
// alternative routes through the same pair of nodes where self's edge
// has lower precedence and should therefore be hidden. This mirrors the
// source's non-exhaustive short-circuit: it returns true on the very
// first pair of same-position edges it finds shadowing each other,
// without checking whether a later pair does not. SPEC_FULL.md documents
// this as an open question to preserve rather than fix.
func (l *PartialPathEdgeList) Shadows(p *Paths, other *PartialPathEdgeList) bool {
	var selfEdges, otherEdges []PartialPathEdge
	l.Iter(p, func(e PartialPathEdge) { selfEdges = append(selfEdges, e) })
	other.Iter(p, func(e PartialPathEdge) { otherEdges = append(otherEdges, e) })
	n := len(selfEdges)
	if len(otherEdges) < n {
		n = len(otherEdges)
	}
	for i := 0; i < n; i++ {
		if selfEdges[i].SourceNodeID == otherEdges[i].SourceNodeID && selfEdges[i].Precedence < otherEdges[i].Precedence {
			return true
		}
	}
	return false
}

// PartialPath is the core unit of partial name-resolution computation:
// a path fragment from start to end together with the pre/postcondition
// partial stacks it requires and produces.
type PartialPath struct {
	Start, End graph.NodeHandle

	SymbolPrecondition, SymbolPostcondition PartialSymbolStack
	ScopePrecondition, ScopePostcondition   PartialScopeStack

	Edges PartialPathEdgeList
}

// FromNode lifts a single node to a singleton partial path with fresh
// variables %1/$1 in both pre- and postcondition, then applies the
// node's own stack effect to the postcondition (SPEC_FULL.md §4.3.1).
func FromNode(p *Paths, g *graph.StackGraph, node graph.NodeHandle) (PartialPath, error) {
	path := PartialPath{
		Start:               node,
		End:                 node,
		SymbolPrecondition:  VariableSymbolStack(1),
		SymbolPostcondition: VariableSymbolStack(1),
		ScopePrecondition:   VariableScopeStack(1),
		ScopePostcondition:  VariableScopeStack(1),
		Edges:               EmptyEdgeList(),
	}
	if err := appendToPartialStacks(p, g, node, &path); err != nil {
		return PartialPath{}, err
	}
	return path, nil
}

// Append extends path across edge, which must leave path.End
// (SPEC_FULL.md §4.3.2). On success path.End becomes edge.Sink.
func Append(p *Paths, g *graph.StackGraph, path *PartialPath, sink graph.NodeHandle, precedence int32) error {
	sourceID := g.Node(path.End).ID
	if err := appendToPartialStacks(p, g, sink, path); err != nil {
		return err
	}
	path.End = sink
	path.Edges.PushBack(p, PartialPathEdge{SourceNodeID: sourceID, Precedence: precedence})
	return resolveFromPostcondition(p, g, path)
}

// appendToPartialStacks applies node's stack effect to path's
// postcondition, per the exhaustive match in SPEC_FULL.md §4.3.3. It may
// also extend path's precondition when the node consumes something the
// postcondition does not currently carry (the lazy-requirement case).
func appendToPartialStacks(p *Paths, g *graph.StackGraph, nodeHandle graph.NodeHandle, path *PartialPath) error {
	node := g.Node(nodeHandle)
	switch node.Kind {
	case graph.NodeKindDropScopes:
		path.ScopePostcondition = EmptyScopeStack()

	case graph.NodeKindJumpToScope:
		// no effect; the actual jump happens in resolveFromPostcondition.

	case graph.NodeKindPopSymbol, graph.NodeKindPopScopedSymbol:
		scoped := node.Kind == graph.NodeKindPopScopedSymbol
		if !path.SymbolPostcondition.IsEmpty() {
			top, _ := path.SymbolPostcondition.Front(p)
			if top.Symbol != node.Symbol {
				return errIncorrectPoppedSymbol
			}
			if scoped {
				if !top.HasScopes {
					return errMissingAttachedScopeList
				}
				path.SymbolPostcondition.PopFront(p)
				path.ScopePostcondition = top.Scopes
			} else {
				if top.HasScopes {
					return errUnexpectedAttachedScopeList
				}
				path.SymbolPostcondition.PopFront(p)
			}
			return nil
		}
		if !path.SymbolPostcondition.HasVariable() {
			return errSymbolStackUnsatisfied
		}
		// Lazy requirement: the postcondition doesn't carry this symbol
		// yet, so require it in the precondition instead. The attached
		// scope stack variable must be fresher than any variable already
		// in use, and the postcondition is tied to that same variable so
		// a later unification step can still resolve it symbolically.
		var required PartialScopedSymbol
		if scoped {
			scopeVar := freshScopeStackVariable(p, path)
			required = PartialScopedSymbol{Symbol: node.Symbol, Scopes: VariableScopeStack(scopeVar), HasScopes: true}
			path.ScopePostcondition = VariableScopeStack(scopeVar)
		} else {
			required = PartialScopedSymbol{Symbol: node.Symbol}
		}
		path.SymbolPrecondition.PushBack(p, required)

	case graph.NodeKindPushSymbol:
		path.SymbolPostcondition.PushFront(p, PartialScopedSymbol{Symbol: node.Symbol})

	case graph.NodeKindPushScopedSymbol:
		attached := path.ScopePostcondition
		attached.PushFront(p, nodeHandleFor(g, node.Scope))
		path.SymbolPostcondition.PushFront(p, PartialScopedSymbol{Symbol: node.Symbol, Scopes: attached, HasScopes: true})

	case graph.NodeKindRoot, graph.NodeKindScope:
		// no stack effect.
	}
	return nil
}

// freshScopeStackVariable returns a scope-stack variable not already used
// anywhere in path's precondition, restored from partial.rs's
// `fresh_scope_stack_variable`/`fresher_than` (~lines 1980-2000, 233):
// one more than the largest scope-stack variable appearing in either
// precondition stack. Postconditions never need checking, since it is
// never valid for one to reference a variable absent from the
// precondition.
func freshScopeStackVariable(p *Paths, path *PartialPath) ScopeStackVariable {
	max := path.SymbolPrecondition.LargestScopeStackVariable(p)
	if v := path.ScopePrecondition.Variable(); v > max {
		max = v
	}
	return max + 1
}

func nodeHandleFor(g *graph.StackGraph, id graph.NodeID) graph.NodeHandle {
	h, _ := g.NodeForID(id)
	return h
}

// resolveFromPostcondition consumes a latent jump-to-scope from the top
// of the scope-stack postcondition once path.End is the jump-to-scope
// node (SPEC_FULL.md §4.3.4).
func resolveFromPostcondition(p *Paths, g *graph.StackGraph, path *PartialPath) error {
	if path.End != g.JumpToScope() {
		return nil
	}
	if path.ScopePostcondition.IsEmpty() {
		if !path.ScopePostcondition.HasVariable() {
			return errEmptyScopeStack
		}
		// Only a variable: the jump remains latent until further binding.
		return nil
	}
	scope, _ := path.ScopePostcondition.PopFront(p)
	path.Edges.PushBack(p, PartialPathEdge{SourceNodeID: g.Node(path.End).ID, Precedence: 0})
	path.End = scope
	return nil
}

// StartsAtReference reports whether this partial path could begin a
// complete path: its start is a reference and its symbol precondition
// is satisfiable by an empty stack.
func (path *PartialPath) StartsAtReference(g *graph.StackGraph) bool {
	start := g.Node(path.Start)
	return start.IsReferenceNode() && path.SymbolPrecondition.IsEmpty()
}

// EndsAtDefinition reports whether this partial path could end a
// complete path: its end is a definition and its symbol postcondition
// is empty.
func (path *PartialPath) EndsAtDefinition(g *graph.StackGraph) bool {
	end := g.Node(path.End)
	return end.IsDefinitionNode() && path.SymbolPostcondition.IsEmpty()
}

// Shadows reports whether path is shadowed by other, as decided by
// PartialPathEdgeList.Shadows: true at the first edge position where both
// paths pass through the same source node and path's edge there has lower
// precedence than other's. Shadowing is not commutative. Restored from partial.rs's PartialPath::shadows
// (~line 1768), which simply delegates to the edge list's own shadows.
func (path *PartialPath) Shadows(p *Paths, other *PartialPath) bool {
	return path.Edges.Shadows(p, &other.Edges)
}

// Equals reports whether path and other are the same partial path: same
// endpoints and element-wise equal pre/postcondition stacks. Restored
// from partial.rs's PartialPath::equals (~line 1772).
func (path *PartialPath) Equals(p *Paths, other *PartialPath) bool {
	return path.Start == other.Start &&
		path.End == other.End &&
		path.SymbolPrecondition.Equals(p, other.SymbolPrecondition) &&
		path.SymbolPostcondition.Equals(p, other.SymbolPostcondition) &&
		path.ScopePrecondition.Equals(p, other.ScopePrecondition) &&
		path.ScopePostcondition.Equals(p, other.ScopePostcondition)
}

// Cmp orders path relative to other: by start node, then end node, then
// each stack in turn (symbol precondition, symbol postcondition, scope
// precondition, scope postcondition). Edge precedence is not compared.
// Restored
// from partial.rs's PartialPath::cmp (~line 1789).
func (path *PartialPath) Cmp(g *graph.StackGraph, p *Paths, other *PartialPath) int {
	if path.Start != other.Start {
		if path.Start < other.Start {
			return -1
		}
		return 1
	}
	if path.End != other.End {
		if path.End < other.End {
			return -1
		}
		return 1
	}
	if c := path.SymbolPrecondition.Cmp(g, p, other.SymbolPrecondition); c != 0 {
		return c
	}
	if c := path.SymbolPostcondition.Cmp(g, p, other.SymbolPostcondition); c != 0 {
		return c
	}
	if c := path.ScopePrecondition.Cmp(p, other.ScopePrecondition); c != 0 {
		return c
	}
	return path.ScopePostcondition.Cmp(p, other.ScopePostcondition)
}

// IsCompleteAsPossible is the filter used by per-file enumeration
// (SPEC_FULL.md §4.3.5): the start is root, an exported scope, or a
// reference matching an empty precondition, and the end is root,
// jump-to-scope, or a definition matching an empty postcondition.
func (path *PartialPath) IsCompleteAsPossible(g *graph.StackGraph) bool {
	start := g.Node(path.Start)
	startOK := start.IsRoot() ||
		(start.Kind == graph.NodeKindScope && start.IsExportedScope) ||
		path.StartsAtReference(g)

	end := g.Node(path.End)
	endOK := end.IsRoot() || end.IsJumpToScope() || path.EndsAtDefinition(g)

	return startOK && endOK
}

// IsProductive reports whether this partial path adds information: it is
// not self-looping with an identical pre/postcondition on both stacks.
// A non-productive path can be dropped since stitching it in contributes
// nothing a caller couldn't get without it.
func (path *PartialPath) IsProductive(p *Paths) bool {
	if path.Start != path.End {
		return true
	}
	return !partialSymbolStacksEqual(p, path.SymbolPrecondition, path.SymbolPostcondition) ||
		!partialScopeStacksEqual(p, path.ScopePrecondition, path.ScopePostcondition)
}

func partialSymbolStacksEqual(p *Paths, a, b PartialSymbolStack) bool {
	if a.Variable() != b.Variable() || a.Len() != b.Len() {
		return false
	}
	var as, bs []PartialScopedSymbol
	a.Iter(p, func(s PartialScopedSymbol) { as = append(as, s) })
	b.Iter(p, func(s PartialScopedSymbol) { bs = append(bs, s) })
	for i := range as {
		if as[i].Symbol != bs[i].Symbol || as[i].HasScopes != bs[i].HasScopes {
			return false
		}
		if as[i].HasScopes && !partialScopeStacksEqual(p, as[i].Scopes, bs[i].Scopes) {
			return false
		}
	}
	return true
}

// EnsureForwards precomputes every constituent deque's forwards
// orientation, restored from the original crate's `ensure_forwards`
// (partial.rs ~line 1928) so a caller preparing to serialize or display
// this path pays the reversal cost once, up front.
func (path *PartialPath) EnsureForwards(p *Paths) {
	path.SymbolPrecondition.EnsureForwards(p)
	path.SymbolPostcondition.EnsureForwards(p)
	path.ScopePrecondition.EnsureForwards(p)
	path.ScopePostcondition.EnsureForwards(p)
	path.Edges.EnsureForwards(p)
}

// EnsureBothDirections precomputes every constituent deque's reversal as
// well, restored from the original crate's `ensure_both_directions`
// (partial.rs ~line 1901).
func (path *PartialPath) EnsureBothDirections(p *Paths) {
	path.SymbolPrecondition.EnsureBothDirections(p)
	path.SymbolPostcondition.EnsureBothDirections(p)
	path.ScopePrecondition.EnsureBothDirections(p)
	path.ScopePostcondition.EnsureBothDirections(p)
	path.Edges.EnsureBothDirections(p)
}

// EliminatePreconditionStackVariables replaces any free precondition
// stack variable with an empty stack, restored from the original crate's
// `eliminate_precondition_stack_variables` (partial.rs ~line 2085). A
// caller applies it to seed paths before passing them to FromPartialPaths
// for query-time reference resolution (SPEC_FULL.md §4.5.1);
// FromPartialPaths does not call it itself. A caller-supplied seed path's
// precondition variable represents "whatever the caller hasn't yet
// constrained", which for a fresh query is nothing.
func (path *PartialPath) EliminatePreconditionStackVariables(p *Paths) {
	symbolBindings := NewSymbolStackBindings()
	scopeBindings := NewScopeStackBindings()
	if path.SymbolPrecondition.HasVariable() {
		symbolBindings.Add(path.SymbolPrecondition.Variable(), EmptySymbolStack())
	}
	if path.ScopePrecondition.HasVariable() {
		scopeBindings.Add(path.ScopePrecondition.Variable(), EmptyScopeStack())
	}

	path.SymbolPrecondition = ApplyPartialBindings(p, path.SymbolPrecondition, symbolBindings)
	path.ScopePrecondition = ApplyPartialScopeBindings(p, path.ScopePrecondition, scopeBindings)
	path.SymbolPostcondition = ApplyPartialBindings(p, path.SymbolPostcondition, symbolBindings)
	path.ScopePostcondition = ApplyPartialScopeBindings(p, path.ScopePostcondition, scopeBindings)
}

// ResolveToNode resolves a dangling jump-to-scope against a
// caller-supplied scope node rather than popping one from the
// postcondition, restored from the original crate's `resolve_to_node`
// (partial.rs ~lines 2190-2226). Used when a query-time caller wants to
// force a particular dynamic scope instead of letting the stitcher infer
// one from the stack.
func ResolveToNode(p *Paths, g *graph.StackGraph, path *PartialPath, scope graph.NodeHandle) error {
	if path.End != g.JumpToScope() {
		return errIncorrectSourceNode
	}
	path.Edges.PushBack(p, PartialPathEdge{SourceNodeID: g.Node(path.End).ID, Precedence: 0})
	path.End = scope
	return nil
}

func partialScopeStacksEqual(p *Paths, a, b PartialScopeStack) bool {
	if a.Variable() != b.Variable() || a.Len() != b.Len() {
		return false
	}
	var as, bs []graph.NodeHandle
	a.Iter(p, func(h graph.NodeHandle) { as = append(as, h) })
	b.Iter(p, func(h graph.NodeHandle) { bs = append(bs, h) })
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
