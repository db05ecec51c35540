package partial

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/stackgraph/graph"
)

// String renders sym for human-readable assertions: the symbol's
// content, followed by "/(scopes)" if it carries an attached scope
// stack. Mirrors partial.rs's DisplayWithPartialPaths impl for
// PartialScopedSymbol (~line 406).
func (s PartialScopedSymbol) String(g *graph.StackGraph, p *Paths) string {
	if !s.HasScopes {
		return g.Symbol(s.Symbol)
	}
	return fmt.Sprintf("%s/(%s)", g.Symbol(s.Symbol), s.Scopes.String(g, p))
}

// String renders the stack's concrete prefix as comma-joined symbols,
// followed by the trailing variable (if any). Call EnsureForwards first
// if the stack might currently be reversed: String only reads. Mirrors
// partial.rs's DisplayWithPartialPaths impl for PartialSymbolStack
// (~line 858).
func (s PartialSymbolStack) String(g *graph.StackGraph, p *Paths) string {
	var parts []string
	s.Iter(p, func(sym PartialScopedSymbol) { parts = append(parts, sym.String(g, p)) })
	if s.variable != 0 {
		parts = append(parts, "%"+strconv.FormatUint(uint64(s.variable), 10))
	}
	return strings.Join(parts, ",")
}

// String renders the stack's concrete prefix as comma-joined scope node
// IDs, followed by the trailing variable (if any). Mirrors partial.rs's
// DisplayWithPartialPaths impl for PartialScopeStack (~line 1261).
func (s PartialScopeStack) String(g *graph.StackGraph, p *Paths) string {
	var parts []string
	s.Iter(p, func(h graph.NodeHandle) { parts = append(parts, g.Node(h).ID.String()) })
	if s.variable != 0 {
		parts = append(parts, "$"+strconv.FormatUint(uint64(s.variable), 10))
	}
	return strings.Join(parts, ",")
}

// String renders edge's source node, followed by "(precedence)" if
// non-zero. Mirrors partial.rs's DisplayWithPartialPaths impl for
// PartialPathEdge (~line 1498).
func (e PartialPathEdge) String(g *graph.StackGraph) string {
	h, ok := g.NodeForID(e.SourceNodeID)
	if !ok {
		return "[missing]"
	}
	s := g.Node(h).String(g)
	if e.Precedence != 0 {
		s += fmt.Sprintf("(%d)", e.Precedence)
	}
	return s
}

// String renders every edge in order, oldest first. Call EnsureForwards
// first if the list might currently be reversed.
func (l *PartialPathEdgeList) String(g *graph.StackGraph, p *Paths) string {
	var parts []string
	l.Iter(p, func(e PartialPathEdge) { parts = append(parts, e.String(g)) })
	return strings.Join(parts, ",")
}

// String renders path as "precondition -> postcondition" for both the
// symbol and scope stacks, plus its traversed edges, for use in
// integration-test assertions instead of comparing opaque structs. Call
// EnsureForwards first so every constituent deque reads in its natural
// order.
func (path *PartialPath) String(g *graph.StackGraph, p *Paths) string {
	return fmt.Sprintf(
		"%s (%s) -> %s (%s), edges: %s",
		path.SymbolPrecondition.String(g, p),
		path.ScopePrecondition.String(g, p),
		path.SymbolPostcondition.String(g, p),
		path.ScopePostcondition.String(g, p),
		path.Edges.String(g, p),
	)
}
