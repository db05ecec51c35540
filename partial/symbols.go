package partial

import "github.com/viant/stackgraph/graph"

// Symbols returns the bare symbol handles in s's concrete prefix,
// front-to-back, ignoring any attached scope stacks. Used by the
// database (SPEC_FULL.md §4.4) to build a symbol-stack key from a
// partial path's precondition.
func (s *PartialSymbolStack) Symbols(p *Paths) []graph.SymbolHandle {
	var out []graph.SymbolHandle
	s.Iter(p, func(sym PartialScopedSymbol) { out = append(out, sym.Symbol) })
	return out
}
