package partial

import "github.com/viant/stackgraph/graph"

// SymbolStackBindings is the binding environment produced by unification:
// a sparse array indexed by (variable - 1), since variables are numbered
// from 1.
//
// Bounds check preserved verbatim from the source this is ported from: it
// compares len(bindings) < index rather than <=. SPEC_FULL.md documents
// this as an open question to replicate, not fix, so a variable whose
// index exactly equals the current length is treated as unbound rather
// than triggering a grow-then-miss. This only matters at the boundary
// case; callers should not rely on it.
type SymbolStackBindings struct {
	bindings []*PartialSymbolStack
}

// NewSymbolStackBindings creates an empty binding environment.
func NewSymbolStackBindings() *SymbolStackBindings {
	return &SymbolStackBindings{}
}

// Get returns the binding for v, if any.
func (b *SymbolStackBindings) Get(v SymbolStackVariable) (PartialSymbolStack, bool) {
	index := int(v) - 1
	if len(b.bindings) < index {
		return PartialSymbolStack{}, false
	}
	if index < 0 || index >= len(b.bindings) || b.bindings[index] == nil {
		return PartialSymbolStack{}, false
	}
	return *b.bindings[index], true
}

// Add binds v to stack. Rebinding an already-bound variable is the
// caller's responsibility to reconcile (via Unify) before calling Add
// again; Add itself always overwrites.
func (b *SymbolStackBindings) Add(v SymbolStackVariable, stack PartialSymbolStack) {
	index := int(v) - 1
	if len(b.bindings) < index {
		grown := make([]*PartialSymbolStack, index)
		copy(grown, b.bindings)
		b.bindings = grown
	}
	for len(b.bindings) <= index {
		b.bindings = append(b.bindings, nil)
	}
	value := stack
	b.bindings[index] = &value
}

// ScopeStackBindings is the scope-stack analog of SymbolStackBindings,
// with the same documented bounds-check quirk.
type ScopeStackBindings struct {
	bindings []*PartialScopeStack
}

// NewScopeStackBindings creates an empty binding environment.
func NewScopeStackBindings() *ScopeStackBindings {
	return &ScopeStackBindings{}
}

func (b *ScopeStackBindings) Get(v ScopeStackVariable) (PartialScopeStack, bool) {
	index := int(v) - 1
	if len(b.bindings) < index {
		return PartialScopeStack{}, false
	}
	if index < 0 || index >= len(b.bindings) || b.bindings[index] == nil {
		return PartialScopeStack{}, false
	}
	return *b.bindings[index], true
}

func (b *ScopeStackBindings) Add(v ScopeStackVariable, stack PartialScopeStack) {
	index := int(v) - 1
	if len(b.bindings) < index {
		grown := make([]*PartialScopeStack, index)
		copy(grown, b.bindings)
		b.bindings = grown
	}
	for len(b.bindings) <= index {
		b.bindings = append(b.bindings, nil)
	}
	value := stack
	b.bindings[index] = &value
}

// ApplyPartialBindings substitutes stack's trailing variable (if any)
// with its binding from env, consing the concrete prefix of the binding
// back onto stack's own concrete prefix. If stack has no variable, or
// the variable is unbound, stack is returned unchanged.
func ApplyPartialBindings(p *Paths, stack PartialSymbolStack, env *SymbolStackBindings) PartialSymbolStack {
	if !stack.HasVariable() {
		return stack
	}
	bound, ok := env.Get(stack.Variable())
	if !ok {
		return stack
	}
	result := bound
	var prefix []PartialScopedSymbol
	stack.Iter(p, func(sym PartialScopedSymbol) { prefix = append(prefix, sym) })
	for i := len(prefix) - 1; i >= 0; i-- {
		result.PushFront(p, prefix[i])
	}
	return result
}

// ApplyPartialScopeBindings is ApplyPartialBindings for scope stacks.
func ApplyPartialScopeBindings(p *Paths, stack PartialScopeStack, env *ScopeStackBindings) PartialScopeStack {
	if !stack.HasVariable() {
		return stack
	}
	bound, ok := env.Get(stack.Variable())
	if !ok {
		return stack
	}
	result := bound
	var prefix []graph.NodeHandle
	stack.Iter(p, func(h graph.NodeHandle) { prefix = append(prefix, h) })
	for i := len(prefix) - 1; i >= 0; i-- {
		result.PushFront(p, prefix[i])
	}
	return result
}
