package partial

import "github.com/viant/stackgraph/graph"

// UnifySymbolStacks produces the largest partial symbol stack satisfying
// both lhs and rhs, recording any variable bindings this requires into
// bindings. See SPEC_FULL.md §4.3.6.
func UnifySymbolStacks(p *Paths, lhs, rhs PartialSymbolStack, bindings *SymbolStackBindings) (PartialSymbolStack, error) {
	var prefix []PartialScopedSymbol
	for {
		lf, lok := lhs.Front(p)
		rf, rok := rhs.Front(p)
		if !lok || !rok {
			break
		}
		if lf.Symbol != rf.Symbol {
			break
		}
		if lf.HasScopes != rf.HasScopes {
			break
		}
		if lf.HasScopes {
			scopeBindings := NewScopeStackBindings()
			if _, err := UnifyScopeStacks(p, lf.Scopes, rf.Scopes, scopeBindings); err != nil {
				break
			}
		}
		prefix = append(prefix, lf)
		lhs.PopFront(p)
		rhs.PopFront(p)
	}

	result := unifyStackTails(p, lhs, rhs, bindings)
	if result.err != nil {
		return PartialSymbolStack{}, result.err
	}
	out := result.stack
	for i := len(prefix) - 1; i >= 0; i-- {
		out.PushFront(p, prefix[i])
	}
	return out, nil
}

type symbolTailResult struct {
	stack PartialSymbolStack
	err   error
}

func unifyStackTails(p *Paths, lhs, rhs PartialSymbolStack, bindings *SymbolStackBindings) symbolTailResult {
	lEmpty, rEmpty := lhs.IsEmpty(), rhs.IsEmpty()
	lVar, rVar := lhs.HasVariable(), rhs.HasVariable()

	switch {
	case lEmpty && rEmpty && lVar && rVar:
		if lhs.Variable() == rhs.Variable() {
			return symbolTailResult{stack: EmptySymbolStack().WithVariable(lhs.Variable())}
		}
		bindings.Add(rhs.Variable(), VariableSymbolStack(lhs.Variable()))
		return symbolTailResult{stack: EmptySymbolStack().WithVariable(lhs.Variable())}
	case lEmpty && rEmpty && lVar && !rVar:
		bindings.Add(lhs.Variable(), EmptySymbolStack())
		return symbolTailResult{stack: EmptySymbolStack()}
	case lEmpty && rEmpty && !lVar && rVar:
		bindings.Add(rhs.Variable(), EmptySymbolStack())
		return symbolTailResult{stack: EmptySymbolStack()}
	case lEmpty && rEmpty && !lVar && !rVar:
		return symbolTailResult{stack: EmptySymbolStack()}
	case lEmpty && !lVar:
		return symbolTailResult{err: errSymbolStackUnsatisfied}
	case rEmpty && !rVar:
		return symbolTailResult{err: errSymbolStackUnsatisfied}
	case lEmpty && lVar:
		if lhs.Variable() == rhs.Variable() {
			return symbolTailResult{err: errIncompatibleSymbolStackVariables}
		}
		bindings.Add(lhs.Variable(), rhs)
		return symbolTailResult{stack: rhs}
	case rEmpty && rVar:
		if lhs.Variable() == rhs.Variable() {
			return symbolTailResult{err: errIncompatibleSymbolStackVariables}
		}
		bindings.Add(rhs.Variable(), lhs)
		return symbolTailResult{stack: lhs}
	default:
		return symbolTailResult{err: errSymbolStackUnsatisfied}
	}
}

// UnifyScopeStacks is the scope-stack analog of UnifySymbolStacks.
func UnifyScopeStacks(p *Paths, lhs, rhs PartialScopeStack, bindings *ScopeStackBindings) (PartialScopeStack, error) {
	var prefix []graph.NodeHandle
	for {
		lf, lok := lhs.Front(p)
		rf, rok := rhs.Front(p)
		if !lok || !rok || lf != rf {
			break
		}
		prefix = append(prefix, lf)
		lhs.PopFront(p)
		rhs.PopFront(p)
	}

	out, err := unifyScopeStackTails(lhs, rhs, bindings)
	if err != nil {
		return PartialScopeStack{}, err
	}
	for i := len(prefix) - 1; i >= 0; i-- {
		out.PushFront(p, prefix[i])
	}
	return out, nil
}

func unifyScopeStackTails(lhs, rhs PartialScopeStack, bindings *ScopeStackBindings) (PartialScopeStack, error) {
	lEmpty, rEmpty := lhs.IsEmpty(), rhs.IsEmpty()
	lVar, rVar := lhs.HasVariable(), rhs.HasVariable()

	switch {
	case lEmpty && rEmpty && lVar && rVar:
		if lhs.Variable() != rhs.Variable() {
			bindings.Add(rhs.Variable(), VariableScopeStack(lhs.Variable()))
		}
		return EmptyScopeStack().WithVariable(lhs.Variable()), nil
	case lEmpty && rEmpty && lVar && !rVar:
		bindings.Add(lhs.Variable(), EmptyScopeStack())
		return EmptyScopeStack(), nil
	case lEmpty && rEmpty && !lVar && rVar:
		bindings.Add(rhs.Variable(), EmptyScopeStack())
		return EmptyScopeStack(), nil
	case lEmpty && rEmpty && !lVar && !rVar:
		return EmptyScopeStack(), nil
	case lEmpty && !lVar:
		return PartialScopeStack{}, errScopeStackUnsatisfied
	case rEmpty && !rVar:
		return PartialScopeStack{}, errScopeStackUnsatisfied
	case lEmpty && lVar:
		if lhs.Variable() == rhs.Variable() {
			return PartialScopeStack{}, errIncompatibleScopeStackVariables
		}
		bindings.Add(lhs.Variable(), rhs)
		return rhs, nil
	case rEmpty && rVar:
		if lhs.Variable() == rhs.Variable() {
			return PartialScopeStack{}, errIncompatibleScopeStackVariables
		}
		bindings.Add(rhs.Variable(), lhs)
		return lhs, nil
	default:
		return PartialScopeStack{}, errScopeStackUnsatisfied
	}
}
