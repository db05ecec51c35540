package partial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/stackgraph/graph"
)

func TestFromNodeLiftsPushSymbol(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	file := g.GetOrCreateFile("a.go")
	sym := g.AddSymbol("x")
	refID := g.NewNodeID(file)
	ref := g.AddNode(graph.NewPushSymbolNode(refID, sym, true))

	path, err := FromNode(p, g, ref)
	require.NoError(t, err)
	assert.Equal(t, ref, path.Start)
	assert.Equal(t, ref, path.End)
	assert.Equal(t, 1, path.SymbolPostcondition.Len())
	top, ok := path.SymbolPostcondition.Front(p)
	require.True(t, ok)
	assert.Equal(t, sym, top.Symbol)
}

func TestAppendPopSymbolConsumesMatchingPush(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	file := g.GetOrCreateFile("a.go")
	sym := g.AddSymbol("x")

	pushID := g.NewNodeID(file)
	push := g.AddNode(graph.NewPushSymbolNode(pushID, sym, true))
	popID := g.NewNodeID(file)
	pop := g.AddNode(graph.NewPopSymbolNode(popID, sym, true))
	g.AddEdge(push, pop, 0)

	path, err := FromNode(p, g, push)
	require.NoError(t, err)
	require.NoError(t, Append(p, g, &path, pop, 0))

	assert.Equal(t, pop, path.End)
	assert.True(t, path.SymbolPostcondition.IsEmpty())
	assert.True(t, path.EndsAtDefinition(g))
}

func TestAppendPopSymbolMismatchFails(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	file := g.GetOrCreateFile("a.go")
	x := g.AddSymbol("x")
	y := g.AddSymbol("y")

	pushID := g.NewNodeID(file)
	push := g.AddNode(graph.NewPushSymbolNode(pushID, x, true))
	popID := g.NewNodeID(file)
	pop := g.AddNode(graph.NewPopSymbolNode(popID, y, true))

	path, err := FromNode(p, g, push)
	require.NoError(t, err)
	err = Append(p, g, &path, pop, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errIncorrectPoppedSymbol)
}

func TestAppendPopSymbolLazyRequirementExtendsPrecondition(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	file := g.GetOrCreateFile("a.go")
	sym := g.AddSymbol("x")

	popID := g.NewNodeID(file)
	pop := g.AddNode(graph.NewPopSymbolNode(popID, sym, true))

	path, err := FromNode(p, g, pop)
	require.NoError(t, err)
	// postcondition had only a variable, so the pop's requirement moved
	// into the precondition instead of failing outright.
	assert.Equal(t, 1, path.SymbolPrecondition.Len())
	front, ok := path.SymbolPrecondition.Front(p)
	require.True(t, ok)
	assert.Equal(t, sym, front.Symbol)
}

func TestUnifySymbolStacksBindsVariableToConcretePrefix(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	sym := g.AddSymbol("x")

	concrete := EmptySymbolStack()
	concrete.PushFront(p, PartialScopedSymbol{Symbol: sym})
	variable := VariableSymbolStack(1)

	bindings := NewSymbolStackBindings()
	result, err := UnifySymbolStacks(p, concrete, variable, bindings)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Len())

	bound, ok := bindings.Get(1)
	require.True(t, ok)
	assert.Equal(t, 1, bound.Len())
}

func TestUnifySymbolStacksSameVariableWithRemainingContentFails(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	sym := g.AddSymbol("x")

	lhs := VariableSymbolStack(1)
	rhs := EmptySymbolStack().WithVariable(1)
	rhs.PushFront(p, PartialScopedSymbol{Symbol: sym})

	bindings := NewSymbolStackBindings()
	_, err := UnifySymbolStacks(p, lhs, rhs, bindings)
	require.Error(t, err)
	assert.ErrorIs(t, err, errIncompatibleSymbolStackVariables)
}

func TestIsProductiveForSelfLoopThatChangesPostcondition(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	file := g.GetOrCreateFile("a.go")
	sym := g.AddSymbol("x")
	n1 := g.AddNode(graph.NewPushSymbolNode(g.NewNodeID(file), sym, true))

	path, err := FromNode(p, g, n1)
	require.NoError(t, err)
	assert.True(t, path.IsProductive(p))
}

func TestShadowsShortCircuitsOnFirstMatch(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	file := g.GetOrCreateFile("a.go")
	n := g.AddNode(graph.NewDropScopesNode(g.NewNodeID(file)))
	nID := g.Node(n).ID

	low := EmptyEdgeList()
	low.PushBack(p, PartialPathEdge{SourceNodeID: nID, Precedence: 0})
	high := EmptyEdgeList()
	high.PushBack(p, PartialPathEdge{SourceNodeID: nID, Precedence: 5})

	assert.True(t, low.Shadows(p, &high))
}

func TestFindAllPartialPathsInFileVisitsSeedsAndExtensions(t *testing.T) {
	g := graph.New()
	p := NewPaths()
	file := g.GetOrCreateFile("a.go")
	sym := g.AddSymbol("x")

	push := g.AddNode(graph.NewPushSymbolNode(g.NewNodeID(file), sym, true))
	pop := g.AddNode(graph.NewPopSymbolNode(g.NewNodeID(file), sym, true))
	g.AddEdge(push, pop, 0)

	var visited int
	err := FindAllPartialPathsInFile(p, g, file, nil, func(PartialPath) { visited++ })
	require.NoError(t, err)
	assert.Greater(t, visited, 0)
}
