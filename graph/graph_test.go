package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternerDeduplicates(t *testing.T) {
	g := New()
	a := g.AddSymbol("foo")
	b := g.AddSymbol("foo")
	c := g.AddSymbol("bar")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "foo", g.Symbol(a))
	assert.Equal(t, "bar", g.Symbol(c))
}

func TestGetOrCreateFileDeduplicates(t *testing.T) {
	g := New()
	f1 := g.GetOrCreateFile("main.go")
	f2 := g.GetOrCreateFile("main.go")
	f3 := g.GetOrCreateFile("util.go")
	assert.Equal(t, f1, f2)
	assert.NotEqual(t, f1, f3)
}

func TestRootAndJumpToScopeAreSingletons(t *testing.T) {
	g := New()
	root := g.Node(g.Root())
	jump := g.Node(g.JumpToScope())
	assert.True(t, root.IsRoot())
	assert.True(t, jump.IsJumpToScope())
	assert.True(t, root.IsEndpoint())
	assert.False(t, jump.IsEndpoint())
}

func TestNodeConstructorsSetKindAndFields(t *testing.T) {
	g := New()
	file := g.GetOrCreateFile("a.go")
	sym := g.AddSymbol("x")

	defID := g.NewNodeID(file)
	def := NewPopSymbolNode(defID, sym, true)
	defHandle := g.AddNode(def)
	assert.True(t, g.Node(defHandle).IsDefinitionNode())

	refID := g.NewNodeID(file)
	ref := NewPushSymbolNode(refID, sym, true)
	refHandle := g.AddNode(ref)
	assert.True(t, g.Node(refHandle).IsReferenceNode())

	scopeID := g.NewNodeID(file)
	scope := NewScopeNode(scopeID, true)
	scopeHandle := g.AddNode(scope)
	assert.True(t, g.Node(scopeHandle).IsExportedScope)

	scopedID := g.NewNodeID(file)
	scoped := NewPushScopedSymbolNode(scopedID, sym, scopeID, true)
	scopedHandle := g.AddNode(scoped)
	assert.True(t, g.Node(scopedHandle).IsScoped())
	assert.Equal(t, scopeID, g.Node(scopedHandle).Scope)
}

func TestAddNodeReturnsNullHandleOnDuplicateID(t *testing.T) {
	g := New()
	file := g.GetOrCreateFile("a.go")
	id := g.NewNodeID(file)
	first := g.AddNode(NewDropScopesNode(id))
	assert.False(t, first.IsNull())

	second := g.AddNode(NewDropScopesNode(id))
	assert.True(t, second.IsNull())
}

func TestEdgesOrderedByDescendingPrecedence(t *testing.T) {
	g := New()
	file := g.GetOrCreateFile("a.go")
	source := g.AddNode(NewDropScopesNode(g.NewNodeID(file)))
	low := g.AddNode(NewDropScopesNode(g.NewNodeID(file)))
	high := g.AddNode(NewDropScopesNode(g.NewNodeID(file)))

	g.AddEdge(source, low, 0)
	g.AddEdge(source, high, 10)

	edges := g.OutgoingEdges(source)
	require.Len(t, edges, 2)
	assert.Equal(t, high, edges[0].Sink)
	assert.Equal(t, low, edges[1].Sink)
	assert.Equal(t, DegreeMultiple, g.OutgoingDegree(source))
}

func TestAddEdgeIsNoOpOnDuplicateSink(t *testing.T) {
	g := New()
	file := g.GetOrCreateFile("a.go")
	source := g.AddNode(NewDropScopesNode(g.NewNodeID(file)))
	sink := g.AddNode(NewDropScopesNode(g.NewNodeID(file)))

	g.AddEdge(source, sink, 1)
	g.AddEdge(source, sink, 5)
	g.AddEdge(source, sink, 2)

	edges := g.OutgoingEdges(source)
	require.Len(t, edges, 1)
	assert.Equal(t, int32(1), edges[0].Precedence)
}

func TestSetEdgePrecedenceChangesExistingEdge(t *testing.T) {
	g := New()
	file := g.GetOrCreateFile("a.go")
	source := g.AddNode(NewDropScopesNode(g.NewNodeID(file)))
	sink := g.AddNode(NewDropScopesNode(g.NewNodeID(file)))

	assert.False(t, g.SetEdgePrecedence(source, sink, 9))

	g.AddEdge(source, sink, 1)
	assert.True(t, g.SetEdgePrecedence(source, sink, 9))

	edges := g.OutgoingEdges(source)
	require.Len(t, edges, 1)
	assert.Equal(t, int32(9), edges[0].Precedence)
}

func TestAddFromGraphRejectsConflictingFileName(t *testing.T) {
	dst := New()
	dst.GetOrCreateFile("a.go")

	src := New()
	src.GetOrCreateFile("a.go")

	files, err := dst.AddFromGraph(src)
	assert.Nil(t, files)
	assert.Error(t, err)
}

func TestAddFromGraphCopiesNodesEdgesAndAnnotations(t *testing.T) {
	src := New()
	file := src.GetOrCreateFile("b.go")
	sym := src.AddSymbol("foo")

	defID := src.NewNodeID(file)
	def := src.AddNode(NewPopSymbolNode(defID, sym, true))
	refID := src.NewNodeID(file)
	ref := src.AddNode(NewPushSymbolNode(refID, sym, true))
	src.AddEdge(ref, def, 3)
	src.SetSourceInfo(def, SourceInfo{Span: Span{StartLine: 2, EndLine: 2, EndColumn: 5}})
	src.AddDebugEntry(def, "kind", "identifier")

	dst := New()
	dst.GetOrCreateFile("a.go")

	files, err := dst.AddFromGraph(src)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "b.go", dst.FileName(files[0]))

	defHandle, ok := dst.NodeForID(NodeID{File: files[0], LocalID: defID.LocalID})
	require.True(t, ok)
	refHandle, ok := dst.NodeForID(NodeID{File: files[0], LocalID: refID.LocalID})
	require.True(t, ok)

	assert.True(t, dst.Node(defHandle).IsDefinitionNode())
	assert.Equal(t, "foo", dst.Symbol(dst.Node(defHandle).Symbol))

	edges := dst.OutgoingEdges(refHandle)
	require.Len(t, edges, 1)
	assert.Equal(t, defHandle, edges[0].Sink)
	assert.Equal(t, int32(3), edges[0].Precedence)

	info, ok := dst.SourceInfo(defHandle)
	require.True(t, ok)
	assert.Equal(t, 2, info.Span.StartLine)

	entries := dst.DebugEntries(defHandle)
	require.Len(t, entries, 1)
	assert.Equal(t, "identifier", entries[0].Value)
}

func TestSourceAndDebugInfo(t *testing.T) {
	g := New()
	file := g.GetOrCreateFile("a.go")
	n := g.AddNode(NewDropScopesNode(g.NewNodeID(file)))

	_, ok := g.SourceInfo(n)
	assert.False(t, ok)

	g.SetSourceInfo(n, SourceInfo{Span: Span{StartLine: 1, StartColumn: 0, EndLine: 1, EndColumn: 3}})
	info, ok := g.SourceInfo(n)
	require.True(t, ok)
	assert.Equal(t, 1, info.Span.StartLine)

	g.AddDebugEntry(n, "kind", "identifier")
	entries := g.DebugEntries(n)
	require.Len(t, entries, 1)
	assert.Equal(t, "identifier", entries[0].Value)
}
