package stitching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/partial"
)

func TestAddPartialPathIndexesByStartNode(t *testing.T) {
	g := graph.New()
	p := partial.NewPaths()
	db := NewDatabase(g, p)

	file := g.GetOrCreateFile("a.go")
	sym := g.AddSymbol("x")
	push := g.AddNode(graph.NewPushSymbolNode(g.NewNodeID(file), sym, true))

	path, err := partial.FromNode(p, g, push)
	require.NoError(t, err)
	db.AddPartialPath(path)

	found := db.FindCandidatePartialPathsFromNode(push)
	assert.Len(t, found, 1)
}

func TestAddPartialPathIndexesRootByPrecondition(t *testing.T) {
	g := graph.New()
	p := partial.NewPaths()
	db := NewDatabase(g, p)

	path, err := partial.FromNode(p, g, g.Root())
	require.NoError(t, err)
	db.AddPartialPath(path)

	// empty precondition: every symbol-precondition index shares the
	// empty-key bucket, so even an unrelated query surfaces it.
	found := db.FindCandidatePartialPathsFromRoot([]graph.SymbolHandle{g.AddSymbol("anything")})
	assert.Len(t, found, 1)
}

func TestFindLocalNodesMarksNodesOnlyConnectedWithinFile(t *testing.T) {
	g := graph.New()
	p := partial.NewPaths()
	db := NewDatabase(g, p)

	file := g.GetOrCreateFile("a.go")
	sym := g.AddSymbol("x")
	push := g.AddNode(graph.NewPushSymbolNode(g.NewNodeID(file), sym, true))
	pop := g.AddNode(graph.NewPopSymbolNode(g.NewNodeID(file), sym, true))
	g.AddEdge(push, pop, 0)

	path, err := partial.FromNode(p, g, push)
	require.NoError(t, err)
	require.NoError(t, partial.Append(p, g, &path, pop, 0))
	db.AddPartialPath(path)

	db.FindLocalNodes()
	assert.True(t, db.NodeIsLocal(push))
	assert.True(t, db.NodeIsLocal(pop))
	assert.False(t, db.NodeIsLocal(g.Root()))
}

// TestStitcherConcatenatesCrossFilePaths mirrors the standard
// stack-graphs pattern for global-namespace resolution: a reference
// pushes a symbol and has an edge straight to root; a definition in a
// different file is reached by an edge from root. Neither file's partial
// path mentions the other's node at all — the stitcher must join them
// purely because the reference's path ends at root and the definition's
// path starts at root with a compatible symbol-stack key.
func TestStitcherConcatenatesCrossFilePaths(t *testing.T) {
	g := graph.New()
	p := partial.NewPaths()
	db := NewDatabase(g, p)
	sym := g.AddSymbol("shared")

	fileA := g.GetOrCreateFile("a.go")
	ref := g.AddNode(graph.NewPushSymbolNode(g.NewNodeID(fileA), sym, true))
	g.AddEdge(ref, g.Root(), 0)
	refPath, err := partial.FromNode(p, g, ref)
	require.NoError(t, err)
	require.NoError(t, partial.Append(p, g, &refPath, g.Root(), 0))
	db.AddPartialPath(refPath)

	fileB := g.GetOrCreateFile("b.go")
	def := g.AddNode(graph.NewPopSymbolNode(g.NewNodeID(fileB), sym, true))
	g.AddEdge(g.Root(), def, 0)
	defPath, err := partial.FromNode(p, g, g.Root())
	require.NoError(t, err)
	require.NoError(t, partial.Append(p, g, &defPath, def, 0))
	db.AddPartialPath(defPath)

	s := FromNodes(g, p, db, []graph.NodeHandle{ref})
	cancel := partial.NewCancellationFlag()
	complete, err := FindAllCompletePartialPaths(s, cancel)
	require.NoError(t, err)

	var found bool
	for _, c := range complete {
		if c.Start == ref && c.End == def {
			found = true
		}
	}
	assert.True(t, found)
}
