package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/partial"
	"github.com/viant/stackgraph/stitching"
)

func TestBuildFileAddsDefinitionAndReference(t *testing.T) {
	g := graph.New()

	src := []byte(`package main

func Greet() {
}

func main() {
	Greet()
}
`)
	require.NoError(t, BuildFile(g, "main.go", src))

	var sawGreetDef, sawGreetRef bool
	g.NodesInFile(g.GetOrCreateFile("main.go"), func(h graph.NodeHandle, n graph.Node) {
		if n.IsDefinitionNode() && g.Symbol(n.Symbol) == "Greet" {
			sawGreetDef = true
		}
		if n.IsReferenceNode() && g.Symbol(n.Symbol) == "Greet" {
			sawGreetRef = true
		}
	})
	assert.True(t, sawGreetDef)
	assert.True(t, sawGreetRef)
}

func TestBuildFileSkipsSelectorCalls(t *testing.T) {
	g := graph.New()

	src := []byte(`package main

func main() {
	fmt.Println("hi")
}
`)
	require.NoError(t, BuildFile(g, "main.go", src))

	var sawAnyRef bool
	g.NodesInFile(g.GetOrCreateFile("main.go"), func(h graph.NodeHandle, n graph.Node) {
		if n.IsReferenceNode() {
			sawAnyRef = true
		}
	})
	assert.False(t, sawAnyRef)
}

func TestBuildFileResolvesAcrossStitchedFiles(t *testing.T) {
	g := graph.New()
	p := partial.NewPaths()
	db := stitching.NewDatabase(g, p)

	require.NoError(t, BuildFile(g, "def.go", []byte(`package main

func Greet() {
}
`)))
	require.NoError(t, BuildFile(g, "use.go", []byte(`package main

func main() {
	Greet()
}
`)))

	var refHandle, defHandle graph.NodeHandle
	g.NodesInFile(g.GetOrCreateFile("use.go"), func(h graph.NodeHandle, n graph.Node) {
		if n.IsReferenceNode() {
			refHandle = h
		}
	})
	g.NodesInFile(g.GetOrCreateFile("def.go"), func(h graph.NodeHandle, n graph.Node) {
		if n.IsDefinitionNode() {
			defHandle = h
		}
	})
	require.False(t, refHandle.IsNull())
	require.False(t, defHandle.IsNull())

	cancel := partial.NewCancellationFlag()
	require.NoError(t, partial.FindAllPartialPathsInFile(p, g, g.GetOrCreateFile("use.go"), cancel, func(path partial.PartialPath) {
		db.AddPartialPath(path)
	}))
	require.NoError(t, partial.FindAllPartialPathsInFile(p, g, g.GetOrCreateFile("def.go"), cancel, func(path partial.PartialPath) {
		db.AddPartialPath(path)
	}))

	s := stitching.FromNodes(g, p, db, []graph.NodeHandle{refHandle})
	complete, err := stitching.FindAllCompletePartialPaths(s, cancel)
	require.NoError(t, err)

	var found bool
	for _, c := range complete {
		if c.Start == refHandle && c.End == defHandle {
			found = true
		}
	}
	assert.True(t, found)
}
