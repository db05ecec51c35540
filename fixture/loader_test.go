package fixture

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/stackgraph/graph"
)

func TestLoadDirParsesAllGoFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "def.go"), []byte(`package main

func Greet() {
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "use.go"), []byte(`package main

func main() {
	Greet()
}
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))

	g := graph.New()
	require.NoError(t, LoadDir(context.Background(), g, dir))

	var sawDef, sawRef bool
	for _, name := range []string{"def.go", "use.go"} {
		g.NodesInFile(g.GetOrCreateFile(name), func(h graph.NodeHandle, n graph.Node) {
			if n.IsDefinitionNode() {
				sawDef = true
			}
			if n.IsReferenceNode() {
				sawRef = true
			}
		})
	}
	assert.True(t, sawDef)
	assert.True(t, sawRef)
}
