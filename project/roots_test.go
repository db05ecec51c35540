package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveModulePathParsesGoMod(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module github.com/example/widgets\n\ngo 1.23\n"), 0o644))

	path, err := ResolveModulePath(dir)
	require.NoError(t, err)
	assert.Equal(t, "github.com/example/widgets", path)
}

func TestResolveModulePathMissingGoModFails(t *testing.T) {
	_, err := ResolveModulePath(t.TempDir())
	assert.Error(t, err)
}

func TestFileIdentityJoinsModulePathAndRelativeSlashPath(t *testing.T) {
	root := &Root{ModulePath: "github.com/example/widgets", Dir: "/src/widgets"}
	id, err := FileIdentity(root, filepath.Join("/src/widgets", "pkg", "widget.go"))
	require.NoError(t, err)
	assert.Equal(t, "github.com/example/widgets/pkg/widget.go", id)
}
