package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
projectRoots:
  - ./fixtures/a
  - ./fixtures/b
maxWorkPerPhase: 256
fixtureFilePattern: "*.gox"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"./fixtures/a", "./fixtures/b"}, cfg.ProjectRoots)
	assert.Equal(t, 256, cfg.MaxWorkPerPhase)
	assert.Equal(t, "*.gox", cfg.FixtureFilePattern)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
