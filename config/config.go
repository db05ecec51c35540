// Package config defines a YAML-tagged run configuration (RunConfig) and
// its loader. No other package in this module reads a RunConfig: the
// fixture loader, project root discovery, and stitcher take their
// settings as function arguments and options. It is ambient tooling, not
// the out-of-scope "CLI"/"storage backend" deliverables named by the core
// spec.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RunConfig is the on-disk shape for a single integration run, mirroring
// the YAML-tagged plain-struct convention used for Identity elsewhere in
// this codebase's lineage.
type RunConfig struct {
	// ProjectRoots lists fixture project directories. fixture.LoadDir
	// takes one directory per call and does not read this field.
	ProjectRoots []string `yaml:"projectRoots"`

	// MaxWorkPerPhase holds a per-phase work budget for the stitcher,
	// with zero standing for stitching.DefaultMaxWorkPerPhase. The
	// stitcher does not read this field; its budget is set with
	// stitching.WithMaxWorkPerPhase or SetMaxWorkPerPhase.
	MaxWorkPerPhase int `yaml:"maxWorkPerPhase"`

	// CancellationPollEveryN holds a polling interval for cancellation
	// checks. FindAllPartialPathsInFile and ProcessNextPhase do not read
	// it: both check their CancellationFlag once per path.
	CancellationPollEveryN int `yaml:"cancellationPollEveryN"`

	// FixtureFilePattern holds a file-name glob (relative to a project
	// root), e.g. "*.go". fixture.LoadDir does not read it; it always
	// selects files whose names end in ".go".
	FixtureFilePattern string `yaml:"fixtureFilePattern"`

	// LoaderConcurrency holds a concurrency bound for fixture loading.
	// fixture.LoadDir does not read it; it starts one reading goroutine
	// per fixture file.
	LoaderConcurrency int `yaml:"loaderConcurrency"`
}

// DefaultConfig returns a RunConfig with conservative defaults, the same
// pattern the inspector package uses for its own DefaultConfig.
func DefaultConfig() *RunConfig {
	return &RunConfig{
		FixtureFilePattern: "*.go",
	}
}

// Load reads and parses a RunConfig from path.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
