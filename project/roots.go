// Package project resolves a fixture project's module path and file set
// and builds fully-qualified stack-graph file identifiers that mirror
// real Go import paths (SPEC_FULL.md §3.1). fixture.LoadDir does not use
// this package; it names each file by its base name.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
)

// Root describes a fixture project's module identity and the files it
// contributes, ordered so that a package's own dependencies are loaded
// before it (the same order a real incremental indexer would batch
// per-file partial-path computation across a module, SPEC_FULL.md §4.3.5).
type Root struct {
	// ModulePath is the module path declared by the project's go.mod
	// (e.g. "github.com/example/widgets").
	ModulePath string
	// Dir is the project's root directory.
	Dir string
	// Files lists every Go source file under Dir, absolute paths,
	// ordered by package dependency then file name.
	Files []string
}

// ResolveModulePath parses dir/go.mod and returns its declared module
// path, the same way inspector/repository/detector.go's
// extractGoModuleName does for generic project-name extraction, but
// returning the full path rather than just a display name.
func ResolveModulePath(dir string) (string, error) {
	goModPath := filepath.Join(dir, "go.mod")
	data, err := os.ReadFile(goModPath)
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod %s: %w", goModPath, err)
	}
	mod, err := modfile.Parse(goModPath, data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod %s: %w", goModPath, err)
	}
	return mod.Module.Mod.Path, nil
}

// Discover resolves dir's module path and loads its package set with
// golang.org/x/tools/go/packages, returning a Root whose Files are
// ordered in dependency order: a package's files are listed only after
// every package it imports (within the same module) has had its files
// listed.
func Discover(dir string) (*Root, error) {
	modulePath, err := ResolveModulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedImports | packages.NeedDeps,
		Dir:  dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return nil, fmt.Errorf("failed to load packages under %s: %w", dir, err)
	}

	ordered := orderByDependency(pkgs)
	var files []string
	for _, pkg := range ordered {
		pkgFiles := append([]string(nil), pkg.GoFiles...)
		sort.Strings(pkgFiles)
		files = append(files, pkgFiles...)
	}

	return &Root{ModulePath: modulePath, Dir: dir, Files: files}, nil
}

// orderByDependency topologically sorts pkgs so that every package
// appears after all the packages it imports (within the loaded set),
// via a simple post-order depth-first traversal.
func orderByDependency(pkgs []*packages.Package) []*packages.Package {
	visited := make(map[string]bool)
	var ordered []*packages.Package

	var visit func(pkg *packages.Package)
	visit = func(pkg *packages.Package) {
		if pkg == nil || visited[pkg.PkgPath] {
			return
		}
		visited[pkg.PkgPath] = true

		importPaths := make([]string, 0, len(pkg.Imports))
		for path := range pkg.Imports {
			importPaths = append(importPaths, path)
		}
		sort.Strings(importPaths)
		for _, path := range importPaths {
			visit(pkg.Imports[path])
		}
		ordered = append(ordered, pkg)
	}

	sorted := append([]*packages.Package(nil), pkgs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].PkgPath < sorted[j].PkgPath })
	for _, pkg := range sorted {
		visit(pkg)
	}
	return ordered
}

// FileIdentity builds the fully-qualified file identifier used as a
// stack-graph File name: the module path joined with the file's path
// relative to root.Dir, slash-separated the way a real Go import path is.
func FileIdentity(root *Root, absFile string) (string, error) {
	rel, err := filepath.Rel(root.Dir, absFile)
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s under %s: %w", absFile, root.Dir, err)
	}
	return root.ModulePath + "/" + filepath.ToSlash(rel), nil
}
