// Package stitching implements the cross-file resolution database and
// forward path stitcher (SPEC_FULL.md §4.4–§4.5): indexing partial paths
// for fast candidate lookup, classifying nodes as file-local, and
// concatenating partial paths phase by phase into complete paths.
package stitching

import (
	"github.com/viant/stackgraph/arena"
	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/partial"
)

// PathHandle identifies a PartialPath stored in a Database's arena.
type PathHandle = arena.Handle[partial.PartialPath]

// symbolStackKeys is a hash-consed list arena: cons(head, tail) returns
// the same handle for equal (head, tail) pairs, so that two symbol
// stacks sharing a prefix also share the underlying list cells. This is
// what lets FindCandidatePartialPathsFromRoot's prefix walk land on the
// same index entries a shorter precondition was stored under.
type symbolStackKeys struct {
	cells *arena.ListArena[graph.SymbolHandle]
	cache map[symbolStackCacheKey]arena.Handle[arena.Cell[graph.SymbolHandle]]
}

type symbolStackCacheKey struct {
	head graph.SymbolHandle
	tail arena.Handle[arena.Cell[graph.SymbolHandle]]
}

func newSymbolStackKeys() *symbolStackKeys {
	return &symbolStackKeys{
		cells: arena.NewListArena[graph.SymbolHandle](),
		cache: make(map[symbolStackCacheKey]arena.Handle[arena.Cell[graph.SymbolHandle]]),
	}
}

func (k *symbolStackKeys) emptyHandle() arena.Handle[arena.Cell[graph.SymbolHandle]] {
	return arena.EmptyList[graph.SymbolHandle]().Handle()
}

// cons returns the handle for the key (head :: tail), reusing an
// existing cell if this exact pair has been built before.
func (k *symbolStackKeys) cons(head graph.SymbolHandle, tail arena.Handle[arena.Cell[graph.SymbolHandle]]) arena.Handle[arena.Cell[graph.SymbolHandle]] {
	cacheKey := symbolStackCacheKey{head: head, tail: tail}
	if h, ok := k.cache[cacheKey]; ok {
		return h
	}
	l := arena.FromHandle[graph.SymbolHandle](tail)
	l.PushFront(k.cells, head)
	k.cache[cacheKey] = l.Handle()
	return l.Handle()
}

// buildKey builds the back-to-front key for symbols (front-to-back stack
// order) and returns the handle representing the full prefix.
func (k *symbolStackKeys) buildKey(symbols []graph.SymbolHandle) arena.Handle[arena.Cell[graph.SymbolHandle]] {
	h := k.emptyHandle()
	for _, s := range symbols {
		h = k.cons(s, h)
	}
	return h
}

// Database is the cross-file resolution index: every partial path known
// so far, indexed for fast candidate lookup by start node (SPEC_FULL.md
// §4.4), plus the file-local-node analysis used to prune the stitcher's
// search.
type Database struct {
	graph *graph.StackGraph
	paths *partial.Paths

	arena *arena.Arena[partial.PartialPath]

	byStartNode             *arena.SupplementalArena[graph.Node, []PathHandle]
	rootPathsByPrecondition *arena.SupplementalArena[arena.Cell[graph.SymbolHandle], []PathHandle]
	keys                    *symbolStackKeys

	localNodes *arena.HandleSet[graph.Node]
}

// NewDatabase creates an empty resolution database over g, using p as
// the backing storage for every partial path's stacks and edge lists.
func NewDatabase(g *graph.StackGraph, p *partial.Paths) *Database {
	return &Database{
		graph:                   g,
		paths:                   p,
		arena:                   arena.NewArena[partial.PartialPath](),
		byStartNode:             arena.NewSupplementalArena[graph.Node, []PathHandle](),
		rootPathsByPrecondition: arena.NewSupplementalArena[arena.Cell[graph.SymbolHandle], []PathHandle](),
		keys:                    newSymbolStackKeys(),
		localNodes:              arena.NewHandleSet[graph.Node](),
	}
}

// AddPartialPath stores path and indexes it: by its root-symbol-stack
// key if it starts at root, otherwise by its start node (SPEC_FULL.md
// §4.4.1).
func (db *Database) AddPartialPath(path partial.PartialPath) PathHandle {
	h := db.arena.Add(path)
	if db.graph.Node(path.Start).IsRoot() {
		symbols := path.SymbolPrecondition.Symbols(db.paths)
		key := db.keys.buildKey(symbols)
		bucket := db.rootPathsByPrecondition.GetOrCreate(key)
		*bucket = append(*bucket, h)
		return h
	}
	bucket := db.byStartNode.GetOrCreate(path.Start)
	*bucket = append(*bucket, h)
	return h
}

// Path returns the partial path stored at h.
func (db *Database) Path(h PathHandle) partial.PartialPath {
	return *db.arena.Get(h)
}

// FindCandidatePartialPathsFromRoot returns every root-indexed partial
// path whose symbol precondition is a prefix of symbols (SPEC_FULL.md
// §4.4.2). A nil symbols slice returns the union over every indexed key,
// for callers whose own postcondition is not yet constrained.
func (db *Database) FindCandidatePartialPathsFromRoot(symbols []graph.SymbolHandle) []PathHandle {
	if symbols == nil {
		var all []PathHandle
		db.rootPathsByPrecondition.Iter(func(_ arena.Handle[arena.Cell[graph.SymbolHandle]], paths []PathHandle) {
			all = append(all, paths...)
		})
		return all
	}

	var results []PathHandle
	cur := arena.FromHandle[graph.SymbolHandle](db.keys.buildKey(symbols))
	for {
		if paths, ok := db.rootPathsByPrecondition.Get(cur.Handle()); ok {
			results = append(results, paths...)
		}
		if cur.IsEmpty() {
			break
		}
		cur.PopFront(db.keys.cells)
	}
	return results
}

// FindCandidatePartialPathsFromNode returns every partial path indexed
// under start (SPEC_FULL.md §4.4.3).
func (db *Database) FindCandidatePartialPathsFromNode(start graph.NodeHandle) []PathHandle {
	paths, _ := db.byStartNode.Get(start)
	return paths
}

// EnsureForwards precomputes the forwards orientation of every stored
// partial path's constituent deques (stitching.rs's Database::ensure_forwards).
func (db *Database) EnsureForwards() {
	db.arena.Iter(func(h PathHandle) {
		db.arena.Get(h).EnsureForwards(db.paths)
	})
}

// EnsureBothDirections precomputes both orientations of every stored
// partial path's constituent deques (stitching.rs's Database::ensure_both_directions).
func (db *Database) EnsureBothDirections() {
	db.arena.Iter(func(h PathHandle) {
		db.arena.Get(h).EnsureBothDirections(db.paths)
	})
}

// MarkLocalNode marks h as participating only in file-internal partial
// paths.
func (db *Database) MarkLocalNode(h graph.NodeHandle) {
	db.localNodes.Add(h)
}

// NodeIsLocal reports whether h has been marked local.
func (db *Database) NodeIsLocal(h graph.NodeHandle) bool {
	return db.localNodes.Contains(h)
}

// FindLocalNodes runs the fixpoint propagation described in
// SPEC_FULL.md §4.4.4: every node mentioned as a start or end of a
// partial path starts out a local-node candidate; root and jump-to-scope
// are excluded; non-locality then propagates along every partial path in
// both directions until no more changes occur.
func (db *Database) FindLocalNodes() {
	candidates := arena.NewHandleSet[graph.Node]()
	db.arena.Iter(func(h PathHandle) {
		path := db.Path(h)
		if path.Start != db.graph.Root() && path.Start != db.graph.JumpToScope() {
			candidates.Add(path.Start)
		}
		if path.End != db.graph.Root() && path.End != db.graph.JumpToScope() {
			candidates.Add(path.End)
		}
	})

	nonLocal := arena.NewHandleSet[graph.Node]()
	nonLocal.Add(db.graph.Root())
	nonLocal.Add(db.graph.JumpToScope())

	for changed := true; changed; {
		changed = false
		db.arena.Iter(func(h PathHandle) {
			path := db.Path(h)
			if nonLocal.Contains(path.Start) && !nonLocal.Contains(path.End) {
				nonLocal.Add(path.End)
				changed = true
			}
			if nonLocal.Contains(path.End) && !nonLocal.Contains(path.Start) {
				nonLocal.Add(path.Start)
				changed = true
			}
		})
	}

	candidates.Iter(func(h graph.NodeHandle) {
		if !nonLocal.Contains(h) {
			db.MarkLocalNode(h)
		}
	})
}
