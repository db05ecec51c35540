// Package graph implements the stack graph data model: interned symbols
// and strings, the eight node variants, precedence-ordered edges, and
// per-node source/debug annotations, all addressed by stable NodeIDs and
// backed by arena-allocated storage.
package graph

import (
	"fmt"

	"github.com/viant/stackgraph/arena"
)

// Span is a half-open range of (line, column) positions within a file,
// used to attach a node to the source text that produced it.
type Span struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

// SourceInfo records where a node came from in its source file, plus an
// optional human-readable syntax type (e.g. "identifier", "call
// expression") used for debugging and error messages.
type SourceInfo struct {
	Span       Span
	SyntaxType StringHandle
	HasSyntax  bool
}

// DebugEntry is one key/value annotation attached to a node, mirroring
// arbitrary debug metadata a language frontend might want to preserve.
type DebugEntry struct {
	Key   string
	Value string
}

// StackGraph is the full name-resolution graph for a project: its
// interned symbols and strings, files, nodes, edges, and source/debug
// annotations. A StackGraph is built incrementally by a single thread;
// see SPEC_FULL.md's CONCURRENCY & RESOURCE MODEL section.
type StackGraph struct {
	symbols *Interner[Symbol]
	strings *Interner[InternedString]

	files      *arena.Arena[File]
	fileByName map[string]FileHandle

	nodes       *arena.Arena[Node]
	nodeHandles map[NodeID]NodeHandle
	nextLocalID map[FileHandle]uint32

	outgoing   *arena.SupplementalArena[Node, outgoingEdges]
	sourceInfo *arena.SupplementalArena[Node, SourceInfo]
	debugInfo  *arena.SupplementalArena[Node, []DebugEntry]

	rootHandle        NodeHandle
	jumpToScopeHandle NodeHandle
}

// New creates an empty stack graph with its root and jump-to-scope
// singleton nodes already present.
func New() *StackGraph {
	g := &StackGraph{
		symbols:     NewInterner[Symbol](),
		strings:     NewInterner[InternedString](),
		files:       arena.NewArena[File](),
		fileByName:  make(map[string]FileHandle),
		nodes:       arena.NewArena[Node](),
		nodeHandles: make(map[NodeID]NodeHandle),
		nextLocalID: make(map[FileHandle]uint32),
		outgoing:    arena.NewSupplementalArena[Node, outgoingEdges](),
		sourceInfo:  arena.NewSupplementalArena[Node, SourceInfo](),
		debugInfo:   arena.NewSupplementalArena[Node, []DebugEntry](),
	}
	g.rootHandle = g.nodes.Add(newRootNode())
	g.nodeHandles[RootNodeID] = g.rootHandle
	g.jumpToScopeHandle = g.nodes.Add(newJumpToScopeNode())
	g.nodeHandles[JumpToScopeNodeID] = g.jumpToScopeHandle
	return g
}

// AddSymbol interns symbol content, returning a handle stable for the
// life of the graph.
func (g *StackGraph) AddSymbol(content string) SymbolHandle {
	return g.symbols.Intern(content)
}

// Symbol returns the content behind a symbol handle.
func (g *StackGraph) Symbol(h SymbolHandle) string {
	return g.symbols.Value(h)
}

// AddString interns arbitrary string content, such as syntax type names.
// File names are not interned through it.
func (g *StackGraph) AddString(content string) StringHandle {
	return g.strings.Intern(content)
}

// String returns the content behind a string handle.
func (g *StackGraph) String(h StringHandle) string {
	return g.strings.Value(h)
}

// GetOrCreateFile returns the handle for a file with the given name,
// creating it if this is the first time name has been seen.
func (g *StackGraph) GetOrCreateFile(name string) FileHandle {
	if h, ok := g.fileByName[name]; ok {
		return h
	}
	h := g.files.Add(File{Name: name})
	g.fileByName[name] = h
	return h
}

// FileName returns the name of the file behind h.
func (g *StackGraph) FileName(h FileHandle) string {
	return g.files.Get(h).Name
}

// NewNodeID allocates the next unused local ID within file, for use when
// constructing a new node with one of the NewXxxNode constructors.
func (g *StackGraph) NewNodeID(file FileHandle) NodeID {
	next := g.nextLocalID[file]
	g.nextLocalID[file] = next + 1
	return NodeID{File: file, LocalID: next}
}

// Root returns the handle of the graph's singleton root node.
func (g *StackGraph) Root() NodeHandle { return g.rootHandle }

// JumpToScope returns the handle of the graph's singleton jump-to-scope
// node.
func (g *StackGraph) JumpToScope() NodeHandle { return g.jumpToScopeHandle }

// AddNode inserts node into the graph, returning its handle. Returns the
// null handle if a node with the same NodeID already exists, rather than
// overwriting it: callers are expected to use NewNodeID (or the
// RootNodeID/JumpToScopeNodeID singletons) to avoid collisions, and to
// check IsNull when accepting node IDs from an untrusted translator.
func (g *StackGraph) AddNode(node Node) NodeHandle {
	if _, ok := g.nodeHandles[node.ID]; ok {
		return NodeHandle(arena.NullHandle)
	}
	h := g.nodes.Add(node)
	g.nodeHandles[node.ID] = h
	return h
}

// GetOrCreateNode returns the existing handle for id if present, or
// inserts node (which must have ID == id) and returns its new handle.
func (g *StackGraph) GetOrCreateNode(id NodeID, node Node) NodeHandle {
	if h, ok := g.nodeHandles[id]; ok {
		return h
	}
	return g.AddNode(node)
}

// NodeForID returns the handle for id, if a node with that id exists.
func (g *StackGraph) NodeForID(id NodeID) (NodeHandle, bool) {
	h, ok := g.nodeHandles[id]
	return h, ok
}

// Node returns the node stored at handle.
func (g *StackGraph) Node(h NodeHandle) Node {
	return *g.nodes.Get(h)
}

// AddEdge adds an edge from source to sink with the given precedence. A
// graph stores at most one edge per (source, sink) pair: adding a
// duplicate is a no-op, leaving the existing edge's precedence
// unchanged. Use SetEdgePrecedence to change it explicitly.
func (g *StackGraph) AddEdge(source, sink NodeHandle, precedence int32) {
	bucket := g.outgoing.GetOrCreate(source)
	bucket.add(sink, precedence)
}

// SetEdgePrecedence changes the precedence of the existing edge from
// source to sink, returning false if no such edge exists.
func (g *StackGraph) SetEdgePrecedence(source, sink NodeHandle, precedence int32) bool {
	if _, ok := g.outgoing.Get(source); !ok {
		return false
	}
	bucket := g.outgoing.GetOrCreate(source)
	return bucket.setPrecedence(sink, precedence)
}

// OutgoingEdges returns source's outgoing edges ordered by descending
// precedence (the order the stitcher should try them in).
func (g *StackGraph) OutgoingEdges(source NodeHandle) []Edge {
	bucket, ok := g.outgoing.Get(source)
	if !ok {
		return nil
	}
	return bucket.sorted()
}

// OutgoingDegree classifies how many outgoing edges source has.
func (g *StackGraph) OutgoingDegree(source NodeHandle) Degree {
	bucket, ok := g.outgoing.Get(source)
	if !ok {
		return DegreeZero
	}
	return bucket.degree()
}

// SetSourceInfo attaches source-location metadata to a node.
func (g *StackGraph) SetSourceInfo(h NodeHandle, info SourceInfo) {
	g.sourceInfo.Set(h, info)
}

// SourceInfo returns the source-location metadata attached to a node, if
// any.
func (g *StackGraph) SourceInfo(h NodeHandle) (SourceInfo, bool) {
	return g.sourceInfo.Get(h)
}

// AddDebugEntry appends a debug annotation to a node.
func (g *StackGraph) AddDebugEntry(h NodeHandle, key, value string) {
	bucket := g.debugInfo.GetOrCreate(h)
	*bucket = append(*bucket, DebugEntry{Key: key, Value: value})
}

// DebugEntries returns the debug annotations attached to a node.
func (g *StackGraph) DebugEntries(h NodeHandle) []DebugEntry {
	entries, _ := g.debugInfo.Get(h)
	return entries
}

// NodesInFile calls fn for every node whose ID belongs to file, in
// unspecified order. Used by per-file partial-path enumeration.
func (g *StackGraph) NodesInFile(file FileHandle, fn func(NodeHandle, Node)) {
	for id, h := range g.nodeHandles {
		if id.File == file {
			fn(h, g.Node(h))
		}
	}
}

// AddFromGraph copy-merges other into g: every file and node from other
// is added to g, together with the symbols and strings those nodes
// refer to (remapping handles as needed), and every
// outgoing edge is recreated between the remapped endpoints. On success
// it returns the new handles of every file copied from other, in
// unspecified order. It is an error for other to define a file g already
// has — unlike a single GetOrCreateFile, which treats re-adding the same
// file name as an idempotent no-op, merging two graphs that both claim
// to analyze the same file would silently interleave two unrelated
// local-ID namespaces under one file handle. Restored from graph.rs's
// add_from_graph (~line 1503).
func (g *StackGraph) AddFromGraph(other *StackGraph) ([]FileHandle, error) {
	files := make(map[FileHandle]FileHandle, len(other.files.Handles()))
	var newFiles []FileHandle
	for _, otherFile := range other.files.Handles() {
		name := other.FileName(otherFile)
		if _, exists := g.fileByName[name]; exists {
			return nil, fmt.Errorf("stack graph: file %q already present in destination graph", name)
		}
		file := g.GetOrCreateFile(name)
		files[otherFile] = file
		newFiles = append(newFiles, file)
	}

	remapID := func(id NodeID) NodeID {
		switch id {
		case RootNodeID:
			return RootNodeID
		case JumpToScopeNodeID:
			return JumpToScopeNodeID
		default:
			return NodeID{File: files[id.File], LocalID: id.LocalID}
		}
	}

	nodes := map[NodeHandle]NodeHandle{
		other.rootHandle:        g.rootHandle,
		other.jumpToScopeHandle: g.jumpToScopeHandle,
	}
	for otherID, otherHandle := range other.nodeHandles {
		if otherID == RootNodeID || otherID == JumpToScopeNodeID {
			continue
		}
		otherNode := other.Node(otherHandle)
		var value Node
		switch otherNode.Kind {
		case NodeKindDropScopes:
			value = NewDropScopesNode(remapID(otherID))
		case NodeKindScope:
			value = NewScopeNode(remapID(otherID), otherNode.IsExportedScope)
		case NodeKindPopSymbol:
			value = NewPopSymbolNode(remapID(otherID), g.AddSymbol(other.Symbol(otherNode.Symbol)), otherNode.IsDefinition)
		case NodeKindPopScopedSymbol:
			value = NewPopScopedSymbolNode(remapID(otherID), g.AddSymbol(other.Symbol(otherNode.Symbol)), otherNode.IsDefinition)
		case NodeKindPushSymbol:
			value = NewPushSymbolNode(remapID(otherID), g.AddSymbol(other.Symbol(otherNode.Symbol)), otherNode.IsReference)
		case NodeKindPushScopedSymbol:
			value = NewPushScopedSymbolNode(remapID(otherID), g.AddSymbol(other.Symbol(otherNode.Symbol)), remapID(otherNode.Scope), otherNode.IsReference)
		default:
			continue
		}
		handle := g.AddNode(value)
		nodes[otherHandle] = handle

		if info, ok := other.SourceInfo(otherHandle); ok {
			remapped := info
			if info.HasSyntax {
				remapped.SyntaxType = g.AddString(other.String(info.SyntaxType))
			}
			g.SetSourceInfo(handle, remapped)
		}
		for _, entry := range other.DebugEntries(otherHandle) {
			g.AddDebugEntry(handle, entry.Key, entry.Value)
		}
	}

	for otherHandle, selfHandle := range nodes {
		for _, edge := range other.OutgoingEdges(otherHandle) {
			g.AddEdge(selfHandle, nodes[edge.Sink], edge.Precedence)
		}
	}

	return newFiles, nil
}
