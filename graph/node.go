package graph

import (
	"fmt"

	"github.com/viant/stackgraph/arena"
)

// Symbol is interned content for a stack graph symbol (an identifier, a
// keyword, punctuation used as a scoping marker, ...).
type Symbol string

// SymbolHandle identifies an interned Symbol.
type SymbolHandle = arena.Handle[Symbol]

// InternedString is interned content used for anything that is not a
// Symbol but still benefits from deduplication, such as syntax type
// names in SourceInfo.
type InternedString string

// StringHandle identifies an interned InternedString.
type StringHandle = arena.Handle[InternedString]

// File is one source file tracked by a StackGraph. Files are interned by
// name: asking for the same name twice returns the same handle.
type File struct {
	Name string
}

// FileHandle identifies a File.
type FileHandle = arena.Handle[File]

// rootFileMarker is the sentinel FileHandle used by NodeID for nodes that
// do not belong to any particular file (the root node and the
// jump-to-scope node).
const rootFileMarker FileHandle = 0

// Reserved local IDs within rootFileMarker's namespace. Per-file local IDs
// are allocated independently starting at 0, since a node's file is
// already part of its identity.
const (
	localIDRoot        uint32 = 1
	localIDJumpToScope uint32 = 2
)

// NodeID identifies a node within a stack graph: the file it was defined
// in (rootFileMarker for the two singleton nodes) plus a local ID that is
// unique within that file.
type NodeID struct {
	File    FileHandle
	LocalID uint32
}

// RootNodeID is the identity of the graph's single root node.
var RootNodeID = NodeID{File: rootFileMarker, LocalID: localIDRoot}

// JumpToScopeNodeID is the identity of the graph's single jump-to-scope
// node, used as a placeholder attached scope meaning "whatever scope was
// currently in the symbol stack at the time this node was reached".
var JumpToScopeNodeID = NodeID{File: rootFileMarker, LocalID: localIDJumpToScope}

// IsInFile reports whether this id belongs to file, i.e. is neither the
// root nor jump-to-scope sentinel.
func (id NodeID) IsInFile(file FileHandle) bool {
	return id.File == file
}

func (id NodeID) String() string {
	if id == RootNodeID {
		return "[root]"
	}
	if id == JumpToScopeNodeID {
		return "[jump to scope]"
	}
	return fmt.Sprintf("%d:%d", id.File, id.LocalID)
}

// NodeKind discriminates the eight concrete node shapes a stack graph can
// contain. Go has no closed sum type, so Node below carries Kind plus the
// union of every variant's fields, with accessors that document which
// fields are meaningful for which kind.
type NodeKind int

const (
	NodeKindRoot NodeKind = iota
	NodeKindJumpToScope
	NodeKindDropScopes
	NodeKindScope
	NodeKindPopSymbol
	NodeKindPopScopedSymbol
	NodeKindPushSymbol
	NodeKindPushScopedSymbol
)

func (k NodeKind) String() string {
	switch k {
	case NodeKindRoot:
		return "root"
	case NodeKindJumpToScope:
		return "jump to scope"
	case NodeKindDropScopes:
		return "drop scopes"
	case NodeKindScope:
		return "scope"
	case NodeKindPopSymbol:
		return "pop symbol"
	case NodeKindPopScopedSymbol:
		return "pop scoped symbol"
	case NodeKindPushSymbol:
		return "push symbol"
	case NodeKindPushScopedSymbol:
		return "push scoped symbol"
	default:
		return "unknown node kind"
	}
}

// Node is one vertex of a stack graph. Only the fields relevant to Kind
// are meaningful; see the per-kind constructors below.
type Node struct {
	Kind NodeKind
	ID   NodeID

	Symbol SymbolHandle // PushSymbol, PushScopedSymbol, PopSymbol, PopScopedSymbol
	Scope  NodeID       // PushScopedSymbol: the scope attached to the pushed symbol

	IsReference     bool // PushSymbol, PushScopedSymbol
	IsDefinition    bool // PopSymbol, PopScopedSymbol
	IsExportedScope bool // Scope
}

func newRootNode() Node {
	return Node{Kind: NodeKindRoot, ID: RootNodeID}
}

func newJumpToScopeNode() Node {
	return Node{Kind: NodeKindJumpToScope, ID: JumpToScopeNodeID}
}

// NewDropScopesNode creates a drop-scopes node with the given id.
func NewDropScopesNode(id NodeID) Node {
	return Node{Kind: NodeKindDropScopes, ID: id}
}

// NewScopeNode creates a scope node. isExportedScope marks whether this
// scope is reachable when resolving a scoped symbol's attached scope from
// outside the file that defines it.
func NewScopeNode(id NodeID, isExportedScope bool) Node {
	return Node{Kind: NodeKindScope, ID: id, IsExportedScope: isExportedScope}
}

// NewPopSymbolNode creates a pop-symbol node. isDefinition marks the node
// as a candidate endpoint for a completed path (e.g. a variable
// definition).
func NewPopSymbolNode(id NodeID, symbol SymbolHandle, isDefinition bool) Node {
	return Node{Kind: NodeKindPopSymbol, ID: id, Symbol: symbol, IsDefinition: isDefinition}
}

// NewPopScopedSymbolNode creates a pop-scoped-symbol node.
func NewPopScopedSymbolNode(id NodeID, symbol SymbolHandle, isDefinition bool) Node {
	return Node{Kind: NodeKindPopScopedSymbol, ID: id, Symbol: symbol, IsDefinition: isDefinition}
}

// NewPushSymbolNode creates a push-symbol node. isReference marks the
// node as a candidate endpoint for a completed path (e.g. an identifier
// use).
func NewPushSymbolNode(id NodeID, symbol SymbolHandle, isReference bool) Node {
	return Node{Kind: NodeKindPushSymbol, ID: id, Symbol: symbol, IsReference: isReference}
}

// NewPushScopedSymbolNode creates a push-scoped-symbol node. scope is the
// NodeID of the scope attached to the pushed symbol (often
// JumpToScopeNodeID, meaning "resolve this later from the symbol stack").
func NewPushScopedSymbolNode(id NodeID, symbol SymbolHandle, scope NodeID, isReference bool) Node {
	return Node{Kind: NodeKindPushScopedSymbol, ID: id, Symbol: symbol, Scope: scope, IsReference: isReference}
}

// IsRoot reports whether this is the graph's singleton root node.
func (n Node) IsRoot() bool { return n.Kind == NodeKindRoot }

// IsJumpToScope reports whether this is the graph's singleton
// jump-to-scope node.
func (n Node) IsJumpToScope() bool { return n.Kind == NodeKindJumpToScope }

// IsReferenceNode reports whether this node can end a completed path as a
// reference (push-symbol or push-scoped-symbol with IsReference set).
func (n Node) IsReferenceNode() bool {
	switch n.Kind {
	case NodeKindPushSymbol, NodeKindPushScopedSymbol:
		return n.IsReference
	default:
		return false
	}
}

// IsDefinitionNode reports whether this node can end a completed path as
// a definition (pop-symbol or pop-scoped-symbol with IsDefinition set).
func (n Node) IsDefinitionNode() bool {
	switch n.Kind {
	case NodeKindPopSymbol, NodeKindPopScopedSymbol:
		return n.IsDefinition
	default:
		return false
	}
}

// IsEndpoint reports whether this node is a valid start or end point for
// a complete path: the root, a reference, a definition, or an exported
// scope.
func (n Node) IsEndpoint() bool {
	isExportedScope := n.Kind == NodeKindScope && n.IsExportedScope
	return n.IsRoot() || n.IsReferenceNode() || n.IsDefinitionNode() || isExportedScope
}

// SymbolOf returns the symbol carried by a push/pop node, and whether the
// node carries one at all.
func (n Node) SymbolOf() (SymbolHandle, bool) {
	switch n.Kind {
	case NodeKindPushSymbol, NodeKindPushScopedSymbol, NodeKindPopSymbol, NodeKindPopScopedSymbol:
		return n.Symbol, true
	default:
		return 0, false
	}
}

// IsScoped reports whether this node's stack effect carries an attached
// scope (push-scoped-symbol on push, pop-scoped-symbol on pop).
func (n Node) IsScoped() bool {
	return n.Kind == NodeKindPushScopedSymbol || n.Kind == NodeKindPopScopedSymbol
}

// IsEquivalentTo reports whether n and other describe the same node
// content, independent of which graph (and therefore which interned
// symbol/scope handles) they came from: a node already present under the
// same NodeID in another graph can be checked with it for being a
// genuine duplicate of an incoming one rather than a conflicting
// definition. AddFromGraph does not call it.
func (n Node) IsEquivalentTo(g *StackGraph, other Node, og *StackGraph) bool {
	if n.Kind != other.Kind || n.ID != other.ID {
		return false
	}
	switch n.Kind {
	case NodeKindScope:
		return n.IsExportedScope == other.IsExportedScope
	case NodeKindPopSymbol:
		return n.IsDefinition == other.IsDefinition && g.Symbol(n.Symbol) == og.Symbol(other.Symbol)
	case NodeKindPopScopedSymbol:
		return n.IsDefinition == other.IsDefinition && g.Symbol(n.Symbol) == og.Symbol(other.Symbol)
	case NodeKindPushSymbol:
		return n.IsReference == other.IsReference && g.Symbol(n.Symbol) == og.Symbol(other.Symbol)
	case NodeKindPushScopedSymbol:
		return n.IsReference == other.IsReference && n.Scope == other.Scope && g.Symbol(n.Symbol) == og.Symbol(other.Symbol)
	default:
		return true
	}
}

// String renders n in the two-phase Display protocol the partial/
// stitching packages also use: call Prepare once while a mutable graph
// reference is available (String itself takes a read-only one), then
// String as many times as needed. For Node, Prepare is a no-op — nodes
// carry no reversible deque state — but the method pair is kept so every
// displayable type in this module shares the same calling convention.
func (n Node) Prepare(*StackGraph) {}

func (n Node) String(g *StackGraph) string {
	switch n.Kind {
	case NodeKindRoot:
		return "[root]"
	case NodeKindJumpToScope:
		return "[jump to scope]"
	case NodeKindDropScopes:
		return fmt.Sprintf("%s/drop", n.ID)
	case NodeKindScope:
		if n.IsExportedScope {
			return fmt.Sprintf("%s/exported scope", n.ID)
		}
		return fmt.Sprintf("%s/scope", n.ID)
	case NodeKindPopSymbol:
		return fmt.Sprintf("%s/pop %s", n.ID, g.Symbol(n.Symbol))
	case NodeKindPopScopedSymbol:
		return fmt.Sprintf("%s/pop scoped %s", n.ID, g.Symbol(n.Symbol))
	case NodeKindPushSymbol:
		return fmt.Sprintf("%s/push %s", n.ID, g.Symbol(n.Symbol))
	case NodeKindPushScopedSymbol:
		return fmt.Sprintf("%s/push %s %s", n.ID, g.Symbol(n.Symbol), n.Scope)
	default:
		return n.ID.String()
	}
}
