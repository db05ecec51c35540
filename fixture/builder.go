// Package fixture is a test-only, internal builder that turns a small,
// hard-coded vocabulary of Go source constructs (function declarations and
// calls whose callee is a plain identifier) into stack-graph node/edge
// batches, for integration-testing partial paths and stitching (§4.3-§4.5)
// end to end. It is deliberately *not* a general source-to-graph
// translator — that stays out of scope (§1) — it only recognizes what the
// integration tests in this module need.
package fixture

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/viant/stackgraph/graph"
)

// BuildFile parses src as Go source and adds the file's top-level
// function declarations and call-expression references to g, wiring each
// through root the way a real global-namespace resolution pass would:
// definitions are reached by an edge from root, references reach root by
// pushing their own name.
//
// Only function declarations and direct (non-selector) call-expression
// references are recognized; anything else in src is ignored. This
// matches the limited vocabulary documented in SPEC_FULL.md's DOMAIN
// STACK table for this package.
func BuildFile(g *graph.StackGraph, fileName string, src []byte) error {
	file := g.GetOrCreateFile(fileName)

	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())
	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return fmt.Errorf("fixture: failed to parse %s: %w", fileName, err)
	}
	root := tree.RootNode()

	if err := addFunctionDefinitions(g, file, root, src); err != nil {
		return err
	}
	return addCallReferences(g, file, root, src)
}

// addFunctionDefinitions adds one PopSymbol definition node per top-level
// function declaration, reachable from root.
func addFunctionDefinitions(g *graph.StackGraph, file graph.FileHandle, root *sitter.Node, src []byte) error {
	query := sitter.NewQuery([]byte("(function_declaration) @func"), golang.GetLanguage())
	cursor := sitter.NewQueryCursor()
	cursor.Exec(query, root)

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			nameNode := capture.Node.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			name := nameNode.Content(src)
			symbol := g.AddSymbol(name)
			id := g.NewNodeID(file)
			def := graph.NewPopSymbolNode(id, symbol, true)
			handle := g.AddNode(def)
			if handle.IsNull() {
				return fmt.Errorf("fixture: duplicate node id for definition %q", name)
			}
			g.SetSourceInfo(handle, graph.SourceInfo{Span: graph.Span{
				StartLine: int(nameNode.StartPoint().Row) + 1,
				EndLine:   int(nameNode.EndPoint().Row) + 1,
			}})
			g.AddEdge(g.Root(), handle, 0)
		}
	}
	return nil
}

// addCallReferences adds one PushSymbol reference node per direct
// (identifier-only) call expression, reachable to root. Calls through a
// selector expression (pkg.Func(), recv.Method()) are skipped: resolving
// member access needs scoped symbols and an exported-scope node, which is
// beyond the vocabulary this fixture builder recognizes.
func addCallReferences(g *graph.StackGraph, file graph.FileHandle, root *sitter.Node, src []byte) error {
	query := sitter.NewQuery([]byte("(call_expression) @call"), golang.GetLanguage())
	cursor := sitter.NewQueryCursor()
	cursor.Exec(query, root)

	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			fnNode := capture.Node.ChildByFieldName("function")
			if fnNode == nil || fnNode.Type() != "identifier" {
				continue
			}
			name := fnNode.Content(src)
			symbol := g.AddSymbol(name)
			id := g.NewNodeID(file)
			ref := graph.NewPushSymbolNode(id, symbol, true)
			handle := g.AddNode(ref)
			if handle.IsNull() {
				return fmt.Errorf("fixture: duplicate node id for reference %q", name)
			}
			g.SetSourceInfo(handle, graph.SourceInfo{Span: graph.Span{
				StartLine: int(fnNode.StartPoint().Row) + 1,
				EndLine:   int(fnNode.EndPoint().Row) + 1,
			}})
			g.AddEdge(handle, g.Root(), 0)
		}
	}
	return nil
}
