package partial

import "github.com/viant/stackgraph/graph"

// cycleDetector implements the strategy described in SPEC_FULL.md §4.3.7
// for per-file enumeration: a small candidate set per (start, end) node
// pair used to decide whether a newly-produced partial path is redundant
// with one already seen between the same two nodes. This package has no
// source file to port (see DESIGN.md's "cycle detection design gap"
// entry) so the probe set is built directly from the prose: the first
// path seen for a given pair is accepted, and every later one only if it
// strictly strengthens (consumes more of) the precondition compared to
// every probe already recorded for that pair.
type endpointPair struct {
	start, end graph.NodeHandle
}

type cycleDetector struct {
	paths *Paths
	seen  map[endpointPair][]PartialPath
}

func newCycleDetector(p *Paths) *cycleDetector {
	return &cycleDetector{paths: p, seen: make(map[endpointPair][]PartialPath)}
}

// shouldProcess reports whether path should be expanded further. A path
// is only at risk of cycling with a probe that shares its exact (start,
// end) pair — a genuine revisit of the same node from the same starting
// configuration. The first path seen for a given pair is always kept;
// later ones are kept only if they strictly strengthen the precondition
// relative to every probe already recorded for that pair (SPEC_FULL.md:
// "discarded when its cycle class is not StrengthensPrecondition").
func (d *cycleDetector) shouldProcess(path PartialPath) bool {
	key := endpointPair{start: path.Start, end: path.End}
	probes := d.seen[key]
	strengthensAll := true
	for _, probe := range probes {
		if path.SymbolPrecondition.Len() <= probe.SymbolPrecondition.Len() &&
			path.ScopePrecondition.Len() <= probe.ScopePrecondition.Len() {
			strengthensAll = false
			break
		}
	}
	if strengthensAll {
		d.seen[key] = append(probes, path)
	}
	return strengthensAll
}

// FindAllPartialPathsInFile performs the BFS described in
// SPEC_FULL.md §4.3.5: seed with the root and every push/exported-scope
// node in file, then repeatedly extend via outgoing edges restricted to
// nodes belonging to file (root is treated as in-every-file), visiting
// each dequeued path before extending it further. visit is called for
// every path that survives cycle detection; extensions that return a
// PathResolutionError are silently dropped, matching the propagation
// policy in SPEC_FULL.md §7. cancel is consulted once per dequeued path.
func FindAllPartialPathsInFile(p *Paths, g *graph.StackGraph, file graph.FileHandle, cancel *CancellationFlag, visit func(PartialPath)) error {
	detector := newCycleDetector(p)
	var queue []PartialPath

	seed := func(h graph.NodeHandle) {
		path, err := FromNode(p, g, h)
		if err != nil {
			return
		}
		queue = append(queue, path)
	}

	seed(g.Root())
	g.NodesInFile(file, func(h graph.NodeHandle, n graph.Node) {
		if n.Kind == graph.NodeKindPushSymbol || n.Kind == graph.NodeKindPushScopedSymbol ||
			(n.Kind == graph.NodeKindScope && n.IsExportedScope) {
			seed(h)
		}
	})

	belongsToFile := func(h graph.NodeHandle) bool {
		n := g.Node(h)
		return n.IsRoot() || n.ID.IsInFile(file)
	}

	for len(queue) > 0 {
		if err := cancel.Check("find all partial paths in file"); err != nil {
			return err
		}
		current := queue[0]
		queue = queue[1:]

		if !detector.shouldProcess(current) {
			continue
		}

		for _, edge := range g.OutgoingEdges(current.End) {
			if !belongsToFile(edge.Sink) {
				continue
			}
			extended := current
			if err := Append(p, g, &extended, edge.Sink, edge.Precedence); err != nil {
				continue
			}
			queue = append(queue, extended)
		}

		visit(current)
	}
	return nil
}
