package graph

import (
	"sort"

	"github.com/viant/stackgraph/arena"
)

// NodeHandle identifies a Node within a StackGraph's node arena. Unlike
// NodeID, a handle is only meaningful within the StackGraph that produced
// it; NodeID is the stable, serializable identity.
type NodeHandle = arena.Handle[Node]

// Edge connects two nodes. When a node has more than one outgoing edge,
// precedence orders which is preferred during stitching: higher
// precedence edges are tried first.
type Edge struct {
	Sink       NodeHandle
	Precedence int32
}

// Degree classifies how many outgoing edges a node has, as reported by
// StackGraph.OutgoingDegree.
type Degree int

const (
	DegreeZero Degree = iota
	DegreeOne
	DegreeMultiple
)

// outgoingEdges holds the sorted-by-sink, deduplicated edge list leaving
// one node. Edges are kept sorted so insertion can binary search for an
// existing edge to the same sink instead of scanning linearly.
type outgoingEdges struct {
	edges []Edge
}

func (oe *outgoingEdges) degree() Degree {
	switch len(oe.edges) {
	case 0:
		return DegreeZero
	case 1:
		return DegreeOne
	default:
		return DegreeMultiple
	}
}

// add inserts an edge to sink with precedence. Adding an edge for a sink
// that already has one is a no-op: the graph stores at most one edge per
// (source, sink) pair, and an existing edge's precedence only changes
// through a caller explicitly asking for that (see SetEdgePrecedence).
// Returns true if a new edge was added.
func (oe *outgoingEdges) add(sink NodeHandle, precedence int32) bool {
	i := sort.Search(len(oe.edges), func(i int) bool { return oe.edges[i].Sink >= sink })
	if i < len(oe.edges) && oe.edges[i].Sink == sink {
		return false
	}
	oe.edges = append(oe.edges, Edge{})
	copy(oe.edges[i+1:], oe.edges[i:])
	oe.edges[i] = Edge{Sink: sink, Precedence: precedence}
	return true
}

// setPrecedence changes the precedence of the existing edge to sink,
// returning false if no such edge exists.
func (oe *outgoingEdges) setPrecedence(sink NodeHandle, precedence int32) bool {
	i := sort.Search(len(oe.edges), func(i int) bool { return oe.edges[i].Sink >= sink })
	if i < len(oe.edges) && oe.edges[i].Sink == sink {
		oe.edges[i].Precedence = precedence
		return true
	}
	return false
}

// sorted returns the edge list ordered by descending precedence, then
// ascending sink, which is the order the stitcher should try candidates
// in.
func (oe *outgoingEdges) sorted() []Edge {
	out := make([]Edge, len(oe.edges))
	copy(out, oe.edges)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Precedence > out[j].Precedence })
	return out
}
