package stitching

import (
	"errors"

	"github.com/viant/stackgraph/graph"
	"github.com/viant/stackgraph/partial"
)

var (
	errNonProductiveExtension = errors.New("stitching: extension adds no information")
	errNonStrengtheningCycle  = errors.New("stitching: cyclic extension does not strengthen precondition")
)

// DefaultMaxWorkPerPhase bounds how many candidate partial paths a
// single call to ProcessNextPhase considers, so that an outer scheduler
// can interleave stitching with loading more partial paths into the
// database between phases (SPEC_FULL.md §5).
const DefaultMaxWorkPerPhase = 1 << 16

// ShouldExtendFunc decides whether stitchOne should even attempt to
// extend p with candidate e, before the cost of concatenation and
// unification is paid. The default (nil) always attempts the extension.
type ShouldExtendFunc func(p, e partial.PartialPath) bool

// Option configures a ForwardPartialPathStitcher at construction time,
// the same way analyzer/option.go's Option configures an Analyzer.
type Option func(*ForwardPartialPathStitcher)

// WithMaxWorkPerPhase overrides DefaultMaxWorkPerPhase.
func WithMaxWorkPerPhase(n int) Option {
	return func(s *ForwardPartialPathStitcher) { s.maxWorkPerPhase = n }
}

// WithCancellationFlag attaches a flag checked once per queued path in
// every ProcessNextPhase call, instead of requiring the caller to pass
// one explicitly to ProcessNextPhase/FindAllCompletePartialPaths.
func WithCancellationFlag(flag *partial.CancellationFlag) Option {
	return func(s *ForwardPartialPathStitcher) { s.cancel = flag }
}

// WithShouldExtend installs a predicate consulted before every candidate
// extension attempt, letting a caller prune the search (e.g. skip
// candidates known to be shadowed) without paying for concatenation.
func WithShouldExtend(f ShouldExtendFunc) Option {
	return func(s *ForwardPartialPathStitcher) { s.shouldExtend = f }
}

// ForwardPartialPathStitcher concatenates partial paths across file
// boundaries, phase by phase, starting from a seed frontier and
// extending it against a Database's indexed partial paths
// (SPEC_FULL.md §4.5).
type ForwardPartialPathStitcher struct {
	graph *graph.StackGraph
	paths *partial.Paths
	db    *Database

	queue           []partial.PartialPath
	nextPhase       []partial.PartialPath
	lastPhase       []partial.PartialPath
	maxWorkPerPhase int
	cancel          *partial.CancellationFlag
	shouldExtend    ShouldExtendFunc
}

// FromNodes seeds a stitcher from the database's indexed candidates for
// each of starts (root-indexed if a start is root, node-indexed
// otherwise). This is how the stitcher normally begins: resolving a
// fresh reference against whatever partial paths the database already
// has loaded.
func FromNodes(g *graph.StackGraph, p *partial.Paths, db *Database, starts []graph.NodeHandle, opts ...Option) *ForwardPartialPathStitcher {
	s := &ForwardPartialPathStitcher{graph: g, paths: p, db: db, maxWorkPerPhase: DefaultMaxWorkPerPhase}
	for _, opt := range opts {
		opt(s)
	}
	for _, start := range starts {
		var handles []PathHandle
		if g.Node(start).IsRoot() {
			handles = db.FindCandidatePartialPathsFromRoot(nil)
		} else {
			handles = db.FindCandidatePartialPathsFromNode(start)
		}
		for _, h := range handles {
			s.queue = append(s.queue, db.Path(h))
		}
	}
	return s
}

// FromPartialPaths seeds a stitcher directly with ps, bypassing database
// lookup. Used for query-time reference resolution after the caller has
// already called partial.EliminatePreconditionStackVariables on ps.
func FromPartialPaths(g *graph.StackGraph, p *partial.Paths, db *Database, ps []partial.PartialPath, opts ...Option) *ForwardPartialPathStitcher {
	s := &ForwardPartialPathStitcher{graph: g, paths: p, db: db, queue: append([]partial.PartialPath(nil), ps...), maxWorkPerPhase: DefaultMaxWorkPerPhase}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetMaxWorkPerPhase overrides the default per-phase work budget.
func (s *ForwardPartialPathStitcher) SetMaxWorkPerPhase(n int) { s.maxWorkPerPhase = n }

// PreviousPhasePartialPaths exposes the most recently produced frontier.
func (s *ForwardPartialPathStitcher) PreviousPhasePartialPaths() []partial.PartialPath {
	return s.lastPhase
}

// IsComplete reports whether both the current and next-phase queues are
// empty: there is no more work this stitcher can do without the caller
// loading additional partial paths into the database.
func (s *ForwardPartialPathStitcher) IsComplete() bool {
	return len(s.queue) == 0 && len(s.nextPhase) == 0
}

// ProcessNextPhase runs one phase step (SPEC_FULL.md §4.5.2): every path
// currently queued is extended against the database's candidates for its
// end node, up to maxWorkPerPhase candidates considered. cancel is
// checked once per path in the current frontier.
func (s *ForwardPartialPathStitcher) ProcessNextPhase(cancel *partial.CancellationFlag) error {
	if cancel == nil {
		cancel = s.cancel
	}
	work := 0
	processed := 0
	for _, p := range s.queue {
		if work >= s.maxWorkPerPhase {
			break
		}
		if err := cancel.Check("stitch partial path phase"); err != nil {
			return err
		}
		candidates := s.candidatesFor(p)
		work += len(candidates)
		for _, candidateHandle := range candidates {
			candidate := s.db.Path(candidateHandle)
			if s.shouldExtend != nil && !s.shouldExtend(p, candidate) {
				continue
			}
			extended, err := s.stitchOne(p, candidate)
			if err != nil {
				continue
			}
			s.nextPhase = append(s.nextPhase, extended)
		}
		processed++
	}
	s.lastPhase = s.nextPhase
	s.queue = append(append([]partial.PartialPath(nil), s.queue[processed:]...), s.nextPhase...)
	s.nextPhase = nil
	return nil
}

func (s *ForwardPartialPathStitcher) candidatesFor(p partial.PartialPath) []PathHandle {
	if s.graph.Node(p.End).IsRoot() {
		symbols := p.SymbolPostcondition.Symbols(s.paths)
		return s.db.FindCandidatePartialPathsFromRoot(symbols)
	}
	return s.db.FindCandidatePartialPathsFromNode(p.End)
}

// stitchOne extends p with candidate e: skips e when e itself is not
// productive, offsets e's variables clear of p's, concatenates, and
// rejects the result when it is not productive or when it starts and ends
// at the same node and IsCyclic does not classify it as
// StrengthensPrecondition. No history of earlier extensions is kept, so a
// cycle that runs through more than one partial path is not detected.
func (s *ForwardPartialPathStitcher) stitchOne(p, e partial.PartialPath) (partial.PartialPath, error) {
	if !e.IsProductive(s.paths) {
		return partial.PartialPath{}, errNonProductiveExtension
	}
	symbolDelta := partial.LargestSymbolVariable(p) + 1
	scopeDelta := partial.LargestScopeVariable(p) + 1
	offset := partial.OffsetVariables(e, symbolDelta, scopeDelta)

	joined, err := partial.Concatenate(s.paths, s.graph, p, offset)
	if err != nil {
		return partial.PartialPath{}, err
	}

	if !joined.IsProductive(s.paths) {
		return partial.PartialPath{}, errNonProductiveExtension
	}
	if cyclicity := partial.IsCyclic(s.paths, joined); cyclicity != partial.StrengthensPrecondition && joined.Start == joined.End {
		return partial.PartialPath{}, errNonStrengtheningCycle
	}
	return joined, nil
}

// FindAllCompletePartialPaths drives the stitcher to completion (calling
// ProcessNextPhase until IsComplete) and returns every produced path
// whose start is a reference matching an empty precondition and whose
// end is a definition matching an empty postcondition (SPEC_FULL.md
// §4.5.4).
func FindAllCompletePartialPaths(s *ForwardPartialPathStitcher, cancel *partial.CancellationFlag) ([]partial.PartialPath, error) {
	var complete []partial.PartialPath
	for !s.IsComplete() {
		if err := s.ProcessNextPhase(cancel); err != nil {
			return nil, err
		}
		for _, p := range s.PreviousPhasePartialPaths() {
			if p.StartsAtReference(s.graph) && p.EndsAtDefinition(s.graph) {
				complete = append(complete, p)
			}
		}
	}
	return complete, nil
}
