package engine

import (
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	cm "checkers-engine/checkersmg"

	"golang.org/x/exp/constraints"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// WinScore is the magnitude given to a side that cannot move. Remaining depth is
	// added on top so quicker wins and slower losses are preferred.
	WinScore float64 = 1e6

	// tieEpsilon is how far below the best root score a sibling is still searched
	// exactly, so equal scores can be told apart from upper bounds.
	tieEpsilon = 1e-9

	DefaultQuiescenceDepth = 4
)

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
)

// Searcher runs minimax with alpha-beta pruning and a capture-only quiescence
// extension. A Searcher is not safe for concurrent use. Killer and history tables only
// reorder successors and are reset at the start of every Search.
type Searcher struct {
	rules           cm.Rules
	eval            Evaluator
	rng             *rand.Rand
	info            io.Writer
	quiescenceDepth int
	stats           CutStatistics
	killers         killerTable
	history         historyTable
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithEvaluator replaces the variant's default evaluator.
func WithEvaluator(e Evaluator) Option { return func(s *Searcher) { s.eval = e } }

// WithRand sets the source used to break ties between equal root moves.
func WithRand(r *rand.Rand) Option { return func(s *Searcher) { s.rng = r } }

// WithSeed is WithRand with a fresh source seeded by seed.
func WithSeed(seed int64) Option {
	return func(s *Searcher) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithInfo makes the searcher print an info line after every search.
func WithInfo(w io.Writer) Option { return func(s *Searcher) { s.info = w } }

// NewSearcher builds a searcher for a rule set.
func NewSearcher(r cm.Rules, opts ...Option) *Searcher {
	s := &Searcher{
		rules:           r,
		quiescenceDepth: DefaultQuiescenceDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.eval == nil {
		s.eval = NewEvaluator(r)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	s.killers.clear()
	return s
}

// Rules returns the rule set the searcher was built with.
func (s *Searcher) Rules() cm.Rules { return s.rules }

// Stats returns the counters of the last search.
func (s *Searcher) Stats() CutStatistics { return s.stats }

// Result describes the chosen move.
type Result struct {
	Move     cm.Move
	Path     []cm.Position
	Score    float64
	Captures int
	// Candidates is the number of complete turns considered at the root; Ties how many
	// of them shared the best score.
	Candidates int
	Ties       int
	Stats      CutStatistics
	Elapsed    time.Duration
}

// FindBestMove returns the first step of the best turn for ai, or false when ai has no
// legal move.
func (s *Searcher) FindBestMove(b cm.Board, ai cm.Color, searchDepth, quiescenceDepth int) (cm.Move, bool) {
	res, ok := s.Search(b, ai, searchDepth, quiescenceDepth)
	return res.Move, ok
}

// Search scores every root turn with a full-depth subtree and picks the best, breaking
// ties uniformly at random. Depths below zero are treated as zero.
func (s *Searcher) Search(b cm.Board, ai cm.Color, searchDepth, quiescenceDepth int) (Result, bool) {
	start := time.Now()
	s.stats = CutStatistics{}
	s.quiescenceDepth = atLeast(quiescenceDepth, 0)
	s.killers.clear()
	s.history.clear()

	if b.Pieces(ai) == 0 {
		return Result{}, false
	}
	roots := s.orderedSuccessors(b, ai, false, 0)
	if len(roots) == 0 {
		return Result{}, false
	}

	childDepth := atLeast(searchDepth-1, 0)
	best := negInf
	var ties []int
	for i, seq := range roots {
		alpha := negInf
		if !math.IsInf(best, -1) {
			alpha = best - tieEpsilon
		}
		score := s.minimax(seq.Result, childDepth, 1, alpha, posInf, false, ai)
		switch {
		case score > best:
			best = score
			ties = append(ties[:0], i)
		case score == best:
			ties = append(ties, i)
		}
	}

	pick := ties[0]
	if len(ties) > 1 {
		pick = ties[s.rng.Intn(len(ties))]
	}
	chosen := roots[pick]
	res := Result{
		Move:       chosen.First(),
		Path:       chosen.Path,
		Score:      best,
		Captures:   chosen.Captures,
		Candidates: len(roots),
		Ties:       len(ties),
		Stats:      s.stats,
		Elapsed:    time.Since(start),
	}
	if s.info != nil {
		fmt.Fprintf(s.info, "info depth %d qdepth %d score %.2f nodes %d time %d pv %s\n",
			searchDepth, s.quiescenceDepth, best, s.stats.Total(),
			res.Elapsed.Milliseconds(), cm.PathString(chosen.Path))
	}
	return res, true
}

// Minimax is alpha-beta over complete turns. The maximizing side is ai. At depth zero
// the position is handed to the quiescence search.
func (s *Searcher) Minimax(b cm.Board, depth int, alpha, beta float64, maximizing bool, ai cm.Color) float64 {
	return s.minimax(b, depth, 0, alpha, beta, maximizing, ai)
}

func (s *Searcher) minimax(b cm.Board, depth, ply int, alpha, beta float64, maximizing bool, ai cm.Color) float64 {
	s.stats.Nodes++
	if depth <= 0 {
		return s.Quiescence(b, s.quiescenceDepth, alpha, beta, maximizing, ai)
	}

	player := ai
	if !maximizing {
		player = ai.Opponent()
	}
	succ := s.orderedSuccessors(b, player, false, ply)
	if len(succ) == 0 {
		s.stats.StuckPositions++
		if maximizing {
			return -(WinScore + float64(depth))
		}
		return WinScore + float64(depth)
	}

	if maximizing {
		best := negInf
		for _, seq := range succ {
			score := s.minimax(seq.Result, depth-1, ply+1, alpha, beta, false, ai)
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				s.stats.BetaCutoffs++
				s.recordCutoff(seq, player, depth, ply)
				break
			}
		}
		return best
	}

	best := posInf
	for _, seq := range succ {
		score := s.minimax(seq.Result, depth-1, ply+1, alpha, beta, true, ai)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			s.stats.BetaCutoffs++
			s.recordCutoff(seq, player, depth, ply)
			break
		}
	}
	return best
}

// Quiescence extends a leaf with capture turns only. The stand-pat score bounds the
// result: the side to move is never assumed to do worse than standing still.
func (s *Searcher) Quiescence(b cm.Board, depth int, alpha, beta float64, maximizing bool, ai cm.Color) float64 {
	s.stats.QNodes++

	standPat := s.eval.Evaluate(b, ai)
	if maximizing {
		if standPat >= beta {
			s.stats.QStandPatCutoffs++
			return standPat
		}
		alpha = max(alpha, standPat)
	} else {
		if standPat <= alpha {
			s.stats.QStandPatCutoffs++
			return standPat
		}
		beta = min(beta, standPat)
	}
	if depth <= 0 {
		return standPat
	}

	player := ai
	if !maximizing {
		player = ai.Opponent()
	}
	succ := s.Successors(b, player, true)
	if len(succ) == 0 {
		return standPat
	}

	best := standPat
	for _, seq := range succ {
		score := s.Quiescence(seq.Result, depth-1, alpha, beta, !maximizing, ai)
		if maximizing {
			best = max(best, score)
			alpha = max(alpha, score)
		} else {
			best = min(best, score)
			beta = min(beta, score)
		}
		if beta <= alpha {
			s.stats.QBetaCutoffs++
			break
		}
	}
	return best
}

func atLeast[T constraints.Ordered](v, floor T) T {
	if v < floor {
		return floor
	}
	return v
}
