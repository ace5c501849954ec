package checkersmg

import (
	"fmt"
	"sort"

	"golang.org/x/exp/maps"
)

// Game drives a live game: it tracks the side to move, a jump in progress, the repetition
// history and the status, and refuses any step outside the currently legal set.
type Game struct {
	rules   Rules
	board   Board
	toMove  Color
	history History
	pending Position
	status  GameStatus
	plies   int
}

// Snapshot is a plain-data copy of a game, safe to hand to another goroutine or encode.
type Snapshot struct {
	Variant Variant    `json:"variant"`
	Board   Board      `json:"board"`
	ToMove  Color      `json:"toMove"`
	Pending *Position  `json:"pending,omitempty"`
	Status  GameStatus `json:"status"`
	Plies   int        `json:"plies"`
}

// NewGame starts from the variant's initial setup with Red to move.
func NewGame(r Rules) *Game { return NewGameFrom(r, r.InitialSetup(), Red) }

// NewGameFrom starts from an arbitrary position.
func NewGameFrom(r Rules, b Board, toMove Color) *Game {
	g := &Game{
		rules:   r,
		board:   b,
		toMove:  toMove,
		history: History{},
		pending: NoPosition,
	}
	g.history.Record(b, toMove)
	g.refreshStatus()
	return g
}

func (g *Game) Rules() Rules { return g.rules }
func (g *Game) Board() Board { return g.board }
func (g *Game) ToMove() Color { return g.toMove }
func (g *Game) Status() GameStatus { return g.status }
func (g *Game) Plies() int { return g.plies }
func (g *Game) History() History { return g.history }
func (g *Game) InProgressJump() bool { return g.pending.Valid() }

// Pending returns the square of the piece that must keep jumping, if any.
func (g *Game) Pending() (Position, bool) { return g.pending, g.pending.Valid() }

// Snapshot copies the game state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Variant: g.rules.Variant(),
		Board:   g.board,
		ToMove:  g.toMove,
		Status:  g.status,
		Plies:   g.plies,
	}
	if g.pending.Valid() {
		p := g.pending
		s.Pending = &p
	}
	return s
}

// LegalMoves returns the steps the side to move may play now. Mid-turn only the jumping
// piece may move, and in a maximal-capture variant only along a longest continuation.
func (g *Game) LegalMoves() map[Position][]Position {
	if g.status.Over() {
		return map[Position][]Position{}
	}
	if g.pending.Valid() {
		return map[Position][]Position{g.pending: g.continuations()}
	}
	return g.rules.AllMovesForPlayer(g.board, g.toMove, false)
}

// Movable lists the squares holding pieces that can move, in square order.
func (g *Game) Movable() []Position {
	froms := maps.Keys(g.LegalMoves())
	SortPositions(froms)
	return froms
}

func (g *Game) continuations() []Position {
	return Continuations(g.rules, g.board, g.toMove, g.pending)
}

// Continuations returns the landings open to player's piece on from in the middle of a
// capture turn. Where maximal capture is mandatory only steps that start a longest
// remaining sequence are kept. A square without a piece of player has none.
func Continuations(r Rules, b Board, player Color, from Position) []Position {
	if !from.Valid() {
		return nil
	}
	piece, ok := b.PieceOn(from)
	if !ok || piece.Color != player {
		return nil
	}
	if !r.IsMaximalCaptureMandatory() {
		return r.FurtherJumps(from, piece, b)
	}
	seqs := CaptureSequences(r, b, from)
	best := MaxCaptures(seqs)
	var mask uint64
	for _, s := range seqs {
		if s.Captures == best {
			mask |= uint64(1) << uint(s.Path[1].Index())
		}
	}
	return Positions(mask)
}

// Play performs one step. A step outside LegalMoves returns ErrIllegalMove and leaves
// the game untouched.
func (g *Game) Play(from, to Position) (MoveResult, error) {
	if g.status.Over() {
		return MoveResult{}, fmt.Errorf("%w: game is over (%s)", ErrIllegalMove, g.status)
	}
	if !from.Valid() || !to.Valid() || !containsPosition(g.LegalMoves()[from], to) {
		return MoveResult{}, fmt.Errorf("%w: %s-%s for %s", ErrIllegalMove, from, to, g.toMove)
	}

	res := g.rules.ApplyMove(g.board, from, to, g.toMove)
	g.board = res.Board
	if !res.TurnChanged {
		g.pending = to
		return res, nil
	}
	g.pending = NoPosition
	g.toMove = g.toMove.Opponent()
	g.plies++
	g.history.Record(g.board, g.toMove)
	g.refreshStatus()
	return res, nil
}

// PlayPath plays a whole turn given as the squares visited by the moving piece.
func (g *Game) PlayPath(path []Position) error {
	if len(path) < 2 {
		return fmt.Errorf("%w: path needs at least two squares", ErrIllegalMove)
	}
	saved := *g
	saved.history = g.history.Clone()
	for i := 1; i < len(path); i++ {
		if _, err := g.Play(path[i-1], path[i]); err != nil {
			*g = saved
			return err
		}
	}
	if g.pending.Valid() {
		*g = saved
		return fmt.Errorf("%w: path stops in the middle of a capture", ErrIllegalMove)
	}
	return nil
}

func (g *Game) refreshStatus() {
	jumps := g.rules.AllMovesForPlayer(g.board, g.toMove, true)
	var regular map[Position][]Position
	if len(jumps) == 0 {
		regular = g.rules.AllMovesForPlayer(g.board, g.toMove, false)
	}
	g.status = g.rules.CheckWinCondition(g.board, g.toMove, jumps, regular, g.history)
}

func containsPosition(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}

// SortPositions orders positions by square index.
func SortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool { return ps[i].Index() < ps[j].Index() })
}
