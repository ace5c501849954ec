package engine

import (
	cm "checkers-engine/checkersmg"
)

// Evaluator scores a position from ai's point of view; positive is good for ai.
type Evaluator interface {
	Evaluate(b cm.Board, ai cm.Color) float64
}

// NewEvaluator returns the default evaluator of the rule set's variant.
func NewEvaluator(r cm.Rules) Evaluator {
	return NewWeightedEvaluator(r, DefaultWeights(r.Variant()))
}

// NewWeightedEvaluator returns the variant's evaluator using w.
func NewWeightedEvaluator(r cm.Rules, w Weights) Evaluator {
	if r.Variant() == cm.Turkish {
		return NewTurkishEvaluator(r, w)
	}
	return NewStandardEvaluator(r, w)
}

// Key squares: the dark centre for Standard, the 4x4 centre for Turkish.
var (
	standardKeySquares = darkSquares & (cm.RowMask(3) | cm.RowMask(4)) & centralFiles
	turkishKeySquares  = (cm.RowMask(2) | cm.RowMask(3) | cm.RowMask(4) | cm.RowMask(5)) & centralFiles
)

const (
	darkSquares  uint64 = 0x55AA55AA55AA55AA
	centralFiles uint64 = 0x3C3C3C3C3C3C3C3C
)

// sideTerms are the raw per-side counts collected by one board scan.
type sideTerms struct {
	men           int
	kings         int
	psqt          float64
	mobility      int
	center        int
	promotion     int
	supported     int
	edgeMen       int
	isolatedKings int
}

// coverFunc returns the squares from which a friendly piece protects a man on sq.
type coverFunc func(sq int, c cm.Color) uint64

// scan visits every occupied square exactly once and fills both sides' terms plus the
// set of pieces each side currently has en prise.
func scan(r cm.Rules, b cm.Board, w *Weights, keySquares uint64, cover coverFunc) (terms [2]sideTerms, threatened [2]uint64) {
	pieces := [2]uint64{cm.Red: b.AllRed(), cm.Black: b.AllBlack()}
	kings := b.RedKings | b.BlackKings

	for rest := b.Occupied(); rest != 0; rest &= rest - 1 {
		sq := cm.LSBIndex(rest)
		bit := uint64(1) << uint(sq)
		c := cm.Red
		if pieces[cm.Black]&bit != 0 {
			c = cm.Black
		}
		piece := cm.Piece{Color: c, King: kings&bit != 0}
		t := &terms[c]

		view := sq
		if c == cm.Black {
			view = 63 - sq
		}
		if piece.King {
			t.kings++
			t.psqt += w.KingPSQT[view]
			if cm.KingZone(sq)&pieces[c] == 0 {
				t.isolatedKings++
			}
		} else {
			t.men++
			t.psqt += w.ManPSQT[view]
			t.promotion += 7 - view>>3
			if col := sq & 7; col == 0 || col == 7 {
				t.edgeMen++
			}
			if cover(sq, c)&pieces[c] != 0 {
				t.supported++
			}
		}
		if keySquares&bit != 0 {
			t.center++
		}

		jumps := r.JumpMask(sq, piece, b)
		t.mobility += cm.PopCount(r.RegularMask(sq, piece, b) | jumps)
		for ; jumps != 0; jumps &= jumps - 1 {
			if captured := r.CapturedSquare(sq, cm.LSBIndex(jumps), b); captured >= 0 {
				threatened[c.Opponent()] |= uint64(1) << uint(captured)
			}
		}
	}
	threatened[cm.Red] &= pieces[cm.Red]
	threatened[cm.Black] &= pieces[cm.Black]
	return terms, threatened
}

// side combines one side's terms with the weights.
func (w *Weights) side(t sideTerms, threatened uint64) float64 {
	return w.Man*float64(t.men) +
		w.King*float64(t.kings) +
		w.PSQTScale*t.psqt +
		w.Mobility*float64(t.mobility) +
		w.Center*float64(t.center) +
		w.Promotion*float64(t.promotion) +
		w.Support*float64(t.supported) -
		w.Threat*float64(cm.PopCount(threatened)) -
		w.EdgeMan*float64(t.edgeMen) -
		w.IsolatedKing*float64(t.isolatedKings)
}

// behindRow is the row a man of c came from.
func behindRow(sq int, c cm.Color) int {
	if c == cm.Black {
		return sq>>3 - 1
	}
	return sq>>3 + 1
}

// StandardEvaluator scores Standard checkers positions.
type StandardEvaluator struct {
	rules   cm.Rules
	Weights Weights
}

func NewStandardEvaluator(r cm.Rules, w Weights) *StandardEvaluator {
	return &StandardEvaluator{rules: r, Weights: w}
}

// A Standard man is covered by friendly pieces on its two rear diagonals.
func standardCover(sq int, c cm.Color) uint64 {
	return cm.DiagonalNeighbours(sq) & cm.RowMask(behindRow(sq, c))
}

func (e *StandardEvaluator) Evaluate(b cm.Board, ai cm.Color) float64 {
	terms, threatened := scan(e.rules, b, &e.Weights, standardKeySquares, standardCover)
	opp := ai.Opponent()
	return e.Weights.side(terms[ai], threatened[ai]) - e.Weights.side(terms[opp], threatened[opp])
}

// TurkishEvaluator scores Turkish dama positions.
type TurkishEvaluator struct {
	rules   cm.Rules
	Weights Weights
}

func NewTurkishEvaluator(r cm.Rules, w Weights) *TurkishEvaluator {
	return &TurkishEvaluator{rules: r, Weights: w}
}

// A Turkish man is captured along ranks and files, so the rear and side neighbours cover it.
func turkishCover(sq int, c cm.Color) uint64 {
	front := 2*(sq>>3) - behindRow(sq, c)
	return cm.OrthogonalNeighbours(sq) &^ cm.RowMask(front)
}

func (e *TurkishEvaluator) Evaluate(b cm.Board, ai cm.Color) float64 {
	terms, threatened := scan(e.rules, b, &e.Weights, turkishKeySquares, turkishCover)
	opp := ai.Opponent()
	score := e.Weights.side(terms[ai], threatened[ai]) - e.Weights.side(terms[opp], threatened[opp])
	if cm.PopCount(b.Occupied()) <= e.Weights.EndgameThreshold {
		score += e.Weights.EndgameKing * float64(terms[ai].kings-terms[opp].kings)
	}
	return score
}
