package engine

import (
	"strings"

	cm "checkers-engine/checkersmg"
)

// Weights holds every tunable evaluation constant. Each term is computed per side and
// the opponent's copy is subtracted, so the weights only scale, never change sign.
type Weights struct {
	Man  float64
	King float64

	// Piece-square tables, oriented for Red (which promotes on row 0). Black reads
	// square 63-sq, which is the same square seen from its own side.
	ManPSQT   [64]float64
	KingPSQT  [64]float64
	PSQTScale float64

	Mobility     float64 // per reachable destination
	Center       float64 // per piece on a key square
	Promotion    float64 // per row a man has advanced
	Support      float64 // per man with a friendly piece covering it from behind
	Threat       float64 // per piece the opponent can capture right now
	EdgeMan      float64 // per man stuck on an edge file
	IsolatedKing float64 // per king with no friendly neighbour

	// Turkish endgame: flat bonus per king once the total piece count is at or below the threshold.
	EndgameKing      float64
	EndgameThreshold int
}

// Param names one tunable scalar.
type Param struct {
	Name  string
	Value *float64
}

// Params exposes the scalar weights for tuning. Tables are scaled through PSQTScale.
func (w *Weights) Params() []Param {
	return []Param{
		{"Man", &w.Man},
		{"King", &w.King},
		{"PSQTScale", &w.PSQTScale},
		{"Mobility", &w.Mobility},
		{"Center", &w.Center},
		{"Promotion", &w.Promotion},
		{"Support", &w.Support},
		{"Threat", &w.Threat},
		{"EdgeMan", &w.EdgeMan},
		{"IsolatedKing", &w.IsolatedKing},
		{"EndgameKing", &w.EndgameKing},
	}
}

// Lookup finds a parameter by name, ignoring case.
func (w *Weights) Lookup(name string) (*float64, bool) {
	for _, p := range w.Params() {
		if strings.EqualFold(p.Name, name) {
			return p.Value, true
		}
	}
	return nil, false
}

// Only dark squares matter for Standard; light squares are kept at zero.
var standardManPSQT = [64]float64{
	0, 0, 0, 0, 0, 0, 0, 0,
	6, 0, 6, 0, 6, 0, 6, 0,
	0, 4, 0, 5, 0, 5, 0, 4,
	2, 0, 4, 0, 4, 0, 3, 0,
	0, 2, 0, 3, 0, 3, 0, 1,
	0, 0, 2, 0, 2, 0, 1, 0,
	0, 0, 0, 1, 0, 1, 0, 0,
	3, 0, 4, 0, 4, 0, 3, 0,
}

var standardKingPSQT = [64]float64{
	0, -4, 0, -2, 0, -2, 0, -3,
	-3, 0, 1, 0, 1, 0, 0, 0,
	0, 1, 0, 3, 0, 3, 0, -2,
	-2, 0, 3, 0, 5, 0, 1, 0,
	0, 1, 0, 5, 0, 3, 0, -2,
	-2, 0, 3, 0, 3, 0, 1, 0,
	0, 0, 0, 1, 0, 1, 0, -3,
	-3, 0, -2, 0, -2, 0, -4, 0,
}

var turkishManPSQT = [64]float64{
	0, 0, 0, 0, 0, 0, 0, 0,
	8, 9, 10, 10, 10, 10, 9, 8,
	5, 6, 7, 8, 8, 7, 6, 5,
	3, 4, 5, 6, 6, 5, 4, 3,
	1, 2, 3, 4, 4, 3, 2, 1,
	0, 1, 2, 2, 2, 2, 1, 0,
	0, 0, 1, 1, 1, 1, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var turkishKingPSQT = [64]float64{
	-2, -1, 0, 1, 1, 0, -1, -2,
	-1, 1, 2, 3, 3, 2, 1, -1,
	0, 2, 4, 5, 5, 4, 2, 0,
	1, 3, 5, 6, 6, 5, 3, 1,
	1, 3, 5, 6, 6, 5, 3, 1,
	0, 2, 4, 5, 5, 4, 2, 0,
	-1, 1, 2, 3, 3, 2, 1, -1,
	-2, -1, 0, 1, 1, 0, -1, -2,
}

// DefaultWeights returns the hand-set weights of v.
func DefaultWeights(v cm.Variant) Weights {
	if v == cm.Turkish {
		return DefaultTurkishWeights()
	}
	return DefaultStandardWeights()
}

// DefaultStandardWeights are the hand-set Standard checkers weights.
func DefaultStandardWeights() Weights {
	return Weights{
		Man:          100,
		King:         160,
		ManPSQT:      standardManPSQT,
		KingPSQT:     standardKingPSQT,
		PSQTScale:    1,
		Mobility:     2,
		Center:       4,
		Promotion:    1.5,
		Support:      3,
		Threat:       12,
		EdgeMan:      2,
		IsolatedKing: 6,
	}
}

// DefaultTurkishWeights are the hand-set Turkish dama weights.
func DefaultTurkishWeights() Weights {
	return Weights{
		Man:              100,
		King:             300,
		ManPSQT:          turkishManPSQT,
		KingPSQT:         turkishKingPSQT,
		PSQTScale:        1,
		Mobility:         1.5,
		Center:           3,
		Promotion:        2,
		Support:          3,
		Threat:           15,
		EdgeMan:          1,
		IsolatedKing:     5,
		EndgameKing:      40,
		EndgameThreshold: 8,
	}
}
