package engine

import (
	cm "checkers-engine/checkersmg"
)

// MaxPly bounds the killer table; deeper plies simply get no killer bonus.
const MaxPly = 64

type killerTable struct {
	moves [MaxPly][2]cm.Move
}

func (k *killerTable) insert(move cm.Move, ply int) {
	if ply < 0 || ply >= MaxPly {
		return
	}
	if move != k.moves[ply][0] {
		k.moves[ply][1] = k.moves[ply][0]
		k.moves[ply][0] = move
	}
}

// rank is 1 for the primary killer, 2 for the secondary one, 0 otherwise.
func (k *killerTable) rank(move cm.Move, ply int) int {
	if ply < 0 || ply >= MaxPly {
		return 0
	}
	switch move {
	case k.moves[ply][0]:
		return 1
	case k.moves[ply][1]:
		return 2
	}
	return 0
}

func (k *killerTable) clear() {
	for ply := range k.moves {
		k.moves[ply][0] = cm.Move{From: cm.NoPosition, To: cm.NoPosition}
		k.moves[ply][1] = cm.Move{From: cm.NoPosition, To: cm.NoPosition}
	}
}

/*
	HISTORY
	A quiet step that caused a beta cutoff gets depth*depth added to its from/to slot.
	Once any slot reaches historyMaxVal the whole side's table is halved, keeping the
	values below the capture and killer bands.
*/
var historyMaxVal = 200

type historyTable struct {
	scores [2][cm.NumSquares][cm.NumSquares]int
}

func (h *historyTable) increment(player cm.Color, move cm.Move, depth int) {
	slot := &h.scores[player][move.From.Index()][move.To.Index()]
	*slot += depth * depth
	if *slot >= historyMaxVal {
		h.age(player)
	}
}

func (h *historyTable) score(player cm.Color, move cm.Move) int {
	return h.scores[player][move.From.Index()][move.To.Index()]
}

func (h *historyTable) age(player cm.Color) {
	for from := range h.scores[player] {
		for to := range h.scores[player][from] {
			h.scores[player][from][to] /= 2
		}
	}
}

func (h *historyTable) clear() {
	h.scores = [2][cm.NumSquares][cm.NumSquares]int{}
}
