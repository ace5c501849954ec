package engine

import (
	cm "checkers-engine/checkersmg"
)

// Successors lists player's complete turns from b, best-ordered first. Each capture
// sequence is a single successor; in Turkish only the longest sequences are kept.
// capturesOnly returns nothing when no capture exists.
func (s *Searcher) Successors(b cm.Board, player cm.Color, capturesOnly bool) []cm.Sequence {
	return s.orderedSuccessors(b, player, capturesOnly, -1)
}

// orderedSuccessors also applies the killer moves recorded for ply.
func (s *Searcher) orderedSuccessors(b cm.Board, player cm.Color, capturesOnly bool, ply int) []cm.Sequence {
	seqs := cm.TurnSequences(s.rules, b, player, capturesOnly)
	list := s.scoreSequences(seqs, player, ply)
	for i := range list.seqs {
		orderNextSequence(i, &list)
		seqs[i] = list.seqs[i].seq
	}
	return seqs
}
