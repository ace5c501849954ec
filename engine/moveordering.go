package engine

import (
	cm "checkers-engine/checkersmg"
)

/*
	Successor ordering:
	- Longer captures first.
	- Crowning moves next, a king is worth far more than a man.
	- Quiet killers of the current ply, then the history score of the step.
	- Remaining quiet moves keep generation order (ascending source square).
*/
var captureOffset uint16 = 1000
var captureStep uint16 = 100
var promotionOffset uint16 = 500
var killerOffset uint16 = 400

type scoredSequence struct {
	seq   cm.Sequence
	score uint16
}

type sequenceList struct {
	seqs []scoredSequence
}

// scoreSequences gives every successor its ordering key. A nil searcher scores captures
// and promotions only.
func (s *Searcher) scoreSequences(seqs []cm.Sequence, player cm.Color, ply int) sequenceList {
	list := sequenceList{seqs: make([]scoredSequence, len(seqs))}
	for i, seq := range seqs {
		var score uint16
		if seq.Captures > 0 {
			score = captureOffset + captureStep*uint16(seq.Captures)
		}
		if seq.Kinged {
			score += promotionOffset
		}
		if seq.Captures == 0 && s != nil {
			move := seq.First()
			switch s.killers.rank(move, ply) {
			case 1:
				score += killerOffset
			case 2:
				score += killerOffset / 2
			}
			score += uint16(s.history.score(player, move))
		}
		list.seqs[i] = scoredSequence{seq: seq, score: score}
	}
	return list
}

// orderNextSequence moves the best remaining entry to currIndex.
func orderNextSequence(currIndex int, list *sequenceList) {
	bestIndex := currIndex
	bestScore := list.seqs[bestIndex].score

	for index := bestIndex + 1; index < len(list.seqs); index++ {
		if list.seqs[index].score > bestScore {
			bestIndex = index
			bestScore = list.seqs[index].score
		}
	}

	list.seqs[currIndex], list.seqs[bestIndex] = list.seqs[bestIndex], list.seqs[currIndex]
}

// recordCutoff remembers a quiet successor that refuted the node.
func (s *Searcher) recordCutoff(seq cm.Sequence, player cm.Color, depth, ply int) {
	if seq.Captures > 0 {
		return
	}
	move := seq.First()
	s.killers.insert(move, ply)
	s.history.increment(player, move, depth)
}
