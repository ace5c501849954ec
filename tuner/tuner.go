package tuner

import (
	"checkers-engine/engine"

	"golang.org/x/exp/constraints"
)

// Limits on any tuned scalar. Weights never change sign.
const (
	minWeight = 0
	maxWeight = 10000
)

// Tune runs a coordinate search over base.Params(): each round tries every parameter
// scaled up and down by the current step and keeps a change when it wins a match
// against the current best by more than cfg.Margin.
func Tune(cfg Config, base engine.Weights) (engine.Weights, error) {
	if err := cfg.validate(); err != nil {
		return base, err
	}
	best := base
	step := cfg.Step
	for round := 1; round <= cfg.Rounds && step >= cfg.MinStep; round++ {
		improved := 0
		for i := range best.Params() {
			name := best.Params()[i].Name
			current := *best.Params()[i].Value
			for _, dir := range []float64{1, -1} {
				candidate := best
				p := candidate.Params()[i]
				*p.Value = clamp(nudge(current, step*dir), minWeight, maxWeight)
				if *p.Value == current {
					continue
				}
				res, err := Match(cfg, candidate, best)
				if err != nil {
					return best, err
				}
				cfg.logf("round %d %s %.3f -> %.3f score %.3f (+%d -%d =%d)\n",
					round, name, current, *p.Value, res.Score(), res.Wins, res.Losses, res.Draws)
				if res.Score() > 0.5+cfg.Margin {
					best = candidate
					improved++
					break
				}
			}
		}
		cfg.logf("round %d done, step %.3f, %d changes\n", round, step, improved)
		step /= 2
	}
	return best, nil
}

// nudge scales v by 1+rel. A zero weight moves to rel instead so it can leave zero.
func nudge(v, rel float64) float64 {
	if v == 0 {
		return rel
	}
	return v * (1 + rel)
}

func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
