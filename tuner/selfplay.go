package tuner

import (
	"math/rand"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"
)

// GameResult is the end of one self-play game.
type GameResult struct {
	Status cm.GameStatus
	Plies  int
	// Adjudicated is set when MaxPlies ended the game.
	Adjudicated bool
}

// Winner returns the winning colour, or false for a draw.
func (g GameResult) Winner() (cm.Color, bool) {
	if g.Status.Outcome != cm.Win {
		return cm.Red, false
	}
	return g.Status.Winner, true
}

// PlayGame plays red against black from the variant's initial position. The first
// cfg.OpeningPlies turns are picked at random from rng, the rest by each side's search.
func PlayGame(cfg Config, red, black engine.Weights, rng *rand.Rand) GameResult {
	rules := cm.MustRules(cfg.Variant)
	game := cm.NewGame(rules)
	searchers := [2]*engine.Searcher{
		cm.Red: engine.NewSearcher(rules,
			engine.WithEvaluator(engine.NewWeightedEvaluator(rules, red)),
			engine.WithSeed(rng.Int63())),
		cm.Black: engine.NewSearcher(rules,
			engine.WithEvaluator(engine.NewWeightedEvaluator(rules, black)),
			engine.WithSeed(rng.Int63())),
	}

	for !game.Status().Over() {
		if game.Plies() >= cfg.MaxPlies {
			return GameResult{
				Status:      cm.GameStatus{Outcome: cm.Draw},
				Plies:       game.Plies(),
				Adjudicated: true,
			}
		}
		var path []cm.Position
		if game.Plies() < cfg.OpeningPlies {
			turns := cm.TurnSequences(rules, game.Board(), game.ToMove(), false)
			path = turns[rng.Intn(len(turns))].Path
		} else {
			res, ok := searchers[game.ToMove()].Search(game.Board(), game.ToMove(), cfg.Depth, cfg.QuiescenceDepth)
			if !ok {
				break
			}
			path = res.Path
		}
		if err := game.PlayPath(path); err != nil {
			panic(err)
		}
	}
	return GameResult{Status: game.Status(), Plies: game.Plies()}
}

// MatchResult counts games from the candidate's point of view.
type MatchResult struct {
	Wins   int
	Losses int
	Draws  int
}

func (m MatchResult) Games() int { return m.Wins + m.Losses + m.Draws }

// Score is the candidate's points per game, a draw counting half.
func (m MatchResult) Score() float64 {
	if m.Games() == 0 {
		return 0.5
	}
	return (float64(m.Wins) + 0.5*float64(m.Draws)) / float64(m.Games())
}

// Match plays cfg.Games games between candidate and baseline. Each pair of games
// shares an opening seed and swaps colours.
func Match(cfg Config, candidate, baseline engine.Weights) (MatchResult, error) {
	if err := cfg.validate(); err != nil {
		return MatchResult{}, err
	}
	var res MatchResult
	seeds := rand.New(rand.NewSource(cfg.Seed))
	for pair := 0; pair < cfg.Games/2; pair++ {
		seed := seeds.Int63()
		for _, candidateColor := range []cm.Color{cm.Red, cm.Black} {
			red, black := candidate, baseline
			if candidateColor == cm.Black {
				red, black = baseline, candidate
			}
			g := PlayGame(cfg, red, black, rand.New(rand.NewSource(seed)))
			winner, decisive := g.Winner()
			switch {
			case !decisive:
				res.Draws++
			case winner == candidateColor:
				res.Wins++
			default:
				res.Losses++
			}
		}
	}
	return res, nil
}
