package tuner

import (
	"errors"
	"fmt"
	"io"

	cm "checkers-engine/checkersmg"
)

var ErrBadConfig = errors.New("tuner: bad config")

// Config controls self-play matches and the coordinate search over weights.
type Config struct {
	Variant         cm.Variant `json:"variant"`
	Depth           int        `json:"depth"`
	QuiescenceDepth int        `json:"quiescenceDepth"`
	// Games per match. Played in pairs from the same opening with colours swapped.
	Games int `json:"games"`
	// OpeningPlies random turns played before the engines take over.
	OpeningPlies int `json:"openingPlies"`
	// MaxPlies adjudicates a game as drawn.
	MaxPlies int   `json:"maxPlies"`
	Seed     int64 `json:"seed"`

	// Step is the relative change tried on each parameter; it halves every round
	// until it drops below MinStep.
	Step    float64 `json:"step"`
	MinStep float64 `json:"minStep"`
	Rounds  int     `json:"rounds"`
	// Margin is how far above an even score a candidate must finish to be kept.
	Margin float64 `json:"margin"`

	Log io.Writer `json:"-"`
}

func DefaultConfig(v cm.Variant) Config {
	return Config{
		Variant:         v,
		Depth:           4,
		QuiescenceDepth: 4,
		Games:           16,
		OpeningPlies:    4,
		MaxPlies:        150,
		Seed:            1,
		Step:            0.2,
		MinStep:         0.02,
		Rounds:          4,
		Margin:          0.05,
	}
}

func (c Config) validate() error {
	switch {
	case c.Games <= 0 || c.Games%2 != 0:
		return fmt.Errorf("%w: games must be a positive even number, got %d", ErrBadConfig, c.Games)
	case c.Depth < 0 || c.QuiescenceDepth < 0:
		return fmt.Errorf("%w: negative depth", ErrBadConfig)
	case c.MaxPlies <= 0:
		return fmt.Errorf("%w: maxPlies must be positive", ErrBadConfig)
	case c.Step <= 0:
		return fmt.Errorf("%w: step must be positive", ErrBadConfig)
	}
	if _, err := cm.NewRules(c.Variant); err != nil {
		return err
	}
	return nil
}

func (c Config) logf(format string, args ...any) {
	if c.Log != nil {
		fmt.Fprintf(c.Log, format, args...)
	}
}
