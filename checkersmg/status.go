package checkersmg

import "fmt"

// Outcome is the coarse state of a game.
type Outcome uint8

const (
	Ongoing Outcome = iota
	Win
	Draw
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	}
	return "ongoing"
}

func (o Outcome) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Outcome) UnmarshalText(b []byte) error {
	for _, c := range []Outcome{Ongoing, Win, Draw} {
		if c.String() == string(b) {
			*o = c
			return nil
		}
	}
	return fmt.Errorf("unknown outcome %q", b)
}

// Reason explains a finished game.
type Reason uint8

const (
	ReasonNone Reason = iota
	NoPiecesLeft
	NoMovesLeft
	ThreefoldRepetition
)

func (r Reason) String() string {
	switch r {
	case NoPiecesLeft:
		return "noPiecesLeft"
	case NoMovesLeft:
		return "noMovesLeft"
	case ThreefoldRepetition:
		return "threefoldRepetition"
	}
	return "none"
}

func (r Reason) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Reason) UnmarshalText(b []byte) error {
	for _, c := range []Reason{ReasonNone, NoPiecesLeft, NoMovesLeft, ThreefoldRepetition} {
		if c.String() == string(b) {
			*r = c
			return nil
		}
	}
	return fmt.Errorf("unknown reason %q", b)
}

// GameStatus is recomputed after every completed turn. Winner is only meaningful for Win.
type GameStatus struct {
	Outcome Outcome `json:"outcome"`
	Winner  Color   `json:"winner"`
	Reason  Reason  `json:"reason"`
}

// Over reports whether the game has finished.
func (s GameStatus) Over() bool { return s.Outcome != Ongoing }

func (s GameStatus) String() string {
	switch s.Outcome {
	case Win:
		return fmt.Sprintf("%s wins (%s)", s.Winner, s.Reason)
	case Draw:
		return fmt.Sprintf("draw (%s)", s.Reason)
	}
	return "ongoing"
}
