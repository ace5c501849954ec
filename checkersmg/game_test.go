package checkersmg_test

import (
	"errors"
	"testing"

	cm "checkers-engine/checkersmg"
)

func TestGameRejectsIllegalMove(t *testing.T) {
	g := cm.NewGame(cm.NewStandardRules())
	before := g.Board()

	if _, err := g.Play(pos("c5"), pos("c4")); !errors.Is(err, cm.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if _, err := g.Play(pos("c1"), pos("d2")); !errors.Is(err, cm.ErrIllegalMove) {
		t.Fatalf("moving the opponent's piece must fail, got %v", err)
	}
	if g.Board() != before || g.ToMove() != cm.Red || g.Plies() != 0 {
		t.Fatalf("a rejected move changed the game")
	}

	if _, err := g.Play(pos("c5"), pos("d4")); err != nil {
		t.Fatalf("legal opening move rejected: %v", err)
	}
	if g.ToMove() != cm.Black || g.Plies() != 1 {
		t.Fatalf("turn did not pass to black")
	}
}

func TestGameMovableIsSorted(t *testing.T) {
	g := cm.NewGame(cm.NewStandardRules())
	got := g.Movable()
	want := []cm.Position{pos("a5"), pos("c5"), pos("e5"), pos("g5")}
	if len(got) != len(want) {
		t.Fatalf("Movable = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Movable = %v, want %v", got, want)
		}
	}
}

func TestGameMultiJumpKeepsTurn(t *testing.T) {
	r := cm.NewTurkishRules()
	b, toMove := mustFEN(t, "8/8/b7/8/b7/r5br/8/8 r")
	g := cm.NewGameFrom(r, b, toMove)

	if _, err := g.Play(pos("h5"), pos("f5")); !errors.Is(err, cm.ErrIllegalMove) {
		t.Fatalf("the shorter capture must be refused, got %v", err)
	}
	res, err := g.Play(pos("a5"), pos("a3"))
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if res.TurnChanged || !g.InProgressJump() || g.ToMove() != cm.Red {
		t.Fatalf("the jump must continue with red to move")
	}
	if p, ok := g.Pending(); !ok || p != pos("a3") {
		t.Fatalf("pending square = %v", p)
	}
	legal := g.LegalMoves()
	if len(legal) != 1 || len(legal[pos("a3")]) != 1 || legal[pos("a3")][0] != pos("a1") {
		t.Fatalf("only a3-a1 may follow, got %v", legal)
	}
	if _, err := g.Play(pos("a3"), pos("a1")); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if g.InProgressJump() || g.ToMove() != cm.Black || g.Board().PieceCount(cm.Black) != 1 {
		t.Fatalf("turn should have passed after the second capture")
	}
	snap := g.Snapshot()
	if snap.Pending != nil || snap.Variant != cm.Turkish || snap.Plies != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

func TestGamePlayPathRestoresOnError(t *testing.T) {
	r := cm.NewStandardRules()
	b, toMove := mustFEN(t, "8/8/3b4/8/1b6/r7/8/8 r")
	g := cm.NewGameFrom(r, b, toMove)

	if err := g.PlayPath([]cm.Position{pos("a5"), pos("c3")}); !errors.Is(err, cm.ErrIllegalMove) {
		t.Fatalf("stopping mid-capture must fail, got %v", err)
	}
	if g.Board() != b || g.InProgressJump() {
		t.Fatalf("failed path left the game modified")
	}
	if err := g.PlayPath([]cm.Position{pos("a5"), pos("c3"), pos("e1")}); err != nil {
		t.Fatalf("PlayPath: %v", err)
	}
	if g.Status().Outcome != cm.Win || g.Status().Winner != cm.Red {
		t.Fatalf("black has no pieces left, got %s", g.Status())
	}
	if len(g.LegalMoves()) != 0 {
		t.Fatalf("no moves once the game is over")
	}
}

func TestGameThreefoldRepetition(t *testing.T) {
	b, toMove := mustFEN(t, "7B/8/8/8/8/8/8/R7 r")
	g := cm.NewGameFrom(cm.NewStandardRules(), b, toMove)

	cycle := [][2]string{{"a7", "b6"}, {"h0", "g1"}, {"b6", "a7"}, {"g1", "h0"}}
	for round := 0; round < 2; round++ {
		for i, step := range cycle {
			if g.Status().Over() {
				t.Fatalf("game ended early at round %d step %d: %s", round, i, g.Status())
			}
			if _, err := g.Play(pos(step[0]), pos(step[1])); err != nil {
				t.Fatalf("round %d step %d: %v", round, i, err)
			}
		}
	}
	st := g.Status()
	if st.Outcome != cm.Draw || st.Reason != cm.ThreefoldRepetition {
		t.Fatalf("third occurrence of the start must be a draw, got %s", st)
	}
	if g.History().Count(b, cm.Red) != 3 {
		t.Fatalf("history count = %d", g.History().Count(b, cm.Red))
	}
}

func TestBlackSingleJumpScenario(t *testing.T) {
	r := cm.NewStandardRules()
	b, _ := mustFEN(t, "8/8/3b4/4r3/8/8/8/r7 b")
	g := cm.NewGameFrom(r, b, cm.Black)

	legal := g.LegalMoves()
	if len(legal) != 1 || len(legal[pos("d2")]) != 1 || legal[pos("d2")][0] != pos("f4") {
		t.Fatalf("black must jump d2-f4, got %v", legal)
	}
	res, err := g.Play(pos("d2"), pos("f4"))
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if !res.TurnChanged || res.Captured != pos("e3") {
		t.Fatalf("unexpected result %+v", res)
	}
	if g.Board().PieceCount(cm.Red) != 1 || g.ToMove() != cm.Red {
		t.Fatalf("red should have one piece left and be on move")
	}
}

func TestContinuationsNeedOwnPiece(t *testing.T) {
	r := cm.NewStandardRules()
	b, _ := mustFEN(t, "8/8/3b4/4r3/8/8/8/r7 b")

	if got := cm.Continuations(r, b, cm.Black, pos("d2")); len(got) != 1 || got[0] != pos("f4") {
		t.Fatalf("black d2 should continue to f4, got %v", got)
	}
	if got := cm.Continuations(r, b, cm.Red, pos("d2")); got != nil {
		t.Fatalf("red has no piece on d2, got %v", got)
	}
	if got := cm.Continuations(r, b, cm.Black, pos("b4")); got != nil {
		t.Fatalf("empty square has no continuations, got %v", got)
	}
	if got := cm.Continuations(r, b, cm.Black, cm.NoPosition); got != nil {
		t.Fatalf("NoPosition has no continuations, got %v", got)
	}
}
