package checkersmg_test

import (
	"errors"
	"testing"

	cm "checkers-engine/checkersmg"
)

func expectIndexPanic(t *testing.T, name string, f func()) {
	t.Helper()
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, cm.ErrInvalidIndex) {
			t.Fatalf("%s: expected ErrInvalidIndex panic, got %v", name, r)
		}
	}()
	f()
}

func TestBitHelpers(t *testing.T) {
	bb := cm.SetBit(0, 10)
	if !cm.IsSet(bb, 10) || cm.IsSet(bb, 11) {
		t.Fatalf("SetBit/IsSet mismatch: %x", bb)
	}
	if cm.ClearBit(bb, 10) != 0 {
		t.Fatalf("ClearBit did not clear")
	}
	if cm.RCToIndex(3, 5) != 29 || cm.IndexToRow(29) != 3 || cm.IndexToCol(29) != 5 {
		t.Fatalf("index conversion mismatch")
	}
	if cm.PopCount(0xF0F0) != 8 {
		t.Fatalf("PopCount(0xF0F0) = %d", cm.PopCount(0xF0F0))
	}
	if cm.LSBIndex(0) != 64 || cm.LSBIndex(0x100) != 8 {
		t.Fatalf("LSBIndex mismatch")
	}

	expectIndexPanic(t, "SetBit(64)", func() { cm.SetBit(0, 64) })
	expectIndexPanic(t, "IsSet(-1)", func() { cm.IsSet(0, -1) })
	expectIndexPanic(t, "RCToIndex(8,0)", func() { cm.RCToIndex(8, 0) })
	expectIndexPanic(t, "Position.Index", func() { cm.NoPosition.Index() })
}

func TestInitialSetups(t *testing.T) {
	cases := []struct {
		variant cm.Variant
		pieces  int
	}{
		{cm.Standard, 12},
		{cm.Turkish, 16},
	}
	for _, tc := range cases {
		b := cm.MustRules(tc.variant).InitialSetup()
		if !b.Valid(tc.variant) {
			t.Fatalf("%s: initial setup invalid", tc.variant)
		}
		if b.PieceCount(cm.Red) != tc.pieces || b.PieceCount(cm.Black) != tc.pieces {
			t.Fatalf("%s: got %d red / %d black", tc.variant, b.PieceCount(cm.Red), b.PieceCount(cm.Black))
		}
		if b.Kings(cm.Red)|b.Kings(cm.Black) != 0 {
			t.Fatalf("%s: kings on the initial board", tc.variant)
		}
		if b.Mirror() != b {
			t.Fatalf("%s: initial setup should be its own mirror", tc.variant)
		}
	}

	std := cm.MustRules(cm.Standard).InitialSetup()
	for idx := 0; idx < cm.NumSquares; idx++ {
		p, ok := std.PieceAt(idx)
		if !ok {
			continue
		}
		r, c := cm.IndexToRow(idx), cm.IndexToCol(idx)
		if (r+c)%2 == 0 {
			t.Fatalf("standard piece on light square %d", idx)
		}
		if p.Color == cm.Black && r > 2 || p.Color == cm.Red && r < 5 {
			t.Fatalf("piece %s on wrong row %d", p, r)
		}
	}
}

func TestPutRemoveAndValid(t *testing.T) {
	var b cm.Board
	b = b.Put(cm.RCToIndex(4, 3), cm.Piece{Color: cm.Red, King: true})
	p, ok := b.PieceAt(cm.RCToIndex(4, 3))
	if !ok || p != (cm.Piece{Color: cm.Red, King: true}) {
		t.Fatalf("Put lost the piece: %v %v", p, ok)
	}
	if b.Remove(cm.RCToIndex(4, 3)) != (cm.Board{}) {
		t.Fatalf("Remove did not empty the board")
	}

	light := cm.Board{RedMen: 1}
	if light.Valid(cm.Standard) {
		t.Fatalf("a man on a light square is not a valid standard board")
	}
	if !light.Valid(cm.Turkish) {
		t.Fatalf("every square is playable in turkish")
	}
	overlap := cm.Board{RedMen: 1 << 10, BlackKings: 1 << 10}
	if overlap.Disjoint() || overlap.Valid(cm.Turkish) {
		t.Fatalf("overlapping masks must be rejected")
	}
}

func TestPositionText(t *testing.T) {
	p := cm.Position{Row: 5, Col: 2}
	if p.String() != "c5" {
		t.Fatalf("String = %q", p.String())
	}
	q, err := cm.ParsePosition("C5")
	if err != nil || q != p {
		t.Fatalf("ParsePosition = %v, %v", q, err)
	}
	if _, err := cm.ParsePosition("i9"); !errors.Is(err, cm.ErrInvalidIndex) {
		t.Fatalf("expected ErrInvalidIndex, got %v", err)
	}
	path, err := cm.ParsePath("a5-c3-e1")
	if err != nil || cm.PathString(path) != "a5-c3-e1" {
		t.Fatalf("ParsePath round trip: %v %v", path, err)
	}
}

func TestFEN(t *testing.T) {
	std := cm.MustRules(cm.Standard)
	const start = "1b1b1b1b/b1b1b1b1/1b1b1b1b/8/8/r1r1r1r1/1r1r1r1r/r1r1r1r1 r"
	if got := cm.StartFEN(std); got != start {
		t.Fatalf("StartFEN = %q", got)
	}
	for _, v := range cm.Variants {
		r := cm.MustRules(v)
		b, toMove, err := cm.ParseFEN(cm.StartFEN(r))
		if err != nil || b != r.InitialSetup() || toMove != cm.Red {
			t.Fatalf("%s: FEN round trip failed: %v", v, err)
		}
	}

	b, toMove, err := cm.ParseFEN("7B/8/8/8/8/8/8/R7 b")
	if err != nil || toMove != cm.Black {
		t.Fatalf("ParseFEN: %v", err)
	}
	if b.BlackKings != 1<<7 || b.RedKings != 1<<56 {
		t.Fatalf("kings misplaced: %+v", b)
	}

	for _, bad := range []string{"", "8/8/8", "9/8/8/8/8/8/8/8", "x7/8/8/8/8/8/8/8", "8/8/8/8/8/8/8/8 q", "8/8/8/8/8/8/8/8 r extra"} {
		if _, _, err := cm.ParseFEN(bad); !errors.Is(err, cm.ErrInvalidFEN) {
			t.Errorf("ParseFEN(%q): expected ErrInvalidFEN, got %v", bad, err)
		}
	}
}

func TestBoardStateHash(t *testing.T) {
	b := cm.MustRules(cm.Standard).InitialSetup()
	red := cm.GenerateBoardStateHash(b, cm.Red)
	black := cm.GenerateBoardStateHash(b, cm.Black)
	if red == black {
		t.Fatalf("hash must depend on the side to move")
	}
	if red != cm.GenerateBoardStateHash(b, cm.Red) {
		t.Fatalf("hash must be deterministic")
	}

	h := cm.History{}
	if h.Record(b, cm.Red) != 1 || h.Record(b, cm.Red) != 2 || h.Count(b, cm.Black) != 0 {
		t.Fatalf("history counts wrong: %v", h)
	}
	c := h.Clone()
	c.Record(b, cm.Red)
	if h.Count(b, cm.Red) != 2 {
		t.Fatalf("Clone shares storage with the original")
	}
}
