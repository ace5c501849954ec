package checkersmg_test

import (
	"testing"

	cm "checkers-engine/checkersmg"
)

func TestPerftInitialPosition(t *testing.T) {
	cases := []struct {
		variant cm.Variant
		counts  []uint64
	}{
		{cm.Standard, []uint64{7, 49, 302, 1469}},
		{cm.Turkish, []uint64{8, 64, 708}},
	}
	for _, tc := range cases {
		r := cm.MustRules(tc.variant)
		for i, want := range tc.counts {
			depth := i + 1
			if got := cm.Perft(r, r.InitialSetup(), cm.Red, depth); got != want {
				t.Fatalf("%s perft depth%d: got %d want %d", tc.variant, depth, got, want)
			}
		}
	}
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	r := cm.NewStandardRules()
	div := cm.PerftDivide(r, r.InitialSetup(), cm.Red, 3)
	if len(div) != 7 {
		t.Fatalf("expected 7 root turns, got %d", len(div))
	}
	var sum uint64
	for _, n := range div {
		sum += n
	}
	if sum != 302 {
		t.Fatalf("divide total %d, want 302", sum)
	}
}

func benchPerft(b *testing.B, v cm.Variant, depth int) {
	r := cm.MustRules(v)
	board := r.InitialSetup()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cm.Perft(r, board, cm.Red, depth)
	}
}

func BenchmarkPerft_Standard_D6(b *testing.B) { benchPerft(b, cm.Standard, 6) }

func BenchmarkPerft_Turkish_D4(b *testing.B) { benchPerft(b, cm.Turkish, 4) }

func BenchmarkAllMovesForPlayer_Turkish(b *testing.B) {
	r := cm.NewTurkishRules()
	board := r.InitialSetup()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = r.AllMovesForPlayer(board, cm.Red, false)
	}
}
