package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	cm "checkers-engine/checkersmg"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

func main() {
	variantName := flag.String("variant", "standard", "Rules variant: standard or turkish")
	fen := flag.String("fen", "", "Board FEN (defaults to the variant's initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-turn node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	memProf := flag.String("memprofile", "", "Write heap profile to file after run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	variant, err := cm.ParseVariant(*variantName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "variant: %v\n", err)
		os.Exit(2)
	}
	rules := cm.MustRules(variant)

	board, toMove := rules.InitialSetup(), cm.Red
	if *fen != "" {
		board, toMove, err = cm.ParseFEN(*fen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ParseFEN error: %v\n", err)
			os.Exit(2)
		}
		if !board.Valid(variant) {
			fmt.Fprintf(os.Stderr, "position is not valid for %s\n", variant)
			os.Exit(2)
		}
	}

	if *divide {
		div := cm.PerftDivide(rules, board, toMove, *depth)
		paths := maps.Keys(div)
		slices.Sort(paths)
		var sum uint64
		for _, p := range paths {
			fmt.Printf("%s: %d\n", p, div[p])
			sum += div[p]
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += cm.Perft(rules, board, toMove, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Label Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *memProf != "" {
		f, err := os.Create(*memProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating memprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			os.Exit(2)
		}
		_ = f.Close()
	}
}
