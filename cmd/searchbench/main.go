package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"
)

func main() {
	variantFlag := flag.String("variant", "standard", "rules variant: standard or turkish")
	depthFlag := flag.Int("depth", 8, "search depth in complete turns")
	qdepthFlag := flag.Int("qdepth", engine.DefaultQuiescenceDepth, "quiescence depth in capture turns")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = initial position)")
	seedFlag := flag.Int64("seed", 1, "tie-break seed")
	statsFlag := flag.Bool("stats", false, "dump cut statistics after every search")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}
	variant, err := cm.ParseVariant(*variantFlag)
	if err != nil {
		log.Fatalf("variant: %v", err)
	}
	rules := cm.MustRules(variant)

	board, toMove := rules.InitialSetup(), cm.Red
	if *fenFlag != "" {
		if board, toMove, err = cm.ParseFEN(*fenFlag); err != nil {
			log.Fatalf("fen: %v", err)
		}
	}

	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fmt.Printf("searchbench: variant=%s fen=%q depth=%d qdepth=%d repeat=%d\n",
		variant, cm.ToFEN(board, toMove), *depthFlag, *qdepthFlag, *repeatFlag)

	startAll := time.Now()
	var nodes uint64
	for i := 0; i < *repeatFlag; i++ {
		s := engine.NewSearcher(rules, engine.WithSeed(*seedFlag), engine.WithInfo(os.Stdout))
		res, ok := s.Search(board, toMove, *depthFlag, *qdepthFlag)
		if !ok {
			fmt.Printf("iteration %d: no legal move\n", i+1)
			continue
		}
		nodes += res.Stats.Total()
		fmt.Printf("iteration %d: bestmove %s  score=%.2f  time=%v\n",
			i+1, cm.PathString(res.Path), res.Score, res.Elapsed)
		if *statsFlag {
			res.Stats.Dump(os.Stdout)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nodes: %d  nps: %.0f\n", totalElapsed, nodes, float64(nodes)/totalElapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
