package main

import (
	"flag"
	"log"
	"os"

	cm "checkers-engine/checkersmg"
	"checkers-engine/engine"
	"checkers-engine/tuner"
)

func main() {
	variantFlag := flag.String("variant", "standard", "rules variant: standard or turkish")
	in := flag.String("in", "", "start from weights in this JSON file (empty = defaults)")
	out := flag.String("out", "weights.json", "write tuned weights to this JSON file")
	depth := flag.Int("depth", 0, "search depth per move (0 = tuner default)")
	games := flag.Int("games", 0, "games per match, even (0 = tuner default)")
	rounds := flag.Int("rounds", 0, "coordinate search rounds (0 = tuner default)")
	seed := flag.Int64("seed", 1, "match seed")
	flag.Parse()

	variant, err := cm.ParseVariant(*variantFlag)
	if err != nil {
		log.Fatalf("variant: %v", err)
	}

	cfg := tuner.DefaultConfig(variant)
	cfg.Seed = *seed
	cfg.Log = os.Stdout
	if *depth > 0 {
		cfg.Depth = *depth
	}
	if *games > 0 {
		cfg.Games = *games
	}
	if *rounds > 0 {
		cfg.Rounds = *rounds
	}

	base := engine.DefaultWeights(variant)
	if *in != "" {
		if err := tuner.LoadWeights(*in, &base); err != nil {
			log.Fatalf("load %s: %v", *in, err)
		}
	}

	tuned, err := tuner.Tune(cfg, base)
	if err != nil {
		log.Fatalf("tune: %v", err)
	}
	if err := tuner.SaveWeights(*out, tuned); err != nil {
		log.Fatalf("save %s: %v", *out, err)
	}
	for _, p := range tuned.Params() {
		log.Printf("%-14s %.3f", p.Name, *p.Value)
	}
}
