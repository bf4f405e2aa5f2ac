// Command evolve runs small demonstration searches against the engine: a
// Binary one-max problem and a Unique-genotype travelling salesman
// problem, selectable with -example.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/aram/evolve/chromosome"
)

func main() {
	example := flag.String("example", "onemax", "the example to run (onemax or tsp)")
	seed := flag.Uint64("seed", 0, "rng seed")
	verbose := flag.Bool("verbose", false, "log every generation via logrus")
	flag.Parse()

	ctx := context.Background()
	rng := chromosome.SeedRNG(*seed)

	switch *example {
	case "onemax":
		if err := runOneMax(ctx, rng, *verbose); err != nil {
			log.Fatalf("onemax: %v", err)
		}
	case "tsp":
		if err := runTSP(ctx, rng, *verbose); err != nil {
			log.Fatalf("tsp: %v", err)
		}
	default:
		log.Fatalf("unknown example: %s", *example)
	}
	fmt.Println("done")
}
