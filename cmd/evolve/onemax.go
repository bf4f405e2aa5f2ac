package main

import (
	"context"
	"fmt"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/fitness"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/operators/crossovers"
	"github.com/aram/evolve/operators/mutates"
	"github.com/aram/evolve/operators/selects"
	"github.com/aram/evolve/population"
	"github.com/aram/evolve/reporter"
	"github.com/aram/evolve/strategy/evolve"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

// countTrue scores a Binary chromosome by how many of its genes are true,
// the classic OneMax benchmark for a binary-genotype Evolve run.
type countTrue struct{}

func (countTrue) CalculateForChromosome(_ context.Context, c *chromosome.Chromosome) (*int64, error) {
	var score int64
	for _, g := range c.Genes {
		if g.(bool) {
			score++
		}
	}
	return &score, nil
}

func runOneMax(ctx context.Context, rng *rand.Rand, verbose bool) error {
	g := genotype.NewBinary(100, true)

	var rep reporter.Reporter = reporter.NoopReporter{}
	if verbose {
		logger := logrus.New()
		logger.SetLevel(logrus.DebugLevel)
		rep = reporter.NewLogReporter(logger)
	}

	strat, err := evolve.New(
		evolve.WithGenotype(g),
		evolve.WithTargetPopulationSize(100),
		evolve.WithFitness(countTrue{}),
		evolve.WithFitnessOrdering(population.Maximize),
		evolve.WithTargetFitnessScore(100),
		evolve.WithMaxStaleGenerations(200),
		evolve.WithSelect(selects.Tournament{Size: 4, Rate: 0.9}),
		evolve.WithCrossover(crossovers.Uniform{}),
		evolve.WithMutate(mutates.SingleGene{Probability: 0.2}),
		evolve.WithReporter(rep),
	)
	if err != nil {
		return err
	}

	result, err := strat.Call(ctx, rng)
	if err != nil {
		return err
	}

	score := "none"
	if s := result.BestFitnessScore(); s != nil {
		score = fmt.Sprint(*s)
	}
	fmt.Printf("onemax: best fitness score = %s after %d generations\n", score, result.CurrentIteration())
	return nil
}
