// Package fitness implements the Fitness evaluation stage: scoring a
// single chromosome, and driving that evaluation across a population,
// optionally in parallel across a bounded worker pool.
package fitness

import (
	"context"
	"fmt"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/population"
	"golang.org/x/sync/errgroup"
)

// Fitness scores a single chromosome's genes. A nil score with a nil error
// means the chromosome has no defined score (never wins a best comparison,
// never treated as a failure). A non-nil error is a genuine evaluation
// failure and aborts the run. CalculateForChromosome must be safe to call
// concurrently from multiple goroutines when used with a
// ParallelEvaluator — it must not mutate shared state outside the
// chromosome it was given.
type Fitness interface {
	CalculateForChromosome(ctx context.Context, c *chromosome.Chromosome) (*int64, error)
}

// FitnessFunc adapts a plain function to the Fitness interface.
type FitnessFunc func(ctx context.Context, c *chromosome.Chromosome) (*int64, error)

func (f FitnessFunc) CalculateForChromosome(ctx context.Context, c *chromosome.Chromosome) (*int64, error) {
	return f(ctx, c)
}

// Evaluator scores every chromosome in a population, skipping chromosomes
// that already carry a fitness score — only tainted chromosomes need
// re-evaluation.
type Evaluator interface {
	CallForPopulation(ctx context.Context, fn Fitness, pop *population.Population) error
}

// SequentialEvaluator scores chromosomes one at a time, in population
// order. It is the default and requires no concurrency safety from fn.
type SequentialEvaluator struct{}

func (SequentialEvaluator) CallForPopulation(ctx context.Context, fn Fitness, pop *population.Population) error {
	for _, c := range pop.Chromosomes {
		if c.FitnessScore != nil {
			continue
		}
		score, err := fn.CalculateForChromosome(ctx, c)
		if err != nil {
			return fmt.Errorf("fitness: evaluate chromosome %s: %w", c.ReferenceID, err)
		}
		c.FitnessScore = score
	}
	return nil
}

// ParallelEvaluator scores chromosomes across a bounded pool of goroutines
// using errgroup.SetLimit. As soon as one evaluation fails, the context
// passed to the other evaluations is cancelled; evaluations not yet
// started still run with that cancelled context, and the first error is
// returned. NumWorkers <= 0 means unbounded concurrency.
type ParallelEvaluator struct {
	NumWorkers int
}

func (e ParallelEvaluator) CallForPopulation(ctx context.Context, fn Fitness, pop *population.Population) error {
	g, gCtx := errgroup.WithContext(ctx)
	if e.NumWorkers > 0 {
		g.SetLimit(e.NumWorkers)
	}

	for _, c := range pop.Chromosomes {
		c := c
		if c.FitnessScore != nil {
			continue
		}
		g.Go(func() error {
			score, err := fn.CalculateForChromosome(gCtx, c)
			if err != nil {
				return fmt.Errorf("fitness: evaluate chromosome %s: %w", c.ReferenceID, err)
			}
			c.FitnessScore = score
			return nil
		})
	}
	return g.Wait()
}
