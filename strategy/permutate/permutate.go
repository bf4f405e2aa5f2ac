// Package permutate implements the Permutate strategy: lazy exhaustive
// enumeration of a genotype's full search space.
package permutate

import (
	"context"
	"time"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/fitness"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/population"
	"github.com/aram/evolve/reporter"
	"github.com/aram/evolve/strategy"
	"golang.org/x/exp/rand"
)

// DefaultMaxPermutationsSize bounds what New will accept without an explicit
// override, guarding against accidentally enumerating an astronomically
// large space.
const DefaultMaxPermutationsSize = 1_000_000

// Permutate evaluates every chromosome a PermutableGenotype can produce,
// keeping only the best seen so far.
type Permutate struct {
	genotype           genotype.PermutableGenotype
	fitnessFn          fitness.Fitness
	ordering           population.Ordering
	maxPermutationsize int64
	report             reporter.Reporter

	currentIteration int
	bestGeneration   int
	best             *chromosome.Chromosome
	durations        map[strategy.Action]time.Duration
}

// Option configures a Permutate builder.
type Option func(*Permutate)

func WithGenotype(g genotype.PermutableGenotype) Option {
	return func(p *Permutate) { p.genotype = g }
}

func WithFitness(f fitness.Fitness) Option {
	return func(p *Permutate) { p.fitnessFn = f }
}

func WithFitnessOrdering(ordering population.Ordering) Option {
	return func(p *Permutate) { p.ordering = ordering }
}

func WithMaxPermutationsSize(n int64) Option {
	return func(p *Permutate) { p.maxPermutationsize = n }
}

func WithReporter(r reporter.Reporter) Option {
	return func(p *Permutate) { p.report = r }
}

// New builds a Permutate strategy, rejecting genotypes whose permutation
// space exceeds the configured (or default) size guard.
func New(options ...Option) (*Permutate, error) {
	p := &Permutate{
		ordering:           population.Maximize,
		maxPermutationsize: DefaultMaxPermutationsSize,
		report:             reporter.NoopReporter{},
		durations:          make(map[strategy.Action]time.Duration),
	}
	for _, opt := range options {
		opt(p)
	}

	cfgErr := &strategy.ConfigError{}
	if p.genotype == nil {
		cfgErr.Add("genotype is required")
	}
	if p.fitnessFn == nil {
		cfgErr.Add("fitness is required")
	}
	if p.genotype != nil {
		size := p.genotype.ChromosomePermutationsSize()
		if size.IsInt64() && size.Int64() > p.maxPermutationsize {
			cfgErr.Add("genotype permutation space exceeds the configured maximum; use a smaller space or a different strategy")
		} else if !size.IsInt64() {
			cfgErr.Add("genotype permutation space exceeds the configured maximum; use a smaller space or a different strategy")
		}
	}
	if err := cfgErr.OrNil(); err != nil {
		return nil, err
	}
	return p, nil
}

// Call enumerates the full search space, evaluating and tracking the best
// chromosome seen.
func (p *Permutate) Call(ctx context.Context, _ *rand.Rand) (*Permutate, error) {
	p.report.OnStart("permutate")

	it := p.genotype.NewPermutationIterator()
	for {
		start := time.Now()
		c, ok := it.Next()
		p.durations[strategy.ActionOther] += time.Since(start)
		if !ok {
			break
		}
		p.currentIteration++

		start = time.Now()
		score, err := p.fitnessFn.CalculateForChromosome(ctx, c)
		p.durations[strategy.ActionFitness] += time.Since(start)
		if err != nil {
			return nil, err
		}
		c.FitnessScore = score

		start = time.Now()
		if p.best == nil || betterOrNil(p.ordering, c, p.best) {
			p.best = c
			p.genotype.SaveBestGenes(c)
			p.bestGeneration = p.currentIteration
			p.report.OnNewBestChromosome(p.currentIteration, c)
		}
		p.durations[strategy.ActionUpdateBestChromosome] += time.Since(start)

		p.report.OnNewGeneration(p.currentIteration, 1)
	}
	p.report.OnFinish(p.currentIteration, p.BestFitnessScore(), p.namedDurations())
	return p, nil
}

func betterOrNil(ordering population.Ordering, a, b *chromosome.Chromosome) bool {
	if a.FitnessScore == nil {
		return false
	}
	if b.FitnessScore == nil {
		return true
	}
	return ordering.Better(*a.FitnessScore, *b.FitnessScore)
}

func (p *Permutate) namedDurations() map[string]time.Duration {
	out := make(map[string]time.Duration, len(p.durations))
	for action, d := range p.durations {
		out[action.String()] = d
	}
	return out
}

// BestGenes implements strategy.Strategy.
func (p *Permutate) BestGenes() []any {
	if p.best == nil {
		return nil
	}
	return p.best.Genes
}

// BestFitnessScore implements strategy.Strategy.
func (p *Permutate) BestFitnessScore() *int64 {
	if p.best == nil {
		return nil
	}
	return p.best.FitnessScore
}

// BestGeneration implements strategy.Strategy.
func (p *Permutate) BestGeneration() int { return p.bestGeneration }

// CurrentIteration implements strategy.Strategy.
func (p *Permutate) CurrentIteration() int { return p.currentIteration }

// Durations implements strategy.Strategy.
func (p *Permutate) Durations() map[strategy.Action]time.Duration { return p.durations }
