// Package meta implements MetaPermutate: a grid tuner that runs Evolve
// repeatedly across every combination of a configured option grid and
// reports the combination with the best composite score. The grid itself
// is represented the way the Evolve generation
// pipeline represents any discrete choice — as indexes into per-dimension
// option lists — but MetaPermutate walks the grid directly rather than
// through a genotype, since the tuner is driving Evolve, not being driven
// by it.
package meta

import (
	"context"
	"time"

	"github.com/aram/evolve/fitness"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/operators/crossovers"
	"github.com/aram/evolve/operators/extensions"
	"github.com/aram/evolve/operators/mutates"
	"github.com/aram/evolve/operators/selects"
	"github.com/aram/evolve/population"
	"github.com/aram/evolve/reporter"
	"github.com/aram/evolve/strategy"
	"github.com/aram/evolve/strategy/evolve"
	"golang.org/x/exp/rand"
)

// Config describes the option grid MetaPermutate searches over, plus the
// fixed Evolve configuration (genotype, fitness, ordering) shared by every
// trial in the grid.
type Config struct {
	Genotype genotype.Genotype
	Fitness  fitness.Fitness
	Ordering population.Ordering
	Reporter reporter.Reporter

	PopulationSizes            []int
	Mutates                    []mutates.Mutate
	Crossovers                 []crossovers.Crossover
	Selects                    []selects.Select
	Extensions                 []extensions.Extension // nil at an index means "no extension" for that option
	MaxStaleGenerationsOptions []int                  // 0 at an index means "unset" for that option
	TargetFitnessScoreOptions  []*int64               // nil at an index means "unset" for that option

	Rounds                          int
	EvolveFitnessToMicroSecondFactor float64
}

// Result is the outcome of running one grid cell's Evolve configuration
// Rounds times.
type Result struct {
	Indexes            [6]int
	MeanFitnessScore   float64
	MeanDurationMicros float64
	CompositeScore     float64
}

// MetaPermutate runs Evolve once per grid cell, Rounds times each, and
// keeps the cell with the highest composite score.
type MetaPermutate struct {
	config *Config
	best   *Result
	tried  []Result
}

// New validates and builds a MetaPermutate tuner.
func New(cfg *Config) (*MetaPermutate, error) {
	cfgErr := &strategy.ConfigError{}
	if cfg.Genotype == nil {
		cfgErr.Add("genotype is required")
	}
	if cfg.Fitness == nil {
		cfgErr.Add("fitness is required")
	}
	if len(cfg.PopulationSizes) == 0 {
		cfgErr.Add("at least one population_size option is required")
	}
	if len(cfg.Mutates) == 0 {
		cfgErr.Add("at least one mutate option is required")
	}
	if len(cfg.Crossovers) == 0 {
		cfgErr.Add("at least one crossover option is required")
	}
	if len(cfg.Selects) == 0 {
		cfgErr.Add("at least one select option is required")
	}
	hasStale, hasTarget := false, false
	for _, n := range cfg.MaxStaleGenerationsOptions {
		if n > 0 {
			hasStale = true
		}
	}
	for _, s := range cfg.TargetFitnessScoreOptions {
		if s != nil {
			hasTarget = true
		}
	}
	if !hasStale && !hasTarget {
		cfgErr.Add("MetaPermutate requires at least one ending condition across max_stale_generations_options or target_fitness_score_options")
	}
	if err := cfgErr.OrNil(); err != nil {
		return nil, err
	}
	if cfg.Rounds <= 0 {
		cfg.Rounds = 1
	}
	if len(cfg.MaxStaleGenerationsOptions) == 0 {
		cfg.MaxStaleGenerationsOptions = []int{0}
	}
	if len(cfg.TargetFitnessScoreOptions) == 0 {
		cfg.TargetFitnessScoreOptions = []*int64{nil}
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = []extensions.Extension{nil}
	}
	if cfg.Reporter == nil {
		cfg.Reporter = reporter.NoopReporter{}
	}
	return &MetaPermutate{config: cfg}, nil
}

// Call evaluates every grid cell and returns the tuner holding the best
// result found.
func (m *MetaPermutate) Call(ctx context.Context, rng *rand.Rand) (*MetaPermutate, error) {
	m.config.Reporter.OnStart("meta_permutate")

	dims := [6]int{
		len(m.config.PopulationSizes),
		len(m.config.Mutates),
		len(m.config.Crossovers),
		len(m.config.Selects),
		len(m.config.Extensions),
		len(m.config.MaxStaleGenerationsOptions) * len(m.config.TargetFitnessScoreOptions),
	}

	indexes := [6]int{}
	for {
		result, err := m.evaluateCell(ctx, rng, indexes)
		if err != nil {
			return nil, err
		}
		m.tried = append(m.tried, result)
		if m.best == nil || result.CompositeScore > m.best.CompositeScore {
			r := result
			m.best = &r
		}

		if !advance(&indexes, dims) {
			break
		}
	}

	m.config.Reporter.OnFinish(len(m.tried), nil, nil)
	return m, nil
}

func advance(indexes *[6]int, dims [6]int) bool {
	for i := len(indexes) - 1; i >= 0; i-- {
		indexes[i]++
		if indexes[i] < dims[i] {
			return true
		}
		indexes[i] = 0
	}
	return false
}

func (m *MetaPermutate) evaluateCell(ctx context.Context, rng *rand.Rand, indexes [6]int) (Result, error) {
	staleIdx := indexes[5] % len(m.config.MaxStaleGenerationsOptions)
	targetIdx := indexes[5] / len(m.config.MaxStaleGenerationsOptions)
	if targetIdx >= len(m.config.TargetFitnessScoreOptions) {
		targetIdx = len(m.config.TargetFitnessScoreOptions) - 1
	}

	var totalFitness float64
	var totalMicros float64
	var sampled int

	for round := 0; round < m.config.Rounds; round++ {
		opts := []evolve.Option{
			evolve.WithGenotype(m.config.Genotype),
			evolve.WithFitness(m.config.Fitness),
			evolve.WithFitnessOrdering(m.config.Ordering),
			evolve.WithTargetPopulationSize(m.config.PopulationSizes[indexes[0]]),
			evolve.WithMutate(m.config.Mutates[indexes[1]]),
			evolve.WithCrossover(m.config.Crossovers[indexes[2]]),
			evolve.WithSelect(m.config.Selects[indexes[3]]),
		}
		if ext := m.config.Extensions[indexes[4]]; ext != nil {
			opts = append(opts, evolve.WithExtension(ext))
		}
		if n := m.config.MaxStaleGenerationsOptions[staleIdx]; n > 0 {
			opts = append(opts, evolve.WithMaxStaleGenerations(n))
		}
		if score := m.config.TargetFitnessScoreOptions[targetIdx]; score != nil {
			opts = append(opts, evolve.WithTargetFitnessScore(*score))
		}

		e, err := evolve.New(opts...)
		if err != nil {
			return Result{}, err
		}
		start := time.Now()
		run, err := e.Call(ctx, rng)
		if err != nil {
			return Result{}, err
		}
		elapsed := time.Since(start)

		if score := run.BestFitnessScore(); score != nil {
			totalFitness += float64(*score)
			totalMicros += float64(elapsed.Microseconds())
			sampled++
		}
	}

	result := Result{Indexes: indexes}
	if sampled > 0 {
		result.MeanFitnessScore = totalFitness / float64(sampled)
		result.MeanDurationMicros = totalMicros / float64(sampled)
		result.CompositeScore = result.MeanFitnessScore*m.config.EvolveFitnessToMicroSecondFactor - result.MeanDurationMicros
	}
	return result, nil
}

// Best returns the grid cell with the highest composite score, or nil if
// Call has not run.
func (m *MetaPermutate) Best() *Result { return m.best }

// Tried returns every grid cell's result, in enumeration order.
func (m *MetaPermutate) Tried() []Result { return m.tried }
