// Package evolve implements the Evolve strategy: the population-based
// generation loop, built on a functional-options builder generalized from
// a single fixed Chromosome type to the full Genotype contract.
package evolve

import (
	"context"
	"time"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/fitness"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/operators/crossovers"
	"github.com/aram/evolve/operators/extensions"
	"github.com/aram/evolve/operators/mutates"
	"github.com/aram/evolve/operators/selects"
	"github.com/aram/evolve/population"
	"github.com/aram/evolve/reporter"
	"github.com/aram/evolve/strategy"
	"golang.org/x/exp/rand"
)

type state int

const (
	stateInit state = iota
	stateGenerating
	stateFinished
)

// Evolve runs the selection/crossover/mutation/extension/fitness pipeline
// over a population for as many generations as it takes to hit one of its
// termination predicates.
type Evolve struct {
	genotype              genotype.Genotype
	targetPopulationSize  int
	maxStaleGenerations   int
	maxChromosomeAge      int
	targetFitnessScore    *int64
	validFitnessScore     *int64
	ordering              population.Ordering
	parFitness            bool
	numWorkers            int
	replaceOnEqualFitness bool

	selectOp  selects.Select
	crossover crossovers.Crossover
	mutate    mutates.Mutate
	extension extensions.Extension
	fitnessFn fitness.Fitness
	report    reporter.Reporter

	pop               *population.Population
	state             state
	currentGeneration int
	bestGeneration    int
	bestFitnessScore  *int64
	durations         map[strategy.Action]time.Duration
}

// Option configures an Evolve builder.
type Option func(*Evolve)

func WithGenotype(g genotype.Genotype) Option {
	return func(e *Evolve) { e.genotype = g }
}

func WithTargetPopulationSize(n int) Option {
	return func(e *Evolve) { e.targetPopulationSize = n }
}

func WithMaxStaleGenerations(n int) Option {
	return func(e *Evolve) { e.maxStaleGenerations = n }
}

func WithMaxChromosomeAge(n int) Option {
	return func(e *Evolve) { e.maxChromosomeAge = n }
}

func WithTargetFitnessScore(score int64) Option {
	return func(e *Evolve) { e.targetFitnessScore = &score }
}

func WithValidFitnessScore(score int64) Option {
	return func(e *Evolve) { e.validFitnessScore = &score }
}

func WithFitnessOrdering(ordering population.Ordering) Option {
	return func(e *Evolve) { e.ordering = ordering }
}

// WithParFitness enables parallel fitness evaluation across numWorkers
// goroutines. numWorkers <= 0 means unbounded concurrency.
func WithParFitness(numWorkers int) Option {
	return func(e *Evolve) {
		e.parFitness = true
		e.numWorkers = numWorkers
	}
}

func WithReplaceOnEqualFitness(replace bool) Option {
	return func(e *Evolve) { e.replaceOnEqualFitness = replace }
}

func WithSelect(s selects.Select) Option {
	return func(e *Evolve) { e.selectOp = s }
}

func WithCrossover(c crossovers.Crossover) Option {
	return func(e *Evolve) { e.crossover = c }
}

func WithMutate(m mutates.Mutate) Option {
	return func(e *Evolve) { e.mutate = m }
}

func WithExtension(ext extensions.Extension) Option {
	return func(e *Evolve) { e.extension = ext }
}

func WithFitness(f fitness.Fitness) Option {
	return func(e *Evolve) { e.fitnessFn = f }
}

func WithReporter(r reporter.Reporter) Option {
	return func(e *Evolve) { e.report = r }
}

// New builds an Evolve strategy, validating all required options are
// present and that the configured operators are capability-compatible
// with the genotype.
func New(options ...Option) (*Evolve, error) {
	e := &Evolve{
		ordering:  population.Maximize,
		selectOp:  selects.Elite{Rate: 0.5},
		crossover: crossovers.Clone{},
		mutate:    mutates.SingleGene{Probability: 0.1},
		report:    reporter.NoopReporter{},
		durations: make(map[strategy.Action]time.Duration),
	}
	for _, opt := range options {
		opt(e)
	}

	cfgErr := &strategy.ConfigError{}
	if e.genotype == nil {
		cfgErr.Add("genotype is required")
	}
	if e.targetPopulationSize <= 0 {
		cfgErr.Add("target_population_size must be positive")
	}
	if e.fitnessFn == nil {
		cfgErr.Add("fitness is required")
	}
	if e.targetFitnessScore == nil && e.maxStaleGenerations <= 0 {
		cfgErr.Add("at least one ending condition (target_fitness_score or max_stale_generations) must be set")
	}
	if e.genotype != nil {
		if e.crossover.RequiresCrossoverIndexes() && !e.genotype.HasCrossoverIndexes() {
			cfgErr.Add("configured crossover requires gene-index crossover, which this genotype does not support")
		}
		if e.crossover.RequiresCrossoverPoints() && !e.genotype.HasCrossoverPoints() {
			cfgErr.Add("configured crossover requires point crossover, which this genotype does not support")
		}
	}
	if md, ok := e.extension.(extensions.MassDegeneration); ok && md.CardinalityThreshold < 0 {
		cfgErr.Add("mass degeneration cardinality threshold must not be negative")
	}
	if err := cfgErr.OrNil(); err != nil {
		return nil, err
	}
	return e, nil
}

// Call runs the strategy to completion: seeding the initial population,
// then repeating the generation pipeline until a termination predicate
// holds.
func (e *Evolve) Call(ctx context.Context, rng *rand.Rand) (*Evolve, error) {
	e.report.OnStart("evolve")
	if e.state == stateInit {
		if err := e.initPopulation(ctx, rng); err != nil {
			return nil, err
		}
		e.state = stateGenerating
	}
	for e.state == stateGenerating {
		if err := e.tick(ctx, rng); err != nil {
			return nil, err
		}
		e.currentGeneration++
		e.report.OnNewGeneration(e.currentGeneration, e.pop.Size())
		if e.terminated() {
			e.state = stateFinished
		}
	}
	e.report.OnFinish(e.currentGeneration, e.bestFitnessScore, e.namedDurations())
	return e, nil
}

func (e *Evolve) initPopulation(ctx context.Context, rng *rand.Rand) error {
	start := time.Now()
	chroms := make([]*chromosome.Chromosome, e.targetPopulationSize)
	for i := range chroms {
		chroms[i] = e.genotype.ChromosomeConstructor(rng)
	}
	e.pop = population.New(chroms)
	e.durations[strategy.ActionInit] += time.Since(start)

	if err := e.evaluateFitness(ctx); err != nil {
		return err
	}
	e.updateBest()
	return nil
}

func (e *Evolve) tick(ctx context.Context, rng *rand.Rand) error {
	poolSize := selects.PoolSize(e.pop.Size(), e.selectOp.SelectionRate())

	start := time.Now()
	pool := e.selectOp.Call(e.pop, poolSize, e.ordering, rng)
	e.durations[strategy.ActionSelect] += time.Since(start)

	start = time.Now()
	e.pop = crossovers.Apply(e.genotype, pool, e.targetPopulationSize, e.ordering, e.crossover, rng)
	e.durations[strategy.ActionCrossover] += time.Since(start)

	start = time.Now()
	e.mutate.Call(e.genotype, e.pop, nil, rng)
	e.durations[strategy.ActionMutate] += time.Since(start)

	if e.extension != nil {
		start = time.Now()
		triggered := e.extension.Call(e.genotype, e.pop, e.ordering, e.targetPopulationSize, rng)
		e.report.OnExtensionEvent(e.extension.Kind(), triggered, e.pop.Size())
		e.durations[strategy.ActionExtension] += time.Since(start)
	}

	if err := e.evaluateFitness(ctx); err != nil {
		return err
	}

	e.ageChromosomes()
	e.updateBest()
	return nil
}

func (e *Evolve) evaluateFitness(ctx context.Context) error {
	start := time.Now()
	var evaluator fitness.Evaluator = fitness.SequentialEvaluator{}
	if e.parFitness {
		evaluator = fitness.ParallelEvaluator{NumWorkers: e.numWorkers}
	}
	err := evaluator.CallForPopulation(ctx, e.fitnessFn, e.pop)
	e.durations[strategy.ActionFitness] += time.Since(start)
	return err
}

func (e *Evolve) ageChromosomes() {
	if e.maxChromosomeAge <= 0 {
		for _, c := range e.pop.Chromosomes {
			c.Age++
		}
		return
	}
	survivors := e.pop.Chromosomes[:0]
	for _, c := range e.pop.Chromosomes {
		c.Age++
		if c.Age <= e.maxChromosomeAge {
			survivors = append(survivors, c)
		} else {
			e.genotype.ChromosomeDestructor(c)
		}
	}
	e.pop.Chromosomes = survivors
}

func (e *Evolve) updateBest() {
	start := time.Now()
	defer func() { e.durations[strategy.ActionUpdateBestChromosome] += time.Since(start) }()

	best := e.pop.Best(e.ordering, e.replaceOnEqualFitness)
	if best == nil || best.FitnessScore == nil {
		return
	}
	improved := e.bestFitnessScore == nil || e.ordering.Better(*best.FitnessScore, *e.bestFitnessScore)
	equal := e.bestFitnessScore != nil && *best.FitnessScore == *e.bestFitnessScore
	if improved || (equal && e.replaceOnEqualFitness) {
		score := *best.FitnessScore
		e.bestFitnessScore = &score
		e.genotype.SaveBestGenes(best)
		e.report.OnNewBestChromosome(e.currentGeneration, best)
		if improved {
			e.bestGeneration = e.currentGeneration
		}
	}
}

func (e *Evolve) terminated() bool {
	if e.validFitnessScore != nil && e.bestFitnessScore != nil {
		if !e.ordering.BetterOrEqual(*e.bestFitnessScore, *e.validFitnessScore) {
			return false
		}
	}
	if e.targetFitnessScore != nil && e.bestFitnessScore != nil {
		if e.ordering.BetterOrEqual(*e.bestFitnessScore, *e.targetFitnessScore) {
			return true
		}
	}
	if e.maxStaleGenerations > 0 && e.currentGeneration-e.bestGeneration >= e.maxStaleGenerations {
		return true
	}
	return false
}

func (e *Evolve) namedDurations() map[string]time.Duration {
	out := make(map[string]time.Duration, len(e.durations))
	for action, d := range e.durations {
		out[action.String()] = d
	}
	return out
}

// BestGenes implements strategy.Strategy.
func (e *Evolve) BestGenes() []any { return e.genotype.BestGenes() }

// BestFitnessScore implements strategy.Strategy.
func (e *Evolve) BestFitnessScore() *int64 { return e.bestFitnessScore }

// BestGeneration implements strategy.Strategy.
func (e *Evolve) BestGeneration() int { return e.bestGeneration }

// CurrentIteration implements strategy.Strategy.
func (e *Evolve) CurrentIteration() int { return e.currentGeneration }

// Durations implements strategy.Strategy.
func (e *Evolve) Durations() map[strategy.Action]time.Duration { return e.durations }
