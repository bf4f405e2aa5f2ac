// Package hillclimb implements the HillClimb strategy: single-chromosome
// local search over a genotype's neighbourhood moves.
package hillclimb

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

// Variant selects which neighbour-move rule HillClimb applies each step.
type Variant int

const (
	Stochastic Variant = iota
	StochasticSecondary
	SteepestAscent
	SteepestAscentSecondary
)

// Scaling controls how the neighbourhood step size shrinks as the search
// converges: reset to BaseScale on a strictly improving move, multiplied
// by ScaleFactor otherwise, with MinScale as the stopping threshold.
type Scaling struct {
	BaseScale   float64
	ScaleFactor float64
	MinScale    float64
}

// HillClimb walks a genotype's neighbourhood graph from a seed chromosome,
// always keeping exactly one current-best chromosome.
type HillClimb struct {
	genotype            genotype.IncrementalGenotype
	fitnessFn           fitness.Fitness
	variant             Variant
	ordering            population.Ordering
	maxStaleGenerations int
	targetFitnessScore  *int64
	validFitnessScore   *int64
	scaling             *Scaling
	report              reporter.Reporter

	currentScale      float64
	currentScaleIndex int
	currentGeneration int
	bestGeneration    int
	best              *chromosome.Chromosome
	durations         map[strategy.Action]time.Duration
}

// Option configures a HillClimb builder.
type Option func(*HillClimb)

func WithGenotype(g genotype.IncrementalGenotype) Option {
	return func(h *HillClimb) { h.genotype = g }
}

func WithFitness(f fitness.Fitness) Option {
	return func(h *HillClimb) { h.fitnessFn = f }
}

func WithVariant(v Variant) Option {
	return func(h *HillClimb) { h.variant = v }
}

func WithFitnessOrdering(ordering population.Ordering) Option {
	return func(h *HillClimb) { h.ordering = ordering }
}

func WithMaxStaleGenerations(n int) Option {
	return func(h *HillClimb) { h.maxStaleGenerations = n }
}

func WithTargetFitnessScore(score int64) Option {
	return func(h *HillClimb) { h.targetFitnessScore = &score }
}

func WithValidFitnessScore(score int64) Option {
	return func(h *HillClimb) { h.validFitnessScore = &score }
}

func WithScaling(s Scaling) Option {
	return func(h *HillClimb) { h.scaling = &s }
}

func WithReporter(r reporter.Reporter) Option {
	return func(h *HillClimb) { h.report = r }
}

// New builds a HillClimb strategy.
func New(options ...Option) (*HillClimb, error) {
	h := &HillClimb{
		ordering:  population.Maximize,
		report:    reporter.NoopReporter{},
		durations: make(map[strategy.Action]time.Duration),
	}
	for _, opt := range options {
		opt(h)
	}

	cfgErr := &strategy.ConfigError{}
	if h.genotype == nil {
		cfgErr.Add("genotype is required")
	}
	if h.fitnessFn == nil {
		cfgErr.Add("fitness is required")
	}
	if h.targetFitnessScore == nil && h.maxStaleGenerations <= 0 && h.scaling == nil {
		cfgErr.Add("at least one ending condition (target_fitness_score, max_stale_generations, or scaling) must be set")
	}
	if err := cfgErr.OrNil(); err != nil {
		return nil, err
	}
	if h.scaling != nil {
		h.currentScale = h.scaling.BaseScale
	}
	return h, nil
}

// Call runs the strategy to completion.
func (h *HillClimb) Call(ctx context.Context, rng *rand.Rand) (*HillClimb, error) {
	h.report.OnStart("hill_climb")

	start := time.Now()
	seed := h.genotype.ChromosomeConstructor(rng)
	h.durations[strategy.ActionInit] += time.Since(start)
	if err := h.evaluate(ctx, seed); err != nil {
		return nil, err
	}
	h.best = seed
	h.genotype.SaveBestGenes(seed)

	for !h.terminated() {
		h.currentGeneration++
		if err := h.step(ctx, rng); err != nil {
			return nil, err
		}
		h.report.OnNewGeneration(h.currentGeneration, 1)
	}
	h.report.OnFinish(h.currentGeneration, h.best.FitnessScore, h.namedDurations())
	return h, nil
}

func (h *HillClimb) evaluate(ctx context.Context, c *chromosome.Chromosome) error {
	start := time.Now()
	score, err := h.fitnessFn.CalculateForChromosome(ctx, c)
	h.durations[strategy.ActionFitness] += time.Since(start)
	if err != nil {
		return err
	}
	c.FitnessScore = score
	return nil
}

func (h *HillClimb) scaleIndex() *int {
	if h.scaling == nil {
		return nil
	}
	idx := h.currentScaleIndex
	return &idx
}

func (h *HillClimb) step(ctx context.Context, rng *rand.Rand) error {
	switch h.variant {
	case Stochastic:
		return h.stepStochastic(ctx, rng, false)
	case StochasticSecondary:
		return h.stepStochastic(ctx, rng, true)
	case SteepestAscent:
		return h.stepSteepestAscent(ctx, rng, false)
	default:
		return h.stepSteepestAscent(ctx, rng, true)
	}
}

func (h *HillClimb) stepStochastic(ctx context.Context, rng *rand.Rand, secondary bool) error {
	start := time.Now()
	neighbours := h.genotype.NeighbouringChromosomes(h.best, h.scaleIndex(), rng)
	h.durations[strategy.ActionOther] += time.Since(start)
	if len(neighbours) == 0 {
		h.applyScaleDecay(false)
		return nil
	}
	candidate := neighbours[rng.Intn(len(neighbours))]
	if secondary {
		secondNeighbours := h.genotype.NeighbouringChromosomes(candidate, h.scaleIndex(), rng)
		if len(secondNeighbours) > 0 {
			candidate = secondNeighbours[rng.Intn(len(secondNeighbours))]
		}
	}
	if err := h.evaluate(ctx, candidate); err != nil {
		return err
	}
	return h.acceptIfBetter(candidate)
}

func (h *HillClimb) stepSteepestAscent(ctx context.Context, rng *rand.Rand, secondary bool) error {
	start := time.Now()
	neighbours := h.genotype.NeighbouringChromosomes(h.best, h.scaleIndex(), rng)
	if secondary {
		expanded := make([]*chromosome.Chromosome, 0, len(neighbours))
		for _, n := range neighbours {
			expanded = append(expanded, h.genotype.NeighbouringChromosomes(n, h.scaleIndex(), rng)...)
		}
		neighbours = expanded
	}
	h.durations[strategy.ActionOther] += time.Since(start)
	if len(neighbours) == 0 {
		h.applyScaleDecay(false)
		return nil
	}
	for _, n := range neighbours {
		if err := h.evaluate(ctx, n); err != nil {
			return err
		}
	}
	best := neighbours[0]
	for _, n := range neighbours[1:] {
		if better(h.ordering, n, best) {
			best = n
		}
	}
	return h.acceptIfBetter(best)
}

func (h *HillClimb) acceptIfBetter(candidate *chromosome.Chromosome) error {
	start := time.Now()
	defer func() { h.durations[strategy.ActionUpdateBestChromosome] += time.Since(start) }()

	improving := better(h.ordering, candidate, h.best)
	if improving || equalScore(candidate, h.best) {
		h.best = candidate
		h.genotype.SaveBestGenes(candidate)
		h.report.OnNewBestChromosome(h.currentGeneration, candidate)
	}
	h.applyScaleDecay(improving)
	if improving {
		h.bestGeneration = h.currentGeneration
	}
	return nil
}

func (h *HillClimb) applyScaleDecay(improving bool) {
	if h.scaling == nil {
		return
	}
	if improving {
		h.currentScale = h.scaling.BaseScale
		h.currentScaleIndex = 0
	} else {
		h.currentScale *= h.scaling.ScaleFactor
		h.currentScaleIndex++
		if max := h.genotype.MaxScaleIndex(); max != nil && h.currentScaleIndex > *max {
			h.currentScaleIndex = *max
		}
	}
}

func better(ordering population.Ordering, a, b *chromosome.Chromosome) bool {
	if a.FitnessScore == nil {
		return false
	}
	if b.FitnessScore == nil {
		return true
	}
	return ordering.Better(*a.FitnessScore, *b.FitnessScore)
}

func equalScore(a, b *chromosome.Chromosome) bool {
	return a.FitnessScore != nil && b.FitnessScore != nil && *a.FitnessScore == *b.FitnessScore
}

func (h *HillClimb) terminated() bool {
	if h.validFitnessScore != nil && h.best.FitnessScore != nil {
		if !h.ordering.BetterOrEqual(*h.best.FitnessScore, *h.validFitnessScore) {
			return false
		}
	}
	if h.targetFitnessScore != nil && h.best.FitnessScore != nil {
		if h.ordering.BetterOrEqual(*h.best.FitnessScore, *h.targetFitnessScore) {
			return true
		}
	}
	if h.scaling != nil && h.currentScale < h.scaling.MinScale {
		return true
	}
	if h.maxStaleGenerations > 0 && h.currentGeneration-h.bestGeneration >= h.maxStaleGenerations {
		return true
	}
	return false
}

func (h *HillClimb) namedDurations() map[string]time.Duration {
	out := make(map[string]time.Duration, len(h.durations))
	for action, d := range h.durations {
		out[action.String()] = d
	}
	return out
}

// BestGenes implements strategy.Strategy.
func (h *HillClimb) BestGenes() []any {
	if h.best == nil {
		return nil
	}
	return h.best.Genes
}

// BestFitnessScore implements strategy.Strategy.
func (h *HillClimb) BestFitnessScore() *int64 {
	if h.best == nil {
		return nil
	}
	return h.best.FitnessScore
}

// BestGeneration implements strategy.Strategy.
func (h *HillClimb) BestGeneration() int { return h.bestGeneration }

// CurrentIteration implements strategy.Strategy.
func (h *HillClimb) CurrentIteration() int { return h.currentGeneration }

// Durations implements strategy.Strategy.
func (h *HillClimb) Durations() map[strategy.Action]time.Duration { return h.durations }
