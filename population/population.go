// Package population implements the ordered chromosome sequence and the
// summary statistics the engine computes over it each generation.
package population

import (
	"math"

	"github.com/aram/evolve/chromosome"
)

// Ordering selects whether higher or lower fitness scores are considered
// better. It affects every comparison the engine makes: best-chromosome
// tracking, target-fitness checks, and selection.
type Ordering int

const (
	Maximize Ordering = iota
	Minimize
)

// Better reports whether a is strictly better than b under the ordering.
func (o Ordering) Better(a, b int64) bool {
	if o == Maximize {
		return a > b
	}
	return a < b
}

// BetterOrEqual reports whether a is at least as good as b under the ordering.
func (o Ordering) BetterOrEqual(a, b int64) bool {
	if o == Maximize {
		return a >= b
	}
	return a <= b
}

// Population is an ordered sequence of chromosomes. No duplicate chromosome
// identities are allowed, though genes may coincide between chromosomes.
type Population struct {
	Chromosomes []*chromosome.Chromosome
}

// New wraps an existing chromosome slice as a population.
func New(chromosomes []*chromosome.Chromosome) *Population {
	return &Population{Chromosomes: chromosomes}
}

// Size returns the number of chromosomes in the population.
func (p *Population) Size() int {
	return len(p.Chromosomes)
}

// Best returns the best-scoring chromosome under ordering. A chromosome
// with no fitness score never compares as best against one that has a
// score. When replaceOnEqual is false, ties keep the earlier (lower index)
// chromosome.
func (p *Population) Best(ordering Ordering, replaceOnEqual bool) *chromosome.Chromosome {
	var best *chromosome.Chromosome
	for _, c := range p.Chromosomes {
		if c.FitnessScore == nil {
			continue
		}
		if best == nil || best.FitnessScore == nil {
			best = c
			continue
		}
		if ordering.Better(*c.FitnessScore, *best.FitnessScore) {
			best = c
		} else if replaceOnEqual && *c.FitnessScore == *best.FitnessScore {
			best = c
		}
	}
	return best
}

// FitnessScoreCardinality returns the number of distinct fitness scores
// present in the population, excluding chromosomes with no score.
func (p *Population) FitnessScoreCardinality() int {
	seen := make(map[int64]struct{}, len(p.Chromosomes))
	for _, c := range p.Chromosomes {
		if c.FitnessScore != nil {
			seen[*c.FitnessScore] = struct{}{}
		}
	}
	return len(seen)
}

// StandardDeviation returns the standard deviation of fitness scores.
// Chromosomes with no fitness score are excluded from the computation but
// not from Size.
func (p *Population) StandardDeviation() float64 {
	var values []float64
	for _, c := range p.Chromosomes {
		if c.FitnessScore != nil {
			values = append(values, float64(*c.FitnessScore))
		}
	}
	if len(values) == 0 {
		return 0
	}
	var mean float64
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var sumSquares float64
	for _, v := range values {
		d := v - mean
		sumSquares += d * d
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}
