// Package mutates implements the Mutate operator family: each offspring
// (a chromosome with age == 0, fresh out of crossover) is independently
// subjected to its configured mutation chance.
package mutates

import (
	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/population"
	"golang.org/x/exp/rand"
)

// Mutate applies mutation in place across a population's offspring.
type Mutate interface {
	Call(g genotype.Genotype, pop *population.Population, scaleIndex *int, rng *rand.Rand)
}

func eachOffspring(pop *population.Population, fn func(c *chromosome.Chromosome)) {
	for _, c := range pop.Chromosomes {
		if c.Age != 0 {
			continue
		}
		fn(c)
	}
}

// SingleGene mutates exactly one gene with probability Probability.
type SingleGene struct {
	Probability float64
}

func (m SingleGene) Call(g genotype.Genotype, pop *population.Population, scaleIndex *int, rng *rand.Rand) {
	eachOffspring(pop, func(c *chromosome.Chromosome) {
		if rng.Float64() < m.Probability {
			g.MutateChromosomeGenes(1, true, c, scaleIndex, rng)
		}
	})
}

// MultiGene mutates N genes with probability Probability.
type MultiGene struct {
	N               int
	AllowDuplicates bool
	Probability     float64
}

func (m MultiGene) Call(g genotype.Genotype, pop *population.Population, scaleIndex *int, rng *rand.Rand) {
	eachOffspring(pop, func(c *chromosome.Chromosome) {
		if rng.Float64() < m.Probability {
			g.MutateChromosomeGenes(m.N, m.AllowDuplicates, c, scaleIndex, rng)
		}
	})
}

// Dynamic mutates one gene, but raises its effective probability above
// BaseProbability as the population's fitness score cardinality falls
// below TargetCardinality — cheap anti-stagnation pressure that kicks in
// only once diversity is already shrinking, rather than a fixed rate.
type Dynamic struct {
	BaseProbability   float64
	TargetCardinality int
}

func (m Dynamic) Call(g genotype.Genotype, pop *population.Population, scaleIndex *int, rng *rand.Rand) {
	probability := m.BaseProbability
	if m.TargetCardinality > 0 {
		cardinality := pop.FitnessScoreCardinality()
		if cardinality < m.TargetCardinality {
			deficit := float64(m.TargetCardinality-cardinality) / float64(m.TargetCardinality)
			probability = m.BaseProbability * (1 + deficit)
			if probability > 1 {
				probability = 1
			}
		}
	}
	eachOffspring(pop, func(c *chromosome.Chromosome) {
		if rng.Float64() < probability {
			g.MutateChromosomeGenes(1, true, c, scaleIndex, rng)
		}
	})
}
