// Package crossovers implements the Crossover operator family: pairing
// consecutive crossover-pool entries into children, then restoring the
// population up to target_population_size by cloning best pool entries.
package crossovers

import (
	"sort"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/population"
	"golang.org/x/exp/rand"
)

// Crossover pairs one father and one mother chromosome into zero or more
// offspring. Implementations that mutate father/mother in place (gene or
// point swaps) return the same two pointers; Clone returns fresh copies.
type Crossover interface {
	RequiresCrossoverIndexes() bool
	RequiresCrossoverPoints() bool
	Pair(g genotype.Genotype, father, mother *chromosome.Chromosome, rng *rand.Rand) []*chromosome.Chromosome
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

// Apply pairs consecutive pool entries through cx, then restores the
// resulting population up to targetPopulationSize by cloning the best
// pre-crossover pool entries with their bookkeeping preserved. Children
// produced by cx carry age = 0 (Pair taints them), except the untouched
// parent copies Uniform returns with KeepParent; restored clones keep
// their source's pre-crossover genes, fitness score and age.
func Apply(g genotype.Genotype, pool *population.Population, targetPopulationSize int, ordering population.Ordering, cx Crossover, rng *rand.Rand) *population.Population {
	if cx.RequiresCrossoverIndexes() && !g.HasCrossoverIndexes() {
		panic("crossovers: genotype does not support gene-index crossover")
	}
	if cx.RequiresCrossoverPoints() && !g.HasCrossoverPoints() {
		panic("crossovers: genotype does not support point crossover")
	}

	src := pool.Chromosomes
	best := make([]*chromosome.Chromosome, len(src))
	for i, c := range src {
		best[i] = g.ChromosomeCloner(c, true)
	}
	sort.SliceStable(best, func(i, j int) bool { return better(ordering, best[i], best[j]) })

	children := make([]*chromosome.Chromosome, 0, len(src))
	for i := 0; i+1 < len(src); i += 2 {
		children = append(children, cx.Pair(g, src[i], src[i+1], rng)...)
	}
	if len(src)%2 == 1 {
		children = append(children, src[len(src)-1])
	}

	if len(best) == 0 {
		return population.New(children)
	}
	for len(children) < targetPopulationSize {
		parent := best[len(children)%len(best)]
		children = append(children, g.ChromosomeCloner(parent, true))
	}
	for _, c := range best {
		g.ChromosomeDestructor(c)
	}
	return population.New(children)
}

// Clone produces children that are fresh clones of each parent: tainted,
// age 0, independent of the parent's fitness history.
type Clone struct{}

func (Clone) RequiresCrossoverIndexes() bool { return false }
func (Clone) RequiresCrossoverPoints() bool  { return false }

func (Clone) Pair(g genotype.Genotype, father, mother *chromosome.Chromosome, rng *rand.Rand) []*chromosome.Chromosome {
	return []*chromosome.Chromosome{g.ChromosomeCloner(father, false), g.ChromosomeCloner(mother, false)}
}

// SingleGene swaps exactly one gene position between father and mother.
type SingleGene struct {
	AllowDuplicates bool
}

func (SingleGene) RequiresCrossoverIndexes() bool { return true }
func (SingleGene) RequiresCrossoverPoints() bool  { return false }

func (c SingleGene) Pair(g genotype.Genotype, father, mother *chromosome.Chromosome, rng *rand.Rand) []*chromosome.Chromosome {
	g.CrossoverChromosomeGenes(1, c.AllowDuplicates, father, mother, rng)
	return []*chromosome.Chromosome{father, mother}
}

// MultiGene swaps N gene positions between father and mother.
type MultiGene struct {
	N               int
	AllowDuplicates bool
}

func (MultiGene) RequiresCrossoverIndexes() bool { return true }
func (MultiGene) RequiresCrossoverPoints() bool  { return false }

func (c MultiGene) Pair(g genotype.Genotype, father, mother *chromosome.Chromosome, rng *rand.Rand) []*chromosome.Chromosome {
	g.CrossoverChromosomeGenes(c.N, c.AllowDuplicates, father, mother, rng)
	return []*chromosome.Chromosome{father, mother}
}

// Uniform independently coin-flips every gene position and swaps it
// between father and mother with probability 0.5. When KeepParent is set
// the untouched originals are cloned first and returned alongside the
// swapped pair, so both the children and their parents survive into the
// next generation's crossover pool.
type Uniform struct {
	KeepParent bool
}

func (Uniform) RequiresCrossoverIndexes() bool { return true }
func (Uniform) RequiresCrossoverPoints() bool  { return false }

func (u Uniform) Pair(g genotype.Genotype, father, mother *chromosome.Chromosome, rng *rand.Rand) []*chromosome.Chromosome {
	var keptFather, keptMother *chromosome.Chromosome
	if u.KeepParent {
		keptFather = g.ChromosomeCloner(father, true)
		keptMother = g.ChromosomeCloner(mother, true)
	}
	for i := range father.Genes {
		if rng.Float64() < 0.5 {
			father.Genes[i], mother.Genes[i] = mother.Genes[i], father.Genes[i]
		}
	}
	father.Taint()
	mother.Taint()
	if u.KeepParent {
		return []*chromosome.Chromosome{father, mother, keptFather, keptMother}
	}
	return []*chromosome.Chromosome{father, mother}
}

// SinglePoint cuts genes at exactly one point and swaps the tail segment.
type SinglePoint struct {
	AllowDuplicates bool
}

func (SinglePoint) RequiresCrossoverIndexes() bool { return false }
func (SinglePoint) RequiresCrossoverPoints() bool  { return true }

func (c SinglePoint) Pair(g genotype.Genotype, father, mother *chromosome.Chromosome, rng *rand.Rand) []*chromosome.Chromosome {
	g.CrossoverChromosomePoints(1, c.AllowDuplicates, father, mother, rng)
	return []*chromosome.Chromosome{father, mother}
}

// MultiPoint cuts genes at N points, swapping alternating segments.
type MultiPoint struct {
	N               int
	AllowDuplicates bool
}

func (MultiPoint) RequiresCrossoverIndexes() bool { return false }
func (MultiPoint) RequiresCrossoverPoints() bool  { return true }

func (c MultiPoint) Pair(g genotype.Genotype, father, mother *chromosome.Chromosome, rng *rand.Rand) []*chromosome.Chromosome {
	g.CrossoverChromosomePoints(c.N, c.AllowDuplicates, father, mother, rng)
	return []*chromosome.Chromosome{father, mother}
}

// CrossoverRange is a deprecated alias retained for older configurations;
// it behaves exactly like MultiPoint with a single cut point.
func CrossoverRange() MultiPoint { return MultiPoint{N: 1, AllowDuplicates: false} }
