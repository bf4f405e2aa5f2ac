// Package extensions implements the Extension operator family: rescue
// actions applied to a converged population, gated on a shared trigger —
// population at target size with fitness score cardinality at or below a
// configured threshold.
package extensions

import (
	"sort"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/population"
	"golang.org/x/exp/rand"
)

// Kind identifies which extension fired, for reporter callbacks.
type Kind int

const (
	MassDegenerationKind Kind = iota
	MassExtinctionKind
	MassGenesisKind
	MassInvasionKind
)

func (k Kind) String() string {
	switch k {
	case MassDegenerationKind:
		return "mass_degeneration"
	case MassExtinctionKind:
		return "mass_extinction"
	case MassGenesisKind:
		return "mass_genesis"
	case MassInvasionKind:
		return "mass_invasion"
	default:
		return "unknown"
	}
}

// Extension inspects a converged population and, if its trigger condition
// holds, rescues it in place and reports true. A false return means the
// population was left untouched.
type Extension interface {
	Kind() Kind
	Call(g genotype.Genotype, pop *population.Population, ordering population.Ordering, targetPopulationSize int, rng *rand.Rand) bool
}

func triggered(pop *population.Population, targetPopulationSize, cardinalityThreshold int) bool {
	return pop.Size() >= targetPopulationSize && pop.FitnessScoreCardinality() <= cardinalityThreshold
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

// MassDegeneration, once the population's fitness cardinality collapses to
// CardinalityThreshold distinct scores, mutates every chromosome
// NumberOfMutations times to kick it back out of the local optimum.
type MassDegeneration struct {
	CardinalityThreshold int
	NumberOfMutations    int
}

func (MassDegeneration) Kind() Kind { return MassDegenerationKind }

func (e MassDegeneration) Call(g genotype.Genotype, pop *population.Population, _ population.Ordering, targetPopulationSize int, rng *rand.Rand) bool {
	if !triggered(pop, targetPopulationSize, e.CardinalityThreshold) {
		return false
	}
	for _, c := range pop.Chromosomes {
		g.MutateChromosomeGenes(e.NumberOfMutations, true, c, nil, rng)
	}
	return true
}

// MassExtinction, on the same cardinality trigger, keeps only a random
// SurvivalRate fraction of the population; the next generation's crossover
// restores it to target size from the survivors.
type MassExtinction struct {
	CardinalityThreshold int
	SurvivalRate         float64
}

func (MassExtinction) Kind() Kind { return MassExtinctionKind }

func (e MassExtinction) Call(g genotype.Genotype, pop *population.Population, _ population.Ordering, targetPopulationSize int, rng *rand.Rand) bool {
	if !triggered(pop, targetPopulationSize, e.CardinalityThreshold) {
		return false
	}
	survivors := int(float64(pop.Size()) * e.SurvivalRate)
	if survivors < 1 {
		survivors = 1
	}
	shuffled := append([]*chromosome.Chromosome(nil), pop.Chromosomes...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	pop.Chromosomes = shuffled[:survivors]
	return true
}

// MassGenesis, on the same cardinality trigger, collapses the population
// down to its two best chromosomes; the next generation's crossover
// repopulates from that narrow founder stock.
type MassGenesis struct {
	CardinalityThreshold int
}

func (MassGenesis) Kind() Kind { return MassGenesisKind }

func (e MassGenesis) Call(g genotype.Genotype, pop *population.Population, ordering population.Ordering, targetPopulationSize int, rng *rand.Rand) bool {
	if !triggered(pop, targetPopulationSize, e.CardinalityThreshold) {
		return false
	}
	sorted := append([]*chromosome.Chromosome(nil), pop.Chromosomes...)
	sort.SliceStable(sorted, func(i, j int) bool { return better(ordering, sorted[i], sorted[j]) })
	n := 2
	if n > len(sorted) {
		n = len(sorted)
	}
	pop.Chromosomes = sorted[:n]
	return true
}

// MassInvasion, on the same cardinality trigger, replaces an InvasionRate
// fraction of the population with brand-new random chromosomes.
type MassInvasion struct {
	CardinalityThreshold int
	InvasionRate         float64
}

func (MassInvasion) Kind() Kind { return MassInvasionKind }

func (e MassInvasion) Call(g genotype.Genotype, pop *population.Population, _ population.Ordering, targetPopulationSize int, rng *rand.Rand) bool {
	if !triggered(pop, targetPopulationSize, e.CardinalityThreshold) {
		return false
	}
	invaders := int(float64(pop.Size()) * e.InvasionRate)
	indexes := rng.Perm(pop.Size())[:invaders]
	for _, idx := range indexes {
		pop.Chromosomes[idx] = g.ChromosomeConstructor(rng)
	}
	return true
}
