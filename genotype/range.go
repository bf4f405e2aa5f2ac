package genotype

import (
	"math/big"

	"github.com/aram/evolve/allele"
	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

// Range is a dense sequence of bounded numeric alleles (integer or real,
// unified by the allele.Number constraint across both gene-based and
// range-based continuous variants). On random initialization every gene
// is sampled uniformly within [Min, Max].
// Mutation either resamples the full range, perturbs within a single
// MutationRange, or — when ScaledMutationRanges is set — perturbs within
// the range selected by the current scale index (coarse to fine).
// Supports point/index crossover and scaled neighbourhoods.
type Range[T allele.Number] struct {
	genesSize            int
	min, max             T
	mutationRange        *[2]T
	scaledMutationRanges []([2]T)
	seedGenesList        []Genes
	pool                 *chromosome.Pool
	bestGenes            Genes
}

// NewRange builds a Range genotype. mutationRange, when non-nil, bounds
// single-gene perturbation to [−delta, +delta] around the current value
// instead of a full resample. scaledMutationRanges, when non-empty,
// overrides mutationRange with a per-scale-index neighbour range (index 0
// coarsest).
func NewRange[T allele.Number](genesSize int, min, max T, mutationRange *[2]T, scaledMutationRanges []([2]T), recycling bool) *Range[T] {
	if genesSize <= 0 {
		panic("genotype: Range requires genes_size > 0")
	}
	if max < min {
		panic("genotype: Range requires max >= min")
	}
	best := make(Genes, genesSize)
	for i := range best {
		best[i] = min
	}
	return &Range[T]{
		genesSize:            genesSize,
		min:                  min,
		max:                  max,
		mutationRange:        mutationRange,
		scaledMutationRanges: scaledMutationRanges,
		pool:                 chromosome.NewPool(recycling),
		bestGenes:            best,
	}
}

func (g *Range[T]) GenesSize() int { return g.genesSize }

func (g *Range[T]) sample(rng *rand.Rand) T {
	span := float64(g.max - g.min)
	return g.min + T(rng.Float64()*span)
}

func (g *Range[T]) randomGenes(rng *rand.Rand) Genes {
	if len(g.seedGenesList) > 0 {
		return g.seedGenesList[rng.Intn(len(g.seedGenesList))].Clone()
	}
	genes := make(Genes, g.genesSize)
	for i := range genes {
		genes[i] = g.sample(rng)
	}
	return genes
}

func (g *Range[T]) ChromosomeConstructor(rng *rand.Rand) *chromosome.Chromosome {
	c := g.pool.Get(g.genesSize)
	copy(c.Genes, g.randomGenes(rng))
	c.Taint()
	return c
}

func (g *Range[T]) ChromosomeCloner(src *chromosome.Chromosome, preserveBookkeeping bool) *chromosome.Chromosome {
	c := g.pool.Get(len(src.Genes))
	c.CopyFrom(src, preserveBookkeeping)
	return c
}

func (g *Range[T]) ChromosomeDestructor(c *chromosome.Chromosome) { g.pool.Put(c) }

// neighbourRange returns the active [−delta, +delta] window for the given
// scale index, or nil when mutation should fully resample.
func (g *Range[T]) neighbourRange(scaleIndex *int) *[2]T {
	if scaleIndex != nil && len(g.scaledMutationRanges) > 0 {
		idx := *scaleIndex
		if idx < 0 {
			idx = 0
		}
		if idx >= len(g.scaledMutationRanges) {
			idx = len(g.scaledMutationRanges) - 1
		}
		r := g.scaledMutationRanges[idx]
		return &r
	}
	return g.mutationRange
}

func (g *Range[T]) mutateOne(current T, scaleIndex *int, rng *rand.Rand) T {
	if r := g.neighbourRange(scaleIndex); r != nil {
		span := float64(r[1] - r[0])
		delta := r[0] + T(rng.Float64()*span)
		return allele.Clamp(current+delta, g.min, g.max)
	}
	return g.sample(rng)
}

func (g *Range[T]) MutateChromosomeGenes(n int, allowDuplicates bool, c *chromosome.Chromosome, scaleIndex *int, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, g.genesSize, n, allowDuplicates) {
		c.Genes[idx] = g.mutateOne(c.Genes[idx].(T), scaleIndex, rng)
	}
	c.Taint()
}

func (g *Range[T]) HasCrossoverIndexes() bool { return true }
func (g *Range[T]) HasCrossoverPoints() bool  { return true }

func (g *Range[T]) CrossoverChromosomeGenes(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, g.genesSize, n, allowDuplicates) {
		father.Genes[idx], mother.Genes[idx] = mother.Genes[idx], father.Genes[idx]
	}
	father.Taint()
	mother.Taint()
}

func (g *Range[T]) CrossoverChromosomePoints(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	swapSlicesAtPoints(allInteriorPoints(g.genesSize), g.genesSize, n, allowDuplicates, father, mother, rng)
}

func (g *Range[T]) SaveBestGenes(c *chromosome.Chromosome) { copy(g.bestGenes, c.Genes) }
func (g *Range[T]) LoadBestGenes(c *chromosome.Chromosome) {
	copy(c.Genes, g.bestGenes)
	c.Taint()
}
func (g *Range[T]) BestGenes() Genes              { return g.bestGenes }
func (g *Range[T]) SetSeedGenesList(list []Genes) { g.seedGenesList = list }
func (g *Range[T]) SeedGenesList() []Genes        { return g.seedGenesList }

func (g *Range[T]) MaxScaleIndex() *int {
	if len(g.scaledMutationRanges) == 0 {
		return nil
	}
	idx := len(g.scaledMutationRanges) - 1
	return &idx
}

// NeighbouringChromosomes returns 2 neighbours per gene: the value
// perturbed by -step and +step, where step is the active neighbour range's
// upper bound (or the full range span when no neighbour range is set).
func (g *Range[T]) NeighbouringChromosomes(c *chromosome.Chromosome, scaleIndex *int, _ *rand.Rand) []*chromosome.Chromosome {
	step := g.max - g.min
	if r := g.neighbourRange(scaleIndex); r != nil {
		step = r[1]
	}
	out := make([]*chromosome.Chromosome, 0, g.genesSize*2)
	for i := 0; i < g.genesSize; i++ {
		for _, sign := range []T{-1, 1} {
			nc := g.ChromosomeCloner(c, false)
			v := nc.Genes[i].(T) + sign*step
			nc.Genes[i] = allele.Clamp(v, g.min, g.max)
			out = append(out, nc)
		}
	}
	return out
}

func (g *Range[T]) NeighbouringPopulationSize(_ *int) *big.Int {
	return big.NewInt(int64(g.genesSize) * 2)
}
