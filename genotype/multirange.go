package genotype

import (
	"github.com/aram/evolve/allele"
	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

// GeneRange describes one gene position's independent bounded distribution
// in a MultiRange genotype.
type GeneRange[T allele.Number] struct {
	Min, Max      T
	MutationRange *[2]T
}

// MultiRange genes each draw from their own independent bounded numeric
// range, unlike Range where every gene shares one distribution. Supports
// point/index crossover only — no neighbourhood or permutation support.
type MultiRange[T allele.Number] struct {
	ranges        []GeneRange[T]
	seedGenesList []Genes
	pool          *chromosome.Pool
	bestGenes     Genes
}

// NewMultiRange builds a MultiRange genotype; genes_size is len(ranges).
func NewMultiRange[T allele.Number](ranges []GeneRange[T], recycling bool) *MultiRange[T] {
	if len(ranges) == 0 {
		panic("genotype: MultiRange requires a non-empty range list")
	}
	best := make(Genes, len(ranges))
	for i, r := range ranges {
		best[i] = r.Min
	}
	return &MultiRange[T]{ranges: ranges, pool: chromosome.NewPool(recycling), bestGenes: best}
}

func (g *MultiRange[T]) GenesSize() int { return len(g.ranges) }

func (g *MultiRange[T]) sample(i int, rng *rand.Rand) T {
	r := g.ranges[i]
	return r.Min + T(rng.Float64()*float64(r.Max-r.Min))
}

func (g *MultiRange[T]) randomGenes(rng *rand.Rand) Genes {
	if len(g.seedGenesList) > 0 {
		return g.seedGenesList[rng.Intn(len(g.seedGenesList))].Clone()
	}
	genes := make(Genes, len(g.ranges))
	for i := range genes {
		genes[i] = g.sample(i, rng)
	}
	return genes
}

func (g *MultiRange[T]) ChromosomeConstructor(rng *rand.Rand) *chromosome.Chromosome {
	c := g.pool.Get(len(g.ranges))
	copy(c.Genes, g.randomGenes(rng))
	c.Taint()
	return c
}

func (g *MultiRange[T]) ChromosomeCloner(src *chromosome.Chromosome, preserveBookkeeping bool) *chromosome.Chromosome {
	c := g.pool.Get(len(src.Genes))
	c.CopyFrom(src, preserveBookkeeping)
	return c
}

func (g *MultiRange[T]) ChromosomeDestructor(c *chromosome.Chromosome) { g.pool.Put(c) }

func (g *MultiRange[T]) MutateChromosomeGenes(n int, allowDuplicates bool, c *chromosome.Chromosome, _ *int, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, len(g.ranges), n, allowDuplicates) {
		r := g.ranges[idx]
		if r.MutationRange != nil {
			delta := r.MutationRange[0] + T(rng.Float64()*float64(r.MutationRange[1]-r.MutationRange[0]))
			c.Genes[idx] = allele.Clamp(c.Genes[idx].(T)+delta, r.Min, r.Max)
		} else {
			c.Genes[idx] = g.sample(idx, rng)
		}
	}
	c.Taint()
}

func (g *MultiRange[T]) HasCrossoverIndexes() bool { return true }
func (g *MultiRange[T]) HasCrossoverPoints() bool  { return true }

func (g *MultiRange[T]) CrossoverChromosomeGenes(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, len(g.ranges), n, allowDuplicates) {
		father.Genes[idx], mother.Genes[idx] = mother.Genes[idx], father.Genes[idx]
	}
	father.Taint()
	mother.Taint()
}

func (g *MultiRange[T]) CrossoverChromosomePoints(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	swapSlicesAtPoints(allInteriorPoints(len(g.ranges)), len(g.ranges), n, allowDuplicates, father, mother, rng)
}

func (g *MultiRange[T]) SaveBestGenes(c *chromosome.Chromosome) { copy(g.bestGenes, c.Genes) }
func (g *MultiRange[T]) LoadBestGenes(c *chromosome.Chromosome) {
	copy(c.Genes, g.bestGenes)
	c.Taint()
}
func (g *MultiRange[T]) BestGenes() Genes              { return g.bestGenes }
func (g *MultiRange[T]) SetSeedGenesList(list []Genes) { g.seedGenesList = list }
func (g *MultiRange[T]) SeedGenesList() []Genes        { return g.seedGenesList }
func (g *MultiRange[T]) MaxScaleIndex() *int           { return nil }
