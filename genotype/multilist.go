package genotype

import (
	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

// MultiList genes each draw from their own independent finite allele list,
// unlike List where every gene shares one list. Supports point/index
// crossover only.
type MultiList struct {
	alleleLists   [][]any
	seedGenesList []Genes
	pool          *chromosome.Pool
	bestGenes     Genes
}

// NewMultiList builds a MultiList genotype; genes_size is len(alleleLists).
func NewMultiList(alleleLists [][]any, recycling bool) *MultiList {
	if len(alleleLists) == 0 {
		panic("genotype: MultiList requires a non-empty list of allele lists")
	}
	best := make(Genes, len(alleleLists))
	for i, l := range alleleLists {
		if len(l) == 0 {
			panic("genotype: MultiList requires every allele list to be non-empty")
		}
		best[i] = l[0]
	}
	return &MultiList{alleleLists: alleleLists, pool: chromosome.NewPool(recycling), bestGenes: best}
}

func (g *MultiList) GenesSize() int { return len(g.alleleLists) }

func (g *MultiList) randomGenes(rng *rand.Rand) Genes {
	if len(g.seedGenesList) > 0 {
		return g.seedGenesList[rng.Intn(len(g.seedGenesList))].Clone()
	}
	genes := make(Genes, len(g.alleleLists))
	for i, l := range g.alleleLists {
		genes[i] = l[rng.Intn(len(l))]
	}
	return genes
}

func (g *MultiList) ChromosomeConstructor(rng *rand.Rand) *chromosome.Chromosome {
	c := g.pool.Get(len(g.alleleLists))
	copy(c.Genes, g.randomGenes(rng))
	c.Taint()
	return c
}

func (g *MultiList) ChromosomeCloner(src *chromosome.Chromosome, preserveBookkeeping bool) *chromosome.Chromosome {
	c := g.pool.Get(len(src.Genes))
	c.CopyFrom(src, preserveBookkeeping)
	return c
}

func (g *MultiList) ChromosomeDestructor(c *chromosome.Chromosome) { g.pool.Put(c) }

func (g *MultiList) MutateChromosomeGenes(n int, allowDuplicates bool, c *chromosome.Chromosome, _ *int, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, len(g.alleleLists), n, allowDuplicates) {
		l := g.alleleLists[idx]
		c.Genes[idx] = l[rng.Intn(len(l))]
	}
	c.Taint()
}

func (g *MultiList) HasCrossoverIndexes() bool { return true }
func (g *MultiList) HasCrossoverPoints() bool  { return true }

func (g *MultiList) CrossoverChromosomeGenes(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, len(g.alleleLists), n, allowDuplicates) {
		father.Genes[idx], mother.Genes[idx] = mother.Genes[idx], father.Genes[idx]
	}
	father.Taint()
	mother.Taint()
}

func (g *MultiList) CrossoverChromosomePoints(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	swapSlicesAtPoints(allInteriorPoints(len(g.alleleLists)), len(g.alleleLists), n, allowDuplicates, father, mother, rng)
}

func (g *MultiList) SaveBestGenes(c *chromosome.Chromosome) { copy(g.bestGenes, c.Genes) }
func (g *MultiList) LoadBestGenes(c *chromosome.Chromosome) {
	copy(c.Genes, g.bestGenes)
	c.Taint()
}
func (g *MultiList) BestGenes() Genes              { return g.bestGenes }
func (g *MultiList) SetSeedGenesList(list []Genes) { g.seedGenesList = list }
func (g *MultiList) SeedGenesList() []Genes        { return g.seedGenesList }
func (g *MultiList) MaxScaleIndex() *int           { return nil }
