package genotype

import (
	"math/big"

	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

// List genes are drawn (with replacement) from a finite allele list shared
// by every gene position. Mutation replaces a gene with another list
// element. Supports point/index crossover and full permutation (k^n where
// k is the list length and n is genes_size).
type List struct {
	genesSize     int
	alleleList    []any
	seedGenesList []Genes
	pool          *chromosome.Pool
	bestGenes     Genes
}

// NewList builds a List genotype. alleleList must be non-empty.
func NewList(genesSize int, alleleList []any, recycling bool) *List {
	if genesSize <= 0 {
		panic("genotype: List requires genes_size > 0")
	}
	if len(alleleList) == 0 {
		panic("genotype: List requires a non-empty allele_list")
	}
	best := make(Genes, genesSize)
	for i := range best {
		best[i] = alleleList[0]
	}
	return &List{
		genesSize:  genesSize,
		alleleList: alleleList,
		pool:       chromosome.NewPool(recycling),
		bestGenes:  best,
	}
}

func (g *List) GenesSize() int { return g.genesSize }

func (g *List) randomGenes(rng *rand.Rand) Genes {
	if len(g.seedGenesList) > 0 {
		return g.seedGenesList[rng.Intn(len(g.seedGenesList))].Clone()
	}
	genes := make(Genes, g.genesSize)
	for i := range genes {
		genes[i] = g.alleleList[rng.Intn(len(g.alleleList))]
	}
	return genes
}

func (g *List) ChromosomeConstructor(rng *rand.Rand) *chromosome.Chromosome {
	c := g.pool.Get(g.genesSize)
	copy(c.Genes, g.randomGenes(rng))
	c.Taint()
	return c
}

func (g *List) ChromosomeCloner(src *chromosome.Chromosome, preserveBookkeeping bool) *chromosome.Chromosome {
	c := g.pool.Get(len(src.Genes))
	c.CopyFrom(src, preserveBookkeeping)
	return c
}

func (g *List) ChromosomeDestructor(c *chromosome.Chromosome) { g.pool.Put(c) }

func (g *List) MutateChromosomeGenes(n int, allowDuplicates bool, c *chromosome.Chromosome, _ *int, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, g.genesSize, n, allowDuplicates) {
		c.Genes[idx] = g.alleleList[rng.Intn(len(g.alleleList))]
	}
	c.Taint()
}

func (g *List) HasCrossoverIndexes() bool { return true }
func (g *List) HasCrossoverPoints() bool  { return true }

func (g *List) CrossoverChromosomeGenes(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, g.genesSize, n, allowDuplicates) {
		father.Genes[idx], mother.Genes[idx] = mother.Genes[idx], father.Genes[idx]
	}
	father.Taint()
	mother.Taint()
}

func (g *List) CrossoverChromosomePoints(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	swapSlicesAtPoints(allInteriorPoints(g.genesSize), g.genesSize, n, allowDuplicates, father, mother, rng)
}

func (g *List) SaveBestGenes(c *chromosome.Chromosome) { copy(g.bestGenes, c.Genes) }
func (g *List) LoadBestGenes(c *chromosome.Chromosome) {
	copy(c.Genes, g.bestGenes)
	c.Taint()
}
func (g *List) BestGenes() Genes              { return g.bestGenes }
func (g *List) SetSeedGenesList(list []Genes) { g.seedGenesList = list }
func (g *List) SeedGenesList() []Genes        { return g.seedGenesList }
func (g *List) MaxScaleIndex() *int           { return nil }

func (g *List) ChromosomePermutationsSize() *big.Int {
	k := big.NewInt(int64(len(g.alleleList)))
	return new(big.Int).Exp(k, big.NewInt(int64(g.genesSize)), nil)
}

func (g *List) NewPermutationIterator() PermutationIterator {
	return &listPermutationIterator{
		genesSize: g.genesSize,
		list:      g.alleleList,
		counters:  make([]int, g.genesSize),
	}
}

// listPermutationIterator enumerates the Cartesian product alleleList^genesSize
// via an odometer: each Next() advances the rightmost counter and carries
// over, lazily materializing one chromosome per call.
type listPermutationIterator struct {
	genesSize int
	list      []any
	counters  []int
	done      bool
	started   bool
}

func (it *listPermutationIterator) Next() (*chromosome.Chromosome, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
	} else {
		i := it.genesSize - 1
		for i >= 0 {
			it.counters[i]++
			if it.counters[i] < len(it.list) {
				break
			}
			it.counters[i] = 0
			i--
		}
		if i < 0 {
			it.done = true
			return nil, false
		}
	}
	genes := make(Genes, it.genesSize)
	for i, c := range it.counters {
		genes[i] = it.list[c]
	}
	if it.genesSize == 0 {
		it.done = true
	}
	return chromosome.New(genes), true
}
