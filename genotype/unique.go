package genotype

import (
	"math/big"

	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

// Unique genes are a permutation of an allele list: every value from
// alleleList appears exactly once. Random initialization shuffles the
// list. Mutation swaps a pair of gene positions, which preserves
// uniqueness by construction. Gene-level and point crossover are both
// unsupported — swapping single genes or slices between two permutations
// would duplicate values — so only the engine's clone-based crossover
// variants are usable with this genotype.
type Unique struct {
	genesSize     int
	alleleList    []any
	seedGenesList []Genes
	pool          *chromosome.Pool
	bestGenes     Genes
}

// NewUnique builds a Unique genotype. alleleList must be non-empty; its
// length determines genes_size.
func NewUnique(alleleList []any, recycling bool) *Unique {
	if len(alleleList) == 0 {
		panic("genotype: Unique requires a non-empty allele_list")
	}
	return &Unique{
		genesSize:  len(alleleList),
		alleleList: alleleList,
		pool:       chromosome.NewPool(recycling),
		bestGenes:  Genes(alleleList).Clone(),
	}
}

func (g *Unique) GenesSize() int { return g.genesSize }

func (g *Unique) randomGenes(rng *rand.Rand) Genes {
	if len(g.seedGenesList) > 0 {
		return g.seedGenesList[rng.Intn(len(g.seedGenesList))].Clone()
	}
	genes := Genes(g.alleleList).Clone()
	rng.Shuffle(len(genes), func(i, j int) { genes[i], genes[j] = genes[j], genes[i] })
	return genes
}

func (g *Unique) ChromosomeConstructor(rng *rand.Rand) *chromosome.Chromosome {
	c := g.pool.Get(g.genesSize)
	copy(c.Genes, g.randomGenes(rng))
	c.Taint()
	return c
}

func (g *Unique) ChromosomeCloner(src *chromosome.Chromosome, preserveBookkeeping bool) *chromosome.Chromosome {
	c := g.pool.Get(len(src.Genes))
	c.CopyFrom(src, preserveBookkeeping)
	return c
}

func (g *Unique) ChromosomeDestructor(c *chromosome.Chromosome) { g.pool.Put(c) }

// MutateChromosomeGenes swaps n pairs of gene positions. With
// allowDuplicates, each pair is drawn independently, so a position (or a
// whole pair) may be swapped more than once. Without it, 2n distinct
// positions are sampled (capped at genes_size) and paired off, so no
// position is touched twice and at most genes_size/2 swaps happen,
// matching the Rust source's rand::seq::index::sample(..., n*2)
// without-replacement behaviour.
func (g *Unique) MutateChromosomeGenes(n int, allowDuplicates bool, c *chromosome.Chromosome, _ *int, rng *rand.Rand) {
	for _, pair := range sampleIndexPairs(rng, g.genesSize, n, allowDuplicates) {
		c.Genes[pair[0]], c.Genes[pair[1]] = c.Genes[pair[1]], c.Genes[pair[0]]
	}
	c.Taint()
}

func (g *Unique) HasCrossoverIndexes() bool { return false }
func (g *Unique) HasCrossoverPoints() bool  { return false }

func (g *Unique) CrossoverChromosomeGenes(_ int, _ bool, _, _ *chromosome.Chromosome, _ *rand.Rand) {
	panic("genotype: Unique does not support gene crossover")
}

func (g *Unique) CrossoverChromosomePoints(_ int, _ bool, _, _ *chromosome.Chromosome, _ *rand.Rand) {
	panic("genotype: Unique does not support point crossover")
}

func (g *Unique) SaveBestGenes(c *chromosome.Chromosome) { copy(g.bestGenes, c.Genes) }
func (g *Unique) LoadBestGenes(c *chromosome.Chromosome) {
	copy(c.Genes, g.bestGenes)
	c.Taint()
}
func (g *Unique) BestGenes() Genes              { return g.bestGenes }
func (g *Unique) SetSeedGenesList(list []Genes) { g.seedGenesList = list }
func (g *Unique) SeedGenesList() []Genes        { return g.seedGenesList }
func (g *Unique) MaxScaleIndex() *int           { return nil }

// NeighbouringChromosomes enumerates every pairwise swap: n*(n-1)/2
// neighbours. For genes_size == 1, this is 0.
func (g *Unique) NeighbouringChromosomes(c *chromosome.Chromosome, _ *int, _ *rand.Rand) []*chromosome.Chromosome {
	out := make([]*chromosome.Chromosome, 0)
	for i := 0; i < g.genesSize; i++ {
		for j := i + 1; j < g.genesSize; j++ {
			nc := g.ChromosomeCloner(c, false)
			nc.Genes[i], nc.Genes[j] = nc.Genes[j], nc.Genes[i]
			out = append(out, nc)
		}
	}
	return out
}

func (g *Unique) NeighbouringPopulationSize(_ *int) *big.Int {
	n := big.NewInt(int64(g.genesSize))
	return n.Mul(n, big.NewInt(int64(g.genesSize-1))).Div(n, big.NewInt(2))
}

func (g *Unique) ChromosomePermutationsSize() *big.Int {
	return factorial(g.genesSize)
}

func (g *Unique) NewPermutationIterator() PermutationIterator {
	base := Genes(g.alleleList).Clone()
	return newHeapPermutationIterator(base)
}

func factorial(n int) *big.Int {
	result := big.NewInt(1)
	for i := int64(2); i <= int64(n); i++ {
		result.Mul(result, big.NewInt(i))
	}
	return result
}

// heapPermutationIterator lazily yields every permutation of a fixed genes
// slice using Heap's algorithm's iterative counter formulation, so only
// O(n) state is ever held regardless of how many permutations exist.
type heapPermutationIterator struct {
	genes   Genes
	c       []int
	i       int
	started bool
	done    bool
}

func newHeapPermutationIterator(genes Genes) *heapPermutationIterator {
	return &heapPermutationIterator{
		genes: genes,
		c:     make([]int, len(genes)),
	}
}

func (it *heapPermutationIterator) Next() (*chromosome.Chromosome, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
		return chromosome.New(it.genes.Clone()), true
	}
	n := len(it.genes)
	for it.i < n {
		if it.c[it.i] < it.i {
			if it.i%2 == 0 {
				it.genes[0], it.genes[it.i] = it.genes[it.i], it.genes[0]
			} else {
				it.genes[it.c[it.i]], it.genes[it.i] = it.genes[it.i], it.genes[it.c[it.i]]
			}
			it.c[it.i]++
			it.i = 0
			return chromosome.New(it.genes.Clone()), true
		}
		it.c[it.i] = 0
		it.i++
	}
	it.done = true
	return nil, false
}
