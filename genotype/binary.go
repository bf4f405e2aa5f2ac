package genotype

import (
	"math/big"

	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

// Binary genes are a dense sequence of booleans. On random initialization
// each gene has a 50% probability of being true. Every gene has an equal
// probability of mutating; mutation flips the bit. Supports point/index
// crossover, full neighbourhood enumeration, and full permutation.
type Binary struct {
	genesSize     int
	seedGenesList []Genes
	pool          *chromosome.Pool
	bestGenes     Genes
}

// NewBinary builds a Binary genotype over genesSize boolean genes.
// Recycling enables the chromosome pool.
func NewBinary(genesSize int, recycling bool) *Binary {
	if genesSize <= 0 {
		panic("genotype: Binary requires genes_size > 0")
	}
	best := make(Genes, genesSize)
	for i := range best {
		best[i] = false
	}
	return &Binary{
		genesSize: genesSize,
		pool:      chromosome.NewPool(recycling),
		bestGenes: best,
	}
}

func (g *Binary) GenesSize() int { return g.genesSize }

func (g *Binary) randomGenes(rng *rand.Rand) Genes {
	if len(g.seedGenesList) > 0 {
		return g.seedGenesList[rng.Intn(len(g.seedGenesList))].Clone()
	}
	genes := make(Genes, g.genesSize)
	for i := range genes {
		genes[i] = rng.Float64() < 0.5
	}
	return genes
}

func (g *Binary) ChromosomeConstructor(rng *rand.Rand) *chromosome.Chromosome {
	c := g.pool.Get(g.genesSize)
	copy(c.Genes, g.randomGenes(rng))
	c.Taint()
	return c
}

func (g *Binary) ChromosomeCloner(src *chromosome.Chromosome, preserveBookkeeping bool) *chromosome.Chromosome {
	c := g.pool.Get(len(src.Genes))
	c.CopyFrom(src, preserveBookkeeping)
	return c
}

func (g *Binary) ChromosomeDestructor(c *chromosome.Chromosome) { g.pool.Put(c) }

func (g *Binary) MutateChromosomeGenes(n int, allowDuplicates bool, c *chromosome.Chromosome, _ *int, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, g.genesSize, n, allowDuplicates) {
		c.Genes[idx] = !c.Genes[idx].(bool)
	}
	c.Taint()
}

func (g *Binary) HasCrossoverIndexes() bool { return true }
func (g *Binary) HasCrossoverPoints() bool  { return true }

func (g *Binary) CrossoverChromosomeGenes(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	for _, idx := range sampleIndexes(rng, g.genesSize, n, allowDuplicates) {
		father.Genes[idx], mother.Genes[idx] = mother.Genes[idx], father.Genes[idx]
	}
	father.Taint()
	mother.Taint()
}

func (g *Binary) CrossoverChromosomePoints(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	swapSlicesAtPoints(allInteriorPoints(g.genesSize), g.genesSize, n, allowDuplicates, father, mother, rng)
}

func (g *Binary) SaveBestGenes(c *chromosome.Chromosome) { copy(g.bestGenes, c.Genes) }
func (g *Binary) LoadBestGenes(c *chromosome.Chromosome) {
	copy(c.Genes, g.bestGenes)
	c.Taint()
}
func (g *Binary) BestGenes() Genes                   { return g.bestGenes }
func (g *Binary) SetSeedGenesList(list []Genes)      { g.seedGenesList = list }
func (g *Binary) SeedGenesList() []Genes             { return g.seedGenesList }
func (g *Binary) MaxScaleIndex() *int                { return nil }

// NeighbouringChromosomes returns one chromosome per bit-flip: n neighbours
// for n genes.
func (g *Binary) NeighbouringChromosomes(c *chromosome.Chromosome, _ *int, _ *rand.Rand) []*chromosome.Chromosome {
	out := make([]*chromosome.Chromosome, 0, g.genesSize)
	for i := 0; i < g.genesSize; i++ {
		nc := g.ChromosomeCloner(c, false)
		nc.Genes[i] = !nc.Genes[i].(bool)
		out = append(out, nc)
	}
	return out
}

func (g *Binary) NeighbouringPopulationSize(_ *int) *big.Int {
	return big.NewInt(int64(g.genesSize))
}

func (g *Binary) ChromosomePermutationsSize() *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(g.genesSize))
}

func (g *Binary) NewPermutationIterator() PermutationIterator {
	return &binaryPermutationIterator{genesSize: g.genesSize, total: g.ChromosomePermutationsSize()}
}

type binaryPermutationIterator struct {
	genesSize int
	total     *big.Int
	idx       big.Int
}

func (it *binaryPermutationIterator) Next() (*chromosome.Chromosome, bool) {
	if it.idx.Cmp(it.total) >= 0 {
		return nil, false
	}
	genes := make(Genes, it.genesSize)
	v := new(big.Int).Set(&it.idx)
	one := big.NewInt(1)
	for i := it.genesSize - 1; i >= 0; i-- {
		bit := new(big.Int).And(v, one)
		genes[i] = bit.Sign() != 0
		v.Rsh(v, 1)
	}
	it.idx.Add(&it.idx, one)
	return chromosome.New(genes), true
}
