package genotype

import (
	"math/big"

	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

// MultiUnique genes are the concatenation of independent per-segment
// permutations: genes_size is the sum of the segment allele-list lengths.
// Random initialization shuffles each segment's allele list independently
// then concatenates, always in the same segment order. Mutation picks a
// segment weighted by its size and swaps a pair of positions within it,
// preserving each segment's multiset of alleles. Only point crossover is
// supported, and only at segment boundaries.
type MultiUnique struct {
	genesSize     int
	alleleLists   [][]any
	segmentSizes  []int
	segmentOffset []int // len(segmentSizes)+1, offset[i]..offset[i+1] is segment i
	crossoverPts  []int // interior segment boundaries, excludes 0 and genesSize
	seedGenesList []Genes
	pool          *chromosome.Pool
	bestGenes     Genes
}

// NewMultiUnique builds a MultiUnique genotype from a list of per-segment
// allele lists, each internally unique.
func NewMultiUnique(alleleLists [][]any, recycling bool) *MultiUnique {
	if len(alleleLists) == 0 {
		panic("genotype: MultiUnique requires a non-empty list of allele lists")
	}
	sizes := make([]int, len(alleleLists))
	offsets := make([]int, len(alleleLists)+1)
	best := Genes{}
	for i, l := range alleleLists {
		if len(l) == 0 {
			panic("genotype: MultiUnique requires every segment allele list to be non-empty")
		}
		sizes[i] = len(l)
		offsets[i+1] = offsets[i] + len(l)
		best = append(best, l...)
	}
	var points []int
	for _, off := range offsets[1 : len(offsets)-1] {
		points = append(points, off)
	}
	return &MultiUnique{
		genesSize:     offsets[len(offsets)-1],
		alleleLists:   alleleLists,
		segmentSizes:  sizes,
		segmentOffset: offsets,
		crossoverPts:  points,
		pool:          chromosome.NewPool(recycling),
		bestGenes:     best,
	}
}

func (g *MultiUnique) GenesSize() int { return g.genesSize }

func (g *MultiUnique) randomGenes(rng *rand.Rand) Genes {
	if len(g.seedGenesList) > 0 {
		return g.seedGenesList[rng.Intn(len(g.seedGenesList))].Clone()
	}
	genes := make(Genes, 0, g.genesSize)
	for _, l := range g.alleleLists {
		seg := Genes(l).Clone()
		rng.Shuffle(len(seg), func(i, j int) { seg[i], seg[j] = seg[j], seg[i] })
		genes = append(genes, seg...)
	}
	return genes
}

func (g *MultiUnique) ChromosomeConstructor(rng *rand.Rand) *chromosome.Chromosome {
	c := g.pool.Get(g.genesSize)
	copy(c.Genes, g.randomGenes(rng))
	c.Taint()
	return c
}

func (g *MultiUnique) ChromosomeCloner(src *chromosome.Chromosome, preserveBookkeeping bool) *chromosome.Chromosome {
	c := g.pool.Get(len(src.Genes))
	c.CopyFrom(src, preserveBookkeeping)
	return c
}

func (g *MultiUnique) ChromosomeDestructor(c *chromosome.Chromosome) { g.pool.Put(c) }

// segmentForMutation picks a segment index with probability proportional to
// its size, matching the Rust source's WeightedIndex over allele_list_sizes.
func (g *MultiUnique) segmentForMutation(rng *rand.Rand) int {
	total := 0
	for _, s := range g.segmentSizes {
		total += s
	}
	pick := rng.Intn(total)
	acc := 0
	for i, s := range g.segmentSizes {
		acc += s
		if pick < acc {
			return i
		}
	}
	return len(g.segmentSizes) - 1
}

func (g *MultiUnique) MutateChromosomeGenes(n int, allowDuplicates bool, c *chromosome.Chromosome, _ *int, rng *rand.Rand) {
	for i := 0; i < n; i++ {
		seg := g.segmentForMutation(rng)
		size := g.segmentSizes[seg]
		if size < 2 {
			continue
		}
		offset := g.segmentOffset[seg]
		a := offset + rng.Intn(size)
		b := offset + rng.Intn(size)
		if !allowDuplicates {
			for b == a {
				b = offset + rng.Intn(size)
			}
		}
		c.Genes[a], c.Genes[b] = c.Genes[b], c.Genes[a]
	}
	c.Taint()
}

func (g *MultiUnique) HasCrossoverIndexes() bool { return false }
func (g *MultiUnique) HasCrossoverPoints() bool  { return true }

func (g *MultiUnique) CrossoverChromosomeGenes(_ int, _ bool, _, _ *chromosome.Chromosome, _ *rand.Rand) {
	panic("genotype: MultiUnique does not support gene crossover")
}

// CrossoverChromosomePoints swaps whole segments at segment boundaries
// only — the legal cut points are exactly the segment boundaries.
func (g *MultiUnique) CrossoverChromosomePoints(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	swapSlicesAtPoints(g.crossoverPts, g.genesSize, n, allowDuplicates, father, mother, rng)
}

func (g *MultiUnique) SaveBestGenes(c *chromosome.Chromosome) { copy(g.bestGenes, c.Genes) }
func (g *MultiUnique) LoadBestGenes(c *chromosome.Chromosome) {
	copy(c.Genes, g.bestGenes)
	c.Taint()
}
func (g *MultiUnique) BestGenes() Genes              { return g.bestGenes }
func (g *MultiUnique) SetSeedGenesList(list []Genes) { g.seedGenesList = list }
func (g *MultiUnique) SeedGenesList() []Genes        { return g.seedGenesList }
func (g *MultiUnique) MaxScaleIndex() *int           { return nil }

// NeighbouringChromosomes enumerates every pairwise swap within every
// segment (segments of size 1 contribute nothing).
func (g *MultiUnique) NeighbouringChromosomes(c *chromosome.Chromosome, _ *int, _ *rand.Rand) []*chromosome.Chromosome {
	var out []*chromosome.Chromosome
	for seg, size := range g.segmentSizes {
		offset := g.segmentOffset[seg]
		for i := 0; i < size; i++ {
			for j := i + 1; j < size; j++ {
				nc := g.ChromosomeCloner(c, false)
				nc.Genes[offset+i], nc.Genes[offset+j] = nc.Genes[offset+j], nc.Genes[offset+i]
				out = append(out, nc)
			}
		}
	}
	return out
}

func (g *MultiUnique) NeighbouringPopulationSize(_ *int) *big.Int {
	total := big.NewInt(0)
	for _, size := range g.segmentSizes {
		if size < 2 {
			continue
		}
		n := big.NewInt(int64(size))
		pair := new(big.Int).Mul(n, big.NewInt(int64(size-1)))
		pair.Div(pair, big.NewInt(2))
		total.Add(total, pair)
	}
	return total
}

// ChromosomePermutationsSize is the product of each segment's factorial
// (e.g. segment sizes [2,4,3] yields 2!*4!*3! = 288).
func (g *MultiUnique) ChromosomePermutationsSize() *big.Int {
	result := big.NewInt(1)
	for _, size := range g.segmentSizes {
		result.Mul(result, factorial(size))
	}
	return result
}

func (g *MultiUnique) NewPermutationIterator() PermutationIterator {
	bases := make([]Genes, len(g.alleleLists))
	iters := make([]*heapPermutationIterator, len(g.alleleLists))
	segs := make([]Genes, len(g.alleleLists))
	for i, l := range g.alleleLists {
		bases[i] = Genes(l).Clone()
		iters[i] = newHeapPermutationIterator(Genes(l).Clone())
		first, _ := iters[i].Next()
		segs[i] = first.Genes
	}
	return &multiUniquePermutationIterator{
		bases:        bases,
		segmentIters: iters,
		current:      segs,
		genesSize:    g.genesSize,
	}
}

// multiUniquePermutationIterator treats each segment's permutations as an
// odometer digit: the last segment advances fastest, carrying into earlier
// segments exactly like a mixed-radix counter, so every combination of
// per-segment permutations is produced exactly once.
type multiUniquePermutationIterator struct {
	bases        []Genes
	segmentIters []*heapPermutationIterator
	current      []Genes
	genesSize    int
	done         bool
	started      bool
}

func (it *multiUniquePermutationIterator) Next() (*chromosome.Chromosome, bool) {
	if it.done {
		return nil, false
	}
	if !it.started {
		it.started = true
		return it.assemble(), true
	}
	i := len(it.segmentIters) - 1
	for i >= 0 {
		next, ok := it.segmentIters[i].Next()
		if ok {
			it.current[i] = next.Genes
			break
		}
		it.segmentIters[i] = newHeapPermutationIterator(it.bases[i].Clone())
		first, _ := it.segmentIters[i].Next()
		it.current[i] = first.Genes
		i--
	}
	if i < 0 {
		it.done = true
		return nil, false
	}
	return it.assemble(), true
}

func (it *multiUniquePermutationIterator) assemble() *chromosome.Chromosome {
	genes := make(Genes, 0, it.genesSize)
	for _, seg := range it.current {
		genes = append(genes, seg...)
	}
	return chromosome.New(genes)
}
