// Package genotype implements the search-space objects the engine operates
// over: the sampling distributions, mutation/crossover/neighbourhood/
// permutation policies, and chromosome allocation for each genotype variant.
package genotype

import (
	"math/big"
	"sort"

	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

// Genes is re-exported from the chromosome package so genotype callers
// never need to import it directly.
type Genes = chromosome.Genes

// Genotype is the minimal contract every search-space variant satisfies:
// allocation, mutation, crossover, and monotonic best-genes tracking.
// IncrementalGenotype and PermutableGenotype extend it with neighbourhood
// and exhaustive-enumeration capabilities where the variant supports them.
type Genotype interface {
	GenesSize() int

	ChromosomeConstructor(rng *rand.Rand) *chromosome.Chromosome
	ChromosomeCloner(src *chromosome.Chromosome, preserveBookkeeping bool) *chromosome.Chromosome
	ChromosomeDestructor(c *chromosome.Chromosome)

	MutateChromosomeGenes(n int, allowDuplicates bool, c *chromosome.Chromosome, scaleIndex *int, rng *rand.Rand)

	HasCrossoverIndexes() bool
	HasCrossoverPoints() bool
	// CrossoverChromosomeGenes swaps n single-gene positions between two
	// chromosomes. Panics if HasCrossoverIndexes() is false — a contract
	// violation, guarded at strategy build time.
	CrossoverChromosomeGenes(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand)
	// CrossoverChromosomePoints swaps slices between cut points. Panics if
	// HasCrossoverPoints() is false.
	CrossoverChromosomePoints(n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand)

	SaveBestGenes(c *chromosome.Chromosome)
	LoadBestGenes(c *chromosome.Chromosome)
	BestGenes() Genes

	SetSeedGenesList(list []Genes)
	SeedGenesList() []Genes

	// MaxScaleIndex returns the highest valid scale index for variants with
	// scaled neighbourhood distributions, or nil when scaling does not apply.
	MaxScaleIndex() *int
}

// IncrementalGenotype is implemented by variants that support single-step
// neighbourhood enumeration (used by HillClimb).
type IncrementalGenotype interface {
	Genotype
	NeighbouringChromosomes(c *chromosome.Chromosome, scaleIndex *int, rng *rand.Rand) []*chromosome.Chromosome
	NeighbouringPopulationSize(scaleIndex *int) *big.Int
}

// PermutableGenotype is implemented by variants whose full search space can
// be exhaustively, lazily enumerated (used by Permutate).
type PermutableGenotype interface {
	Genotype
	ChromosomePermutationsSize() *big.Int
	// NewPermutationIterator returns a fresh, lazy iterator over the full
	// search space. It is legal to call this on a space with 10^30
	// elements and consume only a prefix.
	NewPermutationIterator() PermutationIterator
}

// PermutationIterator lazily yields every chromosome in a permutable
// genotype's search space exactly once.
type PermutationIterator interface {
	Next() (*chromosome.Chromosome, bool)
}

// sampleIndexes draws k gene positions out of [0, n). When allowDuplicates
// is true, positions are drawn independently with replacement. Otherwise k
// is capped at n and positions are drawn without replacement.
func sampleIndexes(rng *rand.Rand, n, k int, allowDuplicates bool) []int {
	if n <= 0 || k <= 0 {
		return nil
	}
	if allowDuplicates {
		out := make([]int, k)
		for i := range out {
			out[i] = rng.Intn(n)
		}
		return out
	}
	if k > n {
		k = n
	}
	return rng.Perm(n)[:k]
}

// sampleIndexPairs draws up to k pairs of two different positions from
// [0, n), used by the swap-based mutation of the Unique genotype. When
// allowDuplicates is true, k pairs are drawn independently and may repeat.
// Otherwise min(2k, n) distinct positions are paired off, so the pairs
// share no position and there are at most n/2 of them.
func sampleIndexPairs(rng *rand.Rand, n, k int, allowDuplicates bool) [][2]int {
	if n < 2 || k <= 0 {
		return nil
	}
	pairs := make([][2]int, 0, k)
	if allowDuplicates {
		for i := 0; i < k; i++ {
			a := rng.Intn(n)
			b := rng.Intn(n)
			for b == a {
				b = rng.Intn(n)
			}
			pairs = append(pairs, [2]int{a, b})
		}
		return pairs
	}
	idx := sampleIndexes(rng, n, min(k*2, n), false)
	for i := 0; i+1 < len(idx); i += 2 {
		pairs = append(pairs, [2]int{idx[i], idx[i+1]})
	}
	return pairs
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// swapSlicesAtPoints implements crossover_chromosome_points: up to n cut
// points are chosen from candidatePoints (interior boundaries, excluding 0
// and genesSize), then the gene slices between alternating consecutive cut
// points are swapped between father and mother. When allowDuplicates is
// false, cut points are drawn without replacement and sorted.
func swapSlicesAtPoints(candidatePoints []int, genesSize, n int, allowDuplicates bool, father, mother *chromosome.Chromosome, rng *rand.Rand) {
	defer func() {
		father.Taint()
		mother.Taint()
	}()
	if len(candidatePoints) == 0 || n <= 0 {
		return
	}
	var chosen []int
	if allowDuplicates {
		chosen = make([]int, n)
		for i := range chosen {
			chosen[i] = candidatePoints[rng.Intn(len(candidatePoints))]
		}
	} else {
		k := n
		if k > len(candidatePoints) {
			k = len(candidatePoints)
		}
		idx := rng.Perm(len(candidatePoints))[:k]
		chosen = make([]int, k)
		for i, j := range idx {
			chosen[i] = candidatePoints[j]
		}
	}
	sort.Ints(chosen)

	bounds := make([]int, 0, len(chosen)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, chosen...)
	bounds = append(bounds, genesSize)

	for i := 0; i < len(bounds)-1; i++ {
		if i%2 == 1 {
			for j := bounds[i]; j < bounds[i+1]; j++ {
				father.Genes[j], mother.Genes[j] = mother.Genes[j], father.Genes[j]
			}
		}
	}
}

// allInteriorPoints returns 1..n-1, the full set of single-gene cut points
// for a dense sequence of length n.
func allInteriorPoints(n int) []int {
	if n < 2 {
		return nil
	}
	out := make([]int, n-1)
	for i := range out {
		out[i] = i + 1
	}
	return out
}
