package genotype

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestMultiUniqueConstructorPreservesSegmentMultisets(t *testing.T) {
	g := NewMultiUnique([][]any{{int64(1), int64(2)}, {int64(10), int64(20), int64(30)}}, false)
	rng := rand.New(rand.NewSource(1))
	c := g.ChromosomeConstructor(rng)
	if len(c.Genes) != 5 {
		t.Fatalf("expected genes_size 5 (2+3), got %d", len(c.Genes))
	}
	firstSeg := map[int64]bool{c.Genes[0].(int64): true, c.Genes[1].(int64): true}
	if !firstSeg[1] || !firstSeg[2] {
		t.Errorf("expected first segment to be a permutation of [1, 2], got %v", c.Genes[:2])
	}
}

func TestMultiUniquePermutationsSizeIsProductOfFactorials(t *testing.T) {
	g := NewMultiUnique([][]any{{int64(1), int64(2)}, {int64(1), int64(2), int64(3), int64(4)}, {int64(1), int64(2), int64(3)}}, false)
	if got := g.ChromosomePermutationsSize().Int64(); got != 288 {
		t.Errorf("expected 2!*4!*3!=288, got %d", got)
	}
}

func TestMultiUniqueOnlySupportsPointCrossover(t *testing.T) {
	g := NewMultiUnique([][]any{{int64(1), int64(2)}, {int64(3), int64(4)}}, false)
	if g.HasCrossoverIndexes() {
		t.Errorf("MultiUnique must not support gene-index crossover")
	}
	if !g.HasCrossoverPoints() {
		t.Errorf("MultiUnique must support point crossover at segment boundaries")
	}
}

func TestMultiUniquePermutationIteratorCount(t *testing.T) {
	g := NewMultiUnique([][]any{{int64(1), int64(2)}, {int64(3), int64(4)}}, false)
	it := g.NewPermutationIterator()
	count := 0
	for {
		_, ok := it.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 4 {
		t.Errorf("expected 2!*2!=4 permutations, got %d", count)
	}
}
