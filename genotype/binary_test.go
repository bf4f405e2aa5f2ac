package genotype

import (
	"testing"

	"github.com/aram/evolve/chromosome"
	"golang.org/x/exp/rand"
)

func TestBinaryChromosomeConstructorGenesSize(t *testing.T) {
	g := NewBinary(8, false)
	rng := rand.New(rand.NewSource(1))
	c := g.ChromosomeConstructor(rng)
	if len(c.Genes) != 8 {
		t.Fatalf("expected 8 genes, got %d", len(c.Genes))
	}
	for _, gene := range c.Genes {
		if _, ok := gene.(bool); !ok {
			t.Fatalf("expected bool gene, got %T", gene)
		}
	}
}

func TestBinaryMutateFlipsAndTaints(t *testing.T) {
	g := NewBinary(4, false)
	c := &chromosome.Chromosome{Genes: chromosome.Genes{false, false, false, false}, Age: 3}
	before := make([]any, len(c.Genes))
	copy(before, c.Genes)

	rng := rand.New(rand.NewSource(1))
	g.MutateChromosomeGenes(1, false, c, nil, rng)

	flipped := 0
	for i := range c.Genes {
		if c.Genes[i] != before[i] {
			flipped++
		}
	}
	if flipped != 1 {
		t.Errorf("expected exactly 1 gene flipped, got %d", flipped)
	}
	if c.Age != 0 {
		t.Errorf("expected mutation to taint age to 0, got %d", c.Age)
	}
}

func TestBinaryCrossoverChromosomeGenesSwapsAndTaints(t *testing.T) {
	g := NewBinary(4, false)
	father := &chromosome.Chromosome{Genes: chromosome.Genes{true, true, true, true}}
	mother := &chromosome.Chromosome{Genes: chromosome.Genes{false, false, false, false}}

	rng := rand.New(rand.NewSource(1))
	g.CrossoverChromosomeGenes(2, false, father, mother, rng)

	swapped := 0
	for i := range father.Genes {
		if father.Genes[i] == false {
			swapped++
		}
	}
	if swapped != 2 {
		t.Errorf("expected exactly 2 positions swapped into father, got %d", swapped)
	}
	if father.FitnessScore != nil || mother.FitnessScore != nil {
		t.Errorf("expected crossover to taint both parents")
	}
}

func TestBinaryNeighbouringChromosomesOneFlip(t *testing.T) {
	g := NewBinary(3, false)
	c := &chromosome.Chromosome{Genes: chromosome.Genes{false, false, false}}
	neighbours := g.NeighbouringChromosomes(c, nil, nil)
	if len(neighbours) != 3 {
		t.Fatalf("expected 3 neighbours for 3 genes, got %d", len(neighbours))
	}
	for i, n := range neighbours {
		for j, gene := range n.Genes {
			want := j == i
			if gene.(bool) != want {
				t.Errorf("neighbour %d: gene %d = %v, want %v", i, j, gene, want)
			}
		}
	}
}

func TestBinaryPermutationIteratorCoversFullSpace(t *testing.T) {
	g := NewBinary(3, false)
	it := g.NewPermutationIterator()
	seen := map[string]bool{}
	count := 0
	for {
		c, ok := it.Next()
		if !ok {
			break
		}
		key := ""
		for _, gene := range c.Genes {
			if gene.(bool) {
				key += "1"
			} else {
				key += "0"
			}
		}
		seen[key] = true
		count++
	}
	if count != 8 {
		t.Errorf("expected 8 permutations for 3 bits, got %d", count)
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct permutations, got %d", len(seen))
	}
}
