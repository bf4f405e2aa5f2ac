package genotype

import (
	"testing"

	"golang.org/x/exp/rand"
)

func TestMultiListConstructorDrawsEachGeneFromItsOwnList(t *testing.T) {
	lists := [][]any{{"a", "b"}, {1, 2, 3}}
	g := NewMultiList(lists, false)
	rng := rand.New(rand.NewSource(1))
	c := g.ChromosomeConstructor(rng)
	if len(c.Genes) != 2 {
		t.Fatalf("expected GenesSize 2, got %d", len(c.Genes))
	}
	if c.Genes[0] != "a" && c.Genes[0] != "b" {
		t.Errorf("gene 0 not drawn from its own allele list: %v", c.Genes[0])
	}
	found := false
	for _, v := range []any{1, 2, 3} {
		if c.Genes[1] == v {
			found = true
		}
	}
	if !found {
		t.Errorf("gene 1 not drawn from its own allele list: %v", c.Genes[1])
	}
}

func TestMultiListMutateStaysWithinOwnGeneList(t *testing.T) {
	lists := [][]any{{"a", "b"}, {1, 2, 3}}
	g := NewMultiList(lists, false)
	rng := rand.New(rand.NewSource(1))
	c := g.ChromosomeConstructor(rng)
	c.FitnessScore = new(int64)
	for i := 0; i < 20; i++ {
		g.MutateChromosomeGenes(1, false, c, nil, rng)
		if c.Genes[0] != "a" && c.Genes[0] != "b" {
			t.Fatalf("mutation moved gene 0 outside its allele list: %v", c.Genes[0])
		}
	}
	if c.FitnessScore != nil {
		t.Errorf("expected mutation to taint fitness score")
	}
}

func TestMultiListSupportsBothIndexAndPointCrossover(t *testing.T) {
	g := NewMultiList([][]any{{"a", "b"}, {1, 2}}, false)
	if !g.HasCrossoverIndexes() {
		t.Errorf("MultiList should support gene-index crossover")
	}
	if !g.HasCrossoverPoints() {
		t.Errorf("MultiList should support point crossover")
	}
}

func TestMultiListBestGenesRoundTrip(t *testing.T) {
	g := NewMultiList([][]any{{"a", "b"}, {1, 2}}, false)
	rng := rand.New(rand.NewSource(1))
	c := g.ChromosomeConstructor(rng)
	g.SaveBestGenes(c)
	other := g.ChromosomeConstructor(rng)
	other.FitnessScore = new(int64)
	g.LoadBestGenes(other)
	for i := range c.Genes {
		if other.Genes[i] != c.Genes[i] {
			t.Errorf("gene %d not restored from best genes: got %v want %v", i, other.Genes[i], c.Genes[i])
		}
	}
	if other.FitnessScore != nil {
		t.Errorf("expected LoadBestGenes to taint fitness score")
	}
}
