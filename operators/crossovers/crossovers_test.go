package crossovers

import (
	"testing"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/population"
	"golang.org/x/exp/rand"
)

func TestCloneProducesIndependentChildren(t *testing.T) {
	g := genotype.NewBinary(4, false)
	father := &chromosome.Chromosome{Genes: chromosome.Genes{true, true, true, true}}
	mother := &chromosome.Chromosome{Genes: chromosome.Genes{false, false, false, false}}

	children := Clone{}.Pair(g, father, mother, nil)
	if len(children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(children))
	}
	children[0].Genes[0] = false
	if father.Genes[0] != true {
		t.Errorf("expected Clone to not mutate the parent in place")
	}
}

func TestSingleGeneSwapsExactlyOnePosition(t *testing.T) {
	g := genotype.NewBinary(5, false)
	father := &chromosome.Chromosome{Genes: chromosome.Genes{true, true, true, true, true}}
	mother := &chromosome.Chromosome{Genes: chromosome.Genes{false, false, false, false, false}}
	rng := rand.New(rand.NewSource(1))

	SingleGene{}.Pair(g, father, mother, rng)

	swapped := 0
	for _, gene := range father.Genes {
		if gene == false {
			swapped++
		}
	}
	if swapped != 1 {
		t.Errorf("expected exactly 1 gene swapped into father, got %d", swapped)
	}
}

func TestUniformKeepParentReturnsFourChromosomes(t *testing.T) {
	g := genotype.NewBinary(4, false)
	father := &chromosome.Chromosome{Genes: chromosome.Genes{true, true, true, true}}
	mother := &chromosome.Chromosome{Genes: chromosome.Genes{false, false, false, false}}
	rng := rand.New(rand.NewSource(1))

	children := Uniform{KeepParent: true}.Pair(g, father, mother, rng)
	if len(children) != 4 {
		t.Fatalf("expected 4 chromosomes with KeepParent, got %d", len(children))
	}
	keptFather := children[2]
	allTrue := true
	for _, gene := range keptFather.Genes {
		if gene != true {
			allTrue = false
		}
	}
	if !allTrue {
		t.Errorf("expected kept father to retain its original all-true genes, got %v", keptFather.Genes)
	}
}

func TestApplyRestoresTargetPopulationSize(t *testing.T) {
	g := genotype.NewBinary(4, false)
	score1, score2, score3, score4 := int64(1), int64(2), int64(3), int64(4)
	pool := population.New([]*chromosome.Chromosome{
		{Genes: chromosome.Genes{true, true, true, true}, FitnessScore: &score1},
		{Genes: chromosome.Genes{false, false, false, false}, FitnessScore: &score2},
		{Genes: chromosome.Genes{true, false, true, false}, FitnessScore: &score3},
		{Genes: chromosome.Genes{false, true, false, true}, FitnessScore: &score4},
	})
	rng := rand.New(rand.NewSource(1))

	out := Apply(g, pool, 10, population.Maximize, Clone{}, rng)
	if out.Size() != 10 {
		t.Fatalf("expected population restored to size 10, got %d", out.Size())
	}
}

func TestApplyPanicsWhenCrossoverRequiresUnsupportedCapability(t *testing.T) {
	g := genotype.NewUnique([]any{int64(1), int64(2), int64(3)}, false)
	score1, score2 := int64(1), int64(2)
	pool := population.New([]*chromosome.Chromosome{
		{Genes: chromosome.Genes{int64(1), int64(2), int64(3)}, FitnessScore: &score1},
		{Genes: chromosome.Genes{int64(3), int64(2), int64(1)}, FitnessScore: &score2},
	})

	defer func() {
		if recover() == nil {
			t.Errorf("expected Apply to panic when genotype lacks required crossover capability")
		}
	}()
	Apply(g, pool, 2, population.Maximize, SingleGene{}, rand.New(rand.NewSource(1)))
}

func TestCrossoverRangeIsSinglePointAlias(t *testing.T) {
	cr := CrossoverRange()
	if cr.N != 1 || cr.AllowDuplicates {
		t.Errorf("expected CrossoverRange() == MultiPoint{N: 1, AllowDuplicates: false}, got %+v", cr)
	}
}
