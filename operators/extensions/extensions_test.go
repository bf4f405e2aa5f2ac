package extensions

import (
	"testing"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/population"
	"golang.org/x/exp/rand"
)

func converged(n int) *population.Population {
	score := int64(1)
	chromosomes := make([]*chromosome.Chromosome, n)
	for i := range chromosomes {
		chromosomes[i] = &chromosome.Chromosome{Genes: chromosome.Genes{false, false}, FitnessScore: &score}
	}
	return population.New(chromosomes)
}

func TestMassDegenerationTriggersOnlyAtCardinalityThreshold(t *testing.T) {
	g := genotype.NewBinary(2, false)
	pop := converged(4)
	rng := rand.New(rand.NewSource(1))

	e := MassDegeneration{CardinalityThreshold: 1, NumberOfMutations: 2}
	if !e.Call(g, pop, population.Maximize, 4, rng) {
		t.Fatalf("expected MassDegeneration to trigger when cardinality <= threshold")
	}

	diverse := converged(4)
	s2 := int64(2)
	diverse.Chromosomes[0].FitnessScore = &s2
	if e.Call(g, diverse, population.Maximize, 4, rng) {
		t.Errorf("expected MassDegeneration to stay silent above the cardinality threshold")
	}
}

func TestMassExtinctionKeepsSurvivalFraction(t *testing.T) {
	g := genotype.NewBinary(2, false)
	pop := converged(10)
	rng := rand.New(rand.NewSource(1))

	e := MassExtinction{CardinalityThreshold: 1, SurvivalRate: 0.3}
	if !e.Call(g, pop, population.Maximize, 10, rng) {
		t.Fatalf("expected MassExtinction to trigger")
	}
	if pop.Size() != 3 {
		t.Errorf("expected survival fraction of 10*0.3=3, got %d", pop.Size())
	}
}

func TestMassGenesisKeepsTopTwo(t *testing.T) {
	g := genotype.NewBinary(2, false)
	pop := converged(5)
	scores := []int64{5, 1, 3, 2, 4}
	for i, s := range scores {
		score := s
		pop.Chromosomes[i].FitnessScore = &score
	}

	e := MassGenesis{CardinalityThreshold: 5}
	if !e.Call(g, pop, population.Maximize, 5, rand.New(rand.NewSource(1))) {
		t.Fatalf("expected MassGenesis to trigger")
	}
	if pop.Size() != 2 {
		t.Fatalf("expected population collapsed to 2, got %d", pop.Size())
	}
	if *pop.Chromosomes[0].FitnessScore != 5 || *pop.Chromosomes[1].FitnessScore != 4 {
		t.Errorf("expected the two best scores [5, 4] retained, got [%d, %d]",
			*pop.Chromosomes[0].FitnessScore, *pop.Chromosomes[1].FitnessScore)
	}
}

func TestMassInvasionReplacesFraction(t *testing.T) {
	g := genotype.NewBinary(2, false)
	pop := converged(10)
	originals := append([]*chromosome.Chromosome(nil), pop.Chromosomes...)

	e := MassInvasion{CardinalityThreshold: 1, InvasionRate: 0.5}
	if !e.Call(g, pop, population.Maximize, 10, rand.New(rand.NewSource(1))) {
		t.Fatalf("expected MassInvasion to trigger")
	}
	replaced := 0
	for i, c := range pop.Chromosomes {
		if c != originals[i] {
			replaced++
		}
	}
	if replaced != 5 {
		t.Errorf("expected exactly 5 chromosomes replaced, got %d", replaced)
	}
}

func TestExtensionsStaySilentBelowTargetPopulationSize(t *testing.T) {
	g := genotype.NewBinary(2, false)
	pop := converged(3)
	if (MassGenesis{CardinalityThreshold: 5}).Call(g, pop, population.Maximize, 10, rand.New(rand.NewSource(1))) {
		t.Errorf("expected no trigger while population is below target size")
	}
}
