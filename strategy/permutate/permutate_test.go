package permutate

import (
	"context"
	"testing"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/fitness"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/population"
)

func countTrue(_ context.Context, c *chromosome.Chromosome) (*int64, error) {
	var n int64
	for _, gene := range c.Genes {
		if gene.(bool) {
			n++
		}
	}
	return &n, nil
}

func TestNewRejectsOversizedPermutationSpace(t *testing.T) {
	_, err := New(
		WithGenotype(genotype.NewBinary(30, false)),
		WithFitness(fitness.FitnessFunc(countTrue)),
	)
	if err == nil {
		t.Fatalf("expected an error when the permutation space (2^30) exceeds the default maximum")
	}
}

func TestNewAcceptsSmallPermutationSpace(t *testing.T) {
	_, err := New(
		WithGenotype(genotype.NewBinary(4, false)),
		WithFitness(fitness.FitnessFunc(countTrue)),
	)
	if err != nil {
		t.Fatalf("unexpected error for a small (2^4) permutation space: %v", err)
	}
}

func TestCallEnumeratesEntireSpaceAndFindsOptimum(t *testing.T) {
	strat, err := New(
		WithGenotype(genotype.NewBinary(4, false)),
		WithFitness(fitness.FitnessFunc(countTrue)),
		WithFitnessOrdering(population.Maximize),
	)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	result, err := strat.Call(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if result.CurrentIteration() != 16 {
		t.Errorf("expected to enumerate 2^4=16 chromosomes, got %d", result.CurrentIteration())
	}
	score := result.BestFitnessScore()
	if score == nil || *score != 4 {
		t.Errorf("expected to find the all-true optimum (4), got %v", score)
	}
}

func TestWithMaxPermutationsSizeOverridesDefault(t *testing.T) {
	_, err := New(
		WithGenotype(genotype.NewBinary(30, false)),
		WithFitness(fitness.FitnessFunc(countTrue)),
		WithMaxPermutationsSize(1<<31),
	)
	if err != nil {
		t.Errorf("expected a raised max permutations size to accept a 2^30 space, got %v", err)
	}
}
