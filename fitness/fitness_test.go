package fitness

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/population"
)

func geneCount(ctx context.Context, c *chromosome.Chromosome) (*int64, error) {
	n := int64(len(c.Genes))
	return &n, nil
}

func TestSequentialEvaluatorSkipsAlreadyScored(t *testing.T) {
	preset := int64(999)
	pop := population.New([]*chromosome.Chromosome{
		{Genes: chromosome.Genes{true, true}, FitnessScore: &preset},
		{Genes: chromosome.Genes{true, true, true}},
	})
	if err := (SequentialEvaluator{}).CallForPopulation(context.Background(), FitnessFunc(geneCount), pop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *pop.Chromosomes[0].FitnessScore != 999 {
		t.Errorf("expected pre-scored chromosome untouched, got %d", *pop.Chromosomes[0].FitnessScore)
	}
	if *pop.Chromosomes[1].FitnessScore != 3 {
		t.Errorf("expected freshly scored chromosome to get gene count 3, got %d", *pop.Chromosomes[1].FitnessScore)
	}
}

func TestSequentialEvaluatorWrapsError(t *testing.T) {
	failing := FitnessFunc(func(ctx context.Context, c *chromosome.Chromosome) (*int64, error) {
		return nil, errors.New("boom")
	})
	pop := population.New([]*chromosome.Chromosome{{Genes: chromosome.Genes{true}}})
	err := (SequentialEvaluator{}).CallForPopulation(context.Background(), failing, pop)
	if err == nil {
		t.Fatalf("expected an error to propagate")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected wrapped error to mention the underlying cause, got %q", err.Error())
	}
}

func TestParallelEvaluatorScoresAllChromosomes(t *testing.T) {
	pop := population.New([]*chromosome.Chromosome{
		{Genes: chromosome.Genes{true}},
		{Genes: chromosome.Genes{true, true}},
		{Genes: chromosome.Genes{true, true, true}},
	})
	err := (ParallelEvaluator{NumWorkers: 2}).CallForPopulation(context.Background(), FitnessFunc(geneCount), pop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, c := range pop.Chromosomes {
		if *c.FitnessScore != int64(i+1) {
			t.Errorf("chromosome %d: expected score %d, got %d", i, i+1, *c.FitnessScore)
		}
	}
}

func TestParallelEvaluatorPropagatesFirstError(t *testing.T) {
	failing := FitnessFunc(func(ctx context.Context, c *chromosome.Chromosome) (*int64, error) {
		return nil, errors.New("boom")
	})
	pop := population.New([]*chromosome.Chromosome{{Genes: chromosome.Genes{true}}, {Genes: chromosome.Genes{true}}})
	err := (ParallelEvaluator{NumWorkers: 1}).CallForPopulation(context.Background(), failing, pop)
	if err == nil {
		t.Fatalf("expected an error from a failing fitness function")
	}
}

func TestFitnessNoneIsNotAFailure(t *testing.T) {
	none := FitnessFunc(func(ctx context.Context, c *chromosome.Chromosome) (*int64, error) {
		return nil, nil
	})
	pop := population.New([]*chromosome.Chromosome{{Genes: chromosome.Genes{true}}})
	if err := (SequentialEvaluator{}).CallForPopulation(context.Background(), none, pop); err != nil {
		t.Fatalf("expected nil score with nil error to be treated as success, got %v", err)
	}
	if pop.Chromosomes[0].FitnessScore != nil {
		t.Errorf("expected FitnessScore to remain nil for FitnessNone")
	}
}
