package hillclimb

import (
	"context"
	"testing"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/fitness"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/reporter"
	"golang.org/x/exp/rand"
)

// bestScoreRecorder records the score of every chromosome HillClimb
// reports as its new best, in order.
type bestScoreRecorder struct {
	reporter.NoopReporter
	scores []int64
}

func (r *bestScoreRecorder) OnNewBestChromosome(_ int, c *chromosome.Chromosome) {
	if c.FitnessScore != nil {
		r.scores = append(r.scores, *c.FitnessScore)
	}
}

func countTrue(_ context.Context, c *chromosome.Chromosome) (*int64, error) {
	var n int64
	for _, gene := range c.Genes {
		if gene.(bool) {
			n++
		}
	}
	return &n, nil
}

func TestNewRejectsMissingEndingCondition(t *testing.T) {
	_, err := New(
		WithGenotype(genotype.NewBinary(4, false)),
		WithFitness(fitness.FitnessFunc(countTrue)),
	)
	if err == nil {
		t.Fatalf("expected an error when no ending condition is configured")
	}
}

func TestSteepestAscentReachesTargetOnBinaryGenotype(t *testing.T) {
	strat, err := New(
		WithGenotype(genotype.NewBinary(10, false)),
		WithFitness(fitness.FitnessFunc(countTrue)),
		WithVariant(SteepestAscent),
		WithTargetFitnessScore(10),
		WithMaxStaleGenerations(50),
	)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	result, err := strat.Call(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	score := result.BestFitnessScore()
	if score == nil || *score != 10 {
		t.Fatalf("expected steepest ascent to find the all-true optimum (10), got %v", score)
	}
}

func TestStochasticVariantNeverGetsWorse(t *testing.T) {
	rec := &bestScoreRecorder{}
	strat, err := New(
		WithGenotype(genotype.NewBinary(10, false)),
		WithFitness(fitness.FitnessFunc(countTrue)),
		WithVariant(Stochastic),
		WithMaxStaleGenerations(20),
		WithReporter(rec),
	)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}

	prevScore := int64(-1)
	result, err := strat.Call(context.Background(), rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	for _, s := range rec.scores {
		if s < prevScore {
			t.Errorf("expected hill climbing to never regress, got %d after %d", s, prevScore)
		}
		prevScore = s
	}
	if score := result.BestFitnessScore(); score != nil && *score < prevScore {
		t.Errorf("expected hill climbing to never regress, got %d after starting from %d", *score, prevScore)
	}
}

func TestTerminatesOnMaxStaleGenerationsWithValidFitnessScoreAndNoScoreYet(t *testing.T) {
	alwaysNone := fitness.FitnessFunc(func(_ context.Context, c *chromosome.Chromosome) (*int64, error) {
		return nil, nil
	})
	strat, err := New(
		WithGenotype(genotype.NewBinary(5, false)),
		WithFitness(alwaysNone),
		WithVariant(SteepestAscent),
		WithMaxStaleGenerations(3),
		WithValidFitnessScore(10),
	)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	result, err := strat.Call(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
	if result.CurrentIteration() < 3 {
		t.Errorf("expected stale-generation termination to still fire with no fitness score ever set, got %d generations", result.CurrentIteration())
	}
}

func TestScalingTerminatesBelowMinScale(t *testing.T) {
	scales := [][2]int64{{-10, 10}, {-5, 5}, {-1, 1}}
	g := genotype.NewRange[int64](5, -100, 100, nil, scales, false)

	alwaysZero := fitness.FitnessFunc(func(_ context.Context, c *chromosome.Chromosome) (*int64, error) {
		zero := int64(0)
		return &zero, nil
	})

	strat, err := New(
		WithGenotype(g),
		WithFitness(alwaysZero),
		WithVariant(Stochastic),
		WithScaling(Scaling{BaseScale: 1.0, ScaleFactor: 0.1, MinScale: 0.001}),
	)
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	_, err = strat.Call(context.Background(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("unexpected run error: %v", err)
	}
}
