package population

import (
	"testing"

	"github.com/aram/evolve/chromosome"
)

func scored(score int64) *chromosome.Chromosome {
	return &chromosome.Chromosome{FitnessScore: &score}
}

func TestOrderingBetter(t *testing.T) {
	if !Maximize.Better(5, 3) {
		t.Errorf("Maximize.Better(5, 3) should be true")
	}
	if Maximize.Better(3, 5) {
		t.Errorf("Maximize.Better(3, 5) should be false")
	}
	if !Minimize.Better(3, 5) {
		t.Errorf("Minimize.Better(3, 5) should be true")
	}
	if Minimize.Better(5, 3) {
		t.Errorf("Minimize.Better(5, 3) should be false")
	}
}

func TestBestSkipsUnscored(t *testing.T) {
	pop := New([]*chromosome.Chromosome{
		{FitnessScore: nil},
		scored(10),
		{FitnessScore: nil},
	})
	best := pop.Best(Maximize, false)
	if best == nil || *best.FitnessScore != 10 {
		t.Fatalf("expected best score 10, got %v", best)
	}
}

func TestBestAllUnscoredReturnsNil(t *testing.T) {
	pop := New([]*chromosome.Chromosome{{}, {}})
	if best := pop.Best(Maximize, false); best != nil {
		t.Errorf("expected nil best for an all-unscored population, got %v", best)
	}
}

func TestBestTieBreakRespectsReplaceOnEqual(t *testing.T) {
	a, b := scored(5), scored(5)
	pop := New([]*chromosome.Chromosome{a, b})

	if got := pop.Best(Maximize, false); got != a {
		t.Errorf("expected to keep the earlier chromosome on a tie when replaceOnEqual is false")
	}
	if got := pop.Best(Maximize, true); got != b {
		t.Errorf("expected to replace with the later chromosome on a tie when replaceOnEqual is true")
	}
}

func TestFitnessScoreCardinality(t *testing.T) {
	pop := New([]*chromosome.Chromosome{
		scored(1), scored(1), scored(2), {FitnessScore: nil},
	})
	if got := pop.FitnessScoreCardinality(); got != 2 {
		t.Errorf("expected cardinality 2, got %d", got)
	}
}

func TestStandardDeviationEmptyIsZero(t *testing.T) {
	pop := New(nil)
	if got := pop.StandardDeviation(); got != 0 {
		t.Errorf("expected 0 stddev for an empty population, got %v", got)
	}
}

func TestStandardDeviationUniformIsZero(t *testing.T) {
	pop := New([]*chromosome.Chromosome{scored(4), scored(4), scored(4)})
	if got := pop.StandardDeviation(); got != 0 {
		t.Errorf("expected 0 stddev when all scores match, got %v", got)
	}
}

func TestStandardDeviationKnownValue(t *testing.T) {
	pop := New([]*chromosome.Chromosome{scored(2), scored(4), scored(4), scored(4), scored(5), scored(5), scored(7), scored(9)})
	got := pop.StandardDeviation()
	want := 2.0
	if diff := got - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("StandardDeviation() = %v, want approximately %v", got, want)
	}
}
