// Package selects implements the Select operator family: reducing a
// population to a crossover pool of selection_rate * target_population_size
// chromosomes.
package selects

import (
	"math"
	"sort"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/population"
	"golang.org/x/exp/rand"
)

// Select reduces a population to a crossover pool of exactly poolSize
// chromosomes (already computed from selection_rate by PoolSize).
type Select interface {
	SelectionRate() float64
	Call(pop *population.Population, poolSize int, ordering population.Ordering, rng *rand.Rand) *population.Population
}

// PoolSize computes the crossover pool size from a population size and a
// selection rate: rounded, at least 2 when the population is >= 2.
func PoolSize(populationSize int, selectionRate float64) int {
	if populationSize == 0 {
		return 0
	}
	size := int(math.Round(float64(populationSize) * selectionRate))
	if populationSize >= 2 && size < 2 {
		size = 2
	}
	if size > populationSize {
		size = populationSize
	}
	return size
}

func better(ordering population.Ordering, a, b *chromosome.Chromosome) bool {
	if a.FitnessScore == nil {
		return false
	}
	if b.FitnessScore == nil {
		return true
	}
	return ordering.Better(*a.FitnessScore, *b.FitnessScore)
}

// Elite sorts the population by fitness under the ordering and keeps the
// strongest poolSize chromosomes, dropping from the weak end.
type Elite struct {
	Rate float64
}

func (e Elite) SelectionRate() float64 { return e.Rate }

func (Elite) Call(pop *population.Population, poolSize int, ordering population.Ordering, _ *rand.Rand) *population.Population {
	sorted := append([]*chromosome.Chromosome(nil), pop.Chromosomes...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return better(ordering, sorted[i], sorted[j])
	})
	if poolSize > len(sorted) {
		poolSize = len(sorted)
	}
	return population.New(sorted[:poolSize])
}

// Tournament repeatedly draws Size chromosomes without replacement and
// keeps the best one, until the pool reaches poolSize. Each winner leaves
// the candidate set, so no chromosome enters the pool twice.
type Tournament struct {
	Size int
	Rate float64
}

func (t Tournament) SelectionRate() float64 { return t.Rate }

func (t Tournament) Call(pop *population.Population, poolSize int, ordering population.Ordering, rng *rand.Rand) *population.Population {
	n := pop.Size()
	if n == 0 {
		return population.New(nil)
	}
	k := t.Size
	if k <= 0 {
		k = 2
	}
	if k > n {
		k = n
	}
	available := make([]int, n)
	for i := range available {
		available[i] = i
	}
	out := make([]*chromosome.Chromosome, 0, poolSize)
	for len(out) < poolSize && len(available) > 0 {
		m := k
		if m > len(available) {
			m = len(available)
		}
		drawn := rng.Perm(len(available))[:m]
		winner := drawn[0]
		for _, j := range drawn[1:] {
			if better(ordering, pop.Chromosomes[available[j]], pop.Chromosomes[available[winner]]) {
				winner = j
			}
		}
		out = append(out, pop.Chromosomes[available[winner]])
		available[winner] = available[len(available)-1]
		available = available[:len(available)-1]
	}
	return population.New(out)
}
