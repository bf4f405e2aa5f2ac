package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"

	"github.com/aram/evolve/chromosome"
	"github.com/aram/evolve/genotype"
	"github.com/aram/evolve/operators/crossovers"
	"github.com/aram/evolve/operators/mutates"
	"github.com/aram/evolve/operators/selects"
	"github.com/aram/evolve/population"
	"github.com/aram/evolve/reporter"
	"github.com/aram/evolve/strategy/evolve"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
)

// City is one stop on the route; genes hold a city's index into this
// slice rather than the city itself, so the Unique genotype's swap-based
// mutation operates on plain int64 alleles.
type City struct {
	Name string
	X, Y float64
}

func loadCities(filename string) ([]City, error) {
	file, err := os.Open(filename)
	if err != nil {
		return defaultCities(), nil
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("CSV file must contain at least a header and one data row")
	}

	cities := make([]City, 0, len(records)-1)
	for i, record := range records {
		if i == 0 {
			continue
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("row %d: expected at least 3 columns (name, x, y), got %d", i+1, len(record))
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid x coordinate %q: %w", i+1, record[1], err)
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid y coordinate %q: %w", i+1, record[2], err)
		}
		cities = append(cities, City{Name: record[0], X: x, Y: y})
	}
	return cities, nil
}

func defaultCities() []City {
	return []City{
		{Name: "A", X: 0, Y: 0},
		{Name: "B", X: 10, Y: 0},
		{Name: "C", X: 10, Y: 10},
		{Name: "D", X: 0, Y: 10},
		{Name: "E", X: 5, Y: 15},
		{Name: "F", X: -5, Y: 5},
		{Name: "G", X: 15, Y: 5},
		{Name: "H", X: 5, Y: -5},
	}
}

func routeDistance(cities []City, genes []any) int64 {
	total := 0.0
	for i := range genes {
		a := cities[genes[i].(int64)]
		b := cities[genes[(i+1)%len(genes)].(int64)]
		dx, dy := a.X-b.X, a.Y-b.Y
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return int64(total * 1000)
}

type tspFitness struct {
	cities []City
}

func (f tspFitness) CalculateForChromosome(_ context.Context, c *chromosome.Chromosome) (*int64, error) {
	score := routeDistance(f.cities, c.Genes)
	return &score, nil
}

func runTSP(ctx context.Context, rng *rand.Rand, verbose bool) error {
	cities, err := loadCities("cmd/evolve/cities.csv")
	if err != nil {
		return err
	}
	log.Printf("tsp: searching a route over %d cities", len(cities))

	alleles := make([]any, len(cities))
	for i := range cities {
		alleles[i] = int64(i)
	}
	g := genotype.NewUnique(alleles, true)

	var rep reporter.Reporter = reporter.NoopReporter{}
	if verbose {
		logger := logrus.New()
		logger.SetLevel(logrus.DebugLevel)
		rep = reporter.NewLogReporter(logger)
	}

	strat, err := evolve.New(
		evolve.WithGenotype(g),
		evolve.WithTargetPopulationSize(60),
		evolve.WithFitness(tspFitness{cities: cities}),
		evolve.WithFitnessOrdering(population.Minimize),
		evolve.WithMaxStaleGenerations(300),
		evolve.WithSelect(selects.Elite{Rate: 0.5}),
		evolve.WithCrossover(crossovers.Clone{}),
		evolve.WithMutate(mutates.SingleGene{Probability: 0.3}),
		evolve.WithReporter(rep),
	)
	if err != nil {
		return err
	}

	result, err := strat.Call(ctx, rng)
	if err != nil {
		return err
	}

	best := result.BestGenes()
	route := make([]City, len(best))
	for i, gene := range best {
		route[i] = cities[gene.(int64)]
	}

	fmt.Printf("tsp: best route distance = %.3f\n", float64(*result.BestFitnessScore())/1000)
	if err := visualizeTSP(route, "tsp_route.svg"); err != nil {
		return fmt.Errorf("failed to visualize TSP route: %w", err)
	}
	fmt.Println("tsp: route visualization saved to tsp_route.svg")
	return nil
}
