package genotype

import (
	"github.com/aram/evolve/allele"
	"github.com/aram/evolve/chromosome"
)

// StaticMatrix genes behave like Range, with chromosome recycling always
// enabled and the pool pre-warmed with capacity rows of genesSize genes,
// handed out and recycled through the pool exactly as Range does. Each
// pre-allocated row is its own slice; the rows do not share one
// contiguous backing matrix. StaticMatrix delegates every operation to an
// embedded Range and differs only in that pre-warming.
type StaticMatrix[T allele.Number] struct {
	*Range[T]
}

// NewStaticMatrix builds a StaticMatrix genotype and pre-allocates
// capacity recyclable chromosome rows. Chromosomes taken from the pool
// reuse a row's genes slice; ChromosomeConstructor still allocates a
// temporary genes slice and a new reference id on every call.
func NewStaticMatrix[T allele.Number](genesSize int, min, max T, mutationRange *[2]T, capacity int) *StaticMatrix[T] {
	r := NewRange(genesSize, min, max, mutationRange, nil, true)
	m := &StaticMatrix[T]{Range: r}
	warm := make([]*chromosome.Chromosome, 0, capacity)
	for i := 0; i < capacity; i++ {
		warm = append(warm, r.pool.Get(genesSize))
	}
	for _, c := range warm {
		r.pool.Put(c)
	}
	return m
}
