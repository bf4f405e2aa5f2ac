// Package chromosome defines the Chromosome value used throughout the
// engine: a genes sequence plus the bookkeeping (fitness score, age,
// recycling identity) every genotype variant shares.
package chromosome

import (
	"github.com/oklog/ulid/v2"
	"golang.org/x/exp/rand"
)

// Genes is the ordered sequence of allele values making up a chromosome.
// Concrete genotypes box their variant-specific allele type (bool, int64,
// float64, or a user-defined comparable symbol) into this slice.
type Genes []any

// Clone returns an independent copy of the genes sequence.
func (g Genes) Clone() Genes {
	out := make(Genes, len(g))
	copy(out, g)
	return out
}

// Chromosome is a genes value plus the bookkeeping the engine needs: an
// optional fitness score, the number of generations the chromosome has
// survived, and an opaque reference id used by the recycling pool.
type Chromosome struct {
	Genes        Genes
	FitnessScore *int64
	Age          int
	ReferenceID  string
}

// New allocates a fresh, tainted chromosome around the given genes.
func New(genes Genes) *Chromosome {
	return &Chromosome{Genes: genes, ReferenceID: newReferenceID()}
}

// Taint resets fitness_score to None and age to 0, as required whenever a
// chromosome's genes are mutated or recombined.
func (c *Chromosome) Taint() {
	c.FitnessScore = nil
	c.Age = 0
}

// CopyFrom overwrites this chromosome's genes from src and taints unless
// preserveBookkeeping is set, in which case fitness score and age are
// carried over unchanged (used by cloning paths that want an exact copy,
// e.g. elitism restoring population size from a parent).
func (c *Chromosome) CopyFrom(src *Chromosome, preserveBookkeeping bool) {
	if cap(c.Genes) < len(src.Genes) {
		c.Genes = make(Genes, len(src.Genes))
	} else {
		c.Genes = c.Genes[:len(src.Genes)]
	}
	copy(c.Genes, src.Genes)
	if preserveBookkeeping {
		c.FitnessScore = src.FitnessScore
		c.Age = src.Age
	} else {
		c.Taint()
	}
}

func newReferenceID() string {
	return ulid.Make().String()
}

// Pool is the per-genotype chromosome recycling bin: destroyed
// chromosomes are pushed back here, and constructors prefer popping from
// the bin over allocating. The bin is private to the
// single-threaded coordinator; parallel fitness evaluation never touches it.
type Pool struct {
	bin     []*Chromosome
	enabled bool
}

// NewPool creates a recycling bin. When enabled is false, Get always
// allocates and Put is a no-op, matching a genotype built with
// chromosome_recycling disabled.
func NewPool(enabled bool) *Pool {
	return &Pool{enabled: enabled}
}

// Get returns a chromosome with a Genes slice of exactly genesSize,
// preferring a recycled chromosome from the bin.
func (p *Pool) Get(genesSize int) *Chromosome {
	if p.enabled && len(p.bin) > 0 {
		c := p.bin[len(p.bin)-1]
		p.bin = p.bin[:len(p.bin)-1]
		if cap(c.Genes) < genesSize {
			c.Genes = make(Genes, genesSize)
		} else {
			c.Genes = c.Genes[:genesSize]
		}
		c.FitnessScore = nil
		c.Age = 0
		c.ReferenceID = newReferenceID()
		return c
	}
	return &Chromosome{Genes: make(Genes, genesSize), ReferenceID: newReferenceID()}
}

// Put returns a chromosome to the bin for future recycling. When the pool
// is disabled, the chromosome is simply dropped.
func (p *Pool) Put(c *Chromosome) {
	if p.enabled {
		p.bin = append(p.bin, c)
	}
}

// Size reports the number of chromosomes currently sitting in the bin.
func (p *Pool) Size() int {
	return len(p.bin)
}

// SeedRNG builds a deterministic random source from a user-supplied seed.
// A seed of 0 still produces a deterministic (if unremarkable) stream —
// callers wanting a nondeterministic run should seed from time-derived
// entropy themselves.
func SeedRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
