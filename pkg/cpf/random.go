package cpf

//go:generate mockgen -source=random.go -destination=mocks/source_mock.go -package=mocks Source

import (
	"math/rand/v2"
)

// Source supplies uniform integers in [0, n). *rand.Rand from math/rand/v2
// satisfies it; cryptographic strength is not required.
type Source interface {
	IntN(n int) int
}

// globalSource delegates to the math/rand/v2 top-level functions, which are
// safe for concurrent use.
type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Generator produces random valid CPF numbers from a Source.
// It is as safe for concurrent use as its Source.
type Generator struct {
	src Source
}

// NewGenerator returns a Generator drawing from src. A nil src uses the
// process-wide random source.
func NewGenerator(src Source) *Generator {
	if src == nil {
		src = globalSource{}
	}
	return &Generator{src: src}
}

// NewSeededGenerator returns a deterministic Generator. The same seed always
// yields the same sequence of numbers.
func NewSeededGenerator(seed uint64) *Generator {
	return NewGenerator(rand.New(rand.NewPCG(seed, seed)))
}

var defaultGenerator = NewGenerator(nil)

// Random returns a random valid CPF from a random uf.
//
//	Random() // e.g. 453.178.287-91
func Random() Cpf {
	return defaultGenerator.Random()
}

// RandomIn returns a random valid CPF whose region digit is that of uf.
// An empty uf picks one at random, as Random does.
//
// Errors: returns CodeInvalidRegion when uf is not empty and not in the table.
func RandomIn(uf Uf) (Cpf, error) {
	return defaultGenerator.RandomIn(uf)
}

// Random draws eight base digits, then a uf in canonical order.
func (g *Generator) Random() Cpf {
	base := g.base()
	c, err := FromUf(base, ufOrder[g.src.IntN(len(ufOrder))])
	if err != nil {
		// unreachable: base is eight digits and the uf comes from the table
		panic(err)
	}
	return c
}

// RandomIn draws eight base digits and completes them with uf, or with a
// random uf when uf is empty.
func (g *Generator) RandomIn(uf Uf) (Cpf, error) {
	if uf == "" {
		return g.Random(), nil
	}
	if !uf.IsValid() {
		return Cpf{}, invalidUf(uf)
	}
	return FromUf(g.base(), uf)
}

func (g *Generator) base() string {
	var digits [8]byte
	for i := range digits {
		digits[i] = byte('0' + g.src.IntN(10))
	}
	return string(digits[:])
}
