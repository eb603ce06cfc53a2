package mle

import (
	"fmt"

	latring "latticefold/ring"
)

// LinearCombine builds Σ_i coeffs[i]*terms[i] as a single multilinear
// extension, used by folding to Horner-combine the Mz MLEs into the
// "prechallenged" M1/M2 polynomials.
func LinearCombine(p *latring.Profile, terms []*DenseMultilinearExtension, coeffs []latring.NTT) (*DenseMultilinearExtension, error) {
	if len(terms) != len(coeffs) {
		return nil, fmt.Errorf("mle: linear_combine got %d terms and %d coeffs", len(terms), len(coeffs))
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("mle: linear_combine requires at least one term")
	}
	nvars := terms[0].NumVars
	size := 1 << uint(nvars)
	evals := make([]latring.NTT, size)
	for b := range evals {
		evals[b] = p.ZeroNTT()
	}
	for i, term := range terms {
		if term.NumVars != nvars {
			return nil, fmt.Errorf("mle: linear_combine term %d has %d vars, want %d", i, term.NumVars, nvars)
		}
		for b := 0; b < size; b++ {
			evals[b] = evals[b].Add(coeffs[i].Mul(term.Evals[b]))
		}
	}
	return New(p, nvars, evals)
}

// EqTable materializes eq(point, ·) as its own multilinear extension over
// the boolean hypercube, so the generic sumcheck prover can treat it exactly
// like any other summed-over operand.
func EqTable(p *latring.Profile, point []latring.NTT) (*DenseMultilinearExtension, error) {
	nvars := len(point)
	size := 1 << uint(nvars)
	one := p.OneNTT()
	evals := make([]latring.NTT, size)
	for b := 0; b < size; b++ {
		acc := one
		for i := 0; i < nvars; i++ {
			factor := one.Sub(point[i])
			if (b>>uint(i))&1 == 1 {
				factor = point[i]
			}
			acc = acc.Mul(factor)
		}
		evals[b] = acc
	}
	return New(p, nvars, evals)
}
