// Package mle implements dense multilinear extensions over the NTT-domain
// ring elements defined in package ring. spec.md §5's sumcheck subprotocol is
// built entirely on top of this representation, but no pack example carries
// an MLE library (stark-rings-poly's DenseMultilinearExtension referenced by
// original_source/latticefold/src/utils/sumcheck.rs is the external crate the
// Rust original depends on, not code shipped in this pack) so this package is
// hand-rolled standard-library arithmetic over package ring's field type,
// following the teacher's flat, struct-plus-methods style (DECS/decs_types.go).
package mle

import (
	"fmt"

	latring "latticefold/ring"
)

// DenseMultilinearExtension holds the evaluations of a multilinear
// polynomial over the boolean hypercube {0,1}^NumVars, little-endian: the
// evaluation at hypercube point b is Evals[b] where bit i of b selects
// variable i.
type DenseMultilinearExtension struct {
	Profile *latring.Profile
	NumVars int
	Evals   []latring.NTT
}

// New builds a dense multilinear extension from its hypercube evaluations.
// len(evals) must be 2^numVars.
func New(p *latring.Profile, numVars int, evals []latring.NTT) (*DenseMultilinearExtension, error) {
	want := 1 << uint(numVars)
	if len(evals) != want {
		return nil, fmt.Errorf("mle: expected %d evaluations for %d variables, got %d", want, numVars, len(evals))
	}
	return &DenseMultilinearExtension{Profile: p, NumVars: numVars, Evals: evals}, nil
}

// Evaluate computes the multilinear extension at an arbitrary point in
// (R^E)^NumVars by repeated variable-fixing: at each step it halves the
// table, replacing the pair (lo, hi) for the next variable with
// lo + point_i*(hi-lo).
func (m *DenseMultilinearExtension) Evaluate(point []latring.NTT) (latring.NTT, error) {
	if len(point) != m.NumVars {
		return latring.NTT{}, fmt.Errorf("mle: point has %d coordinates, want %d", len(point), m.NumVars)
	}
	table := append([]latring.NTT(nil), m.Evals...)
	for _, r := range point {
		half := len(table) / 2
		next := make([]latring.NTT, half)
		for i := 0; i < half; i++ {
			lo, hi := table[2*i], table[2*i+1]
			next[i] = lo.Add(hi.Sub(lo).Mul(r))
		}
		table = next
	}
	return table[0], nil
}

// EqEval computes eq(x, y) = prod_i (x_i*y_i + (1-x_i)*(1-y_i)), the
// multilinear extension of equality, used to tie sumcheck claims back to a
// fixed evaluation point.
func EqEval(x, y []latring.NTT) (latring.NTT, error) {
	if len(x) != len(y) {
		return latring.NTT{}, fmt.Errorf("mle: eq_eval operands have mismatched lengths %d != %d", len(x), len(y))
	}
	if len(x) == 0 {
		return latring.NTT{}, fmt.Errorf("mle: eq_eval requires at least one coordinate")
	}
	p := x[0].Profile()
	acc := p.OneNTT()
	one := p.OneNTT()
	for i := range x {
		xi, yi := x[i], y[i]
		term := xi.Mul(yi).Add(one.Sub(xi).Mul(one.Sub(yi)))
		acc = acc.Mul(term)
	}
	return acc, nil
}

// EvaluateMLEs evaluates every MLE in mles at the same point, in order,
// returning an error if any operand's variable count mismatches the point.
func EvaluateMLEs(mles []*DenseMultilinearExtension, point []latring.NTT) ([]latring.NTT, error) {
	out := make([]latring.NTT, len(mles))
	for i, m := range mles {
		v, err := m.Evaluate(point)
		if err != nil {
			return nil, fmt.Errorf("mle: evaluating operand %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
