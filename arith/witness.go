package arith

import (
	"fmt"

	"latticefold/mle"
	latring "latticefold/ring"
)

// ErrFHatAlreadyTaken is returned by TakeFHat on a witness whose f_hat table
// has already been moved out once. Models the Rust original's move
// semantics as a nil-once sentinel: re-taking a consumed f_hat is a logic
// error, not a recoverable condition.
var ErrFHatAlreadyTaken = fmt.Errorf("arith: f_hat has already been taken from this witness")

// Witness holds one prover witness: its coefficient-form vector F (stored
// already promoted to NTT, since Witness is generic over the ring
// representation per spec.md §3) and a lazily-materialized, single-use
// table of E multilinear extensions, one per limb of the balanced-radix
// decomposition, each over S = log2(M) variables.
type Witness struct {
	Profile *latring.Profile
	F       []latring.NTT
	m, e    int

	fHat      []*mle.DenseMultilinearExtension
	fHatTaken bool
}

// NewWitness builds a witness from its flat coefficient vector, reshaped
// row-major as m hypercube points of e limb coordinates each (len(f) must
// equal m*e).
func NewWitness(p *latring.Profile, f []latring.NTT, m, e int) (*Witness, error) {
	if len(f) != m*e {
		return nil, fmt.Errorf("arith: witness has length %d, want m*e=%d", len(f), m*e)
	}
	return &Witness{Profile: p, F: f, m: m, e: e}, nil
}

// TakeFHat lazily builds (on first call) and moves out the witness's
// multilinear-extension cache. A second call returns ErrFHatAlreadyTaken.
func (w *Witness) TakeFHat() ([]*mle.DenseMultilinearExtension, error) {
	if w.fHatTaken {
		return nil, ErrFHatAlreadyTaken
	}
	if w.fHat == nil {
		groups := make([]*mle.DenseMultilinearExtension, w.e)
		s := log2(w.m)
		for k := 0; k < w.e; k++ {
			evals := make([]latring.NTT, w.m)
			for b := 0; b < w.m; b++ {
				evals[b] = w.F[b*w.e+k]
			}
			group, err := mle.New(w.Profile, s, evals)
			if err != nil {
				return nil, fmt.Errorf("arith: building f_hat group %d: %w", k, err)
			}
			groups[k] = group
		}
		w.fHat = groups
	}
	out := w.fHat
	w.fHat = nil
	w.fHatTaken = true
	return out, nil
}

// FromF constructs a fresh witness (f_hat not yet materialized) from a flat
// coefficient-form vector, matching spec.md §3's "Witness::from_f".
func FromF(p *latring.Profile, f []latring.NTT, m, e int) (*Witness, error) {
	return NewWitness(p, f, m, e)
}
