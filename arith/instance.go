package arith

import (
	"fmt"

	"latticefold/commitment"
	latring "latticefold/ring"
	"latticefold/sumcheck"
)

// Params bundles the decomposition parameters the folding protocol needs:
// K (number of instances per side, so 2K total), B and L (balanced-radix
// base and limb count) and BSmall (the small-norm bound the β term checks
// against). Plain struct literals/constants, per spec.md §6 no file formats.
type Params struct {
	K      int
	B      uint64
	L      int
	BSmall uint64
}

// LCCCS is a linearized CCS instance: evaluation point R, evaluation vector
// V of the f_hat extension, commitment CM, evaluation vector U of the
// constraint-product extension, public-input vector X, and the split-off
// tail coordinate H.
type LCCCS struct {
	R  []latring.NTT
	V  []latring.NTT
	CM commitment.Commitment
	U  []latring.NTT
	X  []latring.NTT
	H  latring.NTT
}

// FoldingProof is the non-interactive transcript the folding prover emits:
// the sumcheck proof plus the θ and η matrices (2K rows each).
type FoldingProof struct {
	SumcheckProof sumcheck.Proof
	ThetaS        [][]latring.NTT
	EtaS          [][]latring.NTT
}

// CSError wraps a constraint-system-shape failure.
type CSError struct {
	Err error
}

func (e *CSError) Error() string { return fmt.Sprintf("arith: constraint system: %v", e.Err) }
func (e *CSError) Unwrap() error { return e.Err }

// ErrIncorrectLength is returned when the folding prover/verifier receives
// the wrong number of instances, or recombination would yield an empty x.
var ErrIncorrectLength = fmt.Errorf("arith: incorrect number of instances or empty public input")

// FoldingError wraps one of the three folding failure modes named in
// spec.md §4.4: IncorrectLength, ConstraintSystem or a sumcheck failure.
type FoldingError struct {
	Err error
}

func (e *FoldingError) Error() string { return fmt.Sprintf("arith: folding: %v", e.Err) }
func (e *FoldingError) Unwrap() error { return e.Err }
