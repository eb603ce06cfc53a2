// Package sumcheck implements the multilinear sumcheck interactive proof
// spec.md §5 describes: ProveAsSubprotocol/VerifyAsSubprotocol run the
// round-by-round reduction of a claimed sum over the boolean hypercube down
// to a single evaluation claim at a random point, using package transcript
// for the Fiat–Shamir challenges. Grounded on original_source/latticefold/
// src/utils/sumcheck.rs's MLSumcheck/IPForMLSumcheck split (prove_round/
// sample_round/verify_round/check_and_generate_subclaim), reimplemented
// against package ring/mle since no pack example vendors stark-rings-poly.
package sumcheck

import (
	"fmt"

	latring "latticefold/ring"
)

// CombineFunc evaluates the integrand at one assignment of all summed-over
// MLEs. The caller supplies it; package sumcheck never interprets what it
// computes, only where to evaluate it.
type CombineFunc func(vals []latring.NTT) latring.NTT

// ProverMsg is the round polynomial g_i, given by its evaluations at
// 0, 1, ..., Degree.
type ProverMsg struct {
	Evaluations []latring.NTT
}

// VerifierMsg is the random challenge for one round.
type VerifierMsg struct {
	Randomness latring.NTT
}

// Proof is the full transcript of per-round prover messages.
type Proof struct {
	Msgs []ProverMsg
}

// SubClaim is what verification reduces the original claim to: the combined
// polynomial must equal ExpectedEvaluation at Point. The caller (folding
// verifier) checks this by evaluating its own MLEs/CombineFunc at Point.
type SubClaim struct {
	Point              []latring.NTT
	ExpectedEvaluation latring.NTT
}

// ErrMaxDegreeExceeded is returned when a round message does not carry
// exactly Degree+1 evaluations (more than the declared degree bound allows,
// or fewer).
var ErrMaxDegreeExceeded = fmt.Errorf("sumcheck: round polynomial exceeds declared max degree")

// SumCheckFailedError reports a round (or final) sum mismatch.
type SumCheckFailedError struct {
	Round    int
	Expected latring.NTT
	Got      latring.NTT
}

func (e *SumCheckFailedError) Error() string {
	return fmt.Sprintf("sumcheck: incorrect sum in round %d", e.Round)
}

// IncompleteProofError is returned when a proof is missing an expected round.
type IncompleteProofError struct {
	Round int
}

func (e *IncompleteProofError) Error() string {
	return fmt.Sprintf("sumcheck: proof is missing round %d", e.Round)
}
