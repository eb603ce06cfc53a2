package sumcheck

import (
	latring "latticefold/ring"
	"latticefold/mle"
	"latticefold/transcript"
)

// ExtractSum recovers the claimed sum from a proof's first round message:
// g_0(0) + g_0(1) is, by construction, the sum over the full hypercube.
func ExtractSum(proof Proof) latring.NTT {
	first := proof.Msgs[0]
	return first.Evaluations[0].Add(first.Evaluations[1])
}

// ProveAsSubprotocol runs the sumcheck prover against an existing transcript
// (rather than opening a fresh one), so it can be used as a building block
// inside a larger protocol. It returns the round-by-round proof and the
// prover's final state, whose Randomness field is the random evaluation
// point the caller opens mles at.
func ProveAsSubprotocol(tr *transcript.Transcript, p *latring.Profile, mles []*mle.DenseMultilinearExtension, nvars, degree int, combFn CombineFunc) (Proof, *ProverState) {
	tr.Absorb(p.FromUint64(uint64(nvars)))
	tr.Absorb(p.FromUint64(uint64(degree)))

	state := proverInit(p, mles, nvars, degree, combFn)
	var prevChallenge *latring.NTT
	msgs := make([]ProverMsg, 0, nvars)
	for i := 0; i < nvars; i++ {
		msg := proveRound(state, prevChallenge)
		tr.AbsorbSlice(msg.Evaluations)
		msgs = append(msgs, msg)
		r := tr.SqueezeChallenge(p)
		prevChallenge = &r
	}
	state.Randomness = append(state.Randomness, *prevChallenge)

	return Proof{Msgs: msgs}, state
}

// VerifyAsSubprotocol replays the same transcript operations the prover
// performed and reduces claimedSum to a SubClaim the caller must check
// against its own oracle (evaluating mles/combFn at SubClaim.Point).
func VerifyAsSubprotocol(tr *transcript.Transcript, p *latring.Profile, nvars, degree int, claimedSum latring.NTT, proof Proof) (SubClaim, error) {
	tr.Absorb(p.FromUint64(uint64(nvars)))
	tr.Absorb(p.FromUint64(uint64(degree)))

	state := verifierInit(p, nvars, degree, claimedSum)
	for i := 0; i < nvars; i++ {
		if i >= len(proof.Msgs) {
			return SubClaim{}, &IncompleteProofError{Round: i}
		}
		msg := proof.Msgs[i]
		tr.AbsorbSlice(msg.Evaluations)
		if _, err := verifyRound(msg, state, tr); err != nil {
			return SubClaim{}, err
		}
	}
	return SubClaim{Point: state.Randomness, ExpectedEvaluation: state.Expected}, nil
}
