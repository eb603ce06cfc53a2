package sumcheck

import (
	latring "latticefold/ring"
	"latticefold/transcript"
)

// VerifierState tracks the verifier's side of the reduction: the running
// expected sum for the current round and the challenges issued so far.
type VerifierState struct {
	Profile    *latring.Profile
	NumVars    int
	Degree     int
	Round      int
	Expected   latring.NTT
	Randomness []latring.NTT
}

func verifierInit(p *latring.Profile, nvars, degree int, claimedSum latring.NTT) *VerifierState {
	return &VerifierState{Profile: p, NumVars: nvars, Degree: degree, Expected: claimedSum}
}

// verifyRound checks one round's message against the running expected sum,
// squeezes this round's challenge, and updates the expected sum to the
// round polynomial's value at that challenge.
func verifyRound(msg ProverMsg, state *VerifierState, tr *transcript.Transcript) (VerifierMsg, error) {
	if len(msg.Evaluations) != state.Degree+1 {
		return VerifierMsg{}, ErrMaxDegreeExceeded
	}
	sum := msg.Evaluations[0].Add(msg.Evaluations[1])
	if !sum.Equal(state.Expected) {
		return VerifierMsg{}, &SumCheckFailedError{Round: state.Round, Expected: state.Expected, Got: sum}
	}
	r := tr.SqueezeChallenge(state.Profile)
	next, err := interpolateAt(state.Profile, msg.Evaluations, r)
	if err != nil {
		return VerifierMsg{}, err
	}
	state.Expected = next
	state.Randomness = append(state.Randomness, r)
	state.Round++
	return VerifierMsg{Randomness: r}, nil
}

// interpolateAt evaluates, at x, the unique degree-len(evals)-1 polynomial
// through (0, evals[0]), (1, evals[1]), ..., via Lagrange interpolation.
// Safe because the interpolation nodes 0..Degree and their pairwise
// differences are small nonzero constants, always invertible mod the prime
// profile modulus.
func interpolateAt(p *latring.Profile, evals []latring.NTT, x latring.NTT) (latring.NTT, error) {
	n := len(evals)
	nodes := make([]latring.NTT, n)
	for i := range nodes {
		nodes[i] = p.FromUint64(uint64(i))
	}
	result := p.ZeroNTT()
	for i := 0; i < n; i++ {
		numerator := p.OneNTT()
		denominator := p.OneNTT()
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			numerator = numerator.Mul(x.Sub(nodes[j]))
			denominator = denominator.Mul(nodes[i].Sub(nodes[j]))
		}
		invDenom, err := denominator.Inverse()
		if err != nil {
			return latring.NTT{}, err
		}
		term := evals[i].Mul(numerator).Mul(invDenom)
		result = result.Add(term)
	}
	return result, nil
}
