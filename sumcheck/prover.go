package sumcheck

import (
	latring "latticefold/ring"
	"latticefold/mle"
)

// ProverState tracks the prover's side of the reduction: one evaluation
// table per summed MLE, shrinking by half at the start of every round once
// the previous round's challenge is known.
type ProverState struct {
	Profile    *latring.Profile
	NumVars    int
	Degree     int
	Round      int
	Randomness []latring.NTT
	tables     [][]latring.NTT
	combFn     CombineFunc
}

func proverInit(p *latring.Profile, mles []*mle.DenseMultilinearExtension, nvars, degree int, combFn CombineFunc) *ProverState {
	tables := make([][]latring.NTT, len(mles))
	for i, m := range mles {
		tables[i] = append([]latring.NTT(nil), m.Evals...)
	}
	return &ProverState{
		Profile: p,
		NumVars: nvars,
		Degree:  degree,
		tables:  tables,
		combFn:  combFn,
	}
}

// proveRound folds in the previous round's challenge (if any) and returns
// the next round's polynomial, given by its evaluations at 0..Degree.
func proveRound(state *ProverState, prevChallenge *latring.NTT) ProverMsg {
	if prevChallenge != nil {
		state.Randomness = append(state.Randomness, *prevChallenge)
		for i, t := range state.tables {
			half := len(t) / 2
			next := make([]latring.NTT, half)
			for b := 0; b < half; b++ {
				lo, hi := t[2*b], t[2*b+1]
				next[b] = lo.Add(hi.Sub(lo).Mul(*prevChallenge))
			}
			state.tables[i] = next
		}
	}
	state.Round++

	half := len(state.tables[0]) / 2
	evaluations := make([]latring.NTT, state.Degree+1)
	vals := make([]latring.NTT, len(state.tables))
	for e := 0; e <= state.Degree; e++ {
		eField := state.Profile.FromUint64(uint64(e))
		sum := state.Profile.ZeroNTT()
		for b := 0; b < half; b++ {
			for i, t := range state.tables {
				lo, hi := t[2*b], t[2*b+1]
				vals[i] = lo.Add(hi.Sub(lo).Mul(eField))
			}
			sum = sum.Add(state.combFn(vals))
		}
		evaluations[e] = sum
	}
	return ProverMsg{Evaluations: evaluations}
}
