// Package folding implements the folding prover and verifier of spec.md
// §4.4: reducing 2K linearized CCS instances (with matching witnesses) to
// one, driven by a sumcheck over a composite "g" polynomial and Fiat–Shamir
// challenges α, β, ζ, μ, ρ. Grounded on the original Rust nifs/folding.rs
// (kept as reference under original_source/), translated into the teacher's
// step-numbered, fmt.Errorf-wrapped function style (credential/params.go,
// cmd/showing/main.go).
package folding

import (
	"fmt"

	"latticefold/arith"
	"latticefold/commitment"
	"latticefold/mle"
	latring "latticefold/ring"
	"latticefold/sumcheck"
	"latticefold/transcript"
)

// Prove folds 2K LCCCS instances (and their matching witnesses and Mz MLEs)
// into one, returning the folded instance, its witness, and the proof the
// verifier needs to check the fold.
func Prove(
	tr *transcript.Transcript,
	p *latring.Profile,
	ccs *arith.CCS,
	params arith.Params,
	instances []*arith.LCCCS,
	witnesses []*arith.Witness,
	mzMLEs [][]*mle.DenseMultilinearExtension,
) (*arith.LCCCS, *arith.Witness, *arith.FoldingProof, error) {
	if err := sanityCheck(ccs, params.L); err != nil {
		return nil, nil, nil, &arith.FoldingError{Err: err}
	}
	twoK := 2 * params.K
	if len(instances) != twoK || len(witnesses) != twoK || len(mzMLEs) != twoK {
		return nil, nil, nil, &arith.FoldingError{Err: fmt.Errorf("%w: got %d instances, %d witnesses, %d mz groups, want %d", arith.ErrIncorrectLength, len(instances), len(witnesses), len(mzMLEs), twoK)}
	}
	e := p.Dimension()
	t := len(ccs.Matrices)

	// Step 1: squeeze (alpha, beta, zeta, mu) in that exact order.
	alpha, beta, zeta, mu := tr.SqueezeAlphaBetaZetaMu(p, ccs.S, params.K)

	// Step 2: materialize f_hat, build eq tables and the prechallenged
	// M1/M2 Horner combinations.
	fHatMles := make([][]*mle.DenseMultilinearExtension, twoK)
	for i, w := range witnesses {
		groups, err := w.TakeFHat()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("folding: taking f_hat for instance %d: %w", i, err)
		}
		fHatMles[i] = groups
	}

	eqRA, err := mle.EqTable(p, instances[0].R)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("folding: building eq(r_A,.): %w", err)
	}
	eqRB, err := mle.EqTable(p, instances[params.K].R)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("folding: building eq(r_B,.): %w", err)
	}
	eqBeta, err := mle.EqTable(p, beta)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("folding: building eq(beta,.): %w", err)
	}

	m1, err := hornerCombine(p, mzMLEs[:params.K], zeta[:params.K], t)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("folding: combining M1: %w", err)
	}
	m2, err := hornerCombine(p, mzMLEs[params.K:], zeta[params.K:], t)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("folding: combining M2: %w", err)
	}

	mles := make([]*mle.DenseMultilinearExtension, 0, 3+twoK*e+2)
	mles = append(mles, eqRA, eqRB, eqBeta)
	for i := 0; i < twoK; i++ {
		mles = append(mles, fHatMles[i]...)
	}
	mles = append(mles, m1, m2)

	// Step 3: run sumcheck on g with claimed sum claim_g1 + claim_g3.
	claimG1 := claimG(alpha, instances, func(inst *arith.LCCCS) []latring.NTT { return inst.V })
	claimG3 := claimG(zeta, instances, func(inst *arith.LCCCS) []latring.NTT { return inst.U })
	claimedSum := claimG1.Add(claimG3)

	combFn := buildCombFn(p, alpha, mu, params.K, e, params.BSmall)
	degree := int(2 * params.BSmall)
	proof, state := sumcheck.ProveAsSubprotocol(tr, p, mles, ccs.S, degree, combFn)
	if !sumcheck.ExtractSum(proof).Equal(claimedSum) {
		return nil, nil, nil, fmt.Errorf("folding: claimed sum does not match sumcheck's first round")
	}

	// Step 4: r_0 is the prover's final randomness.
	r0 := state.Randomness

	// Step 5: theta/eta evaluations, absorbed theta-then-eta.
	thetaS := make([][]latring.NTT, twoK)
	etaS := make([][]latring.NTT, twoK)
	for i := 0; i < twoK; i++ {
		theta, err := mle.EvaluateMLEs(fHatMles[i], r0)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("folding: evaluating theta for instance %d: %w", i, err)
		}
		thetaS[i] = theta
		eta, err := mle.EvaluateMLEs(mzMLEs[i], r0)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("folding: evaluating eta for instance %d: %w", i, err)
		}
		etaS[i] = eta
	}
	absorbMatrix(tr, thetaS)
	absorbMatrix(tr, etaS)

	// Step 6: squeeze rho, one per instance.
	rhoCR := tr.SqueezeShortChallenges(p, twoK)
	rho := toNTTSlice(rhoCR)

	// Step 7: recombine.
	v0 := make([]latring.NTT, e)
	for k := 0; k < e; k++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			acc = acc.Add(rho[i].Mul(thetaS[i][k]))
		}
		v0[k] = acc
	}
	u0 := make([]latring.NTT, t)
	for j := 0; j < t; j++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			acc = acc.Add(rho[i].Mul(etaS[i][j]))
		}
		u0[j] = acc
	}
	cmDim := len(instances[0].CM.Vals)
	cm0 := make([]latring.NTT, cmDim)
	for c := 0; c < cmDim; c++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			acc = acc.Add(rho[i].Mul(instances[i].CM.Vals[c]))
		}
		cm0[c] = acc
	}
	xDim := len(instances[0].X) + 1
	x0 := make([]latring.NTT, xDim)
	for idx := 0; idx < xDim; idx++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			full := append(append([]latring.NTT(nil), instances[i].X...), instances[i].H)
			acc = acc.Add(rho[i].Mul(full[idx]))
		}
		x0[idx] = acc
	}
	fDim := len(witnesses[0].F)
	f0 := make([]latring.NTT, fDim)
	for idx := 0; idx < fDim; idx++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			acc = acc.Add(rho[i].Mul(witnesses[i].F[idx]))
		}
		f0[idx] = acc
	}
	if len(x0) == 0 {
		return nil, nil, nil, &arith.FoldingError{Err: arith.ErrIncorrectLength}
	}
	h := x0[len(x0)-1]
	xw := x0[:len(x0)-1]

	folded := &arith.LCCCS{R: r0, V: v0, CM: commitment.Commitment{Vals: cm0}, U: u0, X: xw, H: h}
	newWitness, err := arith.FromF(p, f0, ccs.M, e)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("folding: building folded witness: %w", err)
	}
	return folded, newWitness, &arith.FoldingProof{SumcheckProof: proof, ThetaS: thetaS, EtaS: etaS}, nil
}

// Verify replays the prover's transcript operations, verifies the sumcheck,
// recomputes the expected g-evaluation from (alpha, mu, theta, e*, e_s,
// zeta, eta), and recombines the folded instance exactly as the prover did.
func Verify(
	tr *transcript.Transcript,
	p *latring.Profile,
	ccs *arith.CCS,
	params arith.Params,
	instances []*arith.LCCCS,
	proof *arith.FoldingProof,
) (*arith.LCCCS, error) {
	if err := sanityCheck(ccs, params.L); err != nil {
		return nil, &arith.FoldingError{Err: err}
	}
	twoK := 2 * params.K
	if len(instances) != twoK {
		return nil, &arith.FoldingError{Err: fmt.Errorf("%w: got %d instances, want %d", arith.ErrIncorrectLength, len(instances), twoK)}
	}
	e := p.Dimension()
	t := len(ccs.Matrices)

	alpha, beta, zeta, mu := tr.SqueezeAlphaBetaZetaMu(p, ccs.S, params.K)

	claimG1 := claimG(alpha, instances, func(inst *arith.LCCCS) []latring.NTT { return inst.V })
	claimG3 := claimG(zeta, instances, func(inst *arith.LCCCS) []latring.NTT { return inst.U })
	claimedSum := claimG1.Add(claimG3)

	degree := int(2 * params.BSmall)
	subclaim, err := sumcheck.VerifyAsSubprotocol(tr, p, ccs.S, degree, claimedSum, proof.SumcheckProof)
	if err != nil {
		return nil, &arith.FoldingError{Err: fmt.Errorf("sumcheck verification: %w", err)}
	}
	r0 := subclaim.Point

	eA, err := mle.EqEval(instances[0].R, r0)
	if err != nil {
		return nil, fmt.Errorf("folding: eq_eval(r_A, r0): %w", err)
	}
	eB, err := mle.EqEval(instances[params.K].R, r0)
	if err != nil {
		return nil, fmt.Errorf("folding: eq_eval(r_B, r0): %w", err)
	}
	eBeta, err := mle.EqEval(beta, r0)
	if err != nil {
		return nil, fmt.Errorf("folding: eq_eval(beta, r0): %w", err)
	}

	m1AtR0 := recombineEta(p, proof.EtaS[:params.K], zeta[:params.K], t)
	m2AtR0 := recombineEta(p, proof.EtaS[params.K:], zeta[params.K:], t)

	expected := recomputeGEvaluation(p, alpha, mu, proof.ThetaS, eA, eB, eBeta, m1AtR0, m2AtR0, params.K, e, params.BSmall)
	if !expected.Equal(subclaim.ExpectedEvaluation) {
		return nil, &arith.FoldingError{Err: &sumcheck.SumCheckFailedError{Expected: subclaim.ExpectedEvaluation, Got: expected}}
	}

	absorbMatrix(tr, proof.ThetaS)
	absorbMatrix(tr, proof.EtaS)

	rhoCR := tr.SqueezeShortChallenges(p, twoK)
	rho := toNTTSlice(rhoCR)

	v0 := make([]latring.NTT, e)
	for k := 0; k < e; k++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			acc = acc.Add(rho[i].Mul(proof.ThetaS[i][k]))
		}
		v0[k] = acc
	}
	u0 := make([]latring.NTT, t)
	for j := 0; j < t; j++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			acc = acc.Add(rho[i].Mul(proof.EtaS[i][j]))
		}
		u0[j] = acc
	}
	cmDim := len(instances[0].CM.Vals)
	cm0 := make([]latring.NTT, cmDim)
	for c := 0; c < cmDim; c++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			acc = acc.Add(rho[i].Mul(instances[i].CM.Vals[c]))
		}
		cm0[c] = acc
	}
	xDim := len(instances[0].X) + 1
	x0 := make([]latring.NTT, xDim)
	for idx := 0; idx < xDim; idx++ {
		acc := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			full := append(append([]latring.NTT(nil), instances[i].X...), instances[i].H)
			acc = acc.Add(rho[i].Mul(full[idx]))
		}
		x0[idx] = acc
	}
	if len(x0) == 0 {
		return nil, &arith.FoldingError{Err: arith.ErrIncorrectLength}
	}
	h := x0[len(x0)-1]
	xw := x0[:len(x0)-1]

	return &arith.LCCCS{R: r0, V: v0, CM: commitment.Commitment{Vals: cm0}, U: u0, X: xw, H: h}, nil
}

func hornerCombine(p *latring.Profile, mzMLEs [][]*mle.DenseMultilinearExtension, zeta []latring.NTT, t int) (*mle.DenseMultilinearExtension, error) {
	terms := make([]*mle.DenseMultilinearExtension, 0, len(mzMLEs)*t)
	coeffs := make([]latring.NTT, 0, len(mzMLEs)*t)
	for i, group := range mzMLEs {
		hc := hornerCoeffs(zeta[i], t)
		terms = append(terms, group...)
		coeffs = append(coeffs, hc...)
	}
	return mle.LinearCombine(p, terms, coeffs)
}

func recombineEta(p *latring.Profile, etaS [][]latring.NTT, zeta []latring.NTT, t int) latring.NTT {
	acc := p.ZeroNTT()
	for i, row := range etaS {
		hc := hornerCoeffs(zeta[i], t)
		for j := 0; j < t; j++ {
			acc = acc.Add(hc[j].Mul(row[j]))
		}
	}
	return acc
}

func recomputeGEvaluation(p *latring.Profile, alpha, mu []latring.NTT, thetaS [][]latring.NTT, eA, eB, eBeta, m1AtR0, m2AtR0 latring.NTT, k, e int, bSmall uint64) latring.NTT {
	twoK := 2 * k
	termA := p.ZeroNTT()
	for i := 0; i < twoK; i++ {
		eqR := eA
		if i >= k {
			eqR = eB
		}
		alphaPow := alpha[i]
		for kk := 0; kk < e; kk++ {
			f := thetaS[i][kk]
			termA = termA.Add(alphaPow.Mul(eqR).Mul(f))
			alphaPow = alphaPow.Mul(alpha[i])
		}
	}
	termB := eA.Mul(m1AtR0).Add(eB.Mul(m2AtR0))
	termC := p.ZeroNTT()
	for i := 0; i < k; i++ {
		inner := p.ZeroNTT()
		for kk := 0; kk < e; kk++ {
			inner = inner.Add(normPoly(p, thetaS[i][kk], bSmall))
		}
		termC = termC.Add(mu[i].Mul(eBeta).Mul(inner))
	}
	return termA.Add(termB).Add(termC)
}

func claimG(weights []latring.NTT, instances []*arith.LCCCS, sel func(*arith.LCCCS) []latring.NTT) latring.NTT {
	p := weights[0].Profile()
	acc := p.ZeroNTT()
	for i, inst := range instances {
		vec := sel(inst)
		pow := weights[i]
		for j := 0; j < len(vec); j++ {
			acc = acc.Add(pow.Mul(vec[j]))
			pow = pow.Mul(weights[i])
		}
	}
	return acc
}

func absorbMatrix(tr *transcript.Transcript, rows [][]latring.NTT) {
	for _, row := range rows {
		tr.AbsorbSlice(row)
	}
}

// sanityCheck re-runs the CCS shape invariant against the decomposition
// parameter L the folding protocol actually uses, per spec.md §4.4.1's
// Prove precondition and §4.4.2 step 1's verifier re-check.
func sanityCheck(ccs *arith.CCS, limbCount int) error {
	return ccs.SanityCheck(limbCount)
}

func toNTTSlice(crs []latring.CR) []latring.NTT {
	out := make([]latring.NTT, len(crs))
	for i, c := range crs {
		out[i] = c.ToNTT()
	}
	return out
}
