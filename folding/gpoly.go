package folding

import (
	latring "latticefold/ring"
	"latticefold/sumcheck"
)

// buildCombFn returns the sumcheck combination function for the folding
// "g" polynomial, per spec.md §4.4.1 step 2: three additive virtual terms
// over vals laid out as [eqRA, eqRB, eqBeta, fHat(2K*E, i-major), M1, M2].
//
// term (a): Σ_i Σ_k α_i^{k+1} · eq(r_i,X) · f_hat_i_k(X), tied to claim_g1/v.
// term (b): eq(r_A,X)·M1(X) + eq(r_B,X)·M2(X), tied to claim_g3/u.
// term (c): Σ_{i<K} μ_i · eq(β,X) · Σ_k Π_{b=1}^{bSmall-1}(f_{i,k}²-b²)·f_{i,k},
// the norm-check term that sums to zero over the hypercube for an honest
// witness (no separate claim_g2, per §9).
func buildCombFn(p *latring.Profile, alpha, mu []latring.NTT, k, e int, bSmall uint64) sumcheck.CombineFunc {
	twoK := 2 * k
	return func(vals []latring.NTT) latring.NTT {
		eqRA, eqRB, eqBeta := vals[0], vals[1], vals[2]
		const fHatBase = 3
		m1 := vals[fHatBase+twoK*e]
		m2 := vals[fHatBase+twoK*e+1]

		termA := p.ZeroNTT()
		for i := 0; i < twoK; i++ {
			eqR := eqRA
			if i >= k {
				eqR = eqRB
			}
			alphaPow := alpha[i]
			for kk := 0; kk < e; kk++ {
				f := vals[fHatBase+i*e+kk]
				termA = termA.Add(alphaPow.Mul(eqR).Mul(f))
				alphaPow = alphaPow.Mul(alpha[i])
			}
		}

		termB := eqRA.Mul(m1).Add(eqRB.Mul(m2))

		termC := p.ZeroNTT()
		for i := 0; i < k; i++ {
			inner := p.ZeroNTT()
			for kk := 0; kk < e; kk++ {
				f := vals[fHatBase+i*e+kk]
				inner = inner.Add(normPoly(p, f, bSmall))
			}
			termC = termC.Add(mu[i].Mul(eqBeta).Mul(inner))
		}

		return termA.Add(termB).Add(termC)
	}
}

// normPoly computes Π_{b=1}^{bSmall-1}(f²-b²)·f, the small-norm indicator
// that vanishes exactly when f ∈ {-(bSmall-1), ..., bSmall-1}.
func normPoly(p *latring.Profile, f latring.NTT, bSmall uint64) latring.NTT {
	prod := p.OneNTT()
	for b := uint64(1); b < bSmall; b++ {
		bv := p.FromUint64(b)
		prod = prod.Mul(f.Mul(f).Sub(bv.Mul(bv)))
	}
	return prod.Mul(f)
}

func hornerCoeffs(zeta latring.NTT, count int) []latring.NTT {
	out := make([]latring.NTT, count)
	pow := zeta
	for j := 0; j < count; j++ {
		out[j] = pow
		pow = pow.Mul(zeta)
	}
	return out
}
