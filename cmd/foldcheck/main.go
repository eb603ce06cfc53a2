// Command foldcheck runs one folding round (prove then verify) against a
// toy CCS instance and reports whether the verifier accepted, mirroring the
// shape of cmd/showing's build-then-verify demo.
package main

import (
	"log"
	"time"

	"github.com/tuneinsight/lattigo/v4/utils"

	"latticefold/arith"
	"latticefold/commitment"
	"latticefold/folding"
	"latticefold/mle"
	latring "latticefold/ring"
	"latticefold/transcript"
)

func main() {
	log.Printf("[foldcheck] starting folding demo")

	p := latring.BabyBearLike
	prng, err := utils.NewPRNG()
	if err != nil {
		log.Fatalf("prng: %v", err)
	}

	const m, n = 4, 4
	e := p.Dimension()

	identity := make([]arith.Matrix, 1)
	identity[0] = make(arith.Matrix, m)
	for i := 0; i < m; i++ {
		row := make([]latring.NTT, n)
		for j := 0; j < n; j++ {
			if i == j {
				row[j] = p.OneNTT()
			} else {
				row[j] = p.ZeroNTT()
			}
		}
		identity[0][i] = row
	}
	ccs, err := arith.NewCCS(m, n, 0, 1, identity)
	if err != nil {
		log.Fatalf("build ccs: %v", err)
	}

	params := arith.Params{K: 1, B: 4, L: 1, BSmall: 2}
	twoK := 2 * params.K

	rA := []latring.NTT{p.RandNTT(prng), p.RandNTT(prng)}
	rB := []latring.NTT{p.RandNTT(prng), p.RandNTT(prng)}

	instances := make([]*arith.LCCCS, twoK)
	witnesses := make([]*arith.Witness, twoK)
	mzMLEs := make([][]*mle.DenseMultilinearExtension, twoK)

	for i := 0; i < twoK; i++ {
		r := rA
		if i >= params.K {
			r = rB
		}

		f := smallWitness(p, m, e, i)
		w, err := arith.NewWitness(p, f, m, e)
		if err != nil {
			log.Fatalf("build witness %d: %v", i, err)
		}
		witnesses[i] = w

		fHat := buildFHat(p, f, m, e)
		v := make([]latring.NTT, e)
		for k := 0; k < e; k++ {
			val, err := fHat[k].Evaluate(r)
			if err != nil {
				log.Fatalf("evaluate f_hat %d/%d: %v", i, k, err)
			}
			v[k] = val
		}

		z := make([]latring.NTT, n)
		for j := range z {
			z[j] = p.FromUint64(uint64(i*n + j + 1))
		}
		mz, err := arith.ComputeMzMLEs(ccs, z)
		if err != nil {
			log.Fatalf("compute mz %d: %v", i, err)
		}
		mzMLEs[i] = mz

		u, err := mle.EvaluateMLEs(mz, r)
		if err != nil {
			log.Fatalf("evaluate mz %d: %v", i, err)
		}

		instances[i] = &arith.LCCCS{
			R:  r,
			V:  v,
			CM: commitment.Commitment{Vals: []latring.NTT{p.FromUint64(uint64(i + 1))}},
			U:  u,
			X:  []latring.NTT{},
			H:  p.FromUint64(uint64(i + 1)),
		}
	}

	log.Printf("[foldcheck] folding %d instances", twoK)
	proveStart := time.Now()
	tr := transcript.New("foldcheck")
	_, _, proof, err := folding.Prove(tr, p, ccs, params, instances, witnesses, mzMLEs)
	if err != nil {
		log.Fatalf("prove: %v", err)
	}
	proveDur := time.Since(proveStart)

	verifyStart := time.Now()
	vtr := transcript.New("foldcheck")
	folded, err := folding.Verify(vtr, p, ccs, params, instances, proof)
	if err != nil {
		log.Fatalf("verify failed: %v", err)
	}
	verifyDur := time.Since(verifyStart)

	log.Printf("[foldcheck] fold accepted: prove=%s verify=%s folded_u_len=%d", proveDur, verifyDur, len(folded.U))
}

func smallWitness(p *latring.Profile, m, e, seed int) []latring.NTT {
	out := make([]latring.NTT, m*e)
	vals := []latring.NTT{p.ZeroNTT(), p.OneNTT(), p.OneNTT().Neg()}
	for i := range out {
		out[i] = vals[(i+seed)%len(vals)]
	}
	return out
}

func buildFHat(p *latring.Profile, f []latring.NTT, m, e int) []*mle.DenseMultilinearExtension {
	s := 0
	for (1 << uint(s)) < m {
		s++
	}
	groups := make([]*mle.DenseMultilinearExtension, e)
	for k := 0; k < e; k++ {
		evals := make([]latring.NTT, m)
		for b := 0; b < m; b++ {
			evals[b] = f[b*e+k]
		}
		group, err := mle.New(p, s, evals)
		if err != nil {
			log.Fatalf("build f_hat group %d: %v", k, err)
		}
		groups[k] = group
	}
	return groups
}
