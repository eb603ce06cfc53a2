package sumcheck

import (
	"testing"

	"latticefold/mle"
	latring "latticefold/ring"
	"latticefold/transcript"
)

// buildProductMLEs returns nvars-variable MLEs f and g together with the sum
// of f(b)*g(b) over the boolean hypercube, so combFn = f*g is a degree-2
// round polynomial sumcheck can reduce exactly.
func buildProductMLEs(t *testing.T, p *latring.Profile, nvars int) (*mle.DenseMultilinearExtension, *mle.DenseMultilinearExtension, latring.NTT) {
	t.Helper()
	size := 1 << uint(nvars)
	fEvals := make([]latring.NTT, size)
	gEvals := make([]latring.NTT, size)
	sum := p.ZeroNTT()
	for i := 0; i < size; i++ {
		fEvals[i] = p.FromUint64(uint64(i + 1))
		gEvals[i] = p.FromUint64(uint64(2*i + 1))
		sum = sum.Add(fEvals[i].Mul(gEvals[i]))
	}
	f, err := mle.New(p, nvars, fEvals)
	if err != nil {
		t.Fatalf("New f: %v", err)
	}
	g, err := mle.New(p, nvars, gEvals)
	if err != nil {
		t.Fatalf("New g: %v", err)
	}
	return f, g, sum
}

func productCombFn(vals []latring.NTT) latring.NTT {
	return vals[0].Mul(vals[1])
}

func TestProveVerifyRoundTrip(t *testing.T) {
	p := latring.BabyBearLike
	const nvars = 3
	f, g, sum := buildProductMLEs(t, p, nvars)

	proverTr := transcript.New("sumcheck-test")
	proof, state := ProveAsSubprotocol(proverTr, p, []*mle.DenseMultilinearExtension{f, g}, nvars, 2, productCombFn)

	verifierTr := transcript.New("sumcheck-test")
	subclaim, err := VerifyAsSubprotocol(verifierTr, p, nvars, 2, sum, proof)
	if err != nil {
		t.Fatalf("VerifyAsSubprotocol: %v", err)
	}

	fAtR, err := f.Evaluate(subclaim.Point)
	if err != nil {
		t.Fatalf("f.Evaluate: %v", err)
	}
	gAtR, err := g.Evaluate(subclaim.Point)
	if err != nil {
		t.Fatalf("g.Evaluate: %v", err)
	}
	got := productCombFn([]latring.NTT{fAtR, gAtR})
	if !got.Equal(subclaim.ExpectedEvaluation) {
		t.Fatalf("oracle check failed: f(r)*g(r) != subclaim.ExpectedEvaluation")
	}
	if len(state.Randomness) != nvars {
		t.Fatalf("prover randomness length = %d, want %d", len(state.Randomness), nvars)
	}
}

func TestVerifyRejectsWrongSum(t *testing.T) {
	p := latring.BabyBearLike
	const nvars = 3
	f, g, sum := buildProductMLEs(t, p, nvars)

	proverTr := transcript.New("sumcheck-test")
	proof, _ := ProveAsSubprotocol(proverTr, p, []*mle.DenseMultilinearExtension{f, g}, nvars, 2, productCombFn)

	wrongSum := sum.Add(p.FromUint64(1))
	verifierTr := transcript.New("sumcheck-test")
	if _, err := VerifyAsSubprotocol(verifierTr, p, nvars, 2, wrongSum, proof); err == nil {
		t.Fatalf("expected verification failure for a tampered claimed sum")
	}
}

func TestExtractSum(t *testing.T) {
	p := latring.BabyBearLike
	const nvars = 2
	f, g, sum := buildProductMLEs(t, p, nvars)

	tr := transcript.New("sumcheck-test")
	proof, _ := ProveAsSubprotocol(tr, p, []*mle.DenseMultilinearExtension{f, g}, nvars, 2, productCombFn)

	if !ExtractSum(proof).Equal(sum) {
		t.Fatalf("ExtractSum did not recover the claimed sum")
	}
}
