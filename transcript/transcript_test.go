package transcript

import (
	"testing"

	latring "latticefold/ring"
)

func TestSqueezeChallengeDeterministic(t *testing.T) {
	p := latring.BabyBearLike

	run := func() latring.NTT {
		tr := New("test-transcript")
		tr.Absorb(p.FromUint64(7))
		tr.Absorb(p.FromUint64(11))
		return tr.SqueezeChallenge(p)
	}

	a := run()
	b := run()
	if !a.Equal(b) {
		t.Fatalf("two transcripts fed identical absorbs produced different challenges")
	}
}

func TestSqueezeChallengesDiverge(t *testing.T) {
	p := latring.BabyBearLike
	tr := New("test-transcript")
	tr.Absorb(p.FromUint64(1))
	chals := tr.SqueezeChallenges(p, 3)
	if chals[0].Equal(chals[1]) || chals[1].Equal(chals[2]) {
		t.Fatalf("consecutive squeezes without absorbs must diverge")
	}
}

func TestSqueezeAlphaBetaZetaMuLengths(t *testing.T) {
	p := latring.BabyBearLike
	tr := New("folding")
	const logM, k = 4, 3
	alpha, beta, zeta, mu := tr.SqueezeAlphaBetaZetaMu(p, logM, k)
	if len(alpha) != 2*k {
		t.Fatalf("alpha: got %d, want %d", len(alpha), 2*k)
	}
	if len(beta) != logM {
		t.Fatalf("beta: got %d, want %d", len(beta), logM)
	}
	if len(zeta) != 2*k {
		t.Fatalf("zeta: got %d, want %d", len(zeta), 2*k)
	}
	if len(mu) != k {
		t.Fatalf("mu: got %d, want %d", len(mu), k)
	}
}

func TestAbsorbChangesFutureChallenges(t *testing.T) {
	p := latring.BabyBearLike

	tr1 := New("t")
	tr1.Absorb(p.FromUint64(1))
	c1 := tr1.SqueezeChallenge(p)

	tr2 := New("t")
	tr2.Absorb(p.FromUint64(2))
	c2 := tr2.SqueezeChallenge(p)

	if c1.Equal(c2) {
		t.Fatalf("distinct absorbed values must yield distinct challenges")
	}
}
