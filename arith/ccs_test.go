package arith

import (
	"testing"

	latring "latticefold/ring"
)

func identityMatrix(p *latring.Profile, m, n int) Matrix {
	mat := make(Matrix, m)
	for i := 0; i < m; i++ {
		row := make([]latring.NTT, n)
		for j := 0; j < n; j++ {
			if i == j {
				row[j] = p.OneNTT()
			} else {
				row[j] = p.ZeroNTT()
			}
		}
		mat[i] = row
	}
	return mat
}

func TestNewCCSAcceptsValidShape(t *testing.T) {
	p := latring.BabyBearLike
	ccs, err := NewCCS(4, 4, 0, 1, []Matrix{identityMatrix(p, 4, 4)})
	if err != nil {
		t.Fatalf("NewCCS: %v", err)
	}
	if ccs.S != 2 {
		t.Fatalf("S = %d, want 2", ccs.S)
	}
}

func TestNewCCSRejectsNonPowerOfTwoM(t *testing.T) {
	if _, err := NewCCS(3, 4, 0, 1, nil); err == nil {
		t.Fatalf("expected an error for m=3")
	}
}

func TestNewCCSRejectsTooSmallM(t *testing.T) {
	// (n-l-1)*limbCount = (9-0-1)*4 = 32, next_power_of_two = 32; m=4 is too small.
	if _, err := NewCCS(4, 9, 0, 4, nil); err == nil {
		t.Fatalf("expected an error for an undersized m")
	}
}

func TestNewCCSRejectsRaggedMatrix(t *testing.T) {
	p := latring.BabyBearLike
	bad := Matrix{
		{p.OneNTT(), p.ZeroNTT()},
		{p.OneNTT()},
	}
	if _, err := NewCCS(2, 2, 0, 1, []Matrix{bad}); err == nil {
		t.Fatalf("expected an error for a ragged matrix")
	}
}

func TestComputeMzMLEsIdentity(t *testing.T) {
	p := latring.BabyBearLike
	ccs, err := NewCCS(4, 4, 0, 1, []Matrix{identityMatrix(p, 4, 4)})
	if err != nil {
		t.Fatalf("NewCCS: %v", err)
	}
	z := []latring.NTT{p.FromUint64(1), p.FromUint64(2), p.FromUint64(3), p.FromUint64(4)}
	mzs, err := ComputeMzMLEs(ccs, z)
	if err != nil {
		t.Fatalf("ComputeMzMLEs: %v", err)
	}
	if len(mzs) != 1 {
		t.Fatalf("expected one Mz MLE, got %d", len(mzs))
	}
	for i, want := range z {
		if !mzs[0].Evals[i].Equal(want) {
			t.Fatalf("Mz[%d] = identity*z did not reproduce z[%d]", i, i)
		}
	}
}

func TestComputeMzMLEsWrongLength(t *testing.T) {
	p := latring.BabyBearLike
	ccs, err := NewCCS(4, 4, 0, 1, []Matrix{identityMatrix(p, 4, 4)})
	if err != nil {
		t.Fatalf("NewCCS: %v", err)
	}
	if _, err := ComputeMzMLEs(ccs, []latring.NTT{p.OneNTT()}); err == nil {
		t.Fatalf("expected a length-mismatch error")
	}
}
