package arith

import (
	"testing"

	latring "latticefold/ring"
)

func TestTakeFHatReshapesColumnMajor(t *testing.T) {
	p := latring.BabyBearLike
	const m, e = 4, 2
	f := make([]latring.NTT, m*e)
	for i := range f {
		f[i] = p.FromUint64(uint64(i))
	}
	w, err := NewWitness(p, f, m, e)
	if err != nil {
		t.Fatalf("NewWitness: %v", err)
	}
	groups, err := w.TakeFHat()
	if err != nil {
		t.Fatalf("TakeFHat: %v", err)
	}
	if len(groups) != e {
		t.Fatalf("expected %d groups, got %d", e, len(groups))
	}
	for k := 0; k < e; k++ {
		for b := 0; b < m; b++ {
			want := f[b*e+k]
			if !groups[k].Evals[b].Equal(want) {
				t.Fatalf("group %d point %d: got mismatch", k, b)
			}
		}
	}
}

func TestTakeFHatSecondCallFails(t *testing.T) {
	p := latring.BabyBearLike
	const m, e = 2, 2
	f := make([]latring.NTT, m*e)
	for i := range f {
		f[i] = p.FromUint64(uint64(i))
	}
	w, err := NewWitness(p, f, m, e)
	if err != nil {
		t.Fatalf("NewWitness: %v", err)
	}
	if _, err := w.TakeFHat(); err != nil {
		t.Fatalf("first TakeFHat: %v", err)
	}
	if _, err := w.TakeFHat(); err != ErrFHatAlreadyTaken {
		t.Fatalf("expected ErrFHatAlreadyTaken, got %v", err)
	}
}

func TestNewWitnessWrongLength(t *testing.T) {
	p := latring.BabyBearLike
	if _, err := NewWitness(p, make([]latring.NTT, 3), 2, 2); err == nil {
		t.Fatalf("expected a length-mismatch error")
	}
}
