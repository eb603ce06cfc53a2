package ring

import "testing"

func TestToNTTToCRRoundTrip(t *testing.T) {
	p := BabyBearLike
	x := p.CRFromCoeffs([]uint64{1, 2, 3, 4})
	back := x.ToNTT().ToCR()
	if !back.Equal(x) {
		t.Fatalf("CR -> NTT -> CR did not round-trip")
	}
}

func TestAddSubMulNTT(t *testing.T) {
	p := BabyBearLike
	a := p.FromUint64(5)
	b := p.FromUint64(3)
	if !a.Add(b).Equal(p.FromUint64(8)) {
		t.Fatalf("5 + 3 != 8")
	}
	if !a.Sub(b).Equal(p.FromUint64(2)) {
		t.Fatalf("5 - 3 != 2")
	}
	if !a.Mul(b).Equal(p.FromUint64(15)) {
		t.Fatalf("5 * 3 != 15")
	}
}

func TestInverseRoundTrip(t *testing.T) {
	p := BabyBearLike
	a := p.FromUint64(7)
	inv, err := a.Inverse()
	if err != nil {
		t.Fatalf("Inverse: %v", err)
	}
	if !a.Mul(inv).Equal(p.OneNTT()) {
		t.Fatalf("a * a^-1 != 1")
	}
}

func TestInverseRejectsZero(t *testing.T) {
	p := BabyBearLike
	if _, err := p.ZeroNTT().Inverse(); err == nil {
		t.Fatalf("expected an error inverting zero")
	}
}

func TestNTTFromBytesDeterministic(t *testing.T) {
	p := BabyBearLike
	b := make([]byte, p.BytesNeededForNTT())
	for i := range b {
		b[i] = byte(i)
	}
	x := p.NTTFromBytes(b)
	y := p.NTTFromBytes(b)
	if !x.Equal(y) {
		t.Fatalf("NTTFromBytes is not deterministic")
	}
}

func TestEachProfileBuilds(t *testing.T) {
	for _, p := range Profiles() {
		if p.Ring == nil {
			t.Fatalf("profile %s has a nil ring", p.Name)
		}
		if p.Dimension() <= 0 {
			t.Fatalf("profile %s has non-positive dimension", p.Name)
		}
	}
}
