// Package commitment implements the Ajtai commitment scheme spec.md §3
// describes: a random C×W matrix over a ring profile, committing to
// coefficient- or NTT-form witnesses, with balanced-radix decomposition for
// the decompose-and-commit variants. Adapted from the teacher's
// commitment/linear.go (row-major matrix-vector product over lattigo rings),
// generalised from a plain lattigo Ring/Poly pair to the C/W-shaped,
// profile-aware scheme original_source/latticefold/src/commitment/
// commitment_scheme.rs describes.
package commitment

import (
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"

	latring "latticefold/ring"
)

// AjtaiCommitmentScheme holds a C×W matrix of NTT-domain ring elements: C is
// the commitment length, W the witness length.
type AjtaiCommitmentScheme struct {
	Profile *latring.Profile
	C, W    int
	Matrix  [][]latring.NTT
}

// Commitment is the output of an Ajtai commitment: a length-C vector of
// NTT-domain ring elements.
type Commitment struct {
	Vals []latring.NTT
}

// ErrWrongAjtaiMatrixDimensions reports a matrix that TryFrom cannot accept:
// an empty matrix, or a row whose length differs from the first row's. The
// expected shape is the one read from the matrix itself; there is no
// separately declared (C, W) to check against.
type ErrWrongAjtaiMatrixDimensions struct {
	GotRows, GotCols, WantRows, WantCols int
}

func (e *ErrWrongAjtaiMatrixDimensions) Error() string {
	return fmt.Sprintf("commitment: matrix is %dx%d, want %dx%d", e.GotRows, e.GotCols, e.WantRows, e.WantCols)
}

// ErrWrongWitnessLength reports a witness whose length does not match W.
type ErrWrongWitnessLength struct {
	Got, Want int
}

func (e *ErrWrongWitnessLength) Error() string {
	return fmt.Sprintf("commitment: witness has length %d, want %d", e.Got, e.Want)
}

// TryFrom builds a scheme from an explicit matrix, taking C from its row
// count and W from its first row's length, and rejecting an empty or ragged
// matrix.
func TryFrom(p *latring.Profile, matrix [][]latring.NTT) (*AjtaiCommitmentScheme, error) {
	c := len(matrix)
	if c == 0 {
		return nil, &ErrWrongAjtaiMatrixDimensions{GotRows: 0, GotCols: 0}
	}
	w := len(matrix[0])
	for _, row := range matrix {
		if len(row) != w {
			return nil, &ErrWrongAjtaiMatrixDimensions{GotRows: c, GotCols: len(row), WantRows: c, WantCols: w}
		}
	}
	return &AjtaiCommitmentScheme{Profile: p, C: c, W: w, Matrix: matrix}, nil
}

// Rand samples a uniformly random C×W Ajtai matrix.
func Rand(p *latring.Profile, c, w int, prng utils.PRNG) *AjtaiCommitmentScheme {
	matrix := make([][]latring.NTT, c)
	for i := range matrix {
		row := make([]latring.NTT, w)
		for j := range row {
			row[j] = p.RandNTT(prng)
		}
		matrix[i] = row
	}
	return &AjtaiCommitmentScheme{Profile: p, C: c, W: w, Matrix: matrix}
}

// CommitNTT commits to a witness already in NTT form.
func (s *AjtaiCommitmentScheme) CommitNTT(f []latring.NTT) (Commitment, error) {
	if len(f) != s.W {
		return Commitment{}, &ErrWrongWitnessLength{Got: len(f), Want: s.W}
	}
	vals := make([]latring.NTT, s.C)
	for i, row := range s.Matrix {
		acc := s.Profile.ZeroNTT()
		for j, m := range row {
			acc = acc.Add(m.Mul(f[j]))
		}
		vals[i] = acc
	}
	return Commitment{Vals: vals}, nil
}

// CommitCoeff converts each witness entry to NTT form and commits.
func (s *AjtaiCommitmentScheme) CommitCoeff(f []latring.CR) (Commitment, error) {
	if len(f) != s.W {
		return Commitment{}, &ErrWrongWitnessLength{Got: len(f), Want: s.W}
	}
	ntt := make([]latring.NTT, len(f))
	for i, x := range f {
		ntt[i] = x.ToNTT()
	}
	return s.CommitNTT(ntt)
}

// DecomposeAndCommitCoeff decomposes each entry of a coefficient-form witness
// into L balanced base-B digits (flattening witness-major, then digit-minor)
// and Ajtai-commits to the result, i.e. it commits to the preimage G_B^{-1}(w).
func (s *AjtaiCommitmentScheme) DecomposeAndCommitCoeff(f []latring.CR, b uint64, l int) (Commitment, error) {
	decomposed := make([]latring.CR, 0, len(f)*l)
	for _, x := range f {
		digits := DecomposeBalanced(x, b, l)
		decomposed = append(decomposed, digits...)
	}
	return s.CommitCoeff(decomposed)
}

// DecomposeAndCommitNTT converts an NTT-form witness to coefficient form,
// decomposes it in balanced base B, and Ajtai-commits to the result.
func (s *AjtaiCommitmentScheme) DecomposeAndCommitNTT(w []latring.NTT, b uint64, l int) (Commitment, error) {
	cr := make([]latring.CR, len(w))
	for i, x := range w {
		cr[i] = x.ToCR()
	}
	return s.DecomposeAndCommitCoeff(cr, b, l)
}

// DecomposeBalanced splits a coefficient-form ring element into L digit
// polynomials in balanced base B: each coefficient c is written as
// sum_{k=0}^{L-1} digit_k * B^k with digit_k in (-B/2, B/2], centering c to
// the signed residue range (-Q/2, Q/2] first. Only the L lowest digits are
// kept: a coefficient that needs more than L digits is truncated, with no
// error or panic.
func DecomposeBalanced(x latring.CR, b uint64, l int) []latring.CR {
	p := x.Profile()
	n := p.Ring.N
	src := x.Coeffs()

	digits := make([][]uint64, l)
	for k := range digits {
		digits[k] = make([]uint64, n)
	}

	half := int64(b / 2)
	for i := 0; i < n; i++ {
		v := centeredResidue(src[i], p.Q)
		for k := 0; k < l; k++ {
			d := v % int64(b)
			if d > half {
				d -= int64(b)
			} else if 2*d <= -int64(b) {
				d += int64(b)
			}
			v = (v - d) / int64(b)
			digits[k][i] = toResidue(d, p.Q)
		}
	}

	out := make([]latring.CR, l)
	for k := range out {
		out[k] = p.CRFromCoeffs(digits[k])
	}
	return out
}

func centeredResidue(v, q uint64) int64 {
	if v > q/2 {
		return int64(v) - int64(q)
	}
	return int64(v)
}

func toResidue(v int64, q uint64) uint64 {
	m := int64(q)
	v %= m
	if v < 0 {
		v += m
	}
	return uint64(v)
}
