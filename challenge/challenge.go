// Package challenge derives the low-norm coefficient-representation elements
// spec.md §6 calls the "challenge-set contract": a pure function mapping a
// byte seed to a low-norm CR element, one {0,1} coefficient per bit, MSB
// first within each byte (byte k bit 7 becomes coefficient 8k+0 — spec.md §6,
// mirrored from the teacher's cyclotomic reference, cyclotomic-rings/src/
// rings/pbb.rs, kept in original_source/).
package challenge

import (
	"fmt"

	"golang.org/x/crypto/sha3"

	latring "latticefold/ring"
)

// Shake256XOF is the extendable-output function backing challenge
// derivation, grounded on the teacher's PIOP/fs_helpers.go Shake256XOF.
type Shake256XOF struct{}

// Expand realises the SHAKE-256 duplex keyed by label, concatenating parts.
func (Shake256XOF) Expand(label string, outLen int, parts ...[]byte) []byte {
	h := sha3.NewShake256()
	if _, err := h.Write([]byte(label)); err != nil {
		panic(fmt.Errorf("challenge: write label: %w", err))
	}
	for _, part := range parts {
		if _, err := h.Write(part); err != nil {
			panic(fmt.Errorf("challenge: write seed part: %w", err))
		}
	}
	out := make([]byte, outLen)
	if _, err := h.Read(out); err != nil {
		panic(fmt.Errorf("challenge: read expansion: %w", err))
	}
	return out
}

// Derive maps a byte seed to a low-norm CR element of the given profile: the
// first p.N bits of SHAKE256("latticefold-challenge-set" || seed), packed
// MSB-first, become the 0/1 coefficients of the returned polynomial.
func Derive(p *latring.Profile, seed []byte) latring.CR {
	needed := (p.N + 7) / 8
	digest := Shake256XOF{}.Expand("latticefold-challenge-set", needed, seed)

	coeffs := make([]uint64, p.N)
	for k := 0; k < needed; k++ {
		b := digest[k]
		for i := 0; i < 8; i++ {
			pos := 8*k + i
			if pos >= p.N {
				break
			}
			coeffs[pos] = uint64((b >> (7 - i)) & 1)
		}
	}
	return p.CRFromCoeffs(coeffs)
}
