// Package transcript implements the Fiat–Shamir sponge contract spec.md §6
// calls "Transcript": a pure, stateful function from absorbed protocol
// messages to squeezed challenges. Grounded on the teacher's PIOP/fs_helpers.go
// FS/XOF machinery, stripped of the grinding rounds that machinery uses for
// SmallWood proofs of work (no Non-goal here asks for grinding, and nothing
// in spec.md §4 mentions a proof-of-work delay).
package transcript

import (
	"encoding/binary"

	"latticefold/challenge"
	latring "latticefold/ring"
)

// Transcript is a duplex sponge: every Absorb writes into the running state,
// every Squeeze reads a fresh digest of that state and folds the digest back
// in, so repeated squeezes without an intervening absorb still diverge.
type Transcript struct {
	xof   challenge.Shake256XOF
	label string
	state []byte
	ctr   uint64
}

// New starts a transcript keyed by label (typically a protocol/domain tag).
func New(label string) *Transcript {
	return &Transcript{xof: challenge.Shake256XOF{}, label: label}
}

// Absorb mixes one NTT-domain field element into the transcript state.
func (t *Transcript) Absorb(x latring.NTT) {
	t.state = append(t.state, encodeNTT(x)...)
}

// AbsorbSlice mixes a sequence of field elements in order.
func (t *Transcript) AbsorbSlice(xs []latring.NTT) {
	for _, x := range xs {
		t.Absorb(x)
	}
}

// AbsorbBytes mixes raw bytes (e.g. a commitment's serialised coefficients).
func (t *Transcript) AbsorbBytes(b []byte) {
	t.state = append(t.state, b...)
}

func (t *Transcript) squeeze(n int) []byte {
	ctrBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(ctrBytes, t.ctr)
	t.ctr++
	digest := t.xof.Expand(t.label, n, t.state, ctrBytes)
	t.state = append(t.state, digest...)
	return digest
}

// SqueezeChallenge draws one full-field NTT-domain challenge.
func (t *Transcript) SqueezeChallenge(p *latring.Profile) latring.NTT {
	return p.NTTFromBytes(t.squeeze(p.BytesNeededForNTT()))
}

// SqueezeChallenges draws n full-field challenges, in order.
func (t *Transcript) SqueezeChallenges(p *latring.Profile, n int) []latring.NTT {
	out := make([]latring.NTT, n)
	for i := range out {
		out[i] = t.SqueezeChallenge(p)
	}
	return out
}

// SqueezeShortChallenge draws one low-norm CR-domain challenge from the
// challenge set described in the challenge package.
func (t *Transcript) SqueezeShortChallenge(p *latring.Profile) latring.CR {
	needed := (p.N + 7) / 8
	return challenge.Derive(p, t.squeeze(needed))
}

// SqueezeShortChallenges draws n low-norm challenges, in order.
func (t *Transcript) SqueezeShortChallenges(p *latring.Profile, n int) []latring.CR {
	out := make([]latring.CR, n)
	for i := range out {
		out[i] = t.SqueezeShortChallenge(p)
	}
	return out
}

// SqueezeAlphaBetaZetaMu draws the four challenge families the folding
// prover and verifier need, in the fixed order the protocol consumes them:
// α (2K per-instance weights), β (logM coordinates of the sumcheck
// evaluation point), ζ (2K Horner weights for the Mz matrices) and μ (K
// global norm-control scalars). All four are full-field challenges, drawn
// as four consecutive SqueezeChallenges calls: only ρ (the recombination
// weight squeezed separately after the sumcheck) is a low-norm challenge,
// so the two challenge spaces stay distinct.
func (t *Transcript) SqueezeAlphaBetaZetaMu(p *latring.Profile, logM, k int) (alpha []latring.NTT, beta []latring.NTT, zeta []latring.NTT, mu []latring.NTT) {
	alpha = t.SqueezeChallenges(p, 2*k)
	beta = t.SqueezeChallenges(p, logM)
	zeta = t.SqueezeChallenges(p, 2*k)
	mu = t.SqueezeChallenges(p, k)
	return alpha, beta, zeta, mu
}

func encodeNTT(x latring.NTT) []byte {
	coeffs := x.Coeffs()
	buf := make([]byte, 0, len(coeffs)*8)
	var tmp [8]byte
	for _, c := range coeffs {
		binary.LittleEndian.PutUint64(tmp[:], c)
		buf = append(buf, tmp[:]...)
	}
	return buf
}
