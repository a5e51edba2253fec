// Package pedersen implements a VRF whose proof hides the public key of the
// signer behind a Pedersen commitment C = X + b⋅B.
//
// The signer proves knowledge of (x, b) such that O = x⋅I and C = x⋅G + b⋅B.
// The blinding factor b is returned to the caller, who can then prove
// statements about C, such as its membership in a ring of public keys.
package pedersen

import (
	"fmt"
	"io"

	"github.com/taurusgroup/ring-vrf/internal/hash"
	"github.com/taurusgroup/ring-vrf/internal/params"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"github.com/taurusgroup/ring-vrf/pkg/math/sample"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
)

type Error string

const (
	ErrNilFields     Error = "contains nil field"
	ErrSuiteMismatch Error = "signature and input belong to different suites"
	ErrVerification  Error = "verification failed"
)

func (e Error) Error() string {
	return fmt.Sprintf("pedersen: %s", string(e))
}

const nonceDomain = "pedersen-vrf nonce"

// Sign computes the VRF output of sk on input, and a proof binding it to a
// fresh commitment of the public key. The nonces and the blinding factor are
// derived from sk, input, ad and 32 bytes read from rand.
//
// The returned Blinding must be consumed by exactly one ring proof.
func Sign(rand io.Reader, sk *vrf.SecretKey, input *vrf.Input, ad []byte) (*Signature, *vrf.Blinding) {
	s := sk.Suite()
	if input.Suite().ID() != s.ID() {
		panic(fmt.Sprintf("pedersen: input of suite %s signed with key of suite %s", input.Suite(), s))
	}
	group := s.Curve()

	x := sk.Scalar()
	X := sk.Public().Point()
	I := input.Point()
	B := s.BlindingBase()

	entropy := make([]byte, params.SecBytes)
	if _, err := io.ReadFull(rand, entropy); err != nil {
		panic(fmt.Sprintf("pedersen: failed to read randomness: %v", err))
	}
	h := hash.New(nonceDomain)
	_ = h.WriteAny(
		hash.Labeled{Label: "suite", Bytes: []byte{s.ID()}},
		x, I,
		hash.Labeled{Label: "ad", Bytes: ad},
		entropy,
	)
	digest := h.Digest()
	k, kG := sample.ScalarPointPair(digest, group)
	kb := sample.Scalar(digest, group)
	b := sample.Scalar(digest, group)

	// O = x⋅I
	O := x.Act(I)
	// C = X + b⋅B
	C := X.Add(b.Act(B))
	// R = k⋅G + kb⋅B
	R := kG.Add(kb.Act(B))
	// Ok = k⋅I
	Ok := k.Act(I)

	c := s.Challenge([]curve.Point{C, I, O, R, Ok}, ad)

	// s = k + c⋅x
	response := group.NewScalar().Set(c).Mul(x).Add(k)
	// sb = kb + c⋅b
	responseBlinding := group.NewScalar().Set(c).Mul(b).Add(kb)

	sig := &Signature{
		suite:            s,
		output:           O,
		commitment:       C,
		r:                R,
		ok:               Ok,
		response:         response,
		responseBlinding: responseBlinding,
	}
	return sig, vrf.NewBlinding(b)
}

// Verify checks sig against input and ad. It returns ErrVerification if
// either of the equations
//
//	c⋅O + Ok = s⋅I
//	c⋅C + R  = s⋅G + sb⋅B
//
// does not hold.
func Verify(input *vrf.Input, ad []byte, sig *Signature) error {
	if sig == nil || !sig.IsValid() {
		return ErrNilFields
	}
	s := sig.suite
	if input.Suite().ID() != s.ID() {
		return ErrSuiteMismatch
	}
	I := input.Point()
	B := s.BlindingBase()

	c := s.Challenge([]curve.Point{sig.commitment, I, sig.output, sig.r, sig.ok}, ad)

	lhs := c.Act(sig.output).Add(sig.ok)
	rhs := sig.response.Act(I)
	if !lhs.Equal(rhs) {
		return ErrVerification
	}

	lhs = c.Act(sig.commitment).Add(sig.r)
	rhs = sig.response.ActOnBase().Add(sig.responseBlinding.Act(B))
	if !lhs.Equal(rhs) {
		return ErrVerification
	}
	return nil
}
