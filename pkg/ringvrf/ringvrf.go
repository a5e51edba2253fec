// Package ringvrf combines a Pedersen VRF signature with a ring membership
// proof of its key commitment. A verifier learns the VRF output, and that it
// was computed by some key of the ring, but not by which one.
package ringvrf

import (
	"fmt"
	"io"

	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"github.com/taurusgroup/ring-vrf/pkg/pedersen"
	"github.com/taurusgroup/ring-vrf/pkg/ring"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
)

type Error string

const (
	ErrSuiteMismatch       Error = "key, input and prover belong to different suites"
	ErrVerificationFailure Error = "verification failed"
)

func (e Error) Error() string {
	return fmt.Sprintf("ringvrf: %s", string(e))
}

// Sign computes the VRF output of sk on input, and proves with prover that
// the signing key is the member of the ring the prover was created for.
func Sign(rand io.Reader, sk *vrf.SecretKey, input *vrf.Input, ad []byte, prover *ring.Prover) (*Signature, error) {
	id := sk.Suite().ID()
	if input.Suite().ID() != id || prover.Suite().ID() != id {
		return nil, ErrSuiteMismatch
	}
	vrfSig, blinding := pedersen.Sign(rand, sk, input, ad)
	proof, err := prover.Prove(rand, blinding)
	if err != nil {
		return nil, fmt.Errorf("ringvrf: ring proof: %w", err)
	}
	return &Signature{pedersen: vrfSig, proof: proof}, nil
}

// Verify checks sig against input, ad and the ring of verifier.
// It returns ErrVerificationFailure whatever the failing check.
func Verify(input *vrf.Input, ad []byte, sig *Signature, verifier *ring.Verifier) error {
	if sig == nil || sig.pedersen == nil || sig.proof == nil {
		return ErrVerificationFailure
	}
	if sig.pedersen.Suite().ID() != verifier.Suite().ID() {
		return ErrVerificationFailure
	}
	if err := pedersen.Verify(input, ad, sig.pedersen); err != nil {
		return ErrVerificationFailure
	}
	C := sig.pedersen.KeyCommitment()
	if C.IsIdentity() {
		return ErrVerificationFailure
	}
	point, ok := C.(*curve.BandersnatchPoint)
	if !ok {
		return ErrVerificationFailure
	}
	if err := verifier.Verify(sig.proof, point.Affine()); err != nil {
		return ErrVerificationFailure
	}
	return nil
}
