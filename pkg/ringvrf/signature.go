package ringvrf

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/ring-vrf/pkg/pedersen"
	"github.com/taurusgroup/ring-vrf/pkg/ring"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
)

// Signature is a Ring-VRF signature.
type Signature struct {
	pedersen *pedersen.Signature
	proof    *ring.Proof
}

// EmptySignature returns a Signature of s to be filled by UnmarshalBinary.
func EmptySignature(s *suite.Suite) *Signature {
	return &Signature{
		pedersen: pedersen.EmptySignature(s),
		proof:    new(ring.Proof),
	}
}

// Output returns the VRF output of the signature.
func (sig *Signature) Output() *vrf.Output {
	return sig.pedersen.Output()
}

// Pedersen returns the underlying Pedersen VRF signature.
func (sig *Signature) Pedersen() *pedersen.Signature { return sig.pedersen }

// Proof returns the ring proof of the key commitment.
func (sig *Signature) Proof() *ring.Proof { return sig.proof }

type signatureWire struct {
	Pedersen cbor.RawMessage
	Ring     cbor.RawMessage
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	p, err := sig.pedersen.MarshalBinary()
	if err != nil {
		return nil, err
	}
	r, err := sig.proof.MarshalBinary()
	if err != nil {
		return nil, err
	}
	return cbor.Marshal(signatureWire{Pedersen: p, Ring: r})
}

// UnmarshalBinary decodes data into sig, which must have been created with
// EmptySignature.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	if sig.pedersen == nil {
		return pedersen.ErrNilFields
	}
	var w signatureWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}
	out := EmptySignature(sig.pedersen.Suite())
	if err := out.pedersen.UnmarshalBinary(w.Pedersen); err != nil {
		return err
	}
	if err := out.proof.UnmarshalBinary(w.Ring); err != nil {
		return err
	}
	*sig = *out
	return nil
}
