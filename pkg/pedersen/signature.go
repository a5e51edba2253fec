package pedersen

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
)

// Signature is a Pedersen VRF signature.
type Signature struct {
	suite *suite.Suite
	// output O = x⋅I
	output curve.Point
	// commitment C = X + b⋅B
	commitment curve.Point
	// r R = k⋅G + kb⋅B
	r curve.Point
	// ok Ok = k⋅I
	ok curve.Point
	// response s = k + c⋅x
	response curve.Scalar
	// responseBlinding sb = kb + c⋅b
	responseBlinding curve.Scalar
}

// EmptySignature returns a Signature of s with all fields set to zero, to be
// filled by UnmarshalBinary.
func EmptySignature(s *suite.Suite) *Signature {
	group := s.Curve()
	return &Signature{
		suite:            s,
		output:           group.NewPoint(),
		commitment:       group.NewPoint(),
		r:                group.NewPoint(),
		ok:               group.NewPoint(),
		response:         group.NewScalar(),
		responseBlinding: group.NewScalar(),
	}
}

// IsValid reports whether every field is set.
func (sig *Signature) IsValid() bool {
	return sig.suite != nil && sig.output != nil && sig.commitment != nil &&
		sig.r != nil && sig.ok != nil && sig.response != nil && sig.responseBlinding != nil
}

func (sig *Signature) Suite() *suite.Suite { return sig.suite }

// Output returns the VRF output of the signature.
func (sig *Signature) Output() *vrf.Output {
	return vrf.NewOutput(sig.suite, sig.output)
}

// KeyCommitment returns C = X + b⋅B.
func (sig *Signature) KeyCommitment() curve.Point {
	return sig.suite.Curve().NewPoint().Set(sig.commitment)
}

type signatureWire struct {
	Output           []byte
	KeyCommitment    []byte
	R                []byte
	Ok               []byte
	Response         []byte
	ResponseBlinding []byte
}

func (sig *Signature) MarshalBinary() ([]byte, error) {
	var (
		w   signatureWire
		err error
	)
	if w.Output, err = sig.output.MarshalBinary(); err != nil {
		return nil, err
	}
	if w.KeyCommitment, err = sig.commitment.MarshalBinary(); err != nil {
		return nil, err
	}
	if w.R, err = sig.r.MarshalBinary(); err != nil {
		return nil, err
	}
	if w.Ok, err = sig.ok.MarshalBinary(); err != nil {
		return nil, err
	}
	if w.Response, err = sig.response.MarshalBinary(); err != nil {
		return nil, err
	}
	if w.ResponseBlinding, err = sig.responseBlinding.MarshalBinary(); err != nil {
		return nil, err
	}
	return cbor.Marshal(w)
}

// UnmarshalBinary decodes data into sig, which must have been created with
// EmptySignature. Every point is checked to lie in the prime-order subgroup.
func (sig *Signature) UnmarshalBinary(data []byte) error {
	if sig.suite == nil {
		return ErrNilFields
	}
	var w signatureWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}
	out := EmptySignature(sig.suite)
	for _, f := range []struct {
		data []byte
		into interface{ UnmarshalBinary([]byte) error }
	}{
		{w.Output, out.output},
		{w.KeyCommitment, out.commitment},
		{w.R, out.r},
		{w.Ok, out.ok},
		{w.Response, out.response},
		{w.ResponseBlinding, out.responseBlinding},
	} {
		if err := f.into.UnmarshalBinary(f.data); err != nil {
			return err
		}
	}
	*sig = *out
	return nil
}
