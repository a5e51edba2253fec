package ring

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/fxamacker/cbor/v2"
)

const (
	// openedAtZeta are px, py, sel, bits, accx, accy, ip and the quotient.
	openedAtZeta = 8
	// openedAtZetaOmega are accx, accy and ip.
	openedAtZetaOmega = 3
)

// Proof is a ring membership proof for a key commitment.
type Proof struct {
	// Bits commits to the one-hot key selector followed by the bits of b.
	Bits kzg.Digest
	// AccX and AccY commit to the running sum of the selected points.
	AccX, AccY kzg.Digest
	// InnerProduct commits to the running count of selected keys.
	InnerProduct kzg.Digest
	// Quotient commits to the aggregated constraints divided by Xⁿ - 1.
	Quotient kzg.Digest

	AtZeta      kzg.BatchOpeningProof
	AtZetaOmega kzg.BatchOpeningProof
}

type proofWire struct {
	Bits, AccX, AccY, InnerProduct, Quotient []byte

	AtZeta            []byte
	AtZetaValues      [][]byte
	AtZetaOmega       []byte
	AtZetaOmegaValues [][]byte
}

func (p *Proof) MarshalBinary() ([]byte, error) {
	w := proofWire{
		Bits:         digestBytes(&p.Bits),
		AccX:         digestBytes(&p.AccX),
		AccY:         digestBytes(&p.AccY),
		InnerProduct: digestBytes(&p.InnerProduct),
		Quotient:     digestBytes(&p.Quotient),
		AtZeta:       digestBytes(&p.AtZeta.H),
		AtZetaOmega:  digestBytes(&p.AtZetaOmega.H),
	}
	w.AtZetaValues = elementsBytes(p.AtZeta.ClaimedValues)
	w.AtZetaOmegaValues = elementsBytes(p.AtZetaOmega.ClaimedValues)
	return cbor.Marshal(w)
}

// UnmarshalBinary decodes a Proof. Group elements are checked to lie in the
// prime-order subgroup of G1, and field elements to be canonical.
func (p *Proof) UnmarshalBinary(data []byte) error {
	var w proofWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}
	if len(w.AtZetaValues) != openedAtZeta || len(w.AtZetaOmegaValues) != openedAtZetaOmega {
		return ErrMalformedProof
	}
	var out Proof
	for _, f := range []struct {
		into *kzg.Digest
		data []byte
	}{
		{&out.Bits, w.Bits},
		{&out.AccX, w.AccX},
		{&out.AccY, w.AccY},
		{&out.InnerProduct, w.InnerProduct},
		{&out.Quotient, w.Quotient},
		{&out.AtZeta.H, w.AtZeta},
		{&out.AtZetaOmega.H, w.AtZetaOmega},
	} {
		if err := setDigest(f.into, f.data); err != nil {
			return err
		}
	}
	var err error
	if out.AtZeta.ClaimedValues, err = setElements(w.AtZetaValues); err != nil {
		return err
	}
	if out.AtZetaOmega.ClaimedValues, err = setElements(w.AtZetaOmegaValues); err != nil {
		return err
	}
	*p = out
	return nil
}

func digestBytes(d *kzg.Digest) []byte {
	b := d.Bytes()
	return b[:]
}

func setDigest(d *kzg.Digest, data []byte) error {
	n, err := d.SetBytes(data)
	if err != nil {
		return fmt.Errorf("ring: invalid commitment: %w", err)
	}
	if n != len(data) {
		return ErrMalformedProof
	}
	return nil
}

func elementsBytes(elements []fr.Element) [][]byte {
	out := make([][]byte, len(elements))
	for i := range elements {
		b := elements[i].Bytes()
		out[i] = b[:]
	}
	return out
}

func setElements(data [][]byte) ([]fr.Element, error) {
	out := make([]fr.Element, len(data))
	for i, b := range data {
		if err := out[i].SetBytesCanonical(b); err != nil {
			return nil, fmt.Errorf("ring: invalid field element: %w", err)
		}
	}
	return out, nil
}
