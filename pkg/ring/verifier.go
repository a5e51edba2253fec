package ring

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/taurusgroup/ring-vrf/pkg/math/polynomial"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
	"github.com/zeebo/blake3"
)

// Verifier checks ring proofs against a ring commitment.
//
// A Verifier holds no mutable state, and can be used concurrently.
type Verifier struct {
	vk *VerifierKey
}

func (c *Context) Verifier(vk *VerifierKey) *Verifier {
	return &Verifier{vk: vk}
}

func (v *Verifier) Suite() *suite.Suite { return v.vk.ctx.suite }

// Verify checks that keyCommitment = X + b⋅B for some key X of the ring and
// some b known to the prover. It returns ErrInvalidProof or ErrMalformedProof
// otherwise.
func (v *Verifier) Verify(proof *Proof, keyCommitment bandersnatch.PointAffine) error {
	if proof == nil ||
		len(proof.AtZeta.ClaimedValues) != openedAtZeta ||
		len(proof.AtZetaOmega.ClaimedValues) != openedAtZetaOmega {
		return ErrMalformedProof
	}
	c := v.vk.ctx
	rc := v.vk.commitment

	t := c.transcript(&rc, &keyCommitment)
	appendDigests(t, "witness", proof.Bits, proof.AccX, proof.AccY, proof.InnerProduct)
	alpha := challenge(t, "alpha")
	appendDigests(t, "quotient", proof.Quotient)
	zeta := challenge(t, "zeta")
	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &c.domain.Generator)

	at := proof.AtZeta.ClaimedValues
	next := proof.AtZetaOmega.ClaimedValues
	r := row{
		px: at[0], py: at[1], sel: at[2],
		bits: at[3], accx: at[4], accy: at[5], ip: at[6],
		nextAccx: next[0], nextAccy: next[1], nextIp: next[2],
	}

	n := c.n()
	omegaLast := c.lastOmega()
	var s selectors
	s.notLast.Sub(&zeta, &omegaLast)
	s.first = polynomial.LagrangeAt(n, c.domain.Generator, 0, zeta)
	s.last = polynomial.LagrangeAt(n, c.domain.Generator, n-1, zeta)

	// Σ αⁱ⋅cᵢ(ζ) = t(ζ)⋅(ζⁿ - 1)
	lhs := c.aggregate(&r, &s, &keyCommitment, alpha)
	vanishing := polynomial.Vanishing(n, zeta)
	var rhs fr.Element
	rhs.Mul(&at[7], &vanishing)
	if !lhs.Equal(&rhs) {
		return ErrInvalidProof
	}

	digests := []kzg.Digest{
		rc.Px, rc.Py, rc.Selector,
		proof.Bits, proof.AccX, proof.AccY, proof.InnerProduct,
		proof.Quotient,
	}
	foldedAtZeta, digestAtZeta, err := kzg.FoldProof(digests, &proof.AtZeta, zeta, blake3.New())
	if err != nil {
		return ErrInvalidProof
	}
	foldedAtZetaOmega, digestAtZetaOmega, err := kzg.FoldProof(
		[]kzg.Digest{proof.AccX, proof.AccY, proof.InnerProduct},
		&proof.AtZetaOmega, zetaOmega, blake3.New(),
	)
	if err != nil {
		return ErrInvalidProof
	}
	err = kzg.BatchVerifyMultiPoints(
		[]kzg.Digest{digestAtZeta, digestAtZetaOmega},
		[]kzg.OpeningProof{foldedAtZeta, foldedAtZetaOmega},
		[]fr.Element{zeta, zetaOmega},
		c.srs.Vk,
	)
	if err != nil {
		return ErrInvalidProof
	}
	return nil
}
