package ring

import (
	"encoding/binary"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/gtank/merlin"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
)

// transcript starts a new transcript bound to the ring and the key
// commitment. Provers and verifiers call it once per proof.
func (c *Context) transcript(commitment *RingCommitment, keyCommitment *bandersnatch.PointAffine) *merlin.Transcript {
	t := merlin.NewTranscript(c.label)

	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], c.n())
	t.AppendMessage([]byte("domain size"), size[:])

	appendDigests(t, "ring", commitment.digests()...)

	encoded, _ := curve.NewBandersnatchPoint(*keyCommitment).MarshalBinary()
	t.AppendMessage([]byte("key commitment"), encoded)
	return t
}

func appendDigests(t *merlin.Transcript, label string, digests ...kzg.Digest) {
	for i := range digests {
		t.AppendMessage([]byte(label), digestBytes(&digests[i]))
	}
}

// challenge reduces 64 bytes of the transcript to a field element.
func challenge(t *merlin.Transcript, label string) fr.Element {
	var e fr.Element
	e.SetBytes(t.ExtractBytes([]byte(label), 64))
	return e
}
