package ring

import (
	"fmt"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/fxamacker/cbor/v2"
	"github.com/taurusgroup/ring-vrf/pkg/math/polynomial"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
)

// RingCommitment binds a ring of keys. Two derivations from the same ordered
// list of keys yield the same RingCommitment.
type RingCommitment struct {
	Px, Py, Selector kzg.Digest
}

func (rc *RingCommitment) digests() []kzg.Digest {
	return []kzg.Digest{rc.Px, rc.Py, rc.Selector}
}

func (rc *RingCommitment) Equal(other *RingCommitment) bool {
	return rc.Px.Equal(&other.Px) && rc.Py.Equal(&other.Py) && rc.Selector.Equal(&other.Selector)
}

type ringCommitmentWire struct {
	Px, Py, Selector []byte
}

func (rc *RingCommitment) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(ringCommitmentWire{
		Px:       digestBytes(&rc.Px),
		Py:       digestBytes(&rc.Py),
		Selector: digestBytes(&rc.Selector),
	})
}

func (rc *RingCommitment) UnmarshalBinary(data []byte) error {
	var w ringCommitmentWire
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}
	var out RingCommitment
	if err := setDigest(&out.Px, w.Px); err != nil {
		return err
	}
	if err := setDigest(&out.Py, w.Py); err != nil {
		return err
	}
	if err := setDigest(&out.Selector, w.Selector); err != nil {
		return err
	}
	*rc = out
	return nil
}

// fixedColumns are the evaluations of the public columns over the domain.
type fixedColumns struct {
	px, py, sel []fr.Element
}

// columns lays out the ring:
//
//	rows [0, len(ring))         the keys, sel = 1
//	rows [len(ring), K)         the padding point, sel = 1
//	rows [K, K+253)             2ʲ⋅B, sel = 0
//	row  n-1                    the identity, sel = 0
func (c *Context) columns(ring []*vrf.PublicKey) (*fixedColumns, error) {
	if len(ring) == 0 {
		return nil, ErrInvalidRingSize
	}
	if len(ring) > c.capacity {
		return nil, fmt.Errorf("%w: %d > %d", ErrRingTooLarge, len(ring), c.capacity)
	}
	n := c.n()
	cols := &fixedColumns{
		px:  make([]fr.Element, n),
		py:  make([]fr.Element, n),
		sel: make([]fr.Element, n),
	}
	for i := 0; i < c.capacity; i++ {
		p := c.padding
		if i < len(ring) {
			pk := ring[i]
			if pk == nil || pk.Suite().ID() != c.suite.ID() {
				return nil, fmt.Errorf("%w: index %d", ErrInvalidRingMember, i)
			}
			p = affine(pk.Point())
		}
		cols.px[i], cols.py[i] = p.X, p.Y
		cols.sel[i].SetOne()
	}
	for j, p := range c.powers {
		cols.px[c.capacity+j], cols.py[c.capacity+j] = p.X, p.Y
	}
	cols.py[n-1].SetOne()
	return cols, nil
}

func (c *Context) index(ring []*vrf.PublicKey) (*fixedColumns, [3]*polynomial.Polynomial, RingCommitment, error) {
	var (
		polys      [3]*polynomial.Polynomial
		commitment RingCommitment
	)
	start := time.Now()
	cols, err := c.columns(ring)
	if err != nil {
		return nil, polys, commitment, err
	}
	digests := []*kzg.Digest{&commitment.Px, &commitment.Py, &commitment.Selector}
	for i, col := range [][]fr.Element{cols.px, cols.py, cols.sel} {
		polys[i] = polynomial.Interpolate(c.domain, col)
		if *digests[i], err = kzg.Commit(polys[i].Coefficients(), c.srs.Pk); err != nil {
			return nil, polys, commitment, fmt.Errorf("ring: commit to ring column: %w", err)
		}
	}
	c.log.Debug().
		Int("ring", len(ring)).
		Dur("elapsed", time.Since(start)).
		Msg("ring indexed")
	return cols, polys, commitment, nil
}

// ProverKey holds a ring, its commitment, and the precomputed values needed
// to prove membership.
type ProverKey struct {
	ctx        *Context
	commitment RingCommitment
	ringSize   int
	columns    *fixedColumns
	// polys holds px, py and sel in coefficient form.
	polys [3]*polynomial.Polynomial
	// cosetEvals holds px, py and sel on the quotient coset.
	cosetEvals [3][]fr.Element
}

// ProverKey indexes the ring. The order of the keys matters.
func (c *Context) ProverKey(ring []*vrf.PublicKey) (*ProverKey, error) {
	cols, polys, commitment, err := c.index(ring)
	if err != nil {
		return nil, err
	}
	pk := &ProverKey{
		ctx:        c,
		commitment: commitment,
		ringSize:   len(ring),
		columns:    cols,
		polys:      polys,
	}
	for i, p := range polys {
		pk.cosetEvals[i] = p.EvaluateOnCoset(c.coset)
	}
	return pk, nil
}

// Commitment returns the commitment of the indexed ring.
func (pk *ProverKey) Commitment() RingCommitment { return pk.commitment }

// RingSize is the number of keys of the ring, excluding padding.
func (pk *ProverKey) RingSize() int { return pk.ringSize }

// VerifierKey returns the VerifierKey of the same ring.
func (pk *ProverKey) VerifierKey() *VerifierKey {
	return pk.ctx.VerifierKeyFromCommitment(pk.commitment)
}

// member returns the point at row i.
func (pk *ProverKey) member(i int) bandersnatch.PointAffine {
	return bandersnatch.PointAffine{X: pk.columns.px[i], Y: pk.columns.py[i]}
}

// VerifierKey holds the commitment to a ring.
type VerifierKey struct {
	ctx        *Context
	commitment RingCommitment
}

// VerifierKey indexes the ring. It only needs the public keys, and matches the
// ProverKey derived from the same ordered list.
func (c *Context) VerifierKey(ring []*vrf.PublicKey) (*VerifierKey, error) {
	_, _, commitment, err := c.index(ring)
	if err != nil {
		return nil, err
	}
	return c.VerifierKeyFromCommitment(commitment), nil
}

// VerifierKeyFromCommitment creates a VerifierKey from a commitment obtained
// from ProverKey.Commitment or VerifierKey.Commitment.
func (c *Context) VerifierKeyFromCommitment(commitment RingCommitment) *VerifierKey {
	return &VerifierKey{ctx: c, commitment: commitment}
}

func (vk *VerifierKey) Commitment() RingCommitment { return vk.commitment }
