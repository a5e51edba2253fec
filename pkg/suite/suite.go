// Package suite defines the cryptographic configurations a VRF can be
// instantiated with.
//
// A Suite bundles a domain separation identifier, a challenge length, a curve
// and a hash function. Every value derived through a Suite starts with its
// identifier, so that two suites never interoperate.
package suite

import (
	"errors"
	"fmt"

	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
)

const (
	domHashToCurve  byte = 0x01
	domChallenge    byte = 0x02
	domPointToHash  byte = 0x03
	domScalarToHash byte = 0x04
	domBack         byte = 0x00

	blindingBaseLabel = "ring-vrf blinding base"
	paddingLabel      = "ring-vrf padding"
)

var (
	// ErrShortDigest is returned by New when the digests of the hash function
	// are shorter than an encoded field element.
	ErrShortDigest = errors.New("suite: hash digest shorter than the base field")

	errNoBase = errors.New("suite: failed to derive a generator")
)

// Suite is a fixed, named configuration. It is immutable and safe for
// concurrent use.
type Suite struct {
	name         string
	id           byte
	challengeLen int
	group        curve.Curve
	hash         func([]byte) []byte

	// blindingBase is the second generator of the Pedersen commitments.
	blindingBase curve.Point
	// padding fills rings up to their capacity.
	padding curve.Point
}

// New creates a Suite, and derives its blinding base and padding point.
func New(name string, id byte, challengeLen int, group curve.Curve, hash func([]byte) []byte) (*Suite, error) {
	digestLen := len(hash(nil))
	if digestLen < group.FieldBytes() {
		return nil, ErrShortDigest
	}
	if challengeLen <= 0 || challengeLen > digestLen {
		return nil, fmt.Errorf("suite: invalid challenge length %d", challengeLen)
	}
	s := &Suite{
		name:         name,
		id:           id,
		challengeLen: challengeLen,
		group:        group,
		hash:         hash,
	}
	var ok bool
	if s.blindingBase, ok = s.HashToCurve([]byte(blindingBaseLabel)); !ok || s.blindingBase.IsIdentity() {
		return nil, fmt.Errorf("suite %s: blinding base: %w", name, errNoBase)
	}
	if s.padding, ok = s.HashToCurve([]byte(paddingLabel)); !ok || s.padding.IsIdentity() {
		return nil, fmt.Errorf("suite %s: padding point: %w", name, errNoBase)
	}
	return s, nil
}

func mustNew(name string, id byte, challengeLen int, group curve.Curve, hash func([]byte) []byte) *Suite {
	s, err := New(name, id, challengeLen, group, hash)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Suite) Name() string { return s.name }

func (s *Suite) ID() byte { return s.id }

func (s *Suite) ChallengeLen() int { return s.challengeLen }

func (s *Suite) Curve() curve.Curve { return s.group }

// Hash returns the digest of data under the suite's hash function.
func (s *Suite) Hash(data []byte) []byte { return s.hash(data) }

// BlindingBase returns the generator B used to blind key commitments.
// Its discrete logarithm with respect to the curve generator is unknown.
func (s *Suite) BlindingBase() curve.Point {
	return s.group.NewPoint().Set(s.blindingBase)
}

// PaddingPoint returns the public point used to pad rings.
func (s *Suite) PaddingPoint() curve.Point {
	return s.group.NewPoint().Set(s.padding)
}

func (s *Suite) String() string {
	return fmt.Sprintf("%s (0x%02x)", s.name, s.id)
}

// Encode returns the compressed encoding of p.
func (s *Suite) Encode(p curve.Point) []byte {
	data, err := p.MarshalBinary()
	if err != nil {
		panic(fmt.Sprintf("suite: failed to encode point: %v", err))
	}
	return data
}

// Challenge computes
//
//	hash(id ∥ 0x02 ∥ P₀ ∥ … ∥ Pₙ ∥ ad ∥ 0x00)[:ChallengeLen]
//
// and reads it as a big-endian integer modulo the group order.
func (s *Suite) Challenge(points []curve.Point, ad []byte) curve.Scalar {
	buf := []byte{s.id, domChallenge}
	for _, p := range points {
		buf = append(buf, s.Encode(p)...)
	}
	buf = append(buf, ad...)
	buf = append(buf, domBack)
	return curve.FromHash(s.group, s.hash(buf)[:s.challengeLen])
}

// PointToHash computes hash(id ∥ 0x03 ∥ cofactor⋅P ∥ 0x00).
func (s *Suite) PointToHash(p curve.Point) []byte {
	buf := []byte{s.id, domPointToHash}
	buf = append(buf, s.Encode(p.ClearCofactor())...)
	buf = append(buf, domBack)
	return s.hash(buf)
}

// ScalarFromHash reduces hash(id ∥ 0x04 ∥ data ∥ 0x00) modulo the group order.
func (s *Suite) ScalarFromHash(data []byte) curve.Scalar {
	buf := []byte{s.id, domScalarToHash}
	buf = append(buf, data...)
	buf = append(buf, domBack)
	return curve.FromHash(s.group, s.hash(buf))
}
