package vrf

import (
	"errors"
	"fmt"
	"io"

	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"github.com/taurusgroup/ring-vrf/pkg/math/sample"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
)

var (
	ErrZeroSecret    = errors.New("vrf: secret key is zero")
	ErrInvalidPublic = errors.New("vrf: public key is not a valid group element")
	ErrSuiteMismatch = errors.New("vrf: values belong to different suites")
)

// SecretKey is a scalar x, with the public key X = x⋅G.
type SecretKey struct {
	suite  *suite.Suite
	x      curve.Scalar
	public *PublicKey
}

// NewSecretKey samples a SecretKey from rand.
func NewSecretKey(rand io.Reader, s *suite.Suite) *SecretKey {
	sk, _ := NewSecretKeyFromScalar(s, sample.Scalar(rand, s.Curve()))
	return sk
}

// SecretKeyFromSeed derives a SecretKey deterministically from seed.
func SecretKeyFromSeed(s *suite.Suite, seed []byte) *SecretKey {
	sk, err := NewSecretKeyFromScalar(s, s.ScalarFromHash(seed))
	if err != nil {
		panic(fmt.Sprintf("vrf: seed maps to the zero scalar: %v", err))
	}
	return sk
}

// NewSecretKeyFromScalar wraps x. It fails if x is zero.
func NewSecretKeyFromScalar(s *suite.Suite, x curve.Scalar) (*SecretKey, error) {
	if x.IsZero() {
		return nil, ErrZeroSecret
	}
	x = s.Curve().NewScalar().Set(x)
	return &SecretKey{
		suite:  s,
		x:      x,
		public: &PublicKey{suite: s, point: x.ActOnBase()},
	}, nil
}

func (sk *SecretKey) Suite() *suite.Suite { return sk.suite }

// Scalar returns a copy of the secret scalar.
func (sk *SecretKey) Scalar() curve.Scalar {
	return sk.suite.Curve().NewScalar().Set(sk.x)
}

// Public returns X = x⋅G.
func (sk *SecretKey) Public() *PublicKey { return sk.public }

// Output computes the VRF output x⋅I.
func (sk *SecretKey) Output(input *Input) *Output {
	return &Output{suite: sk.suite, point: sk.x.Act(input.point)}
}

// PublicKey is a point of the prime-order subgroup, different from the
// identity.
type PublicKey struct {
	suite *suite.Suite
	point curve.Point
}

// NewPublicKey checks that p is a valid public key for the suite.
func NewPublicKey(s *suite.Suite, p curve.Point) (*PublicKey, error) {
	if p.Curve().Name() != s.Curve().Name() {
		return nil, ErrSuiteMismatch
	}
	if p.IsIdentity() || !p.IsInPrimeSubgroup() {
		return nil, ErrInvalidPublic
	}
	return &PublicKey{suite: s, point: s.Curve().NewPoint().Set(p)}, nil
}

// PublicKeyFromBytes decodes a PublicKey encoded with MarshalBinary.
func PublicKeyFromBytes(s *suite.Suite, data []byte) (*PublicKey, error) {
	p := s.Curve().NewPoint()
	if err := p.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("vrf: public key: %w", err)
	}
	return NewPublicKey(s, p)
}

func (pk *PublicKey) Suite() *suite.Suite { return pk.suite }

// Point returns a copy of X.
func (pk *PublicKey) Point() curve.Point {
	return pk.suite.Curve().NewPoint().Set(pk.point)
}

func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.suite.ID() == other.suite.ID() && pk.point.Equal(other.point)
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return pk.point.MarshalBinary()
}
