package suite

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
)

func TestCatalog(t *testing.T) {
	ids := map[byte]bool{}
	for _, s := range All() {
		assert.False(t, ids[s.ID()], "duplicate id 0x%02x", s.ID())
		ids[s.ID()] = true
		assert.GreaterOrEqual(t, len(s.Hash(nil)), s.Curve().FieldBytes())
	}
	assert.Equal(t, byte(0x33), BandersnatchSHA512().ID())
	assert.Equal(t, 32, BandersnatchSHA512().ChallengeLen())
	assert.Len(t, BandersnatchSHA512().Hash([]byte("x")), 64)
	assert.Same(t, BandersnatchSHA512(), BandersnatchSHA512())
}

func TestHashToCurve(t *testing.T) {
	for _, s := range All() {
		t.Run(s.Name(), func(t *testing.T) {
			for i := 0; i < 8; i++ {
				data := []byte(fmt.Sprintf("input %d", i))
				p, ok := s.HashToCurve(data)
				require.True(t, ok)
				assert.True(t, p.IsInPrimeSubgroup())
				assert.False(t, p.IsIdentity())

				q, ok := s.HashToCurve(data)
				require.True(t, ok)
				assert.True(t, p.Equal(q))

				// The encoding decodes with the subgroup check enabled.
				r := s.Curve().NewPoint()
				require.NoError(t, r.UnmarshalBinary(s.Encode(p)))
				assert.True(t, p.Equal(r))
			}
		})
	}
}

func TestHashToCurveDomainSeparation(t *testing.T) {
	data := []byte("hello world")
	a, ok := BandersnatchSHA512().HashToCurve(data)
	require.True(t, ok)
	b, ok := BandersnatchBlake2b().HashToCurve(data)
	require.True(t, ok)
	assert.False(t, a.Equal(b))

	other, err := New("other", 0x35, 32, curve.Bandersnatch{}, sha512Sum)
	require.NoError(t, err)
	c, ok := other.HashToCurve(data)
	require.True(t, ok)
	assert.False(t, a.Equal(c))

	d, ok := BandersnatchSHA512().HashToCurve([]byte("hello world!"))
	require.True(t, ok)
	assert.False(t, a.Equal(d))
}

func TestShortDigest(t *testing.T) {
	short := func(data []byte) []byte { return sha256Sum(data)[:16] }

	_, err := New("short", 0x01, 16, curve.Bandersnatch{}, short)
	assert.ErrorIs(t, err, ErrShortDigest)

	s := &Suite{name: "short", id: 0x01, challengeLen: 16, group: curve.Bandersnatch{}, hash: short}
	p, ok := s.HashToCurve([]byte("data"))
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestInvalidChallengeLength(t *testing.T) {
	_, err := New("bad", 0x01, 65, curve.Bandersnatch{}, sha512Sum)
	assert.Error(t, err)
	_, err = New("bad", 0x01, 0, curve.Bandersnatch{}, sha512Sum)
	assert.Error(t, err)
}

func TestGenerators(t *testing.T) {
	for _, s := range All() {
		b := s.BlindingBase()
		assert.True(t, b.IsInPrimeSubgroup())
		assert.False(t, b.Equal(s.Curve().NewBasePoint()))
		assert.False(t, b.Equal(s.PaddingPoint()))
		assert.True(t, s.PaddingPoint().IsInPrimeSubgroup())
	}
}

func TestChallenge(t *testing.T) {
	s := BandersnatchSHA512()
	g := s.Curve().NewBasePoint()
	b := s.BlindingBase()

	c1 := s.Challenge([]curve.Point{g, b}, []byte("ad"))
	c2 := s.Challenge([]curve.Point{g, b}, []byte("ad"))
	assert.True(t, c1.Equal(c2))

	assert.False(t, c1.Equal(s.Challenge([]curve.Point{g, b}, []byte("da"))))
	assert.False(t, c1.Equal(s.Challenge([]curve.Point{b, g}, []byte("ad"))))

	// 16 byte challenges stay below 2¹²⁸.
	e := Ed25519SHA512()
	c := e.Challenge([]curve.Point{e.Curve().NewBasePoint()}, nil)
	assert.LessOrEqual(t, curve.MakeInt(c).BitLen(), 128)
}

func TestPointToHash(t *testing.T) {
	s := BandersnatchSHA512()
	p, ok := s.HashToCurve([]byte("output"))
	require.True(t, ok)
	h1 := s.PointToHash(p)
	assert.Len(t, h1, 64)
	assert.Equal(t, h1, s.PointToHash(p))
	assert.NotEqual(t, h1, s.PointToHash(s.Curve().NewBasePoint()))
}
