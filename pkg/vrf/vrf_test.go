package vrf

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
	"golang.org/x/sync/errgroup"
)

func TestSecretKeyFromSeed(t *testing.T) {
	s := suite.BandersnatchSHA512()
	sk1 := SecretKeyFromSeed(s, []byte("test seed"))
	sk2 := SecretKeyFromSeed(s, []byte("test seed"))
	sk3 := SecretKeyFromSeed(s, []byte("other seed"))
	assert.True(t, sk1.Public().Equal(sk2.Public()))
	assert.False(t, sk1.Public().Equal(sk3.Public()))
	assert.True(t, sk1.Scalar().ActOnBase().Equal(sk1.Public().Point()))
}

func TestPublicKeyEncoding(t *testing.T) {
	for _, s := range suite.All() {
		sk := NewSecretKey(rand.Reader, s)
		data, err := sk.Public().MarshalBinary()
		require.NoError(t, err)
		pk, err := PublicKeyFromBytes(s, data)
		require.NoError(t, err)
		assert.True(t, pk.Equal(sk.Public()))
	}
}

func TestInvalidPublicKey(t *testing.T) {
	s := suite.BandersnatchSHA512()
	_, err := NewPublicKey(s, s.Curve().NewPoint())
	assert.ErrorIs(t, err, ErrInvalidPublic)

	_, err = NewPublicKey(s, suite.Ed25519SHA512().Curve().NewBasePoint())
	assert.ErrorIs(t, err, ErrSuiteMismatch)

	_, err = NewSecretKeyFromScalar(s, s.Curve().NewScalar())
	assert.ErrorIs(t, err, ErrZeroSecret)
}

func TestOutput(t *testing.T) {
	s := suite.BandersnatchSHA512()
	sk := SecretKeyFromSeed(s, []byte("test seed"))
	in1, err := NewInput(s, []byte("input 1"))
	require.NoError(t, err)
	in2, err := NewInput(s, []byte("input 2"))
	require.NoError(t, err)

	o1 := sk.Output(in1)
	assert.True(t, o1.Equal(sk.Output(in1)))
	assert.False(t, o1.Equal(sk.Output(in2)))
	assert.Equal(t, o1.Hash(), sk.Output(in1).Hash())
	assert.NotEqual(t, o1.Hash(), sk.Output(in2).Hash())
	assert.True(t, o1.Point().IsInPrimeSubgroup())
}

func TestInputFromPoint(t *testing.T) {
	s := suite.BandersnatchSHA512()
	in, err := InputFromPoint(s, s.Curve().NewBasePoint())
	require.NoError(t, err)
	assert.True(t, in.Point().Equal(s.Curve().NewBasePoint()))

	_, err = InputFromPoint(s, suite.Secp256k1SHA256().Curve().NewBasePoint())
	assert.ErrorIs(t, err, ErrSuiteMismatch)
}

func TestBlinding(t *testing.T) {
	s := suite.BandersnatchSHA512()
	factor := s.ScalarFromHash([]byte("blinding"))
	b := NewBlinding(factor)
	assert.False(t, b.Consumed())

	taken, err := b.Take()
	require.NoError(t, err)
	assert.True(t, taken.Equal(factor))
	assert.True(t, b.Consumed())

	_, err = b.Take()
	assert.ErrorIs(t, err, ErrBlindingConsumed)
}

func TestBlindingConcurrentTake(t *testing.T) {
	s := suite.BandersnatchSHA512()
	b := NewBlinding(s.ScalarFromHash([]byte("blinding")))

	const n = 16
	results := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			_, results[i] = b.Take()
			return nil
		})
	}
	require.NoError(t, g.Wait())

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrBlindingConsumed)
		}
	}
	assert.Equal(t, 1, successes)
}
