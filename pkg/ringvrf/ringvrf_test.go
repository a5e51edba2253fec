package ringvrf

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ring-vrf/internal/test"
	"github.com/taurusgroup/ring-vrf/pkg/pedersen"
	"github.com/taurusgroup/ring-vrf/pkg/ring"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
	"golang.org/x/sync/errgroup"
)

type fixture struct {
	ctx      *ring.Context
	secrets  []*vrf.SecretKey
	ring     []*vrf.PublicKey
	pk       *ring.ProverKey
	verifier *ring.Verifier
}

func newFixture(t *testing.T, maxRingSize, ringSize int) *fixture {
	t.Helper()
	s := suite.BandersnatchSHA512()
	ctx, err := ring.NewContext(s, test.SRS(ring.SRSSize(maxRingSize)), maxRingSize)
	require.NoError(t, err)
	secrets, members := test.Keys(s, ringSize)
	pk, err := ctx.ProverKey(members)
	require.NoError(t, err)
	vk, err := ctx.VerifierKey(members)
	require.NoError(t, err)
	return &fixture{
		ctx:      ctx,
		secrets:  secrets,
		ring:     members,
		pk:       pk,
		verifier: ctx.Verifier(vk),
	}
}

func (f *fixture) prover(t *testing.T, index int) *ring.Prover {
	t.Helper()
	p, err := f.ctx.Prover(f.pk, index)
	require.NoError(t, err)
	return p
}

func newInput(t *testing.T, data string) *vrf.Input {
	t.Helper()
	input, err := vrf.NewInput(suite.BandersnatchSHA512(), []byte(data))
	require.NoError(t, err)
	return input
}

func TestSignVerify(t *testing.T) {
	f := newFixture(t, 2, 2)
	input := newInput(t, "input")
	for index, sk := range f.secrets {
		sig, err := Sign(rand.Reader, sk, input, []byte("ad"), f.prover(t, index))
		require.NoError(t, err)
		assert.NoError(t, Verify(input, []byte("ad"), sig, f.verifier))

		assert.True(t, sig.Output().Equal(sk.Output(input)))
		assert.Equal(t, sk.Output(input).Hash(), sig.Output().Hash())
	}
}

func TestOutputIsUnlinkable(t *testing.T) {
	f := newFixture(t, 2, 2)
	input := newInput(t, "input")
	a, err := Sign(rand.Reader, f.secrets[0], input, nil, f.prover(t, 0))
	require.NoError(t, err)
	b, err := Sign(rand.Reader, f.secrets[0], input, nil, f.prover(t, 0))
	require.NoError(t, err)

	assert.True(t, a.Output().Equal(b.Output()))
	assert.False(t, a.Pedersen().KeyCommitment().Equal(b.Pedersen().KeyCommitment()))
}

func TestNegative(t *testing.T) {
	f := newFixture(t, 2, 2)
	input := newInput(t, "input")
	ad := []byte("ad")
	sig, err := Sign(rand.Reader, f.secrets[0], input, ad, f.prover(t, 0))
	require.NoError(t, err)
	require.NoError(t, Verify(input, ad, sig, f.verifier))

	t.Run("associated data", func(t *testing.T) {
		assert.ErrorIs(t, Verify(input, []byte("other"), sig, f.verifier), ErrVerificationFailure)
	})

	t.Run("input", func(t *testing.T) {
		assert.ErrorIs(t, Verify(newInput(t, "other"), ad, sig, f.verifier), ErrVerificationFailure)
	})

	t.Run("ring proof of another list", func(t *testing.T) {
		s := suite.BandersnatchSHA512()
		secrets, members := test.Keys(s, 2)
		other := []*vrf.PublicKey{members[0], vrf.SecretKeyFromSeed(s, []byte("outsider")).Public()}
		pk, err := f.ctx.ProverKey(other)
		require.NoError(t, err)
		p, err := f.ctx.Prover(pk, 0)
		require.NoError(t, err)
		otherSig, err := Sign(rand.Reader, secrets[0], input, ad, p)
		require.NoError(t, err)

		mixed := &Signature{pedersen: sig.pedersen, proof: otherSig.proof}
		assert.ErrorIs(t, Verify(input, ad, mixed, f.verifier), ErrVerificationFailure)
		assert.ErrorIs(t, Verify(input, ad, otherSig, f.verifier), ErrVerificationFailure)
	})

	t.Run("wrong index", func(t *testing.T) {
		wrong, err := Sign(rand.Reader, f.secrets[0], input, ad, f.prover(t, 1))
		require.NoError(t, err)
		assert.ErrorIs(t, Verify(input, ad, wrong, f.verifier), ErrVerificationFailure)
	})

	t.Run("identity commitment", func(t *testing.T) {
		s := suite.BandersnatchSHA512()
		empty := EmptySignature(s)
		assert.ErrorIs(t, Verify(input, ad, empty, f.verifier), ErrVerificationFailure)
		assert.ErrorIs(t, Verify(input, ad, nil, f.verifier), ErrVerificationFailure)
	})
}

func TestSuiteMismatch(t *testing.T) {
	f := newFixture(t, 2, 1)
	blake := suite.BandersnatchBlake2b()
	sk := vrf.SecretKeyFromSeed(blake, []byte("seed"))
	input, err := vrf.NewInput(blake, []byte("input"))
	require.NoError(t, err)
	_, err = Sign(rand.Reader, sk, input, nil, f.prover(t, 0))
	assert.ErrorIs(t, err, ErrSuiteMismatch)

	sig, err := Sign(rand.Reader, f.secrets[0], newInput(t, "input"), nil, f.prover(t, 0))
	require.NoError(t, err)
	assert.ErrorIs(t, Verify(input, nil, sig, f.verifier), ErrVerificationFailure)
}

func TestEncoding(t *testing.T) {
	f := newFixture(t, 2, 2)
	input := newInput(t, "input")
	sig, err := Sign(rand.Reader, f.secrets[1], input, []byte("ad"), f.prover(t, 1))
	require.NoError(t, err)

	data, err := sig.MarshalBinary()
	require.NoError(t, err)
	decoded := EmptySignature(suite.BandersnatchSHA512())
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.NoError(t, Verify(input, []byte("ad"), decoded, f.verifier))

	data2, err := decoded.MarshalBinary()
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, data2))

	assert.Error(t, decoded.UnmarshalBinary(data[1:]))
	assert.ErrorIs(t, new(Signature).UnmarshalBinary(data), pedersen.ErrNilFields)
}

func TestConcurrentVerify(t *testing.T) {
	f := newFixture(t, 2, 2)
	input := newInput(t, "input")
	sigs := make([]*Signature, len(f.secrets))
	for i, sk := range f.secrets {
		var err error
		sigs[i], err = Sign(rand.Reader, sk, input, nil, f.prover(t, i))
		require.NoError(t, err)
	}
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		sig := sigs[i%len(sigs)]
		g.Go(func() error {
			return Verify(input, nil, sig, f.verifier)
		})
	}
	assert.NoError(t, g.Wait())
}

func TestRingOf1024(t *testing.T) {
	if testing.Short() {
		t.Skip("large ring")
	}
	const signer = 3
	f := newFixture(t, 1024, 1024)
	input := newInput(t, "input")
	sig, err := Sign(rand.Reader, f.secrets[signer], input, []byte("foo"), f.prover(t, signer))
	require.NoError(t, err)
	assert.NoError(t, Verify(input, []byte("foo"), sig, f.verifier))
	assert.ErrorIs(t, Verify(input, []byte("bar"), sig, f.verifier), ErrVerificationFailure)
}
