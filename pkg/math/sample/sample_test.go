package sample

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
)

func TestScalar(t *testing.T) {
	for _, group := range []curve.Curve{curve.Bandersnatch{}, curve.Edwards25519{}, curve.Secp256k1{}} {
		s, p := ScalarPointPair(rand.Reader, group)
		assert.False(t, s.IsZero())
		assert.True(t, s.ActOnBase().Equal(p))
	}
}

func TestScalarDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 128)
	a := Scalar(bytes.NewReader(seed), curve.Bandersnatch{})
	b := Scalar(bytes.NewReader(seed), curve.Bandersnatch{})
	assert.True(t, a.Equal(b))
}

func TestFr(t *testing.T) {
	a := Fr(rand.Reader)
	b := Fr(rand.Reader)
	assert.False(t, a.Equal(&b))
}

// This exists to save the results of functions we want to benchmark, to avoid
// having them optimized away.
var resultScalar curve.Scalar

func BenchmarkScalar(b *testing.B) {
	for i := 0; i < b.N; i++ {
		resultScalar = Scalar(rand.Reader, curve.Bandersnatch{})
	}
}
