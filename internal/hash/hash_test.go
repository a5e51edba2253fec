package hash

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
)

func sum(t *testing.T, h *Hash) []byte {
	t.Helper()
	out := make([]byte, 64)
	_, err := io.ReadFull(h.Digest(), out)
	require.NoError(t, err)
	return out
}

func TestHash_WriteAny(t *testing.T) {
	testFunc := func(vs ...interface{}) error {
		h := New("test")
		for _, v := range vs {
			if err := h.WriteAny(v); err != nil {
				return err
			}
		}
		return nil
	}

	group := curve.Bandersnatch{}
	assert.NoError(t, testFunc(group.NewBasePoint()))
	assert.NoError(t, testFunc(group.NewScalar()))
	assert.NoError(t, testFunc([]byte{1, 4, 6}))
	assert.NoError(t, testFunc(Labeled{Label: "custom", Bytes: []byte{2}}))
	assert.NoError(t, testFunc(group.NewBasePoint(), []byte{1, 4, 6}))

	assert.Panics(t, func() { _ = testFunc(42) })
}

func TestHash_DomainSeparation(t *testing.T) {
	h1 := New("a")
	h2 := New("b")
	require.NoError(t, h1.WriteAny([]byte("data")))
	require.NoError(t, h2.WriteAny([]byte("data")))
	assert.NotEqual(t, sum(t, h1), sum(t, h2))

	// The split between two byte slices is part of the input.
	h3 := New("a")
	h4 := New("a")
	require.NoError(t, h3.WriteAny([]byte("da"), []byte("ta")))
	require.NoError(t, h4.WriteAny([]byte("dat"), []byte("a")))
	assert.NotEqual(t, sum(t, h3), sum(t, h4))

	// So is the domain of each value.
	h5 := New("a")
	h6 := New("a")
	require.NoError(t, h5.WriteAny(Labeled{Label: "x", Bytes: []byte("data")}))
	require.NoError(t, h6.WriteAny([]byte("data")))
	assert.NotEqual(t, sum(t, h5), sum(t, h6))
}

func TestHash_Digest(t *testing.T) {
	h1 := New("digest")
	h2 := New("digest")
	require.NoError(t, h1.WriteAny([]byte("data")))
	require.NoError(t, h2.WriteAny([]byte("data")))
	long := make([]byte, 128)
	_, err := io.ReadFull(h1.Digest(), long)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(long, sum(t, h2)))
}
