package curve

import (
	"crypto/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var curves = []Curve{Bandersnatch{}, Edwards25519{}, Secp256k1{}}

func randomScalar(t *testing.T, group Curve) Scalar {
	buf := make([]byte, group.SafeScalarBytes())
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return FromHash(group, buf)
}

func TestPointEncoding(t *testing.T) {
	sizes := map[string]int{"bandersnatch": 32, "edwards25519": 32, "secp256k1": 33}
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			for i := 0; i < 16; i++ {
				p := randomScalar(t, group).ActOnBase()
				data, err := p.MarshalBinary()
				require.NoError(t, err)
				assert.Len(t, data, sizes[group.Name()])

				q := group.NewPoint()
				require.NoError(t, q.UnmarshalBinary(data))
				assert.True(t, p.Equal(q))

				data2, err := q.MarshalBinary()
				require.NoError(t, err)
				assert.Equal(t, data, data2)
			}
		})
	}
}

func TestScalarEncoding(t *testing.T) {
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			s := randomScalar(t, group)
			data, err := s.MarshalBinary()
			require.NoError(t, err)
			s2 := group.NewScalar()
			require.NoError(t, s2.UnmarshalBinary(data))
			assert.True(t, s.Equal(s2))

			tooBig := make([]byte, len(data))
			for i := range tooBig {
				tooBig[i] = 0xff
			}
			assert.Error(t, group.NewScalar().UnmarshalBinary(tooBig))
			assert.Error(t, group.NewScalar().UnmarshalBinary(data[1:]))
		})
	}
}

func TestArithmetic(t *testing.T) {
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			a := randomScalar(t, group)
			b := randomScalar(t, group)

			sum := group.NewScalar().Set(a).Add(b)
			assert.True(t, sum.Sub(b).Equal(a))

			inv := group.NewScalar().Set(a).Invert()
			one := group.NewScalar().SetNat(new(saferith.Nat).SetUint64(1))
			assert.True(t, inv.Mul(a).Equal(one))

			aG := a.ActOnBase()
			bG := b.ActOnBase()
			abG := group.NewScalar().Set(a).Add(b).ActOnBase()
			assert.True(t, aG.Add(bG).Equal(abG))
			assert.True(t, abG.Sub(bG).Equal(aG))
			assert.True(t, aG.Add(aG.Negate()).IsIdentity())

			zero := group.NewScalar()
			assert.True(t, zero.IsZero())
			assert.True(t, zero.ActOnBase().IsIdentity())
		})
	}
}

func TestSubgroup(t *testing.T) {
	for _, group := range curves {
		t.Run(group.Name(), func(t *testing.T) {
			g := group.NewBasePoint()
			assert.True(t, g.IsInPrimeSubgroup())
			assert.True(t, group.NewPoint().IsIdentity())
			assert.True(t, mulVarTime(g, group.Order().Big()).IsIdentity())

			h := g.ClearCofactor()
			c := group.NewScalar().SetNat(new(saferith.Nat).SetUint64(group.Cofactor()))
			assert.True(t, h.Equal(c.Act(g)))
		})
	}
}

func TestBandersnatchTorsion(t *testing.T) {
	// (0, -1) has order 2.
	var torsion bandersnatch.PointAffine
	torsion.Y.SetOne()
	torsion.Y.Neg(&torsion.Y)
	tp := NewBandersnatchPoint(torsion)
	require.True(t, tp.Add(tp).IsIdentity())
	assert.False(t, tp.IsInPrimeSubgroup())

	p := Bandersnatch{}.NewBasePoint().Add(tp)
	assert.False(t, p.IsInPrimeSubgroup())
	assert.True(t, p.ClearCofactor().IsInPrimeSubgroup())

	data, err := p.MarshalBinary()
	require.NoError(t, err)
	_, err = Bandersnatch{}.ArbitraryStringToPoint(data)
	assert.NoError(t, err)
	assert.Error(t, Bandersnatch{}.NewPoint().UnmarshalBinary(data))
}

func TestBandersnatchIdentity(t *testing.T) {
	id := Bandersnatch{}.NewPoint()
	data, err := id.MarshalBinary()
	require.NoError(t, err)
	q := Bandersnatch{}.NewPoint()
	require.NoError(t, q.UnmarshalBinary(data))
	assert.True(t, q.IsIdentity())
}

func TestEdwards25519NonCanonical(t *testing.T) {
	// y = p + 1 = 2²⁵⁵ - 18 reduces to y = 1, the identity.
	yPlusP := make([]byte, 32)
	for i := range yPlusP {
		yPlusP[i] = 0xff
	}
	yPlusP[0] = 0xee
	yPlusP[31] = 0x7f
	assert.Error(t, Edwards25519{}.NewPoint().UnmarshalBinary(yPlusP))
	_, err := Edwards25519{}.ArbitraryStringToPoint(yPlusP)
	assert.Error(t, err)

	// x = 0 with the sign bit set.
	negativeZero := make([]byte, 32)
	negativeZero[0] = 1
	negativeZero[31] = 0x80
	assert.Error(t, Edwards25519{}.NewPoint().UnmarshalBinary(negativeZero))

	id, err := Edwards25519{}.NewPoint().MarshalBinary()
	require.NoError(t, err)
	q := Edwards25519{}.NewPoint()
	require.NoError(t, q.UnmarshalBinary(id))
	assert.True(t, q.IsIdentity())
}
