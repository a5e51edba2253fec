package curve

import (
	"encoding"
	"math/big"

	"github.com/cronokirby/saferith"
)

// Curve represents the prime-order subgroup of an elliptic curve, together
// with the encodings used by the VRF suites built over it.
type Curve interface {
	// NewPoint returns the identity element.
	NewPoint() Point
	// NewBasePoint returns the generator of the prime-order subgroup.
	NewBasePoint() Point
	// NewScalar returns the zero scalar.
	NewScalar() Scalar
	// Name returns a unique identifier for this curve.
	Name() string
	// ScalarBits is the bit length of the subgroup order.
	ScalarBits() int
	// SafeScalarBytes is the number of uniform bytes needed to sample a scalar
	// with negligible bias.
	SafeScalarBytes() int
	// Order is the order of the prime-order subgroup.
	Order() *saferith.Modulus
	// Cofactor is the number of curve points divided by Order.
	Cofactor() uint64
	// FieldBytes is the byte length of the base field modulus, which is also
	// the number of hash bytes consumed by ArbitraryStringToPoint.
	FieldBytes() int
	// ArbitraryStringToPoint decodes the first FieldBytes bytes of data as a
	// compressed point. The result lies on the curve but not necessarily in the
	// prime-order subgroup.
	ArbitraryStringToPoint(data []byte) (Point, error)
}

// Scalar is an element of the scalar field of a Curve.
//
// The arithmetic methods modify the receiver and return it.
type Scalar interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Negate() Scalar
	Mul(Scalar) Scalar
	Invert() Scalar
	Equal(Scalar) bool
	IsZero() bool
	Set(Scalar) Scalar
	SetNat(*saferith.Nat) Scalar
	// Nat returns a copy of the value as a natural number reduced mod Order.
	Nat() *saferith.Nat
	Act(Point) Point
	ActOnBase() Point
}

// Point is an element of a Curve.
//
// Unlike Scalar, the methods of Point return new values and leave the
// receiver untouched, except for Set and UnmarshalBinary.
type Point interface {
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
	Curve() Curve
	Add(Point) Point
	Sub(Point) Point
	Negate() Point
	Set(Point) Point
	Equal(Point) bool
	IsIdentity() bool
	// ClearCofactor returns Cofactor()·p.
	ClearCofactor() Point
	// IsInPrimeSubgroup reports whether Order()·p is the identity.
	IsInPrimeSubgroup() bool
}

// multiplier is implemented by every Point of this package, and is what
// Scalar.Act dispatches to.
type multiplier interface {
	mul(k *saferith.Nat) Point
}

// FromHash converts a hash value to a Scalar, reading it as a big-endian
// integer reduced modulo the group order.
//
// This differs from the [SECG] convention of truncating to the bit length of
// the order; VRF challenges are reduced rather than truncated.
func FromHash(group Curve, h []byte) Scalar {
	s := new(saferith.Nat).SetBytes(h)
	return group.NewScalar().SetNat(s)
}

// MakeInt returns the value of s as a big.Int.
func MakeInt(s Scalar) *big.Int {
	return s.Nat().Big()
}

// mulVarTime computes k·p with a plain double-and-add.
//
// It only relies on Point.Add, so unlike the curve specific scalar
// multiplications it is correct for points outside the prime-order subgroup.
// It runs in variable time and must only be used on public values.
func mulVarTime(p Point, k *big.Int) Point {
	result := p.Curve().NewPoint()
	for i := k.BitLen() - 1; i >= 0; i-- {
		result = result.Add(result)
		if k.Bit(i) == 1 {
			result = result.Add(p)
		}
	}
	return result
}

// isTorsionFree reports whether order·p is the identity.
func isTorsionFree(p Point) bool {
	return mulVarTime(p, p.Curve().Order().Big()).IsIdentity()
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}
