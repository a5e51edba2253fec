package curve

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var secp256k1Order = saferith.ModulusFromBytes(secp256k1.S256().N.Bytes())

// Secp256k1 is the prime-order curve used by Bitcoin.
type Secp256k1 struct{}

func (Secp256k1) NewPoint() Point {
	return new(Secp256k1Point)
}

func (Secp256k1) NewBasePoint() Point {
	out := new(Secp256k1Point)
	var one secp256k1.ModNScalar
	one.SetInt(1)
	secp256k1.ScalarBaseMultNonConst(&one, &out.value)
	return out
}

func (Secp256k1) NewScalar() Scalar {
	return newScalar(Secp256k1{}, false)
}

func (Secp256k1) Name() string {
	return "secp256k1"
}

func (Secp256k1) ScalarBits() int {
	return 256
}

func (Secp256k1) SafeScalarBytes() int {
	return 32 + 16
}

func (Secp256k1) Order() *saferith.Modulus {
	return secp256k1Order
}

func (Secp256k1) Cofactor() uint64 {
	return 1
}

func (Secp256k1) FieldBytes() int {
	return 32
}

// ArbitraryStringToPoint decodes 0x02 ∥ data[:32], i.e. data is read as the
// x coordinate of a point with an even y coordinate.
func (Secp256k1) ArbitraryStringToPoint(data []byte) (Point, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("invalid length for x coordinate: %d", len(data))
	}
	buf := make([]byte, 33)
	buf[0] = secp256k1.PubKeyFormatCompressedEven
	copy(buf[1:], data[:32])
	out := new(Secp256k1Point)
	if err := out.UnmarshalBinary(buf); err != nil {
		return nil, err
	}
	return out, nil
}

// Secp256k1Point is a point of secp256k1 in Jacobian coordinates.
type Secp256k1Point struct {
	value secp256k1.JacobianPoint
}

func castSecp256k1(generic Point) *Secp256k1Point {
	out, ok := generic.(*Secp256k1Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to Secp256k1Point: %v", generic))
	}
	return out
}

func (*Secp256k1Point) Curve() Curve {
	return Secp256k1{}
}

// MarshalBinary returns the 33 byte SEC1 compressed encoding of p.
// The identity is encoded as 33 zero bytes, which UnmarshalBinary rejects.
func (p *Secp256k1Point) MarshalBinary() ([]byte, error) {
	out := make([]byte, 33)
	if p.IsIdentity() {
		return out, nil
	}
	var affine secp256k1.JacobianPoint
	affine.Set(&p.value)
	affine.ToAffine()
	// Doing it this way is compatible with Bitcoin
	out[0] = secp256k1.PubKeyFormatCompressedEven
	if affine.Y.IsOdd() {
		out[0] = secp256k1.PubKeyFormatCompressedOdd
	}
	affine.X.PutBytesUnchecked(out[1:33])
	return out, nil
}

func (p *Secp256k1Point) UnmarshalBinary(data []byte) error {
	if len(data) != 33 {
		return fmt.Errorf("invalid length for Secp256k1Point: %d", len(data))
	}
	format := data[0]
	if !(format == secp256k1.PubKeyFormatCompressedOdd || format == secp256k1.PubKeyFormatCompressedEven) {
		return errors.New("curve.Point.Unmarshal: incorrect format")
	}
	var x, y secp256k1.FieldVal
	if overflow := x.SetByteSlice(data[1:33]); overflow {
		return errors.New("curve.Point.Unmarshal: invalid point: x >= field prime")
	}
	if !secp256k1.DecompressY(&x, format == secp256k1.PubKeyFormatCompressedOdd, &y) {
		return errNotOnCurve
	}
	y.Normalize()
	p.value.X.Set(&x)
	p.value.Y.Set(&y)
	p.value.Z.SetInt(1)
	return nil
}

func (p *Secp256k1Point) Add(that Point) Point {
	other := castSecp256k1(that)
	out := new(Secp256k1Point)
	secp256k1.AddNonConst(&p.value, &other.value, &out.value)
	return out
}

func (p *Secp256k1Point) Sub(that Point) Point {
	return p.Add(that.Negate())
}

func (p *Secp256k1Point) Negate() Point {
	out := new(Secp256k1Point)
	if p.IsIdentity() {
		return out
	}
	out.value.Set(&p.value)
	out.value.ToAffine()
	out.value.Y.Negate(1)
	out.value.Y.Normalize()
	return out
}

func (p *Secp256k1Point) Set(that Point) Point {
	other := castSecp256k1(that)
	p.value.Set(&other.value)
	return p
}

func (p *Secp256k1Point) Equal(that Point) bool {
	other := castSecp256k1(that)
	if p.IsIdentity() || other.IsIdentity() {
		return p.IsIdentity() && other.IsIdentity()
	}
	var a, b secp256k1.JacobianPoint
	a.Set(&p.value)
	b.Set(&other.value)
	a.ToAffine()
	b.ToAffine()
	return a.X.Equals(&b.X) && a.Y.Equals(&b.Y)
}

func (p *Secp256k1Point) IsIdentity() bool {
	return (p.value.X.IsZero() && p.value.Y.IsZero()) || p.value.Z.IsZero()
}

func (p *Secp256k1Point) ClearCofactor() Point {
	out := new(Secp256k1Point)
	out.value.Set(&p.value)
	return out
}

func (p *Secp256k1Point) IsInPrimeSubgroup() bool {
	return true
}

func (p *Secp256k1Point) mul(k *saferith.Nat) Point {
	var s secp256k1.ModNScalar
	s.SetByteSlice(natBytes(k, 32))
	out := new(Secp256k1Point)
	secp256k1.ScalarMultNonConst(&s, &p.value, &out.value)
	return out
}
