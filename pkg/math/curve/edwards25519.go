package curve

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"
	"github.com/cronokirby/saferith"
)

// ed25519Order is ℓ = 2²⁵² + 27742317777372353535851937790883648493.
var ed25519Order = saferith.ModulusFromBytes(mustDecodeHex("1000000000000000000000000000000014def9dea2f79cd65812631a5cf5d3ed"))

// Edwards25519 is the twisted Edwards form of Curve25519. Its cofactor is 8.
type Edwards25519 struct{}

func (Edwards25519) NewPoint() Point {
	return &Edwards25519Point{p: edwards25519.NewIdentityPoint()}
}

func (Edwards25519) NewBasePoint() Point {
	return &Edwards25519Point{p: edwards25519.NewGeneratorPoint()}
}

func (Edwards25519) NewScalar() Scalar {
	return newScalar(Edwards25519{}, true)
}

func (Edwards25519) Name() string {
	return "edwards25519"
}

func (Edwards25519) ScalarBits() int {
	return ed25519Order.BitLen()
}

func (Edwards25519) SafeScalarBytes() int {
	return 64
}

func (Edwards25519) Order() *saferith.Modulus {
	return ed25519Order
}

func (Edwards25519) Cofactor() uint64 {
	return 8
}

func (Edwards25519) FieldBytes() int {
	return 32
}

func (Edwards25519) ArbitraryStringToPoint(data []byte) (Point, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("invalid length for compressed Edwards25519Point: %d", len(data))
	}
	p, err := decodeEdwards25519(data[:32])
	if err != nil {
		return nil, err
	}
	return &Edwards25519Point{p: p}, nil
}

// Edwards25519Point is a point of edwards25519.
type Edwards25519Point struct {
	p *edwards25519.Point
}

func castEdwards25519(generic Point) *Edwards25519Point {
	out, ok := generic.(*Edwards25519Point)
	if !ok {
		panic(fmt.Sprintf("failed to convert to Edwards25519Point: %v", generic))
	}
	return out
}

func (*Edwards25519Point) Curve() Curve {
	return Edwards25519{}
}

func (p *Edwards25519Point) MarshalBinary() ([]byte, error) {
	return p.p.Bytes(), nil
}

func (p *Edwards25519Point) UnmarshalBinary(data []byte) error {
	if len(data) != 32 {
		return fmt.Errorf("invalid length for Edwards25519Point: %d", len(data))
	}
	decoded, err := decodeEdwards25519(data)
	if err != nil {
		return err
	}
	if !isTorsionFree(&Edwards25519Point{p: decoded}) {
		return errNotTorsionFree
	}
	p.p = decoded
	return nil
}

func (p *Edwards25519Point) Add(that Point) Point {
	other := castEdwards25519(that)
	return &Edwards25519Point{p: new(edwards25519.Point).Add(p.p, other.p)}
}

func (p *Edwards25519Point) Sub(that Point) Point {
	other := castEdwards25519(that)
	return &Edwards25519Point{p: new(edwards25519.Point).Subtract(p.p, other.p)}
}

func (p *Edwards25519Point) Negate() Point {
	return &Edwards25519Point{p: new(edwards25519.Point).Negate(p.p)}
}

func (p *Edwards25519Point) Set(that Point) Point {
	other := castEdwards25519(that)
	p.p = new(edwards25519.Point).Set(other.p)
	return p
}

func (p *Edwards25519Point) Equal(that Point) bool {
	other := castEdwards25519(that)
	return p.p.Equal(other.p) == 1
}

func (p *Edwards25519Point) IsIdentity() bool {
	return p.p.Equal(edwards25519.NewIdentityPoint()) == 1
}

func (p *Edwards25519Point) ClearCofactor() Point {
	return &Edwards25519Point{p: new(edwards25519.Point).MultByCofactor(p.p)}
}

func (p *Edwards25519Point) IsInPrimeSubgroup() bool {
	return isTorsionFree(p)
}

func (p *Edwards25519Point) mul(k *saferith.Nat) Point {
	s, err := edwards25519.NewScalar().SetCanonicalBytes(reversed(natBytes(k, 32)))
	if err != nil {
		panic(fmt.Sprintf("edwards25519: unreduced scalar: %v", err))
	}
	return &Edwards25519Point{p: new(edwards25519.Point).ScalarMult(s, p.p)}
}

func (p *Edwards25519Point) String() string {
	return fmt.Sprintf("Edwards25519Point{%x}", p.p.Bytes())
}

// decodeEdwards25519 decodes a compressed point, and rejects encodings of y
// that are not reduced modulo p, which SetBytes accepts.
func decodeEdwards25519(data []byte) (*edwards25519.Point, error) {
	p, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(p.Bytes(), data) {
		return nil, errNonCanonical
	}
	return p, nil
}

// natBytes returns the big-endian encoding of k on exactly size bytes.
func natBytes(k *saferith.Nat, size int) []byte {
	raw := k.Bytes()
	out := make([]byte, size)
	if len(raw) > size {
		copy(out, raw[len(raw)-size:])
	} else {
		copy(out[size-len(raw):], raw)
	}
	return out
}

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}
