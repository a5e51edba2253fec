package curve

import (
	"errors"
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/cronokirby/saferith"
)

var (
	bandersnatchOnce   sync.Once
	bandersnatchParams bandersnatch.CurveParams
	bandersnatchOrder  *saferith.Modulus
)

func bandersnatchInit() {
	bandersnatchOnce.Do(func() {
		bandersnatchParams = bandersnatch.GetEdwardsCurve()
		bandersnatchOrder = saferith.ModulusFromBytes(bandersnatchParams.Order.Bytes())
	})
}

var (
	errNotOnCurve     = errors.New("invalid point: not on the curve")
	errNotTorsionFree = errors.New("invalid point: not in the prime-order subgroup")
	errNonCanonical   = errors.New("invalid point: non canonical encoding")
)

// Bandersnatch is the twisted Edwards curve defined over the scalar field of
// BLS12-381. Its cofactor is 4.
type Bandersnatch struct{}

func (Bandersnatch) NewPoint() Point {
	var p BandersnatchPoint
	p.p.Y.SetOne()
	return &p
}

func (Bandersnatch) NewBasePoint() Point {
	bandersnatchInit()
	var p BandersnatchPoint
	p.p.Set(&bandersnatchParams.Base)
	return &p
}

func (Bandersnatch) NewScalar() Scalar {
	return newScalar(Bandersnatch{}, true)
}

func (Bandersnatch) Name() string {
	return "bandersnatch"
}

func (c Bandersnatch) ScalarBits() int {
	return c.Order().BitLen()
}

func (c Bandersnatch) SafeScalarBytes() int {
	return (c.ScalarBits()+7)/8 + 16
}

func (Bandersnatch) Order() *saferith.Modulus {
	bandersnatchInit()
	return bandersnatchOrder
}

func (Bandersnatch) Cofactor() uint64 {
	return 4
}

func (Bandersnatch) FieldBytes() int {
	return fr.Bytes
}

func (Bandersnatch) ArbitraryStringToPoint(data []byte) (Point, error) {
	p, err := decodeBandersnatch(data)
	if err != nil {
		return nil, err
	}
	return &BandersnatchPoint{p: p}, nil
}

// Coefficients returns a and d such that a⋅x² + y² = 1 + d⋅x²⋅y².
func (Bandersnatch) Coefficients() (a, d fr.Element) {
	bandersnatchInit()
	return bandersnatchParams.A, bandersnatchParams.D
}

// BandersnatchPoint is a point of the Bandersnatch curve in affine coordinates.
type BandersnatchPoint struct {
	p bandersnatch.PointAffine
}

// NewBandersnatchPoint wraps an affine point. The point is not checked.
func NewBandersnatchPoint(p bandersnatch.PointAffine) *BandersnatchPoint {
	var out BandersnatchPoint
	out.p.Set(&p)
	return &out
}

func castBandersnatch(generic Point) *BandersnatchPoint {
	out, ok := generic.(*BandersnatchPoint)
	if !ok {
		panic(fmt.Sprintf("failed to convert to BandersnatchPoint: %v", generic))
	}
	return out
}

// Affine returns a copy of the underlying affine coordinates.
func (p *BandersnatchPoint) Affine() bandersnatch.PointAffine {
	return p.p
}

func (*BandersnatchPoint) Curve() Curve {
	return Bandersnatch{}
}

func (p *BandersnatchPoint) MarshalBinary() ([]byte, error) {
	return encodeBandersnatch(&p.p), nil
}

func (p *BandersnatchPoint) UnmarshalBinary(data []byte) error {
	if len(data) != fr.Bytes {
		return fmt.Errorf("invalid length for BandersnatchPoint: %d", len(data))
	}
	decoded, err := decodeBandersnatch(data)
	if err != nil {
		return err
	}
	out := BandersnatchPoint{p: decoded}
	if !out.IsInPrimeSubgroup() {
		return errNotTorsionFree
	}
	p.p = decoded
	return nil
}

func (p *BandersnatchPoint) Add(that Point) Point {
	other := castBandersnatch(that)
	var out BandersnatchPoint
	out.p.Add(&p.p, &other.p)
	return &out
}

func (p *BandersnatchPoint) Sub(that Point) Point {
	return p.Add(that.Negate())
}

func (p *BandersnatchPoint) Negate() Point {
	var out BandersnatchPoint
	out.p.Neg(&p.p)
	return &out
}

func (p *BandersnatchPoint) Set(that Point) Point {
	other := castBandersnatch(that)
	p.p.Set(&other.p)
	return p
}

func (p *BandersnatchPoint) Equal(that Point) bool {
	other := castBandersnatch(that)
	return p.p.Equal(&other.p)
}

func (p *BandersnatchPoint) IsIdentity() bool {
	return p.p.IsZero()
}

func (p *BandersnatchPoint) ClearCofactor() Point {
	var out BandersnatchPoint
	out.p.Double(&p.p)
	out.p.Double(&out.p)
	return &out
}

func (p *BandersnatchPoint) IsInPrimeSubgroup() bool {
	return p.p.IsOnCurve() && isTorsionFree(p)
}

func (p *BandersnatchPoint) mul(k *saferith.Nat) Point {
	var out BandersnatchPoint
	out.p.ScalarMultiplication(&p.p, k.Big())
	return &out
}

func (p *BandersnatchPoint) String() string {
	return fmt.Sprintf("BandersnatchPoint{X: %s, Y: %s}", p.p.X.String(), p.p.Y.String())
}

// encodeBandersnatch writes y in little-endian order, and stores the sign of x
// in the most significant bit of the last byte.
func encodeBandersnatch(p *bandersnatch.PointAffine) []byte {
	y := p.Y.Bytes()
	out := reversed(y[:])
	if p.X.LexicographicallyLargest() {
		out[len(out)-1] |= 0x80
	}
	return out
}

// decodeBandersnatch inverts encodeBandersnatch. It checks that the point lies
// on the curve, but not that it lies in the prime-order subgroup.
func decodeBandersnatch(data []byte) (bandersnatch.PointAffine, error) {
	var p bandersnatch.PointAffine
	if len(data) < fr.Bytes {
		return p, fmt.Errorf("invalid length for compressed BandersnatchPoint: %d", len(data))
	}
	buf := reversed(data[:fr.Bytes])
	negative := buf[0]&0x80 != 0
	buf[0] &= 0x7f
	if err := p.Y.SetBytesCanonical(buf); err != nil {
		return p, fmt.Errorf("invalid point: %w", err)
	}

	a, d := Bandersnatch{}.Coefficients()

	// x² = (1 - y²) / (a - d⋅y²)
	var y2, num, den, x2 fr.Element
	y2.Square(&p.Y)
	num.SetOne()
	num.Sub(&num, &y2)
	den.Mul(&d, &y2)
	den.Sub(&a, &den)
	if den.IsZero() {
		return p, errNotOnCurve
	}
	den.Inverse(&den)
	x2.Mul(&num, &den)
	if p.X.Sqrt(&x2) == nil {
		return p, errNotOnCurve
	}
	if p.X.IsZero() && negative {
		return p, errors.New("invalid point: non canonical encoding of x = 0")
	}
	if p.X.LexicographicallyLargest() != negative {
		p.X.Neg(&p.X)
	}
	return p, nil
}
