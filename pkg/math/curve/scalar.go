package curve

import (
	"errors"
	"fmt"

	"github.com/cronokirby/saferith"
)

// scalar is the Scalar implementation shared by every curve of this package.
//
// The value is always kept reduced modulo the group order, with the announced
// length of the order, so that saferith operations stay constant time.
type scalar struct {
	group Curve
	// littleEndian selects the byte order of MarshalBinary.
	littleEndian bool
	value        *saferith.Nat
}

func newScalar(group Curve, littleEndian bool) *scalar {
	return &scalar{
		group:        group,
		littleEndian: littleEndian,
		value:        new(saferith.Nat).Mod(new(saferith.Nat).SetUint64(0), group.Order()),
	}
}

func castScalar(group Curve, generic Scalar) *scalar {
	out, ok := generic.(*scalar)
	if !ok || out.group.Name() != group.Name() {
		panic(fmt.Sprintf("failed to convert to %s scalar: %v", group.Name(), generic))
	}
	return out
}

func (s *scalar) byteLen() int {
	return (s.group.Order().BitLen() + 7) / 8
}

func (s *scalar) Curve() Curve {
	return s.group
}

func (s *scalar) MarshalBinary() ([]byte, error) {
	raw := s.value.Bytes()
	out := make([]byte, s.byteLen())
	copy(out[len(out)-len(raw):], raw)
	if s.littleEndian {
		out = reversed(out)
	}
	return out, nil
}

func (s *scalar) UnmarshalBinary(data []byte) error {
	if len(data) != s.byteLen() {
		return fmt.Errorf("invalid length for %s scalar: %d", s.group.Name(), len(data))
	}
	if s.littleEndian {
		data = reversed(data)
	}
	v := new(saferith.Nat).SetBytes(data)
	if _, _, lt := v.CmpMod(s.group.Order()); lt != 1 {
		return errors.New("curve.Scalar.Unmarshal: scalar was >= q")
	}
	s.value = new(saferith.Nat).Mod(v, s.group.Order())
	return nil
}

func (s *scalar) Add(that Scalar) Scalar {
	other := castScalar(s.group, that)
	s.value = new(saferith.Nat).ModAdd(s.value, other.value, s.group.Order())
	return s
}

func (s *scalar) Sub(that Scalar) Scalar {
	other := castScalar(s.group, that)
	s.value = new(saferith.Nat).ModSub(s.value, other.value, s.group.Order())
	return s
}

func (s *scalar) Negate() Scalar {
	s.value = new(saferith.Nat).ModNeg(s.value, s.group.Order())
	return s
}

func (s *scalar) Mul(that Scalar) Scalar {
	other := castScalar(s.group, that)
	s.value = new(saferith.Nat).ModMul(s.value, other.value, s.group.Order())
	return s
}

func (s *scalar) Invert() Scalar {
	s.value = new(saferith.Nat).ModInverse(s.value, s.group.Order())
	return s
}

func (s *scalar) Equal(that Scalar) bool {
	other := castScalar(s.group, that)
	return s.value.Eq(other.value) == 1
}

func (s *scalar) IsZero() bool {
	return s.value.EqZero() == 1
}

func (s *scalar) Set(that Scalar) Scalar {
	other := castScalar(s.group, that)
	s.value = new(saferith.Nat).Mod(other.value, s.group.Order())
	return s
}

func (s *scalar) SetNat(x *saferith.Nat) Scalar {
	s.value = new(saferith.Nat).Mod(x, s.group.Order())
	return s
}

func (s *scalar) Nat() *saferith.Nat {
	return new(saferith.Nat).Mod(s.value, s.group.Order())
}

func (s *scalar) Act(that Point) Point {
	if that.Curve().Name() != s.group.Name() {
		panic(fmt.Sprintf("failed to act on %s point with %s scalar", that.Curve().Name(), s.group.Name()))
	}
	m, ok := that.(multiplier)
	if !ok {
		panic(fmt.Sprintf("unsupported point type: %T", that))
	}
	return m.mul(s.value)
}

func (s *scalar) ActOnBase() Point {
	return s.Act(s.group.NewBasePoint())
}

func (s *scalar) String() string {
	return s.value.Big().String()
}
