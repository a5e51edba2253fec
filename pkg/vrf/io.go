package vrf

import (
	"errors"

	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
)

// ErrNoCurvePoint is returned when hashing an input to the curve fails.
// Callers may retry with different input bytes.
var ErrNoCurvePoint = errors.New("vrf: no curve point found for input")

// Input is a VRF input, mapped to the prime-order subgroup.
type Input struct {
	suite *suite.Suite
	point curve.Point
}

// NewInput hashes data to the curve of s.
func NewInput(s *suite.Suite, data []byte) (*Input, error) {
	p, ok := s.HashToCurve(data)
	if !ok {
		return nil, ErrNoCurvePoint
	}
	return &Input{suite: s, point: p}, nil
}

// InputFromPoint uses p directly as an input. p must lie in the prime-order
// subgroup.
func InputFromPoint(s *suite.Suite, p curve.Point) (*Input, error) {
	if p.Curve().Name() != s.Curve().Name() {
		return nil, ErrSuiteMismatch
	}
	if !p.IsInPrimeSubgroup() {
		return nil, ErrNoCurvePoint
	}
	return &Input{suite: s, point: s.Curve().NewPoint().Set(p)}, nil
}

func (in *Input) Suite() *suite.Suite { return in.suite }

// Point returns a copy of the input point.
func (in *Input) Point() curve.Point {
	return in.suite.Curve().NewPoint().Set(in.point)
}

// Output is a VRF output x⋅I.
type Output struct {
	suite *suite.Suite
	point curve.Point
}

// NewOutput wraps p as an output of s.
func NewOutput(s *suite.Suite, p curve.Point) *Output {
	return &Output{suite: s, point: s.Curve().NewPoint().Set(p)}
}

// Point returns a copy of the output point.
func (o *Output) Point() curve.Point {
	return o.suite.Curve().NewPoint().Set(o.point)
}

// Hash returns the pseudorandom bytes of the output.
func (o *Output) Hash() []byte {
	return o.suite.PointToHash(o.point)
}

func (o *Output) Equal(other *Output) bool {
	return o.suite.ID() == other.suite.ID() && o.point.Equal(other.point)
}
