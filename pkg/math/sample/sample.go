package sample

import (
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/taurusgroup/ring-vrf/internal/params"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
)

const maxIterations = 255

var ErrMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Scalar returns a new non-zero *curve.Scalar by reading bytes from rand.
//
// SafeScalarBytes are read and reduced, so the bias is negligible.
func Scalar(rand io.Reader, group curve.Curve) curve.Scalar {
	buffer := make([]byte, group.SafeScalarBytes())
	for i := 0; i < maxIterations; i++ {
		mustReadBits(rand, buffer)
		s := curve.FromHash(group, buffer)
		if !s.IsZero() {
			return s
		}
	}
	panic(ErrMaxIterations)
}

// ScalarPointPair returns a new *curve.Scalar/*curve.Point tuple (x,X) by reading bytes from rand.
// The tuple satisfies X = x⋅G where G is the base point of the curve.
func ScalarPointPair(rand io.Reader, group curve.Curve) (curve.Scalar, curve.Point) {
	s := Scalar(rand, group)
	return s, s.ActOnBase()
}

// Fr returns a uniform element of the BLS12-381 scalar field.
func Fr(rand io.Reader) fr.Element {
	buffer := make([]byte, params.NonceBytes)
	mustReadBits(rand, buffer)
	var e fr.Element
	e.SetBytes(buffer)
	return e
}
