package vrf

import (
	"errors"
	"sync"

	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
)

// ErrBlindingConsumed is returned by Take after the first call.
var ErrBlindingConsumed = errors.New("vrf: blinding already consumed")

// Blinding holds the blinding factor b of a key commitment C = X + b⋅B.
//
// The factor can be taken exactly once: reusing it in two ring proofs would
// link them.
type Blinding struct {
	mu     sync.Mutex
	factor curve.Scalar
}

// NewBlinding wraps b.
func NewBlinding(b curve.Scalar) *Blinding {
	return &Blinding{factor: b}
}

// Take returns the blinding factor and erases it from the Blinding.
func (b *Blinding) Take() (curve.Scalar, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.factor == nil {
		return nil, ErrBlindingConsumed
	}
	out := b.factor
	b.factor = nil
	return out, nil
}

// Consumed reports whether Take was already called.
func (b *Blinding) Consumed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.factor == nil
}
