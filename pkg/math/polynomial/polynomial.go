package polynomial

import (
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/taurusgroup/ring-vrf/pkg/math/sample"
)

// Polynomial represents f(X) = a₀ + a₁⋅X + … + aₜ⋅Xᵗ over the scalar field of
// BLS12-381.
type Polynomial struct {
	coefficients []fr.Element
}

// NewPolynomial wraps the given coefficients, lowest degree first.
func NewPolynomial(coefficients []fr.Element) *Polynomial {
	return &Polynomial{coefficients: coefficients}
}

// Interpolate returns the polynomial of degree < domain.Cardinality taking the
// value evaluations[i] at ωⁱ. Missing evaluations are treated as 0.
func Interpolate(domain *fft.Domain, evaluations []fr.Element) *Polynomial {
	coefficients := make([]fr.Element, domain.Cardinality)
	copy(coefficients, evaluations)
	domain.FFTInverse(coefficients, fft.DIF)
	fft.BitReverse(coefficients)
	return &Polynomial{coefficients: coefficients}
}

// Coefficients returns the coefficients of p, lowest degree first.
// The slice is shared with p.
func (p *Polynomial) Coefficients() []fr.Element {
	return p.coefficients
}

// Blind adds (r₀ + r₁⋅X + … + r_{k-1}⋅X^{k-1})⋅(Xⁿ - 1) to p, with rᵢ read from
// rand. The evaluations of p on the subgroup of order n are unchanged.
func (p *Polynomial) Blind(rand io.Reader, n, k int) *Polynomial {
	if len(p.coefficients) < n+k {
		extended := make([]fr.Element, n+k)
		copy(extended, p.coefficients)
		p.coefficients = extended
	}
	for i := 0; i < k; i++ {
		r := sample.Fr(rand)
		p.coefficients[i].Sub(&p.coefficients[i], &r)
		p.coefficients[n+i].Add(&p.coefficients[n+i], &r)
	}
	return p
}

// Shift returns f(ω⋅X).
func (p *Polynomial) Shift(omega fr.Element) *Polynomial {
	out := make([]fr.Element, len(p.coefficients))
	var acc fr.Element
	acc.SetOne()
	for i := range p.coefficients {
		out[i].Mul(&p.coefficients[i], &acc)
		acc.Mul(&acc, &omega)
	}
	return &Polynomial{coefficients: out}
}

// EvaluateOnCoset returns the evaluations of p on the coset g⋅H where H is the
// subgroup generated by domain and g its coset shift, in natural order.
// It panics if the degree of p is not smaller than domain.Cardinality.
func (p *Polynomial) EvaluateOnCoset(domain *fft.Domain) []fr.Element {
	if uint64(len(p.coefficients)) > domain.Cardinality {
		panic("polynomial: degree too large for domain")
	}
	out := make([]fr.Element, domain.Cardinality)
	copy(out, p.coefficients)
	domain.FFT(out, fft.DIF, fft.OnCoset())
	fft.BitReverse(out)
	return out
}

// FromCosetEvaluations inverts EvaluateOnCoset, and keeps the first length
// coefficients. The evaluations are overwritten.
func FromCosetEvaluations(domain *fft.Domain, evaluations []fr.Element, length int) *Polynomial {
	domain.FFTInverse(evaluations, fft.DIF, fft.OnCoset())
	fft.BitReverse(evaluations)
	if length < len(evaluations) {
		evaluations = evaluations[:length]
	}
	return &Polynomial{coefficients: evaluations}
}
