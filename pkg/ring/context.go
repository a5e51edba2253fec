// Package ring proves that a Pedersen commitment C = X + b⋅B hides a public
// key X from an ordered list of keys, without revealing which one.
//
// The ring is stored in three KZG committed columns over a multiplicative
// domain of size n: the coordinates of the keys (padded to the capacity of
// the context, then followed by the powers 2ʲ⋅B of the blinding base) and a
// selector marking the key rows. The prover commits to a one-hot vector on
// the key rows concatenated with the bits of b, and to the running sum of the
// selected points, which must end on C.
package ring

import (
	"fmt"
	"math/bits"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr/fft"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/rs/zerolog"
	"github.com/taurusgroup/ring-vrf/internal/params"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"github.com/taurusgroup/ring-vrf/pkg/math/polynomial"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
)

type Error string

const (
	ErrUnsupportedSuite  Error = "suite does not support ring proofs"
	ErrInvalidRingSize   Error = "ring size must be positive"
	ErrSRSTooSmall       Error = "SRS too small for the requested ring size"
	ErrRingTooLarge      Error = "ring larger than the context capacity"
	ErrInvalidRingMember Error = "ring member is not a valid public key"
	ErrIndexOutOfRange   Error = "prover index out of range"
	ErrInvalidProof      Error = "invalid proof"
	ErrMalformedProof    Error = "malformed proof"
)

func (e Error) Error() string {
	return fmt.Sprintf("ring: %s", string(e))
}

// DefaultLabel is the transcript label of provers and verifiers.
const DefaultLabel = "ring-vrf"

const (
	// blindingRows holds the powers 2ʲ⋅B, one per bit of the blinding factor.
	blindingRows = params.BlindingBits
	// cosetFactor is the ratio between the evaluation domain of the quotient
	// and the ring domain. The constraints have degree 6n+7 at most.
	cosetFactor = 8
	// blindingCoefficients is the number of random coefficients added to each
	// witness polynomial. Each one is opened at two points at most.
	blindingCoefficients = 3
)

// domainSize returns the size of the domain holding maxRingSize keys.
func domainSize(maxRingSize int) int {
	rows := maxRingSize + blindingRows + 1
	return 1 << bits.Len(uint(rows-1))
}

// SRSSize returns the number of G1 powers an SRS needs for rings of up to
// maxRingSize keys.
func SRSSize(maxRingSize int) int {
	return quotientLength(domainSize(maxRingSize))
}

// quotientLength is the number of coefficients of the quotient polynomial,
// the largest one committed to.
func quotientLength(n int) int {
	return 5*n + 8
}

// Context holds the setup shared by all rings up to a given size.
// It is read-only after construction and safe for concurrent use.
type Context struct {
	suite    *suite.Suite
	srs      *kzg.SRS
	domain   *fft.Domain
	coset    *fft.Domain
	capacity int
	label    string
	log      zerolog.Logger

	a, d fr.Element
	// powers[j] = 2ʲ⋅B
	powers  []bandersnatch.PointAffine
	padding bandersnatch.PointAffine

	tablesOnce sync.Once
	tables     *cosetTables
}

// cosetTables holds the public polynomials of the constraint system evaluated
// on the quotient coset.
type cosetTables struct {
	// vanishingInv holds 1/(Xⁿ - 1)
	vanishingInv []fr.Element
	// notLast holds X - ωⁿ⁻¹
	notLast []fr.Element
	first   []fr.Element
	last    []fr.Element
}

type Option func(*Context)

// WithLogger sets the logger of the context. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Context) {
		c.log = l
	}
}

// WithLabel overrides the label of the transcripts.
func WithLabel(label string) Option {
	return func(c *Context) {
		c.label = label
	}
}

// NewContext creates a Context for rings of up to maxRingSize keys of a
// Bandersnatch suite. The SRS must contain at least SRSSize(maxRingSize)
// powers in G1.
//
// The capacity of the context is rounded up to fill the evaluation domain, so
// Capacity() may exceed maxRingSize.
func NewContext(s *suite.Suite, srs *kzg.SRS, maxRingSize int, opts ...Option) (*Context, error) {
	if _, ok := s.Curve().(curve.Bandersnatch); !ok {
		return nil, ErrUnsupportedSuite
	}
	if maxRingSize < 1 {
		return nil, ErrInvalidRingSize
	}
	if srs == nil || len(srs.Pk.G1) < SRSSize(maxRingSize) {
		return nil, ErrSRSTooSmall
	}

	n := domainSize(maxRingSize)
	c := &Context{
		suite:    s,
		srs:      srs,
		domain:   fft.NewDomain(uint64(n)),
		coset:    fft.NewDomain(uint64(cosetFactor * n)),
		capacity: n - blindingRows - 1,
		label:    DefaultLabel,
		log:      zerolog.Nop(),
		padding:  affine(s.PaddingPoint()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.a, c.d = curve.Bandersnatch{}.Coefficients()

	c.powers = make([]bandersnatch.PointAffine, blindingRows)
	c.powers[0] = affine(s.BlindingBase())
	for j := 1; j < blindingRows; j++ {
		c.powers[j].Double(&c.powers[j-1])
	}

	c.log.Debug().
		Str("suite", s.Name()).
		Int("domain", n).
		Int("capacity", c.capacity).
		Int("srs", len(srs.Pk.G1)).
		Msg("ring context created")
	return c, nil
}

func affine(p curve.Point) bandersnatch.PointAffine {
	return p.(*curve.BandersnatchPoint).Affine()
}

func (c *Context) Suite() *suite.Suite { return c.suite }

// Capacity is the maximum number of keys in a ring.
func (c *Context) Capacity() int { return c.capacity }

// DomainSize is the size n of the evaluation domain.
func (c *Context) DomainSize() int { return int(c.domain.Cardinality) }

func (c *Context) n() uint64 { return c.domain.Cardinality }

// lastOmega returns ωⁿ⁻¹ = ω⁻¹.
func (c *Context) lastOmega() fr.Element {
	return c.domain.GeneratorInv
}

func (c *Context) cosetTables() *cosetTables {
	c.tablesOnce.Do(func() {
		n := int(c.n())
		var one fr.Element
		one.SetOne()

		// Xⁿ - 1
		zh := make([]fr.Element, n+1)
		zh[0].Neg(&one)
		zh[n].SetOne()
		vanishing := polynomial.NewPolynomial(zh).EvaluateOnCoset(c.coset)
		vanishingInv := fr.BatchInvert(vanishing)

		// X - ωⁿ⁻¹
		omegaLast := c.lastOmega()
		notLast := make([]fr.Element, 2)
		notLast[0].Neg(&omegaLast)
		notLast[1].SetOne()

		unit := make([]fr.Element, n)
		unit[0].SetOne()
		first := polynomial.Interpolate(c.domain, unit)
		unit[0].SetZero()
		unit[n-1].SetOne()
		last := polynomial.Interpolate(c.domain, unit)

		c.tables = &cosetTables{
			vanishingInv: vanishingInv,
			notLast:      polynomial.NewPolynomial(notLast).EvaluateOnCoset(c.coset),
			first:        first.EvaluateOnCoset(c.coset),
			last:         last.EvaluateOnCoset(c.coset),
		}
	})
	return c.tables
}
