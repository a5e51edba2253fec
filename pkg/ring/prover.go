package ring

import (
	"fmt"
	"io"
	"runtime"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"github.com/taurusgroup/ring-vrf/pkg/math/polynomial"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"
)

// Prover proves membership of the key at a fixed position of a ring.
//
// A Prover holds no mutable state, and can be used concurrently.
type Prover struct {
	pk    *ProverKey
	index int
}

// Prover returns a Prover for the key at position index of the ring indexed
// by pk.
//
// The key at that position is not compared with the key of the signer. A
// wrong index produces proofs that fail verification.
func (c *Context) Prover(pk *ProverKey, index int) (*Prover, error) {
	if index < 0 || index >= pk.ringSize {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, pk.ringSize)
	}
	return &Prover{pk: pk, index: index}, nil
}

func (p *Prover) Suite() *suite.Suite { return p.pk.ctx.suite }

// witness holds the columns computed by the prover.
type witness struct {
	bits, accx, accy, ip []fr.Element
	keyCommitment        bandersnatch.PointAffine
}

func (p *Prover) witness(b curve.Scalar) *witness {
	pk := p.pk
	c := pk.ctx
	n := int(c.n())
	w := &witness{
		bits: make([]fr.Element, n),
		accx: make([]fr.Element, n),
		accy: make([]fr.Element, n),
		ip:   make([]fr.Element, n),
	}

	w.bits[p.index].SetOne()
	bInt := curve.MakeInt(b)
	for j := 0; j < blindingRows; j++ {
		if bInt.Bit(j) == 1 {
			w.bits[c.capacity+j].SetOne()
		}
	}

	var one fr.Element
	one.SetOne()
	var acc bandersnatch.PointAffine
	acc.Y.SetOne()
	w.accy[0].SetOne()
	for i := 0; i < n-1; i++ {
		w.ip[i+1] = w.ip[i]
		if w.bits[i].IsOne() {
			member := pk.member(i)
			acc.Add(&acc, &member)
			if pk.columns.sel[i].IsOne() {
				w.ip[i+1].Add(&w.ip[i+1], &one)
			}
		}
		w.accx[i+1], w.accy[i+1] = acc.X, acc.Y
	}
	w.keyCommitment = acc
	return w
}

// Prove consumes the blinding factor b of the key commitment C = X + b⋅B,
// and proves that C - b⋅B is the key at the position of the Prover.
func (p *Prover) Prove(rand io.Reader, blinding *vrf.Blinding) (*Proof, error) {
	b, err := blinding.Take()
	if err != nil {
		return nil, err
	}
	pk := p.pk
	c := pk.ctx
	n := int(c.n())
	omega := c.domain.Generator

	w := p.witness(b)
	var proof Proof

	// Round 1: blinded witness polynomials.
	witnessPolys := make([]*polynomial.Polynomial, 4)
	witnessDigests := []*kzg.Digest{&proof.Bits, &proof.AccX, &proof.AccY, &proof.InnerProduct}
	for i, col := range [][]fr.Element{w.bits, w.accx, w.accy, w.ip} {
		witnessPolys[i] = polynomial.Interpolate(c.domain, col).Blind(rand, n, blindingCoefficients)
		if *witnessDigests[i], err = kzg.Commit(witnessPolys[i].Coefficients(), c.srs.Pk); err != nil {
			return nil, fmt.Errorf("ring: commit to witness: %w", err)
		}
	}
	bits, accx, accy, ip := witnessPolys[0], witnessPolys[1], witnessPolys[2], witnessPolys[3]

	t := c.transcript(&pk.commitment, &w.keyCommitment)
	appendDigests(t, "witness", proof.Bits, proof.AccX, proof.AccY, proof.InnerProduct)
	alpha := challenge(t, "alpha")

	// Round 2: quotient.
	quotient, err := p.quotient(alpha, &w.keyCommitment, bits, accx, accy, ip)
	if err != nil {
		return nil, err
	}
	if proof.Quotient, err = kzg.Commit(quotient.Coefficients(), c.srs.Pk); err != nil {
		return nil, fmt.Errorf("ring: commit to quotient: %w", err)
	}
	appendDigests(t, "quotient", proof.Quotient)
	zeta := challenge(t, "zeta")
	var zetaOmega fr.Element
	zetaOmega.Mul(&zeta, &omega)

	// Round 3: openings.
	rc := pk.commitment
	proof.AtZeta, err = kzg.BatchOpenSinglePoint(
		[][]fr.Element{
			pk.polys[0].Coefficients(), pk.polys[1].Coefficients(), pk.polys[2].Coefficients(),
			bits.Coefficients(), accx.Coefficients(), accy.Coefficients(), ip.Coefficients(),
			quotient.Coefficients(),
		},
		[]kzg.Digest{rc.Px, rc.Py, rc.Selector, proof.Bits, proof.AccX, proof.AccY, proof.InnerProduct, proof.Quotient},
		zeta, blake3.New(), c.srs.Pk,
	)
	if err != nil {
		return nil, fmt.Errorf("ring: open at zeta: %w", err)
	}
	proof.AtZetaOmega, err = kzg.BatchOpenSinglePoint(
		[][]fr.Element{accx.Coefficients(), accy.Coefficients(), ip.Coefficients()},
		[]kzg.Digest{proof.AccX, proof.AccY, proof.InnerProduct},
		zetaOmega, blake3.New(), c.srs.Pk,
	)
	if err != nil {
		return nil, fmt.Errorf("ring: open at zeta⋅omega: %w", err)
	}
	return &proof, nil
}

// quotient computes (Σ αⁱ⋅cᵢ) / (Xⁿ - 1) on the coset, and interpolates it.
func (p *Prover) quotient(alpha fr.Element, keyCommitment *bandersnatch.PointAffine, bits, accx, accy, ip *polynomial.Polynomial) (*polynomial.Polynomial, error) {
	pk := p.pk
	c := pk.ctx
	omega := c.domain.Generator
	tables := c.cosetTables()

	bitsE := bits.EvaluateOnCoset(c.coset)
	accxE := accx.EvaluateOnCoset(c.coset)
	accyE := accy.EvaluateOnCoset(c.coset)
	ipE := ip.EvaluateOnCoset(c.coset)
	nextAccxE := accx.Shift(omega).EvaluateOnCoset(c.coset)
	nextAccyE := accy.Shift(omega).EvaluateOnCoset(c.coset)
	nextIpE := ip.Shift(omega).EvaluateOnCoset(c.coset)

	size := int(c.coset.Cardinality)
	evals := make([]fr.Element, size)

	workers := runtime.GOMAXPROCS(0)
	chunk := (size + workers - 1) / workers
	var g errgroup.Group
	for start := 0; start < size; start += chunk {
		start, end := start, min(start+chunk, size)
		g.Go(func() error {
			for j := start; j < end; j++ {
				r := row{
					px: pk.cosetEvals[0][j], py: pk.cosetEvals[1][j], sel: pk.cosetEvals[2][j],
					bits: bitsE[j], accx: accxE[j], accy: accyE[j], ip: ipE[j],
					nextAccx: nextAccxE[j], nextAccy: nextAccyE[j], nextIp: nextIpE[j],
				}
				s := selectors{notLast: tables.notLast[j], first: tables.first[j], last: tables.last[j]}
				v := c.aggregate(&r, &s, keyCommitment, alpha)
				evals[j].Mul(&v, &tables.vanishingInv[j])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return polynomial.FromCosetEvaluations(c.coset, evals, quotientLength(int(c.n()))), nil
}
