package ring

import (
	"github.com/consensys/gnark-crypto/ecc/bls12-381/bandersnatch"
	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// row holds the values of the columns at some point X, and of the
// accumulators at ω⋅X.
type row struct {
	px, py, sel          fr.Element
	bits, accx, accy, ip fr.Element

	nextAccx, nextAccy, nextIp fr.Element
}

// selectors holds the public polynomials restricting constraints to some rows.
type selectors struct {
	// notLast is X - ωⁿ⁻¹.
	notLast fr.Element
	// first and last are L₀ and Lₙ₋₁.
	first, last fr.Element
}

const numConstraints = 10

// aggregate returns Σ αⁱ⋅cᵢ where the cᵢ are the constraints of the ring
// relation. They all vanish on the domain if and only if
//
//   - bits is boolean,
//   - acc starts at the identity and adds (px, py) on every row where bits = 1,
//     with the complete twisted Edwards addition law,
//   - ip starts at 0 and counts the rows where bits = sel = 1,
//   - acc ends on the key commitment and ip on 1.
func (c *Context) aggregate(r *row, s *selectors, keyCommitment *bandersnatch.PointAffine, alpha fr.Element) fr.Element {
	var cs [numConstraints]fr.Element
	var one, notB, tmp, t, dxy fr.Element
	one.SetOne()
	notB.Sub(&one, &r.bits)

	// b⋅(1 - b)
	cs[0].Mul(&r.bits, &notB)

	// d⋅x₁⋅x₂⋅y₁⋅y₂
	dxy.Mul(&r.accx, &r.px)
	dxy.Mul(&dxy, &r.accy)
	dxy.Mul(&dxy, &r.py)
	dxy.Mul(&dxy, &c.d)

	// b⋅(x₃⋅(1 + d⋅x₁⋅x₂⋅y₁⋅y₂) - x₁⋅y₂ - y₁⋅x₂) + (1 - b)⋅(x₃ - x₁)
	tmp.Add(&one, &dxy)
	tmp.Mul(&tmp, &r.nextAccx)
	t.Mul(&r.accx, &r.py)
	tmp.Sub(&tmp, &t)
	t.Mul(&r.accy, &r.px)
	tmp.Sub(&tmp, &t)
	tmp.Mul(&tmp, &r.bits)
	t.Sub(&r.nextAccx, &r.accx)
	t.Mul(&t, &notB)
	cs[1].Add(&tmp, &t)
	cs[1].Mul(&cs[1], &s.notLast)

	// b⋅(y₃⋅(1 - d⋅x₁⋅x₂⋅y₁⋅y₂) - y₁⋅y₂ + a⋅x₁⋅x₂) + (1 - b)⋅(y₃ - y₁)
	tmp.Sub(&one, &dxy)
	tmp.Mul(&tmp, &r.nextAccy)
	t.Mul(&r.accy, &r.py)
	tmp.Sub(&tmp, &t)
	t.Mul(&r.accx, &r.px)
	t.Mul(&t, &c.a)
	tmp.Add(&tmp, &t)
	tmp.Mul(&tmp, &r.bits)
	t.Sub(&r.nextAccy, &r.accy)
	t.Mul(&t, &notB)
	cs[2].Add(&tmp, &t)
	cs[2].Mul(&cs[2], &s.notLast)

	// ip₃ - ip - b⋅sel
	cs[3].Sub(&r.nextIp, &r.ip)
	t.Mul(&r.bits, &r.sel)
	cs[3].Sub(&cs[3], &t)
	cs[3].Mul(&cs[3], &s.notLast)

	// acc₀ = (0, 1), ip₀ = 0
	cs[4].Mul(&r.accx, &s.first)
	cs[5].Sub(&r.accy, &one)
	cs[5].Mul(&cs[5], &s.first)
	cs[6].Mul(&r.ip, &s.first)

	// accₙ₋₁ = C, ipₙ₋₁ = 1
	cs[7].Sub(&r.accx, &keyCommitment.X)
	cs[7].Mul(&cs[7], &s.last)
	cs[8].Sub(&r.accy, &keyCommitment.Y)
	cs[8].Mul(&cs[8], &s.last)
	cs[9].Sub(&r.ip, &one)
	cs[9].Mul(&cs[9], &s.last)

	var acc fr.Element
	for i := numConstraints - 1; i >= 0; i-- {
		acc.Mul(&acc, &alpha)
		acc.Add(&acc, &cs[i])
	}
	return acc
}
