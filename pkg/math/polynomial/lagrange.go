package polynomial

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// Vanishing returns Z_H(ζ) = ζⁿ - 1, where n is the order of the domain H.
func Vanishing(n uint64, zeta fr.Element) fr.Element {
	var out, one fr.Element
	one.SetOne()
	out.Exp(zeta, new(big.Int).SetUint64(n))
	out.Sub(&out, &one)
	return out
}

// LagrangeAt returns Lᵢ(ζ), the i-th Lagrange basis polynomial of the subgroup
// of order n generated by ω, evaluated at ζ:
//
//	         ωⁱ⋅(ζⁿ - 1)
//	Lᵢ(ζ) = -------------
//	         n⋅(ζ - ωⁱ)
//
// ζ must not belong to the subgroup.
func LagrangeAt(n uint64, omega fr.Element, i uint64, zeta fr.Element) fr.Element {
	var omegaI, num, den, nElement fr.Element
	omegaI.Exp(omega, new(big.Int).SetUint64(i))
	zh := Vanishing(n, zeta)
	num.Mul(&omegaI, &zh)
	nElement.SetUint64(n)
	den.Sub(&zeta, &omegaI)
	den.Mul(&den, &nElement)
	den.Inverse(&den)
	num.Mul(&num, &den)
	return num
}
