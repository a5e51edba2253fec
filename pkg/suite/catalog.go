package suite

import (
	"crypto/sha256"
	"crypto/sha512"
	"sync"

	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"golang.org/x/crypto/blake2b"
)

func sha512Sum(data []byte) []byte {
	h := sha512.Sum512(data)
	return h[:]
}

func sha256Sum(data []byte) []byte {
	h := sha256.Sum256(data)
	return h[:]
}

func blake2bSum(data []byte) []byte {
	h := blake2b.Sum512(data)
	return h[:]
}

var (
	bandersnatchSHA512 = sync.OnceValue(func() *Suite {
		return mustNew("Bandersnatch_SHA-512_TAI", 0x33, 32, curve.Bandersnatch{}, sha512Sum)
	})
	bandersnatchBlake2b = sync.OnceValue(func() *Suite {
		return mustNew("Bandersnatch_BLAKE2b_TAI", 0x34, 32, curve.Bandersnatch{}, blake2bSum)
	})
	ed25519SHA512 = sync.OnceValue(func() *Suite {
		return mustNew("Ed25519_SHA-512_TAI", 0x03, 16, curve.Edwards25519{}, sha512Sum)
	})
	secp256k1SHA256 = sync.OnceValue(func() *Suite {
		return mustNew("secp256k1_SHA-256_TAI", 0xfe, 16, curve.Secp256k1{}, sha256Sum)
	})
)

// BandersnatchSHA512 is the suite over Bandersnatch, whose base field is the
// scalar field of BLS12-381. Only the Bandersnatch suites support ring proofs.
func BandersnatchSHA512() *Suite { return bandersnatchSHA512() }

// BandersnatchBlake2b is BandersnatchSHA512 with BLAKE2b-512 as hash function.
func BandersnatchBlake2b() *Suite { return bandersnatchBlake2b() }

// Ed25519SHA512 works over edwards25519.
func Ed25519SHA512() *Suite { return ed25519SHA512() }

// Secp256k1SHA256 works over secp256k1.
func Secp256k1SHA256() *Suite { return secp256k1SHA256() }

// All returns every suite of the catalog.
func All() []*Suite {
	return []*Suite{BandersnatchSHA512(), BandersnatchBlake2b(), Ed25519SHA512(), Secp256k1SHA256()}
}
