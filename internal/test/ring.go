// Package test holds helpers shared by the tests of the ring-vrf packages.
package test

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/kzg"
	"github.com/taurusgroup/ring-vrf/pkg/suite"
	"github.com/taurusgroup/ring-vrf/pkg/vrf"
)

// toxicWaste is the secret of the test SRS. Anyone knowing it can forge ring
// proofs.
const toxicWaste = 0x5eed

var (
	srsMtx   sync.Mutex
	srsCache = map[int]*kzg.SRS{}
)

// SRS returns an insecure SRS with size powers in G1. Results are cached,
// since tests of the same package usually share a ring size.
func SRS(size int) *kzg.SRS {
	srsMtx.Lock()
	defer srsMtx.Unlock()
	if srs, ok := srsCache[size]; ok {
		return srs
	}
	srs, err := kzg.NewSRS(uint64(size), big.NewInt(toxicWaste))
	if err != nil {
		panic(fmt.Sprintf("test: failed to create SRS: %v", err))
	}
	srsCache[size] = srs
	return srs
}

// Keys derives n secret keys of the suite from fixed seeds, and returns them
// with the ring of their public keys, in the same order.
func Keys(s *suite.Suite, n int) ([]*vrf.SecretKey, []*vrf.PublicKey) {
	secrets := make([]*vrf.SecretKey, n)
	ring := make([]*vrf.PublicKey, n)
	seed := make([]byte, 8)
	for i := range secrets {
		binary.BigEndian.PutUint64(seed, uint64(i))
		secrets[i] = vrf.SecretKeyFromSeed(s, seed)
		ring[i] = secrets[i].Public()
	}
	return secrets, ring
}
