package hash

import (
	"encoding"
	"fmt"
	"io"

	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
	"github.com/zeebo/blake3"
)

// Hash is the hash function we use for deriving nonces and blinding factors.
//
// Internally, this is a wrapper around blake3.Hasher, but any hash function
// with an easily extendable output would work as well.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash struct, and writes the given domain as a first element.
func New(domain string) *Hash {
	hash := &Hash{h: blake3.New()}
	_ = writeWithDomain(hash.h, Labeled{Label: "Domain", Bytes: []byte(domain)})
	return hash
}

// Digest returns a reader for the current output of the function.
//
// This finalizes the current state of the hash, and returns what's
// essentially a stream of random bytes.
func (hash *Hash) Digest() io.Reader {
	return hash.h.Digest()
}

// WriteAny takes many different data types and writes them to the hash state.
//
// Currently supported types:
//
//   - []byte
//   - curve.Scalar
//   - curve.Point
//   - hash.WriterToWithDomain
//
// This function will apply its own domain separation for the first three types.
// The last type already suggests which domain to use, and this function respects it.
func (hash *Hash) WriteAny(data ...interface{}) error {
	var err error
	for _, d := range data {
		switch t := d.(type) {
		case []byte:
			err = writeWithDomain(hash.h, Labeled{Label: "[]byte", Bytes: t})
			if err != nil {
				return fmt.Errorf("hash.Hash: write []byte: %w", err)
			}
		case curve.Scalar:
			if err = writeMarshaller(hash.h, "curve.Scalar", t); err != nil {
				return fmt.Errorf("hash.Hash: write curve.Scalar: %w", err)
			}
		case curve.Point:
			if err = writeMarshaller(hash.h, "curve.Point", t); err != nil {
				return fmt.Errorf("hash.Hash: write curve.Point: %w", err)
			}
		case WriterToWithDomain:
			if err = writeWithDomain(hash.h, t); err != nil {
				return fmt.Errorf("hash.Hash: write io.WriterTo: %w", err)
			}
		default:
			panic("hash.Hash: unsupported type")
		}
	}
	return nil
}

func writeMarshaller(w io.Writer, domain string, m encoding.BinaryMarshaler) error {
	if m == nil {
		return fmt.Errorf("nil %s", domain)
	}
	data, err := m.MarshalBinary()
	if err != nil {
		return err
	}
	return writeWithDomain(w, Labeled{Label: domain, Bytes: data})
}
