package hash

import (
	"bytes"
	"encoding/binary"
	"io"
)

// WriterToWithDomain represents a type writing itself, and knowing its domain.
//
// Providing a domain string lets us distinguish the output of different types
// implementing this same interface.
type WriterToWithDomain interface {
	io.WriterTo

	// Domain returns a context string, which should be unique for each implementor
	Domain() string
}

// writeWithDomain writes len(domain) ∥ domain ∥ len(data) ∥ data, with 8 byte
// little-endian lengths, so that distinct sequences of objects never hash to
// the same stream.
func writeWithDomain(w io.Writer, object WriterToWithDomain) error {
	var data bytes.Buffer
	if _, err := object.WriteTo(&data); err != nil {
		return err
	}
	domain := object.Domain()
	var size [8]byte
	binary.LittleEndian.PutUint64(size[:], uint64(len(domain)))
	if _, err := w.Write(size[:]); err != nil {
		return err
	}
	if _, err := io.WriteString(w, domain); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(size[:], uint64(data.Len()))
	if _, err := w.Write(size[:]); err != nil {
		return err
	}
	_, err := data.WriteTo(w)
	return err
}

// Labeled attaches a domain to raw bytes, for values which are not points or
// scalars.
type Labeled struct {
	Label string
	Bytes []byte
}

func (l Labeled) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(l.Bytes)
	return int64(n), err
}

func (l Labeled) Domain() string {
	return l.Label
}
