package suite

import (
	"github.com/taurusgroup/ring-vrf/pkg/math/curve"
)

// HashToCurve maps data to a point of the prime-order subgroup with the
// try-and-increment method.
//
// For ctr = 0, …, 255, the digest of id ∥ 0x01 ∥ data ∥ ctr ∥ 0x00 is decoded
// as a compressed point. The first success is returned, multiplied by the
// cofactor. About half of the digests decode, so two attempts are expected.
//
// The second return value is false if no counter yields a point, or if the
// digest is too short to encode a field element.
func (s *Suite) HashToCurve(data []byte) (curve.Point, bool) {
	fieldBytes := s.group.FieldBytes()

	buf := make([]byte, 0, len(data)+4)
	buf = append(buf, s.id, domHashToCurve)
	buf = append(buf, data...)
	buf = append(buf, 0, domBack)
	ctrIndex := len(buf) - 2

	for ctr := 0; ctr < 256; ctr++ {
		buf[ctrIndex] = byte(ctr)
		digest := s.hash(buf)
		if len(digest) < fieldBytes {
			return nil, false
		}
		p, err := s.group.ArbitraryStringToPoint(digest[:fieldBytes])
		if err != nil {
			continue
		}
		return p.ClearCofactor(), true
	}
	return nil, false
}
