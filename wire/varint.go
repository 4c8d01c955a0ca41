package wire

import "math/bits"

const (
	// MaxVarintLen32 is the maximum encoded length of a 32-bit varint.
	MaxVarintLen32 = 5
	// MaxVarintLen64 is the maximum encoded length of a 64-bit varint.
	MaxVarintLen64 = 10
)

// ConsumeVarint decodes the varint at the start of b and returns its value
// and encoded length.
//
// Checks run in order: truncation, canonical form, 64-bit width.
func ConsumeVarint(b []byte) (uint64, int, error) {
	n, err := varintLen(b)
	if err != nil {
		return 0, 0, err
	}
	enc := b[:n]
	if err := checkCanonical(enc); err != nil {
		return 0, 0, err
	}
	if !fits64(enc) {
		return 0, 0, ErrVarintOverflow
	}
	return decodeVarint(enc), n, nil
}

// ConsumeVarint32 is like ConsumeVarint but additionally fails with
// ErrVarint32Overflow when the value needs more than 32 bits.
func ConsumeVarint32(b []byte) (uint32, int, error) {
	v, n, err := ConsumeVarint(b)
	if err != nil {
		return 0, 0, err
	}
	if !fits32(b[:n]) {
		return 0, 0, ErrVarint32Overflow
	}
	return uint32(v), n, nil
}

// AppendVarint appends the canonical encoding of v to b.
func AppendVarint(b []byte, v uint64) []byte {
	for v >= 0x80 {
		b = append(b, byte(v)|0x80)
		v >>= 7
	}
	return append(b, byte(v))
}

// SizeVarint returns the canonical encoded length of v.
func SizeVarint(v uint64) int {
	// 1 + floor((bitlen-1)/7), with bitlen(0) treated as 1.
	return 1 + (bits.Len64(v|1)-1)/7
}

// varintLen returns the length of the terminated varint at the start of b.
func varintLen(b []byte) (int, error) {
	for i, c := range b {
		if c < 0x80 {
			return i + 1, nil
		}
	}
	return 0, ErrTruncated
}

// checkCanonical rejects encodings that use more bytes than needed. Since
// every byte but the last has the continuation bit set, the encoding is
// minimal exactly when the last byte contributes a non-zero group.
func checkCanonical(enc []byte) error {
	if len(enc) > 1 && enc[len(enc)-1] == 0 {
		return ErrRedundantVarint
	}
	return nil
}

// fits64 reports whether a terminated encoding holds at most 64 bits:
// 9 full groups of 7 bits plus 1 bit in the tenth byte.
func fits64(enc []byte) bool {
	n := len(enc)
	return n < MaxVarintLen64 || (n == MaxVarintLen64 && enc[n-1] <= 1)
}

// fits32 reports whether a terminated encoding holds at most 32 bits:
// 4 full groups of 7 bits plus 4 bits in the fifth byte.
func fits32(enc []byte) bool {
	n := len(enc)
	return n < MaxVarintLen32 || (n == MaxVarintLen32 && enc[n-1] <= 0x0f)
}

func decodeVarint(enc []byte) uint64 {
	var v uint64
	for i, c := range enc {
		v |= uint64(c&0x7f) << (7 * uint(i))
	}
	return v
}
