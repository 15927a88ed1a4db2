package codec

const (
	varIntMarker16 = 0xfd
	varIntMarker32 = 0xfe
	varIntMarker64 = 0xff
)

// VarIntLength returns the number of bytes the CompactSize encoding of v occupies.
func VarIntLength(v uint64) int {
	switch {
	case v < varIntMarker16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffff_ffff:
		return 5
	default:
		return 9
	}
}

// MinimumRequiredBytes returns the size of the minimal script number encoding of v.
// Zero is reported as one byte so callers always reserve room for a value.
// math.MinInt64 needs nine bytes: an eight byte magnitude plus the sign byte.
func MinimumRequiredBytes(v int64) int {
	magnitude := uint64(v)
	if v < 0 {
		magnitude = uint64(-v)
	}
	if magnitude == 0 {
		return 1
	}
	n := 0
	for m := magnitude; m > 0; m >>= 8 {
		n++
	}
	// top bit of the last byte is the sign flag
	if magnitude>>(uint(n)*8-1)&1 == 1 {
		n++
	}
	return n
}
