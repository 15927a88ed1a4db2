// Package safe provides helpers for safe numeric conversions with overflow checks.
package safe

import (
	"fmt"
	"math"
)

// Integer lists the integer kinds accepted by the conversion helpers.
type Integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// Uint32 converts signed or unsigned integers to uint32 with range validation.
func Uint32[T Integer](v T) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Int converts a wire-level length or count to int, rejecting values that do not fit
// or that exceed limit. A limit of zero means no limit.
func Int[T Integer](v T, limit int) (int, error) {
	if v < 0 || uint64(v) > math.MaxInt32 {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	if limit > 0 && int(v) > limit {
		return 0, fmt.Errorf("value %d exceeds limit %d", v, limit)
	}
	return int(v), nil
}

// Int64 converts unsigned amounts to int64, as required by signed wire helpers.
func Int64[T ~uint | ~uint32 | ~uint64](v T) (int64, error) {
	if uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}
