package model

import (
	"encoding/json"
	"strconv"
)

// FeeRate is a fee rate in sat/vByte. The zero value is unavailable and
// must never be read as a rate of zero.
type FeeRate struct {
	value float64
	valid bool
}

// UnavailableFeeRate is the sentinel for a rate that could not be computed.
var UnavailableFeeRate = FeeRate{}

// NewFeeRate wraps a computed rate.
func NewFeeRate(satPerVByte float64) FeeRate {
	return FeeRate{value: satPerVByte, valid: true}
}

// Valid reports whether the rate was computed.
func (r FeeRate) Valid() bool {
	return r.valid
}

// Value returns the rate and whether it is available.
func (r FeeRate) Value() (float64, bool) {
	return r.value, r.valid
}

// Above reports whether the rate is available and strictly greater than floor.
func (r FeeRate) Above(floor float64) bool {
	return r.valid && r.value > floor
}

// Greater reports whether r is available and strictly higher than other.
// Any available rate is greater than an unavailable one.
func (r FeeRate) Greater(other FeeRate) bool {
	if !r.valid {
		return false
	}
	if !other.valid {
		return true
	}
	return r.value > other.value
}

// Ptr returns the rate as a nullable value for storage.
func (r FeeRate) Ptr() *float64 {
	if !r.valid {
		return nil
	}
	v := r.value
	return &v
}

func (r FeeRate) String() string {
	if !r.valid {
		return "unavailable"
	}
	return strconv.FormatFloat(r.value, 'f', 2, 64)
}

// MarshalJSON encodes an unavailable rate as null.
func (r FeeRate) MarshalJSON() ([]byte, error) {
	if !r.valid {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON accepts a number or null.
func (r *FeeRate) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = UnavailableFeeRate
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = NewFeeRate(v)
	return nil
}
