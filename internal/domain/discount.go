package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// DiscountTier classifies a discount for display and reporting purposes
type DiscountTier string

const (
	TierLow     DiscountTier = "low"     // <= 10%
	TierMedium  DiscountTier = "medium"  // <= 25%
	TierHigh    DiscountTier = "high"    // <= 40%
	TierPremium DiscountTier = "premium" // > 40%
)

// DiscountPercentage is a validated percentage in [0, 100], rounded to two
// decimal places at construction. The zero value represents 0%.
type DiscountPercentage struct {
	value float64
}

// NewDiscountPercentage validates and constructs a DiscountPercentage.
// Non-finite, negative, or >100 values are rejected.
func NewDiscountPercentage(value float64) (DiscountPercentage, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return DiscountPercentage{}, fmt.Errorf("%w: value must be finite", ErrInvalidDiscount)
	}
	if value < 0 {
		return DiscountPercentage{}, fmt.Errorf("%w: value must not be negative, got %v", ErrInvalidDiscount, value)
	}
	if value > 100 {
		return DiscountPercentage{}, fmt.Errorf("%w: value must not exceed 100, got %v", ErrInvalidDiscount, value)
	}
	return DiscountPercentage{value: math.Round(value*100) / 100}, nil
}

// MustDiscountPercentage constructs a DiscountPercentage and panics on
// invalid input. Only for static configuration known to be valid.
func MustDiscountPercentage(value float64) DiscountPercentage {
	d, err := NewDiscountPercentage(value)
	if err != nil {
		panic(err)
	}
	return d
}

// Value returns the percentage as a number in [0, 100].
func (d DiscountPercentage) Value() float64 {
	return d.value
}

// Decimal returns the percentage as a fraction in [0, 1].
func (d DiscountPercentage) Decimal() float64 {
	return d.value / 100
}

// IsZero reports whether the discount is 0%.
func (d DiscountPercentage) IsZero() bool {
	return d.value == 0
}

// DiscountAmount returns how much is taken off the given price.
func (d DiscountPercentage) DiscountAmount(price float64) float64 {
	return math.Round(price*d.Decimal()*100) / 100
}

// FinalPrice returns the price after applying the discount.
func (d DiscountPercentage) FinalPrice(price float64) float64 {
	return math.Round((price-price*d.Decimal())*100) / 100
}

// Tier returns the classification band of the discount.
func (d DiscountPercentage) Tier() DiscountTier {
	switch {
	case d.value <= 10:
		return TierLow
	case d.value <= 25:
		return TierMedium
	case d.value <= 40:
		return TierHigh
	default:
		return TierPremium
	}
}

// String formats the percentage for display, e.g. "15%" or "12.5%".
func (d DiscountPercentage) String() string {
	return strconv.FormatFloat(d.value, 'f', -1, 64) + "%"
}

// MarshalJSON encodes the percentage as a bare number.
func (d DiscountPercentage) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}

// UnmarshalJSON decodes and validates a bare number.
func (d *DiscountPercentage) UnmarshalJSON(data []byte) error {
	var value float64
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	parsed, err := NewDiscountPercentage(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
