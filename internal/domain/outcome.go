package domain

import (
	"fmt"
	"math"
)

// Section is the stable identifier of a wheel slot. It is distinct from the
// display label so marketing copy can change without affecting stored awards
// or discount-code parsing.
type Section string

const (
	SectionDiscount5  Section = "DISCOUNT_5"
	SectionDiscount10 Section = "DISCOUNT_10"
	SectionDiscount15 Section = "DISCOUNT_15"
	SectionDiscount20 Section = "DISCOUNT_20"
	SectionDiscount25 Section = "DISCOUNT_25"
	SectionDiscount30 Section = "DISCOUNT_30"
	SectionDiscount50 Section = "DISCOUNT_50"
	SectionNoPrize    Section = "NO_PRIZE"
)

// Outcome is one immutable configuration row of the wheel.
type Outcome struct {
	Section         Section `json:"section"`
	Label           string  `json:"label"`
	DiscountPercent int     `json:"discount_percent"`
	Probability     float64 `json:"probability"` // out of 100
	Color           string  `json:"color"`
	TextColor       string  `json:"text_color"`
}

// IsWinning reports whether landing on this outcome yields a discount.
func (o Outcome) IsWinning() bool {
	return o.Section != SectionNoPrize && o.DiscountPercent > 0
}

// WheelOutcomes is the static wheel configuration. The probabilities must
// sum to exactly 100; ValidateOutcomeTable enforces this at startup.
var WheelOutcomes = []Outcome{
	{Section: SectionDiscount5, Label: "5% OFF", DiscountPercent: 5, Probability: 25, Color: "#4F7CAC", TextColor: "#FFFFFF"},
	{Section: SectionDiscount10, Label: "10% OFF", DiscountPercent: 10, Probability: 20, Color: "#6DA34D", TextColor: "#FFFFFF"},
	{Section: SectionNoPrize, Label: "Try Again", DiscountPercent: 0, Probability: 15, Color: "#3B3B3B", TextColor: "#CCCCCC"},
	{Section: SectionDiscount15, Label: "15% OFF", DiscountPercent: 15, Probability: 15, Color: "#C0A43C", TextColor: "#1A1A1A"},
	{Section: SectionDiscount20, Label: "20% OFF", DiscountPercent: 20, Probability: 10, Color: "#B5651D", TextColor: "#FFFFFF"},
	{Section: SectionDiscount25, Label: "25% OFF", DiscountPercent: 25, Probability: 7, Color: "#8E4585", TextColor: "#FFFFFF"},
	{Section: SectionDiscount30, Label: "30% OFF", DiscountPercent: 30, Probability: 5, Color: "#B33A3A", TextColor: "#FFFFFF"},
	{Section: SectionDiscount50, Label: "50% OFF", DiscountPercent: 50, Probability: 3, Color: "#D4AF37", TextColor: "#1A1A1A"},
}

// probabilitySumTolerance absorbs float accumulation error when checking the
// configured probabilities against the required total of 100.
const probabilitySumTolerance = 1e-9

// ValidateOutcomeTable checks the static wheel configuration. It is called
// once at service construction; a failure is fatal, never per-request.
func ValidateOutcomeTable(outcomes []Outcome) error {
	if len(outcomes) == 0 {
		return fmt.Errorf("%w: outcome table is empty", ErrInvalidOutcomeTable)
	}

	seen := make(map[Section]bool, len(outcomes))
	sum := 0.0
	for i, o := range outcomes {
		if o.Section == "" {
			return fmt.Errorf("%w: row %d has no section identifier", ErrInvalidOutcomeTable, i)
		}
		if seen[o.Section] {
			return fmt.Errorf("%w: duplicate section %q", ErrInvalidOutcomeTable, o.Section)
		}
		seen[o.Section] = true

		if o.Probability <= 0 {
			return fmt.Errorf("%w: section %q has non-positive probability %v", ErrInvalidOutcomeTable, o.Section, o.Probability)
		}
		if o.DiscountPercent < 0 || o.DiscountPercent > 50 {
			return fmt.Errorf("%w: section %q has discount %d outside [0, 50]", ErrInvalidOutcomeTable, o.Section, o.DiscountPercent)
		}
		sum += o.Probability
	}

	if math.Abs(sum-100) > probabilitySumTolerance {
		return fmt.Errorf("%w: probabilities sum to %v, expected 100", ErrInvalidOutcomeTable, sum)
	}

	return nil
}

// OutcomeBySection finds an outcome row by its stable identifier.
func OutcomeBySection(outcomes []Outcome, section Section) (Outcome, bool) {
	for _, o := range outcomes {
		if o.Section == section {
			return o, true
		}
	}
	return Outcome{}, false
}
