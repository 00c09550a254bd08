// Package discountcode is the single owner of the discount-code wire format.
// Codes are generated at spin time and parsed later when presented on a
// quote form; keeping encode and decode together stops the two from
// drifting.
package discountcode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/promokit/wheel-service/internal/domain"
)

const (
	// Prefix is the constant lead-in of every issued code.
	Prefix = "WHEEL"

	// percentDigits is the zero-padded width of the embedded percentage.
	percentDigits = 2

	// SuffixLength is the number of random characters after the percentage.
	SuffixLength = 6

	// suffixAlphabet excludes ambiguous characters (0/O, 1/I/L) since codes
	// are read aloud and typed by hand.
	suffixAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

var codePattern = regexp.MustCompile(`^` + Prefix + `(\d{2})([A-Z0-9]{` + strconv.Itoa(SuffixLength) + `})$`)

// Encode builds a discount code embedding the percentage, with a random
// suffix drawn from rng. rng returns an integer in [min, max].
func Encode(percent int, rng func(min, max int) int) (string, error) {
	if percent <= 0 || percent > 99 {
		return "", fmt.Errorf("%w: percentage %d cannot be encoded", domain.ErrInvalidDiscount, percent)
	}

	var suffix strings.Builder
	suffix.Grow(SuffixLength)
	for i := 0; i < SuffixLength; i++ {
		suffix.WriteByte(suffixAlphabet[rng(0, len(suffixAlphabet)-1)])
	}

	return fmt.Sprintf("%s%0*d%s", Prefix, percentDigits, percent, suffix.String()), nil
}

// Decode extracts the embedded percentage from a structurally valid code.
// It validates shape only - whether the code was ever issued is a store
// lookup, not a parsing concern.
func Decode(code string) (int, error) {
	m := codePattern.FindStringSubmatch(strings.TrimSpace(code))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrCodeMalformed, code)
	}
	percent, err := strconv.Atoi(m[1])
	if err != nil {
		// Unreachable given the pattern, kept for safety
		return 0, fmt.Errorf("%w: %q", domain.ErrCodeMalformed, code)
	}
	return percent, nil
}

// IsValid reports whether the code matches the issued-code format.
func IsValid(code string) bool {
	return codePattern.MatchString(strings.TrimSpace(code))
}
