package discountcode

// Validation reasons returned to the quote form. These are part of the API
// response contract, not log strings.
const (
	ReasonValid     = "valid"
	ReasonMalformed = "malformed"
)

// ValidationResult is the structural verdict on a presented code.
type ValidationResult struct {
	Valid      bool   `json:"valid"`
	Percentage int    `json:"percentage,omitempty"`
	Reason     string `json:"reason"`
}

// Validate performs structural validation of a presented code. It never
// touches storage: a structurally valid code may still be unknown, expired
// or already redeemed, and only the redeem operation decides that.
func Validate(code string) ValidationResult {
	percent, err := Decode(code)
	if err != nil {
		return ValidationResult{Valid: false, Reason: ReasonMalformed}
	}
	return ValidationResult{Valid: true, Percentage: percent, Reason: ReasonValid}
}
