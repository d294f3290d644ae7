package gs1

import (
	"errors"
	"fmt"
)

// Sentinel errors for identifier parsing and validation.
var (
	// ErrMalformedIdentifier indicates an identifier failed structural validation.
	ErrMalformedIdentifier = errors.New("malformed GS1 identifier")

	// ErrUnknownPrefix indicates no registry entry matches any candidate prefix length.
	ErrUnknownPrefix = errors.New("company prefix not found in registry")

	// ErrUnparseableClass indicates an EPC class identifier matches neither
	// the URN nor the Digital Link URL shape.
	ErrUnparseableClass = errors.New("unparseable EPC class identifier")
)

// CheckDigit computes the GS1 mod-10 check digit for a digit string.
// Digits are weighted 3,1,3,1,... from right to left; the check digit is
// (10 - sum mod 10) mod 10.
//
// The input must consist only of ASCII digits. Length is bounded by the
// identifier type of the caller (13 digits for a GTIN-14 body, 17 for an
// SSCC body, ...) and is not enforced here.
func CheckDigit(digits string) (int, error) {
	if digits == "" {
		return 0, fmt.Errorf("%w: empty digit string", ErrMalformedIdentifier)
	}
	sum := 0
	weight := 3
	for i := len(digits) - 1; i >= 0; i-- {
		c := digits[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: non-digit %q in %q", ErrMalformedIdentifier, c, digits)
		}
		sum += int(c-'0') * weight
		weight = 4 - weight
	}
	return (10 - sum%10) % 10, nil
}
