// Package phone provides Brazilian phone number normalization.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"leadcapture_backend/platform/apperr"
)

// CodeInvalidPhone identifies phone normalization failures.
const CodeInvalidPhone = "INVALID_PHONE"

const countryPrefix = "+55"

// Normalize converts a raw phone string to its canonical international form:
// +55 followed by a two-digit area code and an 8 or 9 digit subscriber number.
//
// Rules, applied in order:
//   - every non-digit character is stripped;
//   - the remaining digits must count 10 or 11;
//   - the first two digits are the area code, numerically within [11, 99];
//   - a 9-digit subscriber number must start with 9.
//
// A failed rule returns a typed validation error; no partial result is ever
// produced.
func Normalize(raw string) (string, error) {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	stripped := digits.String()
	if len(stripped) < 10 || len(stripped) > 11 {
		return "", invalid(fmt.Sprintf("phone must have 10 or 11 digits, got %d", len(stripped)))
	}

	areaCode := stripped[:2]
	number := stripped[2:]

	code, err := strconv.Atoi(areaCode)
	if err != nil || code < 11 || code > 99 {
		return "", invalid(fmt.Sprintf("invalid area code %q", areaCode))
	}

	if len(number) == 9 && number[0] != '9' {
		return "", invalid("mobile number must start with 9")
	}

	return countryPrefix + areaCode + number, nil
}

func invalid(message string) *apperr.Error {
	return apperr.Validation(CodeInvalidPhone, message)
}
