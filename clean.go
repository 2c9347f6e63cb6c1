package zipcodes

import (
	"fmt"
	"strings"
)

// Zip5Length is the length of a base ZIP code, and the expected length for
// exact lookups.
const Zip5Length = 5

// ContainsNonDigits reports whether s holds anything other than ASCII digits
// and "-".
func ContainsNonDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && c != '-' {
			return true
		}
	}
	return false
}

// Clean normalizes a zipcode query and checks it against expectedLength.
//
// Both "06469" and the ZIP+4 form "06469-1154" are accepted; the +4 suffix is
// discarded. The character check runs on the input as received, so a bad
// suffix is rejected too. The length check runs on the portion before the
// hyphen.
//
//	Clean("06469-1154", 5) // "06469", nil
//	Clean("0646", 4)       // "0646", nil
//	Clean("000000", 5)     // ErrInputFormat
func Clean(code string, expectedLength int) (string, error) {
	if code == "" {
		return "", ErrInputType
	}
	if ContainsNonDigits(code) {
		return "", fmt.Errorf("%w: %q", ErrInputFormat, code)
	}

	// More details on ZIP+4 codes: https://smartystreets.com/articles/zip-4-code
	cleaned := code
	if strings.Count(code, "-") == 1 {
		cleaned, _, _ = strings.Cut(code, "-")
	}

	// Anything still holding a hyphen ("1-2-3", "-") is not a zipcode even
	// when its length happens to fit.
	if strings.Contains(cleaned, "-") || cleaned == "" {
		return "", fmt.Errorf("%w: %q", ErrInputFormat, code)
	}
	if len(cleaned) != expectedLength {
		return "", fmt.Errorf("%w: %q has length %d, want %d", ErrInputFormat, code, len(cleaned), expectedLength)
	}
	return cleaned, nil
}

// prefixLength returns the length a prefix query is cleaned against: the
// length of everything before the first hyphen.
func prefixLength(prefix string) int {
	before, _, _ := strings.Cut(prefix, "-")
	return len(before)
}
