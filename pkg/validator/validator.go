package validator

import (
	"fmt"
	"strconv"
)

// ValidateURL checks that a URL can be shortened.
// Only emptiness is rejected: scheme, host and well-formedness are the
// caller's business, and the URL is stored exactly as given.
func ValidateURL(urlStr string) error {
	if urlStr == "" {
		return ErrEmptyURL
	}
	return nil
}

// ParseKey parses a path segment into a 32-bit key
func ParseKey(segment string) (uint32, error) {
	if segment == "" {
		return 0, ErrEmptyKey
	}

	// Signs are not part of the key syntax, ParseUint rejects them for us
	value, err := strconv.ParseUint(segment, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, segment)
	}

	return uint32(value), nil
}
