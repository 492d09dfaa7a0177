package domain

import (
	"errors"
	"log/slog"
	"strconv"

	"shortlink/pkg/validator"
)

// Key identifies a shortened link. It is rendered as a plain decimal number
// both in the short URL path and in the shorten response body.
type Key uint32

// String returns the decimal form of the key
func (k Key) String() string {
	return strconv.FormatUint(uint64(k), 10)
}

// ParseKey converts a request path segment into a Key
func ParseKey(segment string) (Key, error) {
	value, err := validator.ParseKey(segment)
	if err != nil {
		return 0, err
	}
	return Key(value), nil
}

// Link is a single (key, url) entry held by the store.
// Many keys may point at the same URL; a key points at exactly one URL.
type Link struct {
	Key Key
	URL string
}

// LogValue renders the link as a log group with a decimal key
func (l Link) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("key", l.Key.String()),
		slog.String("url", l.URL),
	)
}

// Domain errors. Both are caller-correctable, the HTTP layer maps them
// to 400 and 404.
var (
	ErrEmptyInput = errors.New("URL is empty")
	ErrNotFound   = errors.New("link not found")
)

// ValidateURL reports ErrEmptyInput for a URL that cannot be shortened
func ValidateURL(url string) error {
	if err := validator.ValidateURL(url); err != nil {
		return ErrEmptyInput
	}
	return nil
}
