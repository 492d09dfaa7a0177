package validator

import "errors"

var (
	ErrEmptyURL   = errors.New("URL cannot be empty")
	ErrEmptyKey   = errors.New("key cannot be empty")
	ErrInvalidKey = errors.New("key must be an unsigned 32-bit decimal integer")
)
