// Package common defines sentinel errors shared by the storage, transfer and
// service layers of promptkeeper. Callers should use errors.Is to match these
// values; lower layers wrap them with context using %w.
package common

import "errors"

var (
	// Storage-level errors.
	ErrStorage      = errors.New("storage failure")
	ErrNotFound     = errors.New("not found")
	ErrDuplicateKey = errors.New("duplicate key")

	// Transfer errors.
	ErrMalformedPayload = errors.New("malformed transfer payload")
	ErrNotJSONFile      = errors.New("not a .json file")

	// Validation errors.
	ErrInvalidSortKey = errors.New("invalid sort key")
	ErrValidation     = errors.New("validation error")
)
