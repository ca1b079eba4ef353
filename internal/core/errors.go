package core

import "errors"

// Sentinel errors for price list processing. Callers match them with
// errors.Is; the wrapped message carries the line number and value.
var (
	ErrMissingInput    = errors.New("missing input")
	ErrEmptyFile       = errors.New("empty file")
	ErrInvalidCSV      = errors.New("invalid csv")
	ErrEncoding        = errors.New("encoding error")
	ErrUnknownCategory = errors.New("unknown category")
	ErrMalformedPrice  = errors.New("malformed price")
	ErrMalformedRow    = errors.New("malformed row")
	ErrInvalidQuery    = errors.New("invalid query")
)
