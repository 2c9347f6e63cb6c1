package zipcodes

import "errors"

// Sentinel errors. Callers match them with errors.Is; the returned errors
// wrap them with the offending input or source position.
var (
	// ErrInputType is returned when a query input is empty.
	ErrInputType = errors.New("zipcode must be a non-empty string")

	// ErrInputFormat is returned when a query input has the wrong length or
	// contains characters other than digits and "-".
	ErrInputFormat = errors.New("invalid zipcode format")

	// ErrMalformedSource is returned by the builder when a raw source has no
	// header row, has ragged rows, or holds a value a transform cannot read.
	ErrMalformedSource = errors.New("malformed source")

	// ErrDatasetLoad is returned when the serialized table cannot be located,
	// read or decoded.
	ErrDatasetLoad = errors.New("dataset load failed")
)
