package dataset

import "errors"

var (
	// ErrNoData indicates the requested year is absent. Callers treat it as a
	// recoverable empty selection.
	ErrNoData = errors.New("dataset: no records for selection")

	// ErrMalformedDate indicates a publish_date that is not YYYY-MM-DD.
	ErrMalformedDate = errors.New("dataset: malformed publish date")

	// ErrMalformedData indicates JSON that does not match the dataset layout.
	ErrMalformedData = errors.New("dataset: malformed data")

	// ErrInvalidRange indicates a month range outside 0..11 or reversed.
	ErrInvalidRange = errors.New("dataset: invalid month range")
)
