package temperature

import "errors"

var (
	// ErrInvalidParameter indicates a model parameter outside its valid
	// domain (z <= 0, minimum above maximum, or degenerate day geometry).
	ErrInvalidParameter = errors.New("invalid model parameter")

	// ErrDuplicateDate indicates two source records resolved to the same
	// calendar date, which would make the chronological chain ambiguous.
	ErrDuplicateDate = errors.New("duplicate calendar date")

	// ErrMissingNeighbor indicates a query landed in a segment that needs
	// the previous or next day's data, at a boundary of the series.
	ErrMissingNeighbor = errors.New("no adjacent day data")

	// ErrNoDataForDate indicates the queried calendar date is not present
	// in the series.
	ErrNoDataForDate = errors.New("no data for date")
)
