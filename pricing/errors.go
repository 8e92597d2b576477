package pricing

import "errors"

var (
	// ErrUnknownCategory indicates a category outside the closed category set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownGrade indicates a grade key that the category does not define.
	ErrUnknownGrade = errors.New("unknown grade")

	// ErrUnknownPriceType indicates a price type other than delivered or collected.
	ErrUnknownPriceType = errors.New("unknown price type")

	// ErrNegativePrice indicates an attempt to store a negative price.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrInvalidBulkValue indicates a bulk fill value that is not a non-negative whole number.
	ErrInvalidBulkValue = errors.New("bulk fill value must be a non-negative whole number")
)
