package pricing

import "fmt"

// BulkFill writes value into the pt price of every grade of category c.
// It is all-or-nothing: a negative value, an unknown category or price type leaves l untouched.
// Other categories and the hasPrice/hasCollectedPrice flags are never changed.
func (l *ProducerPriceList) BulkFill(c Category, pt PriceType, value int64) error {
	if value < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBulkValue, value)
	}
	if pt != Delivered && pt != Collected {
		return fmt.Errorf("%w: %q", ErrUnknownPriceType, pt)
	}
	cp := l.Category(c)
	if cp == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}

	for _, g := range cp.grades {
		if pt == Delivered {
			g.Pricing.Delivered = value
		} else {
			g.Pricing.Collected = value
		}
	}
	return nil
}
