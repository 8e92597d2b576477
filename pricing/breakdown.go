package pricing

import "fnp-marketplace/utils"

// NotApplicable is shown in place of a collected price when the category has none.
const NotApplicable = "-"

// BreakdownRow is one grade line of a rendered price list.
type BreakdownRow struct {
	Grade     GradeKey `json:"grade"`
	Code      string   `json:"code"`
	Label     string   `json:"label"`
	Delivered string   `json:"delivered"`
	Collected string   `json:"collected"`
}

// CategoryBreakdown is the rendered table of one visible category.
type CategoryBreakdown struct {
	Category          Category       `json:"category"`
	Label             string         `json:"label"`
	HasCollectedPrice bool           `json:"hasCollectedPrice"`
	Rows              []BreakdownRow `json:"rows"`
}

// PriceListBreakdown is the read-only, display-ready form of a price list.
type PriceListBreakdown struct {
	ID                   string              `json:"id"`
	ClientName           string              `json:"client_name"`
	ClientSpecialization string              `json:"client_specialization"`
	EffectiveDate        string              `json:"effectiveDate"`
	PricingBasis         string              `json:"pricing_basis"`
	Categories           []CategoryBreakdown `json:"categories"`
}

// Breakdown converts l into display strings. Only categories with hasPrice appear, and collected
// prices show as "-" unless the category has hasCollectedPrice, whatever the stored value is.
func Breakdown(l *ProducerPriceList) PriceListBreakdown {
	out := PriceListBreakdown{
		ID:                   l.ID,
		ClientName:           l.ClientName,
		ClientSpecialization: l.ClientSpecialization,
		EffectiveDate:        l.EffectiveDate.Format(DateLayout),
		PricingBasis:         l.PricingBasis.Label(),
		Categories:           []CategoryBreakdown{},
	}

	for _, cp := range l.VisibleCategories() {
		cb := CategoryBreakdown{
			Category:          cp.Category,
			Label:             cp.Category.Label(),
			HasCollectedPrice: cp.HasCollectedPrice,
		}
		for _, g := range cp.Grades() {
			row := BreakdownRow{
				Grade:     g.Key,
				Code:      g.Price.Code,
				Label:     FormatGradeLabel(string(g.Key)),
				Delivered: utils.FormatMoney(g.Price.Pricing.Delivered),
				Collected: NotApplicable,
			}
			if cp.HasCollectedPrice {
				row.Collected = utils.FormatMoney(g.Price.Pricing.Collected)
			}
			cb.Rows = append(cb.Rows, row)
		}
		out.Categories = append(out.Categories, cb)
	}
	return out
}
