package pricing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format of effectiveDate.
const DateLayout = "2006-01-02"

// PricingBasis says whether prices are quoted per live weight or per cold-dressed mass.
type PricingBasis string

const (
	LiveWeight      PricingBasis = "live_weight"
	ColdDressedMass PricingBasis = "cold_dressed_mass"
)

// ParsePricingBasis accepts the canonical values and the spellings the dashboards have used.
func ParsePricingBasis(s string) (PricingBasis, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	switch norm {
	case "live_weight", "liveweight", "lw":
		return LiveWeight, true
	case "cold_dressed_mass", "colddressedmass", "cdm":
		return ColdDressedMass, true
	}
	return "", false
}

// Label is the display name of the basis.
func (b PricingBasis) Label() string {
	switch b {
	case ColdDressedMass:
		return "Cold Dressed Mass"
	default:
		return "Live Weight"
	}
}

// PriceType selects one of the two prices a grade carries.
type PriceType string

const (
	Delivered PriceType = "delivered"
	Collected PriceType = "collected"
)

// ParsePriceType maps "delivered"/"collected" to a PriceType.
func ParsePriceType(s string) (PriceType, bool) {
	switch PriceType(strings.ToLower(strings.TrimSpace(s))) {
	case Delivered:
		return Delivered, true
	case Collected:
		return Collected, true
	}
	return "", false
}

// Pricing holds the two prices of a grade in minor currency units (cents).
type Pricing struct {
	Delivered int64 `json:"delivered"`
	Collected int64 `json:"collected"`
}

// GradePrice is the price of one grade. Code comes from the grade table and is never user supplied.
type GradePrice struct {
	Code    string  `json:"code"`
	Pricing Pricing `json:"pricing"`
}

// GradeEntry pairs a grade key with its price for ordered iteration.
type GradeEntry struct {
	Key   GradeKey
	Price GradePrice
}

// CategoryPrices is the block of one category inside a price list.
type CategoryPrices struct {
	Category          Category
	HasPrice          bool
	HasCollectedPrice bool
	FarmProduceID     string
	grades            map[GradeKey]*GradePrice
}

func newCategoryPrices(c Category) *CategoryPrices {
	cp := &CategoryPrices{
		Category: c,
		grades:   make(map[GradeKey]*GradePrice, len(gradeTable[c])),
	}
	for _, g := range gradeTable[c] {
		cp.grades[g.key] = &GradePrice{Code: g.code}
	}
	return cp
}

// Grades returns the grades in table order.
func (cp *CategoryPrices) Grades() []GradeEntry {
	out := make([]GradeEntry, 0, len(cp.grades))
	for _, key := range gradeKeys(cp.Category) {
		out = append(out, GradeEntry{Key: key, Price: *cp.grades[key]})
	}
	return out
}

// Grade returns the price of one grade.
func (cp *CategoryPrices) Grade(key GradeKey) (GradePrice, bool) {
	g, ok := cp.grades[key]
	if !ok {
		return GradePrice{}, false
	}
	return *g, true
}

// ProducerPriceList is a per-client, per-effective-date snapshot of producer prices.
// Every category of the table is always present in memory; HasPrice decides visibility.
type ProducerPriceList struct {
	ID                   string
	ClientID             string
	ClientName           string
	ClientSpecialization string
	EffectiveDate        time.Time
	PricingBasis         PricingBasis
	CreatedAt            time.Time
	UpdatedAt            time.Time
	categories           map[Category]*CategoryPrices
}

// NewDraft returns the creation template: every category hidden and every grade priced 0.
func NewDraft(clientID, clientName, clientSpecialization string, effectiveDate time.Time) *ProducerPriceList {
	l := &ProducerPriceList{
		ClientID:             clientID,
		ClientName:           clientName,
		ClientSpecialization: clientSpecialization,
		EffectiveDate:        truncateDate(effectiveDate),
		PricingBasis:         LiveWeight,
	}
	l.ensureCategories()
	return l
}

func (l *ProducerPriceList) ensureCategories() {
	if l.categories == nil {
		l.categories = make(map[Category]*CategoryPrices, len(categoryOrder))
	}
	for _, c := range categoryOrder {
		if _, ok := l.categories[c]; !ok {
			l.categories[c] = newCategoryPrices(c)
		}
	}
}

// Category returns the block of c, or nil for a category outside the table.
func (l *ProducerPriceList) Category(c Category) *CategoryPrices {
	l.ensureCategories()
	return l.categories[c]
}

// Grade returns the price of one grade of one category.
func (l *ProducerPriceList) Grade(c Category, key GradeKey) (GradePrice, bool) {
	cp := l.Category(c)
	if cp == nil {
		return GradePrice{}, false
	}
	return cp.Grade(key)
}

// SetPrice writes one price of one grade.
func (l *ProducerPriceList) SetPrice(c Category, key GradeKey, pt PriceType, value int64) error {
	cp := l.Category(c)
	if cp == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	g, ok := cp.grades[key]
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownGrade, c, key)
	}
	if value < 0 {
		return fmt.Errorf("%w: %d", ErrNegativePrice, value)
	}
	switch pt {
	case Delivered:
		g.Pricing.Delivered = value
	case Collected:
		g.Pricing.Collected = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPriceType, pt)
	}
	return nil
}

// SetVisibility sets the hasPrice and hasCollectedPrice flags of a category.
func (l *ProducerPriceList) SetVisibility(c Category, hasPrice, hasCollectedPrice bool) error {
	cp := l.Category(c)
	if cp == nil {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, c)
	}
	cp.HasPrice = hasPrice
	cp.HasCollectedPrice = hasCollectedPrice
	return nil
}

// VisibleCategories returns the categories with HasPrice set, in canonical order.
func (l *ProducerPriceList) VisibleCategories() []*CategoryPrices {
	l.ensureCategories()
	out := make([]*CategoryPrices, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		if cp := l.categories[c]; cp.HasPrice {
			out = append(out, cp)
		}
	}
	return out
}

// Clone returns a deep copy.
func (l *ProducerPriceList) Clone() *ProducerPriceList {
	l.ensureCategories()
	out := *l
	out.categories = make(map[Category]*CategoryPrices, len(l.categories))
	for c, cp := range l.categories {
		cpy := *cp
		cpy.grades = make(map[GradeKey]*GradePrice, len(cp.grades))
		for k, g := range cp.grades {
			gc := *g
			cpy.grades[k] = &gc
		}
		out.categories[c] = &cpy
	}
	return &out
}

// Wire keys of a category block that are not grades.
const (
	keyHasPrice          = "hasPrice"
	keyHasCollectedPrice = "hasCollectedPrice"
	keyFarmProduceID     = "farm_produce_id"
)

func (cp *CategoryPrices) wire() map[string]any {
	block := map[string]any{
		keyHasPrice:          cp.HasPrice,
		keyHasCollectedPrice: cp.HasCollectedPrice,
	}
	if cp.FarmProduceID != "" {
		block[keyFarmProduceID] = cp.FarmProduceID
	}
	for _, key := range gradeKeys(cp.Category) {
		block[string(key)] = *cp.grades[key]
	}
	return block
}

func (l *ProducerPriceList) wire(includeHidden bool) map[string]any {
	l.ensureCategories()
	out := map[string]any{
		"client_id":             l.ClientID,
		"client_name":           l.ClientName,
		"client_specialization": l.ClientSpecialization,
		"effectiveDate":         l.EffectiveDate.Format(DateLayout),
		"pricing_basis":         l.PricingBasis,
	}
	if l.ID != "" {
		out["id"] = l.ID
	}
	if !l.CreatedAt.IsZero() {
		out["created_at"] = l.CreatedAt.UTC().Format(time.RFC3339)
	}
	if !l.UpdatedAt.IsZero() {
		out["updated_at"] = l.UpdatedAt.UTC().Format(time.RFC3339)
	}
	for _, c := range categoryOrder {
		cp := l.categories[c]
		if cp.HasPrice || includeHidden {
			out[string(c)] = cp.wire()
		}
	}
	return out
}

// MarshalJSON emits the API shape. Categories without hasPrice are left out entirely.
func (l *ProducerPriceList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.wire(false))
}

// FormView is the edit-form shape: every category, hidden ones included with their zeroed grades.
func (l *ProducerPriceList) FormView() map[string]any {
	return l.wire(true)
}

// EncodeCategories serializes every category block for storage, hidden ones included,
// so that prices survive a visibility toggle or a bulk fill on a hidden category.
func (l *ProducerPriceList) EncodeCategories() ([]byte, error) {
	l.ensureCategories()
	blocks := make(map[string]any, len(categoryOrder))
	for _, c := range categoryOrder {
		blocks[string(c)] = l.categories[c].wire()
	}
	return json.Marshal(blocks)
}

// DecodeCategories loads stored category blocks into l, replacing its current blocks.
func (l *ProducerPriceList) DecodeCategories(raw []byte) error {
	l.categories = nil
	l.ensureCategories()
	if len(raw) == 0 {
		return nil
	}
	doc, err := decodeObject(raw)
	if err != nil {
		return fmt.Errorf("failed to decode stored categories: %w", err)
	}
	verr := shapeCategories(l, doc)
	return verr.Err()
}

func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
