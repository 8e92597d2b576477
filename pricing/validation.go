package pricing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fnp-marketplace/models"
)

// ParsePriceList validates and shapes a price list payload as returned by the API.
// id, client_id and effectiveDate are required; everything else is optional or defaulted.
// A bad payload yields a *models.ValidationError, never a panic.
func ParsePriceList(raw []byte) (*ProducerPriceList, error) {
	return parse(raw, true)
}

// ParseDraft validates a create or update payload. It is ParsePriceList without the id requirement.
func ParseDraft(raw []byte) (*ProducerPriceList, error) {
	return parse(raw, false)
}

func parse(raw []byte, requireID bool) (*ProducerPriceList, error) {
	verr := &models.ValidationError{}

	doc, err := decodeObject(raw)
	if err != nil {
		verr.Add("body", "must be a JSON object")
		return nil, verr
	}

	l := &ProducerPriceList{PricingBasis: LiveWeight}
	l.ensureCategories()

	l.ID = stringField(doc, "id")
	if requireID && l.ID == "" {
		verr.Add("id", "is required")
	}
	l.ClientID = stringField(doc, "client_id")
	if l.ClientID == "" {
		verr.Add("client_id", "is required")
	}
	l.ClientName = stringField(doc, "client_name")
	l.ClientSpecialization = stringField(doc, "client_specialization")

	if dateStr := stringField(doc, "effectiveDate"); dateStr == "" {
		verr.Add("effectiveDate", "is required")
	} else if d, err := ParseEffectiveDate(dateStr); err != nil {
		verr.Add("effectiveDate", err.Error())
	} else {
		l.EffectiveDate = d
	}

	if basis := stringField(doc, "pricing_basis"); basis != "" {
		if b, ok := ParsePricingBasis(basis); ok {
			l.PricingBasis = b
		} else {
			verr.Add("pricing_basis", "must be live_weight or cold_dressed_mass")
		}
	}

	l.CreatedAt = timeField(doc, "created_at")
	l.UpdatedAt = timeField(doc, "updated_at")

	categoryErrs := shapeCategories(l, doc)
	verr.Fields = append(verr.Fields, categoryErrs.Fields...)

	if err := verr.Err(); err != nil {
		return nil, err
	}
	return l, nil
}

// ParseEffectiveDate accepts YYYY-MM-DD or an RFC3339 timestamp and returns the civil date in UTC.
func ParseEffectiveDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return truncateDate(t), nil
	}
	return time.Time{}, fmt.Errorf("must be a date in YYYY-MM-DD format")
}

// shapeCategories fills the category blocks of l from doc. Unknown keys are ignored.
// A visible category must carry a delivered price for every grade; hidden ones default missing grades to 0.
func shapeCategories(l *ProducerPriceList, doc map[string]any) *models.ValidationError {
	verr := &models.ValidationError{}
	for _, c := range categoryOrder {
		rawBlock, present := doc[string(c)]
		if !present || rawBlock == nil {
			continue
		}
		block, ok := rawBlock.(map[string]any)
		if !ok {
			verr.Add(string(c), "must be an object")
			continue
		}

		cp := l.categories[c]
		var err error
		if cp.HasPrice, err = coerceBool(block[keyHasPrice]); err != nil {
			verr.Add(string(c)+"."+keyHasPrice, err.Error())
		}
		if cp.HasCollectedPrice, err = coerceBool(block[keyHasCollectedPrice]); err != nil {
			verr.Add(string(c)+"."+keyHasCollectedPrice, err.Error())
		}
		cp.FarmProduceID = stringField(block, keyFarmProduceID)

		for _, key := range gradeKeys(c) {
			path := string(c) + "." + string(key)
			g := cp.grades[key]

			rawGrade, present := block[string(key)]
			if !present || rawGrade == nil {
				if cp.HasPrice {
					verr.Add(path+".pricing.delivered", "is required")
				}
				continue
			}
			gradeObj, ok := rawGrade.(map[string]any)
			if !ok {
				verr.Add(path, "must be an object")
				continue
			}
			pricingObj, _ := gradeObj["pricing"].(map[string]any)

			delivered, err := coerceAmount(lookup(pricingObj, string(Delivered)))
			switch {
			case err == errMissing && cp.HasPrice:
				verr.Add(path+".pricing.delivered", "is required")
			case err == errMissing:
			case err != nil:
				verr.Add(path+".pricing.delivered", err.Error())
			default:
				g.Pricing.Delivered = delivered
			}

			collected, err := coerceAmount(lookup(pricingObj, string(Collected)))
			switch {
			case err == errMissing:
				g.Pricing.Collected = 0
			case err != nil:
				verr.Add(path+".pricing.collected", err.Error())
			default:
				g.Pricing.Collected = collected
			}
		}
	}
	return verr
}

var errMissing = fmt.Errorf("is required")

// coerceAmount turns a JSON number or numeric-like string into a non-negative whole amount of minor units.
func coerceAmount(v any) (int64, error) {
	switch n := v.(type) {
	case nil:
		return 0, errMissing
	case json.Number:
		return amountFromString(n.String())
	case string:
		if strings.TrimSpace(n) == "" {
			return 0, errMissing
		}
		return amountFromString(n)
	case float64:
		return amountFromFloat(n)
	case int:
		return amountFromInt(int64(n))
	case int64:
		return amountFromInt(n)
	default:
		return 0, fmt.Errorf("must be a number")
	}
}

func amountFromString(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return amountFromInt(i)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("must be a number")
	}
	return amountFromFloat(f)
}

func amountFromFloat(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("must be a number")
	}
	if f < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("must be a whole number of cents")
	}
	if f > math.MaxInt64/2 {
		return 0, fmt.Errorf("is too large")
	}
	return int64(f), nil
}

func amountFromInt(i int64) (int64, error) {
	if i < 0 {
		return 0, fmt.Errorf("must not be negative")
	}
	return i, nil
}

func coerceBool(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("must be true or false")
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("must be true or false")
	}
}

// ParseBulkValue coerces a bulk fill form value with the same rules as payload prices.
func ParseBulkValue(v any) (int64, error) {
	amount, err := coerceAmount(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidBulkValue, err)
	}
	return amount, nil
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("payload is not an object")
	}
	return doc, nil
}

func lookup(m map[string]any, key string) any {
	if m == nil {
		return nil
	}
	return m[key]
}

// stringField reads a string, accepting numbers for ids that some endpoints send numerically.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// timeField reads an optional RFC3339 timestamp; server-owned, so anything else is ignored.
func timeField(m map[string]any, key string) time.Time {
	t, err := time.Parse(time.RFC3339, stringField(m, key))
	if err != nil {
		return time.Time{}
	}
	return t
}
