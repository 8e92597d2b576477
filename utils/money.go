package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney formats an amount held in minor units (cents) as a dollar string like "$12,500.00".
// Uses comma as thousands separator and always prints two decimals.
func FormatMoney(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}

	major := strconv.FormatInt(amount/100, 10)
	minor := amount % 100

	var b strings.Builder
	// Pre-allocate: digits + separators + $ + cents
	b.Grow(len(major) + len(major)/3 + 6)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}

	// Insert separators from the left.
	rem := len(major) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(major[:rem])
	for i := rem; i < len(major); i += 3 {
		b.WriteByte(',')
		b.WriteString(major[i : i+3])
	}

	b.WriteByte('.')
	if minor < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(minor, 10))
	return b.String()
}

// ParseMoney is the inverse of FormatMoney. It accepts "$42.50", "42.5", "1,000" and "-$3.07"
// and returns the amount in minor units. More than two decimals is an error, never a rounding.
func ParseMoney(s string) (int64, error) {
	str := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(str, "-") {
		neg = true
		str = str[1:]
	}
	str = strings.TrimPrefix(str, "$")
	str = strings.ReplaceAll(str, ",", "")
	if str == "" {
		return 0, fmt.Errorf("invalid money value %q", s)
	}

	whole, frac, hasFrac := strings.Cut(str, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return 0, fmt.Errorf("invalid money value %q: expected at most two decimals", s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if !isDigits(whole) || !isDigits(frac) {
		return 0, fmt.Errorf("invalid money value %q", s)
	}

	major, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	minor, _ := strconv.ParseInt(frac, 10, 64)

	amount := major*100 + minor
	if neg {
		amount = -amount
	}
	return amount, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
