package pricing

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// a_grade_over_1_75, a_grade_under_1_55
	boundedWeightKey = regexp.MustCompile(`^([a-z])_grade_(over|under)_(\d+)_(\d+)$`)
	// a_grade_1_55_1_75
	bandedWeightKey = regexp.MustCompile(`^([a-z])_grade_(\d+)_(\d+)_(\d+)_(\d+)$`)
)

var compoundLabels = map[string]string{
	"super_premium": "Super Premium",
	"off_layers":    "Off Layers",
}

// FormatGradeLabel turns a grade key into its display label.
//
//	a_grade_over_1_75 -> "A Grade Over 1.75 kg"
//	a_grade_1_55_1_75 -> "A Grade 1.55-1.75 kg"
//	super_premium     -> "Super Premium"
//	condemned         -> "Condemned"
//
// It is pure, and formatting an already formatted label returns it unchanged.
func FormatGradeLabel(key string) string {
	if l, ok := compoundLabels[key]; ok {
		return l
	}
	if m := boundedWeightKey.FindStringSubmatch(key); m != nil {
		return fmt.Sprintf("%s Grade %s %s.%s kg", strings.ToUpper(m[1]), capitalize(m[2]), m[3], m[4])
	}
	if m := bandedWeightKey.FindStringSubmatch(key); m != nil {
		return fmt.Sprintf("%s Grade %s.%s-%s.%s kg", strings.ToUpper(m[1]), m[2], m[3], m[4], m[5])
	}

	parts := strings.Split(key, "_")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		words = append(words, capitalize(p))
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
