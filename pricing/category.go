package pricing

import "strings"

// Category is a livestock or service category a producer price list can quote.
type Category string

const (
	Beef      Category = "beef"
	Lamb      Category = "lamb"
	Mutton    Category = "mutton"
	Goat      Category = "goat"
	Chicken   Category = "chicken"
	Pork      Category = "pork"
	Slaughter Category = "slaughter"
	Catering  Category = "catering"
)

// categoryOrder is the order categories are rendered and serialized in.
var categoryOrder = []Category{Beef, Lamb, Mutton, Goat, Chicken, Pork, Slaughter, Catering}

var categoryLabels = map[Category]string{
	Beef:      "Beef",
	Lamb:      "Lamb",
	Mutton:    "Mutton",
	Goat:      "Goat",
	Chicken:   "Chicken",
	Pork:      "Pork",
	Slaughter: "Slaughter Services",
	Catering:  "Catering",
}

// GradeKey names a grade inside a category, e.g. "super" or "a_grade_over_1_75".
type GradeKey string

type grade struct {
	key  GradeKey
	code string
}

// gradeTable is the single source of truth for category -> ordered grades and their display codes.
// Codes are unique within a category only.
var gradeTable = map[Category][]grade{
	Beef: {
		{"super", "S"},
		{"choice", "C"},
		{"commercial", "X"},
		{"economy", "E"},
		{"manufacturing", "M"},
		{"condemned", "CD"},
	},
	Lamb: {
		{"super_premium", "SP"},
		{"choice", "C"},
		{"standard", "ST"},
		{"inferior", "I"},
	},
	Mutton: {
		{"super", "S"},
		{"choice", "C"},
		{"standard", "ST"},
		{"ordinary", "O"},
		{"condemned", "CD"},
	},
	Goat: {
		{"super", "S"},
		{"choice", "C"},
		{"standard", "ST"},
		{"inferior", "I"},
	},
	Chicken: {
		{"a_grade_over_1_75", "A1"},
		{"a_grade_1_55_1_75", "A2"},
		{"a_grade_under_1_55", "A3"},
		{"b_grade", "B"},
		{"off_layers", "OL"},
		{"condemned", "CD"},
	},
	Pork: {
		{"super", "S"},
		{"choice", "C"},
		{"manufacturing", "M"},
		{"condemned", "CD"},
	},
	Slaughter: {
		{"cattle", "SL"},
		{"sheep", "SS"},
		{"goats", "SG"},
		{"pigs", "SP"},
		{"chicken", "SC"},
	},
	Catering: {
		{"beef_carcass", "BC"},
		{"pork_carcass", "PC"},
		{"chicken_whole", "CW"},
		{"off_cuts", "OC"},
	},
}

// GradeDescriptor is what a form or table needs to render one grade.
type GradeDescriptor struct {
	Key   GradeKey `json:"key"`
	Code  string   `json:"code"`
	Label string   `json:"label"`
}

// CategoryDescriptor groups the grades of one category.
type CategoryDescriptor struct {
	Category Category          `json:"category"`
	Label    string            `json:"label"`
	Grades   []GradeDescriptor `json:"grades"`
}

// Categories returns every category in canonical order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// ParseCategory maps a category name to a Category. Unknown names report false.
func ParseCategory(s string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	_, ok := gradeTable[c]
	return c, ok
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	_, ok := gradeTable[c]
	return ok
}

// Label is the display name of the category.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return FormatGradeLabel(string(c))
}

// Grades returns the ordered grade descriptors for a category.
// An unknown category yields an empty slice, so callers render nothing.
func Grades(c Category) []GradeDescriptor {
	grades := gradeTable[c]
	out := make([]GradeDescriptor, 0, len(grades))
	for _, g := range grades {
		out = append(out, GradeDescriptor{
			Key:   g.key,
			Code:  g.code,
			Label: FormatGradeLabel(string(g.key)),
		})
	}
	return out
}

// AllGrades returns the descriptor of every category in canonical order.
func AllGrades() []CategoryDescriptor {
	out := make([]CategoryDescriptor, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		out = append(out, CategoryDescriptor{Category: c, Label: c.Label(), Grades: Grades(c)})
	}
	return out
}

// GradeCode returns the fixed display code for a grade.
func GradeCode(c Category, key GradeKey) (string, bool) {
	for _, g := range gradeTable[c] {
		if g.key == key {
			return g.code, true
		}
	}
	return "", false
}

func gradeKeys(c Category) []GradeKey {
	grades := gradeTable[c]
	keys := make([]GradeKey, len(grades))
	for i, g := range grades {
		keys[i] = g.key
	}
	return keys
}
