package core

import "strings"

// Category is one of the fixed expense categories understood by the API.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryShopping      Category = "Shopping"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryHealthcare    Category = "Healthcare"
	CategoryEducation     Category = "Education"
	CategoryOther         Category = "Other"
)

var allCategories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryHealthcare,
	CategoryEducation,
	CategoryOther,
}

// Categories returns every category in display order.
func Categories() []Category {
	return append([]Category(nil), allCategories...)
}

// NormalizeCategory maps s onto the closed category set, ignoring case.
// Anything unrecognized becomes CategoryOther.
func NormalizeCategory(s string) Category {
	s = strings.TrimSpace(s)
	for _, c := range allCategories {
		if strings.EqualFold(string(c), s) {
			return c
		}
	}
	return CategoryOther
}

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}

// IsValid returns true if c is exactly one of the known categories.
func (c Category) IsValid() bool {
	for _, known := range allCategories {
		if c == known {
			return true
		}
	}
	return false
}
