package core

import "testing"

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]Category{
		"Food":          CategoryFood,
		"food":          CategoryFood,
		"FOOD":          CategoryFood,
		" transport ":   CategoryTransport,
		"healthcare":    CategoryHealthcare,
		"Other":         CategoryOther,
		"":              CategoryOther,
		"Groceries":     CategoryOther,
		"entertainment": CategoryEntertainment,
	}
	for in, want := range cases {
		if got := NormalizeCategory(in); got != want {
			t.Fatalf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeCategoryIdempotent(t *testing.T) {
	inputs := []string{"food", "Shopping", "unknown", "", "UTILITIES", "educ", "Other"}
	for _, in := range inputs {
		once := NormalizeCategory(in)
		twice := NormalizeCategory(string(once))
		if once != twice {
			t.Fatalf("normalize not idempotent for %q: %q then %q", in, once, twice)
		}
		if !once.IsValid() {
			t.Fatalf("normalized value %q is not a known category", once)
		}
	}
}

func TestCategoriesOrderAndCopy(t *testing.T) {
	cats := Categories()
	if len(cats) != 8 || cats[0] != CategoryFood || cats[7] != CategoryOther {
		t.Fatalf("unexpected categories: %v", cats)
	}
	cats[0] = "mutated"
	if Categories()[0] != CategoryFood {
		t.Fatalf("Categories must return a copy")
	}
}
