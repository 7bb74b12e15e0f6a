package core

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// CategorySummary is the aggregate spend of one category.
type CategorySummary struct {
	Category    Category
	TotalAmount decimal.Decimal
	Count       int
}

// DashboardSummary is the per-user aggregate returned by the dashboard endpoint.
type DashboardSummary struct {
	OverallTotal decimal.Decimal
	TotalCount   int
	PerCategory  []CategorySummary
}

// Percentage returns categoryTotal as a share of overallTotal, in percent.
// A non-positive overall total yields 0.
func Percentage(categoryTotal, overallTotal decimal.Decimal) float64 {
	if !overallTotal.IsPositive() {
		return 0
	}
	return categoryTotal.Div(overallTotal).Mul(hundred).InexactFloat64()
}

// CategoryShare pairs a category with its share of the overall total.
type CategoryShare struct {
	Category Category
	Percent  float64
}

// Shares returns each category's percentage of the overall total, in breakdown order.
func (s DashboardSummary) Shares() []CategoryShare {
	out := make([]CategoryShare, 0, len(s.PerCategory))
	for _, c := range s.PerCategory {
		out = append(out, CategoryShare{
			Category: c.Category,
			Percent:  Percentage(c.TotalAmount, s.OverallTotal),
		})
	}
	return out
}
