// Package report renders a cost breakdown for people: share text and the
// slices of the cost chart. Amounts are rounded to cents here and nowhere else.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"mise/internal/costing"
	"mise/internal/recipe"
)

// Cents rounds v half away from zero to two decimals.
func Cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Money formats v with two decimals and no currency symbol; callers localize.
func Money(v float64) string {
	return Cents(v).StringFixed(2)
}

// Summary is the rounded, display-ready view of a breakdown.
type Summary struct {
	TotalIngredients   decimal.Decimal `json:"totalIngredients"`
	TotalGas           decimal.Decimal `json:"totalGas"`
	TotalLabor         decimal.Decimal `json:"totalLabor"`
	TotalUtilities     decimal.Decimal `json:"totalUtilities"`
	TotalCost          decimal.Decimal `json:"totalCost"`
	CostPerUnit        decimal.Decimal `json:"costPerUnit"`
	SuggestedSalePrice decimal.Decimal `json:"suggestedSalePrice"`
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	TotalMassGrams     decimal.Decimal `json:"totalMassGrams"`
}

// Summarize rounds every currency field of b to cents and the mass to whole grams.
func Summarize(b costing.Breakdown) Summary {
	return Summary{
		TotalIngredients:   Cents(b.TotalIngredients),
		TotalGas:           Cents(b.TotalGas),
		TotalLabor:         Cents(b.TotalLabor),
		TotalUtilities:     Cents(b.TotalUtilities),
		TotalCost:          Cents(b.TotalCost),
		CostPerUnit:        Cents(b.CostPerUnit),
		SuggestedSalePrice: Cents(b.SuggestedSalePrice),
		TotalProfit:        Cents(b.TotalProfit),
		TotalMassGrams:     decimal.NewFromFloat(b.TotalMass).Round(0),
	}
}

// Slice is one wedge of the cost chart.
type Slice struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

// Slices splits the batch cost into ingredients, energy (gas and utilities)
// and labor, dropping empty wedges.
func Slices(b costing.Breakdown) []Slice {
	all := []struct {
		name  string
		value float64
	}{
		{"Ingredients", b.TotalIngredients},
		{"Gas/Energy", b.TotalGas + b.TotalUtilities},
		{"Labor", b.TotalLabor},
	}

	out := make([]Slice, 0, len(all))
	for _, s := range all {
		if s.value > 0 {
			out = append(out, Slice{Name: s.name, Value: Cents(s.value)})
		}
	}
	return out
}

// ShareText is the plain-text card the user pastes into a chat.
func ShareText(r recipe.Recipe, b costing.Breakdown, chef string) string {
	name := r.Name
	if name == "" {
		name = "New recipe"
	}
	if chef == "" {
		chef = "Mise user"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recipe: %s\n", name)
	fmt.Fprintf(&sb, "Chef: %s\n", chef)
	sb.WriteString("-------------------------\n")
	fmt.Fprintf(&sb, "Total cost: %s\n", Money(b.TotalCost))
	fmt.Fprintf(&sb, "Cost per unit: %s\n", Money(b.CostPerUnit))
	fmt.Fprintf(&sb, "Suggested price: %s\n", Money(b.SuggestedSalePrice))
	fmt.Fprintf(&sb, "Profit: %s%%\n", decimal.NewFromFloat(r.ProfitMargin).String())
	sb.WriteString("-------------------------\n")
	sb.WriteString("Made with Mise")
	return sb.String()
}
