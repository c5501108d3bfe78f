package main

import (
	"fmt"
	"io"

	"mise/internal/costing"
	"mise/internal/recipe"
	"mise/internal/report"
)

func printCostReport(w io.Writer, r *recipe.Recipe, b costing.Breakdown, lines []costing.IngredientLine) {
	name := r.Name
	if name == "" {
		name = "Untitled recipe"
	}
	fmt.Fprintf(w, "%s\n", name)
	for range name {
		fmt.Fprint(w, "=")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Ingredients")
	fmt.Fprintln(w, "-----------")
	for _, l := range lines {
		fmt.Fprintf(w, "  %-28s %10s  %s\n", l.Name, report.Money(l.Cost), statusNote(l.Status))
	}
	fmt.Fprintln(w)

	s := report.Summarize(b)
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, "-------")
	fmt.Fprintf(w, "  Ingredients:            %s\n", s.TotalIngredients.StringFixed(2))
	fmt.Fprintf(w, "  Gas:                    %s\n", s.TotalGas.StringFixed(2))
	fmt.Fprintf(w, "  Labor:                  %s\n", s.TotalLabor.StringFixed(2))
	fmt.Fprintf(w, "  Utilities:              %s\n", s.TotalUtilities.StringFixed(2))
	fmt.Fprintf(w, "  Total cost:             %s\n", s.TotalCost.StringFixed(2))
	fmt.Fprintf(w, "  Cost per unit:          %s\n", s.CostPerUnit.StringFixed(2))
	fmt.Fprintf(w, "  Suggested sale price:   %s\n", s.SuggestedSalePrice.StringFixed(2))
	fmt.Fprintf(w, "  Profit:                 %s\n", s.TotalProfit.StringFixed(2))
	fmt.Fprintf(w, "  Estimated mass:         %s g\n", s.TotalMassGrams.String())
	fmt.Fprintf(w, "  Yields:                 %g x %g g\n", r.Yields, r.PortionSize)
}

func statusNote(s costing.ConversionStatus) string {
	switch s {
	case costing.StatusIncompatible:
		return "(incompatible units, not costed)"
	case costing.StatusInvalidPackage:
		return "(missing package price or quantity)"
	}
	return ""
}

func printUnits(w io.Writer, units []costing.Unit) {
	for _, u := range units {
		fmt.Fprintf(w, "  %-4s %-20s %-7s x%g\n", u.Symbol, u.Label, u.Dimension, u.BaseFactor)
	}
}
