package costing

import (
	"mise/internal/recipe"
)

// DefaultGasBurnerConsumption is the gas burned by a standard high flame, in kg/hour.
const DefaultGasBurnerConsumption = 0.225

// ConversionStatus tells how an ingredient's usage was priced.
type ConversionStatus string

const (
	StatusInvalidPackage ConversionStatus = "invalid_package"
	StatusSameUnit       ConversionStatus = "same_unit"
	StatusConverted      ConversionStatus = "converted"
	StatusDozenToPiece   ConversionStatus = "dozen_to_piece"
	StatusIncompatible   ConversionStatus = "incompatible"
)

// CostResult is the priced usage of one ingredient. Amount is zero unless
// the status is resolvable; callers display it as zero either way.
type CostResult struct {
	Amount float64          `json:"amount"`
	Status ConversionStatus `json:"status"`
}

// Resolvable reports whether the usage could be priced.
func (r CostResult) Resolvable() bool {
	switch r.Status {
	case StatusSameUnit, StatusConverted, StatusDozenToPiece:
		return true
	}
	return false
}

// Breakdown is the derived cost of one batch. Currency values are in the
// recipe's currency; TotalMass is in grams.
type Breakdown struct {
	TotalIngredients   float64 `json:"totalIngredients"`
	TotalGas           float64 `json:"totalGas"`
	TotalLabor         float64 `json:"totalLabor"`
	TotalUtilities     float64 `json:"totalUtilities"`
	TotalCost          float64 `json:"totalCost"`
	CostPerUnit        float64 `json:"costPerUnit"`
	SuggestedSalePrice float64 `json:"suggestedSalePrice"`
	TotalProfit        float64 `json:"totalProfit"`
	TotalMass          float64 `json:"totalMass"`
}

// IngredientLine is the per-row view used to flag incompatible units.
type IngredientLine struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Cost   float64          `json:"cost"`
	Status ConversionStatus `json:"status"`
	Mass   float64          `json:"mass"`
}

// Engine prices recipes against a unit catalog. It holds no mutable state.
type Engine struct {
	catalog *Catalog
}

// NewEngine creates an engine over cat, or over the default catalog when cat is nil.
func NewEngine(cat *Catalog) *Engine {
	if cat == nil {
		cat = DefaultCatalog()
	}
	return &Engine{catalog: cat}
}

// Catalog returns the engine's unit catalog.
func (e *Engine) Catalog() *Catalog {
	return e.catalog
}

// Resolve prices the used quantity of ing. The first matching case wins.
func (e *Engine) Resolve(ing recipe.Ingredient) CostResult {
	if ing.PackageQuantity <= 0 || ing.PackagePrice <= 0 {
		return CostResult{Status: StatusInvalidPackage}
	}

	// Textually equal symbols never need a lookup, registered or not.
	if ing.PackageUnit == ing.UsedUnit {
		return CostResult{
			Amount: (ing.PackagePrice / ing.PackageQuantity) * ing.UsedQuantity,
			Status: StatusSameUnit,
		}
	}

	pkgDim := e.catalog.DimensionOf(ing.PackageUnit)
	if pkgDim != DimensionUnknown && pkgDim == e.catalog.DimensionOf(ing.UsedUnit) {
		pkgBase := ing.PackageQuantity * e.catalog.BaseFactorOf(ing.PackageUnit)
		usedBase := ing.UsedQuantity * e.catalog.BaseFactorOf(ing.UsedUnit)
		if pkgBase > 0 {
			return CostResult{
				Amount: (ing.PackagePrice / pkgBase) * usedBase,
				Status: StatusConverted,
			}
		}
	}

	// Kept apart from the dimension rule so it still holds for catalogs
	// that do not register "dz" as twelve pieces.
	if ing.PackageUnit == "dz" && ing.UsedUnit == "un" {
		return CostResult{
			Amount: (ing.PackagePrice / (ing.PackageQuantity * DozenSize)) * ing.UsedQuantity,
			Status: StatusDozenToPiece,
		}
	}

	return CostResult{Status: StatusIncompatible}
}

// CostOf returns the cost of the used quantity of ing, zero when unresolvable.
func (e *Engine) CostOf(ing recipe.Ingredient) float64 {
	return e.Resolve(ing).Amount
}

// EstimatedMass converts a quantity to grams assuming 1 ml weighs 1 g.
// Count and unknown units have no mass estimate.
func (e *Engine) EstimatedMass(quantity float64, unit string) float64 {
	switch e.catalog.DimensionOf(unit) {
	case DimensionMass, DimensionVolume:
		return quantity * e.catalog.BaseFactorOf(unit)
	}
	return 0
}

// Lines prices every ingredient of r individually.
func (e *Engine) Lines(r *recipe.Recipe) []IngredientLine {
	lines := make([]IngredientLine, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		res := e.Resolve(ing)
		lines = append(lines, IngredientLine{
			ID:     ing.ID,
			Name:   ing.Name,
			Cost:   res.Amount,
			Status: res.Status,
			Mass:   e.EstimatedMass(ing.UsedQuantity, ing.UsedUnit),
		})
	}
	return lines
}

// Breakdown computes the full cost breakdown of r.
func (e *Engine) Breakdown(r *recipe.Recipe) Breakdown {
	var b Breakdown

	for _, ing := range r.Ingredients {
		b.TotalIngredients += e.CostOf(ing)
		b.TotalMass += e.EstimatedMass(ing.UsedQuantity, ing.UsedUnit)
	}

	oh := r.Overheads
	b.TotalGas = GasCost(oh)
	b.TotalLabor = ((oh.PreparationTimeMinutes + oh.CookingTimeMinutes) / 60) * oh.LaborHourlyRate
	b.TotalUtilities = oh.ElectricityEstimate + oh.WaterEstimate + oh.OtherCosts

	b.TotalCost = b.TotalIngredients + b.TotalGas + b.TotalLabor + b.TotalUtilities
	b.TotalProfit = b.TotalCost * (r.ProfitMargin / 100)
	if r.Yields > 0 {
		b.CostPerUnit = b.TotalCost / r.Yields
		b.SuggestedSalePrice = (b.TotalCost + b.TotalProfit) / r.Yields
	}

	return b
}

// GasCostPerHour is the cost of running one burner for an hour.
func GasCostPerHour(oh recipe.Overheads) float64 {
	var pricePerKg float64
	if oh.GasCylinderWeight > 0 {
		pricePerKg = oh.GasCylinderPrice / oh.GasCylinderWeight
	}
	consumption := oh.GasBurnerConsumption
	if consumption == 0 {
		consumption = DefaultGasBurnerConsumption
	}
	return pricePerKg * consumption
}

// GasCost is the gas burned during the cooking time.
func GasCost(oh recipe.Overheads) float64 {
	return GasCostPerHour(oh) * (oh.CookingTimeMinutes / 60)
}
