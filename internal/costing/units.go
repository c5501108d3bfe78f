// Package costing turns a recipe snapshot into a cost breakdown and keeps
// the yield count and portion size consistent with the estimated batch mass.
//
// All functions here are total: unresolvable inputs (missing prices,
// incompatible units, non-positive quantities) cost zero instead of failing.
package costing

// Dimension is the physical quantity a unit measures.
type Dimension string

const (
	DimensionUnknown Dimension = "unknown"
	DimensionMass    Dimension = "mass"
	DimensionVolume  Dimension = "volume"
	DimensionCount   Dimension = "count"
)

// Unit describes a purchase or usage unit. BaseFactor converts one of it
// into the base unit of its dimension: grams, milliliters or pieces.
type Unit struct {
	Symbol     string    `json:"symbol"`
	Label      string    `json:"label"`
	Dimension  Dimension `json:"dimension"`
	BaseFactor float64   `json:"baseFactor"`
}

// Catalog is a fixed registry of units keyed by symbol.
type Catalog struct {
	order []string
	units map[string]Unit
}

// NewCatalog builds a catalog. A later unit with an already registered
// symbol replaces the earlier descriptor.
func NewCatalog(units ...Unit) *Catalog {
	c := &Catalog{units: make(map[string]Unit, len(units))}
	for _, u := range units {
		if _, ok := c.units[u.Symbol]; !ok {
			c.order = append(c.order, u.Symbol)
		}
		c.units[u.Symbol] = u
	}
	return c
}

var defaultCatalog = NewCatalog(
	Unit{Symbol: "kg", Label: "Quilo (kg)", Dimension: DimensionMass, BaseFactor: 1000},
	Unit{Symbol: "g", Label: "Grama (g)", Dimension: DimensionMass, BaseFactor: 1},
	Unit{Symbol: "mg", Label: "Miligrama (mg)", Dimension: DimensionMass, BaseFactor: 0.001},
	Unit{Symbol: "l", Label: "Litro (l)", Dimension: DimensionVolume, BaseFactor: 1000},
	Unit{Symbol: "ml", Label: "Mililitro (ml)", Dimension: DimensionVolume, BaseFactor: 1},
	Unit{Symbol: "un", Label: "Unidade (un)", Dimension: DimensionCount, BaseFactor: 1},
	Unit{Symbol: "cx", Label: "Caixa (cx)", Dimension: DimensionCount, BaseFactor: 1},
	Unit{Symbol: "lt", Label: "Lata (lt)", Dimension: DimensionCount, BaseFactor: 1},
	Unit{Symbol: "pct", Label: "Pacote (pct)", Dimension: DimensionCount, BaseFactor: 1},
	Unit{Symbol: "dz", Label: "Dúzia (dz)", Dimension: DimensionCount, BaseFactor: DozenSize},
)

// DozenSize is the number of pieces in a dozen.
const DozenSize = 12

// DefaultCatalog returns the built-in unit registry.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Lookup returns the descriptor registered for symbol.
func (c *Catalog) Lookup(symbol string) (Unit, bool) {
	u, ok := c.units[symbol]
	return u, ok
}

// DimensionOf returns the dimension of symbol, or DimensionUnknown.
func (c *Catalog) DimensionOf(symbol string) Dimension {
	if u, ok := c.Lookup(symbol); ok {
		return u.Dimension
	}
	return DimensionUnknown
}

// BaseFactorOf returns the base factor of symbol, or 1 when unregistered.
func (c *Catalog) BaseFactorOf(symbol string) float64 {
	if u, ok := c.Lookup(symbol); ok {
		return u.BaseFactor
	}
	return 1
}

// Units lists the registry in declaration order.
func (c *Catalog) Units() []Unit {
	out := make([]Unit, 0, len(c.order))
	for _, s := range c.order {
		out = append(out, c.units[s])
	}
	return out
}
