package recipe

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a recipe or ingredient id is unknown.
var ErrNotFound = errors.New("recipe not found")

// Difficulty is the gamification difficulty of a recipe.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyCustom Difficulty = "custom"
)

// Category groups recipes in the recipe book.
type Category string

const (
	CategoryMain    Category = "main"
	CategoryDessert Category = "dessert"
	CategorySnack   Category = "snack"
	CategoryDrink   Category = "drink"
	CategoryOther   Category = "other"
)

// Ingredient represents "I bought packageQuantity packageUnit for packagePrice;
// I use usedQuantity usedUnit of it".
type Ingredient struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	PackagePrice    float64 `json:"packagePrice"`
	PackageQuantity float64 `json:"packageQuantity"`
	PackageUnit     string  `json:"packageUnit"`
	UsedQuantity    float64 `json:"usedQuantity"`
	UsedUnit        string  `json:"usedUnit"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Ingredient.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	type Alias Ingredient
	aux := (*Alias)(i)
	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}
	i.PackageUnit = NormalizeUnit(i.PackageUnit)
	i.UsedUnit = NormalizeUnit(i.UsedUnit)
	return nil
}

// Overheads are the fixed and operational costs of one batch.
type Overheads struct {
	PreparationTimeMinutes float64 `json:"preparationTimeMinutes"`
	CookingTimeMinutes     float64 `json:"cookingTimeMinutes"`
	GasCylinderPrice       float64 `json:"gasCylinderPrice"`
	GasCylinderWeight      float64 `json:"gasCylinderWeight"`    // kg
	GasBurnerConsumption   float64 `json:"gasBurnerConsumption"` // kg/hour
	LaborHourlyRate        float64 `json:"laborHourlyRate"`
	ElectricityEstimate    float64 `json:"electricityEstimate"`
	WaterEstimate          float64 `json:"waterEstimate"`
	OtherCosts             float64 `json:"otherCosts"`
}

// InstructionStep is one step of the method, optionally timed.
type InstructionStep struct {
	Text          string  `json:"text"`
	TimeInMinutes float64 `json:"timeInMinutes,omitempty"`
}

// Nutrition holds the estimated nutrition facts of a whole recipe.
type Nutrition struct {
	TotalCalories      float64  `json:"totalCalories"`
	CaloriesPerServing float64  `json:"caloriesPerServing"`
	Protein            float64  `json:"protein"`
	Carbs              float64  `json:"carbs"`
	Fats               float64  `json:"fats"`
	Tags               []string `json:"tags,omitempty"`
}

// Recipe is the aggregate the costing engine reads.
type Recipe struct {
	ID           string            `json:"id,omitempty"`
	Name         string            `json:"name"`
	Yields       float64           `json:"yields"`
	PortionSize  float64           `json:"portionSize"` // grams
	ProfitMargin float64           `json:"profitMargin"`
	Ingredients  []Ingredient      `json:"ingredients"`
	Overheads    Overheads         `json:"overheads"`
	Instructions []InstructionStep `json:"instructions"`
	Difficulty   Difficulty        `json:"difficulty,omitempty"`
	Category     Category          `json:"category,omitempty"`
	Description  string            `json:"description,omitempty"`
	Nutrition    *Nutrition        `json:"nutrition,omitempty"`
	Image        string            `json:"image,omitempty"`
}

// UnmarshalJSON implements the json.Unmarshaler interface for Recipe.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	type Alias Recipe // Create an alias to avoid infinite recursion
	aux := &struct {
		Difficulty string `json:"difficulty"`
		Category   string `json:"category"`
		*Alias
	}{
		Alias: (*Alias)(r),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Difficulty = Difficulty(strings.ToLower(strings.TrimSpace(aux.Difficulty)))
	r.Category = Category(strings.ToLower(strings.TrimSpace(aux.Category)))

	return nil
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	out := r
	if r.Ingredients != nil {
		out.Ingredients = append(make([]Ingredient, 0, len(r.Ingredients)), r.Ingredients...)
	}
	if r.Instructions != nil {
		out.Instructions = append(make([]InstructionStep, 0, len(r.Instructions)), r.Instructions...)
	}
	if r.Nutrition != nil {
		n := *r.Nutrition
		n.Tags = append([]string(nil), r.Nutrition.Tags...)
		out.Nutrition = &n
	}
	return out
}

// IngredientIndex returns the index of the ingredient with the given id, or -1.
func (r *Recipe) IngredientIndex(id string) int {
	for i := range r.Ingredients {
		if r.Ingredients[i].ID == id {
			return i
		}
	}
	return -1
}

// NormalizeUnit lower-cases and trims a unit symbol.
func NormalizeUnit(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}

// NewID returns a fresh identifier for recipes and ingredients.
func NewID() string {
	return uuid.NewString()
}

// DefaultOverheads returns the starting overheads of a new recipe.
func DefaultOverheads() Overheads {
	return Overheads{
		PreparationTimeMinutes: 30,
		CookingTimeMinutes:     45,
		GasCylinderPrice:       120,
		GasCylinderWeight:      13,
		GasBurnerConsumption:   0.225,
		LaborHourlyRate:        10,
		ElectricityEstimate:    0.50,
		WaterEstimate:          0.20,
		OtherCosts:             1.00,
	}
}

// NewIngredient returns a blank ingredient row bought by the kilo and used by the gram.
func NewIngredient() Ingredient {
	return Ingredient{
		ID:          NewID(),
		PackageUnit: "kg",
		UsedUnit:    "g",
	}
}

// NewDraft returns the starter recipe shown to a new user.
func NewDraft() Recipe {
	return Recipe{
		Yields:       1,
		PortionSize:  0,
		ProfitMargin: 100,
		Ingredients: []Ingredient{
			{ID: "1", Name: "Condensed milk", PackagePrice: 6.50, PackageQuantity: 1, PackageUnit: "lt", UsedQuantity: 1, UsedUnit: "lt"},
			{ID: "2", Name: "Whole milk", PackagePrice: 4.80, PackageQuantity: 1, PackageUnit: "l", UsedQuantity: 395, UsedUnit: "ml"},
			{ID: "3", Name: "Eggs", PackagePrice: 18.00, PackageQuantity: 1, PackageUnit: "dz", UsedQuantity: 3, UsedUnit: "un"},
		},
		Overheads:    DefaultOverheads(),
		Instructions: []InstructionStep{},
		Difficulty:   DifficultyCustom,
		Category:     CategoryOther,
	}
}
