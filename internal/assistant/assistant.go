// Package assistant builds prompts for the text-generation model and turns
// its answers into recipe data. The model itself is a black box behind
// Generator; whatever it returns is costed like any hand-entered recipe.
package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"mise/internal/pantry"
	"mise/internal/recipe"
)

// ErrNoResult is returned when the model gives no usable structured answer.
var ErrNoResult = errors.New("assistant returned no usable result")

// Generator sends a prompt to a text model and returns its raw answer.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service wraps a Generator with the prompts the application needs.
type Service struct {
	gen Generator
}

// NewService creates a Service over gen.
func NewService(gen Generator) *Service {
	return &Service{gen: gen}
}

// DraftOverheads are applied to generated recipes, which carry only times.
func DraftOverheads(prepMinutes, cookMinutes float64) recipe.Overheads {
	return recipe.Overheads{
		PreparationTimeMinutes: prepMinutes,
		CookingTimeMinutes:     cookMinutes,
		GasCylinderPrice:       120,
		GasCylinderWeight:      13,
		GasBurnerConsumption:   0.225,
		LaborHourlyRate:        20,
		ElectricityEstimate:    2,
		WaterEstimate:          1,
		OtherCosts:             2,
	}
}

type draftIngredient struct {
	Name            string  `json:"name"`
	PackagePrice    float64 `json:"packagePrice"`
	PackageQuantity float64 `json:"packageQuantity"`
	PackageUnit     string  `json:"packageUnit"`
	UsedQuantity    float64 `json:"usedQuantity"`
	UsedUnit        string  `json:"usedUnit"`
}

type draftStep struct {
	Step string  `json:"step"`
	Time float64 `json:"time"`
}

type draft struct {
	RecipeName         string            `json:"recipeName"`
	Description        string            `json:"description"`
	Ingredients        []draftIngredient `json:"ingredients"`
	PrepTimeMinutes    float64           `json:"prepTimeMinutes"`
	CookingTimeMinutes float64           `json:"cookingTimeMinutes"`
	Instructions       []draftStep       `json:"instructions"`
	Difficulty         string            `json:"difficulty"`
	Category           string            `json:"category"`
	Nutrition          *recipe.Nutrition `json:"nutrition"`
}

const recipeShape = `{ "recipeName": "string", "description": "string", "ingredients": [{ "name": "string", "packagePrice": 0, "packageQuantity": 0, "packageUnit": "g", "usedQuantity": 0, "usedUnit": "g" }], "prepTimeMinutes": 0, "cookingTimeMinutes": 0, "instructions": [{ "step": "string", "time": 0 }], "difficulty": "easy|medium|hard", "category": "main|dessert|snack|drink|other", "nutrition": { "totalCalories": 0, "caloriesPerServing": 0, "protein": 0, "carbs": 0, "fats": 0, "tags": [] } }`

const unitHint = `Units must be one of: kg, g, mg, l, ml, un, cx, lt, pct, dz.`

// GenerateRecipe writes a costed technical sheet for a free-text request.
func (s *Service) GenerateRecipe(ctx context.Context, request string) (*recipe.Recipe, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return nil, fmt.Errorf("empty recipe request")
	}
	prompt := fmt.Sprintf("Write a culinary technical sheet as JSON for: %q. %s Reply with JSON only, in this format: %s", request, unitHint, recipeShape)

	var d draft
	if err := s.generateJSON(ctx, prompt, &d); err != nil {
		return nil, err
	}
	if d.RecipeName == "" && len(d.Ingredients) == 0 {
		return nil, ErrNoResult
	}
	r := d.toRecipe()
	return &r, nil
}

// EstimateNutrition asks for the nutrition facts of the given ingredients.
func (s *Service) EstimateNutrition(ctx context.Context, name string, ingredients []recipe.Ingredient) (*recipe.Nutrition, error) {
	if len(ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients to analyze")
	}
	if name == "" {
		name = "Recipe"
	}
	parts := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		parts = append(parts, fmt.Sprintf("%g %s of %s", ing.UsedQuantity, ing.UsedUnit, ing.Name))
	}
	prompt := fmt.Sprintf(`Estimate the nutrition of %q made with: %s. Reply with JSON only: { "totalCalories": 0, "caloriesPerServing": 0, "protein": 0, "carbs": 0, "fats": 0, "tags": [] }`, name, strings.Join(parts, ", "))

	var n recipe.Nutrition
	if err := s.generateJSON(ctx, prompt, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// GenerateInstructions writes timed method steps for a recipe.
func (s *Service) GenerateInstructions(ctx context.Context, name string, ingredientNames []string) ([]recipe.InstructionStep, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("recipe name is required to generate instructions")
	}
	prompt := fmt.Sprintf(`Write the method for %q using: %s. Reply with JSON only: [ { "step": "string", "time": 0 } ]`, name, strings.Join(ingredientNames, ", "))

	var steps []draftStep
	if err := s.generateJSON(ctx, prompt, &steps); err != nil {
		return nil, err
	}
	if len(steps) == 0 {
		return nil, ErrNoResult
	}
	return toSteps(steps), nil
}

// SuggestFromPantry proposes up to three recipes using what is in the pantry.
func (s *Service) SuggestFromPantry(ctx context.Context, items []pantry.Item) ([]recipe.Recipe, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("pantry is empty")
	}
	p := pantry.Pantry{Items: items}
	prompt := fmt.Sprintf(`Suggest 3 recipes using: %s. %s Reply with JSON only: { "recipes": [%s] }`, strings.Join(p.Names(), ", "), unitHint, recipeShape)

	var out struct {
		Recipes []draft `json:"recipes"`
	}
	if err := s.generateJSON(ctx, prompt, &out); err != nil {
		return nil, err
	}
	recipes := make([]recipe.Recipe, 0, len(out.Recipes))
	for _, d := range out.Recipes {
		recipes = append(recipes, d.toRecipe())
	}
	return recipes, nil
}

func (s *Service) generateJSON(ctx context.Context, prompt string, v any) error {
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to generate content: %w", err)
	}
	raw, ok := ExtractJSON(text)
	if !ok {
		return ErrNoResult
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("%w: %v", ErrNoResult, err)
	}
	return nil
}

// ExtractJSON strips markdown fences and returns the outermost JSON object
// or array in text.
func ExtractJSON(text string) (string, bool) {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")
	text = strings.TrimSpace(text)

	start := strings.IndexAny(text, "{[")
	if start == -1 {
		return "", false
	}
	closer := "}"
	if text[start] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(text, closer)
	if end < start {
		return "", false
	}
	raw := text[start : end+1]
	if !json.Valid([]byte(raw)) {
		return "", false
	}
	return raw, true
}

func (d draft) toRecipe() recipe.Recipe {
	ingredients := make([]recipe.Ingredient, 0, len(d.Ingredients))
	for _, di := range d.Ingredients {
		ingredients = append(ingredients, recipe.Ingredient{
			ID:              recipe.NewID(),
			Name:            di.Name,
			PackagePrice:    di.PackagePrice,
			PackageQuantity: di.PackageQuantity,
			PackageUnit:     recipe.NormalizeUnit(di.PackageUnit),
			UsedQuantity:    di.UsedQuantity,
			UsedUnit:        recipe.NormalizeUnit(di.UsedUnit),
		})
	}

	return recipe.Recipe{
		ID:           recipe.NewID(),
		Name:         d.RecipeName,
		Description:  d.Description,
		Yields:       1,
		ProfitMargin: 100,
		Ingredients:  ingredients,
		Overheads:    DraftOverheads(d.PrepTimeMinutes, d.CookingTimeMinutes),
		Instructions: toSteps(d.Instructions),
		Difficulty:   parseDifficulty(d.Difficulty),
		Category:     parseCategory(d.Category),
		Nutrition:    d.Nutrition,
	}
}

func toSteps(in []draftStep) []recipe.InstructionStep {
	steps := make([]recipe.InstructionStep, 0, len(in))
	for _, st := range in {
		steps = append(steps, recipe.InstructionStep{Text: st.Step, TimeInMinutes: st.Time})
	}
	return steps
}

func parseDifficulty(s string) recipe.Difficulty {
	switch d := recipe.Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case recipe.DifficultyEasy, recipe.DifficultyMedium, recipe.DifficultyHard:
		return d
	}
	return recipe.DifficultyCustom
}

func parseCategory(s string) recipe.Category {
	switch c := recipe.Category(strings.ToLower(strings.TrimSpace(s))); c {
	case recipe.CategoryMain, recipe.CategoryDessert, recipe.CategorySnack, recipe.CategoryDrink:
		return c
	}
	return recipe.CategoryOther
}
