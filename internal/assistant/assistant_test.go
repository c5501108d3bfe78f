package assistant

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mise/internal/pantry"
	"mise/internal/recipe"
)

// mockGenerator is a mock implementation of the Generator interface.
type mockGenerator struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	prompts      []string
}

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", errors.New("GenerateFunc not implemented")
}

func reply(text string) *mockGenerator {
	return &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		return text, nil
	}}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"plain object", `{"a":1}`, `{"a":1}`, true},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`, true},
		{"chatter around", "Sure! Here it is: {\"a\":{\"b\":2}} Enjoy.", `{"a":{"b":2}}`, true},
		{"array", "```\n[{\"step\":\"mix\",\"time\":2}]\n```", `[{"step":"mix","time":2}]`, true},
		{"no json", "I cannot help with that.", "", false},
		{"broken", `{"a":`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractJSON(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGenerateRecipe(t *testing.T) {
	gen := reply("```json\n" + `{
		"recipeName": "Brigadeiro",
		"description": "Chocolate fudge balls",
		"ingredients": [
			{"name": "Condensed milk", "packagePrice": 7.5, "packageQuantity": 395, "packageUnit": "G", "usedQuantity": 395, "usedUnit": "g"},
			{"name": "Cocoa", "packagePrice": 12, "packageQuantity": 200, "packageUnit": "g", "usedQuantity": 30, "usedUnit": "g"}
		],
		"prepTimeMinutes": 10,
		"cookingTimeMinutes": 15,
		"instructions": [{"step": "Cook everything", "time": 15}],
		"difficulty": "Easy",
		"category": "Dessert",
		"nutrition": {"totalCalories": 1400, "caloriesPerServing": 70, "protein": 30, "carbs": 240, "fats": 40, "tags": ["vegetarian"]}
	}` + "\n```")

	svc := NewService(gen)
	r, err := svc.GenerateRecipe(context.Background(), "brigadeiro for 20")
	require.NoError(t, err)
	require.NotNil(t, r)

	assert.Equal(t, "Brigadeiro", r.Name)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 1.0, r.Yields)
	assert.Equal(t, 100.0, r.ProfitMargin)
	assert.Equal(t, recipe.DifficultyEasy, r.Difficulty)
	assert.Equal(t, recipe.CategoryDessert, r.Category)
	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, "g", r.Ingredients[0].PackageUnit)
	assert.NotEqual(t, r.Ingredients[0].ID, r.Ingredients[1].ID)
	require.Len(t, r.Instructions, 1)
	assert.Equal(t, 15.0, r.Instructions[0].TimeInMinutes)
	require.NotNil(t, r.Nutrition)
	assert.Equal(t, 70.0, r.Nutrition.CaloriesPerServing)

	assert.Equal(t, DraftOverheads(10, 15), r.Overheads)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "brigadeiro for 20")
}

func TestGenerateRecipeUnknownEnums(t *testing.T) {
	svc := NewService(reply(`{"recipeName": "Soup", "difficulty": "very hard", "category": "starter"}`))
	r, err := svc.GenerateRecipe(context.Background(), "soup")
	require.NoError(t, err)
	assert.Equal(t, recipe.DifficultyCustom, r.Difficulty)
	assert.Equal(t, recipe.CategoryOther, r.Category)
}

func TestGenerateRecipeErrors(t *testing.T) {
	ctx := context.Background()

	_, err := NewService(reply("{}")).GenerateRecipe(ctx, "   ")
	assert.Error(t, err)

	_, err = NewService(reply("sorry, no idea")).GenerateRecipe(ctx, "cake")
	assert.ErrorIs(t, err, ErrNoResult)

	_, err = NewService(reply("{}")).GenerateRecipe(ctx, "cake")
	assert.ErrorIs(t, err, ErrNoResult)

	boom := errors.New("quota exceeded")
	failing := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		return "", boom
	}}
	_, err = NewService(failing).GenerateRecipe(ctx, "cake")
	assert.ErrorIs(t, err, boom)
}

func TestGenerateRecipeDeadline(t *testing.T) {
	gen := &mockGenerator{GenerateFunc: func(ctx context.Context, prompt string) (string, error) {
		return "", context.DeadlineExceeded
	}}
	_, err := NewService(gen).GenerateRecipe(context.Background(), "cake")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestEstimateNutrition(t *testing.T) {
	gen := reply(`Here you go: {"totalCalories": 500, "caloriesPerServing": 250, "protein": 10, "carbs": 60, "fats": 20, "tags": ["sweet"]}`)
	svc := NewService(gen)

	n, err := svc.EstimateNutrition(context.Background(), "", recipe.NewDraft().Ingredients)
	require.NoError(t, err)
	assert.Equal(t, 500.0, n.TotalCalories)
	assert.Equal(t, []string{"sweet"}, n.Tags)
	assert.Contains(t, gen.prompts[0], "395 ml of")

	_, err = svc.EstimateNutrition(context.Background(), "x", nil)
	assert.Error(t, err)
}

func TestGenerateInstructions(t *testing.T) {
	svc := NewService(reply(`[{"step": "Whisk", "time": 3}, {"step": "Bake", "time": 40}]`))
	steps, err := svc.GenerateInstructions(context.Background(), "Pudim", []string{"milk", "eggs"})
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "Bake", steps[1].Text)
	assert.Equal(t, 40.0, steps[1].TimeInMinutes)

	_, err = svc.GenerateInstructions(context.Background(), "", nil)
	assert.Error(t, err)

	_, err = NewService(reply("[]")).GenerateInstructions(context.Background(), "Pudim", nil)
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestSuggestFromPantry(t *testing.T) {
	gen := reply(`{"recipes": [{"recipeName": "Omelette", "ingredients": [{"name": "Eggs", "packagePrice": 18, "packageQuantity": 1, "packageUnit": "dz", "usedQuantity": 3, "usedUnit": "un"}], "prepTimeMinutes": 5, "cookingTimeMinutes": 5}, {"recipeName": "Toast"}]}`)
	svc := NewService(gen)

	items := []pantry.Item{{Name: "Eggs", Quantity: 6, Unit: "un"}, {Name: "Bread", Quantity: 1, Unit: "un"}}
	recipes, err := svc.SuggestFromPantry(context.Background(), items)
	require.NoError(t, err)
	require.Len(t, recipes, 2)
	assert.Equal(t, "Omelette", recipes[0].Name)
	assert.Equal(t, "dz", recipes[0].Ingredients[0].PackageUnit)
	assert.Contains(t, gen.prompts[0], "Eggs, Bread")

	_, err = svc.SuggestFromPantry(context.Background(), nil)
	assert.Error(t, err)
}
