package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mise/internal/api"
	"mise/internal/assistant"
	"mise/internal/costing"
	"mise/internal/notify"
	"mise/internal/pantry"
	"mise/internal/profile"
	"mise/internal/recipe"
	"mise/internal/snapshot"
	"mise/internal/workbench"
)

// mockAssistant is a mock of the recipe assistant.
type mockAssistant struct {
	returnError     error
	recipe          *recipe.Recipe
	nutrition       *recipe.Nutrition
	steps           []recipe.InstructionStep
	suggestions     []recipe.Recipe
	receivedRequest string
}

// GenerateRecipe mocks the GenerateRecipe method.
func (m *mockAssistant) GenerateRecipe(ctx context.Context, request string) (*recipe.Recipe, error) {
	m.receivedRequest = request
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.recipe, nil
}

// EstimateNutrition mocks the EstimateNutrition method.
func (m *mockAssistant) EstimateNutrition(ctx context.Context, name string, ingredients []recipe.Ingredient) (*recipe.Nutrition, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.nutrition, nil
}

// GenerateInstructions mocks the GenerateInstructions method.
func (m *mockAssistant) GenerateInstructions(ctx context.Context, name string, ingredientNames []string) ([]recipe.InstructionStep, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.steps, nil
}

// SuggestFromPantry mocks the SuggestFromPantry method.
func (m *mockAssistant) SuggestFromPantry(ctx context.Context, items []pantry.Item) ([]recipe.Recipe, error) {
	if m.returnError != nil {
		return nil, m.returnError
	}
	return m.suggestions, nil
}

// mockSnapshotStore is a mock of the SnapshotStore.
type mockSnapshotStore struct {
	mu        sync.Mutex
	saved     *snapshot.Snapshot
	saves     int
	saveError error
}

// Load mocks the Load method.
func (m *mockSnapshotStore) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saved, nil
}

// Save mocks the Save method.
func (m *mockSnapshotStore) Save(ctx context.Context, s *snapshot.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveError != nil {
		return m.saveError
	}
	m.saved = s
	return nil
}

// gatedStore is a SnapshotStore whose first Save waits until release is closed.
type gatedStore struct {
	mu      sync.Mutex
	saves   []*snapshot.Snapshot
	gated   bool
	entered chan struct{}
	release chan struct{}
}

func newGatedStore() *gatedStore {
	return &gatedStore{entered: make(chan struct{}), release: make(chan struct{})}
}

// Load mocks the Load method.
func (g *gatedStore) Load(ctx context.Context) (*snapshot.Snapshot, error) {
	return nil, nil
}

// Save mocks the Save method.
func (g *gatedStore) Save(ctx context.Context, s *snapshot.Snapshot) error {
	g.mu.Lock()
	first := !g.gated
	g.gated = true
	g.mu.Unlock()

	if first {
		close(g.entered)
		<-g.release
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.saves = append(g.saves, s)
	return nil
}

var lunchTime = time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

// newTestRouter builds a router over a fresh handler with a fixed clock.
func newTestRouter(ai api.Assistant, store *mockSnapshotStore) (*gin.Engine, *api.Handler) {
	gin.SetMode(gin.TestMode)
	var snapshots api.SnapshotStore
	if store != nil {
		snapshots = store
	}
	handler := api.NewHandler(nil, ai, snapshots, nil)
	handler.Now = func() time.Time { return lunchTime }

	r := gin.New()
	handler.Register(r)
	return r, handler
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) workbench.State {
	t.Helper()
	var s workbench.State
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &s))
	return s
}

func TestGetUnits(t *testing.T) {
	r, _ := newTestRouter(nil, nil)

	rr := doJSON(r, http.MethodGet, "/units", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var units []costing.Unit
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &units))
	assert.Len(t, units, 10)
	assert.Equal(t, "kg", units[0].Symbol)
}

func TestPostBreakdown(t *testing.T) {
	r, _ := newTestRouter(nil, nil)

	rr := doJSON(r, http.MethodPost, "/breakdown", recipe.NewDraft())
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Breakdown costing.Breakdown        `json:"breakdown"`
		Lines     []costing.IngredientLine `json:"lines"`
		Summary   struct {
			TotalCost string `json:"totalCost"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 12.896, resp.Breakdown.TotalIngredients, 1e-9)
	assert.Equal(t, 395.0, resp.Breakdown.TotalMass)
	assert.Len(t, resp.Lines, 3)
	assert.Equal(t, "28.65", resp.Summary.TotalCost)

	rr = doJSON(r, http.MethodPost, "/breakdown", "not a recipe")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestYieldAndPortionRoutes(t *testing.T) {
	store := &mockSnapshotStore{}
	r, _ := newTestRouter(nil, store)

	rr := doJSON(r, http.MethodGet, "/workbench", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 395.0, decodeState(t, rr).Recipe.PortionSize)

	rr = doJSON(r, http.MethodPut, "/workbench/yields", map[string]float64{"value": 4})
	assert.Equal(t, http.StatusOK, rr.Code)
	s := decodeState(t, rr)
	assert.Equal(t, 4.0, s.Recipe.Yields)
	assert.Equal(t, 99.0, s.Recipe.PortionSize)
	assert.Equal(t, 1, store.saves)

	rr = doJSON(r, http.MethodPut, "/workbench/portion-size", map[string]float64{"value": 50})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 7.9, decodeState(t, rr).Recipe.Yields, 1e-9)

	// A rejected edit answers 400 with the unchanged state and saves nothing
	rr = doJSON(r, http.MethodPut, "/workbench/yields", map[string]float64{"value": 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var rejected struct {
		Error     string          `json:"error"`
		Workbench workbench.State `json:"workbench"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rejected))
	assert.Equal(t, costing.ErrNonPositive.Error(), rejected.Error)
	assert.InDelta(t, 7.9, rejected.Workbench.Recipe.Yields, 1e-9)
	assert.Equal(t, 50.0, rejected.Workbench.Recipe.PortionSize)
	assert.Equal(t, 2, store.saves)

	rr = doJSON(r, http.MethodPut, "/workbench/portion-size", map[string]float64{"value": -1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(r, http.MethodPut, "/workbench/yields", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestIngredientRoutes(t *testing.T) {
	r, _ := newTestRouter(nil, &mockSnapshotStore{})

	req := httptest.NewRequest(http.MethodPost, "/workbench/ingredients", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)

	var added struct {
		Ingredient recipe.Ingredient `json:"ingredient"`
		Workbench  workbench.State   `json:"workbench"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.Len(t, added.Workbench.Recipe.Ingredients, 4)
	id := added.Ingredient.ID

	rr = doJSON(r, http.MethodPut, "/workbench/ingredients/"+id, recipe.Ingredient{
		Name: "Sugar", PackagePrice: 5, PackageQuantity: 1, PackageUnit: "KG", UsedQuantity: 105, UsedUnit: "g",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	s := decodeState(t, rr)
	assert.Equal(t, "kg", s.Recipe.Ingredients[3].PackageUnit)
	assert.Equal(t, 500.0, s.Breakdown.TotalMass)
	assert.Equal(t, 500.0, s.Recipe.PortionSize)

	rr = doJSON(r, http.MethodPut, "/workbench/ingredients/unknown", recipe.Ingredient{Name: "x"})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(r, http.MethodDelete, "/workbench/ingredients/"+id, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeState(t, rr).Recipe.Ingredients, 3)

	rr = doJSON(r, http.MethodDelete, "/workbench/ingredients/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestPatchAndOverheads(t *testing.T) {
	r, _ := newTestRouter(nil, nil)

	rr := doJSON(r, http.MethodPatch, "/workbench", map[string]any{"name": "Pudim", "profitMargin": 50})
	assert.Equal(t, http.StatusOK, rr.Code)
	s := decodeState(t, rr)
	assert.Equal(t, "Pudim", s.Recipe.Name)
	assert.InDelta(t, s.Breakdown.TotalCost*0.5, s.Breakdown.TotalProfit, 1e-9)

	oh := recipe.DefaultOverheads()
	oh.PreparationTimeMinutes = 0
	oh.CookingTimeMinutes = 60
	rr = doJSON(r, http.MethodPut, "/workbench/overheads", oh)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.InDelta(t, 10.0, decodeState(t, rr).Breakdown.TotalLabor, 1e-9)
}

func TestRecipeBookRoutes(t *testing.T) {
	store := &mockSnapshotStore{}
	r, handler := newTestRouter(nil, store)

	// The starter recipe has no name yet
	rr := doJSON(r, http.MethodPost, "/recipes", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	doJSON(r, http.MethodPatch, "/workbench", map[string]any{"name": "Pudim"})
	rr = doJSON(r, http.MethodPost, "/recipes", nil)
	assert.Equal(t, http.StatusCreated, rr.Code)
	var saved recipe.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, saved.ID, handler.Workbench.Recipe().ID)

	// Saving again updates the same entry
	rr = doJSON(r, http.MethodPost, "/recipes", nil)
	assert.Equal(t, http.StatusCreated, rr.Code)

	dessert := recipe.NewDraft()
	dessert.Name = "Mousse"
	dessert.Category = recipe.CategoryDessert
	rr = doJSON(r, http.MethodPost, "/recipes", dessert)
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(r, http.MethodGet, "/recipes", nil)
	var all []recipe.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rr = doJSON(r, http.MethodGet, "/recipes?category=dessert", nil)
	var desserts []recipe.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &desserts))
	require.Len(t, desserts, 1)
	assert.Equal(t, "Mousse", desserts[0].Name)

	assert.Len(t, store.saved.Recipes, 2)

	rr = doJSON(r, http.MethodDelete, "/recipes/"+saved.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = doJSON(r, http.MethodDelete, "/recipes/"+saved.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLoadWorkbench(t *testing.T) {
	r, handler := newTestRouter(nil, nil)

	preset := recipe.NewDraft()
	preset.ID = "not-in-book"
	preset.Name = "Preset"
	preset.Yields = 2
	rr := doJSON(r, http.MethodPut, "/workbench", preset)
	assert.Equal(t, http.StatusOK, rr.Code)
	s := decodeState(t, rr)
	assert.Empty(t, s.Recipe.ID)
	assert.Equal(t, 198.0, s.Recipe.PortionSize)

	book := recipe.NewDraft()
	book.Name = "Saved"
	require.NoError(t, handler.Book.SaveRecipe(context.Background(), &book))
	rr = doJSON(r, http.MethodPut, "/workbench", book)
	assert.Equal(t, book.ID, decodeState(t, rr).Recipe.ID)
}

func TestPresetRoutes(t *testing.T) {
	r, _ := newTestRouter(nil, &mockSnapshotStore{})

	rr := doJSON(r, http.MethodGet, "/recipes?source=preset", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var presets []recipe.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &presets))
	assert.Len(t, presets, 3)

	rr = doJSON(r, http.MethodGet, "/recipes?source=preset&category=dessert", nil)
	var desserts []recipe.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &desserts))
	require.Len(t, desserts, 1)
	assert.Equal(t, "Brigadeiro Gourmet", desserts[0].Name)

	// Saved recipes stay separate from the built-in ones
	rr = doJSON(r, http.MethodGet, "/recipes", nil)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))

	rr = doJSON(r, http.MethodGet, "/recipes?source=somewhere", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(r, http.MethodPut, "/workbench", desserts[0])
	assert.Equal(t, http.StatusOK, rr.Code)
	s := decodeState(t, rr)
	assert.Empty(t, s.Recipe.ID)
	assert.Equal(t, "Brigadeiro Gourmet", s.Recipe.Name)
	assert.Equal(t, 775.0, s.Breakdown.TotalMass)
	assert.Equal(t, 25.0, s.Recipe.Yields)
	assert.Equal(t, 31.0, s.Recipe.PortionSize)
	assert.InDelta(t, 17.7, s.Breakdown.TotalIngredients, 1e-9)
}

func TestConcurrentSavesKeepNewestSnapshot(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newGatedStore()
	handler := api.NewHandler(nil, nil, store, nil)
	handler.Now = func() time.Time { return lunchTime }
	r := gin.New()
	handler.Register(r)

	done := make(chan int, 2)
	go func() {
		done <- doJSON(r, http.MethodPost, "/pantry", pantry.NewItem{Name: "Flour", Price: 6, Quantity: 5, Unit: "kg"}).Code
	}()
	<-store.entered

	go func() {
		done <- doJSON(r, http.MethodPost, "/pantry", pantry.NewItem{Name: "Sugar", Price: 5, Quantity: 5, Unit: "kg"}).Code
	}()
	// Let the second request reach its save while the first one is still blocked
	time.Sleep(50 * time.Millisecond)
	close(store.release)

	assert.Equal(t, http.StatusCreated, <-done)
	assert.Equal(t, http.StatusCreated, <-done)

	store.mu.Lock()
	defer store.mu.Unlock()
	require.Len(t, store.saves, 2)
	assert.Len(t, store.saves[0].Pantry, 1)
	assert.Len(t, store.saves[1].Pantry, 2, "last save holds the newest state")
}

func TestChunkedBodiesAreRead(t *testing.T) {
	r, handler := newTestRouter(nil, &mockSnapshotStore{})

	chunked := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.ContentLength = -1
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		return rr
	}

	rr := chunked(http.MethodPost, "/workbench/ingredients",
		`{"name":"Flour","packagePrice":5,"packageQuantity":1,"packageUnit":"kg","usedQuantity":200,"usedUnit":"g"}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	var added struct {
		Ingredient recipe.Ingredient `json:"ingredient"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &added))
	assert.Equal(t, "Flour", added.Ingredient.Name)
	assert.Equal(t, 200.0, added.Ingredient.UsedQuantity)

	rr = chunked(http.MethodPost, "/recipes", `{"name":"Mousse","category":"dessert","yields":4}`)
	assert.Equal(t, http.StatusCreated, rr.Code)
	var saved recipe.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &saved))
	assert.Equal(t, "Mousse", saved.Name)
	assert.Empty(t, handler.Workbench.Recipe().ID, "workbench untouched")

	rr = chunked(http.MethodPost, "/recipes", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPantryAndNotifications(t *testing.T) {
	store := &mockSnapshotStore{}
	r, _ := newTestRouter(nil, store)

	rr := doJSON(r, http.MethodPost, "/pantry", pantry.NewItem{Name: "Eggs", Price: 9, Quantity: 1, Unit: "UN"})
	assert.Equal(t, http.StatusCreated, rr.Code)
	var item pantry.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &item))
	assert.Equal(t, "un", item.Unit)
	assert.True(t, item.PurchaseDate.Equal(lunchTime))

	rr = doJSON(r, http.MethodPost, "/pantry", pantry.NewItem{Name: "Flour", Price: 6, Quantity: 5, Unit: "kg"})
	assert.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(r, http.MethodPost, "/pantry", pantry.NewItem{Name: "", Quantity: 1})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(r, http.MethodGet, "/pantry", nil)
	var view struct {
		Items      []pantry.Item `json:"items"`
		TotalValue float64       `json:"totalValue"`
		LowStock   []pantry.Item `json:"lowStock"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
	assert.Len(t, view.Items, 2)
	assert.Equal(t, "Flour", view.Items[0].Name, "newest first")
	assert.Equal(t, 15.0, view.TotalValue)
	require.Len(t, view.LowStock, 1)

	rr = doJSON(r, http.MethodGet, "/notifications", nil)
	var due []notify.Notification
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &due))
	require.Len(t, due, 2)
	assert.Equal(t, notify.TypeLowStock, due[0].Type)
	assert.Equal(t, notify.TypeMealSuggestion, due[1].Type)
	assert.Contains(t, store.saved.Notified, notify.KeyLunch)

	rr = doJSON(r, http.MethodGet, "/notifications", nil)
	assert.JSONEq(t, "[]", rr.Body.String())

	rr = doJSON(r, http.MethodDelete, "/pantry/"+item.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	rr = doJSON(r, http.MethodDelete, "/pantry/"+item.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestProfileCompleteAndShare(t *testing.T) {
	r, _ := newTestRouter(nil, &mockSnapshotStore{})

	rr := doJSON(r, http.MethodPut, "/profile/name", map[string]string{"name": "Ana"})
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(r, http.MethodPost, "/workbench/complete", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var done struct {
		Session profile.Session `json:"session"`
		LevelUp bool            `json:"levelUp"`
		Profile profile.Profile `json:"profile"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &done))
	assert.Equal(t, 130, done.Session.XPEarned)
	assert.False(t, done.LevelUp)
	assert.Equal(t, 130, done.Profile.CurrentXP)
	assert.Equal(t, "Untitled recipe", done.Session.RecipeName)

	rr = doJSON(r, http.MethodGet, "/profile", nil)
	var p profile.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, "Ana", p.Name)
	assert.Len(t, p.History, 1)

	rr = doJSON(r, http.MethodGet, "/workbench/share", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Chef: Ana")
	assert.Contains(t, rr.Body.String(), "Total cost: 28.65")
}

func TestAssistantRoutes(t *testing.T) {
	generated := &recipe.Recipe{
		Name:     "Brigadeiro",
		Category: recipe.CategoryDessert,
		Ingredients: []recipe.Ingredient{
			{Name: "Condensed milk", PackagePrice: 7.5, PackageQuantity: 395, PackageUnit: "g", UsedQuantity: 395, UsedUnit: "g"},
		},
		Overheads: assistant.DraftOverheads(10, 15),
	}
	ai := &mockAssistant{
		recipe:      generated,
		nutrition:   &recipe.Nutrition{TotalCalories: 1300},
		steps:       []recipe.InstructionStep{{Text: "Stir", TimeInMinutes: 15}},
		suggestions: []recipe.Recipe{*generated},
	}
	r, _ := newTestRouter(ai, &mockSnapshotStore{})

	rr := doJSON(r, http.MethodPost, "/assistant/recipe", map[string]string{"request": "brigadeiro"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "brigadeiro", ai.receivedRequest)
	s := decodeState(t, rr)
	assert.Equal(t, "Brigadeiro", s.Recipe.Name)
	assert.Equal(t, recipe.DifficultyCustom, s.Recipe.Difficulty)
	assert.InDelta(t, 7.5, s.Breakdown.TotalIngredients, 1e-9)
	assert.Equal(t, 395.0, s.Recipe.PortionSize)

	rr = doJSON(r, http.MethodPost, "/assistant/nutrition", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1300.0, decodeState(t, rr).Recipe.Nutrition.TotalCalories)

	rr = doJSON(r, http.MethodPost, "/assistant/instructions", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeState(t, rr).Recipe.Instructions, 1)

	// The pantry is empty
	rr = doJSON(r, http.MethodPost, "/assistant/pantry-suggestions", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	doJSON(r, http.MethodPost, "/pantry", pantry.NewItem{Name: "Milk", Quantity: 3, Unit: "l"})
	rr = doJSON(r, http.MethodPost, "/assistant/pantry-suggestions", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	var suggestions []recipe.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &suggestions))
	assert.Len(t, suggestions, 1)

	rr = doJSON(r, http.MethodPost, "/assistant/recipe", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAssistantErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"timeout", context.DeadlineExceeded, http.StatusRequestTimeout},
		{"wrapped timeout", errors.Join(errors.New("gemini"), context.DeadlineExceeded), http.StatusRequestTimeout},
		{"no result", assistant.ErrNoResult, http.StatusBadGateway},
		{"other", errors.New("quota exceeded"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, handler := newTestRouter(&mockAssistant{returnError: tt.err}, nil)
			before := handler.Workbench.Snapshot()

			rr := doJSON(r, http.MethodPost, "/assistant/recipe", map[string]string{"request": "cake"})
			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, before, handler.Workbench.Snapshot())
		})
	}

	r, _ := newTestRouter(nil, nil)
	rr := doJSON(r, http.MethodPost, "/assistant/recipe", map[string]string{"request": "cake"})
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func uploadImage(t *testing.T, r http.Handler, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/workbench/image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestUploadImage(t *testing.T) {
	r, _ := newTestRouter(nil, nil)

	img := image.NewRGBA(image.Rect(0, 0, 1600, 40))
	for x := 0; x < 1600; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	rr := uploadImage(t, r, "pudim.png", buf.Bytes())
	assert.Equal(t, http.StatusOK, rr.Code)
	s := decodeState(t, rr)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(s.Recipe.Image, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(s.Recipe.Image, prefix))
	require.NoError(t, err)
	cfg, err := png.DecodeConfig(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 20, cfg.Height)

	rr = uploadImage(t, r, "notes.txt", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = uploadImage(t, r, "broken.png", []byte("not a png"))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRestoreFromSnapshot(t *testing.T) {
	current := recipe.NewDraft()
	current.Name = "Restored"
	saved := &snapshot.Snapshot{
		Profile:  profile.Profile{Name: "Bia", Level: 3, CurrentXP: 20, NextLevelXP: 1500},
		Pantry:   []pantry.Item{{ID: "p1", Name: "Rice", Quantity: 4, Unit: "kg"}},
		Recipes:  []recipe.Recipe{current},
		Current:  &current,
		Notified: map[string]time.Time{notify.KeyLunch: lunchTime},
	}

	gin.SetMode(gin.TestMode)
	handler := api.NewHandler(saved, nil, nil, nil)
	handler.Now = func() time.Time { return lunchTime }
	r := gin.New()
	handler.Register(r)

	assert.Equal(t, "Restored", handler.Workbench.Recipe().Name)

	rr := doJSON(r, http.MethodGet, "/profile", nil)
	var p profile.Profile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 3, p.Level)

	// Lunch was already suggested today and nothing is low
	rr = doJSON(r, http.MethodGet, "/notifications", nil)
	assert.JSONEq(t, "[]", rr.Body.String())
}

func TestSaveFailureDoesNotFailRequest(t *testing.T) {
	store := &mockSnapshotStore{saveError: errors.New("disk full")}
	r, _ := newTestRouter(nil, store)

	rr := doJSON(r, http.MethodPatch, "/workbench", map[string]any{"name": "Flan"})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, store.saves)
}
