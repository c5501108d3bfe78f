package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"mise/internal/costing"
	"mise/internal/logger"
	"mise/internal/notify"
	"mise/internal/pantry"
	"mise/internal/profile"
	"mise/internal/recipe"
	"mise/internal/report"
	"mise/internal/snapshot"
	"mise/internal/workbench"
)

// assistantTimeout bounds every call to the text model.
const assistantTimeout = 45 * time.Second

// Assistant defines the interface for the recipe assistant.
type Assistant interface {
	GenerateRecipe(ctx context.Context, request string) (*recipe.Recipe, error)
	EstimateNutrition(ctx context.Context, name string, ingredients []recipe.Ingredient) (*recipe.Nutrition, error)
	GenerateInstructions(ctx context.Context, name string, ingredientNames []string) ([]recipe.InstructionStep, error)
	SuggestFromPantry(ctx context.Context, items []pantry.Item) ([]recipe.Recipe, error)
}

// SnapshotStore defines the interface for persisting the application state.
type SnapshotStore interface {
	Load(ctx context.Context) (*snapshot.Snapshot, error)
	Save(ctx context.Context, s *snapshot.Snapshot) error
}

// Handler handles HTTP requests for a single local user.
type Handler struct {
	Engine    *costing.Engine
	Workbench *workbench.Workbench
	Book      recipe.Store
	Assistant Assistant
	Snapshots SnapshotStore
	Log       *logger.Logger
	Now       func() time.Time

	// saveMu orders captures and saves so an older snapshot never
	// overwrites a newer one. Taken before mu.
	saveMu sync.Mutex

	mu            sync.Mutex
	profile       profile.Profile
	pantry        pantry.Pantry
	notifier      *notify.Checker
	authenticated bool
}

// NewHandler creates a Handler from a previously saved snapshot, or from
// scratch when s is nil. assistant may be nil when no model is configured.
func NewHandler(s *snapshot.Snapshot, assistant Assistant, snapshots SnapshotStore, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Discard()
	}
	engine := costing.NewEngine(nil)
	h := &Handler{
		Engine:    engine,
		Assistant: assistant,
		Snapshots: snapshots,
		Log:       log,
		Now:       time.Now,
		profile:   profile.New(),
	}

	if s == nil {
		h.Workbench = workbench.New(engine, nil)
		h.Book = recipe.NewBook(nil)
		h.notifier = notify.NewChecker(nil)
		return h
	}

	h.Workbench = workbench.New(engine, s.Current)
	h.Book = recipe.NewBook(s.Recipes)
	h.profile = s.Profile
	h.pantry = pantry.Pantry{Items: s.Pantry}
	h.notifier = notify.NewChecker(s.Notified)
	h.authenticated = s.Authenticated
	return h
}

// snapshot captures the current state. Callers hold h.mu.
func (h *Handler) snapshot(ctx context.Context) (*snapshot.Snapshot, error) {
	recipes, err := h.Book.ListRecipes(ctx, "")
	if err != nil {
		return nil, err
	}
	current := h.Workbench.Recipe()

	notified := make(map[string]time.Time, len(h.notifier.Notified))
	for k, v := range h.notifier.Notified {
		notified[k] = v
	}
	return &snapshot.Snapshot{
		Profile:       h.profile,
		Pantry:        append([]pantry.Item(nil), h.pantry.Items...),
		Recipes:       recipes,
		Current:       &current,
		Notified:      notified,
		Authenticated: h.authenticated,
	}, nil
}

// persist saves the snapshot. Failures are logged and never reach the client.
// Callers must not hold h.mu.
func (h *Handler) persist(ctx context.Context) {
	if h.Snapshots == nil {
		return
	}
	h.saveMu.Lock()
	defer h.saveMu.Unlock()

	h.mu.Lock()
	s, err := h.snapshot(ctx)
	h.mu.Unlock()
	if err != nil {
		h.Log.Error("failed to capture snapshot: %v", err)
		return
	}
	if err := h.Snapshots.Save(ctx, s); err != nil {
		h.Log.Error("failed to save snapshot: %v", err)
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/units", h.GetUnits)
	r.POST("/breakdown", h.PostBreakdown)

	wb := r.Group("/workbench")
	wb.GET("", h.GetWorkbench)
	wb.PUT("", h.LoadWorkbench)
	wb.PATCH("", h.PatchWorkbench)
	wb.POST("/ingredients", h.AddIngredient)
	wb.PUT("/ingredients/:id", h.UpdateIngredient)
	wb.DELETE("/ingredients/:id", h.RemoveIngredient)
	wb.PUT("/overheads", h.SetOverheads)
	wb.PUT("/yields", h.SetYields)
	wb.PUT("/portion-size", h.SetPortionSize)
	wb.POST("/image", h.UploadImage)
	wb.GET("/share", h.Share)
	wb.POST("/complete", h.Complete)

	r.GET("/recipes", h.GetRecipes)
	r.POST("/recipes", h.SaveRecipe)
	r.DELETE("/recipes/:id", h.DeleteRecipe)

	r.GET("/pantry", h.GetPantry)
	r.POST("/pantry", h.AddPantryItem)
	r.DELETE("/pantry/:id", h.RemovePantryItem)
	r.GET("/notifications", h.GetNotifications)

	ai := r.Group("/assistant")
	ai.POST("/recipe", h.GenerateRecipe)
	ai.POST("/nutrition", h.EstimateNutrition)
	ai.POST("/instructions", h.GenerateInstructions)
	ai.POST("/pantry-suggestions", h.SuggestFromPantry)

	r.GET("/profile", h.GetProfile)
	r.PUT("/profile/name", h.SetProfileName)
}

// workbenchResponse is the workbench state plus its display-ready figures.
type workbenchResponse struct {
	workbench.State
	Summary report.Summary `json:"summary"`
	Chart   []report.Slice `json:"chart"`
}

func newWorkbenchResponse(s workbench.State) workbenchResponse {
	return workbenchResponse{
		State:   s,
		Summary: report.Summarize(s.Breakdown),
		Chart:   report.Slices(s.Breakdown),
	}
}

// GetUnits lists the supported units.
func (h *Handler) GetUnits(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.Catalog().Units())
}

// PostBreakdown costs the recipe in the body without touching the workbench.
func (h *Handler) PostBreakdown(c *gin.Context) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid recipe: %s", err.Error()))
		return
	}
	b := h.Engine.Breakdown(&r)
	c.JSON(http.StatusOK, gin.H{
		"breakdown": b,
		"lines":     h.Engine.Lines(&r),
		"summary":   report.Summarize(b),
		"chart":     report.Slices(b),
	})
}
