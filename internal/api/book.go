package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mise/internal/notify"
	"mise/internal/pantry"
	"mise/internal/recipe"
)

// GetRecipes lists the recipe book, optionally filtered by ?category=.
// ?source=preset lists the built-in recipes instead of the saved ones.
func (h *Handler) GetRecipes(c *gin.Context) {
	category := recipe.Category(strings.ToLower(c.Query("category")))

	switch strings.ToLower(c.DefaultQuery("source", "saved")) {
	case "saved":
	case "preset":
		presets := make([]recipe.Recipe, 0, 3)
		for _, r := range recipe.Presets() {
			if category == "" || r.Category == category {
				presets = append(presets, r)
			}
		}
		c.JSON(http.StatusOK, presets)
		return
	default:
		c.String(http.StatusBadRequest, "source must be saved or preset")
		return
	}

	recipes, err := h.Book.ListRecipes(c.Request.Context(), category)
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("recipe book error: %s", err.Error()))
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// SaveRecipe stores the recipe in the body, or the workbench recipe when
// the body is empty. Saving the workbench recipe ties it to the new entry.
func (h *Handler) SaveRecipe(c *gin.Context) {
	var r recipe.Recipe
	err := c.ShouldBindJSON(&r)
	fromWorkbench := errors.Is(err, io.EOF)
	if fromWorkbench {
		r = h.Workbench.Recipe()
	} else if err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid recipe: %s", err.Error()))
		return
	}

	if strings.TrimSpace(r.Name) == "" {
		c.String(http.StatusBadRequest, "Give the recipe a name before saving it")
		return
	}
	if err := h.Book.SaveRecipe(c.Request.Context(), &r); err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to save recipe: %s", err.Error()))
		return
	}
	if fromWorkbench {
		h.Workbench.SetID(r.ID)
	}

	h.persist(c.Request.Context())
	c.JSON(http.StatusCreated, r)
}

// DeleteRecipe removes a recipe from the book.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	err := h.Book.DeleteRecipe(c.Request.Context(), c.Param("id"))
	if errors.Is(err, recipe.ErrNotFound) {
		c.String(http.StatusNotFound, "Recipe not found")
		return
	}
	if err != nil {
		c.String(http.StatusInternalServerError, fmt.Sprintf("failed to delete recipe: %s", err.Error()))
		return
	}
	h.persist(c.Request.Context())
	c.Status(http.StatusNoContent)
}

type pantryResponse struct {
	Items      []pantry.Item `json:"items"`
	TotalValue float64       `json:"totalValue"`
	LowStock   []pantry.Item `json:"lowStock"`
}

func (h *Handler) pantryView() pantryResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	items := append([]pantry.Item{}, h.pantry.Items...)
	low := h.pantry.LowStock(pantry.LowStockThreshold)
	if low == nil {
		low = []pantry.Item{}
	}
	return pantryResponse{Items: items, TotalValue: h.pantry.TotalValue(), LowStock: low}
}

// GetPantry lists pantry items with their total value and low-stock subset.
func (h *Handler) GetPantry(c *gin.Context) {
	c.JSON(http.StatusOK, h.pantryView())
}

// AddPantryItem records a purchase.
func (h *Handler) AddPantryItem(c *gin.Context) {
	var req pantry.NewItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid pantry item: %s", err.Error()))
		return
	}

	h.mu.Lock()
	item, err := h.pantry.Add(req, h.Now())
	h.mu.Unlock()
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}

	h.persist(c.Request.Context())
	c.JSON(http.StatusCreated, item)
}

// RemovePantryItem deletes a pantry item.
func (h *Handler) RemovePantryItem(c *gin.Context) {
	h.mu.Lock()
	err := h.pantry.Remove(c.Param("id"))
	h.mu.Unlock()
	if errors.Is(err, pantry.ErrNotFound) {
		c.String(http.StatusNotFound, "Pantry item not found")
		return
	}
	h.persist(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// GetNotifications returns the reminders due now. Each one is delivered at
// most once per day.
func (h *Handler) GetNotifications(c *gin.Context) {
	h.mu.Lock()
	h.notifier.Now = h.Now
	var due []notify.Notification
	if n := h.notifier.CheckPantry(h.pantry.Items); n != nil {
		due = append(due, *n)
	}
	if n := h.notifier.CheckMeal(); n != nil {
		due = append(due, *n)
	}
	h.mu.Unlock()

	if len(due) > 0 {
		h.persist(c.Request.Context())
	} else {
		due = []notify.Notification{}
	}
	c.JSON(http.StatusOK, due)
}

// GetProfile returns the cook's progress.
func (h *Handler) GetProfile(c *gin.Context) {
	h.mu.Lock()
	p := h.profile
	h.mu.Unlock()
	c.JSON(http.StatusOK, p)
}

type profileNameRequest struct {
	Name string `json:"name" binding:"required"`
}

// SetProfileName sets the chef name shown on shared recipes.
func (h *Handler) SetProfileName(c *gin.Context) {
	var req profileNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}

	h.mu.Lock()
	h.profile.Name = strings.TrimSpace(req.Name)
	p := h.profile
	h.mu.Unlock()

	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, p)
}
