package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"mise/internal/costing"
	"mise/internal/recipe"
	"mise/internal/report"
	"mise/internal/workbench"
)

// GetWorkbench returns the current recipe and its breakdown.
func (h *Handler) GetWorkbench(c *gin.Context) {
	c.JSON(http.StatusOK, newWorkbenchResponse(h.Workbench.Snapshot()))
}

// LoadWorkbench opens a recipe on the workbench. Recipes that are not in
// the book lose their id so saving them creates a new entry.
func (h *Handler) LoadWorkbench(c *gin.Context) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid recipe: %s", err.Error()))
		return
	}

	if r.ID != "" {
		saved, err := h.Book.GetRecipe(c.Request.Context(), r.ID)
		if err != nil {
			c.String(http.StatusInternalServerError, fmt.Sprintf("recipe book error: %s", err.Error()))
			return
		}
		if saved == nil {
			r.ID = ""
		}
	}

	s := h.Workbench.Load(r)
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

type patchWorkbenchRequest struct {
	Name         *string  `json:"name"`
	ProfitMargin *float64 `json:"profitMargin"`
}

// PatchWorkbench renames the recipe and/or changes its profit margin.
func (h *Handler) PatchWorkbench(c *gin.Context) {
	var req patchWorkbenchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}

	s := h.Workbench.Patch(req.Name, req.ProfitMargin)
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

// AddIngredient appends the ingredient in the body, or a blank row when the body is empty.
func (h *Handler) AddIngredient(c *gin.Context) {
	ing := &recipe.Ingredient{}
	if err := c.ShouldBindJSON(ing); errors.Is(err, io.EOF) {
		ing = nil
	} else if err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid ingredient: %s", err.Error()))
		return
	}

	row, s := h.Workbench.AddIngredient(ing)
	h.persist(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"ingredient": row, "workbench": newWorkbenchResponse(s)})
}

// UpdateIngredient replaces one ingredient row.
func (h *Handler) UpdateIngredient(c *gin.Context) {
	var ing recipe.Ingredient
	if err := c.ShouldBindJSON(&ing); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid ingredient: %s", err.Error()))
		return
	}

	s, err := h.Workbench.UpdateIngredient(c.Param("id"), ing)
	if err != nil {
		h.workbenchError(c, err)
		return
	}
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

// RemoveIngredient deletes one ingredient row.
func (h *Handler) RemoveIngredient(c *gin.Context) {
	s, err := h.Workbench.RemoveIngredient(c.Param("id"))
	if err != nil {
		h.workbenchError(c, err)
		return
	}
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

// SetOverheads replaces the batch overheads.
func (h *Handler) SetOverheads(c *gin.Context) {
	var oh recipe.Overheads
	if err := c.ShouldBindJSON(&oh); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid overheads: %s", err.Error()))
		return
	}
	s := h.Workbench.SetOverheads(oh)
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

type valueRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

// SetYields handles a user edit of the yield count.
func (h *Handler) SetYields(c *gin.Context) {
	h.reconcileEdit(c, h.Workbench.SetYields)
}

// SetPortionSize handles a user edit of the portion size in grams.
func (h *Handler) SetPortionSize(c *gin.Context) {
	h.reconcileEdit(c, h.Workbench.SetPortionSize)
}

func (h *Handler) reconcileEdit(c *gin.Context, edit func(float64) (workbench.State, error)) {
	var req valueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}

	s, err := edit(*req.Value)
	if errors.Is(err, costing.ErrNonPositive) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "workbench": newWorkbenchResponse(s)})
		return
	}
	if err != nil {
		h.workbenchError(c, err)
		return
	}
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

// Share returns the plain-text card for the current recipe.
func (h *Handler) Share(c *gin.Context) {
	s := h.Workbench.Snapshot()
	h.mu.Lock()
	chef := h.profile.Name
	h.mu.Unlock()
	c.String(http.StatusOK, report.ShareText(s.Recipe, s.Breakdown, chef))
}

// Complete records a cooking session for the current recipe.
func (h *Handler) Complete(c *gin.Context) {
	r := h.Workbench.Recipe()

	h.mu.Lock()
	session, levelUp := h.profile.Complete(r, h.Now())
	p := h.profile
	h.mu.Unlock()

	if levelUp {
		h.Log.Info("level up: %s reached level %d", p.Name, p.Level)
	}
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"session": session, "levelUp": levelUp, "profile": p})
}

func (h *Handler) workbenchError(c *gin.Context, err error) {
	if errors.Is(err, recipe.ErrNotFound) {
		c.String(http.StatusNotFound, "Ingredient not found")
		return
	}
	c.String(http.StatusInternalServerError, fmt.Sprintf("workbench error: %s", err.Error()))
}
