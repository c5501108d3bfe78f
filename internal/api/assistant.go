package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mise/internal/assistant"
	"mise/internal/pantry"
	"mise/internal/workbench"
)

type generateRecipeRequest struct {
	Request string `json:"request" binding:"required"`
}

// GenerateRecipe asks the assistant for a technical sheet and merges it
// into the workbench.
func (h *Handler) GenerateRecipe(c *gin.Context) {
	if !h.assistantReady(c) {
		return
	}
	var req generateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), assistantTimeout)
	defer cancel()

	h.Log.Info("generating recipe for %q", req.Request)
	generated, err := h.Assistant.GenerateRecipe(ctx, req.Request)
	if err != nil {
		h.assistantError(c, err)
		return
	}

	s := h.Workbench.ImportDraft(workbench.DraftFrom(*generated))
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

// EstimateNutrition fills the nutrition facts of the workbench recipe.
func (h *Handler) EstimateNutrition(c *gin.Context) {
	if !h.assistantReady(c) {
		return
	}
	r := h.Workbench.Recipe()
	if len(r.Ingredients) == 0 {
		c.String(http.StatusBadRequest, "Add ingredients before estimating nutrition")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), assistantTimeout)
	defer cancel()

	n, err := h.Assistant.EstimateNutrition(ctx, r.Name, r.Ingredients)
	if err != nil {
		h.assistantError(c, err)
		return
	}

	s := h.Workbench.SetNutrition(n)
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

// GenerateInstructions writes the method of the workbench recipe.
func (h *Handler) GenerateInstructions(c *gin.Context) {
	if !h.assistantReady(c) {
		return
	}
	r := h.Workbench.Recipe()
	if r.Name == "" {
		c.String(http.StatusBadRequest, "The recipe needs a name before generating instructions")
		return
	}
	names := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		names = append(names, ing.Name)
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), assistantTimeout)
	defer cancel()

	steps, err := h.Assistant.GenerateInstructions(ctx, r.Name, names)
	if err != nil {
		h.assistantError(c, err)
		return
	}

	s := h.Workbench.SetInstructions(steps)
	h.persist(c.Request.Context())
	c.JSON(http.StatusOK, newWorkbenchResponse(s))
}

// SuggestFromPantry proposes recipes from the pantry contents. Suggestions
// are returned, not saved.
func (h *Handler) SuggestFromPantry(c *gin.Context) {
	if !h.assistantReady(c) {
		return
	}
	h.mu.Lock()
	items := append([]pantry.Item(nil), h.pantry.Items...)
	h.mu.Unlock()
	if len(items) == 0 {
		c.String(http.StatusBadRequest, "Add items to your pantry first")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), assistantTimeout)
	defer cancel()

	recipes, err := h.Assistant.SuggestFromPantry(ctx, items)
	if err != nil {
		h.assistantError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *Handler) assistantReady(c *gin.Context) bool {
	if h.Assistant == nil {
		c.String(http.StatusServiceUnavailable, "No assistant configured. Set GEMINI_API_KEY or LOCAL_LLM_URL.")
		return false
	}
	return true
}

func (h *Handler) assistantError(c *gin.Context, err error) {
	h.Log.Warn("assistant call failed: %v", err)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		c.String(http.StatusRequestTimeout, "Assistant call timed out after 45 seconds")
	case errors.Is(err, assistant.ErrNoResult):
		c.String(http.StatusBadGateway, "The assistant did not return a usable answer. Try again.")
	default:
		c.String(http.StatusInternalServerError, fmt.Sprintf("assistant err: %s", err.Error()))
	}
}
