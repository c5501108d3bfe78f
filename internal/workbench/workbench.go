// Package workbench is the editing session over the recipe being costed.
// Each method is one update: the edit is applied, the breakdown is
// recomputed and the yield/portion pair is reconciled before the lock is
// released, so readers never see a half-applied edit.
package workbench

import (
	"fmt"
	"strings"
	"sync"

	"mise/internal/costing"
	"mise/internal/recipe"
)

// State is a consistent view of the workbench.
type State struct {
	Recipe    recipe.Recipe            `json:"recipe"`
	Breakdown costing.Breakdown        `json:"breakdown"`
	Lines     []costing.IngredientLine `json:"lines"`
}

// Draft is a partial recipe coming from the assistant.
type Draft struct {
	Name         string
	Ingredients  []recipe.Ingredient
	Overheads    *recipe.Overheads
	Instructions []recipe.InstructionStep
	Category     recipe.Category
	Nutrition    *recipe.Nutrition
}

// DraftFrom turns a generated recipe into a Draft carrying its overheads.
func DraftFrom(r recipe.Recipe) Draft {
	oh := r.Overheads
	return Draft{
		Name:         r.Name,
		Ingredients:  r.Ingredients,
		Overheads:    &oh,
		Instructions: r.Instructions,
		Category:     r.Category,
		Nutrition:    r.Nutrition,
	}
}

// Workbench holds the current recipe. Safe for concurrent use.
type Workbench struct {
	mu        sync.RWMutex
	recipe    recipe.Recipe
	breakdown costing.Breakdown
	engine    *costing.Engine
	reconcile *costing.Reconciler
}

// New starts a workbench on r, or on the starter recipe when r is nil.
// A nil engine uses the default unit catalog.
func New(engine *costing.Engine, r *recipe.Recipe) *Workbench {
	if engine == nil {
		engine = costing.NewEngine(nil)
	}
	start := recipe.NewDraft()
	if r != nil {
		start = r.Clone()
	}

	w := &Workbench{engine: engine, reconcile: costing.NewReconciler()}
	w.recipe = start
	w.recompute()
	return w
}

// recompute refreshes the breakdown and lets the reconciler follow the mass.
// Callers hold the write lock.
func (w *Workbench) recompute() {
	w.breakdown = w.engine.Breakdown(&w.recipe)
	w.reconcile.Observe(&w.recipe, w.breakdown.TotalMass)
}

func (w *Workbench) state() State {
	return State{
		Recipe:    w.recipe.Clone(),
		Breakdown: w.breakdown,
		Lines:     w.engine.Lines(&w.recipe),
	}
}

// update applies fn under the write lock. When fn fails nothing changes.
func (w *Workbench) update(fn func(r *recipe.Recipe) error) (State, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.recipe.Clone()
	if err := fn(&next); err != nil {
		return w.state(), err
	}
	w.recipe = next
	w.recompute()
	return w.state(), nil
}

// Snapshot returns the current state.
func (w *Workbench) Snapshot() State {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.state()
}

// Recipe returns a copy of the current recipe.
func (w *Workbench) Recipe() recipe.Recipe {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.recipe.Clone()
}

// Breakdown returns the current cost breakdown.
func (w *Workbench) Breakdown() costing.Breakdown {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.breakdown
}

// Lines returns the per-ingredient costs.
func (w *Workbench) Lines() []costing.IngredientLine {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.engine.Lines(&w.recipe)
}

// Load replaces the current recipe and starts reconciling from scratch.
func (w *Workbench) Load(r recipe.Recipe) State {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.recipe = r.Clone()
	for i := range w.recipe.Ingredients {
		if w.recipe.Ingredients[i].ID == "" {
			w.recipe.Ingredients[i].ID = recipe.NewID()
		}
	}
	w.reconcile.Reset()
	w.recompute()
	return w.state()
}

// SetID ties the working recipe to a recipe book entry.
func (w *Workbench) SetID(id string) State {
	s, _ := w.update(func(r *recipe.Recipe) error {
		r.ID = id
		return nil
	})
	return s
}

// Patch renames the recipe and/or changes its profit margin in one update.
// Nil fields are left as they are.
func (w *Workbench) Patch(name *string, margin *float64) State {
	s, _ := w.update(func(r *recipe.Recipe) error {
		if name != nil {
			r.Name = *name
		}
		if margin != nil {
			r.ProfitMargin = *margin
		}
		return nil
	})
	return s
}

// AddIngredient appends ing, or a blank row when ing is nil. A missing id is generated.
func (w *Workbench) AddIngredient(ing *recipe.Ingredient) (recipe.Ingredient, State) {
	row := recipe.NewIngredient()
	if ing != nil {
		row = *ing
		if row.ID == "" {
			row.ID = recipe.NewID()
		}
	}
	s, _ := w.update(func(r *recipe.Recipe) error {
		if r.IngredientIndex(row.ID) >= 0 {
			row.ID = recipe.NewID()
		}
		r.Ingredients = append(r.Ingredients, row)
		return nil
	})
	return row, s
}

// UpdateIngredient replaces the ingredient with id, keeping its id.
func (w *Workbench) UpdateIngredient(id string, ing recipe.Ingredient) (State, error) {
	return w.update(func(r *recipe.Recipe) error {
		i := r.IngredientIndex(id)
		if i < 0 {
			return fmt.Errorf("ingredient %s: %w", id, recipe.ErrNotFound)
		}
		ing.ID = id
		r.Ingredients[i] = ing
		return nil
	})
}

func (w *Workbench) RemoveIngredient(id string) (State, error) {
	return w.update(func(r *recipe.Recipe) error {
		i := r.IngredientIndex(id)
		if i < 0 {
			return fmt.Errorf("ingredient %s: %w", id, recipe.ErrNotFound)
		}
		r.Ingredients = append(r.Ingredients[:i], r.Ingredients[i+1:]...)
		return nil
	})
}

func (w *Workbench) SetOverheads(oh recipe.Overheads) State {
	s, _ := w.update(func(r *recipe.Recipe) error {
		r.Overheads = oh
		return nil
	})
	return s
}

// SetYields is a user edit of the yield count; the portion size follows.
// A non-positive value returns costing.ErrNonPositive and the unchanged state.
func (w *Workbench) SetYields(n float64) (State, error) {
	return w.update(func(r *recipe.Recipe) error {
		return w.reconcile.EditYields(r, n, w.breakdown.TotalMass)
	})
}

// SetPortionSize is a user edit of the portion size in grams; the yield count follows.
func (w *Workbench) SetPortionSize(grams float64) (State, error) {
	return w.update(func(r *recipe.Recipe) error {
		return w.reconcile.EditPortionSize(r, grams, w.breakdown.TotalMass)
	})
}

// ImportDraft merges an assistant draft into the current recipe.
func (w *Workbench) ImportDraft(d Draft) State {
	s, _ := w.update(func(r *recipe.Recipe) error {
		if strings.TrimSpace(d.Name) != "" {
			r.Name = d.Name
		}
		r.Ingredients = make([]recipe.Ingredient, 0, len(d.Ingredients))
		for _, ing := range d.Ingredients {
			if ing.ID == "" {
				ing.ID = recipe.NewID()
			}
			r.Ingredients = append(r.Ingredients, ing)
		}
		if d.Overheads != nil {
			r.Overheads = *d.Overheads
		}
		r.Instructions = append([]recipe.InstructionStep{}, d.Instructions...)
		r.Difficulty = recipe.DifficultyCustom
		r.Category = d.Category
		if r.Category == "" {
			r.Category = recipe.CategoryOther
		}
		r.Nutrition = d.Nutrition
		return nil
	})
	return s
}

func (w *Workbench) SetInstructions(steps []recipe.InstructionStep) State {
	s, _ := w.update(func(r *recipe.Recipe) error {
		r.Instructions = append([]recipe.InstructionStep{}, steps...)
		return nil
	})
	return s
}

func (w *Workbench) SetNutrition(n *recipe.Nutrition) State {
	s, _ := w.update(func(r *recipe.Recipe) error {
		r.Nutrition = n
		return nil
	})
	return s
}

// SetImage stores the recipe photo as a data URL.
func (w *Workbench) SetImage(dataURL string) State {
	s, _ := w.update(func(r *recipe.Recipe) error {
		r.Image = dataURL
		return nil
	})
	return s
}
