package recipe

import (
	"context"
	"fmt"
	"sync"
)

// Store defines the interface for the saved recipe book.
type Store interface {
	ListRecipes(ctx context.Context, category Category) ([]Recipe, error)
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
	SaveRecipe(ctx context.Context, recipe *Recipe) error
	DeleteRecipe(ctx context.Context, id string) error
}

// Compile-time interface check.
var _ Store = (*Book)(nil)

// Book is the in-memory recipe book. Its contents are persisted as one flat
// snapshot entry by the caller. Safe for concurrent use.
type Book struct {
	mu      sync.RWMutex
	recipes []Recipe
}

// NewBook creates a recipe book holding a copy of recipes.
func NewBook(recipes []Recipe) *Book {
	b := &Book{}
	b.Replace(recipes)
	return b
}

// ListRecipes returns saved recipes in insertion order, filtered by category when one is given.
func (b *Book) ListRecipes(ctx context.Context, category Category) ([]Recipe, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]Recipe, 0, len(b.recipes))
	for _, r := range b.recipes {
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r.Clone())
	}
	return out, nil
}

// GetRecipe retrieves a recipe by id. It returns nil, nil when the id is unknown.
func (b *Book) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if i := b.index(id); i >= 0 {
		r := b.recipes[i].Clone()
		return &r, nil
	}
	return nil, nil // Recipe not found
}

// SaveRecipe updates the recipe with the same id or appends it. A recipe
// without an id gets a fresh one.
func (b *Book) SaveRecipe(ctx context.Context, recipe *Recipe) error {
	if recipe == nil {
		return fmt.Errorf("failed to save recipe: nil recipe")
	}
	if recipe.Name == "" {
		return fmt.Errorf("failed to save recipe: name is required")
	}
	if recipe.ID == "" {
		recipe.ID = NewID()
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if i := b.index(recipe.ID); i >= 0 {
		b.recipes[i] = recipe.Clone()
		return nil
	}
	b.recipes = append(b.recipes, recipe.Clone())
	return nil
}

// DeleteRecipe removes a recipe by id.
func (b *Book) DeleteRecipe(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("failed to delete recipe %s: %w", id, ErrNotFound)
	}
	b.recipes = append(b.recipes[:i], b.recipes[i+1:]...)
	return nil
}

// Replace swaps the book contents, used when a snapshot is loaded.
func (b *Book) Replace(recipes []Recipe) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.recipes = make([]Recipe, 0, len(recipes))
	for _, r := range recipes {
		b.recipes = append(b.recipes, r.Clone())
	}
}

func (b *Book) index(id string) int {
	for i := range b.recipes {
		if b.recipes[i].ID == id {
			return i
		}
	}
	return -1
}
