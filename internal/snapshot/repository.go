// Package snapshot persists the whole application state (profile, pantry,
// recipe book, working recipe, notification history, auth flag) as a flat
// set of keys.
package snapshot

import (
	"context"
	"fmt"
	"time"

	"mise/internal/pantry"
	"mise/internal/profile"
	"mise/internal/recipe"
)

// Storage keys.
const (
	KeyProfile       = "mise_profile"
	KeyPantry        = "mise_pantry"
	KeyRecipes       = "mise_custom_recipes"
	KeyCurrentRecipe = "mise_current_recipe"
	KeyNotifications = "mise_notifications"
	KeyAuth          = "mise_auth"
)

// Snapshot is everything the application remembers between runs.
type Snapshot struct {
	Profile       profile.Profile      `json:"profile"`
	Pantry        []pantry.Item        `json:"pantry"`
	Recipes       []recipe.Recipe      `json:"recipes"`
	Current       *recipe.Recipe       `json:"current,omitempty"`
	Notified      map[string]time.Time `json:"notified"`
	Authenticated bool                 `json:"authenticated"`
}

// Repository loads and saves snapshots through a KV and a Codec.
type Repository struct {
	kv    KV
	codec Codec
}

// NewRepository creates a Repository. A nil codec means JSON.
func NewRepository(kv KV, codec Codec) *Repository {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &Repository{kv: kv, codec: codec}
}

// Load reads the stored snapshot. It returns nil, nil when nothing was ever saved.
func (r *Repository) Load(ctx context.Context) (*Snapshot, error) {
	s := &Snapshot{Profile: profile.New()}
	targets := []struct {
		key string
		v   any
	}{
		{KeyProfile, &s.Profile},
		{KeyPantry, &s.Pantry},
		{KeyRecipes, &s.Recipes},
		{KeyCurrentRecipe, &s.Current},
		{KeyNotifications, &s.Notified},
		{KeyAuth, &s.Authenticated},
	}

	found := false
	for _, t := range targets {
		data, ok, err := r.kv.Get(ctx, t.key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		found = true
		if err := r.codec.Unmarshal(data, t.v); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", t.key, err)
		}
	}
	if !found {
		return nil, nil // Nothing saved yet
	}
	if s.Notified == nil {
		s.Notified = make(map[string]time.Time)
	}
	return s, nil
}

// Save writes every part of s.
func (r *Repository) Save(ctx context.Context, s *Snapshot) error {
	if s == nil {
		return fmt.Errorf("nil snapshot")
	}
	values := map[string]any{
		KeyProfile:       s.Profile,
		KeyPantry:        s.Pantry,
		KeyRecipes:       s.Recipes,
		KeyCurrentRecipe: s.Current,
		KeyNotifications: s.Notified,
		KeyAuth:          s.Authenticated,
	}

	entries := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := r.codec.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", key, err)
		}
		entries[key] = data
	}
	if err := r.kv.Put(ctx, entries); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// Close releases the underlying store.
func (r *Repository) Close() error {
	return r.kv.Close()
}
