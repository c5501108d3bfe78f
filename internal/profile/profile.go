// Package profile keeps the cook's gamified progress: cooking sessions,
// experience points and levels.
package profile

import (
	"math"
	"time"

	"github.com/google/uuid"

	"mise/internal/recipe"
)

// XPPerLevel scales the experience needed for the next level.
const XPPerLevel = 500

// Session is one completed cooking run.
type Session struct {
	ID         string    `json:"id"`
	RecipeName string    `json:"recipeName"`
	Date       time.Time `json:"date"`
	XPEarned   int       `json:"xpEarned"`
}

// Profile is the cook's progress.
type Profile struct {
	Name        string    `json:"name,omitempty"`
	Level       int       `json:"level"`
	CurrentXP   int       `json:"currentXP"`
	NextLevelXP int       `json:"nextLevelXP"`
	History     []Session `json:"history"`
}

// New returns a level 1 profile.
func New() Profile {
	return Profile{
		Level:       1,
		NextLevelXP: NextLevelXP(1),
		History:     []Session{},
	}
}

// NextLevelXP is the experience needed to leave level.
func NextLevelXP(level int) int {
	return level * XPPerLevel
}

// XPFor rewards a finished recipe: 100 base, 10 per ingredient, 5 per step,
// scaled by difficulty.
func XPFor(r recipe.Recipe) int {
	base := 100 + 10*len(r.Ingredients) + 5*len(r.Instructions)

	multiplier := 1.0
	switch r.Difficulty {
	case recipe.DifficultyMedium:
		multiplier = 1.5
	case recipe.DifficultyHard:
		multiplier = 2
	}
	return int(math.Round(float64(base) * multiplier))
}

// Complete records a cooking session for r and applies level-ups.
func (p *Profile) Complete(r recipe.Recipe, now time.Time) (Session, bool) {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.NextLevelXP <= 0 {
		p.NextLevelXP = NextLevelXP(p.Level)
	}

	earned := XPFor(r)
	xp := p.CurrentXP + earned
	levelUp := false
	for xp >= p.NextLevelXP {
		xp -= p.NextLevelXP
		p.Level++
		levelUp = true
	}
	p.CurrentXP = xp
	p.NextLevelXP = NextLevelXP(p.Level)

	name := r.Name
	if name == "" {
		name = "Untitled recipe"
	}
	s := Session{
		ID:         uuid.NewString(),
		RecipeName: name,
		Date:       now.UTC(),
		XPEarned:   earned,
	}
	p.History = append(p.History, s)
	return s, levelUp
}
