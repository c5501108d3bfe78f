package costing

import (
	"errors"
	"math"

	"mise/internal/recipe"
)

// ErrNonPositive is returned when a yield or portion edit is not positive.
// The recipe is left untouched.
var ErrNonPositive = errors.New("value must be greater than zero")

// Reconciler keeps Recipe.Yields (N) and Recipe.PortionSize (S) consistent
// with the estimated batch mass (M). Each event drives exactly one of the
// two fields; the other is recomputed from M. Callers serialize events.
type Reconciler struct {
	lastMass float64
	observed bool
}

// NewReconciler returns a reconciler that has not observed any mass yet.
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Reset forgets the last observed mass, used when a different recipe is loaded.
func (rc *Reconciler) Reset() {
	rc.lastMass = 0
	rc.observed = false
}

// Observe handles a mass recompute. Only a changed mass is an event; when it
// is one and both N and M are positive, S follows with N held fixed.
// It reports whether the recipe was modified.
func (rc *Reconciler) Observe(r *recipe.Recipe, mass float64) bool {
	if rc.observed && mass == rc.lastMass {
		return false
	}
	rc.lastMass = mass
	rc.observed = true

	if r.Yields <= 0 || mass <= 0 {
		return false
	}
	size := RoundGrams(mass / r.Yields)
	if size == r.PortionSize {
		return false
	}
	r.PortionSize = size
	return true
}

// EditYields commits a user-entered yield count and recomputes the portion size.
// Re-entering the current count is a no-op only when S already equals round(M/N).
func (rc *Reconciler) EditYields(r *recipe.Recipe, yields, mass float64) error {
	if yields <= 0 {
		return ErrNonPositive
	}
	if mass > 0 {
		r.PortionSize = RoundGrams(mass / yields)
	}
	r.Yields = yields
	return nil
}

// EditPortionSize commits a user-entered portion size and recomputes the
// yield count, to one decimal and never below one portion.
func (rc *Reconciler) EditPortionSize(r *recipe.Recipe, size, mass float64) error {
	if size <= 0 {
		return ErrNonPositive
	}
	if mass > 0 {
		r.Yields = math.Max(1, RoundYield(mass/size))
	}
	r.PortionSize = size
	return nil
}

// RoundGrams rounds a portion size to whole grams.
func RoundGrams(v float64) float64 {
	return math.Round(v)
}

// RoundYield rounds a yield count to one decimal place.
func RoundYield(v float64) float64 {
	return math.Round(v*10) / 10
}
