// Package pantry tracks what the cook has bought and flags items running low.
package pantry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LowStockThreshold is the quantity at or below which an item is running low.
const LowStockThreshold = 2

// ErrNotFound is returned when removing an unknown item.
var ErrNotFound = errors.New("pantry item not found")

// Units accepted for pantry items.
var Units = []string{"un", "kg", "g", "l", "ml", "cx", "pct"}

// Item is one purchase sitting in the pantry.
type Item struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PurchaseDate time.Time `json:"purchaseDate"`
}

// NewItem is the user input for Add.
type NewItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Validate checks the user input.
func (n NewItem) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return errors.New("name is required")
	}
	if n.Price < 0 {
		return errors.New("price must not be negative")
	}
	if n.Quantity < 0 {
		return errors.New("quantity must not be negative")
	}
	for _, u := range Units {
		if n.Unit == u {
			return nil
		}
	}
	return fmt.Errorf("unsupported unit %q", n.Unit)
}

// Pantry is an ordered list of items, newest first. Not safe for concurrent
// use; callers serialize access.
type Pantry struct {
	Items []Item `json:"items"`
}

// Add records a new purchase at now and returns it.
func (p *Pantry) Add(n NewItem, now time.Time) (Item, error) {
	n.Unit = strings.ToLower(strings.TrimSpace(n.Unit))
	if n.Unit == "" {
		n.Unit = "un"
	}
	if err := n.Validate(); err != nil {
		return Item{}, fmt.Errorf("invalid pantry item: %w", err)
	}
	item := Item{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(n.Name),
		Price:        n.Price,
		Quantity:     n.Quantity,
		Unit:         n.Unit,
		PurchaseDate: now.UTC(),
	}
	p.Items = append([]Item{item}, p.Items...)
	return item, nil
}

// Remove deletes the item with id.
func (p *Pantry) Remove(id string) error {
	for i := range p.Items {
		if p.Items[i].ID == id {
			p.Items = append(p.Items[:i], p.Items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// TotalValue is the sum of the purchase prices.
func (p *Pantry) TotalValue() float64 {
	var total float64
	for _, it := range p.Items {
		total += it.Price
	}
	return total
}

// LowStock returns the items whose quantity is at or below threshold.
func (p *Pantry) LowStock(threshold float64) []Item {
	var out []Item
	for _, it := range p.Items {
		if it.Quantity <= threshold {
			out = append(out, it)
		}
	}
	return out
}

// Names lists item names in pantry order.
func (p *Pantry) Names() []string {
	names := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		names = append(names, it.Name)
	}
	return names
}
