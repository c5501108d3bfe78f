// Package notify produces low-stock and meal-time reminders, each at most
// once per calendar day.
package notify

import (
	"fmt"
	"strings"
	"time"

	"mise/internal/pantry"
)

// Type classifies a notification.
type Type string

const (
	TypeLowStock       Type = "low_stock"
	TypeMealSuggestion Type = "meal_suggestion"
)

// Keys under which the last delivery is remembered.
const (
	KeyLowStock  = "mise_last_stock_notif"
	KeyBreakfast = "mise_notif_breakfast"
	KeyLunch     = "mise_notif_lunch"
	KeyDinner    = "mise_notif_dinner"
)

// Notification is shown to the user as a toast.
type Notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Type    Type   `json:"type"`
}

// Checker decides whether a reminder is due. Notified maps a key to its last
// delivery and is persisted by the caller.
type Checker struct {
	Notified map[string]time.Time
	Now      func() time.Time
}

// NewChecker creates a checker over previously persisted deliveries.
func NewChecker(notified map[string]time.Time) *Checker {
	if notified == nil {
		notified = make(map[string]time.Time)
	}
	return &Checker{Notified: notified, Now: time.Now}
}

func (c *Checker) notifiedToday(key string, now time.Time) bool {
	last, ok := c.Notified[key]
	if !ok {
		return false
	}
	ly, lm, ld := last.In(now.Location()).Date()
	y, m, d := now.Date()
	return ly == y && lm == m && ld == d
}

// CheckPantry reports low-stock items once per day.
func (c *Checker) CheckPantry(items []pantry.Item) *Notification {
	now := c.Now()
	if c.notifiedToday(KeyLowStock, now) {
		return nil
	}

	p := pantry.Pantry{Items: items}
	low := p.LowStock(pantry.LowStockThreshold)
	if len(low) == 0 {
		return nil
	}

	names := make([]string, 0, 2)
	for _, it := range low {
		if len(names) == 2 {
			break
		}
		names = append(names, it.Name)
	}
	suffix := ""
	if len(low) > 2 {
		suffix = fmt.Sprintf(" and %d more", len(low)-2)
	}

	c.Notified[KeyLowStock] = now
	return &Notification{
		ID:      fmt.Sprintf("%d", now.UnixNano()),
		Title:   "Low stock",
		Message: fmt.Sprintf("Your pantry needs attention! %s%s running low.", strings.Join(names, ", "), suffix),
		Type:    TypeLowStock,
	}
}

// CheckMeal suggests cooking around breakfast, lunch and dinner time, once
// per meal per day. It returns nil outside those windows.
func (c *Checker) CheckMeal() *Notification {
	now := c.Now()
	hour := now.Hour()

	var key, title, message string
	switch {
	case hour >= 7 && hour < 10:
		key, title, message = KeyBreakfast, "Breakfast time", "How about something special to start the day? Check your suggestions."
	case hour >= 11 && hour < 14:
		key, title, message = KeyLunch, "Planning lunch?", "See what you can cook with what is in the pantry right now."
	case hour >= 18 && hour < 20:
		key, title, message = KeyDinner, "Quick dinner", "Not sure what to make tonight? The assistant can put a menu together."
	default:
		return nil
	}

	if c.notifiedToday(key, now) {
		return nil
	}
	c.Notified[key] = now
	return &Notification{
		ID:      fmt.Sprintf("%d", now.UnixNano()),
		Title:   title,
		Message: message,
		Type:    TypeMealSuggestion,
	}
}
