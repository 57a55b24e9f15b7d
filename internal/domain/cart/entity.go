// internal/domain/cart/entity.go
package cart

import (
	"math"
	"time"
)

// Item is a read-only copy of a listed seed as the cart sees it.
// Price is in minor currency units (paise).
type Item struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Quality string `json:"quality"`
	Price   int64  `json:"price"`
	Farmer  string `json:"farmer"`
	Image   string `json:"image,omitempty"`
}

// Entry pairs one item with a positive quantity
type Entry struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// Subtotal returns price x quantity for the entry. It is never negative and
// saturates at math.MaxInt64.
func (e Entry) Subtotal() int64 {
	if e.Item.Price <= 0 || e.Quantity <= 0 {
		return 0
	}
	q := int64(e.Quantity)
	if e.Item.Price > math.MaxInt64/q {
		return math.MaxInt64
	}
	return e.Item.Price * q
}

// addMoney adds two non-negative amounts, saturating at math.MaxInt64
func addMoney(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}

// Line is one row of a checkout summary
type Line struct {
	Item     Item  `json:"item"`
	Quantity int   `json:"quantity"`
	Subtotal int64 `json:"subtotal"`
}

// Summary represents calculated cart totals
type Summary struct {
	Lines         []Line `json:"lines"`
	ItemCount     int    `json:"item_count"`     // Number of unique items
	TotalQuantity int    `json:"total_quantity"` // Sum of all quantities
	Total         int64  `json:"total"`
}

// Receipt records a completed checkout
type Receipt struct {
	Reference string    `json:"reference"`
	Buyer     string    `json:"buyer"`
	Email     string    `json:"email"`
	Currency  string    `json:"currency"`
	Summary   Summary   `json:"summary"`
	PaidAt    time.Time `json:"paid_at"`
}
