// internal/domain/seed/entity.go
package seed

import (
	"time"

	"github.com/your-org/seed-marketplace/internal/domain/cart"
)

// Seed is a farmer's listing in the seeds table. Price is in minor currency
// units (paise).
type Seed struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	Quality   string    `gorm:"not null;size:100" json:"quality"`
	Price     int64     `gorm:"not null;check:price >= 0" json:"price"`
	Farmer    string    `gorm:"not null;size:255;index" json:"farmer"`
	Image     string    `gorm:"size:500" json:"image,omitempty"` // object path in storage
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Seed) TableName() string {
	return "seeds"
}

// CartItem is the read-only copy of the seed that goes into a cart
func (s Seed) CartItem() cart.Item {
	return cart.Item{
		ID:      s.ID,
		Name:    s.Name,
		Quality: s.Quality,
		Price:   s.Price,
		Farmer:  s.Farmer,
		Image:   s.Image,
	}
}

// View is a seed with a freshly signed image link, if it has an image and
// signing succeeded.
type View struct {
	Seed
	ImageURL       string     `json:"image_url,omitempty"`
	ImageExpiresAt *time.Time `json:"image_expires_at,omitempty"`
}
