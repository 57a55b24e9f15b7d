// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"github.com/your-org/seed-marketplace/internal/domain/session"
	"gorm.io/gorm"
)

// User represents an account that can sign in and list seeds
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string     `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	FullName    string     `gorm:"size:200" json:"full_name"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to handle business logic before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Email should be lowercase
	u.Email = normalizeEmail(u.Email)
	return nil
}

// Identity is the session view of the user
func (u *User) Identity() *session.Identity {
	return &session.Identity{
		UserID:   u.ID,
		Email:    u.Email,
		FullName: u.FullName,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
