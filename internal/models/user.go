package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account identified solely by its email address. There is no
// password: sign-in happens through one-time magic links.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Email       string         `gorm:"uniqueIndex;not null" json:"email"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
}

// BeforeCreate assigns an ID so the model works on databases without a
// server-side uuid default (sqlite in tests).
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
