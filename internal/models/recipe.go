package models

import "time"

// SavedRecipe is one generated recipe kept in a user's history. Rows are
// immutable once created: the only operations are insert and read, and
// display order is always newest first.
type SavedRecipe struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Email       string    `gorm:"index;not null" json:"email"`
	Ingredients string    `gorm:"type:text;not null" json:"ingredients"`
	Recipe      string    `gorm:"type:text;not null" json:"recipe"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName keeps the table name used by the original schema.
func (SavedRecipe) TableName() string {
	return "recipes"
}
