package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/recipemagic/backend/internal/models"
)

// RecipeService persists and reads a user's recipe history. History rows
// are insert-only; there is no update or delete path.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// SaveRecipe inserts one history row for the email.
func (s *RecipeService) SaveRecipe(ctx context.Context, email, ingredients, recipe string) (*models.SavedRecipe, error) {
	saved := &models.SavedRecipe{
		Email:       email,
		Ingredients: ingredients,
		Recipe:      recipe,
	}
	if err := s.db.WithContext(ctx).Create(saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

// History returns the email's saved recipes, newest first. The id is a
// tie-break for rows created within the same timestamp.
func (s *RecipeService) History(ctx context.Context, email string) ([]*models.SavedRecipe, error) {
	var recipes []models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC, id DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}

	result := make([]*models.SavedRecipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}
