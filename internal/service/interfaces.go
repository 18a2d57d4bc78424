package service

import (
	"context"

	"github.com/recipemagic/backend/internal/models"
	"github.com/recipemagic/backend/internal/types"
)

// IAuthService defines the interface for magic-link authentication
type IAuthService interface {
	RequestMagicLink(ctx context.Context, email string) (string, error)
	VerifyMagicLink(ctx context.Context, token string) (session, email string, err error)
	GenerateToken(email string) (string, error)
	ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error)
	Logout(ctx context.Context, claims *types.TokenClaims) error
}

// IRecipeService defines the interface for recipe history persistence
type IRecipeService interface {
	SaveRecipe(ctx context.Context, email, ingredients, recipe string) (*models.SavedRecipe, error)
	History(ctx context.Context, email string) ([]*models.SavedRecipe, error)
}

// IRecipeLookupService defines the interface for the upstream recipe
// provider lookup
type IRecipeLookupService interface {
	LookupRecipe(ctx context.Context, ingredients string) (string, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendMagicLinkEmail(to, token string) error
	SendEmail(to, subject, body string) error
}
