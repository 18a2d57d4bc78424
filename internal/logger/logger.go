package logger

import (
	"go.uber.org/zap"

	"github.com/recipemagic/backend/config"
)

// New builds the application logger. Production gets the JSON encoder,
// everything else the human-readable development console.
func New() (*zap.Logger, error) {
	if config.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// NewNop returns a logger that discards everything, for tests.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
