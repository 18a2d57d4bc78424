package api

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/recipemagic/backend/internal/mocks"
	"github.com/recipemagic/backend/internal/models"
	"github.com/recipemagic/backend/internal/service"
)

// setupTestDB opens an isolated in-memory database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.SavedRecipe{}))
	return db
}

// newTestAuthService builds an auth service backed by the in-memory
// token store.
func newTestAuthService(t *testing.T, db *gorm.DB) *service.AuthService {
	t.Helper()
	return service.NewAuthService(db, mocks.NewMemoryTokenStore(), "test-secret", 15*time.Minute, 24*time.Hour)
}

// newSessionToken mints a session token for the email.
func newSessionToken(t *testing.T, auth *service.AuthService, email string) string {
	t.Helper()
	token, err := auth.GenerateToken(email)
	require.NoError(t, err)
	return token
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
