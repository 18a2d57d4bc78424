package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/recipemagic/backend/internal/types"
)

type stubValidator struct {
	claims *types.TokenClaims
	err    error
}

func (v *stubValidator) ValidateToken(ctx context.Context, token string) (*types.TokenClaims, error) {
	return v.claims, v.err
}

func setupAuthTestRouter(validator TokenValidator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(validator), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email")})
	})
	return router
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	router := setupAuthTestRouter(&stubValidator{})

	req := httptest.NewRequest("GET", "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"missing authorization header"}`, w.Body.String())
}

func TestAuthMiddlewareBadFormat(t *testing.T) {
	router := setupAuthTestRouter(&stubValidator{})

	for name, header := range map[string]string{
		"no scheme":    "token-without-scheme",
		"wrong scheme": "Basic dXNlcjpwYXNz",
		"extra parts":  "Bearer one two",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			req.Header.Set("Authorization", header)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.JSONEq(t, `{"error":"invalid authorization header format"}`, w.Body.String())
		})
	}
}

func TestAuthMiddlewareRejectedToken(t *testing.T) {
	router := setupAuthTestRouter(&stubValidator{err: errors.New("token expired")})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	router := setupAuthTestRouter(&stubValidator{claims: &types.TokenClaims{Email: "cook@example.com", TokenID: "jti-1"}})

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"email":"cook@example.com"}`, w.Body.String())
}
