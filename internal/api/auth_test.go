package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipemagic/backend/internal/middleware"
	"github.com/recipemagic/backend/internal/mocks"
	"github.com/recipemagic/backend/internal/models"
	"github.com/recipemagic/backend/internal/service"
)

func setupAuthRouter(t *testing.T, auth *service.AuthService, email service.IEmailService) *gin.Engine {
	t.Helper()

	router := gin.New()
	v1 := router.Group("/api/v1")
	handler := NewAuthHandler(auth, email, zap.NewNop())
	handler.RegisterRoutes(v1, middleware.AuthMiddleware(auth))
	return router
}

func TestMagicLinkFlow(t *testing.T) {
	db := setupTestDB(t)
	auth := newTestAuthService(t, db)
	email := &mocks.CaptureEmailService{}
	router := setupAuthRouter(t, auth, email)

	// Request a link
	req := httptest.NewRequest("POST", "/api/v1/auth/magic-link", bytes.NewBufferString(`{"email":"Cook@Example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 202, w.Code)
	require.Len(t, email.Sent, 1)
	assert.Equal(t, "Cook@Example.com", email.Sent[0].To)
	require.NotEmpty(t, email.Sent[0].Token)

	// Exchange the token for a session
	req = httptest.NewRequest("GET", "/api/v1/auth/verify?token="+url.QueryEscape(email.Sent[0].Token), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var verified struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verified))
	assert.Equal(t, "cook@example.com", verified.Email)
	require.NotEmpty(t, verified.Token)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "cook@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The session works
	req = httptest.NewRequest("GET", "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+verified.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"email":"cook@example.com"}`, w.Body.String())

	// Sign out
	req = httptest.NewRequest("POST", "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+verified.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	// The denylisted session no longer works
	req = httptest.NewRequest("GET", "/api/v1/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+verified.Token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
}

func TestMagicLinkIsSingleUse(t *testing.T) {
	db := setupTestDB(t)
	auth := newTestAuthService(t, db)
	email := &mocks.CaptureEmailService{}
	router := setupAuthRouter(t, auth, email)

	req := httptest.NewRequest("POST", "/api/v1/auth/magic-link", bytes.NewBufferString(`{"email":"cook@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, 202, w.Code)
	require.Len(t, email.Sent, 1)

	verify := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/api/v1/auth/verify?token="+url.QueryEscape(email.Sent[0].Token), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	require.Equal(t, 200, verify().Code)

	second := verify()
	assert.Equal(t, 401, second.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired sign-in link"}`, second.Body.String())
}

func TestRequestMagicLinkMissingEmail(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(t, newTestAuthService(t, db), &mocks.CaptureEmailService{})

	for name, body := range map[string]string{
		"no body":      "",
		"empty object": `{}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/auth/magic-link", bytes.NewBufferString(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, 400, w.Code)
			assert.JSONEq(t, `{"error":"Email is required"}`, w.Body.String())
		})
	}
}

func TestRequestMagicLinkFailuresAreGeneric(t *testing.T) {
	db := setupTestDB(t)
	auth := newTestAuthService(t, db)

	// An invalid address and an SMTP failure look identical to the caller.
	cases := map[string]struct {
		email service.IEmailService
		body  string
	}{
		"invalid email": {&mocks.CaptureEmailService{}, `{"email":"not-an-address"}`},
		"send failure":  {&mocks.CaptureEmailService{Err: errors.New("smtp: connection refused")}, `{"email":"cook@example.com"}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			router := setupAuthRouter(t, auth, tc.email)
			req := httptest.NewRequest("POST", "/api/v1/auth/magic-link", bytes.NewBufferString(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, 500, w.Code)
			assert.JSONEq(t, `{"error":"Could not send magic link. Try again."}`, w.Body.String())
		})
	}
}

func TestVerifyMagicLinkRejectsBadTokens(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(t, newTestAuthService(t, db), &mocks.CaptureEmailService{})

	req := httptest.NewRequest("GET", "/api/v1/auth/verify", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
	assert.JSONEq(t, `{"error":"missing token"}`, w.Body.String())

	req = httptest.NewRequest("GET", "/api/v1/auth/verify?token=never-issued", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired sign-in link"}`, w.Body.String())
}

func TestSessionRequiresToken(t *testing.T) {
	db := setupTestDB(t)
	router := setupAuthRouter(t, newTestAuthService(t, db), &mocks.CaptureEmailService{})

	req := httptest.NewRequest("GET", "/api/v1/auth/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, 401, w.Code)
	assert.JSONEq(t, `{"error":"missing authorization header"}`, w.Body.String())
}
