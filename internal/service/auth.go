package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipemagic/backend/internal/models"
	"github.com/recipemagic/backend/internal/types"
)

var ErrInvalidEmail = errors.New("invalid email address")

// AuthService implements passwordless magic-link sign-in. A sign-in
// request stores a one-time token; verifying that token mints a JWT
// session whose only identity claim is the email address.
type AuthService struct {
	db           *gorm.DB
	tokens       TokenStore
	jwtSecret    string
	magicLinkTTL time.Duration
	sessionTTL   time.Duration
}

func NewAuthService(db *gorm.DB, tokens TokenStore, jwtSecret string, magicLinkTTL, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		db:           db,
		tokens:       tokens,
		jwtSecret:    jwtSecret,
		magicLinkTTL: magicLinkTTL,
		sessionTTL:   sessionTTL,
	}
}

// RequestMagicLink creates a one-time sign-in token for the email and
// returns it so the caller can put it in the sign-in link. The token is
// valid for the configured TTL and exactly one use.
func (s *AuthService) RequestMagicLink(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return "", ErrInvalidEmail
	}

	token := uuid.New().String()
	if err := s.tokens.SaveMagicLink(ctx, token, email, s.magicLinkTTL); err != nil {
		return "", err
	}
	return token, nil
}

// VerifyMagicLink consumes a one-time token, finds or creates the user it
// was issued for, and returns a session token plus the email. A second
// call with the same token fails with ErrTokenNotFound.
func (s *AuthService) VerifyMagicLink(ctx context.Context, token string) (string, string, error) {
	email, err := s.tokens.ConsumeMagicLink(ctx, token)
	if err != nil {
		return "", "", err
	}

	now := time.Now()
	var user models.User
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{Email: email, LastLoginAt: &now}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return "", "", err
		}
	case err != nil:
		return "", "", err
	default:
		if err := s.db.WithContext(ctx).Model(&user).Update("last_login_at", now).Error; err != nil {
			return "", "", err
		}
	}

	session, err := s.GenerateToken(email)
	if err != nil {
		return "", "", err
	}
	return session, email, nil
}

// GenerateToken mints a session JWT for the email.
func (s *AuthService) GenerateToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"jti":   uuid.New().String(),
		"exp":   time.Now().Add(s.sessionTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken checks a session token's signature, expiry and the
// sign-out denylist.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, errors.New("invalid token claims")
	}
	tokenID, ok := claims["jti"].(string)
	if !ok || tokenID == "" {
		return nil, errors.New("invalid token claims")
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	denied, err := s.tokens.IsSessionDenied(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if denied {
		return nil, errors.New("session has been signed out")
	}

	return &types.TokenClaims{
		Email:     email,
		TokenID:   tokenID,
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

// Logout denylists the session until its token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, claims *types.TokenClaims) error {
	return s.tokens.DenySession(ctx, claims.TokenID, time.Until(claims.ExpiresAt))
}
