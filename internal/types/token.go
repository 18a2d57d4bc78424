package types

import "time"

// TokenClaims holds the claims carried by a session token.
type TokenClaims struct {
	Email     string
	TokenID   string
	ExpiresAt time.Time
}
