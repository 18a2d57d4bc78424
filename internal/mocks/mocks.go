package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/recipemagic/backend/internal/service"
)

// MemoryTokenStore is an in-memory service.TokenStore for tests. It
// honors TTLs the same way the Redis store does.
type MemoryTokenStore struct {
	mu     sync.Mutex
	links  map[string]memoryLink
	denied map[string]time.Time
}

type memoryLink struct {
	email     string
	expiresAt time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		links:  make(map[string]memoryLink),
		denied: make(map[string]time.Time),
	}
}

func (s *MemoryTokenStore) SaveMagicLink(ctx context.Context, token, email string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links[token] = memoryLink{email: email, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) ConsumeMagicLink(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	link, ok := s.links[token]
	if !ok || time.Now().After(link.expiresAt) {
		return "", service.ErrTokenNotFound
	}
	delete(s.links, token)
	return link.email, nil
}

func (s *MemoryTokenStore) DenySession(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.denied[tokenID] = time.Now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) IsSessionDenied(ctx context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.denied[tokenID]
	return ok && time.Now().Before(until), nil
}

// SentEmail records one email handed to CaptureEmailService.
type SentEmail struct {
	To    string
	Token string
}

// CaptureEmailService records magic-link emails instead of sending them.
type CaptureEmailService struct {
	mu   sync.Mutex
	Sent []SentEmail
	Err  error
}

func (s *CaptureEmailService) SendMagicLinkEmail(to, token string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentEmail{To: to, Token: token})
	return nil
}

func (s *CaptureEmailService) SendEmail(to, subject, body string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentEmail{To: to})
	return nil
}

// StubLookupService returns a fixed recipe or error.
type StubLookupService struct {
	Recipe string
	Err    error
}

func (s *StubLookupService) LookupRecipe(ctx context.Context, ingredients string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Recipe, nil
}
