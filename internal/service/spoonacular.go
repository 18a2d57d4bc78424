package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNoRecipeFound is returned when the upstream search yields no
// candidates for the given ingredients. Callers distinguish it from
// transport or decoding failures, which surface as ordinary errors.
var ErrNoRecipeFound = errors.New("no recipe found")

const noInstructionsFallback = "No instructions available."

// SpoonacularService calls the Spoonacular recipe API. It is constructed
// explicitly and carries its own HTTP client; nothing here is shared
// package state.
type SpoonacularService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewSpoonacularService creates a new SpoonacularService instance. The
// base URL is overridable so tests can point the client at a local server.
func NewSpoonacularService(apiKey, apiURL string) *SpoonacularService {
	if apiURL == "" {
		apiURL = "https://api.spoonacular.com"
	}
	return &SpoonacularService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type searchCandidate struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

type recipeInformation struct {
	Title        string `json:"title"`
	Instructions string `json:"instructions"`
}

// LookupRecipe resolves free-form ingredient text to a formatted recipe
// via two sequential upstream calls: an ingredient search asking for a
// single best match, then a detail lookup for that match. The ingredient
// text is forwarded verbatim; ranking is entirely the provider's.
//
// It returns ErrNoRecipeFound when the search comes back empty (missing
// body, JSON null and an empty array are all treated the same), and a
// wrapped upstream error for every other failure.
func (s *SpoonacularService) LookupRecipe(ctx context.Context, ingredients string) (string, error) {
	candidates, err := s.findByIngredients(ctx, ingredients, 1)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", ErrNoRecipeFound
	}

	info, err := s.getInformation(ctx, candidates[0].ID)
	if err != nil {
		return "", err
	}

	instructions := info.Instructions
	if instructions == "" {
		instructions = noInstructionsFallback
	}

	return fmt.Sprintf("%s\n\n%s", info.Title, instructions), nil
}

// findByIngredients calls the ingredient search operation, requesting
// up to number candidates.
func (s *SpoonacularService) findByIngredients(ctx context.Context, ingredients string, number int) ([]searchCandidate, error) {
	endpoint := fmt.Sprintf("%s/recipes/findByIngredients?ingredients=%s&number=%d&apiKey=%s",
		s.apiURL, url.QueryEscape(ingredients), number, url.QueryEscape(s.apiKey))

	var candidates []searchCandidate
	if err := s.getJSON(ctx, endpoint, &candidates); err != nil {
		// An empty 200 body counts as "no candidates", same as null
		// or [].
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("ingredient search failed: %w", err)
	}
	return candidates, nil
}

// getInformation calls the per-recipe detail lookup, without nutrition data.
func (s *SpoonacularService) getInformation(ctx context.Context, id int) (*recipeInformation, error) {
	endpoint := fmt.Sprintf("%s/recipes/%d/information?includeNutrition=false&apiKey=%s",
		s.apiURL, id, url.QueryEscape(s.apiKey))

	var info recipeInformation
	if err := s.getJSON(ctx, endpoint, &info); err != nil {
		return nil, fmt.Errorf("recipe detail lookup failed: %w", err)
	}
	return &info, nil
}

func (s *SpoonacularService) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// A missing or invalid API key lands here too; it is not
		// diagnosed separately.
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
