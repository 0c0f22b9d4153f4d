package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// API is the server surface the syncer reconciles against.
type API interface {
	// List returns the authoritative favorite animal ids.
	List(ctx context.Context) ([]string, error)
	Add(ctx context.Context, animalID string) error
	Remove(ctx context.Context, animalID string) error
}

// HTTPClient talks to the favorites REST endpoints, attaching the current
// bearer token on every call.
type HTTPClient struct {
	baseURL string
	client  *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, client *http.Client) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, client: client}
}

// SetToken swaps the bearer credential, typically after login or logout.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type listPayload struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Animals []struct {
		ID string `json:"id"`
	} `json:"animals"`
}

func (c *HTTPClient) List(ctx context.Context) ([]string, error) {
	res, err := c.do(ctx, http.MethodGet, "/api/favorites")
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var payload listPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list favorites: %s", serverError(payload.Error, res.StatusCode))
	}

	ids := make([]string, 0, len(payload.Animals))
	for _, a := range payload.Animals {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

func (c *HTTPClient) Add(ctx context.Context, animalID string) error {
	return c.mutate(ctx, http.MethodPost, animalID, http.StatusCreated)
}

func (c *HTTPClient) Remove(ctx context.Context, animalID string) error {
	return c.mutate(ctx, http.MethodDelete, animalID, http.StatusOK)
}

func (c *HTTPClient) mutate(ctx context.Context, method, animalID string, wantStatus int) error {
	res, err := c.do(ctx, method, "/api/favorites/"+animalID)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode != wantStatus {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(res.Body).Decode(&payload)
		return fmt.Errorf("%s favorite: %s", method, serverError(payload.Error, res.StatusCode))
	}
	return nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.client.Do(req)
}

func serverError(msg string, status int) string {
	if msg != "" {
		return msg
	}
	return fmt.Sprintf("unexpected status %d", status)
}
