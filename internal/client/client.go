// Package client is a Go client for the project tracker HTTP API. It keeps a
// local cache of the project list and stats, serving repeat reads without a
// round trip and dropping both caches after every successful mutation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/projtrack/project-tracker-api/internal/dto"
	apierrors "github.com/projtrack/project-tracker-api/internal/errors"
	"github.com/projtrack/project-tracker-api/internal/repository"
)

// APIError is a server-side failure surfaced to the caller.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
}

// Client talks to the API and caches read results per authenticated user.
type Client struct {
	baseURL string
	http    *http.Client

	mu            sync.Mutex
	token         string
	projects      []dto.ProjectDTO
	projectsValid bool
	stats         *repository.ProjectStats
	statsValid    bool
}

// New creates a Client for the given base URL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates an account and stores the returned token for later calls.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp, nil
}

// Login authenticates and stores the returned token for later calls.
func (c *Client) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	c.setToken(resp.Token)
	return &resp, nil
}

// CurrentUser fetches the user behind the stored token.
func (c *Client) CurrentUser(ctx context.Context) (*dto.UserDTO, error) {
	var user dto.UserDTO
	if err := c.do(ctx, http.MethodGet, "/api/auth/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListProjects returns the project list, from cache when it is still valid.
func (c *Client) ListProjects(ctx context.Context) ([]dto.ProjectDTO, error) {
	c.mu.Lock()
	if c.projectsValid {
		cached := make([]dto.ProjectDTO, len(c.projects))
		copy(cached, c.projects)
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	var projects []dto.ProjectDTO
	if err := c.do(ctx, http.MethodGet, "/api/projects", nil, &projects); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.projects = projects
	c.projectsValid = true
	c.mu.Unlock()

	return projects, nil
}

// Stats returns the project stats, from cache when it is still valid.
func (c *Client) Stats(ctx context.Context) (*repository.ProjectStats, error) {
	c.mu.Lock()
	if c.statsValid && c.stats != nil {
		cached := *c.stats
		c.mu.Unlock()
		return &cached, nil
	}
	c.mu.Unlock()

	var stats repository.ProjectStats
	if err := c.do(ctx, http.MethodGet, "/api/projects/stats", nil, &stats); err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.stats = &stats
	c.statsValid = true
	c.mu.Unlock()

	return &stats, nil
}

// GetProject fetches a single project, bypassing the cache.
func (c *Client) GetProject(ctx context.Context, id uint64) (*dto.ProjectDTO, error) {
	var project dto.ProjectDTO
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/projects/%d", id), nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateProject creates a project and invalidates the caches.
func (c *Client) CreateProject(ctx context.Context, req dto.CreateProjectRequest) (*dto.ProjectDTO, error) {
	var project dto.ProjectDTO
	if err := c.do(ctx, http.MethodPost, "/api/projects", req, &project); err != nil {
		return nil, err
	}
	c.invalidate()
	return &project, nil
}

// UpdateProject updates a project and invalidates the caches.
func (c *Client) UpdateProject(ctx context.Context, id uint64, req dto.UpdateProjectRequest) (*dto.ProjectDTO, error) {
	var project dto.ProjectDTO
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/projects/%d", id), req, &project); err != nil {
		return nil, err
	}
	c.invalidate()
	return &project, nil
}

// DeleteProject deletes a project and invalidates the caches.
func (c *Client) DeleteProject(ctx context.Context, id uint64) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/projects/%d", id), nil, nil); err != nil {
		return err
	}
	c.invalidate()
	return nil
}

// Token returns the stored bearer token.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Client) setToken(token string) {
	c.mu.Lock()
	c.token = token
	// A different identity must never see the previous user's cache
	c.projectsValid = false
	c.statsValid = false
	c.mu.Unlock()
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.projectsValid = false
	c.statsValid = false
	c.mu.Unlock()
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apierrors.APIError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
		}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
