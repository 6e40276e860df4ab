// Package cli implements marketctl, a terminal client for the marketplace API.
package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/oksasatya/go-project-marketplace/internal/application"
	"github.com/oksasatya/go-project-marketplace/internal/domain/entity"
	"github.com/oksasatya/go-project-marketplace/pkg/response"
)

var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("not logged in or session expired")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrUpstream     = errors.New("upstream service unavailable")
	ErrServer       = errors.New("server error")
)

// Client talks to the marketplace HTTP API.
type Client struct {
	http  *resty.Client
	token string
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)
	return &Client{http: cli}
}

func (c *Client) SetToken(token string) { c.token = strings.TrimSpace(token) }

func (c *Client) Token() string { return c.token }

func (c *Client) request(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx).SetHeader("Accept", "application/json")
	if c.token != "" {
		r.SetAuthToken(c.token)
	}
	return r
}

// Login exchanges credentials for an access token and keeps it on the client.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var env response.APIResponse[map[string]any]
	resp, err := c.request(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&env).
		Post("/api/login")
	if err != nil {
		return "", fmt.Errorf("login request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return "", err
	}
	meta, _ := env.Meta.(map[string]any)
	token, _ := meta["access_token"].(string)
	if token == "" {
		return "", fmt.Errorf("login response carried no access token")
	}
	c.SetToken(token)
	return token, nil
}

// ListProjects fetches the listing once. mine restricts it to the caller's projects.
func (c *Client) ListProjects(ctx context.Context, mine bool) ([]entity.Project, error) {
	var env response.APIResponse[[]entity.Project]
	r := c.request(ctx).SetResult(&env)
	if mine {
		r.SetQueryParam("mine", "true")
	}
	resp, err := r.Get("/api/projects")
	if err != nil {
		return nil, fmt.Errorf("list projects request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return nil, err
	}
	return env.Data, nil
}

func (c *Client) GetProject(ctx context.Context, id string) (entity.Project, error) {
	var env response.APIResponse[entity.Project]
	resp, err := c.request(ctx).
		SetResult(&env).
		SetPathParam("id", id).
		Get("/api/projects/{id}")
	if err != nil {
		return entity.Project{}, fmt.Errorf("get project request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return entity.Project{}, err
	}
	return env.Data, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		Delete("/api/projects/{id}")
	if err != nil {
		return fmt.Errorf("delete project request: %w", err)
	}
	return mapHTTPError(resp)
}

// Buy starts a purchase and returns the payment intent to confirm.
func (c *Client) Buy(ctx context.Context, projectID string) (application.PurchaseResult, error) {
	var env response.APIResponse[application.PurchaseResult]
	resp, err := c.request(ctx).
		SetBody(map[string]string{"project_id": projectID}).
		SetResult(&env).
		Post("/api/purchases")
	if err != nil {
		return application.PurchaseResult{}, fmt.Errorf("purchase request: %w", err)
	}
	if err := mapHTTPError(resp); err != nil {
		return application.PurchaseResult{}, err
	}
	return env.Data, nil
}
