// Package client talks to the list-storage API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/harrylevesque/hellonames/internal/models"
	"github.com/harrylevesque/hellonames/internal/utils"
)

const namesPath = "/api/names"

// Client is a list-storage API client. It sets no timeout of its own; a
// request settles when the transport settles or ctx is done.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New returns a client for the API at baseURL (e.g. http://localhost:8000).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  utils.NopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// ListNames fetches every stored name. A response with success=false is not
// an error; the caller inspects Success.
func (c *Client) ListNames(ctx context.Context) (models.NamesResponse, error) {
	var out models.NamesResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+namesPath, nil)
	if err != nil {
		return out, err
	}
	if err := c.do(req, &out); err != nil {
		return out, fmt.Errorf("list names: %w", err)
	}
	return out, nil
}

// AddName submits name as-is. Trimming is the caller's job.
func (c *Client) AddName(ctx context.Context, name string) (models.AddNameResponse, error) {
	var out models.AddNameResponse
	body, err := json.Marshal(models.AddNameRequest{Name: name})
	if err != nil {
		return out, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+namesPath, bytes.NewReader(body))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	if err := c.do(req, &out); err != nil {
		return out, fmt.Errorf("add name: %w", err)
	}
	return out, nil
}

// do sends req and decodes the JSON body into out whatever the status code,
// since the API reports failures in the body.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	c.logger.Debug("api response", "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)

	if err := json.Unmarshal(b, out); err != nil {
		return &utils.CustomError{
			Code:    resp.StatusCode,
			Message: fmt.Sprintf("malformed response: %v", err),
		}
	}
	return nil
}
