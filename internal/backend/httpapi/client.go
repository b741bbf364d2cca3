// Package httpapi implements inventory.Backend against the labinv JSON API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vbonduro/labinv/internal/domain"
)

// Error codes carried in the "code" field of API error bodies.
const (
	CodeInvalid       = "invalid"
	CodeNotFound      = "not_found"
	CodeLocationInUse = "location_in_use"
	CodeNameTaken     = "name_taken"
	CodeInternal      = "internal"
)

// APIError is a non-2xx response from the API. Error returns the server's
// message unchanged.
type APIError struct {
	Status  int
	Code    string
	Field   string
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Unwrap maps the error code to the matching domain sentinel.
func (e *APIError) Unwrap() error {
	switch e.Code {
	case CodeInvalid:
		return domain.ErrInvalid
	case CodeNotFound:
		return domain.ErrNotFound
	case CodeLocationInUse:
		return domain.ErrLocationInUse
	case CodeNameTaken:
		return domain.ErrNameTaken
	}
	return nil
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	items := []domain.Item{}
	if err := c.do(ctx, http.MethodGet, "/api/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) ListLocations(ctx context.Context) ([]domain.Location, error) {
	locs := []domain.Location{}
	if err := c.do(ctx, http.MethodGet, "/api/locations", nil, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

func (c *Client) CreateItem(ctx context.Context, fields domain.ItemFields) (*domain.Item, error) {
	var item domain.Item
	if err := c.do(ctx, http.MethodPost, "/api/items", fields, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateItem(ctx context.Context, id int64, fields domain.ItemFields) (*domain.Item, error) {
	var item domain.Item
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/items/%d", id), fields, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, nil)
}

func (c *Client) CreateLocation(ctx context.Context, fields domain.LocationFields) (*domain.Location, error) {
	var loc domain.Location
	if err := c.do(ctx, http.MethodPost, "/api/locations", fields, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (c *Client) UpdateLocation(ctx context.Context, id int64, fields domain.LocationFields) (*domain.Location, error) {
	var loc domain.Location
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/locations/%d", id), fields, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (c *Client) DeleteLocation(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/locations/%d", id), nil, nil)
}

// Health reports whether the API answers its health check.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
		Field string `json:"field"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		apiErr.Code, apiErr.Field, apiErr.Message = body.Code, body.Field, body.Error
		return apiErr
	}

	apiErr.Message = strings.TrimSpace(string(raw))
	if apiErr.Message == "" {
		apiErr.Message = fmt.Sprintf("server returned status %d", resp.StatusCode)
	}
	return apiErr
}
