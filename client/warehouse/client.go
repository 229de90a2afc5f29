package warehouse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client is the HTTP client for the inventory API. One instance is safe for
// concurrent use. There is no retry policy; callers decide what to do with a
// failed call.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, e.g. to share a cookie
// jar with the sales-order login flow.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a Client for the API at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ItemListOptions filters ListItems.
type ItemListOptions struct {
	Unassigned bool
	Barcode    string
}

// CreateItemParams is the body of a check-in request. Zero Name and Quantity
// let the server apply its defaults.
type CreateItemParams struct {
	Barcode  string         `json:"barcode"`
	Name     string         `json:"name,omitempty"`
	Quantity int            `json:"quantity,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Location *uuid.UUID     `json:"location,omitempty"`
}

// UpdateItemParams is a partial item update. Nil fields are omitted from the
// request and left unchanged by the server. Location distinguishes "omit"
// (nil) from an assignment or an explicit null.
type UpdateItemParams struct {
	Barcode  *string        `json:"barcode,omitempty"`
	Name     *string        `json:"name,omitempty"`
	Quantity *int           `json:"quantity,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	Location *LocationRef   `json:"location,omitempty"`
}

// ListItems fetches items, optionally filtered to the pending pool or a barcode.
func (c *Client) ListItems(ctx context.Context, opts ItemListOptions) ([]Item, error) {
	q := url.Values{}
	if opts.Unassigned {
		q.Set("unassigned", "true")
	}
	if opts.Barcode != "" {
		q.Set("barcode", opts.Barcode)
	}
	path := "/api/items"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var items []Item
	if err := c.do(ctx, http.MethodGet, path, nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem fetches one item by id.
func (c *Client) GetItem(ctx context.Context, id uuid.UUID) (*Item, error) {
	var item Item
	if err := c.do(ctx, http.MethodGet, "/api/items/"+id.String(), nil, "", &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem checks in a new item.
func (c *Client) CreateItem(ctx context.Context, params CreateItemParams) (*Item, error) {
	var item Item
	if err := c.doJSON(ctx, http.MethodPost, "/api/items", params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies a partial update; used for location assignment.
func (c *Client) UpdateItem(ctx context.Context, id uuid.UUID, params UpdateItemParams) (*Item, error) {
	var item Item
	if err := c.doJSON(ctx, http.MethodPut, "/api/items/"+id.String(), params, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/items/"+id.String(), nil, "", nil)
}

// CreateLocationParams is the body of a location create or update. Image is
// optional; when set the request is sent as multipart/form-data.
type CreateLocationParams struct {
	Name        string
	Description string
	Image       io.Reader
	ImageName   string // filename for the multipart part, defaults to "image.jpg"
}

// ListLocations fetches all locations.
func (c *Client) ListLocations(ctx context.Context) ([]Location, error) {
	var locs []Location
	if err := c.do(ctx, http.MethodGet, "/api/locations", nil, "", &locs); err != nil {
		return nil, err
	}
	return locs, nil
}

// GetLocation fetches one location by id.
func (c *Client) GetLocation(ctx context.Context, id uuid.UUID) (*Location, error) {
	var loc Location
	if err := c.do(ctx, http.MethodGet, "/api/locations/"+id.String(), nil, "", &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// CreateLocation creates a location, uploading the photo when one is supplied.
func (c *Client) CreateLocation(ctx context.Context, params CreateLocationParams) (*Location, error) {
	var loc Location
	if err := c.doLocationForm(ctx, http.MethodPost, "/api/locations", params, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// UpdateLocation updates a location; a new photo replaces the stored one.
func (c *Client) UpdateLocation(ctx context.Context, id uuid.UUID, params CreateLocationParams) (*Location, error) {
	var loc Location
	if err := c.doLocationForm(ctx, http.MethodPut, "/api/locations/"+id.String(), params, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// DeleteLocation removes a location. Items assigned to it become pending.
func (c *Client) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/locations/"+id.String(), nil, "", nil)
}

func (c *Client) doLocationForm(ctx context.Context, method, path string, params CreateLocationParams, out any) error {
	if params.Image == nil {
		body := map[string]string{"name": params.Name}
		if params.Description != "" {
			body["description"] = params.Description
		}
		return c.doJSON(ctx, method, path, body, out)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("name", params.Name); err != nil {
		return fmt.Errorf("write form field: %w", err)
	}
	if params.Description != "" {
		if err := mw.WriteField("description", params.Description); err != nil {
			return fmt.Errorf("write form field: %w", err)
		}
	}
	name := params.ImageName
	if name == "" {
		name = "image.jpg"
	}
	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, params.Image); err != nil {
		return fmt.Errorf("copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close form: %w", err)
	}
	return c.do(ctx, method, path, &buf, mw.FormDataContentType(), out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, method, path, bytes.NewReader(payload), "application/json", out)
}

// do sends the request and decodes a 2xx body into out (when non-nil) or an
// error body into *APIError.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var body struct {
		Message string       `json:"message"`
		Errors  []FieldError `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
		apiErr.Message = body.Message
		apiErr.Fields = body.Errors
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
