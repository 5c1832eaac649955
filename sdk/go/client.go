package ostracksdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ostrack/internal/domain"
)

// Client is a minimal service-order HTTP API client.
type Client struct {
	BaseURL     string
	BasePath    string
	BearerToken string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// New creates a client with sane defaults.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:  baseURL,
		BasePath: "api",
		Timeout:  10 * time.Second,
	}
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d body=%s", e.StatusCode, e.Body)
}

// TokenResponse is the login result.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

// Filters narrow List and ExportCSV calls. Zero values impose no
// constraint.
type Filters struct {
	Search    string
	Status    string
	PAT       string
	Serial    string
	Unit      string
	DateStart string
	DateEnd   string
}

func (f Filters) query() string {
	q := url.Values{}
	add := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	add("search", f.Search)
	add("status", f.Status)
	add("pat", f.PAT)
	add("equipment_serial", f.Serial)
	add("unit", f.Unit)
	add("date_start", f.DateStart)
	add("date_end", f.DateEnd)
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Login authenticates and stores the bearer token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	var resp TokenResponse
	err := c.do(ctx, http.MethodPost, "auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, &resp)
	if err == nil {
		c.BearerToken = resp.AccessToken
	}
	return resp, err
}

// Create stores a new service order.
func (c *Client) Create(ctx context.Context, order domain.ServiceOrder) (domain.ServiceOrder, error) {
	var resp domain.ServiceOrder
	err := c.do(ctx, http.MethodPost, "service-orders", order, &resp)
	return resp, err
}

// List returns orders matching the filters, urgent first.
func (c *Client) List(ctx context.Context, f Filters) ([]domain.ServiceOrder, error) {
	var resp []domain.ServiceOrder
	err := c.do(ctx, http.MethodGet, "service-orders"+f.query(), nil, &resp)
	return resp, err
}

// Get fetches one order by id.
func (c *Client) Get(ctx context.Context, id string) (domain.ServiceOrder, error) {
	var resp domain.ServiceOrder
	err := c.do(ctx, http.MethodGet, "service-orders/"+url.PathEscape(id), nil, &resp)
	return resp, err
}

// Update replaces the whole stored record.
func (c *Client) Update(ctx context.Context, id string, order domain.ServiceOrder) (domain.ServiceOrder, error) {
	var resp domain.ServiceOrder
	err := c.do(ctx, http.MethodPut, "service-orders/"+url.PathEscape(id), order, &resp)
	return resp, err
}

// Delete removes an order.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "service-orders/"+url.PathEscape(id), nil, nil)
}

// Stats returns the per-status counts plus "total".
func (c *Client) Stats(ctx context.Context) (map[string]int, error) {
	var resp map[string]int
	err := c.do(ctx, http.MethodGet, "service-orders/stats", nil, &resp)
	return resp, err
}

// ExportCSV downloads the raw CSV report.
func (c *Client) ExportCSV(ctx context.Context, f Filters) ([]byte, error) {
	return c.raw(ctx, "service-orders/export"+f.query())
}

// Document downloads the printable HTML document for one order.
func (c *Client) Document(ctx context.Context, id string) ([]byte, error) {
	return c.raw(ctx, "service-orders/"+url.PathEscape(id)+"/document")
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	resp, err := c.request(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *Client) raw(ctx context.Context, endpoint string) ([]byte, error) {
	resp, err := c.request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(b)}
	}
	return b, nil
}

func (c *Client) request(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	u := c.base() + "/" + strings.Trim(c.BasePath, "/") + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}
	return c.HTTPClient.Do(req)
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
