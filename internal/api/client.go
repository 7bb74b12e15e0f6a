// Package api is the HTTP transport for the expense tracker REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"spese-client/internal/log"
)

const (
	headerRequestID     = "X-Request-ID"
	headerAuthorization = "Authorization"
	maxBodyBytes        = 4 << 20
)

// TokenSource returns the bearer token to attach, or "" for none.
type TokenSource func() string

// Config holds client configuration.
type Config struct {
	BaseURL string
	// Timeout bounds a whole exchange; zero means no client-side limit.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *log.Logger
	Token      TokenSource
}

// Client talks to the expense tracker API. It never retries and never caches.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      TokenSource
	logger     *log.Logger
	calls      *log.StructuredLogger
}

// New creates a client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported base URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return nil, errors.New("base URL has no host")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Nop()
	}
	logger = logger.WithComponent(log.ComponentAPI)

	return &Client{
		baseURL:    strings.TrimRight(u.String(), "/"),
		httpClient: httpClient,
		token:      cfg.Token,
		logger:     logger,
		calls:      log.NewStructuredLogger(logger),
	}, nil
}

// SignUp registers a new account.
func (c *Client) SignUp(ctx context.Context, creds Credentials) (*Response[AuthResponse], error) {
	return do[AuthResponse](ctx, c, http.MethodPost, "/auth/signup", nil, creds)
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds Credentials) (*Response[AuthResponse], error) {
	return do[AuthResponse](ctx, c, http.MethodPost, "/auth/login", nil, creds)
}

func (c *Client) CreateExpense(ctx context.Context, req ExpenseCreateRequest) (*Response[Expense], error) {
	return do[Expense](ctx, c, http.MethodPost, "/expenses", nil, req)
}

func (c *Client) GetExpense(ctx context.Context, id, userID string) (*Response[Expense], error) {
	return do[Expense](ctx, c, http.MethodGet, expensePath(id), userQuery(userID), nil)
}

func (c *Client) UpdateExpense(ctx context.Context, id, userID string, req ExpenseUpdateRequest) (*Response[Expense], error) {
	return do[Expense](ctx, c, http.MethodPut, expensePath(id), userQuery(userID), req)
}

func (c *Client) DeleteExpense(ctx context.Context, id, userID string) (*Response[APIResponse], error) {
	return do[APIResponse](ctx, c, http.MethodDelete, expensePath(id), userQuery(userID), nil)
}

// ListExpenses lists the user's expenses, newest first as ordered by the server.
func (c *Client) ListExpenses(ctx context.Context, userID string, params ListParams) (*Response[[]Expense], error) {
	q := userQuery(userID)
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.StartDate != "" {
		q.Set("start_date", params.StartDate)
	}
	if params.EndDate != "" {
		q.Set("end_date", params.EndDate)
	}
	return do[[]Expense](ctx, c, http.MethodGet, "/expenses", q, nil)
}

func (c *Client) DashboardSummary(ctx context.Context, userID string) (*Response[DashboardSummary], error) {
	return do[DashboardSummary](ctx, c, http.MethodGet, "/dashboard/summary", userQuery(userID), nil)
}

// Health checks that the API is reachable.
func (c *Client) Health(ctx context.Context) (*Response[HealthResponse], error) {
	return do[HealthResponse](ctx, c, http.MethodGet, "/health", nil, nil)
}

func expensePath(id string) string {
	return "/expenses/" + url.PathEscape(id)
}

func userQuery(userID string) url.Values {
	return url.Values{"user_id": []string{userID}}
}

func do[T any](ctx context.Context, c *Client, method, path string, query url.Values, in any) (*Response[T], error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	rawQuery := query.Encode()
	if rawQuery != "" {
		target += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != nil {
		if tok := c.token(); tok != "" {
			req.Header.Set(headerAuthorization, "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "API request failed",
			log.FieldMethod, method,
			log.FieldPath, path,
			log.FieldRequestID, requestID,
			log.FieldError, err)
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	c.calls.LogAPICall(ctx, method, path, rawQuery, requestID, resp.StatusCode, time.Since(start))

	out := &Response[T]{
		StatusCode: resp.StatusCode,
		Status:     reasonPhrase(resp),
	}
	if !out.IsSuccessful() {
		out.ErrorBody = raw
		return out, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return out, nil
	}
	var decoded T
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	out.Body = &decoded
	return out, nil
}
