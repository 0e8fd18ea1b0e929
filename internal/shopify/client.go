// Package shopify is a small client for the Shopify Admin GraphQL API. It
// covers the handful of calls the wizard and the CLI need: product search,
// collection listing and app subscription creation.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// ErrUnauthorized is returned when the API rejects the access token.
var ErrUnauthorized = errors.New("shopify: unauthorized")

const (
	DefaultAPIVersion        = "2024-01"
	DefaultRequestsPerSecond = 2.0
	DefaultTimeout           = 10 * time.Second

	maxErrorBody = 512
)

// GraphQLError carries the messages of a response's top-level "errors" array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "shopify: " + strings.Join(e.Messages, "; ")
}

// Config configures a Client.
type Config struct {
	Shop              string // myshop.myshopify.com
	APIVersion        string
	AccessToken       string
	RequestsPerSecond float64
	Timeout           time.Duration

	// Endpoint overrides the URL derived from Shop and APIVersion.
	Endpoint   string
	HTTPClient *http.Client
}

// Client talks to the Admin GraphQL endpoint of one shop.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	limiter  *rate.Limiter
}

// New creates a client. Zero config values fall back to the package defaults.
func New(cfg Config) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s/admin/api/%s/graphql.json", cfg.Shop, cfg.APIVersion)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		endpoint: endpoint,
		token:    cfg.AccessToken,
		http:     httpClient,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
}

// Endpoint returns the GraphQL URL the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Do executes a GraphQL document and returns the "data" object of the
// response. Top-level GraphQL errors are returned as *GraphQLError.
func (c *Client) Do(ctx context.Context, query string, variables map[string]any) (gjson.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return gjson.Result{}, err
	}

	body, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("shopify request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug().
		Str("component", "shopify").
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("graphql call")

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return gjson.Result{}, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return gjson.Result{}, fmt.Errorf("shopify: unexpected status %d: %s", resp.StatusCode, truncate(raw))
	}

	if !gjson.ValidBytes(raw) {
		return gjson.Result{}, fmt.Errorf("shopify: invalid JSON response: %s", truncate(raw))
	}

	parsed := gjson.ParseBytes(raw)
	if errs := parsed.Get("errors"); errs.Exists() {
		gqlErr := &GraphQLError{}
		if errs.IsArray() {
			for _, e := range errs.Array() {
				gqlErr.Messages = append(gqlErr.Messages, e.Get("message").String())
			}
		} else {
			gqlErr.Messages = append(gqlErr.Messages, errs.String())
		}
		return gjson.Result{}, gqlErr
	}

	return parsed.Get("data"), nil
}

func truncate(b []byte) string {
	s := strings.TrimSpace(string(b))
	return ansi.Truncate(s, maxErrorBody, "...")
}
