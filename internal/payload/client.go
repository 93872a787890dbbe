// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package payload implements the content store contract against the REST
// API of a Payload CMS instance.
package payload

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/olegiv/aryes-site/internal/content"
	"github.com/olegiv/aryes-site/internal/docstore"
)

const (
	defaultTimeout = 10 * time.Second
	// maxErrorBody caps how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// Options configures a Client.
type Options struct {
	BaseURL string
	// APIKey enables API key authentication for AuthCollection.
	APIKey         string
	AuthCollection string
	// RPS limits outgoing requests per second. Zero disables the limit.
	RPS        float64
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client reads content from the Payload REST API. It is safe for
// concurrent use.
type Client struct {
	base           *url.URL
	apiKey         string
	authCollection string
	http           *http.Client
	limiter        *rate.Limiter
	logger         *slog.Logger
}

// APIError is a non successful response of the REST API.
type APIError struct {
	Method   string
	Path     string
	Status   int
	Messages []string
}

func (e *APIError) Error() string {
	msg := http.StatusText(e.Status)
	if len(e.Messages) > 0 {
		msg = strings.Join(e.Messages, "; ")
	}
	return fmt.Sprintf("payload: %s %s: %d %s", e.Method, e.Path, e.Status, msg)
}

// New creates a client.
func New(opts Options, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("payload: invalid base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("payload: base URL %q must be absolute", opts.BaseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		base:           base,
		apiKey:         opts.APIKey,
		authCollection: opts.AuthCollection,
		http:           httpClient,
		logger:         logger,
	}
	if c.authCollection == "" {
		c.authCollection = "users"
	}
	if opts.RPS > 0 {
		burst := max(1, int(opts.RPS))
		c.limiter = rate.NewLimiter(rate.Limit(opts.RPS), burst)
	}
	return c, nil
}

// FindGlobal implements docstore.Store. A global that was never saved is
// reported as docstore.ErrNotFound.
func (c *Client) FindGlobal(ctx context.Context, slug string, opts docstore.Options) (json.RawMessage, error) {
	raw, err := c.get(ctx, "/api/globals/"+url.PathEscape(slug), readParams(opts))
	if err != nil {
		return nil, err
	}
	if isEmptyGlobal(raw) {
		return nil, docstore.ErrNotFound
	}
	return raw, nil
}

// FindByID implements docstore.Store.
func (c *Client) FindByID(ctx context.Context, collection string, id content.ID, opts docstore.Options) (json.RawMessage, error) {
	path := "/api/" + url.PathEscape(collection) + "/" + id.String()
	return c.get(ctx, path, readParams(opts))
}

// Find implements docstore.Store.
func (c *Client) Find(ctx context.Context, collection string, q docstore.Query) (*docstore.Result, error) {
	params := readParams(q.Options)
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	for _, cond := range q.Where {
		params.Set(fmt.Sprintf("where[%s][%s]", cond.Field, cond.Op), strings.Join(cond.Values, ","))
	}

	raw, err := c.get(ctx, "/api/"+url.PathEscape(collection), params)
	if err != nil {
		return nil, err
	}
	var res docstore.Result
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("payload: decoding %s list: %w", collection, err)
	}
	return &res, nil
}

// Ping checks that the API answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.get(ctx, "/api/globals/"+content.GlobalSiteSettings, url.Values{"depth": {"0"}})
	if errors.Is(err, docstore.ErrNotFound) {
		return nil
	}
	return err
}

func readParams(opts docstore.Options) url.Values {
	params := url.Values{}
	params.Set("depth", strconv.Itoa(opts.Depth))
	if opts.Locale != "" {
		params.Set("locale", string(opts.Locale))
		params.Set("fallback-locale", string(opts.Fallback()))
	}
	return params
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("payload: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.authCollection+" API-Key "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payload: GET %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("payload request",
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, docstore.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			Method:   http.MethodGet,
			Path:     path,
			Status:   resp.StatusCode,
			Messages: errorMessages(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("payload: reading %s: %w", path, err)
	}
	return json.RawMessage(body), nil
}

func errorMessages(body []byte) []string {
	var envelope struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		if text := strings.TrimSpace(string(body)); text != "" {
			return []string{text}
		}
		return nil
	}
	out := make([]string, 0, len(envelope.Errors))
	for _, e := range envelope.Errors {
		out = append(out, e.Message)
	}
	return out
}

// metaKeys are present on every global response, saved or not.
var metaKeys = map[string]bool{
	"id":         true,
	"globalType": true,
	"createdAt":  true,
	"updatedAt":  true,
}

func isEmptyGlobal(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return true
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return false
	}
	for k := range fields {
		if !metaKeys[k] {
			return false
		}
	}
	return true
}
