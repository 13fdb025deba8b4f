// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api is the HTTP client for the backend content API. It is the only
// place that talks to the backend: it normalizes the several envelope shapes
// the API is known to return, coerces loosely-typed fields at the ingest
// boundary, resolves storage-relative media paths to absolute URLs, and
// classifies failures for user-facing reporting.
//
// Read paths (List*) never return an error: a failed or malformed response is
// logged and degrades to an empty value, so page handlers always render a
// populated-or-empty view. Write paths return a classified *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

// maxResponseSize caps how much of a backend response we are willing to read.
const maxResponseSize = 10 << 20 // 10 MB

// Client is the backend API client. It is constructed once from config and
// injected into handlers; there is no package-level base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
}

// Config holds client construction parameters.
type Config struct {
	BaseURL string        // Backend origin, no trailing slash
	Timeout time.Duration // Per-request timeout (0 = 30s)
	Logger  *slog.Logger  // Defaults to slog.Default()
}

// New creates a backend API client. Cookies set by the backend are retained
// across requests (the backend expects credentialed requests).
func New(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	jar, _ := cookiejar.New(nil)

	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Jar:     jar,
		},
		log: cfg.Logger,
	}
}

// BaseURL returns the configured backend origin.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the wrapping object the backend puts around payloads. Either
// "status" (string) or "success" (bool) may be present; some endpoints return
// the bare payload with no envelope at all.
type envelope struct {
	Status  json.RawMessage `json:"status"`
	Success json.RawMessage `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// unwrapData returns the payload bytes from a response body, looking through
// an envelope when one is present.
func unwrapData(body []byte) json.RawMessage {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return body
}

// decodeList decodes a list response in any of the accepted envelope shapes:
// {status, data: [...]}, {success, data: [...]}, or a bare array.
func decodeList[T any](body []byte) ([]T, error) {
	var items []T
	if err := json.Unmarshal(unwrapData(body), &items); err != nil {
		return nil, fmt.Errorf("decoding list payload: %w", err)
	}
	return items, nil
}

// decodeItem decodes a single-item response, enveloped or bare.
func decodeItem[T any](body []byte) (T, error) {
	var item T
	if err := json.Unmarshal(unwrapData(body), &item); err != nil {
		return item, fmt.Errorf("decoding item payload: %w", err)
	}
	return item, nil
}

// get issues a GET request and returns the raw body. Non-2xx responses and
// transport failures are returned as *Error.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// send issues a bodyless mutation (DELETE) or a JSON mutation (PATCH with a
// small payload) and discards the response body.
func (c *Client) send(ctx context.Context, method, path string, jsonBody any) error {
	var body io.Reader
	if jsonBody != nil {
		data, err := json.Marshal(jsonBody)
		if err != nil {
			return &Error{Kind: KindNetwork, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if jsonBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	_, err = c.do(req)
	return err
}

// submit posts a multipart form. Every mutation goes through multipart, even
// without file fields, to keep the backend's handling uniform.
func (c *Client) submit(ctx context.Context, path string, form *Form) error {
	contentType, body := form.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &Error{Kind: KindNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	_, err = c.do(req)
	return err
}

// do executes a request and classifies failures. The response body is read in
// full (bounded) so the connection can be reused.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Error{Kind: KindNetwork, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.errorFromResponse(resp.StatusCode, body)
	}

	return body, nil
}

// errorFromResponse builds a classified *Error from a non-2xx response.
// The backend reports errors as {message, errors?: {field: [messages]}}.
func (c *Client) errorFromResponse(status int, body []byte) *Error {
	apiErr := &Error{
		Kind:       kindForStatus(status),
		StatusCode: status,
	}

	var payload struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		apiErr.Message = payload.Message
		apiErr.Fields = payload.Errors
	}

	return apiErr
}

// fetchList is the shared read path: GET, decode with envelope tolerance,
// and degrade to an empty slice on any failure.
func fetchList[T any](ctx context.Context, c *Client, path string, query url.Values) []T {
	body, err := c.get(ctx, path, query)
	if err != nil {
		c.log.Error("backend list fetch failed", "path", path, "error", err)
		return nil
	}

	items, err := decodeList[T](body)
	if err != nil {
		c.log.Error("backend list decode failed", "path", path, "error", err)
		return nil
	}
	return items
}

// fetchItem is the shared single-item read path. Unlike lists, callers need
// to distinguish "not found" from "present", so the error is returned.
func fetchItem[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var zero T
	body, err := c.get(ctx, path, query)
	if err != nil {
		return zero, err
	}
	return decodeItem[T](body)
}
