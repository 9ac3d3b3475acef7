// Package api implements the habit-tracker backend client: a thin JSON
// transport plus one resource operation per backend endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"habitdash/internal/logger"
)

// Transport performs single JSON round trips against the backend. One
// attempt per call: no retries, no backoff. The caller decides what to do
// on failure.
type Transport struct {
	baseURL string
	client  *http.Client
	headers map[string]string
}

// NewTransport creates a Transport for the given base URL. Extra headers,
// if any, are attached to every request after the defaults.
func NewTransport(baseURL string, timeout time.Duration, headers map[string]string) *Transport {
	return &Transport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		headers: headers,
	}
}

// Do performs one round trip. The method defaults to POST when a body is
// present, else GET. A non-nil out receives the decoded JSON response;
// responses without a JSON content type (empty delete acknowledgements,
// 204s) resolve without touching out.
func (t *Transport) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	if method == "" {
		method = http.MethodGet
		if body != nil {
			method = http.MethodPost
		}
	}

	url := t.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		logger.Warn("request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return t.asAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		// Empty-body acknowledgements resolve to the zero value.
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s %s: %w", method, path, err)
	}
	return nil
}

func (t *Transport) asAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: resp.Status}
	var serverErr struct {
		Message string `json:"message"`
	}
	if isJSON(resp.Header.Get("Content-Type")) {
		if err := json.NewDecoder(resp.Body).Decode(&serverErr); err == nil && serverErr.Message != "" {
			apiErr.Message = serverErr.Message
		}
	}
	return apiErr
}

func isJSON(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
