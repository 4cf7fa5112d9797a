// Package mist is a minimal client for the Juniper Mist cloud REST API,
// covering the endpoints the mistctl commands need: admin invites, org and
// site inventories, gateway device stats, and firmware snapshots.
package mist

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

	"github.com/mistops/mistctl/pkg/util"
)

// Client is an authenticated HTTP client for one Mist cloud environment.
type Client struct {
	baseURL    string
	apiToken   string
	username   string
	password   string
	httpClient *http.Client
}

// NewClient creates a Client from resolved credentials. Token auth wins
// over basic auth when both are present.
func NewClient(creds *Credentials) *Client {
	return &Client{
		baseURL:  creds.BaseURL(),
		apiToken: creds.APIToken,
		username: creds.Username,
		password: creds.Password,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// BaseURL returns the API base URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is a non-2xx response from the Mist cloud.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.Status, truncate(e.Body, 200))
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

func (c *Client) newRequest(ctx context.Context, method, path string, params url.Values, payload interface{}) (*http.Request, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var bodyReader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshaling body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Token "+c.apiToken)
	} else {
		req.SetBasicAuth(c.username, c.password)
	}
	return req, nil
}

// do executes one request and returns the body and response. Non-2xx
// responses come back as *APIError with the body excerpt attached.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, payload interface{}) ([]byte, *http.Response, error) {
	req, err := c.newRequest(ctx, method, path, params, payload)
	if err != nil {
		return nil, nil, err
	}

	util.Debugf("%s %s", method, req.URL.Path)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return body, resp, &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: string(body)}
	}
	return body, resp, nil
}

// GetJSON performs an authenticated GET and unmarshals the response into dest.
func (c *Client) GetJSON(ctx context.Context, path string, params url.Values, dest interface{}) error {
	body, _, err := c.do(ctx, http.MethodGet, path, params, nil)
	if err != nil {
		return err
	}
	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("parsing response from %s: %w", path, err)
	}
	return nil
}

// PostJSON performs an authenticated POST with a JSON body. When dest is
// non-nil, the response body is unmarshaled into it. The HTTP status code
// is returned even on error so callers can classify per-item outcomes.
func (c *Client) PostJSON(ctx context.Context, path string, payload, dest interface{}) (int, error) {
	body, resp, err := c.do(ctx, http.MethodPost, path, nil, payload)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if err != nil {
		return status, err
	}
	if dest != nil && len(body) > 0 {
		if err := json.Unmarshal(body, dest); err != nil {
			return status, fmt.Errorf("parsing response from %s: %w", path, err)
		}
	}
	return status, nil
}

func truncate(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
