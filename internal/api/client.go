package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

var errNotObject = errors.New("expected a JSON object")

const (
	DefaultUsageURL  = "https://chatgpt.com/backend-api/wham/usage"
	DefaultUserAgent = "Mozilla/5.0 (compatible; codex-usage/0.1)"
	accountHeader    = "chatgpt-account-id"
)

// Client fetches rate-limit usage for an OAuth session. It makes exactly
// one request per Fetch, with no retries and no caching.
type Client struct {
	HTTPClient *http.Client
	URL        string
	UserAgent  string
	Logger     *slog.Logger
}

func NewClient(url, userAgent string, logger *slog.Logger) *Client {
	if url == "" {
		url = DefaultUsageURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		HTTPClient: &http.Client{},
		URL:        url,
		UserAgent:  userAgent,
		Logger:     logger,
	}
}

func (c *Client) Fetch(ctx context.Context, cred Credential) (*UsageSnapshot, error) {
	if !cred.IsOAuth() {
		return nil, ErrAPIKeyUnsupported
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+cred.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.UserAgent)
	if cred.AccountID != "" {
		req.Header.Set(accountHeader, cred.AccountID)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger.Debug("fetching usage", "url", c.URL, "account_scoped", cred.AccountID != "")
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach ChatGPT API: %w", err)
	}
	defer resp.Body.Close()
	logger.Debug("usage response", "status", resp.StatusCode)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &UnauthorizedError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if trimmed := bytes.TrimSpace(body); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, &MalformedResponseError{Raw: string(body), Err: errNotObject}
	}
	var usage usageResponse
	if err := json.Unmarshal(body, &usage); err != nil {
		return nil, &MalformedResponseError{Raw: string(body), Err: err}
	}
	return usage.snapshot(), nil
}
