package wisdom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	askPath    = "/ask"
	healthPath = "/health"
	agentsPath = "/agents"

	defaultCacheSize = 64
)

// HealthStatus is the subset of the service health report worth showing in
// the status line.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"system_version"`
}

// Client is a thin HTTP client for the reasoning service. Repeated queries
// hit an LRU of raw response bytes; cache hits re-decode so callers never
// share a payload map.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *lru.Cache[string, []byte]
}

func NewClient(baseURL string, cacheSize int) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("wisdom: service base URL is required")
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	// No request timeout: council deliberation can be slow and the UI stays
	// responsive while the call is in flight.
	return &Client{baseURL: trimmed, http: &http.Client{}, cache: cache}, nil
}

// Ask submits one query and returns the decoded JSON object. Transport
// errors, non-2xx statuses, and non-JSON bodies are returned as errors;
// shape anomalies inside a valid object are Normalize's problem, not Ask's.
func (c *Client) Ask(ctx context.Context, query string) (map[string]any, error) {
	key := strings.TrimSpace(query)
	if payload, ok := c.cache.Get(key); ok {
		return decodeObject(payload)
	}

	body, err := json.Marshal(map[string]string{"text": query})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+askPath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wisdom request failed on %s: %w", askPath, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wisdom http %d: %s", resp.StatusCode, compactSingleLine(string(payload), 240))
	}
	parsed, err := decodeObject(payload)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, payload)
	return parsed, nil
}

// Health probes the service once; used at startup for the status line.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	payload, err := c.get(ctx, healthPath)
	if err != nil {
		return status, err
	}
	if err := json.Unmarshal(payload, &status); err != nil {
		return status, errors.New("wisdom health returned a non-JSON payload")
	}
	return status, nil
}

// Agents fetches the council roster. The roster is decorative; callers fall
// back to DefaultCouncil when the endpoint is unavailable or empty.
func (c *Client) Agents(ctx context.Context) ([]string, error) {
	payload, err := c.get(ctx, agentsPath)
	if err != nil {
		return nil, err
	}
	var parsed struct {
		Agents map[string]struct {
			Name string `json:"name"`
		} `json:"agents"`
	}
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, errors.New("wisdom agents returned a non-JSON payload")
	}
	keys := make([]string, 0, len(parsed.Agents))
	for key := range parsed.Agents {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	names := make([]string, 0, len(keys))
	for _, key := range keys {
		if name := strings.TrimSpace(parsed.Agents[key].Name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wisdom request failed on %s: %w", path, err)
	}
	defer resp.Body.Close()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("wisdom http %d: %s", resp.StatusCode, compactSingleLine(string(payload), 240))
	}
	return payload, nil
}

func decodeObject(payload []byte) (map[string]any, error) {
	var parsed map[string]any
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return nil, errors.New("wisdom service returned a non-JSON payload")
	}
	return parsed, nil
}

func compactSingleLine(text string, limit int) string {
	compact := strings.Join(strings.Fields(text), " ")
	runes := []rune(compact)
	if len(runes) <= limit {
		return compact
	}
	return string(runes[:limit]) + "..."
}
