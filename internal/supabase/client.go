// Package supabase implements the web storage backend over the Supabase
// PostgREST API using the service-role key, which bypasses row-level
// security the same way the hosted app's server routes do.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dangdinh/giapha/pkg/types"
)

// Client is a minimal PostgREST client scoped to what backup and restore
// need: full-table reads, full-table deletes, and bulk upserts.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
}

// NewClient creates a Client for the project at rawURL. The URL is the
// project root (https://xyz.supabase.co); the /rest/v1 prefix is added here.
func NewClient(rawURL, serviceKey string) (*Client, error) {
	if rawURL == "" {
		return nil, types.ErrSupabaseURLMissing
	}
	if serviceKey == "" {
		return nil, types.ErrServiceKeyMissing
	}
	return &Client{
		baseURL:    strings.TrimRight(rawURL, "/") + "/rest/v1",
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// SelectAll fetches every row of a table.
func (c *Client) SelectAll(ctx context.Context, table string) ([]types.Row, error) {
	body, err := c.do(ctx, http.MethodGet, table+"?select=*", nil, nil)
	if err != nil {
		return nil, err
	}
	var rows []types.Row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decoding %s rows: %w", table, err)
	}
	return rows, nil
}

// DeleteAll removes every row of a table. PostgREST refuses an unfiltered
// DELETE, so the filter matches all rows by non-null id.
func (c *Client) DeleteAll(ctx context.Context, table string) error {
	_, err := c.do(ctx, http.MethodDelete, table+"?id=not.is.null", nil, nil)
	return err
}

// Upsert inserts rows with merge-on-conflict semantics keyed on id, so a
// re-restored archive overwrites rather than duplicates.
func (c *Client) Upsert(ctx context.Context, table string, rows []types.Row) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encoding %s rows: %w", table, err)
	}
	headers := map[string]string{
		"Prefer": "resolution=merge-duplicates",
	}
	_, err = c.do(ctx, http.MethodPost, table+"?on_conflict=id", payload, headers)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, extra map[string]string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%s %s: %s", method, path, restError(resp.StatusCode, data))
	}
	return data, nil
}

// restError extracts the PostgREST error message from a failed response,
// falling back to the HTTP status.
func restError(status int, body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return http.StatusText(status)
}
