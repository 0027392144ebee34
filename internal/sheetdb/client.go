package sheetdb

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

	"github.com/suspectuso/send-approval-bot/internal/submission"
)

// Client is a SheetDB-style REST client for the submissions sheet
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

var _ submission.Store = (*Client)(nil)

// NewClient creates a new sheet client
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("sheet API error %d: %s", resp.StatusCode, string(data))
	}

	return data, nil
}

// List returns the full sheet snapshot in row order
func (c *Client) List(ctx context.Context) ([]submission.Record, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "", nil)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	records := make([]submission.Record, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
	}
	return records, nil
}

// Insert appends a row for the record
func (c *Client) Insert(ctx context.Context, rec submission.Record) error {
	_, err := c.doRequest(ctx, http.MethodPost, "", insertRequest{Data: []Row{rowFrom(rec)}})
	return err
}

// UpdateStatus patches the status column of the row keyed by dateKey
func (c *Client) UpdateStatus(ctx context.Context, dateKey string, status submission.Status) error {
	path := "/" + keyColumn + "/" + url.PathEscape(dateKey)
	body := patchRequest{Data: []statusPatch{{Status: string(status)}}}
	data, err := c.doRequest(ctx, http.MethodPatch, path, body)
	if err != nil {
		return err
	}

	var resp patchResponse
	if err := json.Unmarshal(data, &resp); err == nil && resp.Updated != nil && *resp.Updated == 0 {
		return fmt.Errorf("patch %s: %w", dateKey, submission.ErrNotFound)
	}
	return nil
}
