package tablestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultTimeout = 15 * time.Second

	// maxRetries bounds the per-call retry loop for transient service
	// errors. The reconciler itself never retries; retrying here is safe
	// because every store operation is idempotent.
	maxRetries = 3
)

// errNotFound marks a 404 from the table service.
var errNotFound = errors.New("table not found")

// HTTPStore talks to the table service's JSON API using bearer-token
// authentication.
type HTTPStore struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPStore creates a client for the table service at baseURL.
func NewHTTPStore(baseURL, token string, timeout time.Duration) (*HTTPStore, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("table service URL is required")
	}
	if token == "" {
		return nil, fmt.Errorf("table service token is required")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &HTTPStore{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// TableExists implements Store.
func (s *HTTPStore) TableExists(ctx context.Context, name string) (bool, error) {
	err := s.do(ctx, http.MethodGet, "/tables/"+url.PathEscape(name), nil, nil)
	if errors.Is(err, errNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking table %s: %w", name, err)
	}
	return true, nil
}

// CreateTable implements Store.
func (s *HTTPStore) CreateTable(ctx context.Context, name string, header []string) error {
	payload := map[string]interface{}{
		"name":   name,
		"header": header,
	}
	if err := s.do(ctx, http.MethodPost, "/tables", payload, nil); err != nil {
		return fmt.Errorf("creating table %s: %w", name, err)
	}
	return nil
}

// ReadRange implements Store.
func (s *HTTPStore) ReadRange(ctx context.Context, name string, fromRow, toRow, cols int) ([][]string, error) {
	path := fmt.Sprintf("/tables/%s/rows?from=%d&to=%d&cols=%d",
		url.PathEscape(name), fromRow, toRow, cols)

	var out struct {
		Rows [][]string `json:"rows"`
	}
	if err := s.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, fmt.Errorf("reading rows from %s: %w", name, err)
	}

	rows := make([][]string, 0, len(out.Rows))
	for _, row := range out.Rows {
		padded := make([]string, cols)
		copy(padded, row)
		rows = append(rows, padded)
	}
	return rows, nil
}

// AppendRow implements Store.
func (s *HTTPStore) AppendRow(ctx context.Context, name string, row []string) error {
	payload := map[string]interface{}{"values": row}
	path := "/tables/" + url.PathEscape(name) + "/rows"
	if err := s.do(ctx, http.MethodPost, path, payload, nil); err != nil {
		return fmt.Errorf("appending row to %s: %w", name, err)
	}
	return nil
}

// UpdateRow implements Store.
func (s *HTTPStore) UpdateRow(ctx context.Context, name string, rowIndex int, row []string) error {
	payload := map[string]interface{}{"values": row}
	path := fmt.Sprintf("/tables/%s/rows/%d", url.PathEscape(name), rowIndex)
	if err := s.do(ctx, http.MethodPut, path, payload, nil); err != nil {
		return fmt.Errorf("updating row %d in %s: %w", rowIndex, name, err)
	}
	return nil
}

// do issues one API call, retrying transient failures (network errors
// and 5xx responses) with exponential backoff. Client errors and decode
// failures are permanent.
func (s *HTTPStore) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshaling payload: %w", err)
		}
	}

	operation := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+s.token)
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := s.httpClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(errNotFound)
		case resp.StatusCode >= 500:
			// Don't include response body in error to prevent information leakage
			return fmt.Errorf("table service error (status %d)", resp.StatusCode)
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			return backoff.Permanent(fmt.Errorf("table service error (status %d)", resp.StatusCode))
		}

		if out != nil {
			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return backoff.Permanent(fmt.Errorf("decoding response: %w", err))
			}
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	return backoff.Retry(operation, policy)
}
