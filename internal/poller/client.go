package poller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wrtgvr/statusboard/internal/domain"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Client fetches the data shown on the board.
type Client interface {
	ServiceIDs(ctx context.Context) ([]domain.ServiceID, error)
	ServiceStatus(ctx context.Context, id domain.ServiceID) (domain.ServiceStatus, error)
}

// HTTPClient reads `GET /status` and `GET /status/{id}` from a status API.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) ServiceIDs(ctx context.Context) ([]domain.ServiceID, error) {
	var ids []domain.ServiceID
	if err := c.getJSON(ctx, "/status", &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (c *HTTPClient) ServiceStatus(ctx context.Context, id domain.ServiceID) (domain.ServiceStatus, error) {
	var status domain.ServiceStatus
	if err := c.getJSON(ctx, "/status/"+url.PathEscape(id.String()), &status); err != nil {
		return domain.ServiceStatus{}, err
	}
	return status, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("GET %s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("GET %s: decode response: %w", path, err)
	}
	return nil
}
