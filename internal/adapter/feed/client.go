package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/outage-listing-service/internal/domain"
)

// maxErrorBody bounds how much of a failed response is echoed into the error.
const maxErrorBody = 512

// Client fetches the full outage collection from the feed endpoint.
type Client struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a feed client with the given request timeout.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Fetch performs one GET and decodes the JSON array body. A JSON null body
// decodes to an empty collection.
func (c *Client) Fetch(ctx context.Context) ([]domain.Outage, error) {
	body, err := c.FetchRaw(ctx)
	if err != nil {
		return nil, err
	}
	return Decode(body)
}

// FetchRaw performs one GET and returns the undecoded body.
func (c *Client) FetchRaw(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("outage feed returned %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	c.logger.Debug("outage feed fetched", "url", c.url, "bytes", len(body))
	return body, nil
}

// Decode parses a feed body.
func Decode(body []byte) ([]domain.Outage, error) {
	var outages []domain.Outage
	if err := json.Unmarshal(body, &outages); err != nil {
		return nil, fmt.Errorf("decode outage feed: %w", err)
	}
	if outages == nil {
		outages = []domain.Outage{}
	}
	return outages, nil
}
