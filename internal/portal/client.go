// Package portal searches a metadata portal's /search/ endpoint and caches
// search results as JSON files.
package portal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Jeffail/gabs"
	"go.uber.org/zap"
)

// DefaultPageSize is the number of items requested per search page.
const DefaultPageSize = 100

// Client queries a portal server.
type Client struct {
	keypair    Keypair
	pageSize   int
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a client authenticating with kp.
func NewClient(kp Keypair) *Client {
	return &Client{
		keypair:  kp,
		pageSize: DefaultPageSize,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: zap.NewNop(),
	}
}

// SetLogger sets the logger for progress messages.
func (c *Client) SetLogger(l *zap.Logger) {
	c.logger = l
}

// SetPageSize sets the number of items requested per page.
func (c *Client) SetPageSize(n int) {
	if n > 0 {
		c.pageSize = n
	}
}

// SetHTTPClient replaces the HTTP client.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// VariantParams returns search parameters for the variant samples of one
// sample in a processed file. Sample "all" returns every sample.
func VariantParams(file, sample string) url.Values {
	params := url.Values{
		"type": {"VariantSample"},
		"file": {file},
	}
	if sample != "all" {
		params.Set("CALL_INFO", sample+"_sample")
	}
	return params
}

// TypeParams returns search parameters for every item of a type, e.g. "Gene".
func TypeParams(itemType string) url.Values {
	return url.Values{"type": {itemType}}
}

// Search returns every item matching params, following pages until the
// result is exhausted. The result is a JSON array container.
func (c *Client) Search(ctx context.Context, params url.Values) (*gabs.Container, error) {
	var items []interface{}
	for from := 0; ; {
		page, total, err := c.searchPage(ctx, params, from)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)
		from += len(page)

		c.logger.Debug("search page",
			zap.Int("from", from-len(page)),
			zap.Int("items", len(page)),
			zap.Int("total", total))

		if len(page) < c.pageSize || (total >= 0 && from >= total) {
			break
		}
	}

	if items == nil {
		items = []interface{}{}
	}
	return gabs.Consume(items)
}

// searchPage fetches one page. total is -1 if the response does not report it.
func (c *Client) searchPage(ctx context.Context, params url.Values, from int) ([]interface{}, int, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	q.Set("format", "json")
	q.Set("limit", strconv.Itoa(c.pageSize))
	q.Set("from", strconv.Itoa(from))

	u := strings.TrimRight(c.keypair.Server, "/") + "/search/?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create search request: %w", err)
	}
	if c.keypair.Key != "" {
		req.SetBasicAuth(c.keypair.Key, c.keypair.Secret)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return nil, 0, fmt.Errorf("search error %d: %s", resp.StatusCode, string(body))
	}

	parsed, err := gabs.ParseJSON(body)
	if err != nil {
		if resp.StatusCode == http.StatusNotFound {
			return nil, 0, fmt.Errorf("search error %d: %s", resp.StatusCode, string(body))
		}
		return nil, 0, fmt.Errorf("decode search response: %w", err)
	}

	// The portal answers 404 with an empty @graph when nothing matches.
	if !parsed.Exists("@graph") {
		if resp.StatusCode == http.StatusNotFound {
			return nil, 0, fmt.Errorf("search error %d: %s", resp.StatusCode, string(body))
		}
		return nil, 0, fmt.Errorf("decode search response: no @graph")
	}

	graph, ok := parsed.Search("@graph").Data().([]interface{})
	if !ok {
		return nil, 0, fmt.Errorf("decode search response: @graph is not an array")
	}

	total := -1
	if n, ok := parsed.Search("total").Data().(float64); ok {
		total = int(n)
	}
	return graph, total, nil
}
