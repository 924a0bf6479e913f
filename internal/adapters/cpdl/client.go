// Package cpdl talks to the ChoralWiki (CPDL) MediaWiki API. The client
// implements the page-listing lookup the core needs; the provider turns raw
// wikitext pages into score records by best-effort pattern extraction.
package cpdl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

// DefaultBaseURL is the public CPDL index.
const DefaultBaseURL = "https://www.cpdl.org"

const (
	searchLimit     = 10
	maxContentPages = 5
)

// Client is an HTTP client for the MediaWiki search API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	logger      *zap.Logger
	maxRetries  int
	baseBackoff time.Duration
}

var _ ports.PageSource = (*Client)(nil)

// NewClient constructs a CPDL client. A nil httpClient falls back to a
// client with a sane timeout; an empty baseURL falls back to the public
// CPDL endpoint.
func NewClient(httpClient *http.Client, baseURL string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	maxRetries, baseBackoff := retryConfigFromEnv()

	return &Client{
		httpClient:  httpClient,
		baseURL:     strings.TrimRight(baseURL, "/"),
		logger:      logger,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

// wire shapes for the MediaWiki API with formatversion=2.

type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

type contentResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing,omitempty"`
			Revisions []struct {
				Slots struct {
					Main struct {
						Content string `json:"content"`
					} `json:"main"`
				} `json:"slots"`
			} `json:"revisions"`
		} `json:"pages"`
	} `json:"query"`
}

// Lookup runs a full-text search and fetches wikitext for the top hits.
// An empty result is not an error; the caller decides what zero pages mean.
func (c *Client) Lookup(ctx context.Context, query string) ([]ports.Page, error) {
	titles, err := c.searchTitles(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(titles) == 0 {
		return nil, nil
	}
	if len(titles) > maxContentPages {
		titles = titles[:maxContentPages]
	}

	return c.fetchPages(ctx, titles)
}

func (c *Client) searchTitles(ctx context.Context, query string) ([]string, error) {
	params := url.Values{
		"action":        {"query"},
		"list":          {"search"},
		"srsearch":      {query},
		"srlimit":       {fmt.Sprint(searchLimit)},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	var parsed searchResponse
	if err := c.get(ctx, "search", params, &parsed); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(parsed.Query.Search))
	for _, hit := range parsed.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

func (c *Client) fetchPages(ctx context.Context, titles []string) ([]ports.Page, error) {
	params := url.Values{
		"action":        {"query"},
		"prop":          {"revisions"},
		"rvprop":        {"content"},
		"rvslots":       {"main"},
		"titles":        {strings.Join(titles, "|")},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	var parsed contentResponse
	if err := c.get(ctx, "content", params, &parsed); err != nil {
		return nil, err
	}

	pages := make([]ports.Page, 0, len(parsed.Query.Pages))
	for _, pg := range parsed.Query.Pages {
		if pg.Missing || len(pg.Revisions) == 0 {
			continue
		}
		pages = append(pages, ports.Page{
			Title:      pg.Title,
			RawContent: pg.Revisions[0].Slots.Main.Content,
		})
	}
	return pages, nil
}

func (c *Client) get(ctx context.Context, op string, params url.Values, out any) error {
	endpoint := c.baseURL + "/api.php?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("cpdl adapter: build %s request: %w", op, err)
	}

	resp, err := c.doRequestWithRetry(req)
	if err != nil {
		return &ports.TransportError{Op: "cpdl " + op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ports.RemoteError{Op: "cpdl " + op, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("cpdl adapter: decode %s response: %w", op, err)
	}
	return nil
}
