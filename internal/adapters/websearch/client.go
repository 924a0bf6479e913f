// Package websearch implements the "web_search" API type against a licensed
// sheet-music search service that issues tokens via the OAuth2
// client-credentials flow.
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

// Client queries the search service with an auto-refreshed bearer token.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

var _ ports.ScoreProvider = (*Client)(nil)

// NewClient constructs a client for the given service. The token endpoint
// is {baseURL}/oauth/token; the oauth2 transport caches and refreshes the
// token across requests.
func NewClient(clientID, clientSecret, baseURL string) *Client {
	baseURL = strings.TrimRight(baseURL, "/")

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     baseURL + "/oauth/token",
	}

	httpClient := conf.Client(context.Background())
	httpClient.Timeout = 30 * time.Second

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// searchItem is the service's wire shape for one result.
type searchItem struct {
	Title       string `json:"title"`
	Composer    string `json:"composer"`
	Voicing     string `json:"voicing"`
	Theme       string `json:"theme,omitempty"`
	Technique   string `json:"technique,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url,omitempty"`
}

func (it searchItem) toDomain() domain.ScoreRecord {
	return domain.ScoreRecord{
		Title:       it.Title,
		Composer:    it.Composer,
		Voicing:     it.Voicing,
		Theme:       it.Theme,
		Technique:   it.Technique,
		Difficulty:  it.Difficulty,
		Description: it.Description,
		SourceURL:   it.URL,
	}
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

// Search issues one GET /v1/search?q=... and maps the items to records.
func (c *Client) Search(ctx context.Context, params domain.SearchParameters) ([]domain.ScoreRecord, error) {
	endpoint := c.baseURL + "/v1/search?" + url.Values{"q": {params.SearchQuery()}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("websearch adapter: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ports.TransportError{Op: "web search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ports.RemoteError{Op: "web search", Status: resp.StatusCode}
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("websearch adapter: decode response: %w", err)
	}

	records := make([]domain.ScoreRecord, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		records = append(records, item.toDomain())
	}
	return records, nil
}
