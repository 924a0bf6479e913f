package cpdl

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

// Wikitext extraction is best-effort over arbitrary page markup: a field
// that doesn't match is simply left absent.
var (
	composerRe    = regexp.MustCompile(`\{\{Composer\|([^}|]+)`)
	voicingRe     = regexp.MustCompile(`\{\{Voicing\|\d+\|([^}|]+)`)
	descriptionRe = regexp.MustCompile(`(?i)'''Description:?'''\s*:?\s*(.+)`)
)

// Provider is the live ScoreProvider over a PageSource.
type Provider struct {
	source  ports.PageSource
	baseURL string
}

var _ ports.ScoreProvider = (*Provider)(nil)

// NewProvider wraps a PageSource. source may be nil, in which case every
// search reports the capability as unavailable.
func NewProvider(source ports.PageSource, baseURL string) *Provider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Provider{
		source:  source,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Search builds the query string from the parameters, runs one lookup, and
// normalizes the returned pages into score records.
func (p *Provider) Search(ctx context.Context, params domain.SearchParameters) ([]domain.ScoreRecord, error) {
	if p.source == nil {
		return nil, ports.ErrCapabilityUnavailable
	}

	pages, err := p.source.Lookup(ctx, params.SearchQuery())
	if err != nil {
		return nil, fmt.Errorf("cpdl provider: %w", err)
	}

	records := make([]domain.ScoreRecord, 0, len(pages))
	for _, page := range pages {
		records = append(records, p.recordFromPage(page, params))
	}
	return records, nil
}

func (p *Provider) recordFromPage(page ports.Page, params domain.SearchParameters) domain.ScoreRecord {
	rec := domain.ScoreRecord{
		Title:     page.Title,
		Theme:     params.Theme,
		Technique: params.Technique,
		SourceURL: p.pageURL(page.Title),
	}

	if m := composerRe.FindStringSubmatch(page.RawContent); m != nil {
		rec.Composer = strings.TrimSpace(m[1])
	}
	if m := voicingRe.FindStringSubmatch(page.RawContent); m != nil {
		rec.Voicing = strings.TrimSpace(m[1])
	}
	if m := descriptionRe.FindStringSubmatch(page.RawContent); m != nil {
		rec.Description = strings.TrimSpace(m[1])
	}
	if params.SkillLevel != "" {
		rec.Difficulty = string(params.SkillLevel)
	}

	return rec
}

func (p *Provider) pageURL(title string) string {
	return p.baseURL + "/wiki/index.php/" + strings.ReplaceAll(title, " ", "_")
}
