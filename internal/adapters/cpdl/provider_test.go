package cpdl

import (
	"context"
	"errors"
	"testing"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

type stubSource struct {
	pages []ports.Page
	err   error
	query string
}

func (s *stubSource) Lookup(_ context.Context, query string) ([]ports.Page, error) {
	s.query = query
	return s.pages, s.err
}

func TestProvider_Search(t *testing.T) {
	source := &stubSource{
		pages: []ports.Page{
			{
				Title: "For the Beauty of the Earth (John Rutter)",
				RawContent: `{{Composer|John Rutter}}
{{Voicing|4|TTBB}}
'''Description:''' Celebrates the beauty of the natural world.`,
			},
		},
	}
	p := NewProvider(source, "https://www.cpdl.org")

	params := domain.SearchParameters{
		Voicing:    domain.VoicingTB,
		Theme:      "Earth",
		SkillLevel: domain.SkillBeginning,
	}
	records, err := p.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	rec := records[0]
	if rec.Composer != "John Rutter" {
		t.Errorf("composer: got %q", rec.Composer)
	}
	if rec.Voicing != "TTBB" {
		t.Errorf("voicing: got %q", rec.Voicing)
	}
	if rec.Description != "Celebrates the beauty of the natural world." {
		t.Errorf("description: got %q", rec.Description)
	}
	if rec.Theme != "Earth" {
		t.Errorf("theme: got %q", rec.Theme)
	}
	if rec.Difficulty != "beginning" {
		t.Errorf("difficulty: got %q", rec.Difficulty)
	}
	want := "https://www.cpdl.org/wiki/index.php/For_the_Beauty_of_the_Earth_(John_Rutter)"
	if rec.SourceURL != want {
		t.Errorf("source url:\ngot  %q\nwant %q", rec.SourceURL, want)
	}

	if source.query == "" {
		t.Error("expected a query to be built from parameters")
	}
}

func TestProvider_ExtractionIsBestEffort(t *testing.T) {
	source := &stubSource{
		pages: []ports.Page{
			{Title: "Some Page", RawContent: "plain prose with no templates at all"},
		},
	}
	p := NewProvider(source, "")

	records, err := p.Search(context.Background(), domain.SearchParameters{})
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	rec := records[0]
	if rec.Title != "Some Page" {
		t.Errorf("title: got %q", rec.Title)
	}
	if rec.Composer != "" || rec.Voicing != "" || rec.Description != "" {
		t.Errorf("expected absent fields on non-match, got %+v", rec)
	}
}

func TestProvider_NilSource(t *testing.T) {
	p := NewProvider(nil, "")

	_, err := p.Search(context.Background(), domain.SearchParameters{})
	if !errors.Is(err, ports.ErrCapabilityUnavailable) {
		t.Fatalf("expected ErrCapabilityUnavailable, got %v", err)
	}
}

func TestProvider_PropagatesLookupErrors(t *testing.T) {
	source := &stubSource{err: &ports.TransportError{Op: "cpdl search", Err: errors.New("timeout")}}
	p := NewProvider(source, "")

	_, err := p.Search(context.Background(), domain.SearchParameters{})
	var transport *ports.TransportError
	if !errors.As(err, &transport) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}
