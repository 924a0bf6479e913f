package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
)

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	a, err := NewAdapter(filepath.Join(t.TempDir(), "chorale_test.db"))
	if err != nil {
		t.Fatalf("failed to create adapter: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func sampleReport(id string, createdAt time.Time) domain.SearchReport {
	return domain.SearchReport{
		ID:          id,
		Instruction: "Possible TB pieces that are on the Earth theme for Rhapsody.",
		Parameters: domain.SearchParameters{
			Voicing:  domain.VoicingTB,
			Theme:    "Earth",
			Ensemble: "Rhapsody",
			Keywords: []string{"pieces"},
		},
		Results: []domain.ScoreRecord{
			{Title: "For the Beauty of the Earth", Composer: "John Rutter", Voicing: "TTBB"},
		},
		ResultCount: 1,
		Origin:      domain.OriginCatalog,
		CreatedAt:   createdAt,
	}
}

func TestAdapter_SaveAndListRecent(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	older := sampleReport("r-old", base)
	newer := sampleReport("r-new", base.Add(time.Minute))

	if err := a.Save(ctx, older); err != nil {
		t.Fatalf("Save older: %v", err)
	}
	if err := a.Save(ctx, newer); err != nil {
		t.Fatalf("Save newer: %v", err)
	}

	got, err := a.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d reports, want 2", len(got))
	}
	if got[0].ID != "r-new" || got[1].ID != "r-old" {
		t.Errorf("wrong order: got %s, %s", got[0].ID, got[1].ID)
	}

	// Round trip of the JSON columns.
	first := got[0]
	if first.Parameters.Voicing != domain.VoicingTB {
		t.Errorf("voicing: got %q", first.Parameters.Voicing)
	}
	if first.Parameters.Ensemble != "Rhapsody" {
		t.Errorf("ensemble: got %q", first.Parameters.Ensemble)
	}
	if len(first.Results) != 1 || first.Results[0].Composer != "John Rutter" {
		t.Errorf("results did not round trip: %+v", first.Results)
	}
	if first.Origin != domain.OriginCatalog {
		t.Errorf("origin: got %q", first.Origin)
	}
	if !first.CreatedAt.Equal(newer.CreatedAt) {
		t.Errorf("created_at: got %v, want %v", first.CreatedAt, newer.CreatedAt)
	}
}

func TestAdapter_ListRecentLimit(t *testing.T) {
	a := newTestAdapter(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		report := sampleReport(string(rune('a'+i)), base.Add(time.Duration(i)*time.Second))
		if err := a.Save(ctx, report); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := a.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d reports, want 3", len(got))
	}
}

func TestAdapter_ListRecentEmpty(t *testing.T) {
	a := newTestAdapter(t)

	got, err := a.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d reports, want 0", len(got))
	}
}
