package catalog

import (
	"context"
	"reflect"
	"testing"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
)

func TestProviderSearch(t *testing.T) {
	tests := []struct {
		name       string
		params     domain.SearchParameters
		wantTitles []string
	}{
		{
			name: "tb earth matches rutter",
			params: domain.SearchParameters{
				Voicing: domain.VoicingTB,
				Theme:   "Earth",
			},
			wantTitles: []string{"For the Beauty of the Earth"},
		},
		{
			name: "beginning tb earth adds the emerging collection",
			params: domain.SearchParameters{
				Voicing:    domain.VoicingTB,
				Theme:      "Earth",
				SkillLevel: domain.SkillBeginning,
			},
			wantTitles: []string{
				"For the Beauty of the Earth",
				"First Songs for Emerging Tenor-Bass Choir",
			},
		},
		{
			name: "satb overtone matches cole",
			params: domain.SearchParameters{
				Voicing:   domain.VoicingSATB,
				Theme:     "Spring Earth",
				Technique: "overtone singing",
			},
			wantTitles: []string{"Singing in Tune with Nature"},
		},
		{
			name:       "nothing recognized yields generic record",
			params:     domain.SearchParameters{},
			wantTitles: []string{"Choral Piece - Mixed"},
		},
		{
			name: "unmatched voicing yields generic record",
			params: domain.SearchParameters{
				Voicing: domain.VoicingSSA,
			},
			wantTitles: []string{"Choral Piece - SSA"},
		},
	}

	p := NewProvider()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Search(context.Background(), tt.params)
			if err != nil {
				t.Fatalf("Search returned error: %v", err)
			}
			if len(got) != len(tt.wantTitles) {
				t.Fatalf("got %d records, want %d", len(got), len(tt.wantTitles))
			}
			for i, want := range tt.wantTitles {
				if got[i].Title != want {
					t.Errorf("record %d: got title %q, want %q", i, got[i].Title, want)
				}
			}
		})
	}
}

func TestSearchNeverEmpty(t *testing.T) {
	p := NewProvider()

	paramSets := []domain.SearchParameters{
		{},
		{Voicing: domain.VoicingSATB},
		{Voicing: domain.VoicingTB},
		{Voicing: domain.VoicingTTBB},
		{Theme: "Spring"},
		{SkillLevel: domain.SkillAdvanced},
	}

	for _, params := range paramSets {
		got, err := p.Search(context.Background(), params)
		if err != nil {
			t.Fatalf("Search(%+v) returned error: %v", params, err)
		}
		if len(got) == 0 {
			t.Errorf("Search(%+v) returned no records", params)
		}
	}
}

func TestSkillLevelOverridesDifficulty(t *testing.T) {
	p := NewProvider()

	params := domain.SearchParameters{
		Voicing:    domain.VoicingTB,
		Theme:      "Earth",
		SkillLevel: domain.SkillAdvanced,
	}

	got, err := p.Search(context.Background(), params)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if got[0].Difficulty != "advanced" {
		t.Errorf("got difficulty %q, want %q", got[0].Difficulty, "advanced")
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	p := NewProvider()
	params := domain.SearchParameters{Voicing: domain.VoicingTB, Theme: "Earth"}

	first, _ := p.Search(context.Background(), params)
	second, _ := p.Search(context.Background(), params)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated searches differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
