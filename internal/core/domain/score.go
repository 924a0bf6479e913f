package domain

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("domain: not found")

// ScoreRecord is one piece of sheet music returned by a search. The shape is
// identical whether the record came from the live lookup or the built-in
// catalog, so formatting never has to branch on provenance.
type ScoreRecord struct {
	Title       string `json:"title"`
	Composer    string `json:"composer,omitempty"`
	Voicing     string `json:"voicing,omitempty"`
	Theme       string `json:"theme,omitempty"`
	Technique   string `json:"technique,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Description string `json:"description,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

// ResultOrigin says which path produced a report's records.
type ResultOrigin string

const (
	OriginLive    ResultOrigin = "live"
	OriginCatalog ResultOrigin = "catalog"
)

// SearchReport is the full outcome of processing one instruction.
type SearchReport struct {
	ID          string           `json:"id"`
	Instruction string           `json:"instruction"`
	Parameters  SearchParameters `json:"parameters"`
	Results     []ScoreRecord    `json:"results"`
	ResultCount int              `json:"result_count"`
	Origin      ResultOrigin     `json:"origin"`
	CreatedAt   time.Time        `json:"created_at"`
}
