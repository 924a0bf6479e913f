package domain

import "strings"

// Voicing is the vocal part arrangement of a choral piece.
// The zero value means "not specified".
type Voicing string

const (
	VoicingSATB Voicing = "SATB"
	VoicingTB   Voicing = "TB"
	VoicingTTBB Voicing = "TTBB"
	VoicingSSA  Voicing = "SSA"
	VoicingSSAA Voicing = "SSAA"
	VoicingSAB  Voicing = "SAB"
)

// SkillLevel is the difficulty tier a director asked for.
// The zero value means "not specified".
type SkillLevel string

const (
	SkillBeginning    SkillLevel = "beginning"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// SearchParameters is the structured form of one free-text instruction.
// Values are either a recognized vocabulary entry or empty; raw text that
// could not be categorized lands in Keywords, in order of first appearance.
// A SearchParameters value is never mutated after extraction.
type SearchParameters struct {
	Voicing    Voicing    `json:"voicing,omitempty"`
	Theme      string     `json:"theme,omitempty"`
	Technique  string     `json:"technique,omitempty"`
	SkillLevel SkillLevel `json:"skill_level,omitempty"`
	Ensemble   string     `json:"ensemble,omitempty"`
	Keywords   []string   `json:"keywords,omitempty"`
}

// IsZero reports whether nothing at all was extracted.
func (p SearchParameters) IsZero() bool {
	return p.Voicing == "" && p.Theme == "" && p.Technique == "" &&
		p.SkillLevel == "" && p.Ensemble == "" && len(p.Keywords) == 0
}

// SearchQuery flattens the parameters into the plain-text query sent to a
// lookup service: typed fields first, then leftover keywords, then the fixed
// sheet-music terms that anchor the search to choral repertoire.
func (p SearchParameters) SearchQuery() string {
	parts := make([]string, 0, 8+len(p.Keywords))

	if p.Voicing != "" {
		parts = append(parts, string(p.Voicing))
	}
	if p.Theme != "" {
		parts = append(parts, p.Theme)
	}
	if p.Technique != "" {
		parts = append(parts, p.Technique)
	}
	if p.SkillLevel != "" {
		parts = append(parts, string(p.SkillLevel)+" choir")
	}
	if p.Ensemble != "" {
		parts = append(parts, p.Ensemble)
	}
	parts = append(parts, p.Keywords...)
	parts = append(parts, "sheet music", "choral piece", "choral music")

	return strings.Join(parts, " ")
}
