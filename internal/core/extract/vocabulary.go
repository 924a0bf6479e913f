package extract

import "github.com/ewilliams-labs/chorale/internal/core/domain"

// VoicingPattern maps an instruction token to its canonical voicing.
type VoicingPattern struct {
	Token     string
	Canonical domain.Voicing
}

// ThemePattern maps an instruction phrase to its canonical theme.
type ThemePattern struct {
	Phrase    string
	Canonical string
}

// SkillPattern maps an instruction word to its canonical skill level.
type SkillPattern struct {
	Word      string
	Canonical domain.SkillLevel
}

// Vocabulary is the fixed pattern configuration an Extractor scans with.
// It is supplied at construction and never mutated, so custom vocabularies
// can be injected in tests without touching shared state.
type Vocabulary struct {
	Voicings    []VoicingPattern
	Themes      []ThemePattern
	SkillLevels []SkillPattern
	Techniques  []string
	// Stopwords are structural words dropped from leftover keywords.
	Stopwords map[string]struct{}
}

// DefaultVocabulary returns the built-in choral vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Voicings: []VoicingPattern{
			{Token: "SATB", Canonical: domain.VoicingSATB},
			{Token: "TTBB", Canonical: domain.VoicingTTBB},
			{Token: "SSAA", Canonical: domain.VoicingSSAA},
			{Token: "SSA", Canonical: domain.VoicingSSA},
			{Token: "SAB", Canonical: domain.VoicingSAB},
			{Token: "TB", Canonical: domain.VoicingTB},
			{Token: "tenor-bass", Canonical: domain.VoicingTB},
			{Token: "tenor bass", Canonical: domain.VoicingTB},
		},
		Themes: []ThemePattern{
			{Phrase: "Spring Earth", Canonical: "Spring Earth"},
			{Phrase: "Earth theme", Canonical: "Earth"},
			{Phrase: "Earth", Canonical: "Earth"},
			{Phrase: "Spring", Canonical: "Spring"},
		},
		SkillLevels: []SkillPattern{
			{Word: "beginning", Canonical: domain.SkillBeginning},
			{Word: "beginner", Canonical: domain.SkillBeginning},
			{Word: "emerging", Canonical: domain.SkillBeginning},
			{Word: "intermediate", Canonical: domain.SkillIntermediate},
			{Word: "advanced", Canonical: domain.SkillAdvanced},
		},
		Techniques: []string{
			"overtone singing",
		},
		Stopwords: defaultStopwords,
	}
}

var defaultStopwords = map[string]struct{}{
	"a":        {},
	"an":       {},
	"and":      {},
	"are":      {},
	"as":       {},
	"at":       {},
	"be":       {},
	"but":      {},
	"by":       {},
	"could":    {},
	"find":     {},
	"for":      {},
	"from":     {},
	"in":       {},
	"is":       {},
	"it":       {},
	"of":       {},
	"on":       {},
	"or":       {},
	"possible": {},
	"should":   {},
	"that":     {},
	"the":      {},
	"theme":    {},
	"this":     {},
	"to":       {},
	"use":      {},
	"with":     {},
	"would":    {},
	"you":      {},
	"your":     {},
}
