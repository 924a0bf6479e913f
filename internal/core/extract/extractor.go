// Package extract implements fixed-vocabulary parameter extraction over
// free-text instructions. Matching follows two explicit tie-break rules:
// the first matching pattern per category wins, and multi-word theme
// phrases are tried longest-first. This is deliberate keyword matching,
// not general NLP.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

var (
	quotedRe        = regexp.MustCompile(`"([^"]+)"`)
	wordRe          = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9'-]*`)
	ensembleMarkRe  = regexp.MustCompile(`(?i)\bfor\s+(\w+)[:.]`)
	ensembleFinalRe = regexp.MustCompile(`(?i)\bfor\s+(\w+)\s*$`)
)

type voicingMatcher struct {
	re        *regexp.Regexp
	canonical domain.Voicing
}

type themeMatcher struct {
	re        *regexp.Regexp
	canonical string
}

type skillMatcher struct {
	re        *regexp.Regexp
	canonical domain.SkillLevel
}

type techniqueMatcher struct {
	re     *regexp.Regexp
	phrase string
}

// Extractor scans instructions against a fixed, immutable vocabulary.
type Extractor struct {
	voicings   []voicingMatcher
	themes     []themeMatcher
	skills     []skillMatcher
	techniques []techniqueMatcher
	stopwords  map[string]struct{}
}

var _ ports.InstructionExtractor = (*Extractor)(nil)

// New compiles the vocabulary into an Extractor. The vocabulary is copied;
// the caller's slices are not retained.
func New(vocab Vocabulary) *Extractor {
	e := &Extractor{stopwords: vocab.Stopwords}
	if e.stopwords == nil {
		e.stopwords = map[string]struct{}{}
	}

	for _, v := range vocab.Voicings {
		e.voicings = append(e.voicings, voicingMatcher{
			re:        wholeWord(v.Token),
			canonical: v.Canonical,
		})
	}

	// Multi-word phrases first so "Spring Earth" beats a bare "Earth";
	// ties keep the vocabulary's declaration order.
	themes := make([]ThemePattern, len(vocab.Themes))
	copy(themes, vocab.Themes)
	sort.SliceStable(themes, func(i, j int) bool {
		return len(strings.Fields(themes[i].Phrase)) > len(strings.Fields(themes[j].Phrase))
	})
	for _, th := range themes {
		e.themes = append(e.themes, themeMatcher{
			re:        wholeWord(th.Phrase),
			canonical: th.Canonical,
		})
	}

	for _, s := range vocab.SkillLevels {
		e.skills = append(e.skills, skillMatcher{
			re:        wholeWord(s.Word),
			canonical: s.Canonical,
		})
	}

	for _, t := range vocab.Techniques {
		e.techniques = append(e.techniques, techniqueMatcher{
			re:     wholeWord(t),
			phrase: t,
		})
	}

	return e
}

// wholeWord matches the token case-insensitively on word boundaries, so a
// voicing like "TB" never fires inside another word.
func wholeWord(token string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
}

// Extract scans the instruction once per category. It never fails: a
// category with no match is simply left unset, and anything the categories
// did not consume is kept, in order of first appearance, as keywords.
func (e *Extractor) Extract(instruction string) domain.SearchParameters {
	var params domain.SearchParameters
	if strings.TrimSpace(instruction) == "" {
		return params
	}

	var consumed []span

	for _, v := range e.voicings {
		if loc := v.re.FindStringIndex(instruction); loc != nil {
			params.Voicing = v.canonical
			consumed = append(consumed, span{loc[0], loc[1]})
			break
		}
	}

	for _, th := range e.themes {
		if loc := th.re.FindStringIndex(instruction); loc != nil {
			params.Theme = th.canonical
			consumed = append(consumed, span{loc[0], loc[1]})
			break
		}
	}

	for _, s := range e.skills {
		if loc := s.re.FindStringIndex(instruction); loc != nil {
			params.SkillLevel = s.canonical
			consumed = append(consumed, span{loc[0], loc[1]})
			break
		}
	}

	for _, t := range e.techniques {
		if loc := t.re.FindStringIndex(instruction); loc != nil {
			params.Technique = t.phrase
			consumed = append(consumed, span{loc[0], loc[1]})
			break
		}
	}

	if name, loc, ok := e.findEnsemble(instruction); ok {
		params.Ensemble = name
		consumed = append(consumed, loc)
	}

	params.Keywords = e.leftoverKeywords(instruction, consumed)

	return params
}

// findEnsemble recovers an ensemble name from "for <Name>:" / "for <Name>."
// anywhere, or a trailing "for <Name>". Stopwords are never ensemble names.
func (e *Extractor) findEnsemble(instruction string) (string, span, bool) {
	for _, re := range []*regexp.Regexp{ensembleMarkRe, ensembleFinalRe} {
		m := re.FindStringSubmatchIndex(instruction)
		if m == nil {
			continue
		}
		name := instruction[m[2]:m[3]]
		if _, stop := e.stopwords[strings.ToLower(name)]; stop {
			continue
		}
		return name, span{m[0], m[1]}, true
	}
	return "", span{}, false
}

// leftoverKeywords keeps quoted phrases verbatim, then every word the
// categories did not consume, minus structural stopwords, deduplicated and
// in order of first appearance.
func (e *Extractor) leftoverKeywords(instruction string, consumed []span) []string {
	var keywords []string
	seen := map[string]struct{}{}

	add := func(kw string) {
		key := strings.ToLower(kw)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		keywords = append(keywords, kw)
	}

	for _, m := range quotedRe.FindAllStringSubmatchIndex(instruction, -1) {
		add(instruction[m[2]:m[3]])
		consumed = append(consumed, span{m[0], m[1]})
	}

	for _, loc := range wordRe.FindAllStringIndex(instruction, -1) {
		w := span{loc[0], loc[1]}
		if w.overlapsAny(consumed) {
			continue
		}
		word := instruction[w.start:w.end]
		if _, stop := e.stopwords[strings.ToLower(word)]; stop {
			continue
		}
		add(word)
	}

	return keywords
}

type span struct {
	start, end int
}

func (s span) overlapsAny(spans []span) bool {
	for _, other := range spans {
		if s.start < other.end && other.start < s.end {
			return true
		}
	}
	return false
}
