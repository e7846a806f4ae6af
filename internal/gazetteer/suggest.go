package gazetteer

import (
	"sort"
	"strings"
	"unicode"

	"github.com/agext/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Suggestion scoring: candidates at or above MinScore (on a 0-100 scale)
// are returned, best first, capped at the caller's limit.
const (
	// substringScore is awarded when the folded query appears inside a key,
	// so partial street names rank like an autocomplete prefix match.
	substringScore = 90
	// minSubstringLen keeps one- and two-rune queries from matching half
	// the gazetteer by substring.
	minSubstringLen = 3
)

var simParams = levenshtein.NewParams()

// Suggester ranks gazetteer keys by similarity to a partial query.
// Matching is diacritic-insensitive: "praca" finds "praça".
type Suggester struct {
	keys   []string
	folded []string
}

// NewSuggester prepares a suggester over the given keys.
func NewSuggester(keys []string) *Suggester {
	s := &Suggester{
		keys:   keys,
		folded: make([]string, len(keys)),
	}
	for i, k := range keys {
		s.folded[i] = Fold(k)
	}
	return s
}

// Fold lowercases, trims, and strips combining marks so accented and plain
// spellings compare equal.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, Normalize(s))
	if err != nil {
		return Normalize(s)
	}
	return out
}

// Suggest returns up to limit keys scoring at least minScore (0-100) against
// the query. An empty query yields no suggestions.
func (s *Suggester) Suggest(query string, minScore, limit int) []string {
	q := Fold(query)
	if q == "" || limit <= 0 {
		return nil
	}

	type scored struct {
		key   string
		score int
		pos   int
	}
	var matches []scored

	for i, folded := range s.folded {
		sc := int(levenshtein.Similarity(q, folded, simParams) * 100)
		if len([]rune(q)) >= minSubstringLen && strings.Contains(folded, q) && sc < substringScore {
			sc = substringScore
		}
		if sc >= minScore {
			matches = append(matches, scored{key: s.keys[i], score: sc, pos: i})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].score != matches[j].score {
			return matches[i].score > matches[j].score
		}
		return matches[i].pos < matches[j].pos
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.key
	}
	return out
}
