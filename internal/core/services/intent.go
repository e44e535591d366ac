package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/avelasco/acorde/internal/core/domain"
)

const (
	defaultTrackCount = 7
	maxTrackCount     = 10
)

var digitsRe = regexp.MustCompile(`\d+`)

// ExtractIntent derives the structured query signals from free text.
// Pure function: no side effects, no errors; missing signals fall back to
// defaults.
func ExtractIntent(query string) domain.QueryIntent {
	q := strings.ToLower(query)

	intent := domain.QueryIntent{
		RequestedCount: parseTrackCount(query),
		GenreHint:      detectGenre(q),
		WantsRelax:     containsAny(q, domain.RelaxWords),
		WantsStudy:     containsAny(q, domain.StudyWords),
		WantsParty:     containsAny(q, domain.PartyWords),
	}

	switch {
	case intent.WantsRelax:
		intent.Mood = domain.MoodRelax
	case intent.WantsStudy:
		intent.Mood = domain.MoodStudy
	case intent.WantsParty:
		intent.Mood = domain.MoodParty
	default:
		intent.Mood = domain.MoodNone
	}

	switch {
	case containsAny(q, domain.AnyLanguagePhrases):
		intent.LanguagePolicy = domain.LanguageAny
	case containsAny(q, domain.OnlySpanishEnglishPhrases):
		intent.LanguagePolicy = domain.LanguageStrictEsEn
	default:
		intent.LanguagePolicy = domain.LanguageDefaultEsEnPt
	}

	return intent
}

// parseTrackCount takes the first integer literal in the query, clamped to
// [1, maxTrackCount]. "dame 3 canciones de 2020" asks for 3.
func parseTrackCount(query string) int {
	m := digitsRe.FindString(query)
	if m == "" {
		return defaultTrackCount
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// only possible on overflow-sized digit runs
		return maxTrackCount
	}
	if n < 1 {
		return 1
	}
	if n > maxTrackCount {
		return maxTrackCount
	}
	return n
}

// detectGenre scans the keyword table in insertion order; first hit wins.
func detectGenre(lowerQuery string) string {
	for _, gk := range domain.GenreKeywords {
		if strings.Contains(lowerQuery, gk.Keyword) {
			return gk.Genre
		}
	}
	return ""
}

func containsAny(lowerText string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lowerText, w) {
			return true
		}
	}
	return false
}
