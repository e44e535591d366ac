package services

import (
	"strings"
	"unicode/utf8"

	"github.com/avelasco/acorde/internal/core/domain"
	"github.com/avelasco/acorde/internal/core/ports"
)

const (
	// combined title+artist must be at least this fraction Latin script
	combinedScriptThreshold = 0.85
	// the artist field alone gets a stricter check
	artistScriptThreshold = 0.95
	// texts shorter than this are too ambiguous for language detection
	minDetectableRunes = 8
)

// allowedExtraRunes are the non-ASCII characters that still count as
// script-consistent for the Spanish-speaking market.
var allowedExtraRunes = map[rune]struct{}{
	'á': {}, 'é': {}, 'í': {}, 'ó': {}, 'ú': {},
	'Á': {}, 'É': {}, 'Í': {}, 'Ó': {}, 'Ú': {},
	'ñ': {}, 'Ñ': {}, 'ü': {}, 'Ü': {}, '¿': {}, '¡': {},
}

// FilterCandidates drops candidates that violate script, genre, or language
// policy. Order is preserved and input tracks are never mutated; filtering
// the same input twice yields the same output. An empty result is valid
// here: falling back to the raw set is the pipeline's call, not this one's.
func FilterCandidates(tracks []domain.Track, intent domain.QueryIntent, detector ports.LanguageDetector) []domain.Track {
	out := make([]domain.Track, 0, len(tracks))
	for _, t := range tracks {
		combined := t.Title + " " + t.Artist

		if !mostlyLatin(combined, combinedScriptThreshold) {
			continue
		}
		if hasBlockedGenre(t.Genres) {
			continue
		}
		if !passesLanguagePolicy(combined, intent.LanguagePolicy, detector) {
			continue
		}
		if !mostlyLatin(t.Artist, artistScriptThreshold) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// mostlyLatin reports whether at least threshold of the runes are ASCII or
// in the allowed accented set. Empty text passes.
func mostlyLatin(text string, threshold float64) bool {
	if text == "" {
		return true
	}
	latin, total := 0, 0
	for _, r := range text {
		total++
		if r < utf8.RuneSelf {
			latin++
			continue
		}
		if _, ok := allowedExtraRunes[r]; ok {
			latin++
		}
	}
	return float64(latin)/float64(total) >= threshold
}

func hasBlockedGenre(genres []string) bool {
	for _, g := range genres {
		if _, blocked := domain.BlockedGenres[strings.ToLower(g)]; blocked {
			return true
		}
	}
	return false
}

// passesLanguagePolicy applies the intent's language policy to the combined
// title+artist text. Detection is fail-open: short texts and indeterminate
// results pass.
func passesLanguagePolicy(text string, policy domain.LanguagePolicy, detector ports.LanguageDetector) bool {
	allowed := policy.AllowedLanguages()
	if allowed == nil {
		return true
	}

	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minDetectableRunes {
		return true
	}

	code, ok := detector.Detect(trimmed)
	if !ok {
		return true
	}
	for _, a := range allowed {
		if code == a {
			return true
		}
	}
	return false
}
