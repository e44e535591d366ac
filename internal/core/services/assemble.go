package services

import (
	"fmt"
	"strings"

	"github.com/avelasco/acorde/internal/core/domain"
)

// Canned user-facing responses. These are contract text: the web UI matches
// on them, so changes ripple.
const (
	// TellMeMorePrompt is returned when the query is too short to act on.
	TellMeMorePrompt = "😊 Cuéntame un poco más: un género, un estado de ánimo o algún artista que te guste."
	// ApologyResponse is returned when nothing survives to the final list.
	ApologyResponse = "No he encontrado canciones que encajen con lo que pides 😔."

	explanationSeparator = "\n\nExplicación:\n"
)

// AssembleResponse renders the numbered track list followed by the sanitized
// explanation.
func AssembleResponse(tracks []domain.Track, explanation string) string {
	lines := make([]string, 0, len(tracks))
	for i, t := range tracks {
		genres := strings.Join(t.Genres, ", ")
		if genres == "" {
			genres = "sin género"
		}
		popTxt := ""
		if t.Popularity != nil {
			popTxt = fmt.Sprintf(", popularidad %d", *t.Popularity)
		}
		lines = append(lines, fmt.Sprintf("%d. %s – %s (%s%s)", i+1, t.Title, t.Artist, genres, popTxt))
	}
	return strings.Join(lines, "\n") + explanationSeparator + explanation
}
