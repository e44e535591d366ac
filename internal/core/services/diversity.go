package services

import (
	"strings"

	"github.com/avelasco/acorde/internal/core/domain"
)

// NormalizeArtistKey reduces an artist string to its dedup key: the first
// comma-separated segment, trimmed and lowercased. Collaborators after the
// comma don't count for diversity purposes.
func NormalizeArtistKey(artist string) string {
	for _, part := range strings.Split(artist, ",") {
		if p := strings.TrimSpace(part); p != "" {
			return strings.ToLower(p)
		}
	}
	return ""
}

// LimitPerArtist keeps input order and admits a candidate only while its
// artist key has been seen fewer than maxPerArtist times. Raising the cap
// can only add candidates, never remove previously admitted ones.
func LimitPerArtist(tracks []domain.Track, maxPerArtist int) []domain.Track {
	counts := make(map[string]int, len(tracks))
	out := make([]domain.Track, 0, len(tracks))
	for _, t := range tracks {
		key := NormalizeArtistKey(t.Artist)
		if counts[key] < maxPerArtist {
			out = append(out, t)
			counts[key]++
		}
	}
	return out
}
