package services

import (
	"sort"
	"strings"

	"github.com/avelasco/acorde/internal/core/domain"
)

// CalmScore rates how "quiet" a candidate is; higher is calmer. Genre tags
// carry most of the signal. When the query asked to relax, lower popularity
// adds a small bonus so the result is not wall-to-wall mainstream. The study
// flag triggers re-ranking too but gets no popularity bonus.
func CalmScore(t domain.Track, intent domain.QueryIntent) float64 {
	score := 0.0
	for _, g := range t.Genres {
		if _, ok := domain.CalmGenres[strings.ToLower(g)]; ok {
			score += 3.0
			break
		}
	}
	for _, g := range t.Genres {
		if _, ok := domain.NoisyGenres[strings.ToLower(g)]; ok {
			score -= 3.0
			break
		}
	}
	if intent.WantsRelax {
		if bonus := 1.5 - float64(t.Pop())/100.0; bonus > 0 {
			score += bonus
		}
	}
	return score
}

// RankCalm returns a new slice sorted by descending calmness. The sort is
// stable: candidates with equal scores keep their similarity order.
func RankCalm(tracks []domain.Track, intent domain.QueryIntent) []domain.Track {
	out := make([]domain.Track, len(tracks))
	copy(out, tracks)
	sort.SliceStable(out, func(i, j int) bool {
		return CalmScore(out[i], intent) > CalmScore(out[j], intent)
	})
	return out
}
