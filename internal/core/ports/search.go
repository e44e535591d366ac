package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/avelasco/acorde/internal/core/domain"
)

// ErrNoMatches indicates the vector index returned nothing for a query.
var ErrNoMatches = errors.New("no matching tracks")

// NoMatchesError provides context for an empty search result.
type NoMatchesError struct {
	Query string
}

func (e NoMatchesError) Error() string {
	if e.Query == "" {
		return ErrNoMatches.Error()
	}
	return fmt.Sprintf("no matching tracks found for query %q", e.Query)
}

func (e NoMatchesError) Is(target error) bool {
	return target == ErrNoMatches
}

// TrackSearcher is the vector-search collaborator. It returns candidates
// ranked by similarity, already over-fetched by the caller's k; it may
// return fewer, or ErrNoMatches.
type TrackSearcher interface {
	Search(ctx context.Context, query string, k int, genreFilter string) ([]domain.Track, error)
}

// TrackLibrary exposes the non-search reads and writes on the track graph
// used by the preference endpoints.
type TrackLibrary interface {
	SampleTracks(ctx context.Context, limit int) ([]domain.Track, error)
	PreferenceTracks(ctx context.Context, userID string, limit, page int) ([]domain.Track, error)
	SavePreferences(ctx context.Context, userID string, ratings map[string]int) error
	ArtistExists(ctx context.Context, name string) (bool, error)
	Ping(ctx context.Context) bool
}
