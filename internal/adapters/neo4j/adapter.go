// Package neo4j implements the track-graph ports against a Neo4j instance
// holding the track/artist/genre graph and its vector index.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/avelasco/acorde/internal/core/domain"
	"github.com/avelasco/acorde/internal/core/ports"
)

// Adapter implements ports.TrackSearcher and ports.TrackLibrary. Query
// embeddings come from the injected Embedder, which must match the model
// the index was built with.
type Adapter struct {
	driver   neo4j.DriverWithContext
	database string
	embedder ports.Embedder
}

func NewAdapter(uri, user, pass, database string, embedder ports.Embedder) (*Adapter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, pass, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j: open driver: %w", err)
	}
	return &Adapter{
		driver:   driver,
		database: database,
		embedder: embedder,
	}, nil
}

func (a *Adapter) Close(ctx context.Context) error {
	return a.driver.Close(ctx)
}

// Ping reports whether the graph is reachable.
func (a *Adapter) Ping(ctx context.Context) bool {
	return a.driver.VerifyConnectivity(ctx) == nil
}

const searchCypher = `
CALL db.index.vector.queryNodes('track_embedding_index', $k*2, $vec)
YIELD node, score
OPTIONAL MATCH (node)-[:BY_ARTIST]->(a:Artist)
OPTIONAL MATCH (node)-[:HAS_GENRE]->(g:Genre)
WITH node, score, a, collect(DISTINCT g.name) AS genres
WHERE $genre = ''
    OR ANY(gname IN genres WHERE toLower(gname) CONTAINS toLower($genre))
RETURN node.id          AS id,
       node.title       AS title,
       coalesce(a.name,'') AS artist,
       genres           AS genres,
       node.popularity  AS popularity,
       score            AS score
ORDER BY score DESC
LIMIT $k`

// Search embeds the query text and runs it against the vector index,
// narrowing by genre when a filter is given.
func (a *Adapter) Search(ctx context.Context, query string, k int, genreFilter string) ([]domain.Track, error) {
	vec, err := a.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("neo4j: embed query: %w", err)
	}

	tracks, err := a.readTracks(ctx, searchCypher, map[string]any{
		"vec":   toFloat64s(vec),
		"k":     k,
		"genre": genreFilter,
	})
	if err != nil {
		return nil, err
	}
	if len(tracks) == 0 {
		return nil, ports.NoMatchesError{Query: query}
	}
	return tracks, nil
}

const sampleCypher = `
MATCH (t:Track)-[:BY_ARTIST]->(a:Artist)
WHERE t.popularity IS NOT NULL
WITH t, a
ORDER BY t.popularity DESC, rand()
RETURN t.id   AS id,
       t.title AS title,
       a.name AS artist,
       t.popularity AS popularity
LIMIT $limit`

// SampleTracks returns well-known tracks for the profile setup screen,
// popular first with a light shuffle.
func (a *Adapter) SampleTracks(ctx context.Context, limit int) ([]domain.Track, error) {
	return a.readTracks(ctx, sampleCypher, map[string]any{"limit": limit})
}

const dislikedGenresCypher = `
MATCH (u:User {id: $user_id})-[r:LIKES]->(t:Track)-[:HAS_GENRE]->(g:Genre)
WITH g.name AS genre, avg(r.rating) AS avg_rating
WHERE avg_rating < 3
RETURN collect(genre) AS disliked_genres`

const preferenceTracksCypher = `
MATCH (t:Track)-[:BY_ARTIST]->(a:Artist)
OPTIONAL MATCH (t)-[:HAS_GENRE]->(g:Genre)
WITH t, a, collect(DISTINCT g.name) AS genres
WHERE t.popularity IS NOT NULL
  AND (
    size(genres) = 0 OR
    NONE(gn IN genres WHERE gn IN $disliked_genres)
  )
RETURN t.id        AS id,
       t.title     AS title,
       a.name      AS artist,
       t.popularity AS popularity,
       genres      AS genres
ORDER BY t.popularity DESC, t.id ASC
SKIP $skip
LIMIT $limit`

// PreferenceTracks pages through popular tracks for profile building,
// skipping genres the user rates below 3 on average.
func (a *Adapter) PreferenceTracks(ctx context.Context, userID string, limit, page int) ([]domain.Track, error) {
	session := a.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]domain.Track, error) {
		disliked := []any{}
		res, err := tx.Run(ctx, dislikedGenresCypher, map[string]any{"user_id": userID})
		if err != nil {
			return nil, fmt.Errorf("neo4j: disliked genres: %w", err)
		}
		if rec, err := res.Single(ctx); err == nil {
			if v, found := rec.Get("disliked_genres"); found {
				if list, ok := v.([]any); ok {
					disliked = list
				}
			}
		}

		res, err = tx.Run(ctx, preferenceTracksCypher, map[string]any{
			"disliked_genres": disliked,
			"skip":            page * limit,
			"limit":           limit,
		})
		if err != nil {
			return nil, fmt.Errorf("neo4j: preference tracks: %w", err)
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, fmt.Errorf("neo4j: collect: %w", err)
		}
		tracks := make([]domain.Track, 0, len(records))
		for _, rec := range records {
			tracks = append(tracks, trackFromRow(rec.AsMap()))
		}
		return tracks, nil
	})
}

const savePreferencesCypher = `
MERGE (u:User {id: $user_id})
WITH u
UNWIND $pairs AS pr
MATCH (t:Track {id: pr.id})
MERGE (u)-[r:LIKES]->(t)
SET r.rating = pr.rating`

// SavePreferences upserts the user's track ratings (0-5).
func (a *Adapter) SavePreferences(ctx context.Context, userID string, ratings map[string]int) error {
	if len(ratings) == 0 {
		return nil
	}
	pairs := make([]map[string]any, 0, len(ratings))
	for id, rating := range ratings {
		pairs = append(pairs, map[string]any{"id": id, "rating": rating})
	}

	session := a.newSession(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	_, err := neo4j.ExecuteWrite(ctx, session, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, savePreferencesCypher, map[string]any{
			"user_id": userID,
			"pairs":   pairs,
		})
		return nil, err
	})
	if err != nil {
		return fmt.Errorf("neo4j: save preferences: %w", err)
	}
	return nil
}

const artistExistsCypher = `
MATCH (a:Artist)
WHERE toLower(a.name) CONTAINS toLower($name)
RETURN count(a) > 0 AS exists`

func (a *Adapter) ArtistExists(ctx context.Context, name string) (bool, error) {
	session := a.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) (bool, error) {
		res, err := tx.Run(ctx, artistExistsCypher, map[string]any{"name": name})
		if err != nil {
			return false, fmt.Errorf("neo4j: artist exists: %w", err)
		}
		rec, err := res.Single(ctx)
		if err != nil {
			return false, nil
		}
		if v, found := rec.Get("exists"); found {
			exists, _ := v.(bool)
			return exists, nil
		}
		return false, nil
	})
}

func (a *Adapter) newSession(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return a.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: a.database,
		AccessMode:   mode,
	})
}

func (a *Adapter) readTracks(ctx context.Context, cypher string, params map[string]any) ([]domain.Track, error) {
	session := a.newSession(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	return neo4j.ExecuteRead(ctx, session, func(tx neo4j.ManagedTransaction) ([]domain.Track, error) {
		res, err := tx.Run(ctx, cypher, params)
		if err != nil {
			return nil, fmt.Errorf("neo4j: run query: %w", err)
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, fmt.Errorf("neo4j: collect: %w", err)
		}
		tracks := make([]domain.Track, 0, len(records))
		for _, rec := range records {
			tracks = append(tracks, trackFromRow(rec.AsMap()))
		}
		return tracks, nil
	})
}

func toFloat64s(vec []float32) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = float64(v)
	}
	return out
}
