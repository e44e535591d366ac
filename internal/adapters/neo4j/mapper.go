package neo4j

import "github.com/avelasco/acorde/internal/core/domain"

// trackFromRow converts one result row into a domain Track. Graph values
// arrive loosely typed; anything missing or of the wrong type maps to the
// zero value, and an absent popularity stays nil.
func trackFromRow(row map[string]any) domain.Track {
	t := domain.Track{
		ID:     stringValue(row["id"]),
		Title:  stringValue(row["title"]),
		Artist: stringValue(row["artist"]),
	}

	if genres, ok := row["genres"].([]any); ok {
		for _, g := range genres {
			if s := stringValue(g); s != "" {
				t.Genres = append(t.Genres, s)
			}
		}
	}

	switch pop := row["popularity"].(type) {
	case int64:
		p := int(pop)
		t.Popularity = &p
	case float64:
		p := int(pop)
		t.Popularity = &p
	}

	if score, ok := row["score"].(float64); ok {
		t.Score = score
	}

	return t
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
