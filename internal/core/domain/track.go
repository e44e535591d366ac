package domain

// Track is a candidate returned by the search collaborator. Pipeline stages
// never mutate a Track; every stage produces a new slice referencing the
// same records.
type Track struct {
	ID         string
	Title      string
	Artist     string // possibly a comma-joined list of collaborators
	Genres     []string
	Popularity *int // 0-100, nil when the graph has no value
	Score      float64
}

// Pop returns the track popularity, or 0 when absent.
func (t Track) Pop() int {
	if t.Popularity == nil {
		return 0
	}
	return *t.Popularity
}
