package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/avelasco/acorde/internal/core/domain"
	"github.com/avelasco/acorde/internal/core/ports"
)

// --- Mocks ---

type mockSearcher struct {
	tracks []domain.Track
	err    error

	calledQuery string
	calledK     int
	calledGenre string
}

func (m *mockSearcher) Search(ctx context.Context, query string, k int, genreFilter string) ([]domain.Track, error) {
	m.calledQuery = query
	m.calledK = k
	m.calledGenre = genreFilter
	if m.err != nil {
		return nil, m.err
	}
	return m.tracks, nil
}

type mockGenerator struct {
	text string
	err  error

	called bool
	prompt string
}

func (m *mockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	m.called = true
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func pool() []domain.Track {
	return []domain.Track{
		{ID: "1", Title: "Uno", Artist: "Artista A", Genres: []string{"pop"}, Popularity: intPtr(70)},
		{ID: "2", Title: "Dos", Artist: "Artista A", Genres: []string{"pop"}},
		{ID: "3", Title: "Tres", Artist: "Artista B", Genres: []string{"indie"}},
		{ID: "4", Title: "Cuatro", Artist: "Artista A", Genres: []string{"rock"}},
		{ID: "5", Title: "Cinco", Artist: "Artista C", Genres: []string{"rock"}},
	}
}

func newTestRecommender(s ports.TrackSearcher, g ports.TextGenerator) *Recommender {
	return NewRecommender(s, g, stubDetector{}, zap.NewNop())
}

// --- Tests ---

func TestRecommender_ShortQuery(t *testing.T) {
	searcher := &mockSearcher{tracks: pool()}
	r := newTestRecommender(searcher, &mockGenerator{})

	got, err := r.Recommend(context.Background(), "  eh ", 0)

	require.NoError(t, err)
	assert.Equal(t, TellMeMorePrompt, got)
	assert.Empty(t, searcher.calledQuery, "search must not run for short input")
}

func TestRecommender_NoCandidates(t *testing.T) {
	tests := []struct {
		name     string
		searcher *mockSearcher
	}{
		{"empty result", &mockSearcher{tracks: nil}},
		{"no-matches sentinel", &mockSearcher{err: ports.NoMatchesError{Query: "q"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRecommender(tc.searcher, &mockGenerator{})
			got, err := r.Recommend(context.Background(), "canciones de rock", 0)
			require.NoError(t, err)
			assert.Equal(t, ApologyResponse, got)
		})
	}
}

func TestRecommender_SearchInfraError(t *testing.T) {
	r := newTestRecommender(&mockSearcher{err: errors.New("connection refused")}, &mockGenerator{})

	_, err := r.Recommend(context.Background(), "canciones de rock", 0)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "service: search failed")
}

func TestRecommender_OverFetchAndGenreHint(t *testing.T) {
	searcher := &mockSearcher{tracks: pool()}
	r := newTestRecommender(searcher, &mockGenerator{err: errors.New("down")})

	_, err := r.Recommend(context.Background(), "dame 9 canciones de rock", 0)

	require.NoError(t, err)
	assert.Equal(t, 72, searcher.calledK, "9*8 exceeds the floor")
	assert.Equal(t, "rock", searcher.calledGenre)

	_, err = r.Recommend(context.Background(), "dame 2 canciones de rock", 0)
	require.NoError(t, err)
	assert.Equal(t, 50, searcher.calledK, "floor applies below 50")
}

func TestRecommender_ExplicitKWins(t *testing.T) {
	searcher := &mockSearcher{tracks: pool()}
	r := newTestRecommender(searcher, &mockGenerator{err: errors.New("down")})

	got, err := r.Recommend(context.Background(), "dame 9 canciones", 2)

	require.NoError(t, err)
	assert.Equal(t, 50, searcher.calledK, "floor still applies to explicit k")
	list := strings.Split(got, explanationSeparator)[0]
	assert.Len(t, strings.Split(list, "\n"), 2)
}

func TestRecommender_FallsBackToRawWhenFilterEmpties(t *testing.T) {
	// every candidate fails the script check, so the filter empties the
	// list; the pipeline must fall back to raw instead of apologizing
	raw := []domain.Track{
		{ID: "1", Title: "사건의 지평선", Artist: "윤하"},
		{ID: "2", Title: "夜に駆ける", Artist: "YOASOBI"},
	}
	r := newTestRecommender(&mockSearcher{tracks: raw}, &mockGenerator{err: errors.New("down")})

	got, err := r.Recommend(context.Background(), "canciones coreanas", 0)

	require.NoError(t, err)
	assert.NotEqual(t, ApologyResponse, got)
	assert.Contains(t, got, "사건의 지평선")
}

func TestRecommender_GeneratorFailureKeepsSafeExplanation(t *testing.T) {
	gen := &mockGenerator{err: errors.New("timeout")}
	r := newTestRecommender(&mockSearcher{tracks: pool()}, gen)

	query := "dame 3 canciones"
	got, err := r.Recommend(context.Background(), query, 0)

	require.NoError(t, err)
	assert.True(t, gen.called)

	results := pool()[:3] // cap 2 keeps Uno, Dos, Tres as the first three
	want := SanitizeExplanation(SafeExplanation(query, results), results)
	parts := strings.SplitN(got, explanationSeparator, 2)
	require.Len(t, parts, 2)
	assert.Equal(t, want, parts[1])
}

func TestRecommender_AcceptsCleanGeneratedText(t *testing.T) {
	gen := &mockGenerator{text: " \"Una mezcla con mucho ritmo que mantiene la energía arriba sin repetirse demasiado.\" "}
	r := newTestRecommender(&mockSearcher{tracks: pool()}, gen)

	got, err := r.Recommend(context.Background(), "dame 3 canciones", 0)

	require.NoError(t, err)
	assert.Contains(t, got, "Una mezcla con mucho ritmo", "surrounding quotes stripped, text kept")
	assert.NotContains(t, got, `"`, "quotes do not survive")
}

func TestRecommender_RejectsHallucinatedText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"year token", "Estas canciones definieron el sonido de 2019 en todo el mundo entero."},
		{"refusal", "Lo siento, no puedo generar una explicación para esta petición concreta."},
		{"too short", "Buen ritmo."},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gen := &mockGenerator{text: tc.text}
			r := newTestRecommender(&mockSearcher{tracks: pool()}, gen)

			query := "dame 3 canciones"
			got, err := r.Recommend(context.Background(), query, 0)

			require.NoError(t, err)
			results := pool()[:3]
			want := SanitizeExplanation(SafeExplanation(query, results), results)
			assert.True(t, strings.HasSuffix(got, want), "fallback explanation expected, got %q", got)
		})
	}
}

func TestRecommender_PromptNeverLeaksIdentifiers(t *testing.T) {
	gen := &mockGenerator{err: errors.New("down")}
	r := newTestRecommender(&mockSearcher{tracks: pool()}, gen)

	_, err := r.Recommend(context.Background(), "dame 3 canciones", 0)

	require.NoError(t, err)
	require.True(t, gen.called)
	for _, tr := range pool() {
		assert.NotContains(t, gen.prompt, tr.Title)
		assert.NotContains(t, gen.prompt, tr.Artist)
	}
}

func TestRecommender_DiversityRelaxesWhenStarved(t *testing.T) {
	// one artist dominates the pool; cap 2 yields too few for k=4, so the
	// limiter re-runs at cap 3
	concentrated := []domain.Track{
		{ID: "1", Title: "Uno", Artist: "Solo"},
		{ID: "2", Title: "Dos", Artist: "Solo"},
		{ID: "3", Title: "Tres", Artist: "Solo"},
		{ID: "4", Title: "Cuatro", Artist: "Solo"},
		{ID: "5", Title: "Cinco", Artist: "Otro"},
	}
	r := newTestRecommender(&mockSearcher{tracks: concentrated}, &mockGenerator{err: errors.New("down")})

	got, err := r.Recommend(context.Background(), "dame 4 canciones", 0)

	require.NoError(t, err)
	list := strings.Split(got, explanationSeparator)[0]
	lines := strings.Split(list, "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Uno")
	assert.Contains(t, lines[2], "Tres", "third track of the dominant artist admitted at cap 3")
}

func TestAssembleResponse(t *testing.T) {
	tracks := []domain.Track{
		{Title: "Uno", Artist: "A", Genres: []string{"pop", "latin"}, Popularity: intPtr(55)},
		{Title: "Dos", Artist: "B"},
	}

	got := AssembleResponse(tracks, "Una explicación.")

	assert.Equal(t,
		"1. Uno – A (pop, latin, popularidad 55)\n2. Dos – B (sin género)\n\nExplicación:\nUna explicación.",
		got)
}
