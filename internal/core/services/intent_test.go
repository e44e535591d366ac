package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avelasco/acorde/internal/core/domain"
)

func TestExtractIntent_RequestedCount(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"no digits uses default", "algo de rock para el coche", 7},
		{"first number wins", "dame 3 canciones, o mejor 9", 3},
		{"clamped to max", "ponme 25 temas", 10},
		{"clamped to min", "0 canciones", 1},
		{"number embedded in words", "top5 de jazz", 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractIntent(tc.query)
			assert.Equal(t, tc.want, got.RequestedCount)
			assert.GreaterOrEqual(t, got.RequestedCount, 1)
			assert.LessOrEqual(t, got.RequestedCount, 10)
		})
	}
}

func TestExtractIntent_GenreHint(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"simple match", "quiero rock clásico", "rock"},
		{"case insensitive", "ROCK duro", "rock"},
		{"hyphenated alias canonicalized", "algo de hip-hop", "hip hop"},
		{"two words", "ponme hip hop antiguo", "hip hop"},
		{"accented alias", "reggaetón para el finde", "reggaeton"},
		{"table order decides on overlap", "rock con toques de jazz", "rock"},
		{"no match", "algo para dormir", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractIntent(tc.query).GenreHint)
		})
	}
}

func TestExtractIntent_MoodPriority(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantMood   domain.Mood
		wantRelax  bool
		wantStudy  bool
		wantParty  bool
		wantPolicy domain.LanguagePolicy
	}{
		{
			// relax is checked before study even if both trigger
			name:       "relax and study both present",
			query:      "quiero algo tranquilo para estudiar, dame 3",
			wantMood:   domain.MoodRelax,
			wantRelax:  true,
			wantStudy:  true,
			wantPolicy: domain.LanguageDefaultEsEnPt,
		},
		{
			name:       "study only",
			query:      "música para concentrarme",
			wantMood:   domain.MoodStudy,
			wantStudy:  true,
			wantPolicy: domain.LanguageDefaultEsEnPt,
		},
		{
			name:       "party only",
			query:      "temazos para el gym",
			wantMood:   domain.MoodParty,
			wantParty:  true,
			wantPolicy: domain.LanguageDefaultEsEnPt,
		},
		{
			name:       "no mood",
			query:      "canciones de los ochenta",
			wantMood:   domain.MoodNone,
			wantPolicy: domain.LanguageDefaultEsEnPt,
		},
		{
			name:       "any language phrase",
			query:      "chill en cualquier idioma",
			wantMood:   domain.MoodRelax,
			wantRelax:  true,
			wantPolicy: domain.LanguageAny,
		},
		{
			name:       "strict spanish or english",
			query:      "fiesta pero solo español o inglés",
			wantMood:   domain.MoodParty,
			wantParty:  true,
			wantPolicy: domain.LanguageStrictEsEn,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractIntent(tc.query)
			assert.Equal(t, tc.wantMood, got.Mood)
			assert.Equal(t, tc.wantRelax, got.WantsRelax, "relax flag")
			assert.Equal(t, tc.wantStudy, got.WantsStudy, "study flag")
			assert.Equal(t, tc.wantParty, got.WantsParty, "party flag")
			assert.Equal(t, tc.wantPolicy, got.LanguagePolicy)
		})
	}
}

func TestExtractIntent_ScenarioTranquiloEstudiar(t *testing.T) {
	got := ExtractIntent("quiero algo tranquilo para estudiar, dame 3")

	assert.Equal(t, 3, got.RequestedCount)
	assert.Equal(t, domain.MoodRelax, got.Mood)
	assert.Equal(t, domain.LanguageDefaultEsEnPt, got.LanguagePolicy)
}
