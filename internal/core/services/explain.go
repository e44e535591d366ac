package services

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/avelasco/acorde/internal/core/domain"
)

// The explanation shown to the user is either the deterministic template
// below or a generated text that survived the hallucination gate. Both go
// through SanitizeExplanation before assembly.

const minExplanationRunes = 20

const maxExplanationTokens = 60

// refusalMarkers are model refusals dressed as explanations.
var refusalMarkers = []string{
	"lo siento", "no puedo ayudarte", "no puedo ayudar", "no tengo información",
	"no dispongo de información", "no tengo datos", "no puedo crear una explicación",
	"no puedo generar", "no estoy seguro",
}

// bannedPhrases reference the user, the backing graph, or invented context.
var bannedPhrases = []string{
	"este álbum", "podrías considerar", "en este contexto",
	"según las características del grafo", "base de datos", "grafo",
	"este usuario", "su agradecimiento",
	"me hace sentir cómodo", "del usuario",
}

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

var (
	affectionRe   = regexp.MustCompile(`(?i)\bme encanta\b`)
	comfortRe     = regexp.MustCompile(`(?i)me hace sentir cómodo`)
	delUsuarioRe  = regexp.MustCompile(`(?i)\bdel usuario\b`)
	usuarioRe     = regexp.MustCompile(`(?i)\busuario\b`)
	esteUsuarioRe = regexp.MustCompile(`(?i)\beste usuario\b`)
	multiSpaceRe  = regexp.MustCompile(`\s{2,}`)
)

// SafeExplanation builds the deterministic fallback rationale. It aggregates
// genre frequency and mean popularity across the final tracks and never
// mentions a title or artist, so it cannot leak. It never fails.
func SafeExplanation(query string, tracks []domain.Track) string {
	genresTxt := topGenres(tracks, 3)
	if genresTxt == "" {
		genresTxt = "varios estilos"
	}
	popAvg, hasPop := meanPopularity(tracks)

	q := strings.ToLower(query)
	likedArtist := containsAny(q, domain.LikedArtistPhrases)

	var mood string
	switch {
	case containsAny(q, domain.RelaxWords):
		mood = "un ambiente tranquilo y relajado"
	case containsAny(q, domain.PartyWords):
		mood = "más energía y ritmo"
	case containsAny(q, domain.StudyWords):
		mood = "acompañar sin distraer"
	default:
		mood = "un rollo parecido a lo que buscas"
	}

	var first string
	if likedArtist {
		tone := "en la línea de lo que sueles escuchar"
		if strings.Contains(genresTxt, "pop") {
			tone = "pegadizos y modernos"
		}
		first = fmt.Sprintf("Te he dejado temas bastante %s, tirando a %s.", tone, genresTxt)
	} else {
		first = fmt.Sprintf("La selección mantiene %s, con predominio de %s.", mood, genresTxt)
	}

	if hasPop {
		return fmt.Sprintf("%s Además, la mayoría son bastante accesibles (popularidad media ~%d), ideales para entrar rápido.", first, popAvg)
	}
	return first + " Si me dices 1–2 canciones que te encanten, lo ajusto aún más."
}

// BuildExplanationPrompt gives the generator only aggregate, non-identifying
// signals: up to four distinct genres and the rounded mean popularity.
// Titles and artist names never enter the prompt.
func BuildExplanationPrompt(query string, tracks []domain.Track) string {
	var genres []string
	seen := make(map[string]struct{})
	for _, t := range tracks {
		for _, g := range t.Genres {
			if g == "" {
				continue
			}
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			genres = append(genres, g)
		}
	}
	genresTxt := "varios estilos"
	if len(genres) > 0 {
		if len(genres) > 4 {
			genres = genres[:4]
		}
		genresTxt = strings.Join(genres, ", ")
	}

	popTxt := "popularidad variada"
	if avg, ok := meanPopularity(tracks); ok {
		popTxt = fmt.Sprintf("popularidad media ~%d", avg)
	}

	return strings.TrimSpace(fmt.Sprintf(`
Petición del usuario: %q

Contexto real de la selección:
- Estilos presentes: %s
- Nivel de popularidad: %s

Escribe una explicación breve en español (2 o 3 frases) de por qué esta selección le puede gustar.

REGLAS:
- Tono natural y cercano (como un amigo).
- No menciones títulos ni artistas (ni siquiera el que ha dicho el usuario).
- No digas “este usuario…”.
- No inventes hechos (años, álbumes, biografías, premios).
- Nada de poesía o frases raras.
- No hables del grafo/base de datos/modelo.
- Evita frases genéricas tipo “encaja con lo que pedías”.

FORMATO:
- 2 o 3 frases.
- Máximo 40 palabras.
Devuelve SOLO el texto.
`, query, genresTxt, popTxt))
}

// LooksHallucinated rejects generated text that smells fabricated or unsafe:
// too short, refusal boilerplate, multi-line, quoted material, year-like
// tokens, references to the user or the backing graph, or rambling past 60
// tokens. Rejection means the deterministic fallback is kept.
func LooksHallucinated(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minExplanationRunes {
		return true
	}

	t := strings.ToLower(trimmed)
	for _, m := range refusalMarkers {
		if strings.Contains(t, m) {
			return true
		}
	}

	if strings.Contains(trimmed, "\n") {
		return true
	}
	if strings.ContainsAny(text, `"`) || strings.Contains(text, "“") || strings.Contains(text, "”") {
		return true
	}
	if yearRe.MatchString(text) {
		return true
	}
	for _, bp := range bannedPhrases {
		if strings.Contains(t, bp) {
			return true
		}
	}
	return len(strings.Fields(text)) > maxExplanationTokens
}

// SanitizeExplanation rewrites dispreferred phrasing and scrubs any final
// track title or artist that slipped into the text, replacing them with
// generic placeholders. It runs on every explanation, fallback included,
// and applying it to its own output changes nothing.
func SanitizeExplanation(text string, tracks []domain.Track) string {
	if text == "" {
		return text
	}
	out := text
	out = affectionRe.ReplaceAllString(out, "queda muy bien")
	out = comfortRe.ReplaceAllString(out, "va muy bien para desconectar")
	out = delUsuarioRe.ReplaceAllString(out, "")
	out = usuarioRe.ReplaceAllString(out, "tú")

	for _, t := range tracks {
		if title := strings.TrimSpace(t.Title); title != "" {
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(title))
			out = re.ReplaceAllString(out, "estas canciones")
		}
		if artist := strings.TrimSpace(t.Artist); artist != "" {
			re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(artist))
			out = re.ReplaceAllString(out, "ese artista")
		}
	}

	out = esteUsuarioRe.ReplaceAllString(out, "tú")
	out = multiSpaceRe.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

// topGenres returns the n most frequent lowercased genre tags, ties broken
// by first encounter, joined with commas. Empty when no track has genres.
func topGenres(tracks []domain.Track, n int) string {
	counts := make(map[string]int)
	var order []string
	for _, t := range tracks {
		for _, g := range t.Genres {
			key := strings.ToLower(g)
			if key == "" {
				continue
			}
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}
	if len(order) == 0 {
		return ""
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return strings.Join(order, ", ")
}

// meanPopularity averages popularity over tracks that carry one.
func meanPopularity(tracks []domain.Track) (int, bool) {
	sum, count := 0, 0
	for _, t := range tracks {
		if t.Popularity != nil {
			sum += *t.Popularity
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return int(math.Round(float64(sum) / float64(count))), true
}
