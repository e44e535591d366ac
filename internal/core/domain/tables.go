package domain

// Fixed lookup tables for the pipeline. These are data, not code: loaded once
// as package-level read-only state and shared across requests. None of them
// is ever mutated after init.

// GenreKeyword maps a query keyword to its canonical genre tag.
type GenreKeyword struct {
	Keyword string
	Genre   string
}

// GenreKeywords is scanned in order; the first keyword contained in the
// query wins. Multi-word and hyphenated spellings map to one canonical tag.
var GenreKeywords = []GenreKeyword{
	{"rock", "rock"},
	{"pop", "pop"},
	{"latin", "latin"},
	{"reggaeton", "reggaeton"},
	{"reggaetón", "reggaeton"},
	{"indie", "indie"},
	{"acoustic", "acoustic"},
	{"metal", "metal"},
	{"jazz", "jazz"},
	{"hip hop", "hip hop"},
	{"hip-hop", "hip hop"},
	{"rap", "rap"},
}

// BlockedGenres are tags outside the target market; a candidate carrying any
// of them (exact match, lowercased) is dropped by the content filter.
var BlockedGenres = map[string]struct{}{
	"korean":     {},
	"japanese":   {},
	"turkish":    {},
	"arabic":     {},
	"cantopop":   {},
	"indian":     {},
	"thai":       {},
	"russian":    {},
	"brazilian":  {},
	"latin jazz": {},
	"anime":      {},
	"j-pop":      {},
	"gaming":     {},
	"world":      {},
	"afrobeats":  {},
}

// Mood word stems. Substring containment against the lowercased query, so
// "estudi" covers estudiar, estudio, estudiando.
var (
	RelaxWords = []string{"relajar", "relajado", "relajada", "tranquila", "tranquilo", "calma", "chill", "suave", "descansar"}
	StudyWords = []string{"estudi", "concentr", "focus", "trabajar"}
	PartyWords = []string{"fiesta", "bail", "gym", "entren", "energ", "motivar"}
)

// Genre tags feeding the calmness score.
var (
	CalmGenres = map[string]struct{}{
		"lofi": {}, "ambient": {}, "acoustic": {}, "chill": {},
		"study": {}, "piano": {}, "classical": {}, "soul": {},
	}
	NoisyGenres = map[string]struct{}{
		"gaming": {}, "hardstyle": {}, "edm": {}, "metal": {},
		"techno": {}, "drum and bass": {},
	}
)

// Language policy trigger phrases (Spanish and English variants).
var (
	AnyLanguagePhrases = []string{
		"cualquier idioma", "da igual el idioma", "en cualquier idioma",
		"me da igual el idioma", "idioma indistinto", "any language",
	}
	OnlySpanishEnglishPhrases = []string{
		"solo español", "solo espanol", "solo inglés", "solo ingles",
		"solo español o inglés", "solo espanol o ingles",
		"en español o inglés", "en espanol o ingles",
		"spanish or english",
	}
)

// LikedArtistPhrases flag queries of the "me gusta X" kind so the fallback
// explanation can phrase itself less like a template.
var LikedArtistPhrases = []string{"me gusta", "me encant", "me flipa"}
