package domain

// Mood is the resolved mood signal for a query. When several mood word sets
// match, priority is relax > study > party.
type Mood string

const (
	MoodRelax Mood = "relax"
	MoodStudy Mood = "study"
	MoodParty Mood = "party"
	MoodNone  Mood = "none"
)

// LanguagePolicy controls which detected languages survive the content filter.
type LanguagePolicy string

const (
	// LanguageAny disables language filtering entirely.
	LanguageAny LanguagePolicy = "any"
	// LanguageStrictEsEn admits only Spanish and English.
	LanguageStrictEsEn LanguagePolicy = "strict_es_en"
	// LanguageDefaultEsEnPt is the soft default; Portuguese passes because
	// detectors routinely confuse it with Spanish on short titles.
	LanguageDefaultEsEnPt LanguagePolicy = "default_es_en_pt"
)

// QueryIntent holds the structured signals derived from a free-text query.
// It is immutable once extracted. The three mood flags stay independently
// readable even though Mood already resolves their priority, so later stages
// can consult the raw signals (the ranker needs WantsRelax on its own).
type QueryIntent struct {
	RequestedCount int
	GenreHint      string
	WantsRelax     bool
	WantsStudy     bool
	WantsParty     bool
	Mood           Mood
	LanguagePolicy LanguagePolicy
}

// AllowedLanguages returns the ISO 639-1 codes the policy admits, or nil
// when any language is allowed.
func (p LanguagePolicy) AllowedLanguages() []string {
	switch p {
	case LanguageStrictEsEn:
		return []string{"es", "en"}
	case LanguageDefaultEsEnPt:
		return []string{"es", "en", "pt"}
	default:
		return nil
	}
}
