package ports

// LanguageDetector identifies the natural language of a short text.
// ok=false is the explicit Unknown result: detection that cannot decide
// must report it instead of erroring, and consumers treat Unknown as a pass
// (fail-open).
type LanguageDetector interface {
	Detect(text string) (code string, ok bool)
}
