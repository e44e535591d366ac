// Package lingua implements the language-detection port on top of the
// lingua-go classifier. Detection is fail-open: anything the classifier
// cannot decide comes back as Unknown and the filter treats it as a pass.
package lingua

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// candidateLanguages restricts the classifier to the languages that matter
// for the market filter. A smaller set keeps short title+artist texts from
// being claimed by exotic languages.
var candidateLanguages = []lingua.Language{
	lingua.Spanish,
	lingua.English,
	lingua.Portuguese,
	lingua.French,
	lingua.Italian,
	lingua.German,
	lingua.Japanese,
	lingua.Korean,
	lingua.Russian,
	lingua.Arabic,
	lingua.Turkish,
}

type Detector struct {
	inner lingua.LanguageDetector
}

func NewDetector() *Detector {
	return &Detector{
		inner: lingua.NewLanguageDetectorBuilder().
			FromLanguages(candidateLanguages...).
			Build(),
	}
}

// Detect returns the lowercased ISO 639-1 code of the detected language.
// ok is false when the classifier cannot decide.
func (d *Detector) Detect(text string) (string, bool) {
	lang, ok := d.inner.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
