package layout

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Default marker substrings recognized as heading/opening lines. Page sources
// carry the basmala in full; the surah marker is the word سُورَةُ that Madani
// page text places before every chapter title.
const (
	DefaultBasmalaMarker = "بِسْمِ ٱللَّهِ"
	DefaultSurahMarker   = "سُورَةُ"
)

// Classifier decides a line's alignment role from its position and content.
// The zero value is not usable; use DefaultClassifier or build one from a
// profile's markers section.
type Classifier struct {
	BasmalaMarker string `json:"basmalaMarker"`
	SurahMarker   string `json:"surahMarker"`
}

// DefaultClassifier recognizes the standard Madani markers.
var DefaultClassifier = Classifier{
	BasmalaMarker: DefaultBasmalaMarker,
	SurahMarker:   DefaultSurahMarker,
}

// Classify returns the alignment role for a line. The first line of a page is
// always centered; elsewhere a line is centered only if it contains a
// recognized opening marker. Pure and total.
func (c Classifier) Classify(index int, text string) AlignmentRole {
	if index == 1 {
		return Centered
	}
	t := norm.NFC.String(text)
	if c.BasmalaMarker != "" && strings.Contains(t, norm.NFC.String(c.BasmalaMarker)) {
		return Centered
	}
	if c.SurahMarker != "" && strings.Contains(t, norm.NFC.String(c.SurahMarker)) {
		return Centered
	}
	return Justified
}

// Classify applies DefaultClassifier.
func Classify(index int, text string) AlignmentRole {
	return DefaultClassifier.Classify(index, text)
}
