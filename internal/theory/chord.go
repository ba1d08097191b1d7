package theory

import (
	"strings"
	"unicode/utf8"
)

// Quality is the chord quality that drives numeral case and symbol.
type Quality int

const (
	Major Quality = iota
	Minor
	Diminished
	Augmented
)

func (q Quality) String() string {
	switch q {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Diminished:
		return "diminished"
	case Augmented:
		return "augmented"
	default:
		return ""
	}
}

// ParsedChord is a chord symbol split into its parts.
type ParsedChord struct {
	Token   string  // Token as it appeared in the chart
	Root    string  // One or two character root, e.g. "A" or "Bb"
	Quality Quality // Resolved quality
	Suffix  string  // Lower-cased leftover text, e.g. "7" or "sus4"
}

// Parse splits a chord symbol into root, quality and residual suffix.
//
// The bass note of a slash chord is dropped. Parse never fails: an unknown root is carried
// through and reported by [Encode].
func Parse(token string) ParsedChord {
	chord := token
	if i := strings.IndexByte(chord, '/'); i >= 0 {
		chord = chord[:i]
	}

	parsed := ParsedChord{Token: token}
	if chord == "" {
		return parsed
	}

	_, size := utf8.DecodeRuneInString(chord)
	if len(chord) > size && (chord[size] == '#' || chord[size] == 'b') {
		size++
	}
	parsed.Root = chord[:size]

	suffix := strings.ToLower(chord[size:])
	parsed.Quality = qualityOf(suffix)
	parsed.Suffix = residual(suffix)
	return parsed
}

// qualityOf resolves the quality markers in a lower-cased suffix. Only the first matching
// marker counts, so "dim" is never also read as minor.
func qualityOf(suffix string) Quality {
	switch {
	case strings.Contains(suffix, "maj"):
		return Major
	case strings.Contains(suffix, "dim"):
		return Diminished
	case strings.Contains(suffix, "aug"):
		return Augmented
	case strings.Contains(suffix, "m"), strings.Contains(suffix, "min"):
		return Minor
	default:
		return Major
	}
}

// residual strips quality markers. "aug" is left in place.
func residual(suffix string) string {
	for _, marker := range []string{"maj", "min", "dim", "m"} {
		suffix = strings.ReplaceAll(suffix, marker, "")
	}
	return suffix
}
