package theory

import (
	"fmt"
	"strings"
)

var numerals = [7]string{"I", "II", "III", "IV", "V", "VI", "VII"}

// Encode renders a parsed chord as a Roman numeral relative to C major.
//
// Unknown roots produce "Chord <token> not recognized" so a progression keeps its length.
func Encode(c ParsedChord) string {
	degree, err := DegreeOf(c.Root)
	if err != nil {
		return Unrecognized(c.Token)
	}

	numeral := numerals[degree]
	switch c.Quality {
	case Diminished:
		numeral += "°"
	case Augmented:
		numeral += "+"
	case Minor:
		numeral = strings.ToLower(numeral)
	}
	return numeral + c.Suffix
}

// EncodeToken parses and encodes a raw chord symbol.
func EncodeToken(token string) string {
	return Encode(Parse(token))
}

// Unrecognized is the placeholder emitted for a chord whose root is not in the root table.
func Unrecognized(token string) string {
	return fmt.Sprintf("Chord %s not recognized", token)
}

// IsUnrecognized reports whether an encoded chord is the unknown-root placeholder.
func IsUnrecognized(encoded string) bool {
	return strings.HasPrefix(encoded, "Chord ") && strings.HasSuffix(encoded, " not recognized")
}
