package theory

import (
	"errors"
	"fmt"
)

// ErrUnrecognizedRoot is returned when a root name is not in the root table.
var ErrUnrecognizedRoot = errors.New("unrecognized root")

// PitchClass is a semitone position in [0,11], 0 = C.
type PitchClass int

// Shift moves p by n semitones, wrapping around the octave.
func (p PitchClass) Shift(n int) PitchClass {
	return PitchClass(wrap(int(p) + n))
}

// rootTable order is significant: the degree of a root is its index mod 7.
var rootTable = [...]string{
	"C", "D", "E", "F", "G", "A", "B",
	"C#", "D#", "F#", "G#", "A#",
	"Db", "Eb", "Gb", "Ab", "Bb",
}

var (
	sharpNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}
	flatNames  = [12]string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
)

// DegreeOf returns the zero-based scale degree used for numeral rendering.
func DegreeOf(root string) (int, error) {
	for i, name := range rootTable {
		if name == root {
			return i % 7, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedRoot, root)
}

// PitchOf returns the sounding pitch class of a root name.
//
// Unlike [DegreeOf] it treats enharmonic spellings as equal. It is only used to re-render
// charts in a new key.
func PitchOf(root string) (PitchClass, error) {
	for pc := range 12 {
		if sharpNames[pc] == root || flatNames[pc] == root {
			return PitchClass(pc), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnrecognizedRoot, root)
}

// SpellPitch names a pitch class with sharps, or flats when flats is set.
func SpellPitch(pc PitchClass, flats bool) string {
	if flats {
		return flatNames[wrap(int(pc))]
	}
	return sharpNames[wrap(int(pc))]
}

func wrap(n int) int {
	return ((n % 12) + 12) % 12
}
