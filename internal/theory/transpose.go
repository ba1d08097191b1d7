package theory

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Mode follows the catalog convention: 0 is minor, 1 is major.
type Mode int

const (
	ModeMinor Mode = 0
	ModeMajor Mode = 1
)

func (m Mode) String() string {
	if m == ModeMinor {
		return "minor"
	}
	return "major"
}

// Direction is the way a [Plan] shifts the chart.
type Direction int

const (
	None Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// Plan is a number of single-semitone shifts in one direction.
type Plan struct {
	Direction Direction
	Count     int
}

func (p Plan) String() string {
	if p.Direction == None || p.Count == 0 {
		return "none"
	}
	return fmt.Sprintf("%s %d", p.Direction, p.Count)
}

// Shifter is the capability that moves a rendered chart by one semitone.
type Shifter interface {
	ShiftUp(ctx context.Context) error
	ShiftDown(ctx context.Context) error
}

// Diagnostics receives non-fatal warnings. A [log.Logger] from charmbracelet/log satisfies it.
type Diagnostics interface {
	Warn(msg any, keyvals ...any)
}

type discard struct{}

func (discard) Warn(any, ...any) {}

// PlanShift computes the shifts that bring a song in key/mode, played with capo, to C major.
//
// Minor keys are first moved to their relative major and the capo is added back. Keys one to
// five semitones above C shift down, the rest shift up.
func PlanShift(key PitchClass, mode Mode, capo int) Plan {
	k := key.Shift(0)
	if mode == ModeMinor {
		k = k.Shift(3)
	}
	if capo != 0 {
		k = k.Shift(capo)
	}

	switch {
	case k == 0:
		return Plan{Direction: None}
	case k <= 5:
		return Plan{Direction: Down, Count: int(k)}
	default:
		return Plan{Direction: Up, Count: 12 - int(k)}
	}
}

// ApplyPlan invokes the shifter once per step of the plan.
//
// The resulting key is not verified. Only a shifter error or a cancelled context stops early.
func ApplyPlan(ctx context.Context, s Shifter, p Plan) error {
	shift := s.ShiftUp
	switch p.Direction {
	case None:
		return nil
	case Down:
		shift = s.ShiftDown
	}

	for i := 0; i < p.Count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := shift(ctx); err != nil {
			return fmt.Errorf("shift %s %d/%d: %w", p.Direction, i+1, p.Count, err)
		}
	}
	return nil
}

var digits = regexp.MustCompile(`\d+`)

// ParseCapo reads a capo cell such as "2nd fret" or "no capo".
//
// Missing or unreadable values are treated as no capo and reported to sink.
func ParseCapo(text string, sink Diagnostics) int {
	if sink == nil {
		sink = discard{}
	}

	text = strings.TrimSpace(text)
	switch {
	case text == "":
		sink.Warn("capo not found, defaulting to 0")
		return 0
	case strings.EqualFold(text, "no capo"):
		return 0
	}

	match := digits.FindString(text)
	if match == "" {
		sink.Warn("capo unreadable, defaulting to 0", "capo", text)
		return 0
	}

	capo, err := strconv.Atoi(match)
	if err != nil {
		sink.Warn("capo unreadable, defaulting to 0", "capo", text, "error", err)
		return 0
	}
	return capo
}

// TransposeToken moves the root and bass of a chord symbol by semitones.
//
// Each note keeps the accidental style it was written in, naturals are spelled with sharps.
// Tokens whose root is unknown are returned unchanged.
func TransposeToken(token string, semitones int) string {
	if wrap(semitones) == 0 {
		return token
	}

	chord, bass, slash := strings.Cut(token, "/")
	out, ok := transposeNote(chord, semitones)
	if !ok {
		return token
	}
	if slash {
		if moved, ok := transposeNote(bass, semitones); ok {
			bass = moved
		}
		out += "/" + bass
	}
	return out
}

func transposeNote(s string, semitones int) (string, bool) {
	if s == "" {
		return s, false
	}
	n := 1
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		n = 2
	}
	pc, err := PitchOf(s[:n])
	if err != nil {
		return s, false
	}
	flats := n == 2 && s[1] == 'b'
	return SpellPitch(pc.Shift(semitones), flats) + s[n:], true
}
