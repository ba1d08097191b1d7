package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/chordex/internal/shared"
	"github.com/desertthunder/chordex/internal/theory"
	"github.com/urfave/cli/v3"
)

// parseMode accepts "major"/"minor" and the catalog's numeric convention.
func parseMode(s string) (theory.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "major", "maj", "1":
		return theory.ModeMajor, nil
	case "minor", "min", "m", "0":
		return theory.ModeMinor, nil
	}
	return theory.ModeMajor, fmt.Errorf("%w: mode %q (want major or minor)", shared.ErrInvalidFlag, s)
}

// TheoryPlan prints the shift that moves a song in the given key to C major.
func (r *Runner) TheoryPlan(ctx context.Context, cmd *cli.Command) error {
	key := cmd.Int("key")
	if key < 0 || key > 11 {
		return fmt.Errorf("%w: key %d is not a pitch class 0-11", shared.ErrInvalidFlag, key)
	}

	mode, err := parseMode(cmd.String("mode"))
	if err != nil {
		return err
	}

	capo := 0
	if cmd.IsSet("capo") {
		capo = theory.ParseCapo(cmd.String("capo"), r.logger)
	}

	plan := theory.PlanShift(theory.PitchClass(key), mode, capo)
	r.writePlain("%s %s, capo %d: %s\n", theory.SpellPitch(theory.PitchClass(key), false), mode, capo, plan)
	return nil
}

// TheoryRoman prints the Roman numeral of every chord argument.
func (r *Runner) TheoryRoman(ctx context.Context, cmd *cli.Command) error {
	tokens := cmd.Args().Slice()
	if len(tokens) == 0 {
		return fmt.Errorf("%w: at least one chord", shared.ErrMissingArgument)
	}

	for _, token := range tokens {
		r.writePlain("%-8s %s\n", token, theory.EncodeToken(token))
	}
	return nil
}

// TheoryExtract prints the encoded progressions of a chord stream.
//
// Windows failing the repetition check are marked but still listed.
func (r *Runner) TheoryExtract(ctx context.Context, cmd *cli.Command) error {
	tokens := cmd.Args().Slice()
	if len(tokens) == 0 {
		return fmt.Errorf("%w: at least one chord", shared.ErrMissingArgument)
	}

	extraction := theory.Analyze(tokens, cmd.Int("window"))
	if cmd.Bool("json") {
		return r.writeJSON(extraction, true)
	}

	if len(extraction.Progressions) == 0 {
		r.writePlain("No progressions: %d chords is shorter than the window\n", len(tokens))
		return nil
	}

	for i, progression := range extraction.Progressions {
		mark := " "
		if !extraction.Mask[i] {
			mark = "!"
		}
		r.writePlain("%s %s\n", mark, strings.Join(progression, " - "))
	}
	r.writePlainln("%d progressions, %d repetitive", len(extraction.Progressions), extraction.Invalid())
	return nil
}
