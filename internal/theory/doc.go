// Package theory normalizes chord charts into key-independent Roman-numeral progressions.
//
// # Pitch Model
//
// [DegreeOf] looks a root name up in a fixed 17-entry table (naturals, sharps, flats) and
// returns the table index modulo 7. Enharmonic spellings therefore land on different degrees
// ("C#" is I, "Db" is VI). Charts harvested before this package existed were encoded with the
// same table, so the lookup must stay as it is.
//
// # Transposition
//
// [PlanShift] computes how many semitone shifts move a song from its catalog key, mode and capo
// to C major. [ApplyPlan] drives any [Shifter] through that plan without checking the result.
//
// # Encoding
//
// [Parse] splits a chord symbol into root, [Quality] and residual suffix, and [Encode] renders
// the parsed chord as a numeral. Unknown roots become "Chord <token> not recognized" inside the
// progression instead of an error.
//
// # Sequences
//
// [Analyze] slides a window over a chord stream, drops repeated windows and encodes the rest.
// The repetition [ValidityMask] is reported next to the progressions but never filters them.
//
// Everything in this package is pure and safe for concurrent use.
package theory
