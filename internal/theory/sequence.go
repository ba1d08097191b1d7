package theory

import "strings"

// DefaultWindowSize is the progression length harvested from each chart.
const DefaultWindowSize = 4

// Window is a contiguous run of raw chord tokens.
type Window []string

func (w Window) key() string {
	return strings.Join(w, "\x00")
}

// Extraction is the result of analyzing one chord stream.
type Extraction struct {
	Windows      []Window   // Deduplicated windows in first-seen order
	Mask         []bool     // Repetition validity of each window, for diagnostics only
	Progressions [][]string // Encoded windows, one per entry of Windows
}

// Invalid counts windows that fail the repetition check.
func (e Extraction) Invalid() int {
	n := 0
	for _, ok := range e.Mask {
		if !ok {
			n++
		}
	}
	return n
}

// Windows returns every contiguous window of size n in stream order.
func Windows(tokens []string, n int) []Window {
	if n <= 0 {
		n = DefaultWindowSize
	}
	if len(tokens) < n {
		return []Window{}
	}

	windows := make([]Window, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		w := make(Window, n)
		copy(w, tokens[i:i+n])
		windows = append(windows, w)
	}
	return windows
}

// Dedup drops windows already seen earlier in the slice.
func Dedup(windows []Window) []Window {
	seen := make(map[string]struct{}, len(windows))
	out := make([]Window, 0, len(windows))
	for _, w := range windows {
		k := w.key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Valid reports whether no token appears more than twice and no token repeats back to back.
func Valid(w Window) bool {
	counts := make(map[string]int, len(w))
	for i, token := range w {
		counts[token]++
		if counts[token] > 2 {
			return false
		}
		if i > 0 && w[i-1] == token {
			return false
		}
	}
	return true
}

// ValidityMask applies [Valid] to each window.
func ValidityMask(windows []Window) []bool {
	mask := make([]bool, len(windows))
	for i, w := range windows {
		mask[i] = Valid(w)
	}
	return mask
}

// Analyze windows, deduplicates and encodes a chord stream.
//
// Every deduplicated window is encoded whatever its mask value.
func Analyze(tokens []string, n int) Extraction {
	windows := Dedup(Windows(tokens, n))

	progressions := make([][]string, len(windows))
	for i, w := range windows {
		encoded := make([]string, len(w))
		for j, token := range w {
			encoded[j] = EncodeToken(token)
		}
		progressions[i] = encoded
	}

	return Extraction{
		Windows:      windows,
		Mask:         ValidityMask(windows),
		Progressions: progressions,
	}
}

// Extract returns the encoded progressions of a chord stream.
func Extract(tokens []string, n int) [][]string {
	return Analyze(tokens, n).Progressions
}
