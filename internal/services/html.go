// HTML extraction for Ultimate Guitar pages
package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/desertthunder/chordex/internal/shared"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var chordMarker = regexp.MustCompile(`\[ch\]([^\[]*)\[/ch\]`)

// ugStore is the subset of the page state embedded in div.js-store that the client reads.
type ugStore struct {
	Store struct {
		Page struct {
			Data struct {
				Results []ugResult `json:"results"`
				TabView struct {
					WikiTab struct {
						Content string `json:"content"`
					} `json:"wiki_tab"`
					Meta struct {
						Capo json.RawMessage `json:"capo"`
					} `json:"meta"`
				} `json:"tab_view"`
			} `json:"data"`
		} `json:"page"`
	} `json:"store"`
}

type ugResult struct {
	SongName     string  `json:"song_name"`
	ArtistName   string  `json:"artist_name"`
	TabURL       string  `json:"tab_url"`
	Type         string  `json:"type"`
	Votes        int     `json:"votes"`
	Rating       float64 `json:"rating"`
	TonalityName string  `json:"tonality_name"`
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	return slices.Contains(strings.Fields(v), class)
}

// textContent concatenates all text below n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// findAll returns every node below n, in document order, for which match is true.
func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			found = append(found, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return found
}

// chartClass marks the pre block holding the chart body. Other pre blocks on the page
// (comments, related tabs) are ignored.
const chartClass = "tK8GG"

func isChordSpan(n *html.Node) bool {
	if n.DataAtom != atom.Span {
		return false
	}
	_, ok := attr(n, "data-name")
	return ok
}

// chartBlock returns the pre holding the chart body: the one with [chartClass], else the first
// pre that contains chord spans.
func chartBlock(doc *html.Node) *html.Node {
	pres := findAll(doc, func(n *html.Node) bool { return n.DataAtom == atom.Pre })
	for _, pre := range pres {
		if hasClass(pre, chartClass) {
			return pre
		}
	}
	for _, pre := range pres {
		if len(findAll(pre, isChordSpan)) > 0 {
			return pre
		}
	}
	return nil
}

// chordSpans reads chord symbols from span[data-name] elements of the chart block in document
// order. Spans with blank text stay in the stream as empty tokens.
func chordSpans(doc *html.Node) []string {
	pre := chartBlock(doc)
	if pre == nil {
		return nil
	}

	var tokens []string
	for _, span := range findAll(pre, isChordSpan) {
		tokens = append(tokens, strings.TrimSpace(textContent(span)))
	}
	return tokens
}

// capoCell returns the text of the table cell labelled "Capo:", if any.
func capoCell(doc *html.Node) (string, bool) {
	for _, th := range findAll(doc, func(n *html.Node) bool { return n.DataAtom == atom.Th }) {
		if strings.TrimSpace(textContent(th)) != "Capo:" {
			continue
		}
		for sib := th.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.DataAtom == atom.Td {
				return strings.TrimSpace(textContent(sib)), true
			}
		}
	}
	return "", false
}

// pageStore decodes the JSON state held in the data-content attribute of div.js-store.
func pageStore(doc *html.Node) (*ugStore, error) {
	stores := findAll(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Div && hasClass(n, "js-store")
	})
	if len(stores) == 0 {
		return nil, fmt.Errorf("%w: no page store", shared.ErrUnexpectedPage)
	}

	content, _ := attr(stores[0], "data-content")
	var store ugStore
	if err := json.Unmarshal([]byte(content), &store); err != nil {
		return nil, fmt.Errorf("%w: invalid page store: %v", shared.ErrUnexpectedPage, err)
	}
	return &store, nil
}

// storeChords reads chord symbols from [ch] markers in the stored tab content.
func storeChords(content string) []string {
	var tokens []string
	for _, m := range chordMarker.FindAllStringSubmatch(content, -1) {
		if token := strings.TrimSpace(m[1]); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

// storeCapo renders the stored capo value as the text shown on the page.
// The site stores it either as a number or a string.
func storeCapo(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		if n == 0 {
			return "no capo"
		}
		return strconv.Itoa(n) + " fret"
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
