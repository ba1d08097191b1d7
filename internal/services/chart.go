// Ultimate Guitar implementation of [ChartSource]
package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/chordex/internal/shared"
	"github.com/desertthunder/chordex/internal/theory"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	ugBaseURL   = "https://www.ultimate-guitar.com"
	ugChordType = "Chords"

	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

// excludedTypes are result types that are not community chord charts.
var excludedTypes = []string{"Official", "Pro"}

// UltimateGuitarOpts configures an [UltimateGuitar] client.
type UltimateGuitarOpts struct {
	BaseURL           string
	RequestsPerSecond float64 // Zero or less disables the limit
	UserAgents        []string
	Headers           *shared.BrowserHeaders
	HTTPClient        *http.Client
}

// UltimateGuitar fetches chord charts from ultimate-guitar.com.
type UltimateGuitar struct {
	baseURL    string
	limiter    *rate.Limiter
	userAgents []string
	headers    *shared.BrowserHeaders
	httpClient *http.Client
}

// NewUltimateGuitar creates a chart client.
func NewUltimateGuitar(opts UltimateGuitarOpts) *UltimateGuitar {
	if opts.BaseURL == "" {
		opts.BaseURL = ugBaseURL
	}
	if len(opts.UserAgents) == 0 {
		opts.UserAgents = []string{defaultUserAgent}
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &UltimateGuitar{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		limiter:    rate.NewLimiter(limit, 1),
		userAgents: opts.UserAgents,
		headers:    opts.Headers,
		httpClient: opts.HTTPClient,
	}
}

func (u *UltimateGuitar) Name() string {
	return "Ultimate Guitar"
}

// fetch waits for the limiter, then downloads and parses a page.
func (u *UltimateGuitar) fetch(ctx context.Context, pageURL string) (*html.Node, error) {
	if err := u.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	if u.headers != nil {
		for k, v := range u.headers.Headers {
			req.Header.Set(k, v)
		}
		if u.headers.Cookie != "" {
			req.Header.Set("Cookie", u.headers.Cookie)
		}
	}
	req.Header.Set("User-Agent", u.userAgents[rand.IntN(len(u.userAgents))])

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", shared.ErrChartNotFound, pageURL)
	case resp.StatusCode == http.StatusForbidden,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusServiceUnavailable:
		return nil, fmt.Errorf("%w: status %d", shared.ErrServiceUnavailable, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrUnexpectedPage, err)
	}
	return doc, nil
}

// resolve turns a site-relative link into an absolute URL.
func (u *UltimateGuitar) resolve(link string) string {
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		return link
	}
	return u.baseURL + "/" + strings.TrimLeft(link, "/")
}

// Search queries the site for "<artist> <title>" and picks the best community chord chart.
func (u *UltimateGuitar) Search(ctx context.Context, title, artist string) (*ChartResult, error) {
	params := url.Values{}
	params.Set("search_type", "title")
	params.Set("value", strings.TrimSpace(artist+" "+title))

	doc, err := u.fetch(ctx, u.baseURL+"/search.php?"+params.Encode())
	if err != nil {
		return nil, err
	}
	store, err := pageStore(doc)
	if err != nil {
		return nil, err
	}

	best := pickResult(store.Store.Page.Data.Results)
	if best == nil {
		return nil, fmt.Errorf("%w: %s by %s", shared.ErrChartNotFound, title, artist)
	}

	return &ChartResult{
		Title:    best.SongName,
		Artist:   best.ArtistName,
		URL:      u.resolve(best.TabURL),
		Type:     best.Type,
		Votes:    best.Votes,
		Rating:   best.Rating,
		TonalKey: best.TonalityName,
	}, nil
}

// pickResult keeps chord charts that are neither official nor pro and returns the one
// with the most ratings. When nothing is rated the first remaining chart wins.
func pickResult(results []ugResult) *ugResult {
	var best *ugResult
	var first *ugResult
	for i := range results {
		r := &results[i]
		if r.Type != ugChordType || r.TabURL == "" || isExcluded(r.Type) {
			continue
		}
		if first == nil {
			first = r
		}
		if r.Votes > 0 && (best == nil || r.Votes > best.Votes) {
			best = r
		}
	}
	if best != nil {
		return best
	}
	return first
}

func isExcluded(resultType string) bool {
	for _, t := range excludedTypes {
		if strings.Contains(resultType, t) {
			return true
		}
	}
	return false
}

// Open downloads a chart page and reads its chord symbols and capo text.
func (u *UltimateGuitar) Open(ctx context.Context, result *ChartResult) (*RenderedChart, error) {
	if result == nil || result.URL == "" {
		return nil, fmt.Errorf("%w: chart URL is required", shared.ErrMissingArgument)
	}

	doc, err := u.fetch(ctx, u.resolve(result.URL))
	if err != nil {
		return nil, err
	}

	tokens := chordSpans(doc)
	capo, hasCapo := capoCell(doc)

	if len(tokens) == 0 || !hasCapo {
		store, err := pageStore(doc)
		if err == nil {
			tab := store.Store.Page.Data.TabView
			if len(tokens) == 0 {
				tokens = storeChords(tab.WikiTab.Content)
			}
			if !hasCapo {
				capo = storeCapo(tab.Meta.Capo)
			}
		} else if len(tokens) == 0 {
			return nil, err
		}
	}

	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: no chords on %s", shared.ErrChartNotFound, result.URL)
	}
	return NewRenderedChart(result.URL, capo, tokens), nil
}

// RenderedChart is a downloaded chart that can be transposed in place.
//
// It implements [theory.Shifter]: each shift moves the display by one semitone, the same
// way the site's transpose buttons do, and [RenderedChart.Tokens] reads the chords as
// currently shown.
type RenderedChart struct {
	url    string
	capo   string
	tokens []string
	offset int
}

// NewRenderedChart wraps the chord symbols of a chart as written.
func NewRenderedChart(chartURL, capo string, tokens []string) *RenderedChart {
	return &RenderedChart{url: chartURL, capo: capo, tokens: append([]string(nil), tokens...)}
}

func (c *RenderedChart) URL() string      { return c.url }
func (c *RenderedChart) CapoText() string { return c.capo }
func (c *RenderedChart) Offset() int      { return c.offset }

func (c *RenderedChart) ShiftUp(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.offset++
	return nil
}

func (c *RenderedChart) ShiftDown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.offset--
	return nil
}

// Tokens returns the chord symbols transposed by the current offset.
func (c *RenderedChart) Tokens() []string {
	out := make([]string, len(c.tokens))
	for i, t := range c.tokens {
		out[i] = theory.TransposeToken(t, c.offset)
	}
	return out
}

var _ theory.Shifter = (*RenderedChart)(nil)
var _ ChartSource = (*UltimateGuitar)(nil)
var _ Catalog = (*SpotifyCatalog)(nil)
