// Package services implements the two remote collaborators of a harvest: a [Catalog] that lists
// songs with their detected key and mode, and a [ChartSource] that finds and downloads chord charts.
//
// # Spotify Catalog
//
// [SpotifyCatalog] uses the OAuth2 client-credentials flow ([clientcredentials.Config]); the
// token source refreshes access tokens on its own. Songs come from a track search filtered by
// genre and year range, then key and mode are attached from the audio-features endpoint.
// Tracks without audio features are dropped.
//
// # Ultimate Guitar
//
// [UltimateGuitar] fetches search and chart pages over plain HTTP and reads them with
// golang.org/x/net/html. Search results are read from the JSON page store embedded in the
// page. Chord symbols are read from span[data-name] elements inside pre blocks, falling back
// to [ch] markers in the page store. Every request waits on a [rate.Limiter] and uses a user
// agent picked at random from the configured list; headers captured from a browser with
// "Copy as cURL" (see [shared.ParseCurlCommand]) are replayed when present.
//
// Transposition happens on the downloaded chart: [RenderedChart] implements [theory.Shifter],
// so a shift plan can be applied to it before its tokens are read.
//
// # Error Handling
//
// Services use sentinel errors from the shared package:
//   - [shared.ErrMissingCredentials] : client ID or secret not configured
//   - [shared.ErrAuthFailed] : the catalog rejected the access token
//   - [shared.ErrAPIRequest] : HTTP request failed
//   - [shared.ErrServiceUnavailable] : the chart site blocked or throttled the request
//   - [shared.ErrChartNotFound] : no usable chart for a song
//   - [shared.ErrUnexpectedPage] : a page did not have the expected structure
package services
