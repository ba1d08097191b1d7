package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrAuthFailed         = fmt.Errorf("authentication failed")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrChartNotFound      = fmt.Errorf("chart not found")
	ErrUnexpectedPage     = fmt.Errorf("unexpected page layout")

	// Harvest errors
	ErrSongExists   = fmt.Errorf("song already harvested")
	ErrSongNotFound = fmt.Errorf("song not found")
	ErrUnknownKey   = fmt.Errorf("song key unknown")
	ErrInvalidGenre = fmt.Errorf("invalid genre")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
