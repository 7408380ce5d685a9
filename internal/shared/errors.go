package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed      = fmt.Errorf("authentication failed")
	ErrUnknownProvider = fmt.Errorf("unknown sign-in provider")
	ErrTimeout         = fmt.Errorf("operation timed out")

	// Catalog API errors
	ErrAPIRequest     = fmt.Errorf("API request failed")
	ErrSongNotFound   = fmt.Errorf("song not found")
	ErrAlbumNotFound  = fmt.Errorf("album not found")
	ErrNoMediaURL     = fmt.Errorf("song has no media URL")
	ErrDownloadFailed = fmt.Errorf("download failed")
	ErrNotInLibrary   = fmt.Errorf("download not in library")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
