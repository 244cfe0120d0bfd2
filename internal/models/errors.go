package models

import "errors"

// Sentinel errors for validation.
var (
	ErrMissingExternalID = errors.New("external id is required")
	ErrMissingTitle      = errors.New("title is required")
	ErrRatingOutOfRange  = errors.New("rating must be between 0.0 and 5.0")
	ErrNegativeRuntime   = errors.New("runtime must not be negative")
	ErrYearOutOfRange    = errors.New("year must be a 4-digit value no later than next year")
)

// ErrInvalidUsername rejects an import before any network call is made.
var ErrInvalidUsername = errors.New("invalid username")

// ErrImportRunning indicates another import is already active against the store.
var ErrImportRunning = errors.New("an import is already running")

// ErrMovieNotFound indicates a lookup by external ID matched nothing.
var ErrMovieNotFound = errors.New("movie not found")

// ErrDuplicateKey indicates a unique constraint violation (maps to HTTP 409 Conflict).
var ErrDuplicateKey = errors.New("duplicate key")
