package domain

import "errors"

var (
	// ErrUnauthenticated signals that an operation requires a signed-in
	// viewer (e.g. the saved-only filter).
	ErrUnauthenticated = errors.New("authentication required")

	// ErrListingNotFound is returned for lookups of unknown listing ids.
	ErrListingNotFound = errors.New("listing not found")

	// ErrLocationNotFound means the geocoding provider returned no result
	// for the given input. Never cached.
	ErrLocationNotFound = errors.New("location not found")

	// ErrGeocodeFailed means the geocoding provider itself failed
	// (HTTP error, timeout, open circuit). Never cached.
	ErrGeocodeFailed = errors.New("geocoding failed")
)
