// Package feed implements the combined news feed: reconciling articles
// fetched from the external news provider with the local article store and
// locally authored admin articles.
package feed

import "errors"

// Sentinel errors for feed operations.
var (
	// ErrUpstreamUnavailable indicates the external news provider could not
	// be reached or answered with a non-success status. It is not retried;
	// handlers surface it as a single internal error response.
	ErrUpstreamUnavailable = errors.New("upstream news provider unavailable")

	// ErrUpstreamMalformed indicates the external news provider answered with
	// a body that could not be parsed into the expected shape.
	ErrUpstreamMalformed = errors.New("upstream news provider returned malformed response")

	// ErrNoFeaturedAvailable indicates the featured query returned zero
	// usable results.
	ErrNoFeaturedAvailable = errors.New("no featured article available")
)
