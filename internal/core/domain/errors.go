package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrMalformedURL indicates a raw URL that cannot be canonicalised
	// (unparsable, or no host). Occurrences carrying one are dropped
	// with a warning, never ingested.
	ErrMalformedURL = errors.New("malformed URL")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrReplayCorrupt indicates a detailed JSON replay input whose
	// structure cannot be ingested. Fatal in replay mode: the run has
	// no valid seed data.
	ErrReplayCorrupt = errors.New("replay input corrupt")

	// ErrRateLimited indicates the GitHub API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
