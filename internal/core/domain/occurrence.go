package domain

import "time"

// Occurrence represents one observed reference to a URL within a
// discussion post. It is the immutable input event of the aggregation
// pipeline: connectors and replay both produce Occurrences.
type Occurrence struct {
	// RawURL is the link target exactly as found in the source text.
	RawURL string

	// Title is the link text at the time of reference. May be empty.
	Title string

	// Date is the calendar date of the referencing post.
	Date time.Time

	// Source identifies the originating post (its GitHub blob URL).
	Source string

	// Category is the heading path the link appeared under
	// (e.g., "Research / Layer 2"). May be empty.
	Category string
}

// OccurrenceRecord is the retained form of an Occurrence inside a
// Resource, after the raw URL has been folded into the canonical key.
// The history is append-only and never deduplicated: repeats of the
// same (date, source, title) are kept so reference counts stay exact.
type OccurrenceRecord struct {
	// Date is the calendar date of the referencing post.
	Date time.Time

	// Source identifies the originating post.
	Source string

	// Category is the heading path the link appeared under. May be empty.
	Category string

	// TitleUsed is the link text used by this particular reference,
	// kept verbatim (possibly empty) for audit fidelity.
	TitleUsed string
}
