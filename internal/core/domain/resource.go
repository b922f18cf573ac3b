package domain

import "time"

// Fallback group keys for occurrences with missing metadata.
// Views group under these rather than dropping the resource.
const (
	// UncategorizedLabel groups resources whose assigned occurrence
	// carries no category.
	UncategorizedLabel = "Uncategorized"

	// UnknownDomain groups resources whose host has no extractable
	// registrable domain.
	UnknownDomain = "unknown"
)

// Resource is the merged, deduplicated representation of every
// occurrence sharing a canonical URL. Records are created by the first
// ingestion and never deleted; Count is monotonically non-decreasing.
type Resource struct {
	// CanonicalURL is the normalised URL, the identity key.
	CanonicalURL string

	// RootDomain is the registrable domain of the URL's host,
	// used for grouping only.
	RootDomain string

	// Titles holds the distinct titles seen for this URL, in
	// first-seen order. Empty titles are never added.
	Titles []string

	// Occurrences is the append-only reference history, in
	// ingestion order.
	Occurrences []OccurrenceRecord
}

// NewResource creates a record for a canonical URL with no history yet.
// Callers must add at least one occurrence before exposing the record.
func NewResource(canonicalURL, rootDomain string) *Resource {
	return &Resource{
		CanonicalURL: canonicalURL,
		RootDomain:   rootDomain,
	}
}

// AddOccurrence appends one reference to the history and merges its
// title. A non-empty title not yet present (exact string match) is
// appended to Titles; the occurrence itself is always recorded, even
// for a verbatim repeat.
func (r *Resource) AddOccurrence(rec OccurrenceRecord) {
	if rec.TitleUsed != "" && !r.hasTitle(rec.TitleUsed) {
		r.Titles = append(r.Titles, rec.TitleUsed)
	}
	r.Occurrences = append(r.Occurrences, rec)
}

func (r *Resource) hasTitle(title string) bool {
	for _, t := range r.Titles {
		if t == title {
			return true
		}
	}
	return false
}

// Count returns the total number of references, derived from the
// occurrence history.
func (r *Resource) Count() int {
	return len(r.Occurrences)
}

// LatestDate returns the most recent occurrence date.
func (r *Resource) LatestDate() time.Time {
	var latest time.Time
	for _, occ := range r.Occurrences {
		if occ.Date.After(latest) {
			latest = occ.Date
		}
	}
	return latest
}

// LatestOccurrence returns the occurrence used for category assignment
// and date sorting: the one with the most recent date. When several
// occurrences share the latest date, the one with the lexically
// smallest source wins, so assignment is deterministic regardless of
// ingestion order across sources.
func (r *Resource) LatestOccurrence() OccurrenceRecord {
	var best OccurrenceRecord
	for i, occ := range r.Occurrences {
		if i == 0 {
			best = occ
			continue
		}
		if occ.Date.After(best.Date) {
			best = occ
		} else if occ.Date.Equal(best.Date) && occ.Source < best.Source {
			best = occ
		}
	}
	return best
}

// Category returns the category of the latest occurrence, or
// UncategorizedLabel when it carries none.
func (r *Resource) Category() string {
	cat := r.LatestOccurrence().Category
	if cat == "" {
		return UncategorizedLabel
	}
	return cat
}

// Clone returns a deep copy of the record. Snapshots hand out clones
// so view building can never alias ledger state.
func (r *Resource) Clone() *Resource {
	c := &Resource{
		CanonicalURL: r.CanonicalURL,
		RootDomain:   r.RootDomain,
	}
	if r.Titles != nil {
		c.Titles = make([]string, len(r.Titles))
		copy(c.Titles, r.Titles)
	}
	if r.Occurrences != nil {
		c.Occurrences = make([]OccurrenceRecord, len(r.Occurrences))
		copy(c.Occurrences, r.Occurrences)
	}
	return c
}
