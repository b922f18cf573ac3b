package services

import (
	"sort"
	"time"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
)

// OtherBucket is the reserved group name for domains whose resource
// count falls at or below the bucketing threshold.
const OtherBucket = "Other Resources"

// DefaultOtherThreshold is the resource count at or below which a
// domain collapses into the OtherBucket. Applied uniformly to the
// category and month views.
const DefaultOtherThreshold = 5

// ResourceEntry is the per-resource presentation row shared by all
// views: a flattened, immutable projection of one ledger record.
type ResourceEntry struct {
	// CanonicalURL is the deduplication key and link target.
	CanonicalURL string

	// RootDomain is the registrable domain used for grouping.
	RootDomain string

	// Titles holds distinct titles in first-seen order.
	Titles []string

	// Count is the total number of references.
	Count int

	// Category is the assigned category (latest occurrence wins).
	Category string

	// LatestDate is the most recent occurrence date, the sort key.
	LatestDate time.Time
}

// DomainBucket is a group of resources under one root domain, or
// under the reserved OtherBucket name.
type DomainBucket struct {
	// Domain is the root domain, or OtherBucket.
	Domain string

	// Resources is the member list, sorted by latest date descending
	// then canonical URL ascending.
	Resources []ResourceEntry

	// TotalRefs is the sum of member reference counts.
	TotalRefs int
}

// ResourceCount returns the number of member resources.
func (b DomainBucket) ResourceCount() int {
	return len(b.Resources)
}

func newEntry(r *domain.Resource) ResourceEntry {
	titles := make([]string, len(r.Titles))
	copy(titles, r.Titles)
	rootDomain := r.RootDomain
	if rootDomain == "" {
		rootDomain = domain.UnknownDomain
	}
	return ResourceEntry{
		CanonicalURL: r.CanonicalURL,
		RootDomain:   rootDomain,
		Titles:       titles,
		Count:        r.Count(),
		Category:     r.Category(),
		LatestDate:   r.LatestDate(),
	}
}

// sortEntries orders resources by most-recent-occurrence date
// descending, breaking ties by canonical URL ascending so repeated
// builds are byte-identical.
func sortEntries(entries []ResourceEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].LatestDate.Equal(entries[j].LatestDate) {
			return entries[i].LatestDate.After(entries[j].LatestDate)
		}
		return entries[i].CanonicalURL < entries[j].CanonicalURL
	})
}

func totalRefs(entries []ResourceEntry) int {
	total := 0
	for _, e := range entries {
		total += e.Count
	}
	return total
}

// snapshotEntries flattens a ledger snapshot into presentation rows in
// deterministic (canonical URL) order.
func snapshotEntries(snapshot map[string]*domain.Resource) []ResourceEntry {
	urls := make([]string, 0, len(snapshot))
	for url := range snapshot {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	entries := make([]ResourceEntry, 0, len(urls))
	for _, url := range urls {
		entries = append(entries, newEntry(snapshot[url]))
	}
	return entries
}

// Entries flattens a ledger snapshot into presentation rows ordered
// by most-recent-occurrence date descending, canonical URL ascending.
func Entries(snapshot map[string]*domain.Resource) []ResourceEntry {
	entries := snapshotEntries(snapshot)
	sortEntries(entries)
	return entries
}

// bucketByDomain splits entries into per-domain buckets, collapsing
// domains with at or below threshold resources into the OtherBucket.
// Non-Other buckets are ordered by the given less function; the
// OtherBucket, when present, always comes last.
func bucketByDomain(
	entries []ResourceEntry,
	threshold int,
	less func(a, b DomainBucket) bool,
) []DomainBucket {
	byDomain := make(map[string][]ResourceEntry)
	for _, e := range entries {
		byDomain[e.RootDomain] = append(byDomain[e.RootDomain], e)
	}

	var buckets []DomainBucket
	var other []ResourceEntry
	for name, members := range byDomain {
		if len(members) <= threshold {
			other = append(other, members...)
			continue
		}
		sortEntries(members)
		buckets = append(buckets, DomainBucket{
			Domain:    name,
			Resources: members,
			TotalRefs: totalRefs(members),
		})
	}

	sort.Slice(buckets, func(i, j int) bool { return less(buckets[i], buckets[j]) })

	if len(other) > 0 {
		sortEntries(other)
		buckets = append(buckets, DomainBucket{
			Domain:    OtherBucket,
			Resources: other,
			TotalRefs: totalRefs(other),
		})
	}
	return buckets
}
