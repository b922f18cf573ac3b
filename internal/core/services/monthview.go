package services

import (
	"sort"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
)

// MonthGroup holds every resource whose latest occurrence falls in one
// calendar month, sub-grouped by root domain.
type MonthGroup struct {
	// Month is the group key in YYYY-MM form.
	Month string

	// Domains holds the per-domain buckets, ordered by resource
	// count descending then name; the OtherBucket comes last. Other
	// entries carry their domain and category inline, since the
	// bucket has no domain subheading of its own.
	Domains []DomainBucket
}

// MonthView is the date-first projection of a ledger snapshot.
type MonthView struct {
	// Months are ordered most recent first.
	Months []MonthGroup
}

// BuildMonthView groups a snapshot by the calendar month of each
// record's latest occurrence, then by root domain within the month.
// Domains with at or below threshold resources in a month collapse
// into that month's OtherBucket.
func BuildMonthView(snapshot map[string]*domain.Resource, threshold int) MonthView {
	byMonth := make(map[string][]ResourceEntry)
	for _, entry := range snapshotEntries(snapshot) {
		key := entry.LatestDate.Format("2006-01")
		byMonth[key] = append(byMonth[key], entry)
	}

	months := make([]MonthGroup, 0, len(byMonth))
	for month, entries := range byMonth {
		buckets := bucketByDomain(entries, threshold, func(a, b DomainBucket) bool {
			if a.ResourceCount() != b.ResourceCount() {
				return a.ResourceCount() > b.ResourceCount()
			}
			return a.Domain < b.Domain
		})
		months = append(months, MonthGroup{Month: month, Domains: buckets})
	}

	// YYYY-MM keys order lexically, so string comparison gives
	// reverse chronological order.
	sort.Slice(months, func(i, j int) bool { return months[i].Month > months[j].Month })

	return MonthView{Months: months}
}
