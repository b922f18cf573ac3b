package services

import (
	"time"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
)

// RunParams carries the effective run configuration echoed into the
// metadata summary.
type RunParams struct {
	// RunID identifies this aggregation run.
	RunID string

	// StartDate is the cutoff filter, zero when unset.
	StartDate time.Time

	// ExcludedDomains is the resolved excluded-prefix list.
	ExcludedDomains []string

	// ExcludedOccurrences is how many occurrences the exclusion
	// filter rejected during ingestion.
	ExcludedOccurrences int
}

// RunMetadata is the aggregate summary of a finished run. It is a
// pure function of the final ledger snapshot and the run parameters.
type RunMetadata struct {
	// RunID identifies the aggregation run.
	RunID string

	// TotalUniqueURLs is the number of deduplicated resources.
	TotalUniqueURLs int

	// TotalReferences is the sum of all reference counts.
	TotalReferences int

	// UniqueDomains is the number of distinct root domains.
	UniqueDomains int

	// DomainTotals maps each root domain to its total reference count.
	DomainTotals map[string]int

	// FirstDate and LastDate bound the occurrence dates seen.
	// Both are zero for an empty ledger.
	FirstDate time.Time
	LastDate  time.Time

	// StartDate echoes the cutoff filter, zero when unset.
	StartDate time.Time

	// ExcludedDomains echoes the resolved excluded-prefix list.
	ExcludedDomains []string

	// ExcludedOccurrences is how many occurrences were rejected by
	// the exclusion filter.
	ExcludedOccurrences int
}

// Summarize computes run metadata from a ledger snapshot. It has no
// side effects and does not mutate the snapshot.
func Summarize(snapshot map[string]*domain.Resource, params RunParams) RunMetadata {
	meta := RunMetadata{
		RunID:               params.RunID,
		TotalUniqueURLs:     len(snapshot),
		DomainTotals:        make(map[string]int),
		StartDate:           params.StartDate,
		ExcludedDomains:     append([]string(nil), params.ExcludedDomains...),
		ExcludedOccurrences: params.ExcludedOccurrences,
	}

	for _, record := range snapshot {
		count := record.Count()
		meta.TotalReferences += count

		rootDomain := record.RootDomain
		if rootDomain == "" {
			rootDomain = domain.UnknownDomain
		}
		meta.DomainTotals[rootDomain] += count

		for _, occ := range record.Occurrences {
			if meta.FirstDate.IsZero() || occ.Date.Before(meta.FirstDate) {
				meta.FirstDate = occ.Date
			}
			if occ.Date.After(meta.LastDate) {
				meta.LastDate = occ.Date
			}
		}
	}
	meta.UniqueDomains = len(meta.DomainTotals)

	return meta
}
