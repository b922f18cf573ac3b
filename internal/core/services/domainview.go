package services

import (
	"sort"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
)

// DomainGroup holds every resource under one root domain, regardless
// of category.
type DomainGroup struct {
	// Domain is the root domain group key.
	Domain string

	// Resources is the member list, sorted by latest date descending
	// then canonical URL ascending.
	Resources []ResourceEntry

	// ResourceCount is the number of member resources.
	ResourceCount int

	// TotalRefs is the sum of member reference counts.
	TotalRefs int
}

// DomainView is the domain-first projection of a ledger snapshot.
type DomainView struct {
	// Groups are ordered by total references descending, ties by
	// domain name ascending.
	Groups []DomainGroup
}

// BuildDomainView groups a snapshot by root domain. No threshold
// bucketing applies here: every domain gets its own group.
func BuildDomainView(snapshot map[string]*domain.Resource) DomainView {
	byDomain := make(map[string][]ResourceEntry)
	for _, entry := range snapshotEntries(snapshot) {
		byDomain[entry.RootDomain] = append(byDomain[entry.RootDomain], entry)
	}

	groups := make([]DomainGroup, 0, len(byDomain))
	for name, entries := range byDomain {
		sortEntries(entries)
		groups = append(groups, DomainGroup{
			Domain:        name,
			Resources:     entries,
			ResourceCount: len(entries),
			TotalRefs:     totalRefs(entries),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalRefs != groups[j].TotalRefs {
			return groups[i].TotalRefs > groups[j].TotalRefs
		}
		return groups[i].Domain < groups[j].Domain
	})

	return DomainView{Groups: groups}
}
