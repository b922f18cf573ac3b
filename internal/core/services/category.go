package services

import (
	"sort"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
)

// CategoryGroup holds every resource assigned to one category,
// sub-grouped by root domain.
type CategoryGroup struct {
	// Category is the group key ("Uncategorized" when missing).
	Category string

	// Domains holds the per-domain buckets, ordered by total
	// references descending then name; the OtherBucket comes last.
	Domains []DomainBucket

	// ResourceCount is the number of resources in the category.
	ResourceCount int

	// TotalRefs is the sum of member reference counts.
	TotalRefs int
}

// CategoryView is the category-first projection of a ledger snapshot.
type CategoryView struct {
	// Categories are ordered by total references descending,
	// ties by category name ascending.
	Categories []CategoryGroup
}

// BuildCategoryView groups a snapshot by assigned category, then by
// root domain within each category. Domains with at or below
// threshold resources collapse into the OtherBucket for that
// category. Pure and read-only: repeated calls over the same snapshot
// produce identical output.
func BuildCategoryView(snapshot map[string]*domain.Resource, threshold int) CategoryView {
	byCategory := make(map[string][]ResourceEntry)
	for _, entry := range snapshotEntries(snapshot) {
		byCategory[entry.Category] = append(byCategory[entry.Category], entry)
	}

	groups := make([]CategoryGroup, 0, len(byCategory))
	for category, entries := range byCategory {
		buckets := bucketByDomain(entries, threshold, func(a, b DomainBucket) bool {
			if a.TotalRefs != b.TotalRefs {
				return a.TotalRefs > b.TotalRefs
			}
			return a.Domain < b.Domain
		})
		groups = append(groups, CategoryGroup{
			Category:      category,
			Domains:       buckets,
			ResourceCount: len(entries),
			TotalRefs:     totalRefs(entries),
		})
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].TotalRefs != groups[j].TotalRefs {
			return groups[i].TotalRefs > groups[j].TotalRefs
		}
		return groups[i].Category < groups[j].Category
	})

	return CategoryView{Categories: groups}
}
