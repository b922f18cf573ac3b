package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
)

func ingestAll(t *testing.T, ledger *Ledger, occurrences []domain.Occurrence) {
	t.Helper()
	for _, occ := range occurrences {
		status, err := ledger.Ingest(occ)
		require.NoError(t, err)
		require.Equal(t, StatusAdded, status)
	}
}

// TestBuildCategoryView_Scenario tests the b10c.me merge scenario end to end
func TestBuildCategoryView_Scenario(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://b10c.me/x", Title: "Post A", Date: day("2024-12-01"), Source: "NYC", Category: "Network Data"},
		{RawURL: "https://b10c.me/x/", Title: "Post A Alt", Date: day("2024-12-10"), Source: "LA", Category: "Network Data"},
	})

	view := BuildCategoryView(ledger.Snapshot(), 0)

	require.Len(t, view.Categories, 1)
	group := view.Categories[0]
	assert.Equal(t, "Network Data", group.Category)
	assert.Equal(t, 1, group.ResourceCount)
	assert.Equal(t, 2, group.TotalRefs)

	require.Len(t, group.Domains, 1)
	bucket := group.Domains[0]
	assert.Equal(t, "b10c.me", bucket.Domain)

	require.Len(t, bucket.Resources, 1)
	entry := bucket.Resources[0]
	assert.Equal(t, "https://b10c.me/x", entry.CanonicalURL)
	assert.Equal(t, []string{"Post A", "Post A Alt"}, entry.Titles)
	assert.Equal(t, 2, entry.Count)
	assert.Equal(t, day("2024-12-10"), entry.LatestDate)
}

// TestBuildCategoryView_LatestCategoryWins tests category assignment across occurrences
func TestBuildCategoryView_LatestCategoryWins(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://example.com/x", Date: day("2024-01-01"), Source: "a", Category: "Old Category"},
		{RawURL: "https://example.com/x", Date: day("2024-06-01"), Source: "b", Category: "New Category"},
	})

	view := BuildCategoryView(ledger.Snapshot(), 0)

	require.Len(t, view.Categories, 1)
	assert.Equal(t, "New Category", view.Categories[0].Category)
}

// TestBuildCategoryView_ThresholdBucketing tests the Other Resources cutover at the threshold
func TestBuildCategoryView_ThresholdBucketing(t *testing.T) {
	const threshold = 5

	build := func(resourceCount int) CategoryView {
		ledger := NewLedger()
		for i := 0; i < resourceCount; i++ {
			_, err := ledger.Ingest(domain.Occurrence{
				RawURL:   fmt.Sprintf("https://bucketed.org/post-%d", i),
				Date:     day("2024-03-01"),
				Source:   "src",
				Category: "Research",
			})
			require.NoError(t, err)
		}
		return BuildCategoryView(ledger.Snapshot(), threshold)
	}

	// Exactly 5 resources: the domain collapses into Other Resources.
	view := build(5)
	require.Len(t, view.Categories, 1)
	require.Len(t, view.Categories[0].Domains, 1)
	assert.Equal(t, OtherBucket, view.Categories[0].Domains[0].Domain)
	assert.Len(t, view.Categories[0].Domains[0].Resources, 5)

	// 6 resources: the domain earns its own subsection.
	view = build(6)
	require.Len(t, view.Categories, 1)
	require.Len(t, view.Categories[0].Domains, 1)
	assert.Equal(t, "bucketed.org", view.Categories[0].Domains[0].Domain)
	assert.Len(t, view.Categories[0].Domains[0].Resources, 6)
}

// TestBuildCategoryView_OtherBucketLast tests that Other Resources sorts after real domains
func TestBuildCategoryView_OtherBucketLast(t *testing.T) {
	ledger := NewLedger()
	for i := 0; i < 3; i++ {
		_, err := ledger.Ingest(domain.Occurrence{
			RawURL:   fmt.Sprintf("https://big.org/post-%d", i),
			Date:     day("2024-03-01"),
			Source:   "src",
			Category: "Research",
		})
		require.NoError(t, err)
	}
	_, err := ledger.Ingest(domain.Occurrence{
		RawURL: "https://lonely.net/only", Date: day("2024-03-02"), Source: "src", Category: "Research",
	})
	require.NoError(t, err)

	view := BuildCategoryView(ledger.Snapshot(), 1)

	require.Len(t, view.Categories, 1)
	domains := view.Categories[0].Domains
	require.Len(t, domains, 2)
	assert.Equal(t, "big.org", domains[0].Domain)
	assert.Equal(t, OtherBucket, domains[1].Domain)
}

// TestBuildCategoryView_UncategorizedFallback tests the missing-category group key
func TestBuildCategoryView_UncategorizedFallback(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://example.com/x", Date: day("2024-01-01"), Source: "src"},
	})

	view := BuildCategoryView(ledger.Snapshot(), 0)

	require.Len(t, view.Categories, 1)
	assert.Equal(t, domain.UncategorizedLabel, view.Categories[0].Category)
}

// TestBuildDomainView_Ordering tests ordering by total references with name tie-break
func TestBuildDomainView_Ordering(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://quiet.org/a", Date: day("2024-01-01"), Source: "s1"},
		{RawURL: "https://busy.com/a", Date: day("2024-01-01"), Source: "s1"},
		{RawURL: "https://busy.com/a", Date: day("2024-01-02"), Source: "s2"},
		{RawURL: "https://busy.com/b", Date: day("2024-01-03"), Source: "s1"},
		// Same total refs as quiet.org; name decides.
		{RawURL: "https://alpha.org/a", Date: day("2024-01-01"), Source: "s1"},
	})

	view := BuildDomainView(ledger.Snapshot())

	require.Len(t, view.Groups, 3)
	assert.Equal(t, "busy.com", view.Groups[0].Domain)
	assert.Equal(t, 3, view.Groups[0].TotalRefs)
	assert.Equal(t, 2, view.Groups[0].ResourceCount)
	assert.Equal(t, "alpha.org", view.Groups[1].Domain)
	assert.Equal(t, "quiet.org", view.Groups[2].Domain)
}

// TestBuildDomainView_ResourceOrdering tests date-descending URL-ascending member order
func TestBuildDomainView_ResourceOrdering(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://example.com/older", Date: day("2024-01-01"), Source: "s"},
		{RawURL: "https://example.com/newer", Date: day("2024-02-01"), Source: "s"},
		{RawURL: "https://example.com/a-tied", Date: day("2024-01-01"), Source: "s"},
	})

	view := BuildDomainView(ledger.Snapshot())

	require.Len(t, view.Groups, 1)
	resources := view.Groups[0].Resources
	require.Len(t, resources, 3)
	assert.Equal(t, "https://example.com/newer", resources[0].CanonicalURL)
	assert.Equal(t, "https://example.com/a-tied", resources[1].CanonicalURL)
	assert.Equal(t, "https://example.com/older", resources[2].CanonicalURL)
}

// TestBuildMonthView_Grouping tests month keys and ordering
func TestBuildMonthView_Grouping(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://example.com/jan", Date: day("2024-01-15"), Source: "s", Category: "C"},
		{RawURL: "https://example.com/dec", Date: day("2024-12-05"), Source: "s", Category: "C"},
		// Merged record: latest occurrence decides the month.
		{RawURL: "https://example.com/jan", Date: day("2024-12-20"), Source: "s", Category: "C"},
	})

	view := BuildMonthView(ledger.Snapshot(), 0)

	require.Len(t, view.Months, 1)
	assert.Equal(t, "2024-12", view.Months[0].Month)
}

// TestBuildMonthView_MonthsDescending tests most-recent-first month ordering
func TestBuildMonthView_MonthsDescending(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://example.com/a", Date: day("2024-03-01"), Source: "s"},
		{RawURL: "https://example.com/b", Date: day("2024-11-01"), Source: "s"},
		{RawURL: "https://example.com/c", Date: day("2023-12-01"), Source: "s"},
	})

	view := BuildMonthView(ledger.Snapshot(), 0)

	require.Len(t, view.Months, 3)
	assert.Equal(t, "2024-11", view.Months[0].Month)
	assert.Equal(t, "2024-03", view.Months[1].Month)
	assert.Equal(t, "2023-12", view.Months[2].Month)
}

// TestBuildMonthView_OtherCarriesAnnotations tests that Other entries keep domain and category
func TestBuildMonthView_OtherCarriesAnnotations(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://lonely.net/x", Date: day("2024-06-01"), Source: "s", Category: "Mining"},
	})

	view := BuildMonthView(ledger.Snapshot(), 5)

	require.Len(t, view.Months, 1)
	require.Len(t, view.Months[0].Domains, 1)
	bucket := view.Months[0].Domains[0]
	assert.Equal(t, OtherBucket, bucket.Domain)
	require.Len(t, bucket.Resources, 1)
	assert.Equal(t, "lonely.net", bucket.Resources[0].RootDomain)
	assert.Equal(t, "Mining", bucket.Resources[0].Category)
}

// TestViews_Deterministic tests that repeated builds are identical
func TestViews_Deterministic(t *testing.T) {
	ledger := NewLedger()
	ingestAll(t, ledger, []domain.Occurrence{
		{RawURL: "https://a.com/1", Title: "1", Date: day("2024-01-01"), Source: "s1", Category: "X"},
		{RawURL: "https://a.com/2", Title: "2", Date: day("2024-01-01"), Source: "s2", Category: "X"},
		{RawURL: "https://b.com/1", Title: "3", Date: day("2024-02-01"), Source: "s1", Category: "Y"},
		{RawURL: "https://c.com/1", Title: "4", Date: day("2024-02-01"), Source: "s3", Category: "Y"},
	})
	snapshot := ledger.Snapshot()

	for i := 0; i < 5; i++ {
		assert.Equal(t, BuildCategoryView(snapshot, 1), BuildCategoryView(snapshot, 1))
		assert.Equal(t, BuildDomainView(snapshot), BuildDomainView(snapshot))
		assert.Equal(t, BuildMonthView(snapshot, 1), BuildMonthView(snapshot, 1))
	}
}
