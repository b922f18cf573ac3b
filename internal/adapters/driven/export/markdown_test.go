package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitdevs-tools/radar-cli/internal/core/services"
)

func scenarioViews(t *testing.T) (services.CategoryView, services.DomainView, services.MonthView, services.RunMetadata) {
	t.Helper()
	ledger := seedLedger(t)
	snapshot := ledger.Snapshot()
	meta := services.Summarize(snapshot, services.RunParams{ExcludedDomains: []string{"twitter.com"}})
	return services.BuildCategoryView(snapshot, 0),
		services.BuildDomainView(snapshot),
		services.BuildMonthView(snapshot, 0),
		meta
}

// TestRenderCategoryView_Shape tests headers and resource lines
func TestRenderCategoryView_Shape(t *testing.T) {
	categoryView, _, _, meta := scenarioViews(t)

	var b strings.Builder
	RenderCategoryView(&b, categoryView, meta)
	out := b.String()

	assert.Contains(t, out, "# Resources by Category\n")
	assert.Contains(t, out, "## Network Data\n")
	assert.Contains(t, out, "### b10c.me\n")
	assert.Contains(t, out, `- ["Post A" | "Post A Alt"](https://b10c.me/x) (2 references)`)
	assert.Contains(t, out, "- **Total Unique Resources**: 2\n")
	assert.Contains(t, out, "- **Date Range**: 2024-11-05 to 2024-12-10\n")
	assert.Contains(t, out, "  - twitter.com\n")
}

// TestRenderDomainView_Shape tests group headers with counts and category annotations
func TestRenderDomainView_Shape(t *testing.T) {
	_, domainView, _, meta := scenarioViews(t)

	var b strings.Builder
	RenderDomainView(&b, domainView, meta)
	out := b.String()

	assert.Contains(t, out, "# Resources by Domain\n")
	assert.Contains(t, out, "## b10c.me (1 resources, 2 total references)\n")
	assert.Contains(t, out, "(Category: Network Data)")
}

// TestRenderMonthView_Shape tests month headers and Other annotations
func TestRenderMonthView_Shape(t *testing.T) {
	ledger := seedLedger(t)
	snapshot := ledger.Snapshot()
	meta := services.Summarize(snapshot, services.RunParams{})

	// High threshold forces everything into Other Resources.
	monthView := services.BuildMonthView(snapshot, 5)

	var b strings.Builder
	RenderMonthView(&b, monthView, meta)
	out := b.String()

	assert.Contains(t, out, "# Resources by Date\n")
	assert.Contains(t, out, "## December 2024\n")
	assert.Contains(t, out, "## November 2024\n")
	assert.Contains(t, out, "(Category: Network Data, Domain: b10c.me)")
	// The bucket is alone in its month, so no redundant header.
	assert.NotContains(t, out, "### Other Resources")
}

// TestRenderViews_SingleReferenceOmitsCount tests the reference count suffix rule
func TestRenderViews_SingleReferenceOmitsCount(t *testing.T) {
	_, domainView, _, meta := scenarioViews(t)

	var b strings.Builder
	RenderDomainView(&b, domainView, meta)
	out := b.String()

	require.Contains(t, out, "https://example.com/paper")
	assert.NotContains(t, out, "(1 references)")
}

// TestFormatTitles_Fallback tests the URL fallback for title-less resources
func TestFormatTitles_Fallback(t *testing.T) {
	assert.Equal(t, "https://example.com/x", formatTitles(nil, "https://example.com/x"))
	assert.Equal(t, `"A" | "B"`, formatTitles([]string{"A", "B"}, "ignored"))
}
