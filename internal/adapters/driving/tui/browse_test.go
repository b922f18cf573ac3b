package tui

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
	"github.com/bitdevs-tools/radar-cli/internal/core/services"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func testSnapshot(t *testing.T) map[string]*domain.Resource {
	t.Helper()
	older := domain.NewResource("https://b10c.me/x", "b10c.me")
	older.AddOccurrence(domain.OccurrenceRecord{
		Date: day(t, "2024-11-01"), Source: "NYC", Category: "Network Data", TitleUsed: "Mining Post",
	})
	newer := domain.NewResource("https://example.com/paper", "example.com")
	newer.AddOccurrence(domain.OccurrenceRecord{
		Date: day(t, "2024-12-01"), Source: "LA", Category: "Research",
	})
	return map[string]*domain.Resource{
		older.CanonicalURL: older,
		newer.CanonicalURL: newer,
	}
}

// TestResourceItem_TitleFallback tests that an untitled resource shows its URL
func TestResourceItem_TitleFallback(t *testing.T) {
	titled := resourceItem{entry: services.ResourceEntry{
		CanonicalURL: "https://b10c.me/x",
		Titles:       []string{"Mining Post"},
	}}
	assert.Equal(t, "Mining Post", titled.Title())

	untitled := resourceItem{entry: services.ResourceEntry{
		CanonicalURL: "https://example.com/paper",
	}}
	assert.Equal(t, "https://example.com/paper", untitled.Title())
}

// TestNewModel_OrdersByLatestDate tests that newest resources come first
func TestNewModel_OrdersByLatestDate(t *testing.T) {
	m := NewModel(testSnapshot(t), services.RunMetadata{TotalUniqueURLs: 2, TotalReferences: 2})

	items := m.list.Items()
	require.Len(t, items, 2)

	first, ok := items[0].(resourceItem)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/paper", first.entry.CanonicalURL)

	second, ok := items[1].(resourceItem)
	require.True(t, ok)
	assert.Equal(t, "https://b10c.me/x", second.entry.CanonicalURL)
}

// TestModel_QuitKey tests that q quits outside filter mode
func TestModel_QuitKey(t *testing.T) {
	m := NewModel(testSnapshot(t), services.RunMetadata{})
	require.Equal(t, list.Unfiltered, m.list.FilterState())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// TestResourceItem_FilterValue tests that filtering matches every facet
func TestResourceItem_FilterValue(t *testing.T) {
	item := resourceItem{entry: services.ResourceEntry{
		CanonicalURL: "https://b10c.me/x",
		RootDomain:   "b10c.me",
		Category:     "Network Data",
		Titles:       []string{"Mining Post"},
	}}
	value := item.FilterValue()
	assert.Contains(t, value, "b10c.me")
	assert.Contains(t, value, "Network Data")
	assert.Contains(t, value, "Mining Post")
}
