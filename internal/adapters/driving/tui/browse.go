// Package tui implements the interactive resource browser.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
	"github.com/bitdevs-tools/radar-cli/internal/core/services"
)

var (
	appStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#CDD6F4")).
			Background(lipgloss.Color("#7C3AED")).
			Padding(0, 1)
)

// resourceItem adapts one aggregated resource for the list component.
type resourceItem struct {
	entry services.ResourceEntry
}

// Title shows the first recorded title, falling back to the URL.
func (i resourceItem) Title() string {
	if len(i.entry.Titles) > 0 {
		return i.entry.Titles[0]
	}
	return i.entry.CanonicalURL
}

// Description shows the grouping facets of the resource.
func (i resourceItem) Description() string {
	refs := "reference"
	if i.entry.Count != 1 {
		refs = "references"
	}
	return fmt.Sprintf("%s | %s | %d %s | %s",
		i.entry.Category,
		i.entry.RootDomain,
		i.entry.Count, refs,
		i.entry.LatestDate.Format("2006-01-02"))
}

// FilterValue matches against titles, URL, domain, and category.
func (i resourceItem) FilterValue() string {
	value := i.entry.CanonicalURL + " " + i.entry.RootDomain + " " + i.entry.Category
	for _, t := range i.entry.Titles {
		value += " " + t
	}
	return value
}

// Model is the browse screen state.
type Model struct {
	list list.Model
}

// NewModel builds the browse screen over a ledger snapshot.
func NewModel(snapshot map[string]*domain.Resource, meta services.RunMetadata) Model {
	entries := services.Entries(snapshot)
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, resourceItem{entry: e})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Radar: %d resources, %d references",
		meta.TotalUniqueURLs, meta.TotalReferences)
	l.Styles.Title = titleStyle
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)

	return Model{list: l}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

	case tea.KeyMsg:
		// Don't intercept keys while the user is typing a filter
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return appStyle.Render(m.list.View())
}

// Run launches the browser and blocks until the user quits.
func Run(snapshot map[string]*domain.Resource, meta services.RunMetadata) error {
	p := tea.NewProgram(NewModel(snapshot, meta), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
