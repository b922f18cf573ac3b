// Package export serialises aggregation results: the detailed JSON
// view (which doubles as replayable input) and the markdown renderings
// of the category, domain, and month views.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
	"github.com/bitdevs-tools/radar-cli/internal/core/services"
	"github.com/bitdevs-tools/radar-cli/internal/logger"
)

// dateLayout is the wire format for occurrence dates.
const dateLayout = "2006-01-02"

// DetailedView is the complete JSON export of a run: metadata plus
// every resource with its full occurrence history. Re-ingesting a
// DetailedView reconstructs an identical ledger.
type DetailedView struct {
	Metadata  ViewMetadata            `json:"metadata"`
	Resources map[string]ResourceJSON `json:"resources"`
}

// ViewMetadata mirrors the run summary in the export.
type ViewMetadata struct {
	TotalUniqueURLs int      `json:"total_unique_urls"`
	StartDate       *string  `json:"start_date"`
	ExcludedDomains []string `json:"excluded_domains"`
}

// ResourceJSON is one exported resource record.
type ResourceJSON struct {
	URL         string           `json:"url"`
	Titles      []string         `json:"titles"`
	Count       int              `json:"count"`
	Occurrences []OccurrenceJSON `json:"occurrences"`
}

// OccurrenceJSON is one exported reference.
type OccurrenceJSON struct {
	Date      string `json:"date"`
	Source    string `json:"source"`
	Category  string `json:"category"`
	TitleUsed string `json:"title_used"`
}

// BuildDetailedView flattens a ledger snapshot and run metadata into
// the exportable structure.
func BuildDetailedView(snapshot map[string]*domain.Resource, meta services.RunMetadata) DetailedView {
	var startDate *string
	if !meta.StartDate.IsZero() {
		s := meta.StartDate.Format(dateLayout)
		startDate = &s
	}

	excluded := meta.ExcludedDomains
	if excluded == nil {
		excluded = []string{}
	}

	view := DetailedView{
		Metadata: ViewMetadata{
			TotalUniqueURLs: meta.TotalUniqueURLs,
			StartDate:       startDate,
			ExcludedDomains: excluded,
		},
		Resources: make(map[string]ResourceJSON, len(snapshot)),
	}

	for url, record := range snapshot {
		titles := record.Titles
		if titles == nil {
			titles = []string{}
		}
		occurrences := make([]OccurrenceJSON, 0, len(record.Occurrences))
		for _, occ := range record.Occurrences {
			occurrences = append(occurrences, OccurrenceJSON{
				Date:      occ.Date.Format(dateLayout),
				Source:    occ.Source,
				Category:  occ.Category,
				TitleUsed: occ.TitleUsed,
			})
		}
		view.Resources[url] = ResourceJSON{
			URL:         url,
			Titles:      titles,
			Count:       record.Count(),
			Occurrences: occurrences,
		}
	}

	return view
}

// SaveDetailedView writes the detailed view as indented JSON. Map keys
// marshal in sorted order, so output is deterministic for a given
// ledger.
func SaveDetailedView(path string, view DetailedView) error {
	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal detailed view: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write detailed view %s: %w", path, err)
	}
	logger.Info("saved detailed view to %s", path)
	return nil
}

// LoadDetailedView reads a previously exported detailed view. A file
// that cannot be parsed is a fatal configuration error in replay mode,
// wrapped as domain.ErrReplayCorrupt.
func LoadDetailedView(path string) (DetailedView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DetailedView{}, fmt.Errorf("read detailed view %s: %w", path, err)
	}

	var view DetailedView
	if err := json.Unmarshal(data, &view); err != nil {
		return DetailedView{}, fmt.Errorf("%w: %s: %v", domain.ErrReplayCorrupt, path, err)
	}
	if view.Resources == nil {
		return DetailedView{}, fmt.Errorf("%w: %s: missing resources", domain.ErrReplayCorrupt, path)
	}
	return view, nil
}

// Replay re-ingests every occurrence of a detailed view, in canonical
// URL order, reconstructing the ledger the export was taken from.
// Structural problems (a resource without occurrences, unparsable
// dates) are fatal: replay seed data must be trustworthy.
func Replay(view DetailedView, ledger *services.Ledger) error {
	urls := make([]string, 0, len(view.Resources))
	for url := range view.Resources {
		urls = append(urls, url)
	}
	sort.Strings(urls)

	for _, url := range urls {
		resource := view.Resources[url]
		if len(resource.Occurrences) == 0 {
			return fmt.Errorf("%w: resource %s has no occurrences", domain.ErrReplayCorrupt, url)
		}

		rawURL := resource.URL
		if rawURL == "" {
			rawURL = url
		}

		for _, occ := range resource.Occurrences {
			date, err := time.Parse(dateLayout, occ.Date)
			if err != nil {
				return fmt.Errorf("%w: resource %s: bad date %q", domain.ErrReplayCorrupt, url, occ.Date)
			}
			if _, err := ledger.Ingest(domain.Occurrence{
				RawURL:   rawURL,
				Title:    occ.TitleUsed,
				Date:     date,
				Source:   occ.Source,
				Category: occ.Category,
			}); err != nil {
				return fmt.Errorf("%w: resource %s: %v", domain.ErrReplayCorrupt, url, err)
			}
		}
	}

	logger.Info("replayed %d resources from detailed view", len(urls))
	return nil
}
