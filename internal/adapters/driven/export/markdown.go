package export

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/bitdevs-tools/radar-cli/internal/core/services"
	"github.com/bitdevs-tools/radar-cli/internal/logger"
)

// formatTitles joins a resource's titles for display. Resources whose
// references never carried a title fall back to the canonical URL.
func formatTitles(titles []string, fallback string) string {
	if len(titles) == 0 {
		return fallback
	}
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, " | ")
}

// formatRefCount annotates resources referenced more than once.
func formatRefCount(count int) string {
	if count <= 1 {
		return ""
	}
	return fmt.Sprintf(" (%d references)", count)
}

// writeMetadataSection writes the shared summary header of every
// markdown view.
func writeMetadataSection(w io.Writer, title string, meta services.RunMetadata) {
	fmt.Fprintf(w, "# %s\n\n", title)
	fmt.Fprintf(w, "## Metadata\n\n")
	fmt.Fprintf(w, "- **Total Unique Resources**: %d\n", meta.TotalUniqueURLs)
	fmt.Fprintf(w, "- **Total References**: %d\n", meta.TotalReferences)
	if !meta.FirstDate.IsZero() {
		fmt.Fprintf(w, "- **Date Range**: %s to %s\n",
			meta.FirstDate.Format("2006-01-02"), meta.LastDate.Format("2006-01-02"))
	}
	fmt.Fprintf(w, "- **Unique Domains**: %d\n", meta.UniqueDomains)
	if len(meta.ExcludedDomains) > 0 {
		fmt.Fprintf(w, "- **Excluded Domains**:\n")
		sorted := append([]string(nil), meta.ExcludedDomains...)
		sort.Strings(sorted)
		for _, d := range sorted {
			fmt.Fprintf(w, "  - %s\n", d)
		}
	}
	fmt.Fprintln(w)
}

func writeResourceLine(w io.Writer, r services.ResourceEntry, annotations ...string) {
	line := fmt.Sprintf("- [%s](%s)%s",
		formatTitles(r.Titles, r.CanonicalURL), r.CanonicalURL, formatRefCount(r.Count))
	if len(annotations) > 0 {
		line += " (" + strings.Join(annotations, ", ") + ")"
	}
	fmt.Fprintln(w, line)
}

// RenderCategoryView writes the category-first markdown document.
func RenderCategoryView(w io.Writer, view services.CategoryView, meta services.RunMetadata) {
	writeMetadataSection(w, "Radar Resources Report", meta)
	fmt.Fprintf(w, "# Resources by Category\n\n")

	for _, group := range view.Categories {
		fmt.Fprintf(w, "## %s\n\n", group.Category)

		hasNamedDomains := false
		for _, bucket := range group.Domains {
			if bucket.Domain != services.OtherBucket {
				hasNamedDomains = true
			}
		}

		for _, bucket := range group.Domains {
			if bucket.Domain == services.OtherBucket {
				// The header is redundant when the bucket is alone.
				if hasNamedDomains {
					fmt.Fprintf(w, "### %s\n\n", services.OtherBucket)
				}
			} else {
				fmt.Fprintf(w, "### %s\n\n", bucket.Domain)
			}
			for _, r := range bucket.Resources {
				writeResourceLine(w, r)
			}
			fmt.Fprintln(w)
		}
	}
}

// RenderDomainView writes the domain-first markdown document.
func RenderDomainView(w io.Writer, view services.DomainView, meta services.RunMetadata) {
	writeMetadataSection(w, "Radar Resources Report", meta)
	fmt.Fprintf(w, "# Resources by Domain\n\n")

	for _, group := range view.Groups {
		fmt.Fprintf(w, "## %s (%d resources, %d total references)\n\n",
			group.Domain, group.ResourceCount, group.TotalRefs)
		for _, r := range group.Resources {
			writeResourceLine(w, r, "Category: "+r.Category)
		}
		fmt.Fprintln(w)
	}
}

// RenderMonthView writes the date-first markdown document.
func RenderMonthView(w io.Writer, view services.MonthView, meta services.RunMetadata) {
	writeMetadataSection(w, "Radar Resources Report", meta)
	fmt.Fprintf(w, "# Resources by Date\n\n")

	for _, month := range view.Months {
		fmt.Fprintf(w, "## %s\n\n", displayMonth(month.Month))

		hasNamedDomains := false
		for _, bucket := range month.Domains {
			if bucket.Domain != services.OtherBucket {
				hasNamedDomains = true
			}
		}

		for _, bucket := range month.Domains {
			if bucket.Domain == services.OtherBucket {
				if hasNamedDomains {
					fmt.Fprintf(w, "### %s\n\n", services.OtherBucket)
				}
				// No domain subheading here, so each entry carries
				// its own annotations.
				for _, r := range bucket.Resources {
					writeResourceLine(w, r, "Category: "+r.Category, "Domain: "+r.RootDomain)
				}
			} else {
				fmt.Fprintf(w, "### %s\n\n", bucket.Domain)
				for _, r := range bucket.Resources {
					writeResourceLine(w, r, "Category: "+r.Category)
				}
			}
			fmt.Fprintln(w)
		}
	}
}

// displayMonth converts a YYYY-MM key to its long form ("December 2024").
func displayMonth(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

// WriteMarkdownFile renders a view to a file through the given render
// function.
func WriteMarkdownFile(path string, render func(w io.Writer)) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	render(f)

	if err := f.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logger.Info("generated view at %s", path)
	return nil
}
