package services

import (
	"sync"
	"time"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
	"github.com/bitdevs-tools/radar-cli/internal/logger"
)

// IngestStatus reports what the ledger did with an occurrence.
type IngestStatus int

const (
	// StatusAdded means the occurrence was folded into a record.
	StatusAdded IngestStatus = iota

	// StatusExcluded means the canonical URL matched an excluded
	// prefix. Counted for run metadata, never stored.
	StatusExcluded

	// StatusTooOld means the occurrence predates the start-date cutoff.
	StatusTooOld

	// StatusMalformed means the raw URL could not be canonicalised.
	StatusMalformed
)

// Ledger is the deduplicating store at the centre of a run. It owns
// one Resource per canonical URL and folds every ingested occurrence
// into the matching record.
//
// Ingest is safe for concurrent use so parallel repo scanners can
// funnel into a single ledger; views are built from Snapshot after
// ingestion completes.
type Ledger struct {
	mu         sync.Mutex
	resources  map[string]*domain.Resource
	exclusions *domain.ExclusionList
	startDate  time.Time // zero means no cutoff
	excluded   int
	tooOld     int
	malformed  int
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithExclusions sets the excluded-domain prefixes applied before
// ingestion.
func WithExclusions(list *domain.ExclusionList) LedgerOption {
	return func(l *Ledger) { l.exclusions = list }
}

// WithStartDate rejects occurrences dated before the cutoff.
func WithStartDate(cutoff time.Time) LedgerOption {
	return func(l *Ledger) { l.startDate = cutoff }
}

// NewLedger creates an empty ledger.
func NewLedger(opts ...LedgerOption) *Ledger {
	l := &Ledger{
		resources: make(map[string]*domain.Resource),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ingest normalises the occurrence's URL, applies the start-date and
// exclusion filters, and folds the occurrence into its record. A
// malformed URL returns StatusMalformed with a wrapped
// domain.ErrMalformedURL; filter rejections are statuses, not errors.
func (l *Ledger) Ingest(occ domain.Occurrence) (IngestStatus, error) {
	canonical, rootDomain, err := domain.NormalizeURL(occ.RawURL)
	if err != nil {
		l.mu.Lock()
		l.malformed++
		l.mu.Unlock()
		logger.Warn("dropping occurrence with malformed URL %q from %s: %v", occ.RawURL, occ.Source, err)
		return StatusMalformed, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.startDate.IsZero() && occ.Date.Before(l.startDate) {
		l.tooOld++
		return StatusTooOld, nil
	}

	if l.exclusions.IsExcluded(canonical) {
		l.excluded++
		logger.Debug("skipping excluded URL: %s", canonical)
		return StatusExcluded, nil
	}

	record, ok := l.resources[canonical]
	if !ok {
		record = domain.NewResource(canonical, rootDomain)
		l.resources[canonical] = record
	}
	record.AddOccurrence(domain.OccurrenceRecord{
		Date:      occ.Date,
		Source:    occ.Source,
		Category:  occ.Category,
		TitleUsed: occ.Title,
	})
	logger.Debug("added occurrence for %s from %s", canonical, occ.Source)

	return StatusAdded, nil
}

// Snapshot returns a deep copy of the ledger contents keyed by
// canonical URL. View builders read snapshots, never the live ledger.
func (l *Ledger) Snapshot() map[string]*domain.Resource {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]*domain.Resource, len(l.resources))
	for url, record := range l.resources {
		out[url] = record.Clone()
	}
	return out
}

// Len returns the number of unique canonical URLs.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.resources)
}

// ExcludedCount returns how many occurrences were rejected by the
// exclusion filter.
func (l *Ledger) ExcludedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.excluded
}

// MalformedCount returns how many occurrences were dropped for
// unparsable URLs.
func (l *Ledger) MalformedCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.malformed
}

// TooOldCount returns how many occurrences predated the start-date
// cutoff.
func (l *Ledger) TooOldCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tooOld
}

// StartDate returns the configured cutoff, zero when unset.
func (l *Ledger) StartDate() time.Time {
	return l.startDate
}

// Exclusions returns the configured exclusion list, possibly nil.
func (l *Ledger) Exclusions() *domain.ExclusionList {
	return l.exclusions
}
