package domain

import "strings"

// ExclusionList holds the configured domain (or domain+path) prefixes
// that are kept out of aggregation. Matching is case-insensitive and
// scheme-agnostic: a canonical URL is excluded when its host+path form
// starts with any configured prefix.
type ExclusionList struct {
	prefixes []string
}

// NewExclusionList builds an exclusion list from configured entries.
// Entries may be bare domains ("twitter.com"), domain+path prefixes
// ("github.com/bitcoin/bitcoin"), or carry a scheme; all are folded to
// a lower-case host+path prefix. Blank entries are ignored.
func NewExclusionList(entries []string) *ExclusionList {
	list := &ExclusionList{}
	for _, entry := range entries {
		p := foldPrefix(entry)
		if p != "" {
			list.prefixes = append(list.prefixes, p)
		}
	}
	return list
}

// IsExcluded reports whether the canonical URL matches a configured
// excluded prefix.
func (l *ExclusionList) IsExcluded(canonicalURL string) bool {
	if l == nil || len(l.prefixes) == 0 {
		return false
	}
	target := foldPrefix(canonicalURL)
	for _, p := range l.prefixes {
		if strings.HasPrefix(target, p) {
			return true
		}
	}
	return false
}

// Entries returns the folded prefixes, for run metadata transparency.
func (l *ExclusionList) Entries() []string {
	if l == nil {
		return nil
	}
	out := make([]string, len(l.prefixes))
	copy(out, l.prefixes)
	return out
}

// foldPrefix reduces an entry or URL to a comparable lower-case
// host+path form: scheme and leading "www." stripped, trailing
// slashes trimmed.
func foldPrefix(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(s, scheme) {
			s = strings.TrimPrefix(s, scheme)
			break
		}
	}
	s = strings.TrimPrefix(s, "www.")
	return strings.TrimRight(s, "/")
}
