package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExclusionList_DomainPrefix tests matching on a bare domain entry
func TestExclusionList_DomainPrefix(t *testing.T) {
	list := NewExclusionList([]string{"twitter.com"})

	assert.True(t, list.IsExcluded("https://twitter.com/someone/status/123"))
	assert.False(t, list.IsExcluded("https://example.com/about-twitter"))
}

// TestExclusionList_PathPrefix tests matching on a domain+path entry
func TestExclusionList_PathPrefix(t *testing.T) {
	list := NewExclusionList([]string{"github.com/bitcoin/bitcoin"})

	assert.True(t, list.IsExcluded("https://github.com/bitcoin/bitcoin/pull/1234"))
	assert.False(t, list.IsExcluded("https://github.com/bitcoin/bips"))
}

// TestExclusionList_CaseInsensitive tests case folding of entries and URLs
func TestExclusionList_CaseInsensitive(t *testing.T) {
	list := NewExclusionList([]string{"Twitter.COM"})

	assert.True(t, list.IsExcluded("https://TWITTER.com/x"))
}

// TestExclusionList_SchemeAndWWWIgnored tests scheme/www-insensitive folding
func TestExclusionList_SchemeAndWWWIgnored(t *testing.T) {
	list := NewExclusionList([]string{"https://www.reddit.com/"})

	assert.True(t, list.IsExcluded("https://reddit.com/r/bitcoin"))
	assert.True(t, list.IsExcluded("https://www.reddit.com/r/bitcoin"))
}

// TestExclusionList_Empty tests that an empty list excludes nothing
func TestExclusionList_Empty(t *testing.T) {
	list := NewExclusionList(nil)
	assert.False(t, list.IsExcluded("https://example.com"))

	var nilList *ExclusionList
	assert.False(t, nilList.IsExcluded("https://example.com"))
}

// TestExclusionList_BlankEntriesIgnored tests that blank entries never match
func TestExclusionList_BlankEntriesIgnored(t *testing.T) {
	list := NewExclusionList([]string{"", "   "})
	assert.False(t, list.IsExcluded("https://example.com"))
}
