package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExtractLinks_HeadingPath tests category assignment from nested headings
func TestExtractLinks_HeadingPath(t *testing.T) {
	content := `## Research

### Layer 2

- [Lightning paper](https://example.com/ln.pdf)

## Network Data

- [Mempool observations](https://b10c.me/observations)
`
	links := ExtractLinks(content)

	require.Len(t, links, 2)
	assert.Equal(t, "Lightning paper", links[0].Title)
	assert.Equal(t, "https://example.com/ln.pdf", links[0].URL)
	assert.Equal(t, "Research / Layer 2", links[0].Category)

	assert.Equal(t, "Mempool observations", links[1].Title)
	assert.Equal(t, "Network Data", links[1].Category)
}

// TestExtractLinks_HeadingPopsSameLevel tests that a sibling heading replaces the previous one
func TestExtractLinks_HeadingPopsSameLevel(t *testing.T) {
	content := `## A

### A1

## B

- [x](https://example.com/x)
`
	links := ExtractLinks(content)

	require.Len(t, links, 1)
	assert.Equal(t, "B", links[0].Category)
}

// TestExtractLinks_NoHeading tests links before any heading
func TestExtractLinks_NoHeading(t *testing.T) {
	links := ExtractLinks("[intro](https://example.com/intro)")

	require.Len(t, links, 1)
	assert.Equal(t, "", links[0].Category)
}

// TestExtractLinks_SkipsImages tests that image syntax is not a link
func TestExtractLinks_SkipsImages(t *testing.T) {
	content := `![diagram](https://example.com/diagram.png)
[real link](https://example.com/post)
`
	links := ExtractLinks(content)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/post", links[0].URL)
}

// TestExtractLinks_SkipsFencedCode tests that code blocks are ignored
func TestExtractLinks_SkipsFencedCode(t *testing.T) {
	content := "```\n[not a link](https://example.com/in-code)\n```\n[kept](https://example.com/kept)\n"
	links := ExtractLinks(content)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/kept", links[0].URL)
}

// TestExtractLinks_SkipsInlineCode tests that inline code spans are ignored
func TestExtractLinks_SkipsInlineCode(t *testing.T) {
	content := "Use `[x](https://example.com/span)` and see [doc](https://example.com/doc)"
	links := ExtractLinks(content)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/doc", links[0].URL)
}

// TestExtractLinks_SkipsEmptyTextOrTarget tests empty-part filtering
func TestExtractLinks_SkipsEmptyTextOrTarget(t *testing.T) {
	content := "[](https://example.com/no-text)\n[no target]()\n"
	links := ExtractLinks(content)

	assert.Empty(t, links)
}

// TestExtractLinks_LinkInHeading tests that heading links are extracted under the new path
func TestExtractLinks_LinkInHeading(t *testing.T) {
	content := "## [Release notes](https://example.com/notes)\n"
	links := ExtractLinks(content)

	require.Len(t, links, 1)
	assert.Equal(t, "Release notes", links[0].Title)
	assert.Equal(t, "Release notes", links[0].Category)
}

// TestExtractLinks_TitleAttribute tests links carrying a markdown title attribute
func TestExtractLinks_TitleAttribute(t *testing.T) {
	content := `[text](https://example.com/x "hover title")`
	links := ExtractLinks(content)

	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/x", links[0].URL)
}

// TestExtractLinks_MultiplePerLine tests several links on one line
func TestExtractLinks_MultiplePerLine(t *testing.T) {
	content := "[a](https://example.com/a) and [b](https://example.com/b)"
	links := ExtractLinks(content)

	require.Len(t, links, 2)
}
