// Package markdown extracts resource links from markdown discussion
// posts. Each link carries the heading path it appeared under, which
// becomes the occurrence's category (e.g., "Research / Layer 2").
package markdown

import (
	"regexp"
	"strings"
)

// Link is one extracted markdown link with its heading-path category.
type Link struct {
	// Title is the link text.
	Title string

	// URL is the link target exactly as written.
	URL string

	// Category is the heading path joined by " / ". Empty when the
	// link appears before any heading.
	Category string
}

var (
	headingRe    = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	linkRe       = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)
	inlineCodeRe = regexp.MustCompile("`[^`]+`")
)

// ExtractLinks walks the markdown content line by line and returns
// every inline link with its category path. Fenced code blocks and
// inline code spans are skipped, as are images and links with empty
// text or target.
func ExtractLinks(content string) []Link {
	var links []Link
	tracker := &headingTracker{}
	inFence := false

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}

		line = inlineCodeRe.ReplaceAllString(line, "")

		if m := headingRe.FindStringSubmatch(trimmed); m != nil {
			tracker.update(len(m[1]), plainText(m[2]))
			// Headings can themselves contain links; fall through so
			// they are extracted under the updated path.
		}

		for _, m := range linkRe.FindAllStringSubmatch(line, -1) {
			if m[1] == "!" {
				continue // image
			}
			title := strings.TrimSpace(m[2])
			target := strings.TrimSpace(m[3])
			if title == "" || target == "" {
				continue
			}
			links = append(links, Link{
				Title:    title,
				URL:      target,
				Category: tracker.path(),
			})
		}
	}

	return links
}

// plainText reduces inline markdown in heading text to its visible
// form: links become their text, emphasis markers are dropped.
func plainText(s string) string {
	s = linkRe.ReplaceAllString(s, "$2")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}

// headingTracker maintains the current heading path while walking a
// post top to bottom. A heading at level N replaces any headings at
// level N or deeper, so the path always reads from the outermost
// section to the innermost.
type headingTracker struct {
	stack []headingLevel
}

type headingLevel struct {
	level int
	text  string
}

func (t *headingTracker) update(level int, text string) {
	for len(t.stack) > 0 && t.stack[len(t.stack)-1].level >= level {
		t.stack = t.stack[:len(t.stack)-1]
	}
	t.stack = append(t.stack, headingLevel{level: level, text: text})
}

func (t *headingTracker) path() string {
	if len(t.stack) == 0 {
		return ""
	}
	parts := make([]string, len(t.stack))
	for i, h := range t.stack {
		parts[i] = h.text
	}
	return strings.Join(parts, " / ")
}
