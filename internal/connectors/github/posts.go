package github

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"
)

// DefaultPostsDirectory is where Jekyll sites keep their posts.
const DefaultPostsDirectory = "_posts"

var postDateRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)

// ParseRepoURL extracts owner and repo from a GitHub repository URL
// such as "https://github.com/BitDevs/NYC" (a trailing ".git" is
// tolerated). Returns ErrInvalidRepoURL for anything else.
func ParseRepoURL(repoURL string) (owner, repo string, err error) {
	u, parseErr := url.Parse(strings.TrimSpace(repoURL))
	if parseErr != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRepoURL, parseErr)
	}
	if !strings.EqualFold(u.Host, "github.com") {
		return "", "", fmt.Errorf("%w: host %q", ErrInvalidRepoURL, u.Host)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: path %q", ErrInvalidRepoURL, u.Path)
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), nil
}

// ParsePostDate extracts the date from a Jekyll-style post filename
// (YYYY-MM-DD-title.md). The second return is false when the filename
// carries no parsable date prefix.
func ParsePostDate(filename string) (time.Time, bool) {
	m := postDateRe.FindStringSubmatch(path.Base(filename))
	if m == nil {
		return time.Time{}, false
	}
	date, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}

// PostBlobURL builds the browsable GitHub URL for a post file. This is
// the occurrence source identifier: it points a reader at the exact
// discussion the link came from.
func PostBlobURL(repoURL, branch, filePath string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(repoURL), "/"), ".git")
	return base + "/blob/" + branch + "/" + filePath
}

// IsPostFile reports whether a tree path is a markdown post inside the
// given posts directory (direct children only, matching Jekyll's
// layout).
func IsPostFile(treePath, postsDir string) bool {
	dir, file := path.Split(treePath)
	if strings.Trim(dir, "/") != strings.Trim(postsDir, "/") {
		return false
	}
	return strings.HasSuffix(file, ".md") || strings.HasSuffix(file, ".markdown")
}
