package github

import (
	"context"
	"fmt"
	"sync"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/sync/errgroup"

	"github.com/bitdevs-tools/radar-cli/internal/core/domain"
	"github.com/bitdevs-tools/radar-cli/internal/core/services"
	"github.com/bitdevs-tools/radar-cli/internal/logger"
	"github.com/bitdevs-tools/radar-cli/internal/normalisers/markdown"
)

// DefaultConcurrency is how many repositories are scanned in parallel.
const DefaultConcurrency = 4

// Repository is one configured discussion repository to scan.
type Repository struct {
	// URL is the GitHub repository URL.
	URL string

	// PostsDirectory is where the Jekyll posts live.
	// Defaults to DefaultPostsDirectory when empty.
	PostsDirectory string
}

// Ingestor receives the occurrences a scan produces. The ledger
// satisfies this; scans funnel into a single ingestion point even
// when repositories are fetched concurrently.
type Ingestor interface {
	Ingest(occ domain.Occurrence) (services.IngestStatus, error)
}

// ScanStats summarises what a scan covered.
type ScanStats struct {
	// ReposScanned is how many repositories were processed successfully.
	ReposScanned int

	// PostsScanned is how many posts were fetched and parsed.
	PostsScanned int

	// LinksFound is how many links were extracted, before ledger
	// filtering.
	LinksFound int
}

// Scanner walks configured repositories and feeds their links into an
// Ingestor.
type Scanner struct {
	client      *Client
	concurrency int
}

// NewScanner creates a scanner over the given API client.
func NewScanner(client *Client) *Scanner {
	return &Scanner{
		client:      client,
		concurrency: DefaultConcurrency,
	}
}

// SetConcurrency overrides the parallel repository limit.
func (s *Scanner) SetConcurrency(n int) {
	if n > 0 {
		s.concurrency = n
	}
}

// ScanAll scans every repository, funnelling occurrences into the
// ingestor. Per-repository failures do not abort the run: the ledger
// keeps whatever the successful sources produced, and the failures
// come back in the second return value, one per failed source.
func (s *Scanner) ScanAll(ctx context.Context, repos []Repository, ingestor Ingestor) (ScanStats, []error) {
	var (
		mu           sync.Mutex
		stats        ScanStats
		sourceErrors []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, repo := range repos {
		g.Go(func() error {
			posts, links, err := s.scanRepo(gctx, repo, ingestor)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Error("scanning %s failed: %v", repo.URL, err)
				sourceErrors = append(sourceErrors, fmt.Errorf("scan %s: %w", repo.URL, err))
				return nil // partial input is fine, keep going
			}
			stats.ReposScanned++
			stats.PostsScanned += posts
			stats.LinksFound += links
			return nil
		})
	}

	// Goroutines only return nil; Wait surfaces context cancellation.
	if err := g.Wait(); err != nil {
		sourceErrors = append(sourceErrors, err)
	}
	return stats, sourceErrors
}

// scanRepo processes a single repository: resolve the default branch,
// list the posts directory, and extract links from each post.
func (s *Scanner) scanRepo(ctx context.Context, repo Repository, ingestor Ingestor) (posts, links int, err error) {
	owner, name, err := ParseRepoURL(repo.URL)
	if err != nil {
		return 0, 0, err
	}

	postsDir := repo.PostsDirectory
	if postsDir == "" {
		postsDir = DefaultPostsDirectory
	}

	logger.Debug("scanning repository %s/%s (%s)", owner, name, postsDir)

	repository, err := s.client.GetRepository(ctx, owner, name)
	if err != nil {
		if IsNotFound(err) {
			return 0, 0, fmt.Errorf("%w: %s/%s", ErrRepoNotFound, owner, name)
		}
		return 0, 0, err
	}
	branch := repository.GetDefaultBranch()

	tree, err := s.client.GetTree(ctx, owner, name, branch)
	if err != nil {
		return 0, 0, err
	}

	entries := postEntries(tree, postsDir)
	if len(entries) == 0 {
		return 0, 0, fmt.Errorf("%w: %s in %s/%s", ErrPostsDirNotFound, postsDir, owner, name)
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return posts, links, ctx.Err()
		default:
		}

		filePath := entry.GetPath()
		date, ok := ParsePostDate(filePath)
		if !ok {
			logger.Warn("could not parse date from post filename: %s", filePath)
			continue
		}

		content, err := s.client.GetBlobContent(ctx, owner, name, entry.GetSHA())
		if err != nil {
			return posts, links, fmt.Errorf("fetch post %s: %w", filePath, err)
		}

		source := PostBlobURL(repo.URL, branch, filePath)
		extracted := markdown.ExtractLinks(content)
		links += len(extracted)

		for _, link := range extracted {
			occ := domain.Occurrence{
				RawURL:   link.URL,
				Title:    link.Title,
				Date:     date,
				Source:   source,
				Category: link.Category,
			}
			// Malformed URLs are already logged by the ledger;
			// nothing else is an error here.
			_, _ = ingestor.Ingest(occ)
		}
		posts++
	}

	logger.Info("processed %d posts from %s", posts, repo.URL)
	return posts, links, nil
}

// postEntries filters a recursive tree down to markdown posts inside
// the posts directory.
func postEntries(tree *gh.Tree, postsDir string) []*gh.TreeEntry {
	var entries []*gh.TreeEntry
	for _, entry := range tree.Entries {
		if entry.GetType() != "blob" {
			continue
		}
		if IsPostFile(entry.GetPath(), postsDir) {
			entries = append(entries, entry)
		}
	}
	return entries
}
