// Package github scans Jekyll-style discussion repositories hosted on
// GitHub and emits resource occurrences.
//
// The scanner uses the GitHub REST API rather than cloning: for each
// configured repository it resolves the default branch, lists the
// posts directory through the Git tree API, fetches each post blob,
// and extracts links with their heading-path categories. Posts are
// Jekyll-named (YYYY-MM-DD-title.md); the filename date becomes the
// occurrence date and the post's blob URL becomes its source
// identifier.
//
// Rate limiting is dual-strategy: a proactive token bucket keeps the
// request rate under the API budget, and response headers update a
// reactive limit so the scanner backs off before exhausting the
// quota. Repositories are scanned concurrently, each funnelling its
// occurrences into the shared ledger.
package github
