package domain

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeURL canonicalises a raw URL into the stable form used as
// the deduplication key, and extracts the registrable domain of its
// host for grouping.
//
// Canonicalisation lowercases the scheme and host, folds http into
// https, drops the fragment, strips default ports, sorts query
// parameters, and trims trailing slashes. It is total over parsable
// URLs and idempotent: normalising a canonical URL returns it
// unchanged.
//
// Returns ErrMalformedURL when the input cannot be parsed or has no
// host.
func NormalizeURL(raw string) (canonical, rootDomain string, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", "", fmt.Errorf("%w: empty input", ErrMalformedURL)
	}

	u, parseErr := url.Parse(trimmed)
	if parseErr != nil {
		return "", "", fmt.Errorf("%w: %v", ErrMalformedURL, parseErr)
	}

	// Scheme-less links like "b10c.me/x" parse as bare paths. Retry
	// with an https prefix when the first segment looks like a host,
	// so the result is the same as for the schemed form.
	if u.Host == "" && u.Scheme == "" {
		if first, _, _ := strings.Cut(trimmed, "/"); strings.Contains(first, ".") {
			u, parseErr = url.Parse("https://" + trimmed)
			if parseErr != nil {
				return "", "", fmt.Errorf("%w: %v", ErrMalformedURL, parseErr)
			}
		}
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: no host in %q", ErrMalformedURL, raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme == "http" {
		scheme = "https"
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimSuffix(host, ":80")
	host = strings.TrimSuffix(host, ":443")

	path := strings.TrimRight(u.EscapedPath(), "/")

	var query string
	if u.RawQuery != "" {
		// Values.Encode writes keys in sorted order, which makes
		// query parameter order irrelevant to the key.
		if values, qerr := url.ParseQuery(u.RawQuery); qerr == nil {
			query = values.Encode()
		} else {
			query = u.RawQuery
		}
	}

	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString("://")
	b.WriteString(host)
	b.WriteString(path)
	if query != "" {
		b.WriteString("?")
		b.WriteString(query)
	}

	return b.String(), RootDomain(host), nil
}

// RootDomain reduces a host to its registrable domain
// (e.g., "blog.example.co.uk" becomes "example.co.uk") using the
// public suffix list. Hosts without a registrable domain (IP
// addresses, single labels, bare public suffixes) fall back to the
// host itself; an empty host maps to UnknownDomain.
func RootDomain(host string) string {
	host = strings.ToLower(host)
	if i := strings.LastIndex(host, ":"); i >= 0 && !strings.Contains(host, "]") {
		host = host[:i]
	}
	host = strings.Trim(host, "[]")
	if host == "" {
		return UnknownDomain
	}

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return strings.TrimPrefix(host, "www.")
	}
	return domain
}
