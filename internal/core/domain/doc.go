// Package domain defines the core business entities for Radar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It defines the fundamental types:
//
//   - Occurrence: one observed reference to a URL in a discussion post
//   - Resource: the merged record of all occurrences of a canonical URL
//   - ExclusionList: configured domain prefixes kept out of aggregation
//
// It also owns URL canonicalisation, since the canonical URL is the
// identity of a Resource.
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. All other packages depend on
// domain, never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library, golang.org/x/net/publicsuffix
//   - Cannot Import: Any other internal/ package
package domain
