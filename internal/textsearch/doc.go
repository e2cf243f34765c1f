// Package textsearch implements full-text and regex search over the project
// tree with a three-tier strategy cascade:
//
//  1. git grep, when the root is a git repository (case-insensitive,
//     includes untracked files)
//  2. an external line-search utility: ripgrep when installed, otherwise
//     plain grep
//  3. a pure in-process scan, always available
//
// Each tier is attempted only if the previous one is unavailable or fails;
// an exit status meaning "no matches" is a successful empty result, not a
// failure. Glob patterns with brace alternatives are expanded before being
// handed to any tier, and results from every tier are uniformly re-ordered
// by file recency: files modified within the last 24 hours first, then by
// modification time descending, ties preserving the tier's own order.
package textsearch
