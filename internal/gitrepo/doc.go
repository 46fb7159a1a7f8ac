// Package gitrepo contains helpers for interpreting Git repository URLs.
//
// It exposes ParseGitHubRepositoryURL, which recognises GitHub HTTPS clone
// URLs and splits them into owner and repository identifiers for catalog
// lookups.
package gitrepo
