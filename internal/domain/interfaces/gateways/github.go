// Package gateways defines contracts for external lookup sources.
package gateways

import "context"

// GitHubRepository is a repository returned by the search API
type GitHubRepository struct {
	FullName    string
	Name        string
	Description string
	Stars       int
	HTMLURL     string
}

// GitHubAsset is a downloadable file attached to a release
type GitHubAsset struct {
	Name               string
	Size               int64
	DownloadCount      int
	BrowserDownloadURL string
}

// GitHubRelease is a published release with its assets
type GitHubRelease struct {
	TagName     string
	Name        string
	Draft       bool
	Prerelease  bool
	PublishedAt string
	Assets      []GitHubAsset
}

// GitHubGateway provides read-only access to the code-hosting search and
// release APIs. Implementations must honor the context deadline.
type GitHubGateway interface {
	// SearchRepositories returns repositories matching the query,
	// ordered by popularity (most stars first).
	SearchRepositories(ctx context.Context, query string) ([]GitHubRepository, error)

	// LatestRelease returns the most recent non-draft release of a
	// repository, including its asset list.
	LatestRelease(ctx context.Context, fullName string) (*GitHubRelease, error)
}
