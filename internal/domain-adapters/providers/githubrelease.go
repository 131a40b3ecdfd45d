package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/domain/interfaces/gateways"
	"github.com/rewintool/rewin/internal/domain/services"
)

// GitHubReleaseProvider looks for the software on the code-hosting site:
// search repositories for "<publisher> <name>", take the top hit by stars,
// fetch its latest release, and pick the first asset whose filename matches
// the host architecture. A matching detached signature asset (.asc), when
// present, rides along on the result.
type GitHubReleaseProvider struct {
	gateway gateways.GitHubGateway
}

// NewGitHubReleaseProvider creates a provider over the given gateway
func NewGitHubReleaseProvider(gateway gateways.GitHubGateway) *GitHubReleaseProvider {
	return &GitHubReleaseProvider{gateway: gateway}
}

// Name identifies the provider in diagnostics
func (p *GitHubReleaseProvider) Name() string { return "github-release" }

// Attempt searches for a matching repository release asset
func (p *GitHubReleaseProvider) Attempt(ctx context.Context, entry entities.SoftwareEntry, arch entities.Architecture) Result {
	if !services.Searchable(entry.Name) {
		return notFound("name too short for live search")
	}

	// Same search term as the package-manager providers: version and
	// architecture qualifiers only pollute the repository search.
	query := strings.TrimSpace(entry.Publisher + " " + services.CleanName(entry.Name))
	repos, err := p.gateway.SearchRepositories(ctx, query)
	if err != nil {
		return absorb(ErrProviderUnavailable, fmt.Sprintf("github search failed: %v", err))
	}
	if len(repos) == 0 {
		return notFound("no matching github repository")
	}

	// Top result by popularity, but only if its name plausibly names the
	// same software; a star-sorted search for a generic term can surface
	// wildly unrelated repositories.
	repo := repos[0]
	if !services.SimilarName(entry.Name, repo.Name) && !services.SimilarName(entry.Name, repo.FullName) {
		return notFound(fmt.Sprintf("top search hit %s does not match %q", repo.FullName, entry.Name))
	}

	release, err := p.gateway.LatestRelease(ctx, repo.FullName)
	if err != nil {
		return notFound(fmt.Sprintf("no usable release for %s: %v", repo.FullName, err))
	}

	asset, ok := pickAsset(release.Assets, arch)
	if !ok {
		return notFound(fmt.Sprintf("release %s %s has no %s asset", repo.FullName, release.TagName, arch.Name))
	}

	return Result{
		Found:        true,
		URL:          asset.BrowserDownloadURL,
		SignatureURL: signatureFor(release.Assets, asset.Name),
		Source:       entities.SourceGitHubRelease,
		Verified:     true,
		Note:         fmt.Sprintf("github release %s %s, asset %s", repo.FullName, release.TagName, asset.Name),
	}
}

// pickAsset returns the first asset matching the architecture keyword set
func pickAsset(assets []gateways.GitHubAsset, arch entities.Architecture) (gateways.GitHubAsset, bool) {
	for _, a := range assets {
		if strings.HasSuffix(a.Name, ".asc") || strings.HasSuffix(a.Name, ".sig") {
			continue
		}
		if arch.MatchesAsset(a.Name) {
			return a, true
		}
	}
	return gateways.GitHubAsset{}, false
}

// signatureFor returns the download URL of a detached signature asset for
// the chosen file, or empty when the release does not ship one.
func signatureFor(assets []gateways.GitHubAsset, assetName string) string {
	for _, a := range assets {
		if a.Name == assetName+".asc" || a.Name == assetName+".sig" {
			return a.BrowserDownloadURL
		}
	}
	return ""
}
