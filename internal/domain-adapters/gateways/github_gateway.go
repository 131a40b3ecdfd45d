// Package gateways implements adapters for external lookup sources.
package gateways

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rewintool/rewin/internal/domain/interfaces/gateways"
)

const (
	// Max retries for transient errors
	maxRetries = 2
	// Initial backoff duration
	initialBackoff = 500 * time.Millisecond
	// Max backoff duration
	maxBackoff = 4 * time.Second
)

// HTTPGitHubGateway implements GitHubGateway against the public REST API.
// All calls are read-only and work unauthenticated; a token raises the
// rate limit when present.
type HTTPGitHubGateway struct {
	client    *http.Client
	baseURL   string
	token     string
	userAgent string
}

// NewHTTPGitHubGateway creates a new GitHub gateway. token may be empty.
func NewHTTPGitHubGateway(token string) *HTTPGitHubGateway {
	return &HTTPGitHubGateway{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   "https://api.github.com",
		token:     token,
		userAgent: "rewin/1.0",
	}
}

// checkRateLimit inspects GitHub rate limit headers and returns an error
// when the quota is exhausted.
func checkRateLimit(resp *http.Response) error {
	remaining := resp.Header.Get("X-RateLimit-Remaining")
	if remaining == "" {
		return nil
	}

	remainingInt, err := strconv.Atoi(remaining)
	if err != nil {
		return nil
	}

	if remainingInt == 0 {
		resetTime := resp.Header.Get("X-RateLimit-Reset")
		if resetTime != "" {
			if resetUnix, err := strconv.ParseInt(resetTime, 10, 64); err == nil {
				resetAt := time.Unix(resetUnix, 0)
				return fmt.Errorf("GitHub API rate limit exceeded (0 remaining), resets at %s", resetAt.Format(time.RFC3339))
			}
		}
		return fmt.Errorf("GitHub API rate limit exceeded (0 remaining)")
	}

	return nil
}

// isRetryableError checks if an HTTP status code is retryable
func isRetryableError(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, // 429
		http.StatusInternalServerError, // 500
		http.StatusBadGateway,          // 502
		http.StatusServiceUnavailable,  // 503
		http.StatusGatewayTimeout:      // 504
		return true
	default:
		return false
	}
}

// calculateBackoff returns the backoff duration for a retry attempt
func calculateBackoff(attempt int) time.Duration {
	backoff := float64(initialBackoff) * math.Pow(2, float64(attempt))
	if backoff > float64(maxBackoff) {
		backoff = float64(maxBackoff)
	}
	return time.Duration(backoff)
}

// doWithRetry executes an HTTP request with exponential backoff retry.
// The request context bounds the whole sequence, backoff included.
func (g *HTTPGitHubGateway) doWithRetry(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-req.Context().Done():
				return nil, req.Context().Err()
			case <-time.After(calculateBackoff(attempt - 1)):
			}
		}

		resp, err = g.client.Do(req)
		if err != nil {
			// Network errors are retryable, context errors are not
			if req.Context().Err() != nil {
				return nil, req.Context().Err()
			}
			if attempt < maxRetries {
				continue
			}
			return nil, err
		}

		if rateLimitErr := checkRateLimit(resp); rateLimitErr != nil {
			//nolint:errcheck,gosec // G104: Best effort close on rate limit error
			resp.Body.Close()
			return nil, rateLimitErr
		}

		if !isRetryableError(resp.StatusCode) {
			return resp, nil
		}

		//nolint:errcheck,gosec // G104: Best effort close before retry
		resp.Body.Close()

		if attempt < maxRetries {
			continue
		}

		return resp, nil
	}

	return resp, err
}

func (g *HTTPGitHubGateway) newRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", g.userAgent)
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}
	return req, nil
}

// githubSearchResponse is the API shape for repository search
type githubSearchResponse struct {
	TotalCount int                `json:"total_count"`
	Items      []githubRepository `json:"items"`
}

type githubRepository struct {
	FullName    string `json:"full_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	HTMLURL     string `json:"html_url"`
}

type githubRelease struct {
	TagName     string        `json:"tag_name"`
	Name        string        `json:"name"`
	Draft       bool          `json:"draft"`
	Prerelease  bool          `json:"prerelease"`
	PublishedAt string        `json:"published_at"`
	Assets      []githubAsset `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	DownloadCount      int    `json:"download_count"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// SearchRepositories queries the repository search API, most stars first
func (g *HTTPGitHubGateway) SearchRepositories(ctx context.Context, query string) ([]gateways.GitHubRepository, error) {
	searchURL := fmt.Sprintf("%s/search/repositories?q=%s&sort=stars&order=desc&per_page=5",
		g.baseURL, url.QueryEscape(query))

	req, err := g.newRequest(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	resp, err := g.doWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("repository search failed: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("repository search: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result githubSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	repos := make([]gateways.GitHubRepository, len(result.Items))
	for i, item := range result.Items {
		repos[i] = gateways.GitHubRepository{
			FullName:    item.FullName,
			Name:        item.Name,
			Description: item.Description,
			Stars:       item.Stars,
			HTMLURL:     item.HTMLURL,
		}
	}

	return repos, nil
}

// LatestRelease fetches the most recent non-draft release with its assets
func (g *HTTPGitHubGateway) LatestRelease(ctx context.Context, fullName string) (*gateways.GitHubRelease, error) {
	releaseURL := fmt.Sprintf("%s/repos/%s/releases/latest", g.baseURL, fullName)

	req, err := g.newRequest(ctx, releaseURL)
	if err != nil {
		return nil, err
	}

	resp, err := g.doWithRetry(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}
	//nolint:errcheck // Defer close on HTTP response body
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("no releases for %s", fullName)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("latest release: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var release githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode release response: %w", err)
	}

	if release.Draft {
		return nil, fmt.Errorf("latest release of %s is a draft", fullName)
	}

	assets := make([]gateways.GitHubAsset, len(release.Assets))
	for i, a := range release.Assets {
		assets[i] = gateways.GitHubAsset{
			Name:               a.Name,
			Size:               a.Size,
			DownloadCount:      a.DownloadCount,
			BrowserDownloadURL: a.BrowserDownloadURL,
		}
	}

	return &gateways.GitHubRelease{
		TagName:     release.TagName,
		Name:        release.Name,
		Draft:       release.Draft,
		Prerelease:  release.Prerelease,
		PublishedAt: release.PublishedAt,
		Assets:      assets,
	}, nil
}
