package entities

// Status classifies the outcome of resolving one software entry
type Status string

// Resolution outcomes. Resolved implies a verified URL; Manual implies an
// unverified pointer (vendor page or search link); Unresolved implies no
// URL at all and is reachable only if the terminal fallback itself fails.
const (
	StatusResolved   Status = "Resolved"
	StatusManual     Status = "Manual"
	StatusUnresolved Status = "Unresolved"
)

// Source identifies which provider produced a resolution
type Source string

// Provider source tags
const (
	SourceStaticMap     Source = "static-map"
	SourceWinget        Source = "winget"
	SourceChocolatey    Source = "chocolatey"
	SourceGitHubRelease Source = "github-release"
	SourceVendor        Source = "vendor"
	SourceSearchEngine  Source = "search-engine"
)

// ResolutionRecord is the per-entry outcome of the resolution pipeline.
// Created once per entry, never mutated after finalization.
type ResolutionRecord struct {
	SoftwareName string
	Version      string
	Publisher    string
	Architecture string
	Status       Status
	URL          string
	SignatureURL string
	Source       Source
	Verified     bool
	Notes        []string
}
