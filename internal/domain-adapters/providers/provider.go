// Package providers implements the ordered fallback chain of external
// lookup strategies. Each provider is one link in a chain of
// responsibility: it either resolves an entry or reports not-found so the
// pipeline can advance. Provider failures never propagate; they are
// absorbed into diagnostic notes.
package providers

import (
	"context"
	"errors"
	"fmt"

	"github.com/rewintool/rewin/internal/domain/entities"
)

// Local failure taxonomy. All four advance the chain and never abort an
// entry or the run; Timeout downgrades to ProviderUnavailable, and
// MalformedResponse downgrades to NoMatch, both with a note.
var (
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrNoMatch             = errors.New("no match")
	ErrMalformedResponse   = errors.New("malformed response")
)

// Result is the outcome of one provider attempt
type Result struct {
	Found        bool
	URL          string
	SignatureURL string
	Source       entities.Source
	Verified     bool
	Note         string
}

// Provider is one external-lookup strategy in the fallback chain
type Provider interface {
	// Name identifies the provider in diagnostics
	Name() string

	// Attempt tries to resolve the entry. A not-found result carries a
	// note explaining why; errors internal to the provider are absorbed
	// into that note rather than returned.
	Attempt(ctx context.Context, entry entities.SoftwareEntry, arch entities.Architecture) Result
}

func notFound(note string) Result {
	return Result{Note: note}
}

// absorb converts a provider-local failure into a not-found result whose
// note records the taxonomy class. The chain advances; nothing propagates.
func absorb(class error, detail string) Result {
	return Result{Note: fmt.Sprintf("%v: %s", class, detail)}
}
