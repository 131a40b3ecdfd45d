// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rewintool/rewin/internal/domain-adapters/providers"
	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/domain/interfaces"
)

// ResolutionPipeline walks every entry through the ordered provider chain.
// Per entry: try providers in order, short-circuit on the first hit
// (Resolved when verified, Manual when not), absorb every failure into the
// record's notes, and fall through to Unresolved only if the terminal
// provider itself comes back empty. Entries are mutually independent, so a
// bounded worker pool may fan them out; each worker writes only its own
// result slot, so readers never observe a partially built record.
type ResolutionPipeline struct {
	providers      []providers.Provider
	arch           entities.Architecture
	attemptTimeout time.Duration
	jobs           int
	logger         interfaces.Logger
}

// ResolutionPipelineConfig holds configuration for the pipeline
type ResolutionPipelineConfig struct {
	// AttemptTimeout bounds each individual provider call
	AttemptTimeout time.Duration

	// Jobs is the worker pool size; 1 processes entries sequentially
	Jobs int
}

// NewResolutionPipeline creates a pipeline over an ordered provider chain
func NewResolutionPipeline(
	chain []providers.Provider,
	arch entities.Architecture,
	config ResolutionPipelineConfig,
	logger interfaces.Logger,
) *ResolutionPipeline {
	timeout := config.AttemptTimeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}
	jobs := config.Jobs
	if jobs < 1 {
		jobs = 1
	}
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ResolutionPipeline{
		providers:      chain,
		arch:           arch,
		attemptTimeout: timeout,
		jobs:           jobs,
		logger:         logger,
	}
}

// Resolve processes all entries and returns one record per completed
// entry, in input order. Cancellation is honored at entry boundaries:
// in-flight entries finish or are abandoned, no new entries start, and
// records completed so far are returned.
func (p *ResolutionPipeline) Resolve(ctx context.Context, entries []entities.SoftwareEntry) []entities.ResolutionRecord {
	slots := make([]*entities.ResolutionRecord, len(entries))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.jobs; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				slots[i] = p.resolveEntry(ctx, entries[i])
			}
		}()
	}

feed:
	for i := range entries {
		select {
		case <-ctx.Done():
			p.logger.Warn("run cancelled, stopping at entry boundary",
				interfaces.F("completed", i))
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	records := make([]entities.ResolutionRecord, 0, len(entries))
	for _, slot := range slots {
		if slot != nil {
			records = append(records, *slot)
		}
	}
	return records
}

// resolveEntry runs one entry through the full chain. A nil return means
// the run was cancelled mid-entry and the entry was abandoned; abandoned
// entries must not surface as Unresolved records, that status is reserved
// for a chain that genuinely came back empty.
func (p *ResolutionPipeline) resolveEntry(ctx context.Context, entry entities.SoftwareEntry) *entities.ResolutionRecord {
	record := entities.ResolutionRecord{
		SoftwareName: entry.Name,
		Version:      entry.Version,
		Publisher:    entry.Publisher,
		Architecture: p.arch.Name,
		Status:       entities.StatusUnresolved,
	}

	for _, provider := range p.providers {
		result, ok := p.attempt(ctx, provider, entry)
		if !ok {
			p.logger.Warn("run cancelled, abandoning in-flight entry",
				interfaces.F("name", entry.Name),
				interfaces.F("provider", provider.Name()))
			return nil
		}

		if result.Note != "" {
			record.Notes = append(record.Notes, provider.Name()+": "+result.Note)
		}
		if !result.Found {
			continue
		}

		record.URL = result.URL
		record.SignatureURL = result.SignatureURL
		record.Source = result.Source
		record.Verified = result.Verified
		if result.Verified {
			record.Status = entities.StatusResolved
		} else {
			record.Status = entities.StatusManual
		}

		p.logger.Info("entry resolved",
			interfaces.F("name", entry.Name),
			interfaces.F("status", record.Status),
			interfaces.F("source", record.Source))
		return &record
	}

	// Should not normally happen: the terminal provider always finds
	// something. Reachable only when the chain is assembled without it.
	p.logger.Warn("entry exhausted provider chain", interfaces.F("name", entry.Name))
	return &record
}

// attempt invokes one provider under the per-call timeout. A provider that
// overruns its deadline is abandoned and treated as unavailable; its
// goroutine drains into a buffered channel. The second return is false
// when the attempt was cut short by run cancellation rather than its own
// timeout; callers must not record anything for the entry in that case.
func (p *ResolutionPipeline) attempt(ctx context.Context, provider providers.Provider, entry entities.SoftwareEntry) (providers.Result, bool) {
	attemptCtx, cancel := context.WithTimeout(ctx, p.attemptTimeout)
	defer cancel()

	done := make(chan providers.Result, 1)
	go func() {
		done <- provider.Attempt(attemptCtx, entry, p.arch)
	}()

	select {
	case result := <-done:
		return result, true
	case <-attemptCtx.Done():
		if ctx.Err() != nil {
			return providers.Result{}, false
		}
		p.logger.Debug("provider timed out",
			interfaces.F("provider", provider.Name()),
			interfaces.F("name", entry.Name))
		return providers.Result{
			Note: fmt.Sprintf("%v: timed out after %s", providers.ErrProviderUnavailable, p.attemptTimeout),
		}, true
	}
}
