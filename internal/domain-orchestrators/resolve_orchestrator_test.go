package orchestrators

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rewintool/rewin/internal/domain-adapters/providers"
	"github.com/rewintool/rewin/internal/domain/entities"
	"github.com/rewintool/rewin/internal/domain/services"
)

// scriptedProvider returns a fixed result and counts invocations
type scriptedProvider struct {
	name   string
	result providers.Result
	delay  time.Duration
	calls  atomic.Int64
}

func (s *scriptedProvider) Name() string { return s.name }

func (s *scriptedProvider) Attempt(_ context.Context, _ entities.SoftwareEntry, _ entities.Architecture) providers.Result {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.result
}

func defaultChain() []providers.Provider {
	return []providers.Provider{
		providers.NewStaticMapProvider(services.NewMappingTable(services.DefaultMappingRules()...)),
		providers.NewVendorPageProvider(services.NewVendorTable(services.DefaultVendorPages()...)),
	}
}

func TestResolveStaticHit(t *testing.T) {
	pipeline := NewResolutionPipeline(defaultChain(), entities.ArchX64, ResolutionPipelineConfig{}, nil)

	records := pipeline.Resolve(context.Background(), []entities.SoftwareEntry{
		{Name: "Google Chrome", Version: "120.0", Publisher: "Google LLC"},
	})

	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r := records[0]
	if r.Status != entities.StatusResolved {
		t.Errorf("Status = %q, want Resolved", r.Status)
	}
	if r.URL != "winget://install/Google.Chrome" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Source != entities.SourceStaticMap {
		t.Errorf("Source = %q", r.Source)
	}
	if !r.Verified {
		t.Error("static hit must be verified")
	}
	if r.SoftwareName != "Google Chrome" || r.Version != "120.0" || r.Publisher != "Google LLC" {
		t.Errorf("record identity fields = %+v", r)
	}
	if r.Architecture != "x64" {
		t.Errorf("Architecture = %q", r.Architecture)
	}
}

func TestResolveFallsThroughToSearchLink(t *testing.T) {
	pipeline := NewResolutionPipeline(defaultChain(), entities.ArchX64, ResolutionPipelineConfig{}, nil)

	records := pipeline.Resolve(context.Background(), []entities.SoftwareEntry{
		{Name: "Obscure Tool", Publisher: "Obscure Vendor"},
	})

	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r := records[0]
	if r.Status != entities.StatusManual {
		t.Errorf("Status = %q, want Manual", r.Status)
	}
	if r.Source != entities.SourceSearchEngine {
		t.Errorf("Source = %q", r.Source)
	}
	if !strings.HasPrefix(r.URL, "https://www.google.com/search?q=") {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Verified {
		t.Error("search links are unverified")
	}
	// The static miss left a diagnostic note before fallthrough.
	if len(r.Notes) == 0 || !strings.HasPrefix(r.Notes[0], "static-map: ") {
		t.Errorf("Notes = %v", r.Notes)
	}
}

func TestResolveShortCircuits(t *testing.T) {
	first := &scriptedProvider{name: "first", result: providers.Result{
		Found: true, URL: "https://example.com/a.exe", Source: entities.SourceGitHubRelease, Verified: true,
	}}
	second := &scriptedProvider{name: "second"}

	pipeline := NewResolutionPipeline([]providers.Provider{first, second}, entities.ArchX64, ResolutionPipelineConfig{}, nil)
	records := pipeline.Resolve(context.Background(), []entities.SoftwareEntry{{Name: "Anything"}})

	if len(records) != 1 || records[0].Status != entities.StatusResolved {
		t.Fatalf("records = %+v", records)
	}
	if second.calls.Load() != 0 {
		t.Error("later providers must not run after a hit")
	}
}

func TestResolveUnresolvedWhenChainExhausted(t *testing.T) {
	// A chain assembled without the terminal provider can come back empty.
	failing := &scriptedProvider{name: "failing", result: providers.Result{Note: "nothing found"}}

	pipeline := NewResolutionPipeline([]providers.Provider{failing}, entities.ArchX64, ResolutionPipelineConfig{}, nil)
	records := pipeline.Resolve(context.Background(), []entities.SoftwareEntry{{Name: "Anything"}})

	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r := records[0]
	if r.Status != entities.StatusUnresolved {
		t.Errorf("Status = %q, want Unresolved", r.Status)
	}
	if r.URL != "" {
		t.Errorf("URL = %q, want empty", r.URL)
	}
	if len(r.Notes) != 1 || r.Notes[0] != "failing: nothing found" {
		t.Errorf("Notes = %v", r.Notes)
	}
}

func TestResolvePreservesInputOrder(t *testing.T) {
	entries := []entities.SoftwareEntry{
		{Name: "Google Chrome", Publisher: "Google LLC"},
		{Name: "Obscure Tool", Publisher: "Obscure Vendor"},
		{Name: "Mozilla Firefox", Publisher: "Mozilla"},
		{Name: "7-Zip", Publisher: "Igor Pavlov"},
	}

	pipeline := NewResolutionPipeline(defaultChain(), entities.ArchX64, ResolutionPipelineConfig{Jobs: 4}, nil)
	records := pipeline.Resolve(context.Background(), entries)

	if len(records) != len(entries) {
		t.Fatalf("records = %d, want %d", len(records), len(entries))
	}
	for i, r := range records {
		if r.SoftwareName != entries[i].Name {
			t.Errorf("records[%d] = %q, want %q", i, r.SoftwareName, entries[i].Name)
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	entries := []entities.SoftwareEntry{
		{Name: "Google Chrome", Publisher: "Google LLC"},
		{Name: "Obscure Tool", Publisher: "Obscure Vendor"},
	}

	pipeline := NewResolutionPipeline(defaultChain(), entities.ArchX64, ResolutionPipelineConfig{Jobs: 2}, nil)
	first := pipeline.Resolve(context.Background(), entries)
	second := pipeline.Resolve(context.Background(), entries)

	if len(first) != len(second) {
		t.Fatalf("run lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Status != second[i].Status || first[i].URL != second[i].URL {
			t.Errorf("records[%d] differ between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestResolveDuplicateEntries(t *testing.T) {
	entries := []entities.SoftwareEntry{
		{Name: "Google Chrome", Publisher: "Google LLC"},
		{Name: "Google Chrome", Publisher: "Google LLC"},
	}

	pipeline := NewResolutionPipeline(defaultChain(), entities.ArchX64, ResolutionPipelineConfig{}, nil)
	records := pipeline.Resolve(context.Background(), entries)

	if len(records) != 2 {
		t.Fatalf("records = %d, want 2 (duplicates are independent)", len(records))
	}
	if records[0].URL != records[1].URL {
		t.Error("identical entries must resolve identically")
	}
}

func TestResolveAttemptTimeout(t *testing.T) {
	slow := &scriptedProvider{
		name:  "slow",
		delay: 200 * time.Millisecond,
		result: providers.Result{
			Found: true, URL: "https://example.com/late.exe", Verified: true,
		},
	}
	terminal := &scriptedProvider{name: "terminal", result: providers.Result{
		Found: true, URL: "https://vendor.example.com", Source: entities.SourceVendor,
	}}

	pipeline := NewResolutionPipeline(
		[]providers.Provider{slow, terminal},
		entities.ArchX64,
		ResolutionPipelineConfig{AttemptTimeout: 20 * time.Millisecond},
		nil,
	)
	records := pipeline.Resolve(context.Background(), []entities.SoftwareEntry{{Name: "Anything"}})

	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	r := records[0]
	// The slow provider was abandoned; the chain advanced to the terminal.
	if r.URL != "https://vendor.example.com" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.Status != entities.StatusManual {
		t.Errorf("Status = %q, want Manual", r.Status)
	}
	found := false
	for _, note := range r.Notes {
		if strings.Contains(note, "slow: ") && strings.Contains(note, "timed out") {
			found = true
		}
	}
	if !found {
		t.Errorf("missing timeout note in %v", r.Notes)
	}
}

func TestResolveCancellationAbandonsInFlightEntry(t *testing.T) {
	// An entry cut short by run cancellation is dropped, never emitted as
	// Unresolved: that status means the chain genuinely came back empty,
	// and here the terminal provider is present and instant.
	slowMiss := &scriptedProvider{
		name:   "slow-miss",
		delay:  60 * time.Millisecond,
		result: providers.Result{Note: "no match"},
	}
	chain := []providers.Provider{
		slowMiss,
		providers.NewVendorPageProvider(services.NewVendorTable(services.DefaultVendorPages()...)),
	}

	entries := make([]entities.SoftwareEntry, 8)
	for i := range entries {
		entries[i] = entities.SoftwareEntry{Name: "Obscure Tool", Publisher: "Obscure Vendor"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	pipeline := NewResolutionPipeline(chain, entities.ArchX64, ResolutionPipelineConfig{AttemptTimeout: 10 * time.Second}, nil)
	records := pipeline.Resolve(ctx, entries)

	if len(records) == len(entries) {
		t.Error("cancellation must stop new entries from starting")
	}
	for i, r := range records {
		if r.Status == entities.StatusUnresolved {
			t.Errorf("records[%d] emitted as Unresolved after cancellation: %+v", i, r)
		}
		for _, note := range r.Notes {
			if strings.Contains(note, "timed out") {
				t.Errorf("records[%d] carries a timeout note for a cancelled run: %q", i, note)
			}
		}
	}
}

func TestResolveCancellation(t *testing.T) {
	slow := &scriptedProvider{
		name:  "slow-terminal",
		delay: 50 * time.Millisecond,
		result: providers.Result{
			Found: true, URL: "https://vendor.example.com", Source: entities.SourceVendor,
		},
	}

	entries := make([]entities.SoftwareEntry, 20)
	for i := range entries {
		entries[i] = entities.SoftwareEntry{Name: "Anything"}
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(75 * time.Millisecond)
		cancel()
	}()

	pipeline := NewResolutionPipeline([]providers.Provider{slow}, entities.ArchX64, ResolutionPipelineConfig{}, nil)
	records := pipeline.Resolve(ctx, entries)

	if len(records) == 0 {
		t.Error("entries completed before cancellation must be returned")
	}
	if len(records) == len(entries) {
		t.Error("cancellation must stop new entries from starting")
	}
}
