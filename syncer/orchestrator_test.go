package syncer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/convodex/convodex/core"
	indexmock "github.com/convodex/convodex/index/mock"
	"github.com/convodex/convodex/source"
	sourcemock "github.com/convodex/convodex/source/mock"
	"github.com/convodex/convodex/storage"
	"github.com/convodex/convodex/storage/badger"
)

var syncBase = time.Date(2026, 5, 2, 12, 0, 0, 0, time.UTC)

func rawMsg(id, author string, ts time.Time) source.RawMessage {
	return source.RawMessage{
		Id:         id,
		AuthorId:   author,
		AuthorName: author,
		Body:       "content of " + id,
		Timestamp:  ts,
	}
}

// newTestOrchestrator wires an orchestrator over in-memory fixtures with
// pacing disabled.
func newTestOrchestrator(t *testing.T, src *sourcemock.MockSource, store *indexmock.MockStore) (*Orchestrator, *badger.Backend, func() (*core.SyncStatus, error)) {
	t.Helper()

	msgRepo, _, syncRepo, backend, err := badger.NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}

	orch, err := NewOrchestrator(src, msgRepo, syncRepo, store, WithDelay(0), WithBatchSize(100))
	if err != nil {
		backend.Close()
		t.Fatalf("Failed to create orchestrator: %v", err)
	}

	latest := func() (*core.SyncStatus, error) {
		return syncRepo.LatestRun(context.Background())
	}
	return orch, backend, latest
}

func TestRunFullSync(t *testing.T) {
	src := sourcemock.NewMockSource()
	src.AddChannel(source.Channel{Id: "ch1", Name: "general"})
	src.AddChannel(source.Channel{Id: "th1", Name: "incident", ParentId: "ch1", IsThread: true})
	for i := 0; i < 4; i++ {
		src.AddMessages("ch1", rawMsg(fmt.Sprintf("m%d", i), "alice", syncBase.Add(time.Duration(i)*time.Minute)))
	}
	src.AddMessages("th1", rawMsg("t0", "bob", syncBase.Add(time.Hour)))

	store := indexmock.NewMockStore()
	orch, backend, latest := newTestOrchestrator(t, src, store)
	defer backend.Close()

	summary, err := orch.Run(context.Background(), "g1", true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if summary.Processed != 5 || summary.New != 5 || summary.Errors != 0 {
		t.Fatalf("Unexpected summary: %+v", summary)
	}
	if len(summary.NewChannels) != 2 {
		t.Fatalf("Expected both scopes newly discovered, got %v", summary.NewChannels)
	}
	if store.SubmitCallCount() != 5 {
		t.Fatalf("Expected 5 index submissions, got %d", store.SubmitCallCount())
	}

	run, err := latest()
	if err != nil {
		t.Fatalf("LatestRun failed: %v", err)
	}
	if run.State != core.RunStateCompleted || run.Kind != core.RunKindInitial {
		t.Fatalf("Unexpected run record: %+v", run)
	}

	// Thread messages carry the parent channel's identity
	msg, err := orch.messages.GetMessage(context.Background(), "t0")
	if err != nil {
		t.Fatalf("GetMessage failed: %v", err)
	}
	if msg.ChannelId != "ch1" || msg.ChannelName != "general" || msg.ThreadId != "th1" || msg.ThreadName != "incident" {
		t.Fatalf("Thread identity wrong: %+v", msg)
	}
	if msg.IndexRef == "" {
		t.Fatal("Expected index reference on ingested message")
	}
}

func TestRunIdempotent(t *testing.T) {
	src := sourcemock.NewMockSource()
	src.AddChannel(source.Channel{Id: "ch1", Name: "general"})
	for i := 0; i < 6; i++ {
		src.AddMessages("ch1", rawMsg(fmt.Sprintf("m%d", i), "alice", syncBase.Add(time.Duration(i)*time.Minute)))
	}

	store := indexmock.NewMockStore()
	orch, backend, _ := newTestOrchestrator(t, src, store)
	defer backend.Close()

	ctx := context.Background()
	first, err := orch.Run(ctx, "g1", true)
	if err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	if first.New != 6 {
		t.Fatalf("Expected 6 new on first run, got %d", first.New)
	}

	// Second full run re-walks everything but ingests nothing
	second, err := orch.Run(ctx, "g1", true)
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if second.Processed != 6 || second.New != 0 {
		t.Fatalf("Expected idempotent re-walk, got %+v", second)
	}
	if store.SubmitCallCount() != 6 {
		t.Fatalf("Expected no extra submissions, got %d", store.SubmitCallCount())
	}
}

func TestRunIncrementalUsesWatermark(t *testing.T) {
	src := sourcemock.NewMockSource()
	src.AddChannel(source.Channel{Id: "ch1", Name: "general"})
	src.AddMessages("ch1", rawMsg("old", "alice", syncBase))

	store := indexmock.NewMockStore()
	orch, backend, _ := newTestOrchestrator(t, src, store)
	defer backend.Close()

	ctx := context.Background()
	if _, err := orch.Run(ctx, "g1", true); err != nil {
		t.Fatalf("Seed run failed: %v", err)
	}

	// A message older than the watermark but not yet archived must be
	// skipped by the incremental walk
	src.AddMessages("ch1", rawMsg("stale", "bob", syncBase.Add(time.Minute)))
	src.AddMessages("ch1", rawMsg("fresh", "bob", time.Now().UTC()))

	summary, err := orch.Run(ctx, "g1", false)
	if err != nil {
		t.Fatalf("Incremental run failed: %v", err)
	}
	if summary.New != 1 {
		t.Fatalf("Expected only the fresh message, got %+v", summary)
	}
	if len(summary.NewChannels) != 0 {
		t.Fatalf("Expected no newly discovered channels, got %v", summary.NewChannels)
	}
}

func TestRunFirstSeenChannelForcedFull(t *testing.T) {
	src := sourcemock.NewMockSource()
	src.AddChannel(source.Channel{Id: "ch1", Name: "general"})
	src.AddMessages("ch1", rawMsg("m0", "alice", syncBase))

	store := indexmock.NewMockStore()
	orch, backend, _ := newTestOrchestrator(t, src, store)
	defer backend.Close()

	ctx := context.Background()
	if _, err := orch.Run(ctx, "g1", true); err != nil {
		t.Fatalf("Seed run failed: %v", err)
	}

	// A channel appearing after the watermark advanced, with history
	// entirely below the watermark
	src.AddChannel(source.Channel{Id: "ch2", Name: "random"})
	src.AddMessages("ch2", rawMsg("r0", "carol", syncBase.Add(-time.Hour)))

	summary, err := orch.Run(ctx, "g1", false)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.New != 1 {
		t.Fatalf("Expected first-seen channel walked in full, got %+v", summary)
	}
	if len(summary.NewChannels) != 1 || summary.NewChannels[0] != "random" {
		t.Fatalf("Expected 'random' newly discovered, got %v", summary.NewChannels)
	}
}

func TestRunPartialFailureIsolation(t *testing.T) {
	src := sourcemock.NewMockSource()
	src.AddChannel(source.Channel{Id: "ch1", Name: "broken"})
	src.AddChannel(source.Channel{Id: "ch2", Name: "healthy"})

	src.HistoryFunc = func(ctx context.Context, channelID string, after *time.Time, fn func(source.RawMessage) error) error {
		if channelID == "ch1" {
			return errors.New("missing access")
		}
		return fn(rawMsg("h0", "alice", syncBase))
	}

	store := indexmock.NewMockStore()
	orch, backend, latest := newTestOrchestrator(t, src, store)
	defer backend.Close()

	ctx := context.Background()
	summary, err := orch.Run(ctx, "g1", true)
	if err != nil {
		t.Fatalf("Run should not fail on a per-channel fault: %v", err)
	}
	if summary.New != 1 || summary.Errors != 1 {
		t.Fatalf("Unexpected summary: %+v", summary)
	}

	run, err := latest()
	if err != nil {
		t.Fatalf("LatestRun failed: %v", err)
	}
	if run.State != core.RunStateCompleted {
		t.Fatalf("Expected completed-with-errors, got %v", run.State)
	}
	if run.ErrorCount != 1 {
		t.Fatalf("Expected 1 recorded error, got %d", run.ErrorCount)
	}

	// The failed channel is not marked synced; the healthy one is
	synced, err := orch.syncRepo.SyncedChannelIDs(ctx)
	if err != nil {
		t.Fatalf("SyncedChannelIDs failed: %v", err)
	}
	if synced["ch1"] {
		t.Fatal("Failed channel must not be marked synced")
	}
	if !synced["ch2"] {
		t.Fatal("Healthy channel must be marked synced")
	}
}

func TestRunScopeResolutionFailure(t *testing.T) {
	src := sourcemock.NewMockSource()
	src.ChannelsFunc = func(ctx context.Context, guildID string) ([]source.Channel, error) {
		return nil, errors.New("guild unavailable")
	}

	store := indexmock.NewMockStore()
	orch, backend, latest := newTestOrchestrator(t, src, store)
	defer backend.Close()

	_, err := orch.Run(context.Background(), "g1", true)
	if !errors.Is(err, ErrScopeResolution) {
		t.Fatalf("Expected ErrScopeResolution, got %v", err)
	}

	run, lerr := latest()
	if lerr != nil {
		t.Fatalf("LatestRun failed: %v", lerr)
	}
	if run.State != core.RunStateFailed {
		t.Fatalf("Expected failed run record, got %v", run.State)
	}
}

func TestRunIndexFailureLeavesRefUnset(t *testing.T) {
	src := sourcemock.NewMockSource()
	src.AddChannel(source.Channel{Id: "ch1", Name: "general"})
	src.AddMessages("ch1", rawMsg("m0", "alice", syncBase))

	store := indexmock.NewMockStore()
	store.SubmitFunc = func(ctx context.Context, docID, displayName, text string) (string, error) {
		return "", errors.New("index down")
	}

	orch, backend, _ := newTestOrchestrator(t, src, store)
	defer backend.Close()

	ctx := context.Background()
	summary, err := orch.Run(ctx, "g1", true)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if summary.New != 1 || summary.Errors != 1 {
		t.Fatalf("Unexpected summary: %+v", summary)
	}

	msg, err := orch.messages.GetMessage(ctx, "m0")
	if err != nil {
		t.Fatalf("Message must be persisted despite index failure: %v", err)
	}
	if msg.IndexRef != "" || !msg.IndexedAt.IsZero() {
		t.Fatalf("Expected unset index reference, got %+v", msg)
	}
}

// flakySyncRepo rejects run updates on demand while delegating
// everything else to a real repository.
type flakySyncRepo struct {
	storage.SyncRepository
	failUpdates bool
}

func (r *flakySyncRepo) UpdateRun(ctx context.Context, status *core.SyncStatus) error {
	if r.failUpdates {
		return errors.New("update rejected")
	}
	return r.SyncRepository.UpdateRun(ctx, status)
}

func TestRunFailureRecordingFaultDoesNotMaskCause(t *testing.T) {
	msgRepo, _, syncRepo, backend, err := badger.NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	src := sourcemock.NewMockSource()
	src.ChannelsFunc = func(ctx context.Context, guildID string) ([]source.Channel, error) {
		return nil, errors.New("guild unreachable")
	}

	flaky := &flakySyncRepo{SyncRepository: syncRepo, failUpdates: true}
	orch, err := NewOrchestrator(src, msgRepo, flaky, indexmock.NewMockStore(), WithDelay(0))
	if err != nil {
		t.Fatalf("Failed to create orchestrator: %v", err)
	}

	_, err = orch.Run(context.Background(), "g1", true)
	if !errors.Is(err, ErrScopeResolution) {
		t.Fatalf("Expected the scope fault to propagate, got %v", err)
	}
}
