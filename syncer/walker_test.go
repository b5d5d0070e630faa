package syncer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/convodex/convodex/core"
	indexmock "github.com/convodex/convodex/index/mock"
	"github.com/convodex/convodex/ocr"
	"github.com/convodex/convodex/source"
	sourcemock "github.com/convodex/convodex/source/mock"
	"github.com/convodex/convodex/storage/badger"
)

func TestWalkCheckpointsEveryBatch(t *testing.T) {
	msgRepo, _, syncRepo, backend, err := badger.NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	src := sourcemock.NewMockSource()
	for i := 0; i < 25; i++ {
		src.AddMessages("ch1", rawMsg(fmt.Sprintf("m%02d", i), "alice", syncBase.Add(time.Duration(i)*time.Minute)))
	}

	tracker, err := NewStateTracker(syncRepo)
	if err != nil {
		t.Fatalf("Failed to create tracker: %v", err)
	}
	if err := tracker.Begin(ctx, core.RunKindInitial); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	walker, err := NewChannelWalker(src, msgRepo, indexmock.NewMockStore(), tracker, WithBatchSize(10), WithDelay(0))
	if err != nil {
		t.Fatalf("Failed to create walker: %v", err)
	}

	result, err := walker.Walk(ctx, source.Channel{Id: "ch1", Name: "general"}, "", nil)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if result.Processed != 25 || result.New != 25 {
		t.Fatalf("Unexpected result: %+v", result)
	}

	// Last checkpoint lands on the 20th message
	status := tracker.Status()
	if status.CheckpointChannelId != "ch1" || status.CheckpointMessageId != "m19" {
		t.Fatalf("Unexpected checkpoint: %+v", status)
	}
	if status.ProcessedCount != 20 {
		t.Fatalf("Expected checkpointed count 20, got %d", status.ProcessedCount)
	}
}

func TestWalkOCRBestEffort(t *testing.T) {
	msgRepo, _, _, backend, err := badger.NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fake image bytes"))
	}))
	defer server.Close()

	msg := rawMsg("m0", "alice", syncBase)
	msg.Attachments = []source.RawAttachment{
		{Filename: "board.png", MediaType: "image/png", SourceURL: server.URL + "/board.png"},
		{Filename: "broken.png", MediaType: "image/png", SourceURL: server.URL + "/broken.png"},
		{Filename: "doc.pdf", MediaType: "application/pdf", SourceURL: server.URL + "/doc.pdf"},
	}

	src := sourcemock.NewMockSource()
	src.AddMessages("ch1", msg)

	calls := 0
	extractor := &extractorFunc{fn: func(ctx context.Context, image []byte, filename string) (string, error) {
		calls++
		if filename == "broken.png" {
			return "", errors.New("model unavailable")
		}
		return "whiteboard text", nil
	}}

	walker, err := NewChannelWalker(src, msgRepo, indexmock.NewMockStore(), nil,
		WithDelay(0), WithOCR(extractor, ocr.NewFetcher()))
	if err != nil {
		t.Fatalf("Failed to create walker: %v", err)
	}

	result, err := walker.Walk(ctx, source.Channel{Id: "ch1", Name: "general"}, "", nil)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if result.New != 1 || result.Errors != 0 {
		t.Fatalf("OCR failures must not count as walk errors: %+v", result)
	}
	// PDF skipped by the media-type whitelist
	if calls != 2 {
		t.Fatalf("Expected 2 extraction calls, got %d", calls)
	}

	stored, err := msgRepo.GetMessage(ctx, "m0")
	if err != nil {
		t.Fatalf("GetMessage failed: %v", err)
	}
	if stored.Attachments[0].ExtractedText != "whiteboard text" {
		t.Fatalf("Expected extracted text on first attachment, got %q", stored.Attachments[0].ExtractedText)
	}
	if stored.Attachments[1].ExtractedText != "" || stored.Attachments[2].ExtractedText != "" {
		t.Fatalf("Expected empty text on failed/skipped attachments: %+v", stored.Attachments)
	}
}

type extractorFunc struct {
	fn func(ctx context.Context, image []byte, filename string) (string, error)
}

func (e *extractorFunc) ExtractText(ctx context.Context, image []byte, filename string) (string, error) {
	return e.fn(ctx, image, filename)
}

func TestWalkIsolatesPerMessageFaults(t *testing.T) {
	msgRepo, _, _, backend, err := badger.NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	// The middle message has no timestamp and fails persistence
	// validation; its siblings must still be archived.
	src := sourcemock.NewMockSource()
	src.AddMessages("ch1",
		rawMsg("good1", "alice", syncBase),
		source.RawMessage{Id: "bad", AuthorId: "a2", AuthorName: "bob", Body: "lost clock"},
		rawMsg("good2", "carol", syncBase.Add(2*time.Minute)),
	)

	walker, err := NewChannelWalker(src, msgRepo, indexmock.NewMockStore(), nil, WithDelay(0))
	if err != nil {
		t.Fatalf("Failed to create walker: %v", err)
	}

	result, err := walker.Walk(ctx, source.Channel{Id: "ch1", Name: "general"}, "", nil)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if result.Processed != 3 || result.New != 2 || result.Errors != 1 {
		t.Fatalf("Unexpected result: %+v", result)
	}

	for _, id := range []string{"good1", "good2"} {
		exists, err := msgRepo.MessageExists(ctx, id)
		if err != nil {
			t.Fatalf("MessageExists failed: %v", err)
		}
		if !exists {
			t.Fatalf("Expected message %s to be archived", id)
		}
	}
	exists, err := msgRepo.MessageExists(ctx, "bad")
	if err != nil {
		t.Fatalf("MessageExists failed: %v", err)
	}
	if exists {
		t.Fatalf("Expected invalid message to be skipped")
	}
}

func TestWalkToleratesClockSkew(t *testing.T) {
	msgRepo, _, _, backend, err := badger.NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	// Freshly posted messages can carry timestamps slightly ahead of
	// the local clock.
	src := sourcemock.NewMockSource()
	src.AddMessages("ch1", rawMsg("ahead", "alice", time.Now().UTC().Add(time.Minute)))

	walker, err := NewChannelWalker(src, msgRepo, indexmock.NewMockStore(), nil, WithDelay(0))
	if err != nil {
		t.Fatalf("Failed to create walker: %v", err)
	}

	result, err := walker.Walk(ctx, source.Channel{Id: "ch1", Name: "general"}, "", nil)
	if err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	if result.New != 1 || result.Errors != 0 {
		t.Fatalf("Unexpected result: %+v", result)
	}
}
