package badger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/storage"
)

func newTestMessage(id, channelID string, ts time.Time) *core.Message {
	return &core.Message{
		Id:          id,
		ChannelId:   channelID,
		ChannelName: "general",
		AuthorId:    "author-1",
		AuthorName:  "alice",
		Body:        "hello from " + id,
		Timestamp:   ts,
	}
}

func TestMessageRoundTrip(t *testing.T) {
	msgRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	msg := newTestMessage("m1", "ch1", now)
	msg.Attachments = []core.Attachment{
		{Filename: "shot.png", MediaType: "image/png", SourceURL: "https://cdn.example/shot.png", ExtractedText: "a whiteboard"},
	}

	if err := msgRepo.PutMessage(ctx, msg); err != nil {
		t.Fatalf("Failed to put message: %v", err)
	}
	if msg.InsertedAt.IsZero() {
		t.Fatal("Expected InsertedAt to be set")
	}

	retrieved, err := msgRepo.GetMessage(ctx, "m1")
	if err != nil {
		t.Fatalf("Failed to get message: %v", err)
	}
	if retrieved.Body != msg.Body {
		t.Fatalf("Expected body %q, got %q", msg.Body, retrieved.Body)
	}
	if !retrieved.Timestamp.Equal(now) {
		t.Fatalf("Expected timestamp %v, got %v", now, retrieved.Timestamp)
	}
	if len(retrieved.Attachments) != 1 || retrieved.Attachments[0].ExtractedText != "a whiteboard" {
		t.Fatalf("Attachment did not survive round trip: %+v", retrieved.Attachments)
	}
}

func TestMessageNotFound(t *testing.T) {
	msgRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	_, err = msgRepo.GetMessage(context.Background(), "absent")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestMessageExists(t *testing.T) {
	msgRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()

	exists, err := msgRepo.MessageExists(ctx, "m1")
	if err != nil {
		t.Fatalf("MessageExists failed: %v", err)
	}
	if exists {
		t.Fatal("Expected message to not exist yet")
	}

	if err := msgRepo.PutMessage(ctx, newTestMessage("m1", "ch1", time.Now().UTC())); err != nil {
		t.Fatalf("Failed to put message: %v", err)
	}

	exists, err = msgRepo.MessageExists(ctx, "m1")
	if err != nil {
		t.Fatalf("MessageExists failed: %v", err)
	}
	if !exists {
		t.Fatal("Expected message to exist after put")
	}
}

func TestGetMessagesSkipsMissing(t *testing.T) {
	msgRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []string{"m1", "m2"} {
		if err := msgRepo.PutMessage(ctx, newTestMessage(id, "ch1", now)); err != nil {
			t.Fatalf("Failed to put message %s: %v", id, err)
		}
	}

	results, err := msgRepo.GetMessages(ctx, "m1", "missing", "m2")
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(results))
	}
}

func TestAllMessagesOrderedByTimestamp(t *testing.T) {
	msgRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	// Insert out of chronological order
	offsets := []time.Duration{2 * time.Hour, 0, 1 * time.Hour}
	for i, off := range offsets {
		id := fmt.Sprintf("m%d", i)
		if err := msgRepo.PutMessage(ctx, newTestMessage(id, "ch1", now.Add(-off))); err != nil {
			t.Fatalf("Failed to put message %s: %v", id, err)
		}
	}

	results, err := msgRepo.AllMessages(ctx)
	if err != nil {
		t.Fatalf("AllMessages failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Timestamp.Before(results[i-1].Timestamp) {
			t.Fatalf("Messages out of order at index %d: %v before %v",
				i, results[i].Timestamp, results[i-1].Timestamp)
		}
	}
}

func TestCountMessagesByChannel(t *testing.T) {
	msgRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Hour)

	for i := 0; i < 3; i++ {
		if err := msgRepo.PutMessage(ctx, newTestMessage(fmt.Sprintf("a%d", i), "ch1", base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Failed to put message: %v", err)
		}
	}
	if err := msgRepo.PutMessage(ctx, newTestMessage("b0", "ch2", base)); err != nil {
		t.Fatalf("Failed to put message: %v", err)
	}

	counts, err := msgRepo.CountMessagesByChannel(ctx)
	if err != nil {
		t.Fatalf("CountMessagesByChannel failed: %v", err)
	}
	if counts["ch1"] != 3 || counts["ch2"] != 1 {
		t.Fatalf("Unexpected counts: %v", counts)
	}
}

func TestPutMessageValidation(t *testing.T) {
	msgRepo, _, _, backend, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer backend.Close()

	msg := newTestMessage("", "ch1", time.Now().UTC())
	if err := msgRepo.PutMessage(context.Background(), msg); !errors.Is(err, core.ErrEmptyID) {
		t.Fatalf("Expected ErrEmptyID, got %v", err)
	}
}
