package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/convodex/convodex"
	"github.com/convodex/convodex/core"
	indexmock "github.com/convodex/convodex/index/mock"
)

func TestPrintStatusFreshArchive(t *testing.T) {
	archive, err := convodex.OpenArchive("", convodex.WithInMemory(), convodex.WithIndexStore(indexmock.NewMockStore()))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer archive.Close()

	var out bytes.Buffer
	if err := printStatus(context.Background(), archive, &out); err != nil {
		t.Fatalf("printStatus failed on fresh archive: %v", err)
	}
	if !strings.Contains(out.String(), "No sync runs recorded") {
		t.Fatalf("Expected no-runs notice, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Synced channels: 0") {
		t.Fatalf("Expected empty channel listing, got:\n%s", out.String())
	}
}

func TestPrintStatusReportsLatestRun(t *testing.T) {
	archive, err := convodex.OpenArchive("", convodex.WithInMemory(), convodex.WithIndexStore(indexmock.NewMockStore()))
	if err != nil {
		t.Fatalf("Failed to open archive: %v", err)
	}
	defer archive.Close()

	ctx := context.Background()
	started := time.Now().UTC().Add(-time.Hour)
	run := &core.SyncStatus{
		Id:             "r1",
		Kind:           core.RunKindInitial,
		State:          core.RunStateCompleted,
		StartedAt:      started,
		CompletedAt:    started.Add(10 * time.Minute),
		ProcessedCount: 42,
		ErrorCount:     1,
		ErrorMessages:  []string{"walk general: boom"},
	}
	if err := archive.SyncRepository().CreateRun(ctx, run); err != nil {
		t.Fatalf("CreateRun failed: %v", err)
	}
	if err := archive.SyncRepository().MarkChannelSynced(ctx, "ch1", "general", started.Add(10*time.Minute)); err != nil {
		t.Fatalf("MarkChannelSynced failed: %v", err)
	}

	var out bytes.Buffer
	if err := printStatus(ctx, archive, &out); err != nil {
		t.Fatalf("printStatus failed: %v", err)
	}
	report := out.String()
	if !strings.Contains(report, "Latest run: r1 (initial, completed)") {
		t.Fatalf("Expected run summary, got:\n%s", report)
	}
	if !strings.Contains(report, "Processed: 42 messages, 1 errors") {
		t.Fatalf("Expected processed counts, got:\n%s", report)
	}
	if !strings.Contains(report, "walk general: boom") {
		t.Fatalf("Expected recorded error, got:\n%s", report)
	}
	if !strings.Contains(report, "general (ch1): 0 messages") {
		t.Fatalf("Expected synced channel line, got:\n%s", report)
	}
}
