// Copyright 2026 Convodex Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reindex rebuilds the conversation-chunk index from the
// archived message set. Messages are the source of truth; chunks and
// index entries are discarded and recreated wholesale.
package reindex

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/convodex/convodex/chunker"
	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/index"
	"github.com/convodex/convodex/storage"
)

// chunkPacingInterval is how many chunk submissions happen between
// pacing delays. Coarser than the sync walker's per-batch pacing since
// chunks are far fewer than messages.
const chunkPacingInterval = 5

// Params controls one reindex run.
type Params struct {
	// Chunking sets the chunk boundary parameters.
	Chunking chunker.Config

	// DryRun reports chunk counts and previews without mutating the
	// index or the chunk records. Used for parameter tuning before a
	// destructive run.
	DryRun bool
}

// Driver executes reindex runs.
type Driver struct {
	messages storage.MessageRepository
	chunks   storage.ChunkRepository
	store    index.Store
	progress io.Writer
	delay    time.Duration
	logger   *slog.Logger
}

// Option configures a Driver.
type Option func(*Driver) error

// WithProgress sets the progress output writer. Default is io.Discard.
func WithProgress(w io.Writer) Option {
	return func(d *Driver) error {
		if w == nil {
			w = io.Discard
		}
		d.progress = w
		return nil
	}
}

// WithPacing sets the delay applied every few chunk submissions.
// Default is 1 second.
func WithPacing(delay time.Duration) Option {
	return func(d *Driver) error {
		if delay < 0 {
			return fmt.Errorf("pacing delay must not be negative, got %s", delay)
		}
		d.delay = delay
		return nil
	}
}

// WithLogger sets a custom logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// NewDriver creates a reindex driver.
func NewDriver(messages storage.MessageRepository, chunks storage.ChunkRepository, store index.Store, opts ...Option) (*Driver, error) {
	if messages == nil {
		return nil, fmt.Errorf("message repository is required")
	}
	if chunks == nil {
		return nil, fmt.Errorf("chunk repository is required")
	}
	if store == nil {
		return nil, fmt.Errorf("index store is required")
	}

	d := &Driver{
		messages: messages,
		chunks:   chunks,
		store:    store,
		progress: io.Discard,
		delay:    time.Second,
		logger:   slog.Default().With("component", "reindex-driver"),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Run rebuilds the chunk index.
//
// Unless dry-run, all index entries and chunk records are deleted first,
// then the full message set is re-chunked, rendered, and resubmitted.
// A failed chunk submission is counted and skipped; one bad chunk never
// aborts the rebuild.
func (d *Driver) Run(ctx context.Context, params Params) (core.ReindexReport, error) {
	var report core.ReindexReport

	if !params.DryRun {
		if err := d.store.Ensure(ctx); err != nil {
			return report, err
		}
		deletedRefs, err := d.store.DeleteAll(ctx)
		if err != nil {
			return report, fmt.Errorf("purge index: %w", err)
		}
		deletedChunks, err := d.chunks.DeleteAllChunks(ctx)
		if err != nil {
			return report, fmt.Errorf("purge chunk records: %w", err)
		}
		d.logger.Info("purged previous index state",
			"index_entries", deletedRefs,
			"chunk_records", deletedChunks)
	}

	messages, err := d.messages.AllMessages(ctx)
	if err != nil {
		return report, fmt.Errorf("load messages: %w", err)
	}
	report.Messages = len(messages)

	built := chunker.GroupMessages(messages, params.Chunking)
	report.Chunks = len(built)

	if params.DryRun {
		d.preview(built)
		return report, nil
	}

	byID := make(map[string]*core.Message, len(messages))
	for _, msg := range messages {
		byID[msg.Id] = msg
	}

	tracker := NewProgressTracker(d.progress, len(built), 10)
	tracker.Start()
	defer tracker.Finish()

	for i, chunk := range built {
		members := make([]*core.Message, 0, len(chunk.MessageIds))
		for _, id := range chunk.MessageIds {
			if msg, ok := byID[id]; ok {
				members = append(members, msg)
			}
		}

		rendered := core.RenderChunk(chunk, members)
		ref, err := d.store.Submit(ctx, chunk.DocName(), chunk.DocName(), rendered)
		if err != nil {
			if ctx.Err() != nil {
				return report, err
			}
			d.logger.Warn("chunk submission failed", "chunk", chunk.Id, "err", err)
			report.Errors++
			continue
		}

		chunk.IndexRef = ref
		chunk.IndexedAt = time.Now().UTC()
		if err := d.chunks.PutChunk(ctx, chunk); err != nil {
			d.logger.Warn("chunk record persist failed", "chunk", chunk.Id, "err", err)
			report.Errors++
			continue
		}

		report.Indexed++
		tracker.Update(i + 1)

		if (i+1)%chunkPacingInterval == 0 {
			if err := sleep(ctx, d.delay); err != nil {
				return report, err
			}
		}
	}

	return report, nil
}

// preview writes a dry-run summary of the first chunks that a real run
// would build.
func (d *Driver) preview(chunks []*core.ConversationChunk) {
	fmt.Fprintf(d.progress, "dry run: %d chunks would be built\n", len(chunks))

	limit := 10
	if len(chunks) < limit {
		limit = len(chunks)
	}
	for _, chunk := range chunks[:limit] {
		scope := "#" + chunk.ChannelName
		if chunk.ThreadName != "" {
			scope += " / " + chunk.ThreadName
		}
		fmt.Fprintf(d.progress, "  %s: %d messages, %s - %s, participants: %s\n",
			scope,
			len(chunk.MessageIds),
			chunk.StartTime.Format("2006-01-02 15:04"),
			chunk.EndTime.Format("2006-01-02 15:04"),
			strings.Join(chunk.Participants, ", "))
	}
}

// sleep waits for the pacing delay, honoring cancellation.
func sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
