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

package syncer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/index"
	"github.com/convodex/convodex/ocr"
	"github.com/convodex/convodex/source"
	"github.com/convodex/convodex/storage"
)

// WalkResult aggregates one channel walk's counts.
type WalkResult struct {
	Processed int
	New       int
	Errors    int
}

// ChannelWalker ingests one channel or thread's history from a cursor.
//
// Per message: skip if already archived (idempotence), OCR image
// attachments best-effort, submit to the index (failure leaves the
// reference unset), persist. A fault in any single message is counted
// and the walk continues with the next one; only cancellation aborts
// the walk. Every BatchSize processed messages the
// walker checkpoints and pauses — the pacing delay is the system's sole
// rate-limit defense and runs even when nothing fails.
type ChannelWalker struct {
	source    source.MessageSource
	messages  storage.MessageRepository
	store     index.Store
	tracker   *StateTracker
	extractor ocr.Extractor
	fetcher   *ocr.Fetcher
	batchSize int
	delay     time.Duration
	logger    *slog.Logger
}

// WalkerOption configures a ChannelWalker.
type WalkerOption func(*ChannelWalker) error

// WithBatchSize sets the checkpoint/pacing interval in messages.
// Default is 100.
func WithBatchSize(size int) WalkerOption {
	return func(w *ChannelWalker) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		w.batchSize = size
		return nil
	}
}

// WithDelay sets the pacing delay. Default is 1 second.
func WithDelay(delay time.Duration) WalkerOption {
	return func(w *ChannelWalker) error {
		if delay < 0 {
			return fmt.Errorf("delay must not be negative, got %s", delay)
		}
		w.delay = delay
		return nil
	}
}

// WithOCR sets the attachment text extractor and fetcher. Without them,
// attachments are archived with metadata only.
func WithOCR(extractor ocr.Extractor, fetcher *ocr.Fetcher) WalkerOption {
	return func(w *ChannelWalker) error {
		w.extractor = extractor
		w.fetcher = fetcher
		return nil
	}
}

// WithWalkerLogger sets a custom logger. Default is slog.Default().
func WithWalkerLogger(logger *slog.Logger) WalkerOption {
	return func(w *ChannelWalker) error {
		if logger == nil {
			logger = slog.Default()
		}
		w.logger = logger
		return nil
	}
}

// NewChannelWalker creates a walker over the given collaborators.
func NewChannelWalker(
	src source.MessageSource,
	messages storage.MessageRepository,
	store index.Store,
	tracker *StateTracker,
	opts ...WalkerOption,
) (*ChannelWalker, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}
	if messages == nil {
		return nil, ErrMessageRepositoryRequired
	}
	if store == nil {
		return nil, ErrIndexStoreRequired
	}

	w := &ChannelWalker{
		source:    src,
		messages:  messages,
		store:     store,
		tracker:   tracker,
		batchSize: 100,
		delay:     time.Second,
		logger:    slog.Default().With("component", "channel-walker"),
	}
	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Walk ingests ch's history after the given cursor. parentName is the
// display name of a thread's parent channel; it is ignored for plain
// channels.
func (w *ChannelWalker) Walk(ctx context.Context, ch source.Channel, parentName string, after *time.Time) (WalkResult, error) {
	var result WalkResult

	err := w.source.History(ctx, ch.Id, after, func(raw source.RawMessage) error {
		result.Processed++

		if err := w.processMessage(ctx, ch, parentName, raw, &result); err != nil {
			// Faults are contained to the one message; only
			// cancellation aborts the walk.
			if ctx.Err() != nil {
				return err
			}
			w.logger.Warn("message ingestion failed", "message", raw.Id, "err", err)
			result.Errors++
		}

		if result.Processed%w.batchSize == 0 {
			if w.tracker != nil {
				if err := w.tracker.Checkpoint(ctx, ch.Id, raw.Id, result.Processed); err != nil {
					return err
				}
			}
			w.logger.Debug("checkpoint",
				"channel", ch.Name,
				"last_message", raw.Id,
				"processed", result.Processed)
			if err := pause(ctx, w.delay); err != nil {
				return err
			}
		}
		return nil
	})

	return result, err
}

// processMessage archives one message if it is not already present.
func (w *ChannelWalker) processMessage(ctx context.Context, ch source.Channel, parentName string, raw source.RawMessage, result *WalkResult) error {
	exists, err := w.messages.MessageExists(ctx, raw.Id)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := w.ingest(ctx, ch, parentName, raw, result); err != nil {
		return err
	}
	result.New++
	return nil
}

// ingest assembles and persists one new message.
func (w *ChannelWalker) ingest(ctx context.Context, ch source.Channel, parentName string, raw source.RawMessage, result *WalkResult) error {
	msg := &core.Message{
		Id:         raw.Id,
		AuthorId:   raw.AuthorId,
		AuthorName: raw.AuthorName,
		Body:       raw.Body,
		Timestamp:  raw.Timestamp,
		JumpURL:    raw.JumpURL,
	}
	if ch.IsThread {
		msg.ChannelId = ch.ParentId
		msg.ChannelName = parentName
		msg.ThreadId = ch.Id
		msg.ThreadName = ch.Name
	} else {
		msg.ChannelId = ch.Id
		msg.ChannelName = ch.Name
	}

	for _, att := range raw.Attachments {
		msg.Attachments = append(msg.Attachments, core.Attachment{
			Filename:      att.Filename,
			MediaType:     att.MediaType,
			SourceURL:     att.SourceURL,
			ExtractedText: w.extractAttachmentText(ctx, att),
		})
	}

	ref, err := w.store.Submit(ctx, msg.DocName(), msg.DocName(), msg.IndexText())
	if err != nil {
		// The message is archived regardless; reindex repairs the gap.
		w.logger.Warn("index submission failed", "message", raw.Id, "err", err)
		result.Errors++
	} else {
		msg.IndexRef = ref
		msg.IndexedAt = time.Now().UTC()
	}

	return w.messages.PutMessage(ctx, msg)
}

// extractAttachmentText runs best-effort OCR on an image attachment.
// Failures are logged and yield empty text; they never abort ingestion.
func (w *ChannelWalker) extractAttachmentText(ctx context.Context, att source.RawAttachment) string {
	if w.extractor == nil || w.fetcher == nil || !ocr.IsImage(att.MediaType) {
		return ""
	}

	data, err := w.fetcher.Fetch(ctx, att.SourceURL)
	if err != nil {
		w.logger.Warn("attachment fetch failed", "filename", att.Filename, "err", err)
		return ""
	}

	text, err := w.extractor.ExtractText(ctx, data, att.Filename)
	if err != nil {
		w.logger.Warn("attachment text extraction failed", "filename", att.Filename, "err", err)
		return ""
	}
	return text
}

// pause sleeps for the pacing delay, honoring cancellation.
func pause(ctx context.Context, delay time.Duration) error {
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
