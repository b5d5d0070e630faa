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
	"github.com/convodex/convodex/source"
	"github.com/convodex/convodex/storage"
)

// Pacing multipliers applied to the walker's base delay between scopes.
// Channels pause longest since channel switches hit fresh rate-limit
// buckets; threads are lighter.
const (
	channelPacingFactor = 5
	threadPacingFactor  = 2
)

// Orchestrator drives the channel walker across every channel and thread
// of a guild, one at a time.
type Orchestrator struct {
	source   source.MessageSource
	messages storage.MessageRepository
	syncRepo storage.SyncRepository
	store    index.Store
	walker   *ChannelWalker
	delay    time.Duration
	logger   *slog.Logger
}

// NewOrchestrator creates an orchestrator. The walker options also set
// the orchestrator's base pacing delay.
func NewOrchestrator(
	src source.MessageSource,
	messages storage.MessageRepository,
	syncRepo storage.SyncRepository,
	store index.Store,
	opts ...WalkerOption,
) (*Orchestrator, error) {
	if syncRepo == nil {
		return nil, ErrSyncRepositoryRequired
	}

	tracker, err := NewStateTracker(syncRepo)
	if err != nil {
		return nil, err
	}

	walker, err := NewChannelWalker(src, messages, store, tracker, opts...)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		source:   src,
		messages: messages,
		syncRepo: syncRepo,
		store:    store,
		walker:   walker,
		delay:    walker.delay,
		logger:   slog.Default().With("component", "sync-orchestrator"),
	}, nil
}

// Run walks every channel and thread of the guild.
//
// full forces a complete history walk; otherwise channels that have been
// synced before are walked incrementally from the global watermark.
// Channels never seen before are always walked in full. Per-channel
// faults are counted and skipped; only scope-level faults fail the run
// and propagate.
func (o *Orchestrator) Run(ctx context.Context, guildID string, full bool) (core.SyncSummary, error) {
	var summary core.SyncSummary

	kind := core.RunKindIncremental
	if full {
		kind = core.RunKindInitial
	}

	tracker := o.walker.tracker
	if err := tracker.Begin(ctx, kind); err != nil {
		return summary, err
	}

	var watermark *time.Time
	if !full {
		wm, err := o.syncRepo.Watermark(ctx)
		if err != nil {
			o.failRun(ctx, tracker, err)
			return summary, err
		}
		if !wm.IsZero() {
			watermark = &wm
		}
	}

	if err := o.store.Ensure(ctx); err != nil {
		o.failRun(ctx, tracker, err)
		return summary, err
	}

	channels, err := o.source.Channels(ctx, guildID)
	if err != nil {
		wrapped := fmt.Errorf("%w: %w", ErrScopeResolution, err)
		o.failRun(ctx, tracker, wrapped)
		return summary, wrapped
	}

	synced, err := o.syncRepo.SyncedChannelIDs(ctx)
	if err != nil {
		o.failRun(ctx, tracker, err)
		return summary, err
	}

	parentNames := make(map[string]string)
	for _, ch := range channels {
		if !ch.IsThread {
			parentNames[ch.Id] = ch.Name
		}
	}

	for _, ch := range channels {
		after := watermark
		if !synced[ch.Id] {
			// No baseline: the watermark would skip this channel's
			// entire history, so walk it in full.
			after = nil
			summary.NewChannels = append(summary.NewChannels, ch.Name)
		}

		result, walkErr := o.walker.Walk(ctx, ch, parentNames[ch.ParentId], after)
		summary.Processed += result.Processed
		summary.New += result.New
		summary.Errors += result.Errors

		if walkErr != nil {
			if ctx.Err() != nil {
				o.failRun(ctx, tracker, walkErr)
				return summary, walkErr
			}
			summary.Errors++
			o.logger.Warn("channel walk failed", "channel", ch.Name, "err", walkErr)
			if recErr := tracker.RecordError(ctx, fmt.Sprintf("walk %s: %v", ch.Name, walkErr)); recErr != nil {
				o.logger.Warn("failed to record walk error", "channel", ch.Name, "err", recErr)
			}
			continue
		}

		if err := o.syncRepo.MarkChannelSynced(ctx, ch.Id, ch.Name, time.Now().UTC()); err != nil {
			o.failRun(ctx, tracker, err)
			return summary, err
		}

		o.logger.Info("channel synced",
			"channel", ch.Name,
			"thread", ch.IsThread,
			"processed", result.Processed,
			"new", result.New)

		factor := channelPacingFactor
		if ch.IsThread {
			factor = threadPacingFactor
		}
		if err := pause(ctx, o.delay*time.Duration(factor)); err != nil {
			o.failRun(ctx, tracker, err)
			return summary, err
		}
	}

	if err := o.syncRepo.SetWatermark(ctx, time.Now().UTC()); err != nil {
		o.failRun(ctx, tracker, err)
		return summary, err
	}

	if err := tracker.Complete(ctx, summary.Processed); err != nil {
		return summary, err
	}
	return summary, nil
}

// failRun marks the run failed. A fault while recording the failure is
// logged so it never masks the original cause.
func (o *Orchestrator) failRun(ctx context.Context, tracker *StateTracker, cause error) {
	if err := tracker.Fail(ctx, cause); err != nil {
		o.logger.Error("failed to record run failure", "err", err)
	}
}
