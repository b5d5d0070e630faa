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
	"log/slog"
	"time"

	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/storage"
	"github.com/google/uuid"
)

// StateTracker records a sync run's lifecycle and progress checkpoints.
// Checkpoints are advisory: a crash between checkpoints re-walks from the
// last committed one, and the message layer's skip-if-exists dedup makes
// the re-walk harmless.
type StateTracker struct {
	repo   storage.SyncRepository
	status *core.SyncStatus
	logger *slog.Logger
}

// NewStateTracker creates a tracker over the given sync repository.
func NewStateTracker(repo storage.SyncRepository) (*StateTracker, error) {
	if repo == nil {
		return nil, ErrSyncRepositoryRequired
	}
	return &StateTracker{
		repo:   repo,
		logger: slog.Default().With("component", "sync-tracker"),
	}, nil
}

// Begin creates a new run record in the in_progress state.
func (t *StateTracker) Begin(ctx context.Context, kind core.RunKind) error {
	status := &core.SyncStatus{
		Id:        uuid.NewString(),
		Kind:      kind,
		State:     core.RunStateInProgress,
		StartedAt: time.Now().UTC(),
	}
	if err := t.repo.CreateRun(ctx, status); err != nil {
		return err
	}
	t.status = status
	t.logger.Info("sync run started", "run_id", status.Id, "kind", kind)
	return nil
}

// Checkpoint commits the current cursor and processed count.
func (t *StateTracker) Checkpoint(ctx context.Context, channelID, messageID string, processed int) error {
	if t.status == nil {
		return ErrRunNotStarted
	}
	t.status.CheckpointChannelId = channelID
	t.status.CheckpointMessageId = messageID
	t.status.ProcessedCount = processed
	return t.repo.UpdateRun(ctx, t.status)
}

// RecordError appends a warning-level error to the run without changing
// its state.
func (t *StateTracker) RecordError(ctx context.Context, msg string) error {
	if t.status == nil {
		return ErrRunNotStarted
	}
	t.status.ErrorCount++
	t.status.ErrorMessages = append(t.status.ErrorMessages, msg)
	return t.repo.UpdateRun(ctx, t.status)
}

// Complete finalizes the run as completed. A completed run may still
// carry a nonzero error count.
func (t *StateTracker) Complete(ctx context.Context, processed int) error {
	if t.status == nil {
		return ErrRunNotStarted
	}
	t.status.State = core.RunStateCompleted
	t.status.CompletedAt = time.Now().UTC()
	t.status.ProcessedCount = processed
	t.logger.Info("sync run completed",
		"run_id", t.status.Id,
		"processed", processed,
		"errors", t.status.ErrorCount)
	return t.repo.UpdateRun(ctx, t.status)
}

// Fail finalizes the run as failed, appending the fault to any errors
// already recorded.
func (t *StateTracker) Fail(ctx context.Context, cause error) error {
	if t.status == nil {
		return ErrRunNotStarted
	}
	t.status.State = core.RunStateFailed
	t.status.CompletedAt = time.Now().UTC()
	t.status.ErrorCount++
	t.status.ErrorMessages = append(t.status.ErrorMessages, cause.Error())
	t.logger.Error("sync run failed", "run_id", t.status.Id, "err", cause)
	return t.repo.UpdateRun(ctx, t.status)
}

// Status returns the run record being tracked, or nil before Begin.
func (t *StateTracker) Status() *core.SyncStatus {
	return t.status
}
