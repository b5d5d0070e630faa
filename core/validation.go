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

package core

import (
	"fmt"
	"time"
)

// ValidateMessage validates a Message according to domain rules.
//
// Validation rules:
//   - Id and ChannelId must not be empty
//   - Timestamp must be set and not ahead of local time by more than
//     the clock skew allowance
//
// NOT validated (populated by collaborators):
//   - IndexRef / IndexedAt (empty until the index collaborator accepts it)
//   - Attachment extracted text (best-effort OCR)
//   - Body (attachment-only messages have an empty body)
func ValidateMessage(msg *Message) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidMessage)
	}

	if msg.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyID)
	}

	if msg.ChannelId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrEmptyChannelID)
	}

	if !IsValidTimestamp(msg.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidMessage, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateChunk validates a ConversationChunk according to domain rules.
//
// Validation rules:
//   - Id and ChannelId must not be empty
//   - MessageIds must not be empty
//   - StartTime must not be after EndTime
func ValidateChunk(chunk *ConversationChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyID)
	}

	if chunk.ChannelId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChannelID)
	}

	if len(chunk.MessageIds) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyChunkMembers)
	}

	if chunk.StartTime.After(chunk.EndTime) {
		return fmt.Errorf("%w: start time after end time", ErrInvalidChunk)
	}

	return nil
}

// ValidateSyncStatus validates a SyncStatus according to domain rules.
func ValidateSyncStatus(status *SyncStatus) error {
	if status == nil {
		return fmt.Errorf("%w: status is nil", ErrInvalidSyncStatus)
	}

	if status.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSyncStatus, ErrEmptyID)
	}

	if err := ValidateRunKind(status.Kind); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSyncStatus, err)
	}

	if err := ValidateRunState(status.State); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSyncStatus, err)
	}

	return nil
}

// ValidateRunKind validates that a RunKind has a valid value.
func ValidateRunKind(kind RunKind) error {
	if kind != RunKindInitial && kind != RunKindIncremental {
		return fmt.Errorf("%w: value %d", ErrInvalidRunKind, kind)
	}
	return nil
}

// ValidateRunState validates that a RunState has a valid value.
func ValidateRunState(state RunState) error {
	switch state {
	case RunStatePending, RunStateInProgress, RunStateCompleted, RunStateFailed:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidRunState, state)
}

// clockSkewAllowance bounds how far ahead of local time a message
// timestamp may sit. The platform's clock and ours are not the same
// clock, so freshly posted messages can arrive slightly "in the future".
const clockSkewAllowance = 5 * time.Minute

// IsValidTimestamp checks if a timestamp is valid: set, and not further
// ahead of local time than the clock skew allowance.
func IsValidTimestamp(ts time.Time) bool {
	return !ts.IsZero() && !ts.After(time.Now().Add(clockSkewAllowance))
}
