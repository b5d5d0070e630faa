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

import "errors"

// Domain validation errors
var (
	// ErrInvalidMessage indicates a Message failed validation.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidChunk indicates a ConversationChunk failed validation.
	ErrInvalidChunk = errors.New("invalid conversation chunk")

	// ErrInvalidSyncStatus indicates a SyncStatus failed validation.
	ErrInvalidSyncStatus = errors.New("invalid sync status")

	// ErrEmptyID indicates a required identifier field is empty.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrEmptyChannelID indicates the ChannelId field is empty.
	ErrEmptyChannelID = errors.New("channel id cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")

	// ErrInvalidRunKind indicates an invalid RunKind value.
	ErrInvalidRunKind = errors.New("invalid run kind")

	// ErrInvalidRunState indicates an invalid RunState value.
	ErrInvalidRunState = errors.New("invalid run state")

	// ErrEmptyChunkMembers indicates a chunk has no member messages.
	ErrEmptyChunkMembers = errors.New("chunk must contain at least one message")
)
