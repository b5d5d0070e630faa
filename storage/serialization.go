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

package storage

import (
	"github.com/convodex/convodex/core"
)

// MarshalKey serializes a Key to bytes.
func MarshalKey(key core.Key) []byte {
	buf := make([]byte, core.KeyMUS.Size(key))
	core.KeyMUS.Marshal(key, buf)
	return buf
}

// UnmarshalKey deserializes a Key from bytes.
func UnmarshalKey(data []byte) (core.Key, error) {
	key, _, err := core.KeyMUS.Unmarshal(data)
	return key, err
}

// MarshalMessage serializes a Message to bytes.
func MarshalMessage(msg *core.Message) []byte {
	buf := make([]byte, core.MessageMUS.Size(*msg))
	core.MessageMUS.Marshal(*msg, buf)
	return buf
}

// UnmarshalMessage deserializes a Message from bytes.
func UnmarshalMessage(data []byte) (*core.Message, error) {
	msg, _, err := core.MessageMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarshalChunk serializes a ConversationChunk to bytes.
func MarshalChunk(chunk *core.ConversationChunk) []byte {
	buf := make([]byte, core.ConversationChunkMUS.Size(*chunk))
	core.ConversationChunkMUS.Marshal(*chunk, buf)
	return buf
}

// UnmarshalChunk deserializes a ConversationChunk from bytes.
func UnmarshalChunk(data []byte) (*core.ConversationChunk, error) {
	chunk, _, err := core.ConversationChunkMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &chunk, nil
}

// MarshalSyncStatus serializes a SyncStatus to bytes.
func MarshalSyncStatus(status *core.SyncStatus) []byte {
	buf := make([]byte, core.SyncStatusMUS.Size(*status))
	core.SyncStatusMUS.Marshal(*status, buf)
	return buf
}

// UnmarshalSyncStatus deserializes a SyncStatus from bytes.
func UnmarshalSyncStatus(data []byte) (*core.SyncStatus, error) {
	status, _, err := core.SyncStatusMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// MarshalSyncedChannel serializes a SyncedChannel to bytes.
func MarshalSyncedChannel(mark *core.SyncedChannel) []byte {
	buf := make([]byte, core.SyncedChannelMUS.Size(*mark))
	core.SyncedChannelMUS.Marshal(*mark, buf)
	return buf
}

// UnmarshalSyncedChannel deserializes a SyncedChannel from bytes.
func UnmarshalSyncedChannel(data []byte) (*core.SyncedChannel, error) {
	mark, _, err := core.SyncedChannelMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &mark, nil
}
