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

// Package chunker groups archived messages into conversation chunks.
//
// Chunking is pure and deterministic given its inputs (aside from the
// freshly generated chunk IDs): the same messages and config always yield
// the same chunk boundaries and membership. Chunks are derived artifacts —
// the reindex driver discards and rebuilds them wholesale.
package chunker

import (
	"context"
	"sort"
	"time"

	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/storage"
	"github.com/google/uuid"
)

// Config controls chunk boundary decisions.
type Config struct {
	// TimeWindow is the maximum gap between consecutive messages in a
	// chunk. A larger gap starts a new chunk.
	TimeWindow time.Duration

	// MaxMessages is the hard cap on messages per chunk before backfill.
	MaxMessages int

	// MinMessages is the minimum context per chunk. Chunks smaller than
	// this are padded with immediately preceding messages from the same
	// channel/thread; the padding messages also stay in their own chunk.
	MinMessages int
}

// DefaultConfig returns the chunking parameters used in production.
func DefaultConfig() Config {
	return Config{
		TimeWindow:  30 * time.Minute,
		MaxMessages: 20,
		MinMessages: 3,
	}
}

// GroupMessages partitions messages by (channel, thread) and groups each
// partition into time-ordered chunks.
//
// Within a partition, messages are sorted by timestamp (ties broken by
// ID), then scanned greedily: a new chunk starts when the running chunk
// holds MaxMessages or the gap to the previous message exceeds
// TimeWindow. Chunks below MinMessages are then backfilled with the
// immediately preceding partition messages, which remain members of
// their original chunk as well.
//
// Output order across partitions follows sorted partition keys; callers
// must not depend on it.
func GroupMessages(messages []*core.Message, cfg Config) []*core.ConversationChunk {
	if len(messages) == 0 {
		return nil
	}

	partitions := make(map[string][]*core.Message)
	var keys []string
	for _, msg := range messages {
		key := msg.ChannelId + "\x00" + msg.ThreadId
		if _, seen := partitions[key]; !seen {
			keys = append(keys, key)
		}
		partitions[key] = append(partitions[key], msg)
	}
	sort.Strings(keys)

	var chunks []*core.ConversationChunk
	for _, key := range keys {
		chunks = append(chunks, groupPartition(partitions[key], cfg)...)
	}
	return chunks
}

// groupPartition chunks a single (channel, thread) partition.
func groupPartition(messages []*core.Message, cfg Config) []*core.ConversationChunk {
	sorted := make([]*core.Message, len(messages))
	copy(sorted, messages)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].Timestamp.Before(sorted[j].Timestamp)
		}
		return sorted[i].Id < sorted[j].Id
	})

	var groups [][]*core.Message
	var current []*core.Message
	for _, msg := range sorted {
		if len(current) > 0 {
			prev := current[len(current)-1]
			if len(current) >= cfg.MaxMessages || msg.Timestamp.Sub(prev.Timestamp) > cfg.TimeWindow {
				groups = append(groups, current)
				current = nil
			}
		}
		current = append(current, msg)
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	// Index into the partition's sorted sequence for backfill lookups.
	position := make(map[string]int, len(sorted))
	for i, msg := range sorted {
		position[msg.Id] = i
	}

	chunks := make([]*core.ConversationChunk, 0, len(groups))
	for _, group := range groups {
		if len(group) < cfg.MinMessages {
			group = backfill(group, sorted, position, cfg.MinMessages)
		}
		chunks = append(chunks, buildChunk(group))
	}
	return chunks
}

// backfill prepends up to want-len(group) messages immediately preceding
// the group's first message in the partition sequence.
func backfill(group, sorted []*core.Message, position map[string]int, want int) []*core.Message {
	first := position[group[0].Id]
	need := want - len(group)
	start := first - need
	if start < 0 {
		start = 0
	}
	if start == first {
		return group
	}

	padded := make([]*core.Message, 0, (first-start)+len(group))
	padded = append(padded, sorted[start:first]...)
	padded = append(padded, group...)
	return padded
}

// buildChunk assembles a chunk record from its member messages, which
// must be in chronological order.
func buildChunk(members []*core.Message) *core.ConversationChunk {
	first := members[0]
	last := members[len(members)-1]

	ids := make([]string, 0, len(members))
	var participants []string
	seen := make(map[string]bool)
	for _, msg := range members {
		ids = append(ids, msg.Id)
		name := msg.AuthorName
		if name == "" {
			name = msg.AuthorId
		}
		if !seen[name] {
			seen[name] = true
			participants = append(participants, name)
		}
	}

	return &core.ConversationChunk{
		Id:           uuid.NewString(),
		ChannelId:    first.ChannelId,
		ChannelName:  first.ChannelName,
		ThreadId:     first.ThreadId,
		ThreadName:   first.ThreadName,
		StartTime:    first.Timestamp,
		EndTime:      last.Timestamp,
		MessageIds:   ids,
		Participants: participants,
	}
}

// MessagesForChunk resolves a chunk's member messages in manifest order.
// Missing members are skipped.
func MessagesForChunk(ctx context.Context, repo storage.MessageRepository, chunk *core.ConversationChunk) ([]*core.Message, error) {
	return repo.GetMessages(ctx, chunk.MessageIds...)
}
