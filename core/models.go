package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// Key is a 64-bit sort key derived from a platform identifier.
// Platform message IDs are opaque strings; composite store indexes need a
// fixed-width component, so we hash the string down to 8 bytes.
type Key uint64

// KeyFromString derives a deterministic Key from a platform ID using BLAKE2b.
// Identical input always produces the same key.
func KeyFromString(s string) Key {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(s))
	sum := h.Sum(nil)
	return Key(binary.LittleEndian.Uint64(sum))
}

// RunKind identifies how a sync run selects its starting point.
type RunKind int

const (
	// RunKindInitial walks the entire message history.
	RunKindInitial RunKind = iota + 1
	// RunKindIncremental walks only messages newer than the watermark.
	RunKindIncremental
)

func (k RunKind) String() string {
	switch k {
	case RunKindInitial:
		return "initial"
	case RunKindIncremental:
		return "incremental"
	default:
		return fmt.Sprintf("RunKind(%d)", int(k))
	}
}

// RunState is the lifecycle state of a sync run.
type RunState int

const (
	RunStatePending RunState = iota + 1
	RunStateInProgress
	RunStateCompleted
	RunStateFailed
)

func (s RunState) String() string {
	switch s {
	case RunStatePending:
		return "pending"
	case RunStateInProgress:
		return "in-progress"
	case RunStateCompleted:
		return "completed"
	case RunStateFailed:
		return "failed"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// Attachment describes a file attached to a message. It is owned by its
// Message and has no independent lifecycle.
type Attachment struct {
	Filename      string
	MediaType     string
	SourceURL     string
	ExtractedText string // Populated by the OCR collaborator for image types
}

// Message is a single archived chat message. Once persisted it is immutable;
// re-encountering the same platform ID during a walk is a no-op.
type Message struct {
	Id          string // Platform-unique, stable
	ChannelId   string
	ChannelName string
	ThreadId    string // Empty outside threads
	ThreadName  string
	AuthorId    string
	AuthorName  string
	Body        string
	Timestamp   time.Time // Source-of-truth ordering key
	Attachments []Attachment
	JumpURL     string
	IndexRef    string    // Opaque reference returned by the index collaborator
	IndexedAt   time.Time // Zero until indexed
	InsertedAt  time.Time // When the record was persisted locally
}

// ConversationChunk is a derived grouping of chronologically adjacent
// messages within one channel/thread. Chunk IDs are freshly generated per
// build; chunks are re-creatable from messages at any time.
type ConversationChunk struct {
	Id           string
	ChannelId    string
	ChannelName  string
	ThreadId     string
	ThreadName   string
	StartTime    time.Time
	EndTime      time.Time
	MessageIds   []string // Chronological by construction
	Participants []string // Author names in first-seen order
	IndexRef     string
	IndexedAt    time.Time
}

// SyncStatus is the persisted record of one sync run. Records are append-only
// and never deleted; they form the audit trail of the archive.
type SyncStatus struct {
	Id                  string
	Kind                RunKind
	State               RunState
	StartedAt           time.Time
	CompletedAt         time.Time // Zero while in progress
	CheckpointChannelId string
	CheckpointMessageId string
	ProcessedCount      int
	ErrorCount          int
	ErrorMessages       []string
}

// SyncedChannel marks a channel or thread as having completed at least one
// full walk. Its presence is the sole signal that incremental sync may use
// the global watermark for this channel.
type SyncedChannel struct {
	ChannelId     string
	DisplayName   string
	FirstSyncedAt time.Time
	LastSyncedAt  time.Time
}

// SyncSummary reports the outcome of a sync run to the caller.
type SyncSummary struct {
	Processed   int
	New         int
	Errors      int
	NewChannels []string // Display names of channels first seen in this run
}

// ReindexReport reports the outcome of a reindex run.
type ReindexReport struct {
	Chunks   int
	Messages int
	Indexed  int
	Errors   int
}
