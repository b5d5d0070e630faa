package storage

import (
	"context"
	"time"

	"github.com/convodex/convodex/core"
)

// Repository provides common operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// Close closes the repository and releases resources.
	Close() error
}

// MessageRepository provides operations for archived messages.
// Messages are keyed by their platform-unique ID and are immutable once
// persisted; Put of an existing ID overwrites with identical content.
type MessageRepository interface {
	Repository

	// PutMessage persists a message. Sets InsertedAt if not already set.
	PutMessage(ctx context.Context, msg *core.Message) error

	// GetMessage retrieves a message by platform ID.
	// Returns ErrNotFound if the message doesn't exist.
	GetMessage(ctx context.Context, id string) (*core.Message, error)

	// GetMessages retrieves multiple messages by their IDs.
	// Returns only the messages that exist (no error for missing ones).
	GetMessages(ctx context.Context, ids ...string) ([]*core.Message, error)

	// MessageExists reports whether a message with the given ID is persisted.
	// This is the idempotence check used by the channel walker.
	MessageExists(ctx context.Context, id string) (bool, error)

	// AllMessages retrieves every persisted message, ordered by timestamp
	// ascending. Used by the reindex driver.
	AllMessages(ctx context.Context) ([]*core.Message, error)

	// CountMessagesByChannel returns the number of persisted messages per
	// channel ID.
	CountMessagesByChannel(ctx context.Context) (map[string]int, error)
}

// ChunkRepository provides operations for conversation chunk records.
// Chunks are derived artifacts: they are deleted wholesale and rebuilt by
// the reindex driver.
type ChunkRepository interface {
	Repository

	// PutChunk persists a chunk record.
	PutChunk(ctx context.Context, chunk *core.ConversationChunk) error

	// GetChunk retrieves a chunk by ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, id string) (*core.ConversationChunk, error)

	// GetChunkByMessageID retrieves the chunk containing the given message,
	// if any. Returns ErrNotFound if no chunk contains the message.
	GetChunkByMessageID(ctx context.Context, messageID string) (*core.ConversationChunk, error)

	// AllChunks retrieves every persisted chunk.
	AllChunks(ctx context.Context) ([]*core.ConversationChunk, error)

	// DeleteAllChunks removes every chunk record and returns the count
	// removed. Messages are untouched.
	DeleteAllChunks(ctx context.Context) (int, error)
}

// SyncRepository provides operations for sync run records, the global
// watermark, and per-channel synced marks.
type SyncRepository interface {
	Repository

	// CreateRun persists a new run record. The record must be validated;
	// run records are append-only and never deleted.
	CreateRun(ctx context.Context, status *core.SyncStatus) error

	// UpdateRun overwrites an existing run record in place.
	// Returns ErrNotFound if the run doesn't exist.
	UpdateRun(ctx context.Context, status *core.SyncStatus) error

	// GetRun retrieves a run record by ID.
	GetRun(ctx context.Context, id string) (*core.SyncStatus, error)

	// LatestRun retrieves the most recently started run.
	// Returns ErrNotFound if no run has ever been recorded.
	LatestRun(ctx context.Context) (*core.SyncStatus, error)

	// Watermark returns the timestamp below which messages are assumed
	// already synced. Returns a zero time if no watermark has been set.
	Watermark(ctx context.Context) (time.Time, error)

	// SetWatermark advances the global watermark.
	SetWatermark(ctx context.Context, ts time.Time) error

	// SyncedChannelIDs returns the IDs of every channel/thread that has
	// completed at least one full walk.
	SyncedChannelIDs(ctx context.Context) (map[string]bool, error)

	// MarkChannelSynced creates or updates the synced mark for a channel.
	// On first sync it sets FirstSyncedAt; on subsequent syncs it updates
	// DisplayName and LastSyncedAt only.
	MarkChannelSynced(ctx context.Context, channelID, displayName string, now time.Time) error

	// SyncedChannels returns all synced channel marks.
	SyncedChannels(ctx context.Context) ([]*core.SyncedChannel, error)
}
