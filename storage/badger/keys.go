package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/convodex/convodex/core"
)

// Key prefixes for different data types
const (
	messagePrefix     = "msg"
	messageTimePrefix = "msgts"
	chunkPrefix       = "chnk"
	chunkMemberPrefix = "chnkm"
	syncRunPrefix     = "synrun"
	syncRunTimePrefix = "synrunts"
	syncChannelPrefix = "synchan"
	watermarkKey      = "synwm"
)

// makeMessageKey generates a key for a message by platform ID.
func makeMessageKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", messagePrefix, id))
}

// makeMessageTimeKey generates a composite key for the timestamp index.
// Format: prefix:timestamp:key — the 64-bit hash of the platform ID acts
// as a deterministic tiebreaker for identical timestamps.
func makeMessageTimeKey(timestamp time.Time, id string) []byte {
	prefix := messageTimePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for key
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.KeyFromString(id)))
	return buf
}

// makeChunkKey generates a key for a chunk record by ID.
func makeChunkKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", chunkPrefix, id))
}

// makeChunkMemberKey generates a composite key for the chunk membership
// index. Format: prefix:messageID:chunkID — supports the "chunk containing
// message X" query as a prefix scan on the message ID.
func makeChunkMemberKey(messageID, chunkID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:%s", chunkMemberPrefix, messageID, chunkID))
}

// makePartialChunkMemberKey generates the scan prefix for membership
// lookups by message ID.
func makePartialChunkMemberKey(messageID string) []byte {
	return []byte(fmt.Sprintf("%s:%s:", chunkMemberPrefix, messageID))
}

// makeSyncRunKey generates a key for a sync run record by ID.
func makeSyncRunKey(id string) []byte {
	return []byte(fmt.Sprintf("%s:%s", syncRunPrefix, id))
}

// makeSyncRunTimeKey generates a composite key for the run start-time
// index. Format: prefix:startedAt:key
func makeSyncRunTimeKey(startedAt time.Time, id string) []byte {
	prefix := syncRunTimePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(startedAt.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(core.KeyFromString(id)))
	return buf
}

// makeSyncChannelKey generates a key for a synced-channel mark.
func makeSyncChannelKey(channelID string) []byte {
	return []byte(fmt.Sprintf("%s:%s", syncChannelPrefix, channelID))
}

// makeWatermarkKey generates the key for the global sync watermark.
func makeWatermarkKey() []byte {
	return []byte(watermarkKey)
}
