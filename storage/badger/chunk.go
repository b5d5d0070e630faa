package badger

import (
	"context"

	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/storage"
	"github.com/dgraph-io/badger/v4"
)

// ChunkRepository implements storage.ChunkRepository for BadgerDB.
type ChunkRepository struct {
	backend *Backend
}

var _ storage.ChunkRepository = (*ChunkRepository)(nil)

// NewChunkRepository creates a new ChunkRepository.
func NewChunkRepository(backend *Backend) *ChunkRepository {
	return &ChunkRepository{backend: backend}
}

// Close releases repository resources.
func (r *ChunkRepository) Close() error {
	return nil
}

// PutChunk persists a chunk record and its membership index entries.
func (r *ChunkRepository) PutChunk(ctx context.Context, chunk *core.ConversationChunk) error {
	if err := core.ValidateChunk(chunk); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeChunkKey(chunk.Id)
		value := storage.MarshalChunk(chunk)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		for _, msgID := range chunk.MessageIds {
			memberKey := makeChunkMemberKey(msgID, chunk.Id)
			if err := tx.Set(memberKey, []byte(chunk.Id)); err != nil {
				return err
			}
		}

		return tx.Commit()
	}, true)
}

// GetChunk retrieves a chunk by ID.
func (r *ChunkRepository) GetChunk(ctx context.Context, id string) (*core.ConversationChunk, error) {
	var result *core.ConversationChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readChunk(tx, makeChunkKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetChunkByMessageID retrieves the chunk containing the given message.
// If backfill duplicated the message into several chunks, the first match
// in index order is returned.
func (r *ChunkRepository) GetChunkByMessageID(ctx context.Context, messageID string) (*core.ConversationChunk, error) {
	var result *core.ConversationChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := makePartialChunkMemberKey(messageID)
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		iter.Rewind()
		if !iter.Valid() {
			return storage.ErrNotFound
		}

		var chunkID string
		if err := iter.Item().Value(func(val []byte) error {
			chunkID = string(val)
			return nil
		}); err != nil {
			return err
		}

		var err error
		result, err = readChunk(tx, makeChunkKey(chunkID))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// AllChunks retrieves every persisted chunk.
func (r *ChunkRepository) AllChunks(ctx context.Context) ([]*core.ConversationChunk, error) {
	var results []*core.ConversationChunk
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(chunkPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var chunk *core.ConversationChunk
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				chunk, err = storage.UnmarshalChunk(val)
				return err
			}); err != nil {
				return err
			}
			if chunk != nil {
				results = append(results, chunk)
			}
		}
		return nil
	}, false)
	return results, err
}

// DeleteAllChunks removes every chunk record and membership index entry.
// Each chunk is deleted in its own transaction to stay under BadgerDB's
// transaction size limit on large archives.
func (r *ChunkRepository) DeleteAllChunks(ctx context.Context) (int, error) {
	chunks, err := r.AllChunks(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, chunk := range chunks {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			for _, msgID := range chunk.MessageIds {
				if err := tx.Delete(makeChunkMemberKey(msgID, chunk.Id)); err != nil {
					return err
				}
			}
			if err := tx.Delete(makeChunkKey(chunk.Id)); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
		if err != nil {
			return deleted, err
		}
		deleted++
	}

	return deleted, nil
}

// readChunk reads a chunk from the transaction.
// Returns nil, nil when the key is absent.
func readChunk(tx *badger.Txn, key []byte) (*core.ConversationChunk, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var chunk *core.ConversationChunk
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		chunk, unmarshalErr = storage.UnmarshalChunk(val)
		return unmarshalErr
	})
	return chunk, err
}
