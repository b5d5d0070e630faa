package badger

import (
	"bytes"
	"context"
	"time"

	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/storage"
	"github.com/dgraph-io/badger/v4"
)

// MessageRepository implements storage.MessageRepository for BadgerDB.
type MessageRepository struct {
	backend *Backend
}

var _ storage.MessageRepository = (*MessageRepository)(nil)

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(backend *Backend) *MessageRepository {
	return &MessageRepository{backend: backend}
}

// Close releases repository resources.
func (r *MessageRepository) Close() error {
	return nil
}

// PutMessage persists a message and its timestamp index entry.
func (r *MessageRepository) PutMessage(ctx context.Context, msg *core.Message) error {
	if err := core.ValidateMessage(msg); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		if msg.InsertedAt.IsZero() {
			msg.InsertedAt = time.Now().UTC()
		}

		key := makeMessageKey(msg.Id)
		value := storage.MarshalMessage(msg)
		if err := tx.Set(key, value); err != nil {
			return err
		}

		timeKey := makeMessageTimeKey(msg.Timestamp, msg.Id)
		if err := tx.Set(timeKey, []byte(msg.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetMessage retrieves a message by platform ID.
func (r *MessageRepository) GetMessage(ctx context.Context, id string) (*core.Message, error) {
	var result *core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readMessage(tx, makeMessageKey(id))
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

// GetMessages retrieves multiple messages by their IDs.
// Missing messages are skipped without error.
func (r *MessageRepository) GetMessages(ctx context.Context, ids ...string) ([]*core.Message, error) {
	var result []*core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			msg, err := readMessage(tx, makeMessageKey(id))
			if err != nil {
				return err
			}
			if msg != nil {
				result = append(result, msg)
			}
		}
		return nil
	}, false)
	return result, err
}

// MessageExists reports whether a message with the given ID is persisted.
func (r *MessageRepository) MessageExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		_, err := tx.Get(makeMessageKey(id))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		exists = true
		return nil
	}, false)
	return exists, err
}

// AllMessages retrieves every persisted message, ordered by timestamp
// ascending via the time index.
func (r *MessageRepository) AllMessages(ctx context.Context) ([]*core.Message, error) {
	var results []*core.Message
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(messageTimePrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var id string
			if err := iter.Item().Value(func(val []byte) error {
				id = string(val)
				return nil
			}); err != nil {
				return err
			}

			msg, err := readMessage(tx, makeMessageKey(id))
			if err != nil {
				return err
			}
			if msg != nil {
				results = append(results, msg)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountMessagesByChannel returns the number of persisted messages per channel.
func (r *MessageRepository) CountMessagesByChannel(ctx context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(messagePrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			// The time index shares no prefix with messagePrefix + ":",
			// but guard against future key additions anyway.
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				continue
			}
			var msg *core.Message
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				msg, err = storage.UnmarshalMessage(val)
				return err
			}); err != nil {
				return err
			}
			if msg != nil {
				counts[msg.ChannelId]++
			}
		}
		return nil
	}, false)

	return counts, err
}

// readMessage reads a message from the transaction.
// Returns nil, nil when the key is absent.
func readMessage(tx *badger.Txn, key []byte) (*core.Message, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var msg *core.Message
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		msg, unmarshalErr = storage.UnmarshalMessage(val)
		return unmarshalErr
	})
	return msg, err
}
