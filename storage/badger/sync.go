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

package badger

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/storage"
	"github.com/dgraph-io/badger/v4"
)

// SyncRepository implements storage.SyncRepository for BadgerDB.
type SyncRepository struct {
	backend *Backend
}

var _ storage.SyncRepository = (*SyncRepository)(nil)

// NewSyncRepository creates a new SyncRepository.
func NewSyncRepository(backend *Backend) *SyncRepository {
	return &SyncRepository{backend: backend}
}

// Close releases repository resources.
func (r *SyncRepository) Close() error {
	return nil
}

// CreateRun persists a new run record and its start-time index entry.
func (r *SyncRepository) CreateRun(ctx context.Context, status *core.SyncStatus) error {
	if err := core.ValidateSyncStatus(status); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSyncRunKey(status.Id)
		if _, err := tx.Get(key); err == nil {
			return storage.ErrDuplicateKey
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		if err := tx.Set(key, storage.MarshalSyncStatus(status)); err != nil {
			return err
		}

		timeKey := makeSyncRunTimeKey(status.StartedAt, status.Id)
		if err := tx.Set(timeKey, []byte(status.Id)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// UpdateRun overwrites an existing run record in place. The start-time
// index entry is left alone since StartedAt never changes after creation.
func (r *SyncRepository) UpdateRun(ctx context.Context, status *core.SyncStatus) error {
	if err := core.ValidateSyncStatus(status); err != nil {
		return err
	}

	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSyncRunKey(status.Id)
		if _, err := tx.Get(key); err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		if err := tx.Set(key, storage.MarshalSyncStatus(status)); err != nil {
			return err
		}

		return tx.Commit()
	}, true)
}

// GetRun retrieves a run record by ID.
func (r *SyncRepository) GetRun(ctx context.Context, id string) (*core.SyncStatus, error) {
	var result *core.SyncStatus
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeSyncRunKey(id))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			result, err = storage.UnmarshalSyncStatus(val)
			return err
		})
	}, false)
	return result, err
}

// LatestRun retrieves the most recently started run via a reverse scan of
// the start-time index.
func (r *SyncRepository) LatestRun(ctx context.Context) (*core.SyncStatus, error) {
	var latestID string
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(syncRunTimePrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		opts.Reverse = true
		iter := tx.NewIterator(opts)
		defer iter.Close()

		// In reverse mode the seek key must sort after every index entry.
		seek := make([]byte, len(prefix)+16)
		copy(seek, prefix)
		binary.BigEndian.PutUint64(seek[len(prefix):], ^uint64(0))
		binary.BigEndian.PutUint64(seek[len(prefix)+8:], ^uint64(0))

		iter.Seek(seek)
		if !iter.Valid() {
			return storage.ErrNotFound
		}
		return iter.Item().Value(func(val []byte) error {
			latestID = string(val)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return r.GetRun(ctx, latestID)
}

// Watermark returns the global sync watermark, or a zero time if none has
// been set.
func (r *SyncRepository) Watermark(ctx context.Context) (time.Time, error) {
	var ts time.Time
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeWatermarkKey())
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) < 8 {
				return storage.ErrSerializationFailed
			}
			micros := int64(binary.BigEndian.Uint64(val))
			ts = time.UnixMicro(micros).UTC()
			return nil
		})
	}, false)
	return ts, err
}

// SetWatermark advances the global watermark.
func (r *SyncRepository) SetWatermark(ctx context.Context, ts time.Time) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		buf := make([]byte, 8)
		binary.BigEndian.PutUint64(buf, uint64(ts.UnixMicro()))
		if err := tx.Set(makeWatermarkKey(), buf); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// SyncedChannelIDs returns the IDs of every channel that has completed at
// least one full walk.
func (r *SyncRepository) SyncedChannelIDs(ctx context.Context) (map[string]bool, error) {
	marks, err := r.SyncedChannels(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(marks))
	for _, mark := range marks {
		ids[mark.ChannelId] = true
	}
	return ids, nil
}

// MarkChannelSynced creates or updates the synced mark for a channel.
func (r *SyncRepository) MarkChannelSynced(ctx context.Context, channelID, displayName string, now time.Time) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeSyncChannelKey(channelID)

		mark := &core.SyncedChannel{
			ChannelId:     channelID,
			DisplayName:   displayName,
			FirstSyncedAt: now,
			LastSyncedAt:  now,
		}

		item, err := tx.Get(key)
		if err == nil {
			var existing *core.SyncedChannel
			if err := item.Value(func(val []byte) error {
				existing, err = storage.UnmarshalSyncedChannel(val)
				return err
			}); err != nil {
				return err
			}
			mark.FirstSyncedAt = existing.FirstSyncedAt
		} else if err != badger.ErrKeyNotFound {
			return err
		}

		if err := tx.Set(key, storage.MarshalSyncedChannel(mark)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// SyncedChannels returns all synced channel marks.
func (r *SyncRepository) SyncedChannels(ctx context.Context) ([]*core.SyncedChannel, error) {
	var results []*core.SyncedChannel
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(syncChannelPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			var mark *core.SyncedChannel
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				mark, err = storage.UnmarshalSyncedChannel(val)
				return err
			}); err != nil {
				return err
			}
			if mark != nil {
				results = append(results, mark)
			}
		}
		return nil
	}, false)
	return results, err
}
