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

package convodex

import (
	"log/slog"

	"github.com/convodex/convodex/index"
	"github.com/convodex/convodex/index/chroma"
	"github.com/convodex/convodex/reindex"
	"github.com/convodex/convodex/search"
	"github.com/convodex/convodex/source"
	"github.com/convodex/convodex/storage"
	"github.com/convodex/convodex/storage/badger"
	"github.com/convodex/convodex/syncer"
)

// Archive wires the storage backend, repositories, and index store into
// one handle the commands build their components from.
type Archive struct {
	backend     *badger.Backend
	messageRepo storage.MessageRepository
	chunkRepo   storage.ChunkRepository
	syncRepo    storage.SyncRepository
	store       index.Store
	logger      *slog.Logger
}

// ArchiveOption configures an Archive.
type ArchiveOption func(*archiveOptions)

type archiveOptions struct {
	indexConfig chroma.Config
	store       index.Store
	inMemory    bool
}

// WithIndexConfig sets the Chroma index settings.
func WithIndexConfig(cfg chroma.Config) ArchiveOption {
	return func(o *archiveOptions) {
		o.indexConfig = cfg
	}
}

// WithIndexStore injects an index store, bypassing the Chroma default.
// Used by tests and the seeder.
func WithIndexStore(store index.Store) ArchiveOption {
	return func(o *archiveOptions) {
		o.store = store
	}
}

// WithInMemory opens the storage backend in memory instead of on disk.
func WithInMemory() ArchiveOption {
	return func(o *archiveOptions) {
		o.inMemory = true
	}
}

// OpenArchive opens the message archive at filePath.
func OpenArchive(filePath string, opts ...ArchiveOption) (*Archive, error) {
	options := &archiveOptions{
		indexConfig: chroma.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	store := options.store
	if store == nil {
		chromaStore, err := chroma.NewStore(options.indexConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
		store = chromaStore
	}

	return &Archive{
		backend:     backend,
		messageRepo: badger.NewMessageRepository(backend),
		chunkRepo:   badger.NewChunkRepository(backend),
		syncRepo:    badger.NewSyncRepository(backend),
		store:       store,
		logger:      slog.Default(),
	}, nil
}

// Close releases the archive's resources.
func (a *Archive) Close() error {
	if err := a.syncRepo.Close(); err != nil {
		a.logger.Error("error closing sync repository", "err", err)
		return err
	}
	if err := a.chunkRepo.Close(); err != nil {
		a.logger.Error("error closing chunk repository", "err", err)
		return err
	}
	if err := a.messageRepo.Close(); err != nil {
		a.logger.Error("error closing message repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// MessageRepository returns the archived-message repository.
func (a *Archive) MessageRepository() storage.MessageRepository {
	return a.messageRepo
}

// ChunkRepository returns the conversation-chunk repository.
func (a *Archive) ChunkRepository() storage.ChunkRepository {
	return a.chunkRepo
}

// SyncRepository returns the sync-state repository.
func (a *Archive) SyncRepository() storage.SyncRepository {
	return a.syncRepo
}

// IndexStore returns the semantic index store.
func (a *Archive) IndexStore() index.Store {
	return a.store
}

// NewSyncOrchestrator builds a sync orchestrator over the archive and
// the given message source.
func (a *Archive) NewSyncOrchestrator(src source.MessageSource, opts ...syncer.WalkerOption) (*syncer.Orchestrator, error) {
	return syncer.NewOrchestrator(src, a.messageRepo, a.syncRepo, a.store, opts...)
}

// NewReindexDriver builds a reindex driver over the archive.
func (a *Archive) NewReindexDriver(opts ...reindex.Option) (*reindex.Driver, error) {
	return reindex.NewDriver(a.messageRepo, a.chunkRepo, a.store, opts...)
}

// NewSearcher builds a searcher over the archive.
func (a *Archive) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(a.messageRepo, a.chunkRepo, a.store, opts...)
}
