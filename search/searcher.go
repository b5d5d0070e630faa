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

// Package search resolves natural-language queries against the semantic
// index and hydrates the matching archive records.
package search

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"sync"

	"github.com/convodex/convodex/core"
	"github.com/convodex/convodex/index"
	"github.com/convodex/convodex/storage"
	"github.com/panjf2000/ants/v2"
)

// Result is one search hit. Exactly one of Message or Chunk is set;
// chunk hits also carry their member messages in manifest order.
type Result struct {
	Message   *core.Message
	Chunk     *core.ConversationChunk
	Messages  []*core.Message
	Reason    string
	Highlight string
}

// Searcher runs index queries and hydrates the results from the archive.
type Searcher struct {
	messages storage.MessageRepository
	chunks   storage.ChunkRepository
	store    index.Store
	pool     *ants.Pool
	logger   *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithPoolSize sets the worker pool size for result hydration.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(s *Searcher) error {
		if size < 1 {
			size = 1
		}
		if s.pool != nil {
			s.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		s.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	messages storage.MessageRepository,
	chunks storage.ChunkRepository,
	store index.Store,
	opts ...Option,
) (*Searcher, error) {
	if messages == nil {
		return nil, ErrMessageRepositoryRequired
	}
	if chunks == nil {
		return nil, ErrChunkRepositoryRequired
	}
	if store == nil {
		return nil, ErrIndexStoreRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	s := &Searcher{
		messages: messages,
		chunks:   chunks,
		store:    store,
		pool:     pool,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			pool.Release()
			return nil, err
		}
	}
	return s, nil
}

// Close releases the hydration pool.
func (s *Searcher) Close() error {
	if s.pool != nil {
		s.pool.Release()
	}
	return nil
}

// Search runs a query and returns up to limit hydrated results.
// prior carries raw answer text from earlier queries in the same session
// so the index can refine rather than start over.
func (s *Searcher) Search(ctx context.Context, query string, prior []string, limit int) ([]*Result, error) {
	return s.SearchWithMonitor(ctx, query, prior, limit, nil)
}

// SearchWithMonitor runs a query with observation hooks.
func (s *Searcher) SearchWithMonitor(ctx context.Context, query string, prior []string, limit int, monitor SearchMonitor) ([]*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	monitor.Start(query)

	answer, err := s.store.Query(ctx, query, prior)
	if err != nil {
		s.logger.Error("index query failed", "query", query, "err", err)
		return nil, err
	}
	monitor.AfterIndexQuery(answer)

	candidates := answer.Results
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	monitor.AfterParse(candidates)

	// Hydrate candidates concurrently; order is preserved by slot.
	slots := make([]*Result, len(candidates))
	var wg sync.WaitGroup
	for i, candidate := range candidates {
		wg.Add(1)
		submitErr := s.pool.Submit(func() {
			defer wg.Done()
			result, err := s.hydrate(ctx, candidate)
			if err != nil {
				s.logger.Warn("failed to hydrate result", "id", candidate.Id, "err", err)
				return
			}
			slots[i] = result
		})
		if submitErr != nil {
			wg.Done()
			s.logger.Warn("failed to schedule hydration", "id", candidate.Id, "err", submitErr)
		}
	}
	wg.Wait()

	results := make([]*Result, 0, len(slots))
	for _, result := range slots {
		if result == nil {
			continue
		}
		monitor.Hit(result)
		results = append(results, result)
	}

	monitor.Finish(results)
	return results, nil
}

// hydrate resolves one answer candidate into an archive-backed result.
func (s *Searcher) hydrate(ctx context.Context, candidate index.AnswerResult) (*Result, error) {
	result := &Result{
		Reason:    candidate.Reason,
		Highlight: candidate.Highlight,
	}

	switch {
	case strings.HasPrefix(candidate.Id, core.MessageDocPrefix):
		msg, err := s.messages.GetMessage(ctx, strings.TrimPrefix(candidate.Id, core.MessageDocPrefix))
		if err != nil {
			return nil, err
		}
		result.Message = msg

	case strings.HasPrefix(candidate.Id, core.ChunkDocPrefix):
		chunk, err := s.chunks.GetChunk(ctx, strings.TrimPrefix(candidate.Id, core.ChunkDocPrefix))
		if err != nil {
			return nil, err
		}
		result.Chunk = chunk
		members, err := s.messages.GetMessages(ctx, chunk.MessageIds...)
		if err != nil {
			return nil, err
		}
		result.Messages = members

	default:
		// The answer model referenced a document we never submitted
		return nil, storage.ErrNotFound
	}

	return result, nil
}
