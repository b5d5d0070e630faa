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

// Package chroma implements index.Store on a Chroma collection, with a
// language model synthesizing query answers over the retrieved documents.
package chroma

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	chroma "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/convodex/convodex/index"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Config holds connection settings for the Chroma-backed index store.
type Config struct {
	// ChromaURL is the base URL of the Chroma server.
	ChromaURL string

	// Collection is the name of the collection holding the documents.
	Collection string

	// LLMHost is the base URL of the OpenAI-compatible answer model.
	LLMHost string

	// LLMModel is the answer model identifier.
	LLMModel string

	// TopK is how many documents to retrieve per query.
	TopK int
}

// DefaultConfig returns settings for a local Chroma server and a local
// OpenAI-compatible model.
func DefaultConfig() Config {
	return Config{
		ChromaURL:  "http://localhost:8000",
		Collection: "convodex",
		LLMHost:    "http://localhost:11434/v1",
		LLMModel:   "qwen2.5:3b",
		TopK:       10,
	}
}

// Store implements index.Store over a Chroma collection.
type Store struct {
	config     Config
	client     chroma.Client
	collection chroma.Collection
	llm        llms.Model
	logger     *slog.Logger
}

var _ index.Store = (*Store)(nil)

// NewStore creates a Chroma-backed index store. The collection is not
// touched until Ensure is called.
func NewStore(cfg Config) (*Store, error) {
	if cfg.Collection == "" {
		return nil, fmt.Errorf("chroma: collection name is required")
	}
	if cfg.TopK < 1 {
		cfg.TopK = DefaultConfig().TopK
	}

	client, err := chroma.NewHTTPClient(chroma.WithBaseURL(cfg.ChromaURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", index.ErrStoreUnavailable, err)
	}

	llm, err := openai.New(
		openai.WithBaseURL(cfg.LLMHost),
		openai.WithToken("none"),
		openai.WithModel(cfg.LLMModel),
	)
	if err != nil {
		return nil, err
	}

	return &Store{
		config: cfg,
		client: client,
		llm:    llm,
		logger: slog.Default().With("component", "chroma-store"),
	}, nil
}

// Ensure creates the collection if it does not exist. Idempotent.
func (s *Store) Ensure(ctx context.Context) error {
	if s.collection != nil {
		return nil
	}

	collection, err := s.client.GetOrCreateCollection(ctx, s.config.Collection)
	if err != nil {
		return fmt.Errorf("%w: get or create collection %s: %w", index.ErrStoreUnavailable, s.config.Collection, err)
	}
	s.collection = collection
	return nil
}

// Submit indexes a rendered text blob and waits until the collection
// reports the document retrievable. The document ID doubles as the
// deletion reference.
func (s *Store) Submit(ctx context.Context, docID, displayName, text string) (string, error) {
	if err := s.Ensure(ctx); err != nil {
		return "", err
	}

	metadata, err := chroma.NewDocumentMetadataFromMap(map[string]interface{}{
		"display_name": displayName,
	})
	if err != nil {
		return "", err
	}

	err = s.collection.Add(ctx,
		chroma.WithIDs(chroma.DocumentID(docID)),
		chroma.WithMetadatas(metadata),
		chroma.WithTexts(text),
	)
	if err != nil {
		return "", fmt.Errorf("add document %s: %w", docID, err)
	}

	// Ingestion is asynchronous server-side; poll until the document is
	// visible before handing out the reference.
	err = index.PollUntil(ctx, 30*time.Second, 500*time.Millisecond, func(ctx context.Context) (bool, error) {
		result, err := s.collection.Get(ctx, chroma.WithIDsGet(chroma.DocumentID(docID)))
		if err != nil {
			return false, err
		}
		return len(result.GetIDs()) > 0, nil
	})
	if err != nil {
		return "", fmt.Errorf("await document %s: %w", docID, err)
	}

	return docID, nil
}

// Refs lists the IDs of every indexed document.
func (s *Store) Refs(ctx context.Context) ([]string, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	result, err := s.collection.Get(ctx)
	if err != nil {
		return nil, err
	}

	ids := result.GetIDs()
	refs := make([]string, 0, len(ids))
	for _, id := range ids {
		refs = append(refs, string(id))
	}
	return refs, nil
}

// Delete removes a single document by reference.
func (s *Store) Delete(ctx context.Context, ref string) error {
	if err := s.Ensure(ctx); err != nil {
		return err
	}
	return s.collection.Delete(ctx, chroma.WithIDsDelete(chroma.DocumentID(ref)))
}

// DeleteAll removes every indexed document.
func (s *Store) DeleteAll(ctx context.Context) (int, error) {
	refs, err := s.Refs(ctx)
	if err != nil {
		return 0, err
	}
	if len(refs) == 0 {
		return 0, nil
	}

	ids := make([]chroma.DocumentID, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, chroma.DocumentID(ref))
	}
	if err := s.collection.Delete(ctx, chroma.WithIDsDelete(ids...)); err != nil {
		return 0, err
	}
	return len(refs), nil
}

// Query retrieves the top-K documents for the query text and has the
// answer model pick the relevant ones, returning the parsed candidates.
func (s *Store) Query(ctx context.Context, query string, prior []string) (*index.Answer, error) {
	if err := s.Ensure(ctx); err != nil {
		return nil, err
	}

	retrieved, err := s.collection.Query(ctx,
		chroma.WithQueryTexts(query),
		chroma.WithNResults(s.config.TopK),
	)
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	docBlock := renderRetrieved(retrieved)
	if docBlock == "" {
		return &index.Answer{}, nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(answerSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(buildAnswerPrompt(query, docBlock, prior))},
		},
	}

	response, err := s.llm.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		return nil, fmt.Errorf("synthesize answer: %w", err)
	}
	if len(response.Choices) < 1 {
		s.logger.Debug("no choices returned from answer model")
		return &index.Answer{}, nil
	}

	raw := response.Choices[0].Content
	return &index.Answer{
		Raw:     raw,
		Results: index.ParseAnswer(raw),
	}, nil
}

// renderRetrieved flattens a query result into one document block per
// retrieved candidate.
func renderRetrieved(result chroma.QueryResult) string {
	if result == nil || result.CountGroups() == 0 {
		return ""
	}

	idGroups := result.GetIDGroups()
	docGroups := result.GetDocumentsGroups()
	if len(idGroups) == 0 || len(idGroups[0]) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, id := range idGroups[0] {
		sb.WriteString(fmt.Sprintf("--- document %s ---\n", string(id)))
		if len(docGroups) > 0 && i < len(docGroups[0]) {
			sb.WriteString(docGroups[0][i].ContentString())
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
