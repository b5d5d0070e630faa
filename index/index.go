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

// Package index defines the semantic index abstraction: document
// submission, lifecycle, and natural-language querying.
package index

import (
	"context"
	"errors"
)

// ErrStoreUnavailable indicates the index store could not be reached or
// created.
var ErrStoreUnavailable = errors.New("index store unavailable")

// AnswerResult is one candidate document from a query answer.
type AnswerResult struct {
	// Id is the submitted document ID, e.g. "msg_123" or "chunk_ab12...".
	Id string

	// Reason explains why the document matched.
	Reason string

	// Highlight quotes the matching portion of the document.
	Highlight string
}

// Answer is the outcome of a natural-language query.
type Answer struct {
	// Raw is the unparsed answer text, kept for refinement context.
	Raw string

	// Results are the parsed candidates, best first, at most five.
	Results []AnswerResult
}

// Store is a semantic index over rendered message and chunk documents.
// Implementations must be thread-safe for concurrent use.
type Store interface {
	// Ensure creates the underlying store if it does not exist.
	// Idempotent; safe to call before every run.
	Ensure(ctx context.Context) error

	// Submit indexes a rendered text blob under the given document ID and
	// returns an opaque reference for later deletion. The reference is
	// only valid once the store has accepted the document.
	Submit(ctx context.Context, docID, displayName, text string) (string, error)

	// Refs lists the references of every indexed document.
	Refs(ctx context.Context) ([]string, error)

	// Delete removes a single document by reference.
	Delete(ctx context.Context, ref string) error

	// DeleteAll removes every indexed document and returns the count
	// removed.
	DeleteAll(ctx context.Context) (int, error)

	// Query runs a natural-language search. prior carries raw answer text
	// from earlier queries in the same session for refinement; it may be
	// empty.
	Query(ctx context.Context, query string, prior []string) (*Answer, error)
}
