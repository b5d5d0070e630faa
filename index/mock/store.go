// Package mock provides a test double for the index package.
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/convodex/convodex/index"
)

// MockStore is an in-memory index.Store. Custom behavior can be injected
// via function fields; by default documents are held in a map and queries
// return nothing.
type MockStore struct {
	// SubmitFunc is called by Submit if set.
	SubmitFunc func(ctx context.Context, docID, displayName, text string) (string, error)

	// QueryFunc is called by Query if set.
	QueryFunc func(ctx context.Context, query string, prior []string) (*index.Answer, error)

	mu   sync.Mutex
	docs map[string]string

	submitCalls int
	ensureCalls int
}

var _ index.Store = (*MockStore)(nil)

// NewMockStore creates an empty mock store.
func NewMockStore() *MockStore {
	return &MockStore{docs: make(map[string]string)}
}

// Ensure records the call and succeeds.
func (m *MockStore) Ensure(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureCalls++
	return nil
}

// Submit stores the document and returns "ref-<docID>".
func (m *MockStore) Submit(ctx context.Context, docID, displayName, text string) (string, error) {
	m.mu.Lock()
	m.submitCalls++
	m.mu.Unlock()

	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, docID, displayName, text)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	ref := "ref-" + docID
	m.docs[ref] = text
	return ref, nil
}

// Refs lists stored references in sorted order.
func (m *MockStore) Refs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	refs := make([]string, 0, len(m.docs))
	for ref := range m.docs {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs, nil
}

// Delete removes a stored document.
func (m *MockStore) Delete(ctx context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[ref]; !ok {
		return fmt.Errorf("no document %s", ref)
	}
	delete(m.docs, ref)
	return nil
}

// DeleteAll removes every stored document.
func (m *MockStore) DeleteAll(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := len(m.docs)
	m.docs = make(map[string]string)
	return n, nil
}

// Query delegates to QueryFunc, or returns an empty answer.
func (m *MockStore) Query(ctx context.Context, query string, prior []string) (*index.Answer, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query, prior)
	}
	return &index.Answer{}, nil
}

// SubmitCallCount returns the number of Submit invocations.
func (m *MockStore) SubmitCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.submitCalls
}

// EnsureCallCount returns the number of Ensure invocations.
func (m *MockStore) EnsureCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureCalls
}

// Document returns a stored document's text by reference.
func (m *MockStore) Document(ref string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.docs[ref]
	return text, ok
}
