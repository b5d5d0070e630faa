package search

import "errors"

var (
	// ErrMessageRepositoryRequired is returned when no message repository is provided.
	ErrMessageRepositoryRequired = errors.New("message repository is required")

	// ErrChunkRepositoryRequired is returned when no chunk repository is provided.
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrIndexStoreRequired is returned when no index store is provided.
	ErrIndexStoreRequired = errors.New("index store is required")
)
