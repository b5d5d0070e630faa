package syncer

import "errors"

var (
	// ErrSourceRequired is returned when no message source is provided.
	ErrSourceRequired = errors.New("message source is required")

	// ErrMessageRepositoryRequired is returned when no message repository is provided.
	ErrMessageRepositoryRequired = errors.New("message repository is required")

	// ErrSyncRepositoryRequired is returned when no sync repository is provided.
	ErrSyncRepositoryRequired = errors.New("sync repository is required")

	// ErrIndexStoreRequired is returned when no index store is provided.
	ErrIndexStoreRequired = errors.New("index store is required")

	// ErrRunNotStarted is returned when tracker operations run before Begin.
	ErrRunNotStarted = errors.New("run not started")

	// ErrScopeResolution is returned when the sync scope cannot be resolved.
	ErrScopeResolution = errors.New("cannot resolve sync scope")
)
