package storage

import "stablehand/pkg/platform/sentinel"

// Re-exported sentinels so callers that only import storage can match store
// outcomes without also importing the sentinel package.
var (
	ErrNotFound = sentinel.ErrNotFound
	ErrConflict = sentinel.ErrConflict
	ErrOrphaned = sentinel.ErrOrphaned
)
