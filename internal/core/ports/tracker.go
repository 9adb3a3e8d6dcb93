package ports

import "github.com/bjorndm/bazel/internal/core/domain"

// FileStateTracker computes the canonical on-disk state signature for a
// path. Nonexistence is a valid state; Stat fails only on filesystem errors
// other than not-found, and on self-referential symlinks.
//
//go:generate go run go.uber.org/mock/mockgen -source=tracker.go -destination=mocks/mock_tracker.go -package=mocks
type FileStateTracker interface {
	// Stat resolves one level of symlink and returns the state of the
	// path, with its fingerprint chosen per the digest policy.
	Stat(path string) (domain.FileState, error)

	// Digest computes the content digest of a regular file. It is used to
	// cross-check externally injected digests, and reports false without
	// reading the file when the digest policy rules digesting out.
	Digest(path string) (uint64, bool, error)
}
