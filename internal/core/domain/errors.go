package domain

import "go.trai.ch/zerr"

var (
	// ErrBadPattern is returned for a malformed glob pattern: an absolute
	// fragment, a pattern escaping the package root, or an empty string.
	// It is scoped to one call; the caller may treat the pattern as
	// matching nothing.
	ErrBadPattern = zerr.New("bad glob pattern")

	// ErrConsistency is returned when two concurrent computations for the
	// same artifact disagree, or when injected data contradicts data
	// recomputed from the filesystem. It is always fatal for the cache
	// instance and signals a caller-ordering bug.
	ErrConsistency = zerr.New("inconsistent filesystem data")

	// ErrSymlinkCycle is returned when resolving a symlink leads back to
	// an already visited path.
	ErrSymlinkCycle = zerr.New("symlink cycle")

	// ErrAlreadyInjected is returned when a digest is injected twice for
	// the same artifact on the same cache instance, or when entries are
	// discarded after an injection already happened.
	ErrAlreadyInjected = zerr.New("digest already injected")

	// ErrOutputMissing is returned when a declared output artifact cannot
	// be found on disk after its action supposedly produced it.
	ErrOutputMissing = zerr.New("declared output does not exist")

	// ErrInvalidPackageName is returned for package names that fail
	// validation.
	ErrInvalidPackageName = zerr.New("invalid package name")

	// ErrDuplicateRule is returned when a build file declares two rules
	// with the same name.
	ErrDuplicateRule = zerr.New("duplicate rule name")
)
