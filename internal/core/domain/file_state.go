package domain

// FileState is the canonical on-disk state signature of a path: existence,
// type, size, and a change-detection fingerprint. Exactly one of the digest
// or the mtime is authoritative: when HasDigest is set the mtime is zeroed,
// and when the digest is unavailable (empty files, directories, filesystems
// without fast digesting) the mtime carries the fingerprint.
//
// The value is comparable; two independently computed states for the same
// unchanged path must compare equal.
type FileState struct {
	Exists    bool
	IsFile    bool
	IsDir     bool
	IsSymlink bool

	// Size is the file size in bytes; zero for directories and
	// nonexistent paths.
	Size int64

	// Digest is the content fingerprint when HasDigest is set.
	Digest    uint64
	HasDigest bool

	// MtimeNanos is the modification time in Unix nanoseconds; set only
	// when the digest is not authoritative.
	MtimeNanos int64

	// Volatile marks a state whose mtime falls inside the current build's
	// timestamp-granularity window. Such files are conservatively treated
	// as possibly changed on the next build.
	Volatile bool
}

// NonexistentFileState is the shared state for paths that do not exist.
// Nonexistence is a valid state, not an error.
var NonexistentFileState = FileState{}
