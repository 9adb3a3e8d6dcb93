package domain

// Metadata is the cached description of an artifact's content, served to the
// action cache and the dependency graph. Like FileState it is comparable and
// carries exactly one authoritative fingerprint: the digest for non-empty
// regular files, the mtime for everything else.
type Metadata struct {
	Size int64

	Digest    uint64
	HasDigest bool

	MtimeNanos int64

	// Middleman marks metadata belonging to a virtual artifact.
	Middleman bool

	// Constant marks the shared sentinel returned for constant-metadata
	// artifacts regardless of the underlying file state.
	Constant bool
}

// ConstantMetadata is the fixed sentinel reported for artifacts flagged as
// constant-metadata. It never varies between builds.
var ConstantMetadata = Metadata{Constant: true}

// DefaultMiddleman is the shared placeholder installed for a middleman
// artifact on first read when no digest was injected. Once installed for an
// artifact it never changes.
var DefaultMiddleman = Metadata{Middleman: true}

// MiddlemanMetadata builds the metadata for a virtual artifact from an
// externally supplied digest.
func MiddlemanMetadata(digest uint64) Metadata {
	return Metadata{Middleman: true, Digest: digest, HasDigest: true}
}

// MetadataFromFileState derives artifact metadata from an on-disk state. For
// a non-empty regular file with a digest the digest is authoritative;
// otherwise the action cache compares mtimes, so the mtime is preserved.
func MetadataFromFileState(fs FileState) Metadata {
	if fs.IsFile && fs.Size > 0 && fs.HasDigest {
		return Metadata{Size: fs.Size, Digest: fs.Digest, HasDigest: true}
	}
	return Metadata{Size: fs.Size, MtimeNanos: fs.MtimeNanos}
}
