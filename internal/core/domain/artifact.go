// Package domain contains the core domain models for artifact metadata
// tracking and package evaluation.
package domain

import "path/filepath"

// ArtifactKind distinguishes how an artifact comes into existence.
type ArtifactKind uint8

const (
	// SourceArtifact is a file checked into the workspace.
	SourceArtifact ArtifactKind = iota
	// DerivedArtifact is a declared output produced by an action.
	DerivedArtifact
	// MiddlemanArtifact is a virtual artifact with no filesystem
	// representation, aggregating other artifacts.
	MiddlemanArtifact
)

// Artifact identifies a tracked build input or output. Artifacts are owned by
// the dependency graph; this package merely references them. The value is
// immutable and comparable, so it can be used directly as a map key.
type Artifact struct {
	// ExecPath is the execution-root-relative path of the artifact.
	ExecPath InternedString

	// Root is the absolute path of the root directory the artifact lives
	// under (source root or derived output root).
	Root InternedString

	// Kind designates the root: source, derived output, or middleman.
	Kind ArtifactKind

	// ConstantMetadata marks an artifact whose reported metadata never
	// varies, used to suppress unnecessary rebuild triggering.
	ConstantMetadata bool
}

// NewArtifact creates an artifact rooted at root with the given
// execution-relative path.
func NewArtifact(root, execPath string, kind ArtifactKind) Artifact {
	return Artifact{
		ExecPath: NewInternedString(execPath),
		Root:     NewInternedString(root),
		Kind:     kind,
	}
}

// IsSource reports whether the artifact is a workspace source file.
func (a Artifact) IsSource() bool { return a.Kind == SourceArtifact }

// IsMiddleman reports whether the artifact is virtual.
func (a Artifact) IsMiddleman() bool { return a.Kind == MiddlemanArtifact }

// FullPath returns the absolute filesystem path of the artifact.
func (a Artifact) FullPath() string {
	return filepath.Join(a.Root.String(), a.ExecPath.String())
}

// String returns the execution-relative path for diagnostics.
func (a Artifact) String() string { return a.ExecPath.String() }
