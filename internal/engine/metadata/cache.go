// Package metadata implements the per-action artifact metadata cache. One
// cache instance covers one action's declared inputs and outputs; the
// execution layer constructs it before running the action and reads the
// output views back afterwards.
package metadata

import (
	"sync"

	"go.trai.ch/zerr"

	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
)

// Cache serves artifact metadata with a single consistent answer per
// artifact under concurrent readers and writers. Inputs are precomputed by
// the dependency graph and never touch the filesystem; declared outputs are
// lazily stat'd and published first-writer-wins, with every later
// computation checked against the published value.
type Cache struct {
	inputs    map[domain.Artifact]domain.Metadata
	middlemen map[domain.Artifact][]domain.Artifact
	tracker   ports.FileStateTracker
	log       ports.Logger

	// outputs holds stat results for declared outputs. additional holds
	// metadata that the stat result alone cannot reproduce: injected
	// digests, mtime fallbacks, and middleman placeholders.
	outputs    *domain.PublishMap[domain.Artifact, domain.FileState]
	additional *domain.PublishMap[domain.Artifact, domain.Metadata]

	mu       sync.Mutex
	injected map[domain.Artifact]struct{}
}

// New creates a cache over one action's artifacts. inputs carries the
// precomputed metadata of the action's declared inputs; expandedMiddlemen
// maps each aggregating input middleman to the artifacts it stands for.
func New(
	inputs map[domain.Artifact]domain.Metadata,
	expandedMiddlemen map[domain.Artifact][]domain.Artifact,
	tracker ports.FileStateTracker,
	log ports.Logger,
) *Cache {
	return &Cache{
		inputs:     inputs,
		middlemen:  expandedMiddlemen,
		tracker:    tracker,
		log:        log,
		outputs:    domain.NewPublishMap[domain.Artifact, domain.FileState](),
		additional: domain.NewPublishMap[domain.Artifact, domain.Metadata](),
		injected:   make(map[domain.Artifact]struct{}),
	}
}

// Get returns the metadata for artifact. The second return is false for a
// source artifact with no precomputed entry: the caller must consult the
// filesystem elsewhere. A declared output that cannot be stat'd, or that
// does not exist on disk, is an error.
func (c *Cache) Get(artifact domain.Artifact) (domain.Metadata, bool, error) {
	md, ok, err := c.resolve(artifact)
	if err != nil || !ok {
		return domain.Metadata{}, ok, err
	}
	// Constant-metadata artifacts report the shared sentinel, but the
	// resolution above still ran and cached its stat: other consumers
	// expect the entry to exist.
	if artifact.ConstantMetadata {
		return domain.ConstantMetadata, true, nil
	}
	return md, true, nil
}

// GetOrAbsent never fails: IO errors collapse to absent.
func (c *Cache) GetOrAbsent(artifact domain.Artifact) (domain.Metadata, bool) {
	md, ok, err := c.Get(artifact)
	if err != nil {
		c.log.Warn("treating artifact as absent: " + err.Error())
		return domain.Metadata{}, false
	}
	return md, ok
}

func (c *Cache) resolve(artifact domain.Artifact) (domain.Metadata, bool, error) {
	if md, ok := c.inputs[artifact]; ok {
		return md, true, nil
	}
	if artifact.IsSource() {
		return domain.Metadata{}, false, nil
	}
	if artifact.IsMiddleman() {
		// Previously injected data wins; otherwise the shared
		// placeholder is installed on first read and never changes.
		return c.additional.LoadOrStore(artifact, domain.DefaultMiddleman), true, nil
	}

	if state, ok := c.outputs.Get(artifact); ok {
		return c.metadataFor(artifact, state), true, nil
	}

	state, err := c.tracker.Stat(artifact.FullPath())
	if err != nil {
		return domain.Metadata{}, false, err
	}
	if !state.Exists {
		return domain.Metadata{}, false, zerr.With(domain.ErrOutputMissing, "path", artifact.FullPath())
	}
	published, err := c.outputs.Publish(artifact, state)
	if err != nil {
		return domain.Metadata{}, false, zerr.With(err, "artifact", artifact.String())
	}
	if err := c.maybeStoreAdditional(artifact, published); err != nil {
		return domain.Metadata{}, false, err
	}
	return c.metadataFor(artifact, published), true, nil
}

// metadataFor derives the served metadata from a cached stat, preferring the
// additional map where an entry exists: injected digests and mtime
// fallbacks live there.
func (c *Cache) metadataFor(artifact domain.Artifact, state domain.FileState) domain.Metadata {
	if md, ok := c.additional.Get(artifact); ok {
		return md
	}
	return domain.MetadataFromFileState(state)
}

// maybeStoreAdditional records derived metadata for stats whose digest
// cannot fully describe them, so later readers reconstruct the same answer.
func (c *Cache) maybeStoreAdditional(artifact domain.Artifact, state domain.FileState) error {
	if state.HasDigest {
		return nil
	}
	_, err := c.additional.Publish(artifact, domain.MetadataFromFileState(state))
	if err != nil {
		return zerr.With(err, "artifact", artifact.String())
	}
	return nil
}

// InjectDigest records an externally authoritative digest for a declared
// output, typically supplied by an execution backend that already hashed the
// file. Injection happens at most once per artifact per cache instance; the
// digest is cross-checked against a recomputed one when the file is cheaply
// digestible.
func (c *Cache) InjectDigest(artifact domain.Artifact, state domain.FileState, digest uint64) error {
	if artifact.IsSource() || artifact.IsMiddleman() {
		return zerr.With(zerr.New("digest injection requires a declared output"), "artifact", artifact.String())
	}

	c.mu.Lock()
	if _, dup := c.injected[artifact]; dup {
		c.mu.Unlock()
		return zerr.With(domain.ErrAlreadyInjected, "artifact", artifact.String())
	}
	c.injected[artifact] = struct{}{}
	c.mu.Unlock()

	if state.IsFile && state.Size > 0 {
		recomputed, ok, err := c.tracker.Digest(artifact.FullPath())
		switch {
		case err != nil:
			// Cross-checking is best effort; the injected digest
			// stands when recomputation fails.
			c.log.Warn("skipping injected digest cross-check: " + err.Error())
		case ok && recomputed != digest:
			return zerr.With(domain.ErrConsistency, "artifact", artifact.String())
		}
	}

	// The backend is authoritative over anything stat'd earlier.
	injected := state
	injected.Digest = digest
	injected.HasDigest = true
	injected.MtimeNanos = 0
	c.outputs.Replace(artifact, injected)
	c.additional.Replace(artifact, domain.Metadata{
		Size:      state.Size,
		Digest:    digest,
		HasDigest: true,
	})
	return nil
}

// SetVirtualDigest sets the metadata for a middleman artifact. A digest that
// disagrees with an already installed value fails: the placeholder, once
// read, is immutable.
func (c *Cache) SetVirtualDigest(artifact domain.Artifact, digest uint64) error {
	if !artifact.IsMiddleman() {
		return zerr.With(zerr.New("virtual digest requires a middleman artifact"), "artifact", artifact.String())
	}
	_, err := c.additional.Publish(artifact, domain.MiddlemanMetadata(digest))
	if err != nil {
		return zerr.With(err, "artifact", artifact.String())
	}
	return nil
}

// Discard purges the cached entries for artifacts about to be regenerated.
// It fails without modifying anything once any digest has been injected into
// this cache instance, regardless of which artifacts are being discarded:
// injection only happens once execution is final, so a discard afterwards is
// a caller-ordering bug.
func (c *Cache) Discard(artifacts []domain.Artifact) error {
	c.mu.Lock()
	if len(c.injected) > 0 {
		c.mu.Unlock()
		return zerr.Wrap(domain.ErrAlreadyInjected, "cannot discard after digest injection")
	}
	c.mu.Unlock()

	for _, a := range artifacts {
		c.outputs.Delete(a)
		c.additional.Delete(a)
	}
	return nil
}

// Exists reports whether the cache holds any entry for artifact.
func (c *Cache) Exists(artifact domain.Artifact) bool {
	if _, ok := c.inputs[artifact]; ok {
		return true
	}
	if _, ok := c.outputs.Get(artifact); ok {
		return true
	}
	_, ok := c.additional.Get(artifact)
	return ok
}

// WasInjected reports whether a digest was injected for artifact on this
// cache instance.
func (c *Cache) WasInjected(artifact domain.Artifact) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.injected[artifact]
	return ok
}

// ExpandMiddleman returns the artifacts an aggregating input middleman
// stands for, as supplied at construction.
func (c *Cache) ExpandMiddleman(artifact domain.Artifact) []domain.Artifact {
	return c.middlemen[artifact]
}

// SizeOf returns the size of a precomputed input.
func (c *Cache) SizeOf(artifact domain.Artifact) (int64, bool) {
	md, ok := c.inputs[artifact]
	if !ok {
		return 0, false
	}
	return md.Size, true
}

// OutputData returns a snapshot of the stat results cached for declared
// outputs, consumed by the dependency graph after execution.
func (c *Cache) OutputData() map[domain.Artifact]domain.FileState {
	return c.outputs.Snapshot()
}

// AdditionalOutputData returns a snapshot of the metadata that stat results
// alone cannot reproduce.
func (c *Cache) AdditionalOutputData() map[domain.Artifact]domain.Metadata {
	return c.additional.Snapshot()
}
