package glob

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
)

var _ ports.Globber = (*Cache)(nil)

// Cache memoizes glob expansions for one package directory. It lives for a
// single package evaluation and must not be shared across packages; the
// worker pool behind it is the only process-wide piece.
type Cache struct {
	root string
	pool *Pool

	entries *domain.PublishMap[key, *entry]

	pending   sync.WaitGroup
	cancelled atomic.Bool
}

// key identifies one memoized expansion. Pattern lists are order-sensitive
// on purpose: the expansion result is order-independent, but normalizing
// here would hide caller bugs the memoization is meant to surface.
type key struct {
	include     string
	exclude     string
	excludeDirs bool
}

const keySep = "\x00"

func makeKey(include, exclude []string, excludeDirs bool) key {
	return key{
		include:     strings.Join(include, keySep),
		exclude:     strings.Join(exclude, keySep),
		excludeDirs: excludeDirs,
	}
}

// entry is one memoized computation. The first caller through run computes;
// everyone else joins via the same sync.Once.
type entry struct {
	once  sync.Once
	paths []string
	err   error
}

func (e *entry) run(root string, include, exclude []pattern, excludeDirs bool) {
	e.once.Do(func() {
		e.paths, e.err = expand(root, include, exclude, excludeDirs)
	})
}

// NewCache creates a glob cache over the package directory root, scheduling
// background expansions on pool.
func NewCache(root string, pool *Pool) *Cache {
	return &Cache{
		root:    root,
		pool:    pool,
		entries: domain.NewPublishMap[key, *entry](),
	}
}

// Glob expands the patterns synchronously. An identical call already running
// in the background is joined instead of recomputed; a completed one is
// served from memory.
func (c *Cache) Glob(ctx context.Context, include, exclude []string, excludeDirs bool) ([]string, error) {
	inc, exc, err := parse(include, exclude)
	if err != nil {
		return nil, err
	}
	e := c.entries.LoadOrStore(makeKey(include, exclude, excludeDirs), &entry{})
	e.run(c.root, inc, exc, excludeDirs)
	if e.err != nil {
		return nil, e.err
	}
	// Callers get their own copy; the memoized slice stays immutable.
	out := make([]string, len(e.paths))
	copy(out, e.paths)
	return out, nil
}

// GlobAsync validates the patterns and schedules the expansion in the
// background. Validation errors surface immediately; expansion errors are
// held in the memoized entry until a synchronous call reads them.
func (c *Cache) GlobAsync(include, exclude []string, excludeDirs bool) error {
	inc, exc, err := parse(include, exclude)
	if err != nil {
		return err
	}
	if c.cancelled.Load() {
		return nil
	}
	e := c.entries.LoadOrStore(makeKey(include, exclude, excludeDirs), &entry{})

	c.pending.Add(1)
	submitErr := c.pool.Submit(func() {
		defer c.pending.Done()
		if c.cancelled.Load() {
			return
		}
		e.run(c.root, inc, exc, excludeDirs)
	})
	if submitErr != nil {
		c.pending.Done()
		return submitErr
	}
	return nil
}

// CancelPending stops not-yet-started background expansions from running.
// Expansions already inside a filesystem call finish normally.
func (c *Cache) CancelPending() {
	c.cancelled.Store(true)
}

// AwaitPending blocks until every scheduled background task has finished,
// cancelled or not. It must be called before the cache is discarded so no
// background work outlives the owning evaluation.
func (c *Cache) AwaitPending() {
	c.pending.Wait()
}

func parse(include, exclude []string) ([]pattern, []pattern, error) {
	inc, err := parsePatterns(include)
	if err != nil {
		return nil, nil, err
	}
	exc, err := parsePatterns(exclude)
	if err != nil {
		return nil, nil, err
	}
	return inc, exc, nil
}
