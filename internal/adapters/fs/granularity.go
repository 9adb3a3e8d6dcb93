package fs

import (
	"sync"
	"time"
)

// GranularityMonitor filters mtime comparisons through the current build's
// time window. Filesystem timestamps are often second-granular, so a file
// modified in the same tick as the build start could otherwise produce a
// false "unchanged" answer on the next build. Any mtime at or after the
// window start is conservatively reported as possibly changed.
type GranularityMonitor struct {
	mu sync.Mutex

	// windowStart is the build start truncated to the coarsest timestamp
	// granularity we expect from the filesystem.
	windowStart time.Time

	staleSeen bool
	maxMtime  int64
}

// NewGranularityMonitor creates a monitor for a build that started at start.
func NewGranularityMonitor(start time.Time) *GranularityMonitor {
	return &GranularityMonitor{windowStart: start.Truncate(time.Second)}
}

// Notify records an observed mtime and reports whether it falls inside the
// build's time window.
func (m *GranularityMonitor) Notify(mtimeNanos int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mtimeNanos > m.maxMtime {
		m.maxMtime = mtimeNanos
	}
	stale := mtimeNanos >= m.windowStart.UnixNano()
	if stale {
		m.staleSeen = true
	}
	return stale
}

// StaleSeen reports whether any stat during this build observed an mtime
// inside the window. Callers use it to decide whether cached results may be
// trusted across builds.
func (m *GranularityMonitor) StaleSeen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.staleSeen
}

// MaxMtimeSeen returns the largest mtime observed so far, in Unix
// nanoseconds.
func (m *GranularityMonitor) MaxMtimeSeen() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxMtime
}
