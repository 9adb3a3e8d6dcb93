package fs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bjorndm/bazel/internal/adapters/fs"
)

func TestGranularityMonitor_Notify(t *testing.T) {
	start := time.Date(2026, 3, 14, 12, 0, 0, 500_000_000, time.UTC)
	monitor := fs.NewGranularityMonitor(start)

	// Before the truncated window start: trustworthy.
	before := start.Add(-2 * time.Second).UnixNano()
	require.False(t, monitor.Notify(before))
	require.False(t, monitor.StaleSeen())

	// Same second as the build start: the sub-second part may have been
	// dropped by the filesystem, so the mtime is suspect.
	sameTick := start.Truncate(time.Second).UnixNano()
	require.True(t, monitor.Notify(sameTick))
	require.True(t, monitor.StaleSeen())

	// After the window start: suspect too.
	after := start.Add(time.Second).UnixNano()
	require.True(t, monitor.Notify(after))
}

func TestGranularityMonitor_StaleSeenSticks(t *testing.T) {
	start := time.Now()
	monitor := fs.NewGranularityMonitor(start)

	require.True(t, monitor.Notify(start.UnixNano()))
	require.False(t, monitor.Notify(start.Add(-time.Hour).UnixNano()))

	// One suspect observation taints the whole build.
	require.True(t, monitor.StaleSeen())
}

func TestGranularityMonitor_MaxMtimeSeen(t *testing.T) {
	monitor := fs.NewGranularityMonitor(time.Now())
	require.Zero(t, monitor.MaxMtimeSeen())

	monitor.Notify(100)
	monitor.Notify(300)
	monitor.Notify(200)
	require.Equal(t, int64(300), monitor.MaxMtimeSeen())
}
