package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bjorndm/bazel/internal/adapters/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := config.Load(filepath.Join(t.TempDir(), "bazel.yaml"))
	require.NoError(t, err)
	require.Equal(t, config.DefaultSettings(), settings)
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bazel.yaml")
	content := `
digest:
  enabled: true
  minSize: 64
glob:
  poolWorkers: 10
  idleTimeout: 1s
evaluation:
  retainAst: true
  defaultVisibility: public
  parallelism: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, settings.Digest.Enabled)
	require.Equal(t, int64(64), settings.Digest.MinSize)
	require.Equal(t, 10, settings.Glob.PoolWorkers)
	require.Equal(t, time.Second, settings.Glob.IdleTimeout)
	require.True(t, settings.Evaluation.RetainAST)
	require.Equal(t, "public", settings.Evaluation.DefaultVisibility)
	require.Equal(t, 4, settings.Evaluation.Parallelism)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bazel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("glob:\n  poolWorkers: 2\n"), 0o600))

	settings, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, settings.Glob.PoolWorkers)
	require.Equal(t, 3*time.Second, settings.Glob.IdleTimeout)
	require.Equal(t, "private", settings.Evaluation.DefaultVisibility)
}

func TestLoad_RejectsNegativePoolWorkers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bazel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("glob:\n  poolWorkers: -1\n"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bazel.yaml")
	require.NoError(t, os.WriteFile(path, []byte("glob: [\n"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}
