package app_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bjorndm/bazel/internal/adapters/buildfile"
	"github.com/bjorndm/bazel/internal/app"
	"github.com/bjorndm/bazel/internal/core/ports"
	"github.com/bjorndm/bazel/internal/engine/glob"
	"github.com/bjorndm/bazel/internal/engine/packages"
)

type countingTelemetry struct {
	vertices atomic.Int32
	closed   atomic.Bool
}

func (c *countingTelemetry) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	c.vertices.Add(1)
	return ctx, nopVertex{}
}

func (c *countingTelemetry) Close() error {
	c.closed.Store(true)
	return nil
}

type nopVertex struct{}

func (nopVertex) Write(p []byte) (int, error) { return len(p), nil }
func (nopVertex) Done(error)                  {}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func writePackage(t *testing.T, build string, sources ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, s := range sources {
		abs := filepath.Join(dir, filepath.FromSlash(s))
		require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o750))
		require.NoError(t, os.WriteFile(abs, []byte(s), 0o600))
	}
	path := filepath.Join(dir, "BUILD")
	require.NoError(t, os.WriteFile(path, []byte(build), 0o600))
	return path
}

func newApp(t *testing.T, parallelism int) (*app.App, *countingTelemetry) {
	t.Helper()
	pool := glob.NewPool(8, time.Second)
	telemetry := &countingTelemetry{}
	parser := buildfile.NewParser([]string{"filegroup"})
	factory := packages.NewFactory(pool, parser, telemetry, nopLogger{})
	a := app.New(factory, pool, telemetry, nopLogger{}, parallelism)
	t.Cleanup(func() { _ = a.Close() })
	return a, telemetry
}

func TestApp_EvaluatePackages(t *testing.T) {
	a, telemetry := newApp(t, 4)

	requests := make([]app.PackageRequest, 3)
	for i := range requests {
		build := `
filegroup "srcs" {
  files = glob(["*.cc"])
}
`
		requests[i] = app.PackageRequest{
			Name:      fmt.Sprintf("pkg%d", i),
			BuildFile: writePackage(t, build, fmt.Sprintf("file%d.cc", i)),
		}
	}

	pkgs, err := a.EvaluatePackages(context.Background(), requests)
	require.NoError(t, err)
	require.Len(t, pkgs, 3)
	for i, pkg := range pkgs {
		require.Equal(t, fmt.Sprintf("pkg%d", i), pkg.Name)
		require.False(t, pkg.ContainsErrors)
		rule, ok := pkg.Rule("srcs")
		require.True(t, ok)
		require.Equal(t, []any{fmt.Sprintf("file%d.cc", i)}, rule.Attrs["files"])
	}
	require.EqualValues(t, 3, telemetry.vertices.Load())
}

func TestApp_EvaluatePackagesKeepsErroneousPackages(t *testing.T) {
	a, _ := newApp(t, 2)

	good := writePackage(t, `filegroup "ok" {}`)
	bad := writePackage(t, `mystery_rule "x" {}`)

	pkgs, err := a.EvaluatePackages(context.Background(), []app.PackageRequest{
		{Name: "good", BuildFile: good},
		{Name: "bad", BuildFile: bad},
	})
	require.NoError(t, err)
	require.False(t, pkgs[0].ContainsErrors)
	require.True(t, pkgs[1].ContainsErrors)
}

func TestApp_EvaluatePackagesMissingBuildFileFails(t *testing.T) {
	a, _ := newApp(t, 2)

	pkgs, err := a.EvaluatePackages(context.Background(), []app.PackageRequest{
		{Name: "gone", BuildFile: filepath.Join(t.TempDir(), "BUILD")},
	})
	require.Error(t, err)
	require.Nil(t, pkgs)
}

func TestApp_EvaluatePackagesHonoursCancellation(t *testing.T) {
	a, _ := newApp(t, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writePackage(t, `filegroup "srcs" {}`)
	_, err := a.EvaluatePackages(ctx, []app.PackageRequest{{Name: "p", BuildFile: path}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestApp_CloseFlushesTelemetry(t *testing.T) {
	pool := glob.NewPool(2, time.Second)
	telemetry := &countingTelemetry{}
	parser := buildfile.NewParser([]string{"filegroup"})
	factory := packages.NewFactory(pool, parser, telemetry, nopLogger{})
	a := app.New(factory, pool, telemetry, nopLogger{}, 1)

	require.NoError(t, a.Close())
	require.True(t, telemetry.closed.Load())
}
