package packages_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bjorndm/bazel/internal/adapters/buildfile"
	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
	"github.com/bjorndm/bazel/internal/core/ports/mocks"
	"github.com/bjorndm/bazel/internal/engine/glob"
	"github.com/bjorndm/bazel/internal/engine/packages"
)

type nopTelemetry struct{}

func (nopTelemetry) Record(ctx context.Context, name string) (context.Context, ports.Vertex) {
	return ctx, nopVertex{}
}
func (nopTelemetry) Close() error { return nil }

type nopVertex struct{}

func (nopVertex) Write(p []byte) (int, error) { return len(p), nil }
func (nopVertex) Done(error)                  {}

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func newPool(t *testing.T) *glob.Pool {
	t.Helper()
	pool := glob.NewPool(4, time.Second)
	t.Cleanup(pool.Close)
	return pool
}

// writeBuildFile lays out a package directory with a BUILD file and source
// files, returning the BUILD file path.
func writeBuildFile(t *testing.T, build string, sources ...string) string {
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

func realFactory(t *testing.T, opts ...packages.Option) *packages.Factory {
	t.Helper()
	parser := buildfile.NewParser([]string{"filegroup", "genrule"})
	return packages.NewFactory(newPool(t), parser, nopTelemetry{}, nopLogger{}, opts...)
}

func TestFactory_CreatePackage(t *testing.T) {
	build := `
package {
  default_visibility = "public"
}

filegroup "srcs" {
  files = glob(["**/*.cc"], ["gen/**"])
}

genrule "gen" {
  cmd = "tool ${package_name}"
}
`
	path := writeBuildFile(t, build, "a.cc", "sub/b.cc", "gen/skip.cc", "note.txt")

	factory := realFactory(t)
	pkg, err := factory.CreatePackage(context.Background(), "demo/lib", path)
	require.NoError(t, err)
	require.False(t, pkg.ContainsErrors)
	require.Equal(t, "demo/lib", pkg.Name)
	require.Equal(t, "public", pkg.DefaultVisibility)

	srcs, ok := pkg.Rule("srcs")
	require.True(t, ok)
	// The prefetch pass warmed the cache in the background; the
	// authoritative pass must see the full expansion regardless.
	require.Equal(t, []any{"a.cc", "sub/b.cc"}, srcs.Attrs["files"])

	gen, ok := pkg.Rule("gen")
	require.True(t, ok)
	require.Equal(t, "tool demo/lib", gen.Attrs["cmd"])
}

func TestFactory_DefaultVisibilityOption(t *testing.T) {
	path := writeBuildFile(t, `filegroup "srcs" {}`)

	factory := realFactory(t, packages.WithDefaultVisibility("private"))
	pkg, err := factory.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.Equal(t, "private", pkg.DefaultVisibility)
}

func TestFactory_InvalidPackageName(t *testing.T) {
	path := writeBuildFile(t, `filegroup "srcs" {}`)

	factory := realFactory(t)
	pkg, err := factory.CreatePackage(context.Background(), "bad//name", path)
	require.NoError(t, err)
	require.True(t, pkg.ContainsErrors)
	// Evaluation still ran.
	require.Len(t, pkg.Rules, 1)
}

func TestFactory_BuiltinShadowingFlagsPackage(t *testing.T) {
	build := `
glob = "shadowed"
filegroup "srcs" {}
`
	path := writeBuildFile(t, build)

	factory := realFactory(t)
	pkg, err := factory.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.True(t, pkg.ContainsErrors)
	require.NotEmpty(t, pkg.Events)
}

func TestFactory_ParseErrorsFlagPackage(t *testing.T) {
	path := writeBuildFile(t, `filegroup "broken" {`)

	factory := realFactory(t)
	pkg, err := factory.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.True(t, pkg.ContainsErrors)
	require.NotEmpty(t, pkg.Events)
}

func TestFactory_MissingBuildFile(t *testing.T) {
	factory := realFactory(t)
	_, err := factory.CreatePackage(context.Background(), "demo", filepath.Join(t.TempDir(), "BUILD"))
	require.Error(t, err)
}

func TestFactory_RetainAST(t *testing.T) {
	path := writeBuildFile(t, `filegroup "srcs" {}`)

	withAST := realFactory(t, packages.WithRetainAST())
	pkg, err := withAST.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.NotNil(t, pkg.AST)

	withoutAST := realFactory(t)
	pkg, err = withoutAST.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.Nil(t, pkg.AST)
}

func TestFactory_PrefetchRunsBothPasses(t *testing.T) {
	ctrl := gomock.NewController(t)
	parser := mocks.NewMockScriptParser(ctrl)
	script := mocks.NewMockScript(ctrl)
	path := writeBuildFile(t, `ignored`)

	parser.EXPECT().Parse(gomock.Any(), path, gomock.Any()).Return(script)
	script.EXPECT().CheckBuiltinShadowing(gomock.Any()).Return(true)
	script.EXPECT().AST().Return(nil).AnyTimes()

	var asyncFlags []bool
	script.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, env ports.ExecEnv) bool {
			asyncFlags = append(asyncFlags, env.Async)
			return true
		}).Times(2)

	factory := packages.NewFactory(newPool(t), parser, nopTelemetry{}, nopLogger{})
	pkg, err := factory.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.False(t, pkg.ContainsErrors)

	// Prefetch with the async binding first, then the authoritative pass.
	require.Equal(t, []bool{true, false}, asyncFlags)
}

func TestFactory_PrefetchSkippedWhenPreprocessed(t *testing.T) {
	ctrl := gomock.NewController(t)
	parser := mocks.NewMockScriptParser(ctrl)
	script := mocks.NewMockScript(ctrl)
	pre := mocks.NewMockPreprocessor(ctrl)
	path := writeBuildFile(t, `raw`)

	expanded := []byte("expanded")
	pre.EXPECT().Preprocess(gomock.Any(), "demo", gomock.Any(), gomock.Any()).
		Return(ports.PreprocessResult{Source: expanded, Preprocessed: true}, nil)

	parser.EXPECT().Parse(expanded, path, gomock.Any()).Return(script)
	script.EXPECT().CheckBuiltinShadowing(gomock.Any()).Return(true)

	// Exactly one execution: the authoritative pass.
	script.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, env ports.ExecEnv) bool {
			require.False(t, env.Async)
			return true
		}).Times(1)

	factory := packages.NewFactory(newPool(t), parser, nopTelemetry{}, nopLogger{},
		packages.WithPreprocessor(pre))
	pkg, err := factory.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.False(t, pkg.ContainsErrors)
}

func TestFactory_PreprocessorFailureFlagsPackage(t *testing.T) {
	ctrl := gomock.NewController(t)
	pre := mocks.NewMockPreprocessor(ctrl)
	path := writeBuildFile(t, `filegroup "srcs" {}`)

	pre.EXPECT().Preprocess(gomock.Any(), "demo", gomock.Any(), gomock.Any()).
		Return(ports.PreprocessResult{}, errors.New("macro exploded"))

	parser := buildfile.NewParser([]string{"filegroup"})
	factory := packages.NewFactory(newPool(t), parser, nopTelemetry{}, nopLogger{},
		packages.WithPreprocessor(pre))

	// The original source still evaluates; the package is flagged.
	pkg, err := factory.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.True(t, pkg.ContainsErrors)
	require.Len(t, pkg.Rules, 1)
}

func TestFactory_CancellationDuringPrefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	parser := mocks.NewMockScriptParser(ctrl)
	script := mocks.NewMockScript(ctrl)
	path := writeBuildFile(t, `ignored`)

	ctx, cancel := context.WithCancel(context.Background())

	parser.EXPECT().Parse(gomock.Any(), path, gomock.Any()).Return(script)
	// Cancellation arrives while the prefetch pass is executing; the
	// authoritative pass must never start.
	script.EXPECT().Exec(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, env ports.ExecEnv) bool {
			require.True(t, env.Async)
			require.NoError(t, env.Globber.GlobAsync([]string{"*"}, nil, true))
			cancel()
			return false
		}).Times(1)

	factory := packages.NewFactory(newPool(t), parser, nopTelemetry{}, nopLogger{})
	pkg, err := factory.CreatePackage(ctx, "demo", path)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, pkg)
}

func TestFactory_PrefetchTransparent(t *testing.T) {
	build := `
filegroup "srcs" {
  files = glob(["**/*.cc"], ["gen/**"])
}
`
	path := writeBuildFile(t, build, "a.cc", "sub/b.cc", "gen/skip.cc")

	withPrefetch := realFactory(t)
	warmed, err := withPrefetch.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)

	// A preprocessor that reports eager glob expansion makes the factory
	// skip the prefetch pass entirely.
	ctrl := gomock.NewController(t)
	pre := mocks.NewMockPreprocessor(ctrl)
	pre.EXPECT().Preprocess(gomock.Any(), "demo", gomock.Any(), gomock.Any()).DoAndReturn(
		func(src []byte, _ string, _ ports.Globber, _ ports.Sink) (ports.PreprocessResult, error) {
			return ports.PreprocessResult{Source: src, Preprocessed: true}, nil
		})
	cold := realFactory(t, packages.WithPreprocessor(pre))
	direct, err := cold.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)

	require.Equal(t, warmed, direct)
}

func TestFactory_ParseEventsReplayedIntoPackage(t *testing.T) {
	ctrl := gomock.NewController(t)
	parser := mocks.NewMockScriptParser(ctrl)
	script := mocks.NewMockScript(ctrl)
	path := writeBuildFile(t, `ignored`)

	warning := domain.WarningEvent(domain.Position{File: path, Line: 1}, "odd but legal")
	parser.EXPECT().Parse(gomock.Any(), path, gomock.Any()).DoAndReturn(
		func(_ []byte, _ string, sink ports.Sink) ports.Script {
			sink.Handle(warning)
			return script
		})
	script.EXPECT().CheckBuiltinShadowing(gomock.Any()).Return(true)
	script.EXPECT().Exec(gomock.Any(), gomock.Any()).Return(true).Times(2)

	factory := packages.NewFactory(newPool(t), parser, nopTelemetry{}, nopLogger{})
	pkg, err := factory.CreatePackage(context.Background(), "demo", path)
	require.NoError(t, err)
	require.False(t, pkg.ContainsErrors)
	require.Equal(t, []domain.Event{warning}, pkg.Events)
}
