// Package packages implements the package evaluation pipeline: one cheap
// warm-up pass over a build script to seed the glob cache in the background,
// then the authoritative pass that constructs the package declaration.
package packages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/zerr"

	"github.com/bjorndm/bazel/internal/adapters/diagnostics"
	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
	"github.com/bjorndm/bazel/internal/engine/glob"
)

// Factory evaluates build files into packages. One factory serves the whole
// build; each CreatePackage call owns a fresh glob cache scoped to that
// evaluation.
type Factory struct {
	pool   *glob.Pool
	parser ports.ScriptParser

	// preprocessor is the optional upstream macro-expansion stage; nil
	// disables preprocessing.
	preprocessor ports.Preprocessor

	telemetry ports.Telemetry
	log       ports.Logger

	defaultVisibility string
	retainAST         bool
}

// Option configures a Factory.
type Option func(*Factory)

// WithPreprocessor installs the macro-preprocessing stage.
func WithPreprocessor(p ports.Preprocessor) Option {
	return func(f *Factory) { f.preprocessor = p }
}

// WithDefaultVisibility sets the visibility packages start from when their
// build file declares none.
func WithDefaultVisibility(v string) Option {
	return func(f *Factory) { f.defaultVisibility = v }
}

// WithRetainAST keeps the parsed syntax tree attached to produced packages.
func WithRetainAST() Option {
	return func(f *Factory) { f.retainAST = true }
}

// NewFactory creates a package factory.
func NewFactory(pool *glob.Pool, parser ports.ScriptParser, telemetry ports.Telemetry, log ports.Logger, opts ...Option) *Factory {
	f := &Factory{
		pool:      pool,
		parser:    parser,
		telemetry: telemetry,
		log:       log,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreatePackage evaluates the build file at buildFilePath into the named
// package. It always returns a best-effort package, flagged with
// ContainsErrors when anything went wrong; the error return is reserved for
// cancellation and for failures reading the build file itself.
func (f *Factory) CreatePackage(ctx context.Context, name, buildFilePath string) (*domain.Package, error) {
	ctx, vertex := f.telemetry.Record(ctx, "evaluate //"+name)
	pkg, err := f.createPackage(ctx, name, buildFilePath)
	vertex.Done(err)
	return pkg, err
}

func (f *Factory) createPackage(ctx context.Context, name, buildFilePath string) (*domain.Package, error) {
	builder := domain.NewPackageBuilder(name, buildFilePath)
	builder.SetDefaultVisibility(f.defaultVisibility)

	if err := domain.ValidatePackageName(name); err != nil {
		builder.AddEvent(domain.ErrorEvent(domain.Position{File: buildFilePath},
			fmt.Sprintf("invalid package name '%s': %s", name, err.Error())))
		builder.SetContainsErrors()
	}

	src, err := os.ReadFile(buildFilePath) //nolint:gosec // Build file path comes from the dependency graph
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read build file"), "path", buildFilePath)
	}

	cache := glob.NewCache(filepath.Dir(buildFilePath), f.pool)
	// Background expansions never outlive this evaluation.
	defer cache.AwaitPending()

	src, preprocessed := f.preprocess(src, name, cache, builder)

	// Parse once; the recorded diagnostics replay into the authoritative
	// pass so both passes see identical state.
	parseSink := diagnostics.NewStored()
	script := f.parser.Parse(src, buildFilePath, parseSink)

	// Prefetch pass: same script, async glob binding, throwaway output.
	// Redundant when the preprocessor already expanded every glob eagerly.
	if !preprocessed {
		if err := f.prefetch(ctx, script, cache, name, buildFilePath); err != nil {
			return nil, err
		}
	}

	f.authoritative(ctx, script, cache, parseSink, builder)

	if ctx.Err() != nil {
		return nil, zerr.Wrap(ctx.Err(), "package evaluation cancelled")
	}
	return builder.Build(), nil
}

// preprocess runs the optional macro-expansion stage. Its failure marks the
// package erroneous but does not abort: the unexpanded source still parses.
func (f *Factory) preprocess(src []byte, name string, cache *glob.Cache, builder *domain.PackageBuilder) ([]byte, bool) {
	if f.preprocessor == nil {
		return src, false
	}
	sink := builderSink{builder: builder}
	result, err := f.preprocessor.Preprocess(src, name, cache, sink)
	if err != nil {
		builder.AddEvent(domain.ErrorEvent(domain.Position{File: builder.BuildFile()},
			"preprocessing failed: "+err.Error()))
		builder.SetContainsErrors()
		return src, false
	}
	return result.Source, result.Preprocessed
}

// prefetch executes the script once purely to schedule glob expansions in
// the background. On cancellation the cache's pending work is cancelled and
// awaited before the error propagates, so no task leaks past this call.
func (f *Factory) prefetch(ctx context.Context, script ports.Script, cache *glob.Cache, name, buildFilePath string) error {
	script.Exec(ctx, ports.ExecEnv{
		Globber: cache,
		Async:   true,
		Sink:    diagnostics.Discard{},
		Builder: domain.NewPackageBuilder(name, buildFilePath),
	})
	if err := ctx.Err(); err != nil {
		cache.CancelPending()
		cache.AwaitPending()
		return zerr.Wrap(err, "package evaluation cancelled")
	}
	return nil
}

// authoritative executes the script with the synchronous glob binding,
// served from the warmed cache, and full rule construction.
func (f *Factory) authoritative(ctx context.Context, script ports.Script, cache *glob.Cache, parseSink *diagnostics.Stored, builder *domain.PackageBuilder) {
	sink := builderSink{builder: builder}
	parseSink.Replay(sink)
	if parseSink.HasErrors() {
		builder.SetContainsErrors()
	}

	if !script.CheckBuiltinShadowing(sink) {
		builder.SetContainsErrors()
	}

	if !script.Exec(ctx, ports.ExecEnv{
		Globber: cache,
		Async:   false,
		Sink:    sink,
		Builder: builder,
	}) {
		builder.SetContainsErrors()
	}

	if f.retainAST {
		builder.SetAST(script.AST())
	}
}

// builderSink attaches events to the package under construction and flags
// it erroneous on error-severity events.
type builderSink struct {
	builder *domain.PackageBuilder
}

func (s builderSink) Handle(event domain.Event) {
	s.builder.AddEvent(event)
	if event.Severity == domain.SeverityError {
		s.builder.SetContainsErrors()
	}
}
