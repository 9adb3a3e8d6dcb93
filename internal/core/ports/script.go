package ports

import (
	"context"

	"github.com/bjorndm/bazel/internal/core/domain"
)

// Globber is the filesystem-query surface bound into a build script. All
// filesystem side effects of script execution are funneled through it, which
// is what makes re-running a script for cache warm-up safe to discard.
type Globber interface {
	// Glob synchronously expands the patterns and returns sorted,
	// deduplicated package-relative paths.
	Glob(ctx context.Context, include, exclude []string, excludeDirs bool) ([]string, error)

	// GlobAsync validates the patterns and schedules the expansion on the
	// shared worker pool, returning immediately.
	GlobAsync(include, exclude []string, excludeDirs bool) error
}

// ExecEnv is the binding environment for one execution pass of a build
// script.
type ExecEnv struct {
	// Globber serves glob calls for this pass.
	Globber Globber

	// Async selects the prefetch binding: glob calls are scheduled in the
	// background and return empty results.
	Async bool

	// Sink receives diagnostics from this pass.
	Sink Sink

	// Builder is the package under construction. The prefetch pass hands
	// in a throwaway builder whose output is discarded entirely.
	Builder *domain.PackageBuilder
}

// Script is one parsed build file, ready to be executed any number of
// times with different bindings.
//
//go:generate go run go.uber.org/mock/mockgen -source=script.go -destination=mocks/mock_script.go -package=mocks
type Script interface {
	// HasParseErrors reports whether parsing produced errors. A script
	// with parse errors still executes its well-formed statements.
	HasParseErrors() bool

	// CheckBuiltinShadowing reports assignment statements that would
	// shadow a built-in declaration function to the sink. It returns
	// false when any shadowing was found.
	CheckBuiltinShadowing(sink Sink) bool

	// Exec runs the script's statements against the environment. It
	// returns false when execution reported errors or was cancelled;
	// cancellation is cooperative, checked at statement boundaries.
	Exec(ctx context.Context, env ExecEnv) bool

	// AST returns the retained syntax tree for callers that requested it.
	AST() any
}

// ScriptParser turns build file text into an executable Script. Parse never
// fails: syntax problems are reported to the sink and recorded on the
// returned script.
type ScriptParser interface {
	Parse(src []byte, filename string, sink Sink) Script
}

// PreprocessResult is the outcome of the optional macro-preprocessing stage.
type PreprocessResult struct {
	// Source is the script text seen by the parser.
	Source []byte

	// Preprocessed reports that preprocessing ran and eagerly expanded
	// all globs, making the prefetch pass redundant.
	Preprocessed bool
}

// Preprocessor is the optional upstream macro-expansion stage. Errors it
// reports through the sink mark the package erroneous without aborting
// evaluation.
type Preprocessor interface {
	Preprocess(src []byte, pkgName string, globber Globber, sink Sink) (PreprocessResult, error)
}
