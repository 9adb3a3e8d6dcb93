// Package app implements the application layer: concurrent package
// evaluation over the engine, composed through graft.
package app

import (
	"context"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"

	"github.com/bjorndm/bazel/internal/core/domain"
	"github.com/bjorndm/bazel/internal/core/ports"
	"github.com/bjorndm/bazel/internal/engine/glob"
	"github.com/bjorndm/bazel/internal/engine/packages"
)

// App drives package evaluation for one build.
type App struct {
	factory     *packages.Factory
	pool        *glob.Pool
	telemetry   ports.Telemetry
	log         ports.Logger
	parallelism int
}

// New creates an App evaluating at most parallelism packages concurrently.
func New(factory *packages.Factory, pool *glob.Pool, telemetry ports.Telemetry, log ports.Logger, parallelism int) *App {
	if parallelism < 1 {
		parallelism = 1
	}
	return &App{
		factory:     factory,
		pool:        pool,
		telemetry:   telemetry,
		log:         log,
		parallelism: parallelism,
	}
}

// PackageRequest names one package to evaluate.
type PackageRequest struct {
	// Name is the package name, e.g. "server/handlers".
	Name string

	// BuildFile is the path of the package's build file.
	BuildFile string
}

// EvaluatePackages evaluates the requested packages concurrently and returns
// them in request order. A package that contains errors is still returned;
// only cancellation and infrastructure failures (an unreadable build file)
// abort the whole evaluation.
func (a *App) EvaluatePackages(ctx context.Context, requests []PackageRequest) ([]*domain.Package, error) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(a.parallelism)

	results := make([]*domain.Package, len(requests))
	for i, req := range requests {
		group.Go(func() error {
			pkg, err := a.factory.CreatePackage(ctx, req.Name, req.BuildFile)
			if err != nil {
				return zerr.With(err, "package", req.Name)
			}
			if pkg.ContainsErrors {
				a.log.Warn("package " + req.Name + " contains errors")
			}
			results[i] = pkg
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close drains the shared worker pool and flushes the telemetry session.
func (a *App) Close() error {
	a.pool.Close()
	return a.telemetry.Close()
}
