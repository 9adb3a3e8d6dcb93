// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/bjorndm/bazel/internal/adapters/buildfile"
	_ "github.com/bjorndm/bazel/internal/adapters/config"
	_ "github.com/bjorndm/bazel/internal/adapters/fs"
	_ "github.com/bjorndm/bazel/internal/adapters/logger"
	_ "github.com/bjorndm/bazel/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "github.com/bjorndm/bazel/internal/app"
	_ "github.com/bjorndm/bazel/internal/engine/glob"
	_ "github.com/bjorndm/bazel/internal/engine/packages"
)
