// Package config provides the configuration loader for the evaluator.
package config

import (
	"os"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up in the workspace root.
const DefaultFilename = "bazel.yaml"

// Settings holds the tunables read from bazel.yaml. Missing keys keep their
// defaults, and a missing file yields DefaultSettings entirely.
type Settings struct {
	Digest     DigestSettings     `yaml:"digest"`
	Glob       GlobSettings       `yaml:"glob"`
	Evaluation EvaluationSettings `yaml:"evaluation"`
}

// DigestSettings controls when file content is digested instead of relying
// on mtimes.
type DigestSettings struct {
	Enabled bool  `yaml:"enabled"`
	MinSize int64 `yaml:"minSize"`
}

// GlobSettings sizes the shared glob worker pool.
type GlobSettings struct {
	PoolWorkers int           `yaml:"poolWorkers"`
	IdleTimeout time.Duration `yaml:"idleTimeout"`
}

// EvaluationSettings controls package evaluation behavior.
type EvaluationSettings struct {
	// RetainAST keeps the parsed build file attached to the package for
	// later queries instead of discarding it after evaluation.
	RetainAST bool `yaml:"retainAst"`

	DefaultVisibility string `yaml:"defaultVisibility"`

	// Parallelism caps the number of packages evaluated concurrently.
	Parallelism int `yaml:"parallelism"`
}

// DefaultSettings returns the settings used when no configuration file is
// present.
func DefaultSettings() *Settings {
	return &Settings{
		Digest: DigestSettings{Enabled: true, MinSize: 1},
		Glob: GlobSettings{
			PoolWorkers: 100,
			IdleTimeout: 3 * time.Second,
		},
		Evaluation: EvaluationSettings{
			DefaultVisibility: "private",
			Parallelism:       8,
		},
	}
}

// Load reads a configuration file from the given path. A missing file is not
// an error; the defaults are returned instead.
func Load(path string) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, zerr.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}
	return settings.normalize()
}

func (s *Settings) normalize() (*Settings, error) {
	defaults := DefaultSettings()
	if s.Glob.PoolWorkers < 0 {
		return nil, zerr.New("glob poolWorkers must not be negative")
	}
	if s.Glob.PoolWorkers == 0 {
		s.Glob.PoolWorkers = defaults.Glob.PoolWorkers
	}
	if s.Glob.IdleTimeout <= 0 {
		s.Glob.IdleTimeout = defaults.Glob.IdleTimeout
	}
	if s.Digest.MinSize <= 0 {
		s.Digest.MinSize = defaults.Digest.MinSize
	}
	if s.Evaluation.Parallelism <= 0 {
		s.Evaluation.Parallelism = defaults.Evaluation.Parallelism
	}
	if s.Evaluation.DefaultVisibility == "" {
		s.Evaluation.DefaultVisibility = defaults.Evaluation.DefaultVisibility
	}
	return s, nil
}
