// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Mapping is a nested string-keyed configuration mapping. Values are scalars
// (string, int, bool, float64 from JSON numbers) or further Mappings.
type Mapping = map[string]any

// Well-known default locations for the config file and config directory.
// A missing default path contributes an empty mapping instead of an error.
// These are variables only so tests can point them at scratch directories;
// the package itself never modifies them.
var (
	DefaultConfFile = "/etc/medallion/medallion.conf"
	DefaultConfDir  = "/etc/medallion/medallion.d"
)

type loader struct {
	confFile    string
	confDir     string
	confFileSet bool
	confDirSet  bool
	noConfFile  bool
	noConfDir   bool
	environ     map[string]string
}

// Option adjusts which sources [Load] draws from.
type Option func(*loader)

// WithConfFile makes Load read the config file at path. Unless path equals
// [DefaultConfFile], its absence is a *NotFoundError.
func WithConfFile(path string) Option {
	return func(l *loader) {
		l.confFile = path
		l.confFileSet = true
		l.noConfFile = false
	}
}

// WithConfDir makes Load read config files from dir. Unless dir equals
// [DefaultConfDir], its absence is a *NotFoundError.
func WithConfDir(dir string) Option {
	return func(l *loader) {
		l.confDir = dir
		l.confDirSet = true
		l.noConfDir = false
	}
}

// WithoutConfFile suppresses the config-file source entirely.
func WithoutConfFile() Option {
	return func(l *loader) {
		l.noConfFile = true
		l.confFileSet = false
	}
}

// WithoutConfDir suppresses the config-dir source entirely.
func WithoutConfDir() Option {
	return func(l *loader) {
		l.noConfDir = true
		l.confDirSet = false
	}
}

// WithEnviron makes Load scan env instead of the process environment. Passing
// an empty map disables the environment source.
func WithEnviron(env map[string]string) Option {
	return func(l *loader) {
		l.environ = env
	}
}

// Load resolves the server configuration from the config file, the config
// directory, and the environment, in that order, deep-merging later sources
// over earlier ones. With no options it reads [DefaultConfFile],
// [DefaultConfDir], and the process environment.
//
// Safe for concurrent use: each call reads its sources and returns a fresh
// mapping without touching shared state.
func Load(opts ...Option) (Mapping, error) {
	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	merged, err := l.loadFileSources()
	if err != nil {
		return nil, err
	}

	envConf, err := FromEnviron(l.snapshotEnviron())
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if merged, err = deepMerge(merged, envConf.AsMap()); err != nil {
		return nil, err
	}

	return flattenBackend(merged), nil
}

// loadFileSources merges the config-file and config-dir contributions, with
// the directory taking precedence on key collisions.
func (l *loader) loadFileSources() (Mapping, error) {
	merged := Mapping{}

	confFile, useFile := l.resolveSource(l.confFile, l.confFileSet, l.noConfFile, DefaultConfFile)
	if useFile {
		fileConf, err := loadConfFile(confFile)
		switch {
		case err == nil:
			if merged, err = deepMerge(merged, fileConf); err != nil {
				return nil, err
			}
		case errors.Is(err, fs.ErrNotExist):
			if confFile != DefaultConfFile {
				return nil, &NotFoundError{Path: confFile}
			}
			// Missing default file: empty contribution.
		default:
			return nil, err
		}
	}

	confDir, useDir := l.resolveSource(l.confDir, l.confDirSet, l.noConfDir, DefaultConfDir)
	if useDir {
		dirConf, err := loadConfDir(confDir)
		switch {
		case err == nil:
			if merged, err = deepMerge(merged, dirConf); err != nil {
				return nil, err
			}
		case errors.Is(err, fs.ErrNotExist):
			if confDir != DefaultConfDir {
				return nil, &NotFoundError{Path: confDir}
			}
		default:
			return nil, err
		}
	}

	return merged, nil
}

// resolveSource picks the effective path for one source and whether the
// source participates at all.
func (l *loader) resolveSource(path string, set, suppressed bool, def string) (string, bool) {
	if suppressed {
		return "", false
	}
	if !set {
		return def, true
	}

	return path, true
}

// snapshotEnviron returns the environment mapping to scan: the caller-supplied
// one when set, otherwise a snapshot of the process environment.
func (l *loader) snapshotEnviron() map[string]string {
	if l.environ != nil {
		return l.environ
	}

	environ := os.Environ()
	snapshot := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok {
			snapshot[k] = v
		}
	}

	return snapshot
}
