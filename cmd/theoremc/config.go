package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

const configFileName = "theoremc.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
	meta   toml.MetaData
}

type projectConfig struct {
	Check    checkConfig    `toml:"check"`
	Identity identityConfig `toml:"identity"`
	Output   outputConfig   `toml:"output"`
}

type checkConfig struct {
	Jobs           int      `toml:"jobs" validate:"gte=0"`
	Mode           string   `toml:"mode" validate:"omitempty,oneof=fail-fast collect-all"`
	Extensions     []string `toml:"extensions" validate:"omitempty,dive,min=1"`
	MaxDiagnostics int      `toml:"max_diagnostics" validate:"gte=0"`
}

type identityConfig struct {
	Aliases string `toml:"aliases" validate:"omitempty,min=1"`
}

type outputConfig struct {
	Format string `toml:"format" validate:"omitempty,oneof=pretty short json"`
	Color  string `toml:"color" validate:"omitempty,oneof=auto on off"`
	Lang   string `toml:"lang" validate:"omitempty,min=2"`
}

var configValidator = validator.New(validator.WithRequiredStructEnabled())

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadManifest reads the config named by path, or the nearest
// theoremc.toml above the working directory when path is empty. A missing
// file is not an error unless it was named explicitly.
func loadManifest(path string) (*projectManifest, error) {
	if path == "" {
		found, ok, err := findConfig(".")
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	cfg, meta, err := loadProjectConfig(path)
	if err != nil {
		return nil, err
	}
	root, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return &projectManifest{Path: path, Root: root, Config: cfg, meta: meta}, nil
}

func loadProjectConfig(path string) (projectConfig, toml.MetaData, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, meta, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return projectConfig{}, meta, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := configValidator.Struct(cfg); err != nil {
		return projectConfig{}, meta, fmt.Errorf("%s: invalid config: %w", path, describeValidation(err))
	}
	return cfg, meta, nil
}

func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "projectConfig.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s fails %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// defined reports whether the config file sets key explicitly.
func (m *projectManifest) defined(key ...string) bool {
	return m != nil && m.meta.IsDefined(key...)
}

// resolve makes a path from the config relative to the config's directory.
func (m *projectManifest) resolve(p string) string {
	if m == nil || p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(m.Root, filepath.FromSlash(p))
}

type manifestKey struct{}

func withManifest(ctx context.Context, m *projectManifest) context.Context {
	return context.WithValue(ctx, manifestKey{}, m)
}

func manifestFrom(ctx context.Context) *projectManifest {
	if ctx == nil {
		return nil
	}
	m, _ := ctx.Value(manifestKey{}).(*projectManifest)
	return m
}
