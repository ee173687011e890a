// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config resolves and validates the settings of a copy or restore run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 🚨 Configuration errors. Any of these aborts a run before the file system is touched.
var (
	ErrInvalidMode    = errors.Base("invalid mode")
	ErrSourceNotFound = errors.Base("source path does not exist")
	ErrMissingPath    = errors.Base("missing path")
	ErrUnknownPreset  = errors.Base("unknown preset")
	ErrInvalidSuffix  = errors.Base("invalid suffix")
)

// 🎯 Mode selects which operation a run performs
type Mode string

const (
	ModeCopy    Mode = "copy"
	ModeRestore Mode = "restore"
)

// ParseMode accepts the mode names and the menu numbers "1" (copy) and "2" (restore).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", string(ModeCopy):
		return ModeCopy, nil
	case "2", string(ModeRestore):
		return ModeRestore, nil
	default:
		return "", errors.Errorf("%w: %q (choose 1/copy or 2/restore)", ErrInvalidMode, s)
	}
}

const (
	// DefaultSuffix tags copied text-like files
	DefaultSuffix = "_aprilxx"
	// DestinationSuffix is appended to a menu-selected source to name its destination
	DestinationSuffix = "_X"
)

// DefaultIgnoreDirs are the build and tooling directories skipped by a copy.
var DefaultIgnoreDirs = []string{
	".git", ".vs", ".vscode", ".ide", "build", "CMake-build",
	"Depends", "RDNet", "x64", "x86", "EZUITools",
}

// DefaultMarkerExtensions are always treated as text regardless of content.
var DefaultMarkerExtensions = []string{".idx"}

// 📚 Config holds everything a run needs
type Config struct {
	Mode             Mode              `json:"mode,omitempty" yaml:"mode,omitempty" hcl:"mode,optional"`
	Source           string            `json:"source,omitempty" yaml:"source,omitempty" hcl:"source,optional"`
	Destination      string            `json:"destination,omitempty" yaml:"destination,omitempty" hcl:"destination,optional"`
	RestoreTarget    string            `json:"restore_target,omitempty" yaml:"restore_target,omitempty" hcl:"restore_target,optional"`
	SourceRoot       string            `json:"source_root,omitempty" yaml:"source_root,omitempty" hcl:"source_root,optional"`
	Presets          map[string]string `json:"presets,omitempty" yaml:"presets,omitempty" hcl:"presets,optional"`
	IgnoreDirs       []string          `json:"ignore_dirs,omitempty" yaml:"ignore_dirs,omitempty" hcl:"ignore_dirs,optional"`
	Suffix           string            `json:"suffix,omitempty" yaml:"suffix,omitempty" hcl:"suffix,optional"`
	MarkerExtensions []string          `json:"marker_extensions,omitempty" yaml:"marker_extensions,omitempty" hcl:"marker_extensions,optional"`

	location string
}

// 🏭 Default returns a config populated with the built-in defaults
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills every unset field with its default value.
func (cfg *Config) ApplyDefaults() {
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if cfg.IgnoreDirs == nil {
		cfg.IgnoreDirs = append([]string(nil), DefaultIgnoreDirs...)
	}
	if cfg.MarkerExtensions == nil {
		cfg.MarkerExtensions = append([]string(nil), DefaultMarkerExtensions...)
	}
	if cfg.RestoreTarget == "" {
		cfg.RestoreTarget = "."
	}
	if cfg.Presets == nil {
		cfg.Presets = map[string]string{
			"Upstream":  "Upstream",
			"MantiSoft": "MantiSoft",
		}
	}
}

// Location returns the file the config was loaded from, if any.
func (cfg *Config) Location() string {
	return cfg.location
}

// PresetNames returns the preset names in a stable order.
func (cfg *Config) PresetNames() []string {
	names := make([]string, 0, len(cfg.Presets))
	for name := range cfg.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// 📂 PresetSource resolves a preset name to its directory under SourceRoot
func (cfg *Config) PresetSource(name string) (string, error) {
	dir, ok := cfg.Presets[name]
	if !ok {
		return "", errors.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	return filepath.Join(cfg.SourceRoot, dir), nil
}

// DefaultDestination names the sibling directory a source is copied to when
// no destination is given.
func DefaultDestination(source string) string {
	return filepath.Clean(source) + DestinationSuffix
}

// 🔍 Validate checks the config for the selected mode and cleans its paths
func (cfg *Config) Validate() error {
	mode, err := ParseMode(string(cfg.Mode))
	if err != nil {
		return err
	}
	cfg.Mode = mode
	if cfg.Suffix == "" || strings.ContainsAny(cfg.Suffix, `/\`) {
		return errors.Errorf("%w: %q", ErrInvalidSuffix, cfg.Suffix)
	}

	switch cfg.Mode {
	case ModeCopy:
		if cfg.Source == "" {
			return errors.Errorf("%w: source is required", ErrMissingPath)
		}
		if cfg.Destination == "" {
			return errors.Errorf("%w: destination is required", ErrMissingPath)
		}
		cfg.Source = filepath.Clean(cfg.Source)
		cfg.Destination = filepath.Clean(cfg.Destination)
		if err := requireDir(cfg.Source); err != nil {
			return err
		}
		same, err := samePath(cfg.Source, cfg.Destination)
		if err != nil {
			return err
		}
		if same {
			return errors.Errorf("destination %s is the source directory", cfg.Destination)
		}
	case ModeRestore:
		if cfg.RestoreTarget == "" {
			return errors.Errorf("%w: restore target is required", ErrMissingPath)
		}
		cfg.RestoreTarget = filepath.Clean(cfg.RestoreTarget)
		if err := requireDir(cfg.RestoreTarget); err != nil {
			return err
		}
	}

	for i, ext := range cfg.MarkerExtensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		cfg.MarkerExtensions[i] = ext
	}

	return nil
}

func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return errors.Errorf("checking %s: %w", path, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrSourceNotFound, path)
	}
	return nil
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, errors.Errorf("resolving %s: %w", a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, errors.Errorf("resolving %s: %w", b, err)
	}
	return absA == absB, nil
}

// 📝 String returns a one-line summary of the run
func (cfg *Config) String() string {
	if cfg.Mode == ModeRestore {
		return fmt.Sprintf("restore %s (suffix %s)", cfg.RestoreTarget, cfg.Suffix)
	}
	return fmt.Sprintf("copy %s -> %s (suffix %s)", cfg.Source, cfg.Destination, cfg.Suffix)
}
