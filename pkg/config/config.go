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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Defaults for the genshin-optimizer asset repository.
const (
	DefaultRepositoryURL = "https://github.com/frzyc/genshin-optimizer.git"
	DefaultRef           = "master"
	DefaultCacheDir      = "genshin-optimizer"
	DefaultOutputRoot    = "../images/good"
	DefaultDataPath      = "src/Data"
	DefaultImageGlob     = "*.png"
)

// DefaultCategories are the upstream category directories that get exported.
var DefaultCategories = []string{"Artifacts", "Characters", "Weapons"}

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes, on top of Default()
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 RepositoryArgs identifies the remote asset repository
type RepositoryArgs struct {
	URL string `json:"url" yaml:"url" toml:"url"` // Clone URL
	Ref string `json:"ref" yaml:"ref" toml:"ref"` // Branch to track
}

// 📚 Config represents the complete configuration
type Config struct {
	Repository RepositoryArgs `json:"repository" yaml:"repository" toml:"repository"`
	CacheDir   string         `json:"cache_dir" yaml:"cache_dir" toml:"cache_dir"`       // Local working copy
	OutputRoot string         `json:"output_root" yaml:"output_root" toml:"output_root"` // Parent of the category directories
	DataPath   string         `json:"data_path" yaml:"data_path" toml:"data_path"`       // Category root inside the working copy
	Categories []string       `json:"categories" yaml:"categories" toml:"categories"`
	ImageGlob  string         `json:"image_glob" yaml:"image_glob" toml:"image_glob"`
}

// 🏭 Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Repository: RepositoryArgs{
			URL: DefaultRepositoryURL,
			Ref: DefaultRef,
		},
		CacheDir:   DefaultCacheDir,
		OutputRoot: DefaultOutputRoot,
		DataPath:   DefaultDataPath,
		Categories: append([]string(nil), DefaultCategories...),
		ImageGlob:  DefaultImageGlob,
	}
}

// 🎯 Load loads the configuration from a file. An empty path yields the
// validated defaults.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		logger.Debug().Msg("no config file, using defaults")
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return nil, errors.Errorf("validating config: %w", err)
		}
		return cfg, nil
	}

	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.Repository.URL) == "" {
		return errors.Errorf("repository.url is required")
	}
	if len(cfg.Categories) == 0 {
		return errors.Errorf("at least one category is required")
	}

	if cfg.Repository.Ref == "" {
		cfg.Repository.Ref = DefaultRef
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
	if cfg.OutputRoot == "" {
		cfg.OutputRoot = DefaultOutputRoot
	}
	if cfg.DataPath == "" {
		cfg.DataPath = DefaultDataPath
	}
	if cfg.ImageGlob == "" {
		cfg.ImageGlob = DefaultImageGlob
	}

	if !doublestar.ValidatePattern(cfg.ImageGlob) {
		return errors.Errorf("image_glob is not a valid pattern: %s", cfg.ImageGlob)
	}

	seen := map[string]bool{}
	for _, c := range cfg.Categories {
		if c == "" || strings.ContainsAny(c, `/\`) {
			return errors.Errorf("invalid category name: %q", c)
		}
		key := strings.ToLower(c)
		if seen[key] {
			return errors.Errorf("duplicate category: %s", c)
		}
		seen[key] = true
	}

	cfg.CacheDir = filepath.Clean(cfg.CacheDir)
	cfg.OutputRoot = filepath.Clean(cfg.OutputRoot)
	cfg.DataPath = filepath.Clean(cfg.DataPath)

	return nil
}

// 📍 Resolve returns a copy of cfg whose local paths are absolute, with
// relative paths anchored at base
func (cfg *Config) Resolve(base string) *Config {
	out := *cfg
	out.Categories = append([]string(nil), cfg.Categories...)
	if !filepath.IsAbs(out.CacheDir) {
		out.CacheDir = filepath.Join(base, out.CacheDir)
	}
	if !filepath.IsAbs(out.OutputRoot) {
		out.OutputRoot = filepath.Join(base, out.OutputRoot)
	}
	return &out
}

// 📂 SourceDir is where a category lives inside the working copy
func (cfg *Config) SourceDir(category string) string {
	return filepath.Join(cfg.CacheDir, cfg.DataPath, category)
}

// 📂 OutputDir is where a category is exported to
func (cfg *Config) OutputDir(category string) string {
	return filepath.Join(cfg.OutputRoot, strings.ToLower(category))
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	ref := cfg.Repository.Ref
	if ref == "" {
		ref = DefaultRef
	}
	return fmt.Sprintf("%s@%s:%s -> %s", cfg.Repository.URL, ref, cfg.DataPath, cfg.OutputRoot)
}
