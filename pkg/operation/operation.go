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

package operation

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/goodimages/pkg/collect"
	"github.com/walteh/goodimages/pkg/config"
	"github.com/walteh/goodimages/pkg/log"
	"github.com/walteh/goodimages/pkg/normalize"
	"github.com/walteh/goodimages/pkg/repo"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the pipeline
type Options struct {
	// Config must already be validated and resolved to absolute paths
	Config *config.Config
	// Synchronizer keeps the working copy current
	Synchronizer repo.Synchronizer
	// SkipSync exports from the working copy as it is
	SkipSync bool
}

// 🏭 Pipeline runs one export from start to finish
type Pipeline struct {
	cfg      *config.Config
	sync     repo.Synchronizer
	skipSync bool
}

// 🏭 New creates a new pipeline with the given options
func New(opts Options) (*Pipeline, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Synchronizer == nil && !opts.SkipSync {
		return nil, errors.Errorf("synchronizer is required")
	}
	if !filepath.IsAbs(opts.Config.CacheDir) || !filepath.IsAbs(opts.Config.OutputRoot) {
		return nil, errors.Errorf("config paths must be resolved before use")
	}
	return &Pipeline{
		cfg:      opts.Config,
		sync:     opts.Synchronizer,
		skipSync: opts.SkipSync,
	}, nil
}

// 🏃 Run syncs the repository, clears stale output, then collects and
// normalizes every category. The first error aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: uuid.NewString()}

	ctx = log.NewContext(ctx, log.FromContext(ctx).With("run_id", report.RunID))

	unlock, err := acquireLock(ctx, LockPath(p.cfg))
	if err != nil {
		return nil, err
	}
	defer unlock()

	steps := []step{
		{name: "syncing repository", run: func(ctx context.Context) error { return p.syncRepository(ctx, report) }},
		{name: "clearing output", run: p.clearOutput},
		{name: "collecting images", run: func(ctx context.Context) error { return p.collectImages(ctx, report) }},
		{name: "normalizing names", run: func(ctx context.Context) error { return p.normalizeNames(ctx, report) }},
	}

	if err := runSteps(ctx, steps); err != nil {
		return report, err
	}
	return report, nil
}

func (p *Pipeline) syncRepository(ctx context.Context, report *Report) error {
	logger := log.FromContext(ctx)

	if p.skipSync {
		logger.Warning("skipping repository sync")
		return nil
	}

	result, err := p.sync.Sync(ctx, repo.Source{
		URL:  p.cfg.Repository.URL,
		Ref:  p.cfg.Repository.Ref,
		Path: p.cfg.CacheDir,
	})
	if err != nil {
		return err
	}

	report.Head = result.Head
	report.Cloned = result.Cloned
	report.Updated = result.Updated
	logger.Successf("working copy at %s", shortHash(result.Head))
	return nil
}

func (p *Pipeline) clearOutput(ctx context.Context) error {
	for _, category := range p.cfg.Categories {
		out := p.cfg.OutputDir(category)
		if err := removeAll(ctx, out); err != nil {
			return err
		}
		if n, ok := normalize.ForCategory(category); ok {
			if staged, ok := n.(normalize.Staged); ok {
				if err := removeAll(ctx, staged.StagingDir(out)); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (p *Pipeline) collectImages(ctx context.Context, report *Report) error {
	for _, category := range p.cfg.Categories {
		stats, err := collect.Collect(ctx, p.cfg.SourceDir(category), p.cfg.OutputDir(category), collect.Options{
			Glob: p.cfg.ImageGlob,
		})
		if err != nil {
			return errors.Errorf("collecting %s: %w", category, err)
		}

		cr := report.category(category, p.cfg.OutputDir(category))
		cr.Files = stats.Files
		cr.Bytes = stats.Bytes
	}
	return nil
}

func (p *Pipeline) normalizeNames(ctx context.Context, report *Report) error {
	for _, category := range p.cfg.Categories {
		n, ok := normalize.ForCategory(category)
		if !ok {
			zerolog.Ctx(ctx).Debug().Str("category", category).Msg("no rename rules, keeping upstream names")
			continue
		}

		result, err := n.Normalize(ctx, p.cfg.OutputDir(category))
		if err != nil {
			return errors.Errorf("normalizing %s: %w", category, err)
		}

		cr := report.category(category, p.cfg.OutputDir(category))
		cr.Normalized = true
		cr.Renamed = result.Renamed
		cr.MissingSource = result.MissingSource
		cr.TargetExisting = result.TargetExisting
	}
	return nil
}

func removeAll(ctx context.Context, dir string) error {
	if _, err := os.Lstat(dir); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking %s: %w", dir, err)
	}

	if err := os.RemoveAll(dir); err != nil {
		return errors.Errorf("removing %s: %w", dir, err)
	}
	log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{Kind: log.KindDelete, Path: dir})
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
