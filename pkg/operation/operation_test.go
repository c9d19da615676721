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
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/goodimages/pkg/config"
	"github.com/walteh/goodimages/pkg/log"
	"github.com/walteh/goodimages/pkg/repo"
	"gitlab.com/tozd/go/errors"
)

// mockSynchronizer is a testify mock of repo.Synchronizer
type mockSynchronizer struct {
	mock.Mock
}

func (m *mockSynchronizer) Sync(ctx context.Context, src repo.Source) (*repo.SyncResult, error) {
	args := m.Called(ctx, src)
	res, _ := args.Get(0).(*repo.SyncResult)
	return res, args.Error(1)
}

func (m *mockSynchronizer) Head(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

var upstreamFiles = []string{
	"Artifacts/Gladiator/flower.png",
	"Artifacts/Gladiator/readme.txt",
	"Characters/Bennett/Icon.png",
	"Characters/Bennett/Character_Bennett_Card.png",
	"Characters/Bennett/skill.png",
	"Characters/Bennett/passive2.png",
	"Characters/Bennett/constellation1.png",
	"Characters/Bennett/data.json",
	"Weapons/sword/Aquila/Icon.png",
	"Weapons/sword/Aquila/AwakenIcon.png",
	"Weapons/bow/Rust/Icon.png",
}

var wantOutput = map[string]string{
	"artifacts/Gladiator/flower.png":         "Artifacts/Gladiator/flower.png",
	"characters/Bennett/icon-front.png":      "Characters/Bennett/Icon.png",
	"characters/Bennett/card.png":            "Characters/Bennett/Character_Bennett_Card.png",
	"characters/Bennett/talent-skill.png":    "Characters/Bennett/skill.png",
	"characters/Bennett/passive-2.png":       "Characters/Bennett/passive2.png",
	"characters/Bennett/constellation-1.png": "Characters/Bennett/constellation1.png",
	"weapons/Aquila/icon.png":                "Weapons/sword/Aquila/Icon.png",
	"weapons/Aquila/icon-ascended.png":       "Weapons/sword/Aquila/AwakenIcon.png",
	"weapons/Rust/icon.png":                  "Weapons/bow/Rust/Icon.png",
}

func testContext(t *testing.T) context.Context {
	zl := zerolog.New(zerolog.NewTestWriter(t))
	ctx := log.NewContext(context.Background(), log.New(io.Discard, zl))
	return ctx
}

// testConfig returns a resolved default config rooted in a temp dir, with
// the upstream fixture written into its working copy.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.OutputRoot = "out"
	require.NoError(t, cfg.Validate(), "validating config")
	cfg = cfg.Resolve(t.TempDir())

	data := filepath.Join(cfg.CacheDir, cfg.DataPath)
	for _, name := range upstreamFiles {
		p := filepath.Join(data, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755), "creating parent of %s", name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0644), "writing %s", name)
	}
	return cfg
}

func listTree(t *testing.T, root string) map[string]string {
	t.Helper()
	out := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	require.NoError(t, err, "listing %s", root)
	return out
}

func syncOK(cfg *config.Config) *mockSynchronizer {
	m := &mockSynchronizer{}
	m.On("Sync", mock.Anything, repo.Source{
		URL:  cfg.Repository.URL,
		Ref:  cfg.Repository.Ref,
		Path: cfg.CacheDir,
	}).Return(&repo.SyncResult{Head: "0123456789abcdef0123"}, nil)
	return m
}

func TestNew(t *testing.T) {
	resolved := config.Default().Resolve("/tmp/goodimages")

	tests := []struct {
		name        string
		opts        Options
		errContains string
	}{
		{
			name:        "missing_config",
			opts:        Options{Synchronizer: &mockSynchronizer{}},
			errContains: "config is required",
		},
		{
			name:        "missing_synchronizer",
			opts:        Options{Config: resolved},
			errContains: "synchronizer is required",
		},
		{
			name: "skip_sync_needs_no_synchronizer",
			opts: Options{Config: resolved, SkipSync: true},
		},
		{
			name:        "unresolved_paths",
			opts:        Options{Config: config.Default(), SkipSync: true},
			errContains: "must be resolved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.opts)
			if tt.errContains != "" {
				require.Error(t, err, "expected error")
				assert.Contains(t, err.Error(), tt.errContains, "error message should match")
				return
			}
			require.NoError(t, err, "creating pipeline")
			assert.NotNil(t, p, "pipeline should be created")
		})
	}
}

func TestRun(t *testing.T) {
	ctx := testContext(t)
	cfg := testConfig(t)
	sync := syncOK(cfg)

	p, err := New(Options{Config: cfg, Synchronizer: sync})
	require.NoError(t, err, "creating pipeline")

	report, err := p.Run(ctx)
	require.NoError(t, err, "running pipeline")
	sync.AssertExpectations(t)

	assert.Equal(t, wantOutput, listTree(t, cfg.OutputRoot), "output tree should match")
	assert.NoDirExists(t, filepath.Join(cfg.OutputRoot, "weapons-fixed"), "staging should be gone")

	assert.NotEmpty(t, report.RunID, "run id should be set")
	assert.Equal(t, "0123456789abcdef0123", report.Head, "head should be reported")
	require.Len(t, report.Categories, 3, "every category should be reported")

	byName := map[string]*CategoryReport{}
	for _, c := range report.Categories {
		byName[c.Name] = c
	}

	assert.Equal(t, 1, byName["Artifacts"].Files, "artifact files")
	assert.False(t, byName["Artifacts"].Normalized, "artifacts have no rules")
	assert.Equal(t, 5, byName["Characters"].Files, "character files")
	assert.Equal(t, 5, byName["Characters"].Renamed, "character renames")
	assert.Equal(t, 5, byName["Characters"].MissingSource, "character rules without a source")
	assert.Equal(t, 3, byName["Weapons"].Files, "weapon files")
	assert.Equal(t, 3, byName["Weapons"].Renamed, "weapon renames")
	assert.Equal(t, 1, byName["Weapons"].MissingSource, "weapon rules without a source")

	files, bytes, renamed := report.Totals()
	assert.Equal(t, 9, files, "total files")
	assert.Equal(t, 8, renamed, "total renames")

	var wantBytes int64
	for _, name := range upstreamFiles {
		if filepath.Ext(name) == ".png" {
			wantBytes += int64(len(name))
		}
	}
	assert.Equal(t, wantBytes, bytes, "total bytes")
}

func TestRunIsIdempotent(t *testing.T) {
	ctx := testContext(t)
	cfg := testConfig(t)

	p, err := New(Options{Config: cfg, Synchronizer: syncOK(cfg)})
	require.NoError(t, err, "creating pipeline")

	_, err = p.Run(ctx)
	require.NoError(t, err, "first run")
	first := listTree(t, cfg.OutputRoot)

	_, err = p.Run(ctx)
	require.NoError(t, err, "second run")
	assert.Equal(t, first, listTree(t, cfg.OutputRoot), "second run should produce the same tree")
}

func TestRunClearsStaleOutput(t *testing.T) {
	ctx := testContext(t)
	cfg := testConfig(t)

	stale := []string{
		"characters/Removed/icon-front.png",
		"weapons-fixed/Leftover/icon.png",
		"unrelated/keep.png",
	}
	for _, name := range stale {
		p := filepath.Join(cfg.OutputRoot, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755), "creating parent of %s", name)
		require.NoError(t, os.WriteFile(p, []byte("stale"), 0644), "writing %s", name)
	}

	p, err := New(Options{Config: cfg, Synchronizer: syncOK(cfg)})
	require.NoError(t, err, "creating pipeline")

	_, err = p.Run(ctx)
	require.NoError(t, err, "running pipeline")

	got := listTree(t, cfg.OutputRoot)
	assert.NotContains(t, got, "characters/Removed/icon-front.png", "stale character should be removed")
	assert.NotContains(t, got, "weapons/Leftover/icon.png", "stale staging should not leak into weapons")
	assert.Contains(t, got, "unrelated/keep.png", "directories outside the categories are left alone")
}

func TestRunSyncFailure(t *testing.T) {
	ctx := testContext(t)
	cfg := testConfig(t)

	existing := filepath.Join(cfg.OutputDir("Characters"), "Bennett", "icon-front.png")
	require.NoError(t, os.MkdirAll(filepath.Dir(existing), 0755), "creating output")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0644), "writing output")

	sync := &mockSynchronizer{}
	sync.On("Sync", mock.Anything, mock.Anything).Return(nil, errors.New("remote hung up"))

	p, err := New(Options{Config: cfg, Synchronizer: sync})
	require.NoError(t, err, "creating pipeline")

	_, err = p.Run(ctx)
	require.Error(t, err, "sync failure should abort the run")
	assert.Contains(t, err.Error(), "syncing repository", "error should name the step")
	assert.Contains(t, err.Error(), "remote hung up", "error should wrap the cause")
	assert.FileExists(t, existing, "output should be untouched when sync fails")
}

func TestRunSkipSync(t *testing.T) {
	ctx := testContext(t)
	cfg := testConfig(t)
	sync := &mockSynchronizer{}

	p, err := New(Options{Config: cfg, Synchronizer: sync, SkipSync: true})
	require.NoError(t, err, "creating pipeline")

	report, err := p.Run(ctx)
	require.NoError(t, err, "running pipeline")
	sync.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
	assert.Empty(t, report.Head, "head is unknown without a sync")
	assert.Equal(t, wantOutput, listTree(t, cfg.OutputRoot), "output tree should match")
}

func TestRunMissingCategory(t *testing.T) {
	ctx := testContext(t)
	cfg := testConfig(t)
	cfg.Categories = append(cfg.Categories, "Materials")

	p, err := New(Options{Config: cfg, SkipSync: true})
	require.NoError(t, err, "creating pipeline")

	_, err = p.Run(ctx)
	require.Error(t, err, "a missing category source should fail")
	assert.Contains(t, err.Error(), "collecting Materials", "error should name the category")
}

func TestRunLocked(t *testing.T) {
	ctx := testContext(t)
	cfg := testConfig(t)

	held := flock.New(LockPath(cfg))
	ok, err := held.TryLock()
	require.NoError(t, err, "taking lock")
	require.True(t, ok, "lock should be free")
	defer held.Unlock()

	sync := &mockSynchronizer{}
	p, err := New(Options{Config: cfg, Synchronizer: sync})
	require.NoError(t, err, "creating pipeline")

	_, err = p.Run(ctx)
	require.Error(t, err, "a held lock should fail the run")
	assert.True(t, errors.Is(err, ErrLocked), "error should be ErrLocked")
	sync.AssertNotCalled(t, "Sync", mock.Anything, mock.Anything)
	assert.NoDirExists(t, cfg.OutputRoot, "nothing should be written")
}

func TestClean(t *testing.T) {
	tests := []struct {
		name         string
		includeCache bool
	}{
		{name: "output_only"},
		{name: "with_cache", includeCache: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			cfg := testConfig(t)

			p, err := New(Options{Config: cfg, SkipSync: true})
			require.NoError(t, err, "creating pipeline")
			_, err = p.Run(ctx)
			require.NoError(t, err, "running pipeline")

			require.NoError(t, Clean(ctx, cfg, tt.includeCache), "cleaning")

			for _, category := range cfg.Categories {
				assert.NoDirExists(t, cfg.OutputDir(category), "%s output should be removed", category)
			}
			if tt.includeCache {
				assert.NoDirExists(t, cfg.CacheDir, "working copy should be removed")
			} else {
				assert.DirExists(t, cfg.CacheDir, "working copy should be kept")
			}
		})
	}
}
