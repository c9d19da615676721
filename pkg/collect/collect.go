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

// Package collect copies image files out of a source tree into a
// destination tree with the same shape.
package collect

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/walteh/goodimages/pkg/log"
	"github.com/walteh/goodimages/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// DefaultGlob matches the files treated as images.
const DefaultGlob = "*.png"

// 🔧 Options controls which files are collected
type Options struct {
	// Glob is matched against the base name, case-sensitively
	Glob string
}

// 📊 Stats summarizes one Collect call
type Stats struct {
	Files int
	Bytes int64
}

// 📥 Collect copies every image below sourceDir into destDir, keeping the
// relative directory structure. Directories are created on demand, so
// subtrees without images leave nothing behind. A later file with the same
// destination path overwrites an earlier one. Nothing is ever deleted.
func Collect(ctx context.Context, sourceDir, destDir string, opts Options) (*Stats, error) {
	logger := log.FromContext(ctx)

	glob := opts.Glob
	if glob == "" {
		glob = DefaultGlob
	}
	if !doublestar.ValidatePattern(glob) {
		return nil, errors.Errorf("invalid image glob: %s", glob)
	}

	stats := &Stats{}
	for entry, err := range walk.Walk(sourceDir) {
		if err != nil {
			return stats, errors.Errorf("walking %s: %w", sourceDir, err)
		}
		if entry.IsDir {
			continue
		}

		matched, err := doublestar.Match(glob, entry.Name)
		if err != nil {
			return stats, errors.Errorf("matching %s: %w", entry.Name, err)
		}
		if !matched {
			continue
		}

		target := filepath.Join(destDir, filepath.FromSlash(path.Dir(entry.Rel)))
		if err := os.MkdirAll(target, 0o755); err != nil {
			return stats, errors.Errorf("creating %s: %w", target, err)
		}

		n, err := copyFile(entry.Path, filepath.Join(target, entry.Name))
		if err != nil {
			return stats, errors.Errorf("copying %s: %w", entry.Path, err)
		}

		stats.Files++
		stats.Bytes += n

		logger.LogFileOperation(ctx, log.FileOperation{
			Kind:   log.KindCopy,
			Path:   entry.Path,
			Target: target,
		})
	}

	return stats, nil
}

// copyFile streams src to dst, truncating anything already at dst.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	n, err := io.Copy(out, in)
	if err != nil {
		return n, err
	}
	return n, out.Close()
}
