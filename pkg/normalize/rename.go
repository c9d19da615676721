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

package normalize

import (
	"context"
	"os"
	"path/filepath"

	"github.com/walteh/goodimages/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Outcome is the result of a single guarded rename
type Outcome int

const (
	Renamed Outcome = iota
	SkippedMissingSource
	SkippedTargetExists
)

func (o Outcome) String() string {
	switch o {
	case Renamed:
		return "renamed"
	case SkippedMissingSource:
		return "missing source"
	case SkippedTargetExists:
		return "target exists"
	default:
		return "unknown"
	}
}

// 🔄 RenameIfExists moves src to dst unless src is absent or dst is already
// taken. Neither case is an error. The parent of dst is created as needed.
func RenameIfExists(ctx context.Context, src, dst string) (Outcome, error) {
	logger := log.FromContext(ctx)

	exists, err := pathExists(src)
	if err != nil {
		return 0, errors.Errorf("checking %s: %w", src, err)
	}
	if !exists {
		logger.LogFileOperation(ctx, log.FileOperation{Kind: log.KindSkip, Path: src, Target: dst, Status: SkippedMissingSource.String()})
		return SkippedMissingSource, nil
	}

	exists, err = pathExists(dst)
	if err != nil {
		return 0, errors.Errorf("checking %s: %w", dst, err)
	}
	if exists {
		logger.LogFileOperation(ctx, log.FileOperation{Kind: log.KindSkip, Path: src, Target: dst, Status: SkippedTargetExists.String()})
		return SkippedTargetExists, nil
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, errors.Errorf("creating parent of %s: %w", dst, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return 0, errors.Errorf("renaming %s: %w", src, err)
	}

	logger.LogFileOperation(ctx, log.FileOperation{Kind: log.KindRename, Path: src, Target: dst})
	return Renamed, nil
}

func pathExists(p string) (bool, error) {
	_, err := os.Lstat(p)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
