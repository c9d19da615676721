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
	"github.com/walteh/goodimages/pkg/walk"
	"gitlab.com/tozd/go/errors"
)

// WeaponRules lists the renames applied to one <type>/<weapon> directory.
var WeaponRules = []Rule{
	{From: "Icon.png", To: "icon.png"},
	{From: "AwakenIcon.png", To: "icon-ascended.png"},
}

var _ Staged = (*Weapons)(nil)

// ⚔️ Weapons flattens <root>/<type>/<weapon>/ into <root>/<weapon>/
type Weapons struct{}

// StagingDir is the sibling directory the flattened tree is built in.
func StagingDir(root string) string {
	return filepath.Join(filepath.Dir(root), filepath.Base(root)+"-fixed")
}

// StagingDir implements Staged.
func (w *Weapons) StagingDir(root string) string {
	return StagingDir(root)
}

// Normalize builds the flattened tree in StagingDir(root), then deletes root
// and moves the staging directory into its place. The swap is not crash
// safe: a failure between the delete and the move leaves no root at all.
//
// A top-level directory that already holds canonical names is treated as an
// already flattened weapon, so running Normalize twice is harmless.
func (w *Weapons) Normalize(ctx context.Context, root string) (*Result, error) {
	logger := log.FromContext(ctx)
	result := &Result{}

	exists, err := pathExists(root)
	if err != nil {
		return nil, errors.Errorf("checking %s: %w", root, err)
	}
	if !exists {
		return result, nil
	}

	staging := StagingDir(root)
	if err := removeAll(ctx, staging); err != nil {
		return result, err
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return result, errors.Errorf("creating %s: %w", staging, err)
	}

	for group, err := range walk.Dirs(root) {
		if err != nil {
			return result, errors.Errorf("listing weapon types: %w", err)
		}

		for _, rule := range WeaponRules {
			outcome, err := RenameIfExists(ctx, filepath.Join(group.Path, rule.To), filepath.Join(staging, group.Name, rule.To))
			if err != nil {
				return result, errors.Errorf("carrying over %s: %w", group.Name, err)
			}
			// only count carry-overs that moved something
			if outcome == Renamed {
				result.Add(outcome)
			}
		}

		for weapon, err := range walk.Dirs(group.Path) {
			if err != nil {
				return result, errors.Errorf("listing %s: %w", group.Name, err)
			}
			for _, rule := range WeaponRules {
				outcome, err := RenameIfExists(ctx, filepath.Join(weapon.Path, rule.From), filepath.Join(staging, weapon.Name, rule.To))
				if err != nil {
					return result, errors.Errorf("normalizing %s: %w", weapon.Name, err)
				}
				result.Add(outcome)
			}
		}
	}

	if err := removeAll(ctx, root); err != nil {
		return result, err
	}
	if err := os.Rename(staging, root); err != nil {
		return result, errors.Errorf("replacing %s: %w", root, err)
	}
	logger.LogFileOperation(ctx, log.FileOperation{Kind: log.KindRename, Path: staging, Target: root})

	return result, nil
}

func removeAll(ctx context.Context, dir string) error {
	exists, err := pathExists(dir)
	if err != nil {
		return errors.Errorf("checking %s: %w", dir, err)
	}
	if !exists {
		return nil
	}
	if err := os.RemoveAll(dir); err != nil {
		return errors.Errorf("removing %s: %w", dir, err)
	}
	log.FromContext(ctx).LogFileOperation(ctx, log.FileOperation{Kind: log.KindDelete, Path: dir})
	return nil
}
