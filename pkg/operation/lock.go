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

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/walteh/goodimages/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// ErrLocked is returned when another run holds the lock.
var ErrLocked = errors.Base("another export is already running")

// LockPath is the lock file guarding a working copy and its output.
func LockPath(cfg *config.Config) string {
	return cfg.CacheDir + ".lock"
}

// 🔒 acquireLock takes the run lock without waiting
func acquireLock(ctx context.Context, path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Errorf("creating lock directory: %w", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, errors.Errorf("acquiring lock: %w", err)
	}
	if !ok {
		return nil, errors.WithDetails(ErrLocked, "lock", path)
	}

	zerolog.Ctx(ctx).Debug().Str("lock", path).Msg("acquired lock")
	return func() {
		if err := lock.Unlock(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("lock", path).Msg("releasing lock")
			return
		}
		zerolog.Ctx(ctx).Debug().Str("lock", path).Msg("released lock")
	}, nil
}
