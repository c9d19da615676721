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

	"github.com/walteh/goodimages/pkg/config"
)

// 🧹 Clean removes every category's output, plus the working copy when
// includeCache is set. It takes the same lock as Run.
func Clean(ctx context.Context, cfg *config.Config, includeCache bool) error {
	unlock, err := acquireLock(ctx, LockPath(cfg))
	if err != nil {
		return err
	}
	defer unlock()

	p := &Pipeline{cfg: cfg}
	if err := p.clearOutput(ctx); err != nil {
		return err
	}

	if includeCache {
		if err := removeAll(ctx, cfg.CacheDir); err != nil {
			return err
		}
	}
	return nil
}
