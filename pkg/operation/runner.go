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

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🪜 step is one named stage of the pipeline
type step struct {
	name string
	run  func(ctx context.Context) error
}

// 🔄 runSteps runs steps in order and stops at the first failure
func runSteps(ctx context.Context, steps []step) error {
	logger := zerolog.Ctx(ctx)

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("%s: %w", s.name, err)
		}

		logger.Debug().Str("step", s.name).Msg("starting step")
		if err := s.run(ctx); err != nil {
			logger.Debug().Str("step", s.name).Err(err).Msg("step failed")
			return errors.Errorf("%s: %w", s.name, err)
		}
		logger.Debug().Str("step", s.name).Msg("step complete")
	}
	return nil
}
