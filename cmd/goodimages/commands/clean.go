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

package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/goodimages/cmd/goodimages/opts"
	"github.com/walteh/goodimages/pkg/log"
	"github.com/walteh/goodimages/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCleanCmd creates the clean command
func NewCleanCmd(o *opts.RootOpts) *cobra.Command {
	var cache bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove exported images",
		Long: `Clean removes every category's output directory.
With --cache it also removes the working copy, so the next run clones again.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := operation.Clean(ctx, o.Config, cache); err != nil {
				return errors.Errorf("cleaning: %w", err)
			}

			log.FromContext(ctx).Success("clean complete")
			return nil
		},
	}

	cmd.Flags().BoolVar(&cache, "cache", false, "also remove the working copy")

	return cmd
}
