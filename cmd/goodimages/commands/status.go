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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/goodimages/cmd/goodimages/opts"
	"github.com/walteh/goodimages/pkg/log"
	"github.com/walteh/goodimages/pkg/remote/github"
	"gitlab.com/tozd/go/errors"
)

// NewStatusCmd creates the status command
func NewStatusCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Compare the working copy with the remote branch",
		Long: `Status reads the working copy's HEAD and the remote branch head from the
GitHub API and reports whether a run would pull new commits.
Set GITHUB_TOKEN to avoid the anonymous rate limit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			status, err := github.CheckStatus(ctx, o.Synchronizer(), o.GitHub(), o.Source())
			if err != nil {
				return errors.Errorf("checking status: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderStatus(status))

			switch status.State {
			case github.StateUpToDate:
				logger.Success("working copy is up to date")
			case github.StateBehind:
				logger.Warning("working copy is behind, run goodimages to update")
			case github.StateMissing:
				logger.Warning("no working copy yet, run goodimages to clone")
			}
			return nil
		},
	}

	return cmd
}
