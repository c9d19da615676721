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

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/walteh/goodimages/cmd/goodimages/opts"
	"github.com/walteh/goodimages/pkg/log"
	"github.com/walteh/goodimages/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates the run command
func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Sync the repository and export its images",
		Long: `Run brings the working copy up to date and rebuilds the output.
It will:
1. Clone or pull the repository
2. Delete each category's output directory
3. Copy every image into <output_root>/<category>
4. Rename character and weapon images to their GOOD names`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd, o, false)
		},
	}

	return cmd
}

func export(cmd *cobra.Command, o *opts.RootOpts, skipSync bool) error {
	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	logger.Header(o.Config.String())

	p, err := operation.New(operation.Options{
		Config:       o.Config,
		Synchronizer: o.Synchronizer(),
		SkipSync:     skipSync,
	})
	if err != nil {
		return errors.Errorf("creating pipeline: %w", err)
	}

	report, err := p.Run(ctx)
	if err != nil {
		return errors.Errorf("exporting images: %w", err)
	}

	logger.LogNewline()
	fmt.Fprintln(cmd.OutOrStdout(), renderSummary(report))

	files, bytes, renamed := report.Totals()
	logger.Successf("exported %s images (%s), %s renamed", humanize.Comma(int64(files)), humanize.Bytes(uint64(bytes)), humanize.Comma(int64(renamed)))
	return nil
}
