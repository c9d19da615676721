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
)

// NewExportCmd creates the export command
func NewExportCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export images from the existing working copy",
		Long: `Export rebuilds the output from the working copy as it is, without
contacting the remote. Useful offline or after editing the working copy.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return export(cmd, o, true)
		},
	}

	return cmd
}
