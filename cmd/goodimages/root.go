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

package main

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/goodimages/cmd/goodimages/commands"
	"github.com/walteh/goodimages/cmd/goodimages/opts"
	"github.com/walteh/goodimages/pkg/config"
	"github.com/walteh/goodimages/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	debug      bool
)

func newRootCmd() *cobra.Command {
	ro := &opts.RootOpts{}
	runCmd := commands.NewRunCmd(ro)

	cmd := &cobra.Command{
		Use:   "goodimages",
		Short: "Export genshin-optimizer images in the GOOD layout",
		Long: `goodimages mirrors the genshin-optimizer repository, copies its images into
<output_root>/<category> and renames them to stable GOOD file names.

Running goodimages without a subcommand is the same as "goodimages run".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := loadRootOpts(ctx, ro); err != nil {
				return err
			}
			cmd.SetContext(ctx)
			return nil
		},
		RunE: runCmd.RunE,
	}

	addRootFlags(cmd)

	cmd.AddCommand(
		runCmd,
		commands.NewExportCmd(ro),
		commands.NewStatusCmd(ro),
		commands.NewCleanCmd(ro),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (yaml, toml or hcl)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// loadRootOpts loads the config and resolves its paths. Relative paths are
// anchored at the config file's directory, or the working directory when no
// file is given. A .env file in that directory may supply GITHUB_TOKEN; it
// never overrides the real environment.
func loadRootOpts(ctx context.Context, ro *opts.RootOpts) error {
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	base, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}
	if configFile != "" {
		abs, err := filepath.Abs(configFile)
		if err != nil {
			return errors.Errorf("getting absolute config path: %w", err)
		}
		base = filepath.Dir(abs)
	}

	if err := godotenv.Load(filepath.Join(base, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Errorf("loading .env: %w", err)
	}

	ro.Config = cfg.Resolve(base)
	ro.Token = os.Getenv("GITHUB_TOKEN")

	zerolog.Ctx(ctx).Debug().
		Str("config", ro.Config.String()).
		Bool("token", ro.Token != "").
		Msg("loaded configuration")
	return nil
}

// setupLogging puts the console logger and the structured logger on ctx.
// Structured logs only go to stderr with --debug.
func setupLogging(ctx context.Context, stdout, stderr io.Writer) context.Context {
	level := zerolog.Disabled
	if debug {
		level = zerolog.DebugLevel
	}

	noColor := true
	if f, ok := stderr.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}

	zl := zerolog.New(zerolog.ConsoleWriter{Out: stderr, NoColor: noColor, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()

	ctx = zl.WithContext(ctx)
	return log.NewContext(ctx, log.New(stdout, zl))
}
