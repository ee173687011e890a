package main

import (
	"context"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/xfile/cmd/xfile/commands"
	"github.com/walteh/xfile/cmd/xfile/opts"
	"github.com/walteh/xfile/pkg/config"
	"github.com/walteh/xfile/pkg/status"
	"gitlab.com/tozd/go/errors"
)

const defaultConfigFile = ".xfile.yaml"

// rootFlags are the flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
	mode       string
	lockDir    string
}

// newRootCmd builds the command tree. The shared options are filled in once
// flags are parsed, before any command runs.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	o := &opts.RootOpts{}

	rootCmd := &cobra.Command{
		Use:   "xfile",
		Short: "Copy a tree tagging text files, and restore it later",
		Long: `xfile copies a directory tree to a destination, appending a suffix to the
name of every text file, and later restores those files by stripping the suffix.

Without a subcommand it runs the mode from --mode or the config file, or asks
interactively when neither is set.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), flags.debug)
			cmd.SetContext(ctx)

			loaded, err := newRootOpts(ctx, cmd, flags)
			if err != nil {
				return err
			}
			*o = *loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("mode") {
				o.Config.Mode = config.Mode(flags.mode)
			}
			if o.Config.Mode != "" {
				return commands.RunConfigured(o)(cmd, args)
			}
			return commands.MenuRunE(o, commands.TerminalPrompter())(cmd, args)
		},
	}

	addRootFlags(rootCmd, flags)

	rootCmd.AddCommand(
		commands.NewCopyCmd(o),
		commands.NewRestoreCmd(o),
		commands.NewMenuCmd(o),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.PersistentFlags().StringVarP(&flags.configFile, "config", "c", defaultConfigFile, "config file path (.yaml, .yml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVarP(&flags.mode, "mode", "m", "", "operation to run: 1/copy or 2/restore")
	cmd.PersistentFlags().StringVar(&flags.lockDir, "lock-dir", "", "directory for tree lock files (default OS temp dir)")
	_ = cmd.PersistentFlags().MarkHidden("lock-dir")
}

// newRootOpts loads the config and creates the reporter. A missing default
// config file is fine, a missing explicit one is not.
func newRootOpts(ctx context.Context, cmd *cobra.Command, flags *rootFlags) (*opts.RootOpts, error) {
	cfg := config.Default()

	_, statErr := os.Stat(flags.configFile)
	if cmd.Flags().Changed("config") || statErr == nil {
		loaded, err := config.LoadConfig(ctx, flags.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	return &opts.RootOpts{
		Config:   cfg,
		Reporter: status.NewReporter(ctx, cmd.OutOrStdout()),
		LockDir:  flags.lockDir,
	}, nil
}

// setupLogging configures zerolog and terminal styling based on flags
func setupLogging(ctx context.Context, debug bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}

	stdoutTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	stderrTTY := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
	if !stdoutTTY {
		color.NoColor = true
		pterm.DisableColor()
	}

	// progress already goes to stdout, stderr only gets warnings unless debugging
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
		pterm.EnableDebugMessages()
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !stderrTTY}).
		Level(level).
		With().
		Timestamp().
		Str("run_id", uuid.NewString()).
		Logger()
	return logger.WithContext(ctx)
}
