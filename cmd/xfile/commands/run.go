package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/xfile/cmd/xfile/opts"
	"github.com/walteh/xfile/pkg/config"
	"github.com/walteh/xfile/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// run validates cfg and executes the operation it selects. Per-file failures
// are part of the result, only configuration problems and interruptions are
// returned as errors.
func run(ctx context.Context, o *opts.RootOpts, cfg *config.Config) (*operation.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid configuration: %w", err)
	}
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("resolved configuration")

	h, err := operation.New(operation.Options{
		Config:   cfg,
		Reporter: o.Reporter,
	})
	if err != nil {
		return nil, errors.Errorf("creating handler: %w", err)
	}

	return operation.NewRunner(h, o.LockDir).Run(ctx)
}

// RunConfigured runs the operation named by the config's mode without asking
// anything. An unknown mode fails before the file system is touched.
func RunConfigured(o *opts.RootOpts) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg := o.Config
		mode, err := config.ParseMode(string(cfg.Mode))
		if err != nil {
			return err
		}
		cfg.Mode = mode
		if mode == config.ModeCopy && cfg.Destination == "" && cfg.Source != "" {
			cfg.Destination = config.DefaultDestination(cfg.Source)
		}
		if _, err := run(cmd.Context(), o, cfg); err != nil {
			return errors.Errorf("running %s: %w", mode, err)
		}
		return nil
	}
}
