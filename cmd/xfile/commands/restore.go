package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/xfile/cmd/xfile/opts"
	"github.com/walteh/xfile/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewRestoreCmd creates a new restore command
func NewRestoreCmd(o *opts.RootOpts) *cobra.Command {
	var (
		target string
		suffix string
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Strip the suffix from every tagged file in a tree",
		Long: `Restore renames every <name><suffix> file under the target back to <name>.
If <name> already exists the tagged file is deleted and <name> is kept.
Ignore rules do not apply, the whole tree is walked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.Config
			cfg.Mode = config.ModeRestore

			if cmd.Flags().Changed("target") {
				cfg.RestoreTarget = target
			}
			if cmd.Flags().Changed("suffix") {
				cfg.Suffix = suffix
			}

			if _, err := run(cmd.Context(), o, cfg); err != nil {
				return errors.Errorf("restoring files: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", ".", "directory to restore")
	cmd.Flags().StringVar(&suffix, "suffix", config.DefaultSuffix, "suffix to strip")

	return cmd
}
