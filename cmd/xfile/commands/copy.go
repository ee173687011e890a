package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/xfile/cmd/xfile/opts"
	"github.com/walteh/xfile/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// NewCopyCmd creates a new copy command
func NewCopyCmd(o *opts.RootOpts) *cobra.Command {
	var (
		source      string
		destination string
		preset      string
		ignoreDirs  []string
		suffix      string
		markers     []string
	)

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy a tree, tagging text files with the suffix",
		Long: `Copy mirrors the source tree into the destination.
It will:
1. Skip every directory whose name is in the ignore set, at any depth
2. Copy text files (valid UTF-8 or a marker extension) as <name><suffix>
3. Copy all other files unchanged, keeping mode and modification time
4. Report every failed file at the end without stopping early`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := o.Config
			cfg.Mode = config.ModeCopy

			flags := cmd.Flags()
			if flags.Changed("preset") {
				src, err := cfg.PresetSource(preset)
				if err != nil {
					return err
				}
				cfg.Source = src
			}
			if flags.Changed("source") {
				cfg.Source = source
			}
			if flags.Changed("dest") {
				cfg.Destination = destination
			}
			if flags.Changed("ignore") {
				cfg.IgnoreDirs = ignoreDirs
			}
			if flags.Changed("suffix") {
				cfg.Suffix = suffix
			}
			if flags.Changed("marker-ext") {
				cfg.MarkerExtensions = markers
			}
			if cfg.Destination == "" && cfg.Source != "" {
				cfg.Destination = config.DefaultDestination(cfg.Source)
			}

			if _, err := run(cmd.Context(), o, cfg); err != nil {
				return errors.Errorf("copying files: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&source, "source", "s", "", "source directory to copy")
	cmd.Flags().StringVarP(&destination, "dest", "o", "", "destination directory (default <source>_X)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "copy a preset repository from source_root")
	cmd.Flags().StringSliceVarP(&ignoreDirs, "ignore", "i", nil, "directory names to skip, glob patterns allowed")
	cmd.Flags().StringVar(&suffix, "suffix", config.DefaultSuffix, "suffix appended to text files")
	cmd.Flags().StringSliceVar(&markers, "marker-ext", nil, "extensions always treated as text")

	return cmd
}
