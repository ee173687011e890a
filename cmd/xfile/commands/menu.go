package commands

import (
	"context"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/xfile/cmd/xfile/opts"
	"github.com/walteh/xfile/pkg/config"
	"gitlab.com/tozd/go/errors"
)

const customChoice = "custom"

// 🎛️ Prompter asks the operator questions
type Prompter interface {
	Select(title string, options []string) (string, error)
	Input(title string) (string, error)
}

// ptermPrompter prompts on the terminal
type ptermPrompter struct{}

func (ptermPrompter) Select(title string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithOptions(options).Show(title)
}

func (ptermPrompter) Input(title string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(title)
}

// TerminalPrompter returns the interactive terminal prompter.
func TerminalPrompter() Prompter {
	return ptermPrompter{}
}

// NewMenuCmd creates the interactive menu command
func NewMenuCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Choose the operation and source interactively",
		Args:  cobra.NoArgs,
		RunE:  MenuRunE(o, ptermPrompter{}),
	}
}

// MenuRunE returns a cobra run function resolving the config through p.
func MenuRunE(o *opts.RootOpts, p Prompter) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := ResolveMenu(cmd.Context(), o.Config, p)
		if err != nil {
			return errors.Errorf("resolving menu choice: %w", err)
		}
		if _, err := run(cmd.Context(), o, cfg); err != nil {
			return errors.Errorf("running %s: %w", cfg.Mode, err)
		}
		return nil
	}
}

// ResolveMenu completes cfg from the operator's answers.
//
// Copy offers the presets under source_root plus a custom directory. A preset
// is copied into the configured destination, or the working directory when
// none is set. A custom directory, where empty or "." means the working
// directory, is copied into <dir>_X. Restore works on the restore target.
func ResolveMenu(ctx context.Context, cfg *config.Config, p Prompter) (*config.Config, error) {
	choice, err := p.Select("Select operation", []string{"1: copy", "2: restore"})
	if err != nil {
		return nil, errors.Errorf("selecting operation: %w", err)
	}
	mode, err := config.ParseMode(strings.SplitN(choice, ":", 2)[0])
	if err != nil {
		return nil, err
	}
	cfg.Mode = mode
	zerolog.Ctx(ctx).Debug().Str("mode", string(mode)).Msg("menu selection")

	if mode == config.ModeRestore {
		return cfg, nil
	}

	title := "Repository"
	if cfg.SourceRoot != "" {
		title += " (in " + cfg.SourceRoot + ")"
	}
	repo, err := p.Select(title, append(cfg.PresetNames(), customChoice))
	if err != nil {
		return nil, errors.Errorf("selecting repository: %w", err)
	}

	if repo != customChoice {
		src, err := cfg.PresetSource(repo)
		if err != nil {
			return nil, err
		}
		cfg.Source = src
		if cfg.Destination == "" {
			cfg.Destination = "."
		}
		return cfg, nil
	}

	dir, err := p.Input("Custom directory (empty or . for the current directory)")
	if err != nil {
		return nil, errors.Errorf("reading directory: %w", err)
	}
	dir = strings.TrimSpace(dir)
	if dir == "" || dir == "." {
		if dir, err = os.Getwd(); err != nil {
			return nil, errors.Errorf("getting working directory: %w", err)
		}
	}
	cfg.Source = dir
	cfg.Destination = config.DefaultDestination(dir)
	return cfg, nil
}
