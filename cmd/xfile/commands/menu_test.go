package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/xfile/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// 🎭 fakePrompter answers prompts from a fixed script
type fakePrompter struct {
	answers []string
	titles  []string
}

func (f *fakePrompter) next(title string) (string, error) {
	f.titles = append(f.titles, title)
	if len(f.answers) == 0 {
		return "", errors.New("no answer left")
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

func (f *fakePrompter) Select(title string, options []string) (string, error) {
	return f.next(title)
}

func (f *fakePrompter) Input(title string) (string, error) {
	return f.next(title)
}

func TestResolveMenu(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name    string
		setup   func(cfg *config.Config)
		answers []string
		wantErr error
		check   func(t *testing.T, cfg *config.Config)
	}{
		{
			name:    "restore",
			answers: []string{"2: restore"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.ModeRestore, cfg.Mode)
				assert.Equal(t, ".", cfg.RestoreTarget)
			},
		},
		{
			name:    "preset",
			setup:   func(cfg *config.Config) { cfg.SourceRoot = filepath.Join("D:", "CAD") },
			answers: []string{"1: copy", "Upstream"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.ModeCopy, cfg.Mode)
				assert.Equal(t, filepath.Join("D:", "CAD", "Upstream"), cfg.Source)
				assert.Equal(t, ".", cfg.Destination, "presets copy into the working directory")
			},
		},
		{
			name:    "preset_keeps_configured_destination",
			setup:   func(cfg *config.Config) { cfg.Destination = "/tmp/out" },
			answers: []string{"1: copy", "MantiSoft"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "MantiSoft", cfg.Source)
				assert.Equal(t, "/tmp/out", cfg.Destination)
			},
		},
		{
			name:    "custom_directory",
			setup:   func(cfg *config.Config) { cfg.Destination = "/tmp/ignored" },
			answers: []string{"1: copy", customChoice, " /work/repo "},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "/work/repo", cfg.Source)
				assert.Equal(t, "/work/repo_X", cfg.Destination)
			},
		},
		{
			name:    "custom_current_directory",
			answers: []string{"1: copy", customChoice, "."},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, wd, cfg.Source)
				assert.Equal(t, wd+"_X", cfg.Destination)
			},
		},
		{
			name:    "custom_empty_directory",
			answers: []string{"1: copy", customChoice, ""},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, wd, cfg.Source)
			},
		},
		{
			name:    "invalid_mode",
			answers: []string{"3: delete"},
			wantErr: config.ErrInvalidMode,
		},
		{
			name:    "unknown_preset",
			answers: []string{"1: copy", "Elsewhere"},
			wantErr: config.ErrUnknownPreset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			if tt.setup != nil {
				tt.setup(cfg)
			}
			p := &fakePrompter{answers: tt.answers}

			got, err := ResolveMenu(context.Background(), cfg, p)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, p.answers, "every answer should be consumed")
			tt.check(t, got)
		})
	}
}

func TestResolveMenuPromptError(t *testing.T) {
	_, err := ResolveMenu(context.Background(), config.Default(), &fakePrompter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selecting operation")
}
