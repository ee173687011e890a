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

package operation_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/walteh/xfile/pkg/config"
	"github.com/walteh/xfile/pkg/operation"
	"github.com/walteh/xfile/pkg/status"
)

const suffix = config.DefaultSuffix

// 🧪 newTestHandler creates a handler whose progress goes to the returned buffer
func newTestHandler(t *testing.T, cfg *config.Config) (context.Context, *operation.Handler, *bytes.Buffer) {
	t.Helper()

	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	logger := zerolog.New(zerolog.NewTestWriter(t))
	ctx := logger.WithContext(context.Background())

	var buf bytes.Buffer
	h, err := operation.New(operation.Options{
		Config:   cfg,
		Reporter: status.NewReporter(ctx, &buf),
	})
	require.NoError(t, err)
	return ctx, h, &buf
}

// 🧪 copyConfig returns a validated copy config for src and dst
func copyConfig(t *testing.T, src, dst string, ignoreDirs ...string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = config.ModeCopy
	cfg.Source = src
	cfg.Destination = dst
	if ignoreDirs != nil {
		cfg.IgnoreDirs = ignoreDirs
	}
	require.NoError(t, cfg.Validate())
	return cfg
}

// 🧪 restoreConfig returns a validated restore config for target
func restoreConfig(t *testing.T, target string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = config.ModeRestore
	cfg.RestoreTarget = target
	require.NoError(t, cfg.Validate())
	return cfg
}

// 🧪 writeTree creates files under root, keyed by slash separated relative path
func writeTree(t *testing.T, root string, files map[string][]byte) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, content, 0644))
	}
}

// 🧪 readTree returns every file under root keyed by slash separated relative path
func readTree(t *testing.T, root string) map[string][]byte {
	t.Helper()
	files := map[string][]byte{}
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = content
		return nil
	})
	require.NoError(t, err)
	return files
}
