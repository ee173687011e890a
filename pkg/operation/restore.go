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

package operation

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/xfile/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔄 Restore strips the suffix from every tagged file under the restore
// target. If the untagged name is already taken the tagged file is deleted and
// the existing file is kept as is.
func (h *Handler) Restore(ctx context.Context) (*Result, error) {
	root, suffix := h.cfg.RestoreTarget, h.cfg.Suffix
	res := &Result{Operation: "restore"}

	h.reporter.LogStart("restoring files",
		"target", root,
		"suffix", suffix)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			h.fail(res, path, errors.Errorf("reading directory: %w", walkErr))
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				zerolog.Ctx(ctx).Debug().Str("path", path).Msg("not restoring directory symlink")
				return nil
			}
		}

		res.Processed++
		h.restoreFile(res, path, strings.TrimSuffix(d.Name(), suffix))
		return nil
	})
	if err != nil {
		return res, errors.Errorf("walking %s: %w", root, err)
	}

	return res, nil
}

// restoreFile renames path to name in the same directory, or deletes it when
// name already exists.
func (h *Handler) restoreFile(res *Result, path, name string) {
	if name == "" {
		h.fail(res, path, errors.Errorf("file name is only the suffix"))
		return
	}
	target := filepath.Join(filepath.Dir(path), name)

	_, err := os.Lstat(target)
	switch {
	case err == nil:
		if err := os.Remove(path); err != nil {
			h.fail(res, path, errors.Errorf("deleting duplicate: %w", err))
			return
		}
		h.reporter.LogFileChange(status.FileChange{Action: status.ActionDeletedDuplicate, Source: path})
	case os.IsNotExist(err):
		if err := os.Rename(path, target); err != nil {
			h.fail(res, path, errors.Errorf("renaming to %s: %w", target, err))
			return
		}
		h.reporter.LogFileChange(status.FileChange{Action: status.ActionRestored, Source: path, Target: target})
	default:
		h.fail(res, path, errors.Errorf("checking %s: %w", target, err))
	}
}
