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
	"github.com/walteh/xfile/pkg/classify"
	"github.com/walteh/xfile/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Copy mirrors the source tree into the destination, tagging text-like
// files with the suffix. Only a problem with the source root itself or a
// cancelled context is returned as an error; the partial result is returned
// alongside it.
func (h *Handler) Copy(ctx context.Context) (*Result, error) {
	src, dst := h.cfg.Source, h.cfg.Destination
	res := &Result{Operation: "copy"}

	h.reporter.LogStart("copying files",
		"source", src,
		"destination", dst,
		"suffix", h.cfg.Suffix,
		"ignore", strings.Join(h.ignore.Entries(), ", "))

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return res, errors.Errorf("resolving source: %w", err)
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		return res, errors.Errorf("resolving destination: %w", err)
	}

	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == src {
				return walkErr
			}
			// the directory was entered but its entries could not be listed
			h.fail(res, path, errors.Errorf("reading directory: %w", walkErr))
			return nil
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			h.fail(res, path, errors.Errorf("resolving relative path: %w", err))
			return nil
		}

		if d.IsDir() {
			return h.enterDir(ctx, res, path, filepath.Join(absSrc, rel) == absDst, filepath.Join(dst, rel))
		}

		h.copyEntry(ctx, res, path, d, filepath.Join(dst, rel))
		return nil
	})
	if err != nil {
		return res, errors.Errorf("walking %s: %w", src, err)
	}

	return res, nil
}

// enterDir decides whether a directory is walked and creates its mirror.
func (h *Handler) enterDir(ctx context.Context, res *Result, path string, isDestination bool, target string) error {
	if h.ignore.Match(path) {
		h.reporter.LogFileChange(status.FileChange{Action: status.ActionSkippedDir, Source: path})
		return filepath.SkipDir
	}
	if isDestination {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("skipping destination inside source")
		return filepath.SkipDir
	}

	if err := os.MkdirAll(target, 0755); err != nil {
		h.fail(res, path, errors.Errorf("creating directory %s: %w", target, err))
		return filepath.SkipDir
	}
	return nil
}

// copyEntry copies one non-directory entry, recording any failure.
func (h *Handler) copyEntry(ctx context.Context, res *Result, path string, d fs.DirEntry, target string) {
	info, err := d.Info()
	if err == nil && d.Type()&fs.ModeSymlink != 0 {
		info, err = os.Stat(path)
		if err == nil && info.IsDir() {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("not following directory symlink")
			return
		}
	}

	res.Processed++

	if err != nil {
		h.fail(res, path, errors.Errorf("reading file info: %w", err))
		return
	}
	if !info.Mode().IsRegular() {
		h.fail(res, path, errors.Errorf("not a regular file (%s)", info.Mode().Type()))
		return
	}

	action := status.ActionCopiedDirect
	keepTimes := true
	if h.classifier.ClassifyFile(ctx, path) == classify.TextLike {
		action = status.ActionCopiedWithSuffix
		keepTimes = false
		target += h.cfg.Suffix
	}

	if err := copyFile(ctx, path, target, info, keepTimes); err != nil {
		h.fail(res, path, err)
		return
	}

	h.reporter.LogFileChange(status.FileChange{Action: action, Source: path, Target: target})
}
