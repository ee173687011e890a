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

	"github.com/rs/zerolog"
	"github.com/walteh/xfile/pkg/config"
	"github.com/walteh/xfile/pkg/lock"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes the operation selected by a handler's config
type Runner struct {
	handler *Handler
	lockDir string
}

// 🏗️ NewRunner creates a new runner. lockDir is where the tree lock is
// kept; empty means the OS temp directory.
func NewRunner(h *Handler, lockDir string) *Runner {
	return &Runner{
		handler: h,
		lockDir: lockDir,
	}
}

// 🏃 Run locks the tree the operation mutates, runs it and reports the
// summary. The summary is reported even when the walk was cut short.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	cfg := r.handler.cfg

	var op func(context.Context) (*Result, error)
	var tree string
	switch cfg.Mode {
	case config.ModeCopy:
		op, tree = r.handler.Copy, cfg.Destination
	case config.ModeRestore:
		op, tree = r.handler.Restore, cfg.RestoreTarget
	default:
		return nil, errors.Errorf("%w: %q", config.ErrInvalidMode, cfg.Mode)
	}

	l, err := lock.Acquire(r.lockDir, tree)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := l.Release(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("releasing tree lock")
		}
	}()

	res, err := op(ctx)
	if res != nil {
		r.handler.reporter.LogSummary(res.Operation, res.Processed, res.FailedPaths())
	}
	if err != nil {
		return res, errors.Errorf("running %s: %w", cfg.Mode, err)
	}
	return res, nil
}
