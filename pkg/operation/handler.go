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
	"github.com/walteh/xfile/pkg/classify"
	"github.com/walteh/xfile/pkg/config"
	"github.com/walteh/xfile/pkg/ignore"
	"github.com/walteh/xfile/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains what a Handler needs
type Options struct {
	// Config is a validated run configuration
	Config *config.Config
	// Reporter receives one change per file and the final summary
	Reporter *status.Reporter
}

// 📦 Handler copies and restores trees according to its config
type Handler struct {
	cfg        *config.Config
	ignore     *ignore.Set
	classifier *classify.Classifier
	reporter   *status.Reporter
}

// 🏭 New creates a handler with the given options
func New(opts Options) (*Handler, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Reporter == nil {
		return nil, errors.Errorf("reporter is required")
	}

	ignored, err := ignore.New(opts.Config.IgnoreDirs)
	if err != nil {
		return nil, errors.Errorf("building ignore set: %w", err)
	}

	return &Handler{
		cfg:        opts.Config,
		ignore:     ignored,
		classifier: classify.New(opts.Config.MarkerExtensions),
		reporter:   opts.Reporter,
	}, nil
}

// Config returns the handler's configuration.
func (h *Handler) Config() *config.Config {
	return h.cfg
}

// ❌ Failure is a file that could not be handled
type Failure struct {
	Path string
	Err  error
}

// 📊 Result is the outcome of one operation
type Result struct {
	Operation string
	Processed int
	Failures  []Failure
}

// FailedPaths returns the paths of all failures in the order they happened.
func (r *Result) FailedPaths() []string {
	paths := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		paths[i] = f.Path
	}
	return paths
}

// fail records a failure and reports it.
func (h *Handler) fail(res *Result, path string, err error) {
	res.Failures = append(res.Failures, Failure{Path: path, Err: err})
	h.reporter.LogFileChange(status.FileChange{Action: status.ActionFailed, Source: path, Err: err})
}
