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

package status

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 Reporter prints user-facing progress and mirrors it into zerolog
type Reporter struct {
	log zerolog.Logger
	out io.Writer
}

// 🎯 NewReporter creates a reporter writing to out, or stdout when out is nil
func NewReporter(ctx context.Context, out io.Writer) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	return &Reporter{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

// Writer returns the stream progress lines are written to.
func (r *Reporter) Writer() io.Writer {
	return r.out
}

// 📝 LogFileChange prints one line for the change
func (r *Reporter) LogFileChange(change FileChange) {
	msg := change.Message()
	r.printer(change.Action).Println(msg)

	event := r.log.Info()
	switch change.Action {
	case ActionFailed:
		event = r.log.Error().Err(change.Err)
	case ActionSkippedDir:
		event = r.log.Debug()
	}
	event.
		Str("action", change.Action.String()).
		Str("source", change.Source).
		Str("target", change.Target).
		Msg("file change")
}

func (r *Reporter) printer(action Action) *pterm.PrefixPrinter {
	switch action {
	case ActionCopiedWithSuffix:
		return pterm.Success.WithPrefix(pterm.Prefix{Text: "🏷️", Style: pterm.Success.Prefix.Style}).WithWriter(r.out)
	case ActionCopiedDirect:
		return pterm.Success.WithPrefix(pterm.Prefix{Text: "📄", Style: pterm.Success.Prefix.Style}).WithWriter(r.out)
	case ActionRestored:
		return pterm.Info.WithPrefix(pterm.Prefix{Text: "🔄", Style: pterm.Info.Prefix.Style}).WithWriter(r.out)
	case ActionDeletedDuplicate:
		return pterm.Warning.WithPrefix(pterm.Prefix{Text: "🗑️", Style: pterm.Warning.Prefix.Style}).WithWriter(r.out)
	case ActionSkippedDir:
		return pterm.Debug.WithPrefix(pterm.Prefix{Text: "⏭️", Style: pterm.Debug.Prefix.Style}).WithWriter(r.out)
	default:
		return pterm.Error.WithPrefix(pterm.Prefix{Text: "❌", Style: pterm.Error.Prefix.Style}).WithWriter(r.out)
	}
}

// 📦 LogStart announces an operation followed by key/value parameter pairs
func (r *Reporter) LogStart(title string, kv ...string) {
	pterm.Info.WithPrefix(pterm.Prefix{Text: "📦", Style: pterm.Info.Prefix.Style}).WithWriter(r.out).Println(title)
	event := r.log.Info()
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(r.out, "    %s: %s\n", kv[i], kv[i+1])
		event = event.Str(kv[i], kv[i+1])
	}
	event.Msg(title)
}

// 📊 LogSummary prints the final summary of an operation
func (r *Reporter) LogSummary(operation string, processed int, failures []string) {
	fmt.Fprint(r.out, FormatSummary(operation, processed, failures))
	r.log.Info().
		Str("operation", operation).
		Int("processed", processed).
		Int("failed", len(failures)).
		Strs("failures", failures).
		Msg("operation complete")
}
