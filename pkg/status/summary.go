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
	"fmt"
	"strings"

	"github.com/fatih/color"
)

const failureIndent = 4 // spaces to indent failed paths

// 🎯 FormatSummary renders the end-of-run summary. Failed paths are listed
// again so none get lost in long progress output.
func FormatSummary(operation string, processed int, failures []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n%s %s\n",
		color.New(color.Bold, color.FgCyan).Sprintf("%s complete", operation),
		color.New(color.Faint).Sprintf("• processed %d %s", processed, plural(processed, "file", "files")))

	if len(failures) == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\n%s\n", color.RedString("%d failed:", len(failures)))
	for _, path := range failures {
		fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat(" ", failureIndent), color.RedString("✗"), path)
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
