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

package main

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
	"github.com/walteh/xfile/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// buildReport is what `xfile version` prints: the build plus the tagging
// defaults compiled into it, so copies made by different builds can be told apart.
type buildReport struct {
	Version          string   `json:"version"`
	Revision         string   `json:"revision,omitempty"`
	Platform         string   `json:"platform"`
	Suffix           string   `json:"suffix"`
	MarkerExtensions []string `json:"marker_extensions"`
	IgnoreDirs       []string `json:"ignore_dirs"`
}

func readBuildReport() *buildReport {
	report := &buildReport{
		Version:          "dev",
		Platform:         runtime.GOOS + "/" + runtime.GOARCH,
		Suffix:           config.DefaultSuffix,
		MarkerExtensions: config.DefaultMarkerExtensions,
		IgnoreDirs:       config.DefaultIgnoreDirs,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return report
	}
	if v := bi.Main.Version; v != "" && v != "(devel)" {
		report.Version = v
	}
	for _, setting := range bi.Settings {
		if setting.Key == "vcs.revision" {
			report.Revision = setting.Value
		}
	}
	return report
}

func (r *buildReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚀 xfile %s (%s)\n", r.Version, r.Platform)
	if r.Revision != "" {
		fmt.Fprintf(&b, "revision: %s\n", r.Revision)
	}
	fmt.Fprintf(&b, "suffix:   %s\n", r.Suffix)
	fmt.Fprintf(&b, "markers:  %s\n", strings.Join(r.MarkerExtensions, " "))
	fmt.Fprintf(&b, "ignored:  %s\n", strings.Join(r.IgnoreDirs, " "))
	return b.String()
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build and its default suffix, markers and ignore set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report := readBuildReport()
			if !asJSON {
				fmt.Fprint(cmd.OutOrStdout(), report.String())
				return nil
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return errors.Errorf("encoding version: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}
