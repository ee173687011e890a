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

// Package status reports what a run does to each file and summarizes it.
package status

import (
	"fmt"
)

// 📊 Action is what happened to a single file
type Action int

const (
	ActionCopiedWithSuffix Action = iota // text-like file copied under a tagged name
	ActionCopiedDirect                   // binary file copied under its own name
	ActionRestored                       // tagged file renamed back
	ActionDeletedDuplicate               // tagged file removed, untagged name already taken
	ActionSkippedDir                     // directory pruned by the ignore set
	ActionFailed                         // the file could not be handled
)

// String returns a string representation of Action
func (a Action) String() string {
	switch a {
	case ActionCopiedWithSuffix:
		return "copied-with-suffix"
	case ActionCopiedDirect:
		return "copied-direct"
	case ActionRestored:
		return "restored"
	case ActionDeletedDuplicate:
		return "deleted-as-duplicate"
	case ActionSkippedDir:
		return "skipped"
	case ActionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🖼️ FileChange describes one action taken on a file
type FileChange struct {
	Action Action
	Source string // file acted on
	Target string // where it ended up, empty for deletions and skips
	Err    error  // set for ActionFailed
}

// Message renders the change as a single line without styling.
func (c FileChange) Message() string {
	switch c.Action {
	case ActionCopiedWithSuffix:
		return fmt.Sprintf("Copied with suffix %s -> %s", c.Source, c.Target)
	case ActionCopiedDirect:
		return fmt.Sprintf("Copied %s -> %s", c.Source, c.Target)
	case ActionRestored:
		return fmt.Sprintf("Restored %s -> %s", c.Source, c.Target)
	case ActionDeletedDuplicate:
		return fmt.Sprintf("Target exists, deleted %s", c.Source)
	case ActionSkippedDir:
		return fmt.Sprintf("Skipped ignored directory %s", c.Source)
	case ActionFailed:
		if c.Err == nil {
			return fmt.Sprintf("Failed %s", c.Source)
		}
		return fmt.Sprintf("Failed %s: %v", c.Source, c.Err)
	default:
		return c.Source
	}
}
