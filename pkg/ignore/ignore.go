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

// Package ignore holds the set of directory names excluded from a copy.
package ignore

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// 🚫 Set matches directory basenames. Entries without glob metacharacters
// match exactly, the rest are doublestar patterns matched against the basename.
type Set struct {
	names    map[string]struct{}
	patterns []string
}

// 🏭 New builds a set from the given entries. Empty entries are skipped and a
// malformed pattern is an error.
func New(entries []string) (*Set, error) {
	s := &Set{names: make(map[string]struct{}, len(entries))}
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if !isPattern(entry) {
			s.names[entry] = struct{}{}
			continue
		}
		if !doublestar.ValidatePattern(entry) {
			return nil, errors.Errorf("invalid ignore pattern %q", entry)
		}
		s.patterns = append(s.patterns, entry)
	}
	return s, nil
}

func isPattern(entry string) bool {
	return strings.ContainsAny(entry, "*?[{")
}

// Match reports whether the last element of path is in the set.
func (s *Set) Match(path string) bool {
	if s == nil {
		return false
	}
	name := filepath.Base(path)
	if _, ok := s.names[name]; ok {
		return true
	}
	for _, pattern := range s.patterns {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// Len returns the number of entries in the set.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names) + len(s.patterns)
}

// Entries returns the names followed by the patterns, each group sorted.
func (s *Set) Entries() []string {
	if s == nil {
		return nil
	}
	out := make([]string, 0, s.Len())
	for name := range s.names {
		out = append(out, name)
	}
	sort.Strings(out)
	patterns := append([]string(nil), s.patterns...)
	sort.Strings(patterns)
	return append(out, patterns...)
}
