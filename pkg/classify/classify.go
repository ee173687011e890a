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

// Package classify decides whether a file is tagged as text during a copy.
//
// A file is text-like when its whole content is valid UTF-8 or its extension
// is one of the configured marker extensions. The content check streams the
// file in fixed-size chunks so large binaries are rejected at the first
// invalid sequence without being read into memory.
package classify

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

const chunkSize = 32 * 1024

// 🏷️ Kind is the result of classifying a file
type Kind int

const (
	Binary Kind = iota
	TextLike
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case TextLike:
		return "text"
	default:
		return "binary"
	}
}

// 🔍 Classifier classifies files by content and extension
type Classifier struct {
	markers map[string]struct{}
}

// 🏭 New creates a classifier treating the given extensions as text
func New(markerExtensions []string) *Classifier {
	markers := make(map[string]struct{}, len(markerExtensions))
	for _, ext := range markerExtensions {
		ext = strings.ToLower(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		markers[ext] = struct{}{}
	}
	return &Classifier{markers: markers}
}

// IsMarker reports whether name carries a marker extension. The comparison
// ignores case.
func (c *Classifier) IsMarker(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	_, ok := c.markers[ext]
	return ok
}

// ClassifyFile classifies the file at path. A file that cannot be opened or
// read is Binary; the cause is only logged at debug level.
func (c *Classifier) ClassifyFile(ctx context.Context, path string) Kind {
	ok, err := IsUTF8File(path)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("path", path).Msg("classification failed, treating as binary")
	}
	if ok || c.IsMarker(path) {
		return TextLike
	}
	return Binary
}

// IsUTF8File reports whether the file at path is entirely valid UTF-8.
func IsUTF8File(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return IsUTF8(f)
}

// IsUTF8 reports whether everything read from r is valid UTF-8. An empty
// reader is valid. On a read error the result is false.
func IsUTF8(r io.Reader) (bool, error) {
	buf := make([]byte, chunkSize)
	pending := 0
	for {
		n, err := r.Read(buf[pending:])
		data := buf[:pending+n]
		if errors.Is(err, io.EOF) {
			return utf8.Valid(data), nil
		}
		if err != nil {
			return false, errors.Errorf("reading content: %w", err)
		}

		tail := incompleteTail(data)
		if !utf8.Valid(data[:len(data)-tail]) {
			return false, nil
		}
		pending = copy(buf, data[len(data)-tail:])
	}
}

// incompleteTail returns the length of a multi-byte sequence cut off at the
// end of data, so it can be carried into the next chunk.
func incompleteTail(data []byte) int {
	for i := 1; i < utf8.UTFMax && i <= len(data); i++ {
		start := len(data) - i
		if !utf8.RuneStart(data[start]) {
			continue
		}
		if utf8.FullRune(data[start:]) {
			return 0
		}
		return i
	}
	return 0
}
