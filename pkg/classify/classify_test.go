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

package classify

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestIsUTF8(t *testing.T) {
	// place a 3-byte rune across the first chunk boundary
	straddle := append(bytes.Repeat([]byte("a"), chunkSize-1), []byte("€tail")...)

	tests := []struct {
		name  string
		input []byte
		want  bool
	}{
		{name: "empty", input: nil, want: true},
		{name: "ascii", input: []byte("hello world\n"), want: true},
		{name: "multibyte", input: []byte("héllo 世界 🚀"), want: true},
		{name: "bom", input: []byte("\xef\xbb\xbfdata"), want: true},
		{name: "straddles_chunk", input: straddle, want: true},
		{name: "invalid_byte", input: []byte("abc\xffdef"), want: false},
		{name: "truncated_at_eof", input: []byte("abc\xe2\x82"), want: false},
		{name: "surrogate", input: []byte("\xed\xa0\x80"), want: false},
		{name: "overlong", input: []byte("\xc0\xaf"), want: false},
		{name: "nul_bytes_are_valid", input: []byte{0, 0, 'a'}, want: true},
		{name: "invalid_after_first_chunk", input: append(bytes.Repeat([]byte("a"), chunkSize*2), 0xfe), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsUTF8(bytes.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			// a reader returning one byte at a time must agree
			got, err = IsUTF8(iotest.OneByteReader(bytes.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got, "one byte reader")
		})
	}
}

func TestIsUTF8ReadError(t *testing.T) {
	got, err := IsUTF8(iotest.ErrReader(errors.New("disk gone")))
	require.Error(t, err)
	assert.False(t, got)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestIsMarker(t *testing.T) {
	c := New([]string{".idx", "LST", ""})

	assert.True(t, c.IsMarker("index.idx"))
	assert.True(t, c.IsMarker("INDEX.IDX"))
	assert.True(t, c.IsMarker("files.lst"))
	assert.False(t, c.IsMarker("idx"))
	assert.False(t, c.IsMarker("a.bin"))
	assert.False(t, c.IsMarker("noext"))
}

func TestClassifyFile(t *testing.T) {
	ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
	dir := t.TempDir()

	write := func(name string, content []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, content, 0644))
		return path
	}

	c := New([]string{".idx"})

	assert.Equal(t, TextLike, c.ClassifyFile(ctx, write("a.txt", []byte(strings.Repeat("line\n", 100)))))
	assert.Equal(t, Binary, c.ClassifyFile(ctx, write("b.bin", []byte{0xff, 0xd8, 0xff, 0xe0})))
	assert.Equal(t, TextLike, c.ClassifyFile(ctx, write("c.IDX", []byte{0xff, 0x00, 0x81})), "marker extension wins over content")
	assert.Equal(t, Binary, c.ClassifyFile(ctx, filepath.Join(dir, "missing.bin")), "unreadable file is binary")
	assert.Equal(t, TextLike, c.ClassifyFile(ctx, filepath.Join(dir, "missing.idx")), "marker extension needs no content")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "text", TextLike.String())
	assert.Equal(t, "binary", Binary.String())
}
