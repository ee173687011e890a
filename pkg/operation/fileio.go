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
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// tempPattern names in-flight copies. It is independent of the target name so
// a target close to the file name limit still fits.
const tempPattern = ".xfile-*.tmp"

// 💾 copyFile writes the content of src to dst through a temp file in the
// destination directory, so dst is either complete or untouched. The mode of
// src is kept, and its modification time too when keepTimes is set.
// Metadata that cannot be applied is only logged.
func copyFile(ctx context.Context, src, dst string, info fs.FileInfo, keepTimes bool) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), tempPattern)
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Ensure temp file is cleaned up on error
	defer func() {
		if tmp != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(tmp, in); err != nil {
		return errors.Errorf("copying content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	logger := zerolog.Ctx(ctx)
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		logger.Warn().Err(err).Str("path", dst).Msg("could not preserve permissions")
	}
	if keepTimes {
		if err := os.Chtimes(tmpPath, info.ModTime(), info.ModTime()); err != nil {
			logger.Warn().Err(err).Str("path", dst).Msg("could not preserve modification time")
		}
	}

	if err := os.Rename(tmpPath, dst); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	// the temp file is now dst
	tmp = nil
	return nil
}
