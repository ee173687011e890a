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

// Package lock keeps two runs from mutating the same tree at once.
package lock

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"gitlab.com/tozd/go/errors"
)

// ErrLocked is returned when another run already holds the lock for a tree.
var ErrLocked = errors.Base("tree is locked by another run")

// 🔒 TreeLock is an advisory lock on a directory tree. The lock file lives
// outside the tree so it never shows up in a copy or restore.
type TreeLock struct {
	flock *flock.Flock
	tree  string
}

// Path returns the lock file used for tree. dir is where lock files are kept;
// an empty dir means the OS temp directory.
func Path(dir, tree string) (string, error) {
	abs, err := filepath.Abs(tree)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", tree, err)
	}
	if dir == "" {
		dir = os.TempDir()
	}
	sum := sha256.Sum256([]byte(abs))
	return filepath.Join(dir, "xfile-"+hex.EncodeToString(sum[:8])+".lock"), nil
}

// 🏭 Acquire takes the lock for tree without blocking. It fails with ErrLocked
// if another run holds it.
func Acquire(dir, tree string) (*TreeLock, error) {
	path, err := Path(dir, tree)
	if err != nil {
		return nil, err
	}

	fl := flock.New(path)
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, errors.Errorf("failed to try lock on %s: %w", path, err)
	}
	if !acquired {
		return nil, errors.Errorf("%w: %s (lock file %s)", ErrLocked, tree, path)
	}

	return &TreeLock{flock: fl, tree: tree}, nil
}

// Release unlocks the tree. The lock file stays in place: unlinking it would
// let a waiting run lock the old inode while a new run locks a fresh file at
// the same path. A leftover file holds no lock and is reused by the next run.
func (l *TreeLock) Release() error {
	if err := l.flock.Unlock(); err != nil {
		return errors.Errorf("failed to release lock on %s: %w", l.tree, err)
	}
	return nil
}
