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

package lock

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestAcquireRelease(t *testing.T) {
	lockDir := t.TempDir()
	tree := t.TempDir()

	l, err := Acquire(lockDir, tree)
	require.NoError(t, err)

	path, err := Path(lockDir, tree)
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, lockDir, filepath.Dir(path), "lock file must live outside the tree")

	// a second lock on the same tree is refused
	_, err = Acquire(lockDir, tree)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))

	require.NoError(t, l.Release())
	assert.FileExists(t, path, "lock file is kept so every run locks the same inode")

	l, err = Acquire(lockDir, tree)
	require.NoError(t, err)
	require.NoError(t, l.Release())
}

func TestReleaseKeepsInodeForWaiters(t *testing.T) {
	lockDir := t.TempDir()
	tree := t.TempDir()

	first, err := Acquire(lockDir, tree)
	require.NoError(t, err)
	path, err := Path(lockDir, tree)
	require.NoError(t, err)
	before, err := os.Stat(path)
	require.NoError(t, err)

	// a run that started waiting while the lock was held
	waiter := flock.New(path)
	require.NoError(t, first.Release())

	ok, err := waiter.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer waiter.Unlock()

	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, os.SameFile(before, after), "lock file must not be replaced")

	// a run starting now contends on the same file
	_, err = Acquire(lockDir, tree)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLocked))
}

func TestPathIsStable(t *testing.T) {
	tree := t.TempDir()

	a, err := Path("", tree)
	require.NoError(t, err)
	b, err := Path("", tree+string(filepath.Separator))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, os.TempDir(), filepath.Dir(a))

	other, err := Path("", t.TempDir())
	require.NoError(t, err)
	assert.NotEqual(t, a, other)
}
