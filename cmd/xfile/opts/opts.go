package opts

import (
	"github.com/walteh/xfile/pkg/config"
	"github.com/walteh/xfile/pkg/status"
)

// RootOpts contains shared options used by all commands
type RootOpts struct {
	// Config starts as the loaded config file (or the defaults) and is
	// completed by each command from its flags
	Config   *config.Config
	Reporter *status.Reporter
	// LockDir holds the tree lock files, empty means the OS temp directory
	LockDir string
}
