package upload

import (
	"github.com/go-git/go-billy/v5/osfs"
)

// NewFilesystemLocal creates a filesystem rooted at basePath. Names cannot escape the root.
func NewFilesystemLocal(basePath string) Filesystem {
	return &FilesystemBilly{fs: osfs.New(basePath, osfs.WithBoundOS())}
}
