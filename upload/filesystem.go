package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/siherrmann/dataTable/helper"
)

const (
	STORAGE_MODE_LOCAL  = "local"
	STORAGE_MODE_S3     = "s3"
	STORAGE_MODE_MEMORY = "memory"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

type File struct {
	Name     string
	Size     int64
	MimeType string
	ModTime  time.Time
}

// Filesystem stores exported artifacts. Every Filesystem is usable as table.ArtifactSink.
type Filesystem interface {
	WriteArtifact(ctx context.Context, name string, mimeType string, data []byte) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Delete(ctx context.Context, name string) error
	// ListFiles returns the stored files, newest first.
	ListFiles(ctx context.Context) ([]File, error)
}

// CreateFilesystemFromConfig creates a filesystem for the configured storage mode.
func CreateFilesystemFromConfig(cfg helper.StorageConfig) (Filesystem, error) {
	storageMode := strings.ToLower(cfg.Mode)

	switch storageMode {
	case STORAGE_MODE_S3:
		if cfg.S3.BucketName == "" || cfg.S3.AccessKeyID == "" || cfg.S3.SecretAccessKey == "" {
			return nil, fmt.Errorf("missing required S3 configuration: bucket_name, access_key_id, secret_access_key")
		}
		return NewFilesystemS3(cfg.S3)
	case STORAGE_MODE_MEMORY:
		return NewFilesystemMemory(), nil
	case STORAGE_MODE_LOCAL, "":
		basePath := cfg.Path
		if basePath == "" {
			basePath = "./exports"
		}
		return NewFilesystemLocal(basePath), nil
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s (supported: local, s3, memory)", storageMode)
	}
}

// ValidateName accepts slash separated relative names that stay inside the store.
func ValidateName(name string) error {
	if name == "" || strings.HasPrefix(name, "/") || strings.Contains(name, "\\") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if path.Clean(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, segment := range strings.Split(name, "/") {
		if segment == ".." || segment == "." {
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

func sortNewestFirst(files []File) {
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Name < files[j].Name
		}
		return files[i].ModTime.After(files[j].ModTime)
	})
}
