package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/siherrmann/dataTable/helper"
)

const TEMP_DIR = ".tmp"

// FilesystemBilly stores artifacts in a go-billy filesystem.
type FilesystemBilly struct {
	fs billy.Filesystem
}

// NewFilesystemMemory creates an in-memory filesystem, used by tests and the memory storage mode.
func NewFilesystemMemory() Filesystem {
	return &FilesystemBilly{fs: memfs.New()}
}

// WriteArtifact writes into a temp file first and renames it, so readers
// never see a partially written export.
func (b *FilesystemBilly) WriteArtifact(ctx context.Context, name string, mimeType string, data []byte) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := path.Dir(name); dir != "." {
		if err := b.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating directory %s: %w", dir, err)
		}
	}
	if err := b.fs.MkdirAll(TEMP_DIR, 0755); err != nil {
		return fmt.Errorf("error creating temp directory: %w", err)
	}

	tmp, err := b.fs.TempFile(TEMP_DIR, "artifact-")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = b.fs.Remove(tmp.Name())
		return fmt.Errorf("error writing %s: %w", name, err)
	}

	if err := b.fs.Rename(tmp.Name(), name); err != nil {
		_ = b.fs.Remove(tmp.Name())
		return fmt.Errorf("error moving %s into place: %w", name, err)
	}
	return nil
}

func (b *FilesystemBilly) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	file, err := b.fs.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return file, err
}

func (b *FilesystemBilly) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	err := b.fs.Remove(name)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return err
}

func (b *FilesystemBilly) ListFiles(ctx context.Context) ([]File, error) {
	files := []File{}

	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := b.fs.ReadDir(dir)
		if err != nil {
			return err
		}

		for _, entry := range entries {
			name := entry.Name()
			if dir != "." {
				name = path.Join(dir, name)
			}

			if entry.IsDir() {
				if name == TEMP_DIR {
					continue
				}
				if err := walk(name); err != nil {
					return err
				}
				continue
			}

			files = append(files, File{
				Name:     name,
				Size:     entry.Size(),
				MimeType: helper.GetMimeType(name),
				ModTime:  entry.ModTime(),
			})
		}
		return nil
	}

	if err := walk("."); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	sortNewestFirst(files)
	return files, nil
}
