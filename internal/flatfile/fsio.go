package flatfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

type syncer interface {
	Sync() error
}

// writeFileAtomic writes data next to path under a temp name, syncs it when
// the filesystem supports it, and renames it into place.
func writeFileAtomic(fs billy.Filesystem, path string, data []byte) error {
	tmp, err := fs.TempFile(filepath.Dir(path), tmpPrefix)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if f, ok := tmp.(syncer); ok {
		if err := f.Sync(); err != nil {
			tmp.Close()
			fs.Remove(tmpName)
			return fmt.Errorf("syncing temp file: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func readFile(fs billy.Filesystem, path string) ([]byte, error) {
	return util.ReadFile(fs, path)
}

// readDir lists dir, treating a missing directory as empty.
func readDir(fs billy.Filesystem, dir string) ([]os.FileInfo, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return entries, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
