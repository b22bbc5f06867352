package assets

import (
	"fmt"
	"os"
)

// OpenDir returns a loader for a theme directory on disk.
// Reads go through an os.Root, so neither ".." nor a symlink can reach a
// file outside dir. The directory stays open for the life of the process.
func OpenDir(dir string) (*FSLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, dir)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, dir)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	return NewFSLoader(root.FS(), dir), nil
}
