package website

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pilcrowonpaper/website/internal/fileutil"
)

// BuildIDFile is the file holding the build id, relative to the working directory.
const BuildIDFile = ".BUILD_ID"

// DevBuildID is used when no build id file exists.
const DevBuildID = "dev"

// ReadBuildID returns the trimmed contents of path, or DevBuildID when the
// file does not exist.
func ReadBuildID(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DevBuildID, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading build id: %w", err)
	}

	id := strings.TrimSpace(string(data))
	if id == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrBuildID, path)
	}
	return id, nil
}

// WriteBuildID writes now as unix milliseconds to path and returns the id.
func WriteBuildID(path string, now time.Time) (string, error) {
	id := strconv.FormatInt(now.UnixMilli(), 10)
	if err := fileutil.WriteFileAtomic(path, []byte(id), 0o644); err != nil {
		return "", fmt.Errorf("writing build id: %w", err)
	}
	return id, nil
}
