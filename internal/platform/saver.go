package platform

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// MaxNameAttempts bounds the name-1, name-2, ... search
const MaxNameAttempts = 1000

// FileSaver writes exported images into a directory without overwriting
type FileSaver struct {
	dir func() string
}

// NewFileSaver creates a saver; dir is consulted on every save so setting
// changes apply immediately
func NewFileSaver(dir func() string) *FileSaver {
	return &FileSaver{dir: dir}
}

// Save writes payload as fileName, or name-N.ext when the name is taken,
// and returns the final path. A partially written file is removed.
func (s *FileSaver) Save(ctx context.Context, payload []byte, mediaType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := s.dir()
	if dir == "" {
		return "", fmt.Errorf("download directory is not configured")
	}
	if err := CreateDirectoryIfNotExists(dir); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	f, path, err := createUnique(dir, filepath.Base(fileName))
	if err != nil {
		return "", err
	}

	if err := writeAndClose(f, payload); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Printf("Saved %s (%s, %d bytes)", path, mediaType, len(payload))
	NotifyMediaScanner(path)
	return path, nil
}

// createUnique exclusively creates the first free candidate name
func createUnique(dir, fileName string) (*os.File, string, error) {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)

	for i := 0; i < MaxNameAttempts; i++ {
		path := filepath.Join(dir, CandidateName(base, ext, i))
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFilePermissions)
		if err == nil {
			return f, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create %s: %w", path, err)
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s in %s", fileName, dir)
}

// CandidateName returns base.ext for n == 0 and base-n.ext otherwise
func CandidateName(base, ext string, n int) string {
	if n == 0 {
		return base + ext
	}
	return fmt.Sprintf("%s-%d%s", base, n, ext)
}

func writeAndClose(f *os.File, payload []byte) error {
	_, err := f.Write(payload)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
