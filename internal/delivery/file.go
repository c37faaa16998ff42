package delivery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GustavoCaso/expensetrack/internal/logger"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

var ErrInvalidName = errors.New("invalid file name")

// FileDeliverer saves payloads as files inside Dir.
// Files are written to a temporary name first and renamed into place, so a
// failed delivery never leaves a partial file behind.
type FileDeliverer struct {
	Dir    string
	Logger *logger.Logger
}

func NewFileDeliverer(dir string, l *logger.Logger) *FileDeliverer {
	return &FileDeliverer{
		Dir:    dir,
		Logger: l.With("component", "delivery"),
	}
}

// Path returns where a file called name is saved.
func (d *FileDeliverer) Path(name string) string {
	return filepath.Join(d.Dir, name)
}

func (d *FileDeliverer) Deliver(ctx context.Context, name, mimeType string, payload []byte) error {
	if name == "" || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.Dir, dirPermissions); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp, err := os.CreateTemp(d.Dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		if rmErr := os.Remove(tmpName); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			d.Logger.Warn("failed to remove temporary file", "file", tmpName, "error", rmErr)
		}
	}

	if _, err = tmp.Write(payload); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	if err = tmp.Chmod(filePermissions); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}

	if err = tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s: %w", name, err)
	}

	if err = os.Rename(tmpName, d.Path(name)); err != nil {
		cleanup()
		return fmt.Errorf("failed to save %s: %w", name, err)
	}

	d.Logger.Debug("file delivered", "path", d.Path(name), "mime", mimeType, "bytes", len(payload))

	return nil
}
