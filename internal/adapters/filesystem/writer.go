package filesystem

import (
	"context"
	stderrs "errors"
	"fmt"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/olusolaa/halyard-bootstrap/internal/core/ports"
	"github.com/olusolaa/halyard-bootstrap/internal/errors"
)

const (
	secretMode     fs.FileMode = 0o400
	fileMode       fs.FileMode = 0o600
	executableMode fs.FileMode = 0o700
	dirMode        fs.FileMode = 0o755
)

// Writer creates files owned by a service identity. Files are always
// created fresh; an existing file at the path is removed first.
type Writer struct {
	owner  string
	uid    int
	gid    int
	chown  bool
	logger ports.Logger
}

// NewWriter resolves owner to a uid/gid. An empty owner leaves ownership
// with the current process.
func NewWriter(owner string, logger ports.Logger) (*Writer, error) {
	w := &Writer{owner: owner, logger: logger, uid: -1, gid: -1}
	if owner == "" {
		return w, nil
	}
	u, err := user.Lookup(owner)
	if err != nil {
		return nil, errors.WrapUserFacing(err, errors.CodeConfigValidation,
			fmt.Sprintf("service user %q does not exist", owner),
			"Install Halyard first or set credentials.service_user.")
	}
	w.uid, err = strconv.Atoi(u.Uid)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("non-numeric uid for %s", owner))
	}
	w.gid, err = strconv.Atoi(u.Gid)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, fmt.Sprintf("non-numeric gid for %s", owner))
	}
	w.chown = true
	return w, nil
}

// WriteSecret writes data readable only by the owner.
func (w *Writer) WriteSecret(path string, data []byte) error {
	return w.write(path, data, secretMode)
}

func (w *Writer) WriteFile(path string, data []byte, executable bool) error {
	mode := fileMode
	if executable {
		mode = executableMode
	}
	return w.write(path, data, mode)
}

func (w *Writer) write(path string, data []byte, mode fs.FileMode) error {
	if err := w.ensureDir(filepath.Dir(path)); err != nil {
		return errors.Wrap(err, errors.CodeCredentialWrite, fmt.Sprintf("failed to prepare directory for %s", path))
	}
	if err := os.Remove(path); err != nil && !stderrs.Is(err, fs.ErrNotExist) {
		return errors.Wrap(err, errors.CodeCredentialWrite, fmt.Sprintf("failed to replace %s", path))
	}

	if err := w.create(path, data, mode); err != nil {
		if rmErr := os.Remove(path); rmErr != nil && !stderrs.Is(rmErr, fs.ErrNotExist) {
			w.logger.Warnf(context.Background(), "Could not remove partial file %s: %v", path, rmErr)
		}
		return errors.Wrap(err, errors.CodeCredentialWrite, fmt.Sprintf("failed to write %s", path))
	}
	w.logger.Debugf(context.Background(), "Wrote %s (mode %o, owner %s)", path, mode, w.ownerName())
	return nil
}

func (w *Writer) create(path string, data []byte, mode fs.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if w.chown {
		if err := os.Chown(path, w.uid, w.gid); err != nil {
			return err
		}
	}
	return os.Chmod(path, mode)
}

// ensureDir creates dir and any missing parents, handing each newly created
// directory to the owner.
func (w *Writer) ensureDir(dir string) error {
	var missing []string
	for d := dir; ; d = filepath.Dir(d) {
		if _, err := os.Stat(d); err == nil {
			break
		} else if !stderrs.Is(err, fs.ErrNotExist) {
			return err
		}
		missing = append(missing, d)
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	if len(missing) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}
	if !w.chown {
		return nil
	}
	for _, d := range missing {
		if err := os.Chown(d, w.uid, w.gid); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) ownerName() string {
	if w.owner == "" {
		return "<current>"
	}
	return w.owner
}
