package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// LocalStore writes uploads under a directory that the HTTP server also serves
// at urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
	now       func() time.Time
	logger    *zap.Logger
}

// NewLocalStore creates the upload root if needed. Saved files are reported
// as URL paths under urlPrefix, whatever dir looks like on disk.
func NewLocalStore(dir, urlPrefix string, logger *zap.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if urlPrefix == "" {
		urlPrefix = "/uploads"
	}
	return &LocalStore{dir: dir, urlPrefix: urlPrefix, now: time.Now, logger: logger}, nil
}

// Save writes body to <dir>/<folder>/<unix-ms>-<uuid><ext> and returns
// <urlPrefix>/<folder>/<name>.
func (s *LocalStore) Save(ctx context.Context, folder, originalName, _ string, body io.Reader, _ int64) (ref string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	rel := filepath.Clean("/" + folder)[1:]
	target := filepath.Join(s.dir, rel)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create folder %s: %w", folder, err)
	}

	name := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	full := filepath.Join(target, name)

	f, err := os.Create(full)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
		if err != nil {
			_ = os.Remove(full)
			ref = ""
		}
	}()

	if _, err := io.Copy(f, body); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	s.logger.Debug("upload stored", zap.String("path", full))
	return path.Join("/", s.urlPrefix, filepath.ToSlash(rel), name), nil
}
