package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"asset-approval-backend/internal/domain/upload"
)

// PublicPrefix is the URL path the upload root is served under.
const PublicPrefix = "/uploads"

var ErrInvalidKey = errors.New("invalid storage key")

var _ upload.Storage = (*Local)(nil)

// Local keeps uploads on disk below Root and links them under BaseURL + PublicPrefix.
type Local struct {
	Root    string
	BaseURL string
}

func NewLocal(root, baseURL string) (*Local, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{Root: abs, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// resolve maps key to a path inside Root, refusing traversal.
func (l *Local) resolve(key string) (string, error) {
	clean := path.Clean("/" + key)[1:]
	if clean == "" || clean != key || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	full := filepath.Join(l.Root, filepath.FromSlash(clean))
	if !strings.HasPrefix(full, l.Root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return full, nil
}

func (l *Local) Put(ctx context.Context, key string, r io.Reader, size int64, mimeType string) (*upload.Object, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := l.resolve(key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(filepath.Dir(full), ".upload-*")
	if err != nil {
		return nil, err
	}
	n, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil && size > 0 && n != size {
		err = fmt.Errorf("short write: %d of %d bytes", n, size)
	}
	if err == nil {
		err = os.Rename(tmp.Name(), full)
	}
	if err != nil {
		_ = os.Remove(tmp.Name())
		return nil, err
	}

	return &upload.Object{
		Key:      key,
		URL:      l.BaseURL + PublicPrefix + "/" + key,
		Size:     n,
		MimeType: mimeType,
	}, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	full, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
