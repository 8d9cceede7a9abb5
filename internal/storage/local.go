// Package storage keeps swimmer photos on the local filesystem and serves
// them back under a public URL prefix.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/swimmeet/internal/core"
)

// Local is a core.PhotoStore backed by a directory.
type Local struct {
	root      string
	publicURL string
}

// NewLocal stores objects below dir and builds URLs as publicURL + "/" + key.
func NewLocal(dir, publicURL string) (*Local, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve storage dir: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &Local{root: abs, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

// Root returns the storage directory.
func (l *Local) Root() string {
	return l.root
}

// Put writes r under key after checking that the first bytes look like an
// image and that no more than core.MaxPhotoSize bytes arrive.
func (l *Local) Put(ctx context.Context, key, contentType string, size int64, r io.Reader) (string, error) {
	dst, err := l.path(key)
	if err != nil {
		return "", err
	}

	head := make([]byte, 512)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read photo: %w", err)
	}
	head = head[:n]
	if sniffed := http.DetectContentType(head); !strings.HasPrefix(sniffed, "image/") {
		return "", fmt.Errorf("%w: detected %s", core.ErrNotImage, sniffed)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create photo dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	body := io.MultiReader(bytes.NewReader(head), r)
	written, err := io.Copy(tmp, io.LimitReader(body, core.MaxPhotoSize+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}
	if written > core.MaxPhotoSize {
		return "", fmt.Errorf("%w: more than %d bytes", core.ErrPhotoTooLarge, core.MaxPhotoSize)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}

	slog.DebugContext(ctx, "photo stored", "key", key, "bytes", written, "content_type", contentType)
	return l.publicURL + "/" + key, nil
}

// Key strips the public prefix from url.
func (l *Local) Key(url string) (string, bool) {
	key, ok := strings.CutPrefix(url, l.publicURL+"/")
	return key, ok && key != ""
}

// Delete removes the object behind url. Only URLs under the public prefix
// are accepted.
func (l *Local) Delete(ctx context.Context, url string) error {
	key, ok := l.Key(url)
	if !ok {
		return fmt.Errorf("%w: %s is not a stored photo", core.ErrPhotoNotFound, url)
	}
	p, err := l.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", core.ErrPhotoNotFound, key)
		}
		return fmt.Errorf("delete photo: %w", err)
	}
	return nil
}

// Handler serves stored objects. Mount it with http.StripPrefix on the
// public URL path.
func (l *Local) Handler() http.Handler {
	return http.FileServer(noListing{http.Dir(l.root)})
}

var errBadKey = errors.New("invalid object key")

func (l *Local) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") || strings.HasPrefix(path.Base(clean), ".") {
		return "", fmt.Errorf("%w: %q", errBadKey, key)
	}
	return filepath.Join(l.root, filepath.FromSlash(clean)), nil
}

// noListing hides directory listings and dot files.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	if strings.HasPrefix(path.Base(name), ".") {
		return nil, os.ErrNotExist
	}
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if st.IsDir() {
		f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
