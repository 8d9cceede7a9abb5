package storage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/swimmeet/internal/core"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func newLocal(t *testing.T) *Local {
	t.Helper()
	l, err := NewLocal(t.TempDir(), "/media/")
	require.NoError(t, err)
	return l
}

func TestLocalPutServeDelete(t *testing.T) {
	l := newLocal(t)
	ctx := context.Background()

	url, err := l.Put(ctx, "tenant/1-abc.png", "image/png", int64(len(pngHeader)), bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.Equal(t, "/media/tenant/1-abc.png", url)

	data, err := os.ReadFile(filepath.Join(l.Root(), "tenant", "1-abc.png"))
	require.NoError(t, err)
	require.Equal(t, pngHeader, data)

	srv := http.StripPrefix("/media", l.Handler())
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/media/tenant/", nil))
	require.Equal(t, http.StatusNotFound, rec.Code, "directory listings must be hidden")

	require.NoError(t, l.Delete(ctx, url))
	require.ErrorIs(t, l.Delete(ctx, url), core.ErrPhotoNotFound)
}

func TestLocalRejectsNonImages(t *testing.T) {
	l := newLocal(t)
	_, err := l.Put(context.Background(), "t/a.png", "image/png", 5, strings.NewReader("hello world"))
	require.ErrorIs(t, err, core.ErrNotImage)
}

func TestLocalRejectsOversize(t *testing.T) {
	l := newLocal(t)
	body := io.MultiReader(bytes.NewReader(pngHeader), bytes.NewReader(make([]byte, core.MaxPhotoSize)))
	_, err := l.Put(context.Background(), "t/big.png", "image/png", 1, body)
	require.ErrorIs(t, err, core.ErrPhotoTooLarge)

	_, statErr := os.Stat(filepath.Join(l.Root(), "t", "big.png"))
	require.True(t, os.IsNotExist(statErr), "oversize photo must not be kept")
}

func TestLocalRejectsBadKeys(t *testing.T) {
	l := newLocal(t)
	for _, key := range []string{"../escape.png", "t/.hidden", ""} {
		_, err := l.Put(context.Background(), key, "image/png", 1, bytes.NewReader(pngHeader))
		require.ErrorIs(t, err, errBadKey, key)
	}
	require.ErrorIs(t, l.Delete(context.Background(), "https://elsewhere/x.png"), core.ErrPhotoNotFound)
}

func TestLocalKey(t *testing.T) {
	l := newLocal(t)
	for _, tt := range []struct {
		url    string
		want   string
		wantOK bool
	}{
		{"/media/t/1-a.png", "t/1-a.png", true},
		{"/media/", "", false},
		{"/mediat/1-a.png", "", false},
		{"https://elsewhere/t/1-a.png", "", false},
	} {
		key, ok := l.Key(tt.url)
		require.Equal(t, tt.wantOK, ok, tt.url)
		if ok {
			require.Equal(t, tt.want, key)
		}
	}
}
