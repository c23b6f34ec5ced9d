package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocal_PutAndDelete(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "http://localhost:8080/")
	require.NoError(t, err)

	obj, err := l.Put(t.Context(), "images/signatures/1-a.png", strings.NewReader("png!"), 4, "image/png")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/uploads/images/signatures/1-a.png", obj.URL)
	require.EqualValues(t, 4, obj.Size)

	b, err := os.ReadFile(filepath.Join(root, "images", "signatures", "1-a.png"))
	require.NoError(t, err)
	require.Equal(t, "png!", string(b))

	require.NoError(t, l.Delete(t.Context(), obj.Key))
	_, err = os.Stat(filepath.Join(root, "images", "signatures", "1-a.png"))
	require.True(t, os.IsNotExist(err))
	require.NoError(t, l.Delete(t.Context(), obj.Key), "deleting twice is fine")
}

func TestLocal_RejectsTraversal(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "")
	require.NoError(t, err)
	for _, key := range []string{"../escape.txt", "/abs.txt", "a/../../b", "", "a//b"} {
		_, err := l.Put(t.Context(), key, strings.NewReader("x"), 1, "text/plain")
		require.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestLocal_ShortWriteLeavesNothing(t *testing.T) {
	root := t.TempDir()
	l, err := NewLocal(root, "")
	require.NoError(t, err)

	_, err = l.Put(t.Context(), "files/x/a.txt", strings.NewReader("abc"), 10, "text/plain")
	require.Error(t, err)
	entries, _ := os.ReadDir(filepath.Join(root, "files", "x"))
	require.Empty(t, entries)
}

func TestLocal_CanceledContext(t *testing.T) {
	l, err := NewLocal(t.TempDir(), "")
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err = l.Put(ctx, "files/a.txt", strings.NewReader("x"), 1, "")
	require.ErrorIs(t, err, context.Canceled)
}
