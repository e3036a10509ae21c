package ioutils

import (
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"EOS 5D Mark II/III", "EOS 5D Mark II_III"},
		{"Paris...", "Paris"},
		{"Name   with  spaces ", "Name with spaces"},
		{`a<b>c:d"e|f?g*h`, "a_b_c_d_e_f_g_h"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SanitizeFileName(tt.in), tt.in)
	}
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "2023/EOS 5D_ II/a.jpg", SanitizePath("2023/EOS 5D: II/a.jpg"))
	assert.Equal(t, "a/b", SanitizePath("a//b/..."))
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("payload"), 0o640))
	mtime := time.Date(2021, 6, 7, 8, 9, 10, 0, time.UTC)
	require.NoError(t, os.Chtimes(src, mtime, mtime))

	require.NoError(t, CopyFile(context.Background(), src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	info, err := os.Stat(dst)
	require.NoError(t, err)
	assert.True(t, mtime.Equal(info.ModTime()))

	err = CopyFile(context.Background(), src, dst)
	assert.ErrorIs(t, err, ErrDestinationExists)
}

func TestCopyFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, CopyFile(ctx, "a", "b"), context.Canceled)
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	require.NoError(t, MoveFile(context.Background(), src, dst))
	assert.False(t, Exists(src))
	assert.True(t, Exists(dst))

	require.NoError(t, os.WriteFile(src, []byte("y"), 0o644))
	assert.ErrorIs(t, MoveFile(context.Background(), src, dst), ErrDestinationExists)
}

func TestSymlinkFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "link.txt")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	require.NoError(t, SymlinkFile(src, dst))
	target, err := os.Readlink(dst)
	require.NoError(t, err)
	assert.Equal(t, src, target)

	assert.ErrorIs(t, SymlinkFile(src, dst), ErrDestinationExists)
}

func TestLoadThumbnail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 400, 100))))
	require.NoError(t, f.Close())

	svc := NewImageService()
	img, err := svc.LoadThumbnail(context.Background(), path, 64)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	img, err = svc.LoadThumbnail(context.Background(), path, 1000)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
}
