package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
)

// ErrDestinationExists is returned when the destination path is taken.
var ErrDestinationExists = errors.New("destination already exists")

// CopyFile copies a file from source to destination.
//
// The destination must not exist; it is created with the source's
// permission bits and modification time. A partially written destination is
// removed on failure.
//
// Example:
//
//	err := CopyFile(ctx, "/photos/IMG_0001.jpg", "/sorted/2023/IMG_0001.jpg")
func CopyFile(ctx context.Context, src, dst string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
		return err
	}
	defer func() {
		if cerr := destFile.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(dst)
		}
	}()

	if _, err = io.Copy(destFile, sourceFile); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// MoveFile renames src to dst, falling back to copy and remove when they
// are on different devices.
func MoveFile(ctx context.Context, src, dst string) error {
	if Exists(dst) {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) || !errors.Is(linkErr.Err, syscall.EXDEV) {
		return err
	}

	if err := CopyFile(ctx, src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// SymlinkFile creates dst as a symbolic link to the absolute path of src.
func SymlinkFile(src, dst string) error {
	target, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	if err := os.Symlink(target, dst); err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		}
		return err
	}
	return nil
}

// Exists reports whether path exists, following no symlinks.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
)

// SanitizeFileName removes or replaces characters that are invalid in file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("EOS 5D Mark II/III") // Returns "EOS 5D Mark II_III"
//	SanitizeFileName("Paris...")           // Returns "Paris"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimRight(name, " ")
}

// SanitizePath sanitizes every '/'-separated segment of a relative path.
// Empty segments are dropped.
func SanitizePath(rel string) string {
	parts := strings.Split(rel, "/")
	out := parts[:0]
	for _, p := range parts {
		if p = SanitizeFileName(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
