// Package ioutils provides file system and image utilities.
//
// This package contains functions for:
//   - Copying, moving and symlinking files without overwriting
//   - Filename and path sanitization for cross-platform compatibility
//   - Directory creation
//   - Loading downscaled images for comparison
//
// # File Operations
//
//	err := ioutils.CopyFile(ctx, "/photos/a.jpg", "/sorted/2023/a.jpg")
//	err = ioutils.MoveFile(ctx, "/photos/b.jpg", "/sorted/2023/b.jpg")
//	err = ioutils.SymlinkFile("/photos/c.jpg", "/sorted/2023/c.jpg")
//
// All three return an error wrapping ErrDestinationExists rather than
// replacing an existing file.
//
// # Sanitization
//
//	safe := ioutils.SanitizePath("2023/EOS 5D: II/a.jpg") // "2023/EOS 5D_ II/a.jpg"
package ioutils
