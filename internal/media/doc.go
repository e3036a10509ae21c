// Package media reads the per-file facts a path template can ask for.
//
// Two providers live here:
//
//   - Metadata, opened with a Reader, exposes the embedded capture date,
//     pixel dimensions, camera make and model and GPS position. Images are
//     decoded with github.com/bep/imagemeta (EXIF) and the standard image
//     decoders; MP3 files use their ID3 recording time.
//   - FileTimes exposes filesystem creation and modification times.
//
// Every accessor reports a missing value as an error wrapping
// ErrMissingField so callers can fall back to another alternative.
package media
