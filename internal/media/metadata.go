package media

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

var (
	// ErrMissingField is returned when a file carries no value for a field.
	ErrMissingField = errors.New("missing metadata field")

	// ErrUnsupportedMedia is returned by Open for files that are neither a
	// decodable image nor a tagged audio file.
	ErrUnsupportedMedia = errors.New("unsupported media")
)

// FieldError reports which metadata field could not be read.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return &FieldError{Field: field, Err: ErrMissingField}
}

// Metadata is the embedded metadata of one media file.
type Metadata interface {
	CaptureDate() (time.Time, error)
	Width() (int, error)
	Height() (int, error)
	CameraModel() (string, error)
	CameraBrand() (string, error)
	Latitude() (float64, error)
	Longitude() (float64, error)
}

// Opener opens the metadata of a file.
type Opener interface {
	Open(path string) (Metadata, error)
}

// Reader is the default Opener. It dispatches on the file extension.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Open reads the metadata of the file at path.
//
// The file must be a decodable image or an MP3 file; anything else yields
// an error wrapping ErrUnsupportedMedia.
func (r *Reader) Open(path string) (Metadata, error) {
	if strings.EqualFold(filepath.Ext(path), ".mp3") {
		m, err := openAudio(path)
		if err != nil {
			return nil, err
		}
		return m, nil
	}

	m, err := openImage(path)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// exifDateLayouts are the layouts seen in DateTimeOriginal and friends.
var exifDateLayouts = []string{
	"2006:01:02 15:04:05",
	"2006:01:02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006:01:02",
	"2006-01-02",
	"2006-01",
	"2006",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	if s == "" {
		return time.Time{}, ErrMissingField
	}
	for _, layout := range exifDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
