package media

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bep/imagemeta"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// imagemetaFormats maps image.DecodeConfig format names to imagemeta formats.
var imagemetaFormats = map[string]imagemeta.ImageFormat{
	"jpeg": imagemeta.JPEG,
	"png":  imagemeta.PNG,
	"tiff": imagemeta.TIFF,
	"webp": imagemeta.WebP,
}

// extensionFormats covers containers image.DecodeConfig cannot read.
var extensionFormats = map[string]imagemeta.ImageFormat{
	".heic": imagemeta.HEIF,
	".heif": imagemeta.HEIF,
	".avif": imagemeta.AVIF,
	".dng":  imagemeta.DNG,
	".cr2":  imagemeta.CR2,
	".nef":  imagemeta.NEF,
	".arw":  imagemeta.ARW,
	".pef":  imagemeta.PEF,
}

// exifTags are the EXIF tags read from images.
var exifTags = map[string]bool{
	"DateTimeOriginal":  true,
	"DateTimeDigitized": true,
	"DateTime":          true,
	"Make":              true,
	"Model":             true,
	"PixelXDimension":   true,
	"PixelYDimension":   true,
	"ImageWidth":        true,
	"ImageLength":       true,
	"GPSLatitude":       true,
	"GPSLatitudeRef":    true,
	"GPSLongitude":      true,
	"GPSLongitudeRef":   true,
}

type imageMetadata struct {
	tags   map[string]any
	config image.Config
	hasCfg bool
}

func openImage(path string) (*imageMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m := &imageMetadata{tags: make(map[string]any)}

	cfg, format, cfgErr := image.DecodeConfig(f)
	if cfgErr == nil {
		m.config = cfg
		m.hasCfg = true
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	opts := imagemeta.Options{
		R:       f,
		Sources: imagemeta.EXIF,
		HandleTag: func(ti imagemeta.TagInfo) error {
			if exifTags[ti.Tag] {
				m.tags[ti.Tag] = ti.Value
			}
			return nil
		},
	}
	imf, known := imagemetaFormats[format]
	if cfgErr != nil {
		imf, known = extensionFormats[strings.ToLower(filepath.Ext(path))]
		// Dimensions then come from the container itself.
		opts.Sources |= imagemeta.CONFIG
	}
	opts.ImageFormat = imf

	// Formats without EXIF support (gif, bmp) are still valid images.
	var metaErr error
	switch {
	case known:
		var res imagemeta.DecodeResult
		res, metaErr = imagemeta.Decode(opts)
		if !m.hasCfg && res.ImageConfig.Width > 0 && res.ImageConfig.Height > 0 {
			m.config = image.Config{Width: res.ImageConfig.Width, Height: res.ImageConfig.Height}
			m.hasCfg = true
		}
	case cfgErr != nil:
		metaErr = fmt.Errorf("no metadata reader for %q", filepath.Ext(path))
	}

	if cfgErr != nil && (metaErr != nil || (len(m.tags) == 0 && !m.hasCfg)) {
		return nil, fmt.Errorf("%w: %s: %w", ErrUnsupportedMedia, path, errors.Join(cfgErr, metaErr))
	}
	return m, nil
}

func (m *imageMetadata) str(tag string) (string, bool) {
	v, ok := m.tags[tag]
	if !ok {
		return "", false
	}
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case []byte:
		s = string(val)
	case []string:
		if len(val) > 0 {
			s = val[0]
		}
	default:
		s = fmt.Sprint(val)
	}
	s = strings.TrimSpace(strings.TrimRight(s, "\x00"))
	return s, s != ""
}

func (m *imageMetadata) CaptureDate() (time.Time, error) {
	for _, tag := range []string{"DateTimeOriginal", "DateTimeDigitized", "DateTime"} {
		if v, ok := m.tags[tag]; ok {
			if t, ok := v.(time.Time); ok && !t.IsZero() {
				return t, nil
			}
		}
		s, ok := m.str(tag)
		if !ok {
			continue
		}
		t, err := parseDate(s)
		if err != nil {
			return time.Time{}, &FieldError{Field: "capture date", Err: err}
		}
		return t, nil
	}
	return time.Time{}, missing("capture date")
}

func (m *imageMetadata) dimension(field string, tags []string, fromConfig int) (int, error) {
	for _, tag := range tags {
		if n, ok := toInt(m.tags[tag]); ok {
			return n, nil
		}
	}
	if m.hasCfg && fromConfig > 0 {
		return fromConfig, nil
	}
	return 0, missing(field)
}

func (m *imageMetadata) Width() (int, error) {
	return m.dimension("width", []string{"PixelXDimension", "ImageWidth"}, m.config.Width)
}

func (m *imageMetadata) Height() (int, error) {
	return m.dimension("height", []string{"PixelYDimension", "ImageLength"}, m.config.Height)
}

func (m *imageMetadata) CameraModel() (string, error) {
	if s, ok := m.str("Model"); ok {
		return s, nil
	}
	return "", missing("camera model")
}

func (m *imageMetadata) CameraBrand() (string, error) {
	if s, ok := m.str("Make"); ok {
		return s, nil
	}
	return "", missing("camera brand")
}

func (m *imageMetadata) coordinate(field, valueTag, refTag string) (float64, error) {
	v, ok := m.tags[valueTag]
	if !ok {
		return 0, missing(field)
	}
	parts, ok := toFloats(v)
	if !ok {
		return 0, &FieldError{Field: field, Err: fmt.Errorf("unexpected value %T", v)}
	}
	ref, _ := m.str(refTag)
	deg, err := DecimalDegrees(parts, ref)
	if err != nil {
		return 0, &FieldError{Field: field, Err: err}
	}
	return deg, nil
}

func (m *imageMetadata) Latitude() (float64, error) {
	return m.coordinate("latitude", "GPSLatitude", "GPSLatitudeRef")
}

func (m *imageMetadata) Longitude() (float64, error) {
	return m.coordinate("longitude", "GPSLongitude", "GPSLongitudeRef")
}
