package formatter

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/clineup/clineup/internal/geocode"
	"github.com/clineup/clineup/internal/media"
	"github.com/clineup/clineup/internal/placeholder"
)

type resolver func(*fileContext) (string, error)

var resolvers = map[placeholder.Kind]resolver{
	placeholder.KindYear:  captureDate(year),
	placeholder.KindMonth: captureDate(month),
	placeholder.KindDay:   captureDate(day),

	placeholder.KindCreatedYear:   fileTime(media.FileTimes.Created, year),
	placeholder.KindCreatedMonth:  fileTime(media.FileTimes.Created, month),
	placeholder.KindCreatedDay:    fileTime(media.FileTimes.Created, day),
	placeholder.KindModifiedYear:  fileTime(media.FileTimes.Modified, year),
	placeholder.KindModifiedMonth: fileTime(media.FileTimes.Modified, month),
	placeholder.KindModifiedDay:   fileTime(media.FileTimes.Modified, day),

	placeholder.KindWidth:       dimension(media.Metadata.Width),
	placeholder.KindHeight:      dimension(media.Metadata.Height),
	placeholder.KindCameraModel: text(media.Metadata.CameraModel),
	placeholder.KindCameraBrand: text(media.Metadata.CameraBrand),

	placeholder.KindCountry:      place("country", geocode.Location.Country),
	placeholder.KindState:        place("state", geocode.Location.State),
	placeholder.KindCounty:       place("county", geocode.Location.County),
	placeholder.KindMunicipality: place("municipality", geocode.Location.Municipality),
	placeholder.KindCity:         place("city", geocode.Location.City),

	placeholder.KindOriginalFilename: originalFilename,
	placeholder.KindOriginalFolder:   originalFolder,
}

func year(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) }
func month(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }
func day(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }

func captureDate(render func(time.Time) string) resolver {
	return func(fc *fileContext) (string, error) {
		m, err := fc.metadata()
		if err != nil {
			return "", err
		}
		t, err := m.CaptureDate()
		if err != nil {
			return "", err
		}
		return render(t), nil
	}
}

func fileTime(get func(media.FileTimes) (time.Time, error), render func(time.Time) string) resolver {
	return func(fc *fileContext) (string, error) {
		times, err := fc.fileTimes()
		if err != nil {
			return "", err
		}
		t, err := get(times)
		if err != nil {
			return "", err
		}
		return render(t), nil
	}
}

func dimension(get func(media.Metadata) (int, error)) resolver {
	return func(fc *fileContext) (string, error) {
		m, err := fc.metadata()
		if err != nil {
			return "", err
		}
		n, err := get(m)
		if err != nil {
			return "", err
		}
		return strconv.Itoa(n), nil
	}
}

func text(get func(media.Metadata) (string, error)) resolver {
	return func(fc *fileContext) (string, error) {
		m, err := fc.metadata()
		if err != nil {
			return "", err
		}
		return get(m)
	}
}

func place(field string, get func(geocode.Location) (string, bool)) resolver {
	return func(fc *fileContext) (string, error) {
		loc, err := fc.location()
		if err != nil {
			return "", err
		}
		v, ok := get(loc)
		if !ok {
			return "", &media.FieldError{Field: field, Err: media.ErrMissingField}
		}
		return v, nil
	}
}

func originalFilename(fc *fileContext) (string, error) {
	name := filepath.Base(fc.path)
	if name == "." || name == string(filepath.Separator) {
		return "", &media.FieldError{Field: "original filename", Err: media.ErrMissingField}
	}
	return name, nil
}

func originalFolder(fc *fileContext) (string, error) {
	dir := filepath.Base(filepath.Dir(fc.path))
	if dir == "." || dir == string(filepath.Separator) || strings.TrimSpace(dir) == "" {
		return "", &media.FieldError{Field: "original folder", Err: media.ErrMissingField}
	}
	return dir, nil
}
