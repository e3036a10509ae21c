package media

import (
	"errors"
	"os"
	"time"
)

// ErrCreationTimeUnsupported is returned when the platform or filesystem
// does not record file creation time.
var ErrCreationTimeUnsupported = errors.New("file creation time not supported")

// FileTimes holds the filesystem timestamps of a file.
type FileTimes struct {
	modified   time.Time
	created    time.Time
	createdErr error
}

// StatTimes reads the filesystem timestamps of path.
//
// A filesystem without birth time is not an error here; Created reports it.
func StatTimes(path string) (FileTimes, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileTimes{}, err
	}
	created, createdErr := birthTime(path, fi)
	return FileTimes{
		modified:   fi.ModTime(),
		created:    created,
		createdErr: createdErr,
	}, nil
}

// Modified returns the last modification time.
func (t FileTimes) Modified() (time.Time, error) {
	return t.modified, nil
}

// Created returns the creation (birth) time.
func (t FileTimes) Created() (time.Time, error) {
	if t.createdErr != nil {
		return time.Time{}, &FieldError{Field: "creation time", Err: t.createdErr}
	}
	return t.created, nil
}
