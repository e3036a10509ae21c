//go:build !linux && !darwin && !windows

package media

import (
	"os"
	"time"
)

func birthTime(string, os.FileInfo) (time.Time, error) {
	return time.Time{}, ErrCreationTimeUnsupported
}
