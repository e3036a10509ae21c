package media

import (
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
)

func birthTime(path string, _ os.FileInfo) (time.Time, error) {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, unix.STATX_BTIME, &stx)
	switch {
	case errors.Is(err, unix.ENOSYS):
		return time.Time{}, ErrCreationTimeUnsupported
	case err != nil:
		return time.Time{}, fmt.Errorf("statx %s: %w", path, err)
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, ErrCreationTimeUnsupported
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), nil
}
