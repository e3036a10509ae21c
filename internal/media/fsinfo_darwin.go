package media

import (
	"os"
	"syscall"
	"time"
)

func birthTime(_ string, fi os.FileInfo) (time.Time, error) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, ErrCreationTimeUnsupported
	}
	return time.Unix(st.Birthtimespec.Sec, st.Birthtimespec.Nsec), nil
}
