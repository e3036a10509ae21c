package media

import (
	"os"
	"syscall"
	"time"
)

func birthTime(_ string, fi os.FileInfo) (time.Time, error) {
	data, ok := fi.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return time.Time{}, ErrCreationTimeUnsupported
	}
	return time.Unix(0, data.CreationTime.Nanoseconds()), nil
}
