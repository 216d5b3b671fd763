package collect

import (
	"golang.org/x/sys/unix"

	"github.com/P70-ops/netanalyzer/internal/report"
)

// fillUname adds kernel identity from uname(2).
func fillUname(info *report.SystemInfo) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return
	}
	info.Kernel = unix.ByteSliceToString(uts.Sysname[:])
	info.Release = unix.ByteSliceToString(uts.Release[:])
}
