//go:build linux

package mapfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// allocate grows the file to length bytes with real block reservation,
// so pages faulted in through an extend-mode mapping cannot SIGBUS on a
// later short write.
func allocate(f *os.File, length int64) error {
	return unix.Fallocate(int(f.Fd()), 0, 0, length)
}
