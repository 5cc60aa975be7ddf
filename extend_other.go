//go:build !linux

package mapfile

import "os"

// allocate grows the file to length bytes. Callers guarantee length
// exceeds the current file length, so the truncate only ever extends.
func allocate(f *os.File, length int64) error {
	return f.Truncate(length)
}
