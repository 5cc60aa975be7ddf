// Package mmap provides cross-platform memory mapping primitives.
package mmap

// Map represents a single page-aligned memory mapping of a file range.
// It owns the full physical extent established at map time and releases
// exactly that extent on Close, regardless of how callers slice the data.
type Map struct {
	data     []byte // Mapped memory region (full aligned extent)
	fd       int    // File descriptor
	size     int64  // Physical mapped size
	writable bool   // True if mapped with write permission
	// Windows-specific handles (only used on Windows, zero on Unix)
	handle  uintptr // File handle (Windows only)
	mapping uintptr // Mapping handle (Windows only)
}

// Data returns the mapped byte slice covering the full physical extent.
func (m *Map) Data() []byte {
	return m.data
}

// Size returns the physical mapped size.
func (m *Map) Size() int64 {
	return m.size
}

// Writable returns true if the mapping is writable.
func (m *Map) Writable() bool {
	return m.writable
}

// Fd returns the file descriptor.
func (m *Map) Fd() int {
	return m.fd
}

// Error represents an mmap error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return "mmap: " + e.Op + ": " + e.Err.Error()
	}
	return "mmap: " + e.Op
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Common errors
var (
	ErrInvalidSize     = &Error{Op: "invalid size"}
	ErrInvalidRange    = &Error{Op: "invalid range"}
	ErrNotMapped       = &Error{Op: "not mapped"}
	ErrUnalignedOffset = &Error{Op: "offset not aligned to mapping granularity"}
)
