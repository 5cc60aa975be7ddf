//go:build unix

package mmap

import (
	"os"

	"golang.org/x/sys/unix"
)

// Granularity returns the alignment required for mapping offsets and
// lengths on this platform.
func Granularity() int {
	return os.Getpagesize()
}

// New creates a new memory mapping for the given file descriptor.
// The offset must be aligned to Granularity(). The backing store must
// already cover [offset, offset+length) or later access may fault.
func New(fd int, offset int64, length int, writable bool) (*Map, error) {
	if length <= 0 {
		return nil, ErrInvalidSize
	}
	if offset < 0 || offset%int64(Granularity()) != 0 {
		return nil, ErrUnalignedOffset
	}

	prot := unix.PROT_READ
	if writable {
		prot |= unix.PROT_WRITE
	}

	flags := unix.MAP_SHARED

	// mmap signals failure through the MAP_FAILED sentinel, not a null
	// address; unix.Mmap folds that sentinel into err, so the returned
	// slice is only meaningful when err is nil.
	data, err := unix.Mmap(fd, offset, length, prot, flags)
	if err != nil {
		return nil, &Error{Op: "mmap", Err: err}
	}

	return &Map{
		data:     data,
		fd:       fd,
		size:     int64(length),
		writable: writable,
	}, nil
}

// Sync flushes modified pages to disk synchronously, blocking until the
// write completes. With invalidate set it additionally requests
// MS_INVALIDATE, which drops other cached views of the file; some
// platforms key content-validation caches to this.
func (m *Map) Sync(invalidate bool) error {
	if m.data == nil {
		return ErrNotMapped
	}
	flags := unix.MS_SYNC
	if invalidate {
		flags |= unix.MS_INVALIDATE
	}
	if err := unix.Msync(m.data, flags); err != nil {
		return &Error{Op: "msync", Err: err}
	}
	return nil
}

// SyncAsync schedules a flush to disk without waiting for completion.
func (m *Map) SyncAsync() error {
	if m.data == nil {
		return ErrNotMapped
	}
	if err := unix.Msync(m.data, unix.MS_ASYNC); err != nil {
		return &Error{Op: "msync", Err: err}
	}
	return nil
}

// SyncRange flushes a specific range to disk. The offset must be aligned
// to Granularity().
func (m *Map) SyncRange(offset, length int64) error {
	if m.data == nil {
		return ErrNotMapped
	}
	if offset < 0 || length < 0 || offset+length > m.size {
		return ErrInvalidRange
	}
	if offset%int64(Granularity()) != 0 {
		return ErrUnalignedOffset
	}
	if err := unix.Msync(m.data[offset:offset+length], unix.MS_SYNC); err != nil {
		return &Error{Op: "msync", Err: err}
	}
	return nil
}

// Close releases the memory mapping. It is idempotent.
func (m *Map) Close() error {
	if m.data == nil {
		return nil
	}

	err := unix.Munmap(m.data)
	m.data = nil
	m.size = 0
	if err != nil {
		return &Error{Op: "munmap", Err: err}
	}
	return nil
}

// Lock locks the mapped pages in memory (prevents swapping).
func (m *Map) Lock() error {
	if m.data == nil {
		return ErrNotMapped
	}
	return unix.Mlock(m.data)
}

// Unlock unlocks the mapped pages.
func (m *Map) Unlock() error {
	if m.data == nil {
		return ErrNotMapped
	}
	return unix.Munlock(m.data)
}

// Advise provides hints to the kernel about memory usage patterns.
func (m *Map) Advise(advice int) error {
	if m.data == nil {
		return ErrNotMapped
	}
	return unix.Madvise(m.data, advice)
}

// AdviseSequential hints that pages will be accessed sequentially.
func (m *Map) AdviseSequential() error {
	return m.Advise(unix.MADV_SEQUENTIAL)
}

// AdviseRandom hints that pages will be accessed randomly.
func (m *Map) AdviseRandom() error {
	return m.Advise(unix.MADV_RANDOM)
}

// AdviseWillNeed hints that pages will be needed soon.
func (m *Map) AdviseWillNeed() error {
	return m.Advise(unix.MADV_WILLNEED)
}

// AdviseDontNeed hints that pages won't be needed soon.
func (m *Map) AdviseDontNeed() error {
	return m.Advise(unix.MADV_DONTNEED)
}
