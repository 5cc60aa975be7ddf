//go:build windows

package mmap

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// allocationGranularity is the alignment MapViewOfFile requires for file
// offsets. It is 64 KiB on every released Windows version, larger than
// the 4 KiB page size reported by os.Getpagesize.
const allocationGranularity = 64 * 1024

// Granularity returns the alignment required for mapping offsets and
// lengths on this platform.
func Granularity() int {
	return allocationGranularity
}

// New creates a new memory mapping for the given file descriptor.
// The offset must be aligned to Granularity().
//
// The mapping never changes the file length: the file mapping object
// spans the current file size, and a view whose granularity-rounded end
// would cross end-of-file is clamped to it. Growing the file is the
// caller's job, before mapping. A maximum size past end-of-file must not
// reach CreateFileMapping — PAGE_READWRITE would silently extend the
// file and PAGE_READONLY would fail outright.
func New(fd int, offset int64, length int, writable bool) (*Map, error) {
	if length <= 0 {
		return nil, ErrInvalidSize
	}
	if offset < 0 || offset%int64(Granularity()) != 0 {
		return nil, ErrUnalignedOffset
	}

	handle := windows.Handle(fd)

	var info windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(handle, &info); err != nil {
		return nil, &Error{Op: "GetFileInformationByHandle", Err: err}
	}
	fileSize := int64(info.FileSizeHigh)<<32 | int64(info.FileSizeLow)
	if offset >= fileSize {
		return nil, ErrInvalidRange
	}

	prot := uint32(windows.PAGE_READONLY)
	access := uint32(windows.FILE_MAP_READ)
	if writable {
		prot = windows.PAGE_READWRITE
		access = windows.FILE_MAP_WRITE
	}

	// Zero maximum size: the mapping object covers exactly the current
	// file length.
	mapping, err := windows.CreateFileMapping(handle, nil, prot, 0, 0, nil)
	if err != nil {
		return nil, &Error{Op: "CreateFileMapping", Err: err}
	}

	viewLen := int64(length)
	if offset+viewLen > fileSize {
		viewLen = fileSize - offset
	}

	offsetHigh := uint32(uint64(offset) >> 32)
	offsetLow := uint32(uint64(offset))

	// MapViewOfFile signals failure with a zero view address; never
	// treat the returned address as valid without this check.
	addr, err := windows.MapViewOfFile(mapping, access, offsetHigh, offsetLow, uintptr(viewLen))
	if err != nil || addr == 0 {
		windows.CloseHandle(mapping)
		return nil, &Error{Op: "MapViewOfFile", Err: err}
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), viewLen)

	return &Map{
		data:     data,
		fd:       fd,
		size:     viewLen,
		writable: writable,
		handle:   uintptr(handle),
		mapping:  uintptr(mapping),
	}, nil
}

// Sync flushes modified pages to disk, blocking until the write
// completes. The invalidate flag has no Windows equivalent and is
// ignored; FlushFileBuffers already forces durability.
func (m *Map) Sync(invalidate bool) error {
	if m.data == nil {
		return ErrNotMapped
	}
	if err := windows.FlushViewOfFile(uintptr(unsafe.Pointer(&m.data[0])), uintptr(m.size)); err != nil {
		return &Error{Op: "FlushViewOfFile", Err: err}
	}
	// FlushViewOfFile only queues dirty pages; FlushFileBuffers makes
	// them durable.
	if err := windows.FlushFileBuffers(windows.Handle(m.handle)); err != nil {
		return &Error{Op: "FlushFileBuffers", Err: err}
	}
	return nil
}

// SyncAsync schedules a flush without forcing durability.
func (m *Map) SyncAsync() error {
	if m.data == nil {
		return ErrNotMapped
	}
	if err := windows.FlushViewOfFile(uintptr(unsafe.Pointer(&m.data[0])), uintptr(m.size)); err != nil {
		return &Error{Op: "FlushViewOfFile", Err: err}
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
	if err := windows.FlushViewOfFile(uintptr(unsafe.Pointer(&m.data[offset])), uintptr(length)); err != nil {
		return &Error{Op: "FlushViewOfFile", Err: err}
	}
	return nil
}

// Close releases the memory mapping. It is idempotent.
func (m *Map) Close() error {
	if m.data == nil {
		return nil
	}

	addr := uintptr(unsafe.Pointer(&m.data[0]))
	m.data = nil
	m.size = 0

	if err := windows.UnmapViewOfFile(addr); err != nil {
		if m.mapping != 0 {
			windows.CloseHandle(windows.Handle(m.mapping))
			m.mapping = 0
		}
		return &Error{Op: "UnmapViewOfFile", Err: err}
	}

	if m.mapping != 0 {
		if err := windows.CloseHandle(windows.Handle(m.mapping)); err != nil {
			m.mapping = 0
			return &Error{Op: "CloseHandle", Err: err}
		}
		m.mapping = 0
	}
	return nil
}

// Lock locks the mapped pages in memory (prevents swapping).
func (m *Map) Lock() error {
	if m.data == nil {
		return ErrNotMapped
	}
	return windows.VirtualLock(uintptr(unsafe.Pointer(&m.data[0])), uintptr(m.size))
}

// Unlock unlocks the mapped pages.
func (m *Map) Unlock() error {
	if m.data == nil {
		return ErrNotMapped
	}
	return windows.VirtualUnlock(uintptr(unsafe.Pointer(&m.data[0])), uintptr(m.size))
}

// Advise provides hints to the kernel about memory usage patterns.
// Windows doesn't have madvise, so these are no-ops.
func (m *Map) Advise(advice int) error {
	if m.data == nil {
		return ErrNotMapped
	}
	// No-op on Windows
	return nil
}

// AdviseSequential hints that pages will be accessed sequentially.
func (m *Map) AdviseSequential() error {
	return m.Advise(0)
}

// AdviseRandom hints that pages will be accessed randomly.
func (m *Map) AdviseRandom() error {
	return m.Advise(0)
}

// AdviseWillNeed hints that pages will be needed soon.
func (m *Map) AdviseWillNeed() error {
	return m.Advise(0)
}

// AdviseDontNeed hints that pages won't be needed soon.
func (m *Map) AdviseDontNeed() error {
	return m.Advise(0)
}
