package mapfile

import (
	"io"

	"github.com/Giulio2002/mapfile/mmap"
)

// MappedFile is a byte-addressable view of a file region, backed by a
// virtual-memory mapping. A MappedFile is constructed empty; MapRegion
// transitions it to the mapped state and Close back to empty. Mapping
// failures leave it empty with no acquired resources.
type MappedFile struct {
	file         *File     // Owned once mapped, closed on teardown
	raw          *mmap.Map // Full aligned mapping, nil when unmapped
	data         []byte    // Caller view: raw displaced and trimmed
	length       int64     // Logical length seen by the caller
	displacement int64     // Offset of data within raw
	access       Access    // Fixed at map time
	flags        Flag
}

// New returns an empty, unmapped MappedFile with the given capability
// flags.
func New(flags Flag) *MappedFile {
	return &MappedFile{flags: flags}
}

// Map opens the file at path and maps it whole in the given access mode.
// The returned MappedFile owns the file handle.
func Map(path string, access Access) (*MappedFile, error) {
	f, err := OpenFile(path, access)
	if err != nil {
		return nil, err
	}
	m := New(0)
	if err := m.MapRegion(f, WholeFile, access); err != nil {
		f.Close()
		return nil, err
	}
	return m, nil
}

// MapRegion maps the requested region of f in the given access mode.
//
// The region may be WholeFile or an arbitrary, possibly unaligned byte
// range; internally the smallest page-aligned outer range containing it
// is mapped and the caller view is displaced to the requested start. In
// ReadWriteExtend mode the file is grown (never truncated) to cover the
// region before mapping; extend mode requires an explicit region.
//
// On success the MappedFile takes ownership of f and closes it on Close.
// On failure the entity stays unmapped, nothing is leaked, and f remains
// owned by the caller. Mapping an already-mapped entity fails with
// ErrAlreadyMapped; Close it first to re-map.
func (m *MappedFile) MapRegion(f *File, r Region, access Access) error {
	if m.raw != nil {
		return NewError(ErrAlreadyMapped)
	}

	var mapStart, mapLength, displacement, logical int64

	if r.IsWholeFile() {
		if access == ReadWriteExtend {
			return errorf(ErrExtension, "extend mode requires an explicit region")
		}
		flen, err := f.Length()
		if err != nil {
			return WrapError(ErrMapping, err)
		}
		if flen == 0 {
			return errorf(ErrMapping, "cannot map empty file")
		}
		if flen > maxMapLength {
			return errorf(ErrAlignment, "file too large to map")
		}
		mapLength = flen
		logical = flen
	} else {
		var err error
		mapStart, mapLength, displacement, err = alignedRange(r.Offset, r.Size)
		if err != nil {
			return err
		}
		logical = r.Size

		if access == ReadWriteExtend {
			if err := f.Extend(r.Offset + r.Size); err != nil {
				return WrapError(ErrExtension, err)
			}
		}
	}

	raw, err := mmap.New(f.Fd(), mapStart, int(mapLength), access.writable())
	if err != nil {
		return WrapError(ErrMapping, err)
	}

	m.file = f
	m.raw = raw
	m.data = raw.Data()[displacement : displacement+logical : displacement+logical]
	m.length = logical
	m.displacement = displacement
	m.access = access
	return nil
}

// Data returns the mapped bytes of the requested region. The slice is
// valid only until Close; writing to it requires a writable access mode.
func (m *MappedFile) Data() []byte {
	return m.data
}

// Len returns the logical length of the mapping, which is the requested
// region size (or the file length for WholeFile), not the physical
// page-aligned extent.
func (m *MappedFile) Len() int64 {
	return m.length
}

// Mapped reports whether a mapping is currently active.
func (m *MappedFile) Mapped() bool {
	return m.raw != nil
}

// AccessMode returns the access mode fixed at map time.
func (m *MappedFile) AccessMode() Access {
	return m.access
}

// Flush synchronously writes modified pages back to the backing file and
// blocks until durable. With the FlushInvalidate flag it additionally
// invalidates platform caches keyed to the file's content identity. The
// error is surfaced as-is; no retries are performed.
func (m *MappedFile) Flush() error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	if err := m.raw.Sync(m.flags&FlushInvalidate != 0); err != nil {
		return WrapError(ErrFlush, err)
	}
	return nil
}

// FlushAsync schedules a write-back of modified pages without waiting for
// it to complete.
func (m *MappedFile) FlushAsync() error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	if err := m.raw.SyncAsync(); err != nil {
		return WrapError(ErrFlush, err)
	}
	return nil
}

// FlushRange synchronously flushes the pages covering [offset,
// offset+length) of the logical view. The range is widened to page
// boundaries as the synchronize primitive requires.
func (m *MappedFile) FlushRange(offset, length int64) error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	if offset < 0 || length < 0 || offset+length > m.length {
		return errorf(ErrFlush, "flush range out of bounds")
	}
	gran := int64(mmap.Granularity())
	abs := m.displacement + offset
	start := abs - abs%gran
	if err := m.raw.SyncRange(start, abs+length-start); err != nil {
		return WrapError(ErrFlush, err)
	}
	return nil
}

// ReadAt reads len(p) bytes from the logical view starting at off,
// implementing io.ReaderAt.
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	if m.raw == nil {
		return 0, NewError(ErrNotMapped)
	}
	if off < 0 {
		return 0, errorf(ErrAlignment, "negative read offset")
	}
	if off >= m.length {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Advise provides kernel hints for the mapped pages. The hint applies to
// the full aligned extent, since the advice primitive requires aligned
// addresses.
func (m *MappedFile) Advise(advice int) error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	return m.raw.Advise(advice)
}

// AdviseSequential hints that pages will be accessed sequentially.
func (m *MappedFile) AdviseSequential() error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	return m.raw.AdviseSequential()
}

// AdviseRandom hints that pages will be accessed randomly.
func (m *MappedFile) AdviseRandom() error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	return m.raw.AdviseRandom()
}

// AdviseWillNeed hints that pages will be needed soon.
func (m *MappedFile) AdviseWillNeed() error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	return m.raw.AdviseWillNeed()
}

// AdviseDontNeed hints that pages won't be needed soon.
func (m *MappedFile) AdviseDontNeed() error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	return m.raw.AdviseDontNeed()
}

// Lock pins the mapped pages in memory.
func (m *MappedFile) Lock() error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	return m.raw.Lock()
}

// Unlock releases pinned pages.
func (m *MappedFile) Unlock() error {
	if m.raw == nil {
		return NewError(ErrNotMapped)
	}
	return m.raw.Unlock()
}

// unmapRaw is indirected so tests can exercise teardown failure
// handling; munmap does not fail on a valid mapping.
var unmapRaw = func(raw *mmap.Map) error { return raw.Close() }

// Close releases the mapping and the owned file handle, returning the
// MappedFile to the empty state. It is idempotent; closing an unmapped
// MappedFile is a no-op. An unmap failure is reported and logged, but the
// file handle is still closed.
func (m *MappedFile) Close() error {
	if m.raw == nil && m.file == nil {
		return nil
	}

	var err error
	if m.raw != nil {
		// The low-level map releases the full aligned extent it
		// established at map time, not the logical length.
		if uerr := unmapRaw(m.raw); uerr != nil {
			logf("mapfile: unmap of %s failed: %v", m.file.Name(), uerr)
			err = WrapError(ErrUnmap, uerr)
		}
		m.raw = nil
		m.data = nil
	}

	if m.file != nil {
		if cerr := m.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
		m.file = nil
	}

	m.length = 0
	m.displacement = 0
	return err
}
