package mapfile

import (
	"os"

	"github.com/pkg/errors"
)

// File is the file-handle collaborator a MappedFile maps. Callers open it
// (or wrap an already-open *os.File) and hand it to MapRegion, which takes
// exclusive ownership on success and closes it on teardown.
type File struct {
	f *os.File
}

// OpenFile opens the file at path with flags appropriate for the access
// mode. ReadWriteExtend additionally creates the file if it is missing,
// since extend mode exists to grow files into shape.
func OpenFile(path string, access Access) (*File, error) {
	flag := os.O_RDONLY
	if access.writable() {
		flag = os.O_RDWR
	}
	if access == ReadWriteExtend {
		flag |= os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0644)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	return &File{f: f}, nil
}

// NewFile wraps an already-open file handle.
func NewFile(f *os.File) *File {
	return &File{f: f}
}

// Length returns the current length of the file.
func (f *File) Length() (int64, error) {
	fi, err := f.f.Stat()
	if err != nil {
		return 0, errors.Wrapf(err, "cannot stat %s", f.Name())
	}
	return fi.Size(), nil
}

// Fd returns the platform file handle.
func (f *File) Fd() int {
	return int(f.f.Fd())
}

// Name returns the name of the file as presented to OpenFile.
func (f *File) Name() string {
	return f.f.Name()
}

// Extend grows the file so its length is at least n bytes. It never
// truncates: when the file is already long enough this is a no-op. On
// failure the file's existing length is unchanged.
func (f *File) Extend(n int64) error {
	cur, err := f.Length()
	if err != nil {
		return err
	}
	if n <= cur {
		return nil
	}
	if err := allocate(f.f, n); err != nil {
		return errors.Wrapf(err, "unable to extend %s to %d bytes", f.Name(), n)
	}
	return nil
}

// Close closes the underlying file handle.
func (f *File) Close() error {
	if err := f.f.Close(); err != nil {
		return errors.Wrapf(err, "while closing %s", f.Name())
	}
	return nil
}
