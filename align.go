package mapfile

import (
	"math"

	"github.com/Giulio2002/mapfile/mmap"
)

// maxMapLength is the largest extent the mapping primitive accepts, bound
// by the platform's int width.
const maxMapLength = int64(^uint(0) >> 1)

// alignedRange computes the smallest page-aligned outer range that fully
// contains the requested [offset, offset+size) range:
//
//   - start is the largest granularity multiple <= offset
//   - length is the smallest granularity multiple >= (offset+size)-start
//   - displacement = offset - start, with 0 <= displacement < granularity
//
// It fails with an ErrAlignment error, before any system call is issued,
// when the inputs are negative or the outer range cannot be represented.
func alignedRange(offset, size int64) (start, length, displacement int64, err error) {
	if offset < 0 || size < 0 {
		return 0, 0, 0, NewError(ErrAlignment)
	}

	gran := int64(mmap.Granularity())
	if size > math.MaxInt64-offset {
		return 0, 0, 0, errorf(ErrAlignment, "region end overflows offset range")
	}
	end := offset + size

	start = offset - offset%gran
	if end-start > maxMapLength-(gran-1) {
		return 0, 0, 0, errorf(ErrAlignment, "aligned region size overflows mappable range")
	}
	length = ((end - start) + gran - 1) / gran * gran
	displacement = offset - start
	return start, length, displacement, nil
}
