package mapfile

// Region describes the byte range of a file to map. Explicit regions
// require Offset >= 0 and Size >= 0; they need not be aligned in any way.
type Region struct {
	// Offset is the byte position of the start of the region.
	Offset int64

	// Size is the length of the region in bytes.
	Size int64
}

// WholeFile is the sentinel region denoting the entire file, whatever its
// length is at map time.
var WholeFile = Region{Offset: 0, Size: -1}

// IsWholeFile reports whether the region is the whole-file sentinel.
func (r Region) IsWholeFile() bool {
	return r == WholeFile
}
