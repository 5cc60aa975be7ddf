package mapfile

// Access selects the protection of a mapping. It is fixed at map time and
// immutable until the mapping is closed.
type Access int

const (
	// ReadOnly maps the region with read protection only.
	ReadOnly Access = iota

	// ReadWrite maps the region with read and write protection.
	ReadWrite

	// ReadWriteExtend maps the region with read and write protection and
	// grows the backing file to cover the requested region before the
	// mapping is established. It requires an explicit region.
	ReadWriteExtend
)

func (a Access) String() string {
	switch a {
	case ReadOnly:
		return "read-only"
	case ReadWrite:
		return "read-write"
	case ReadWriteExtend:
		return "read-write-extend"
	}
	return "unknown"
}

// writable reports whether the mode needs write protection.
func (a Access) writable() bool {
	return a != ReadOnly
}

// Flag holds capability flags for a MappedFile, fixed at construction.
type Flag uint

const (
	// FlushInvalidate makes Flush additionally invalidate platform-level
	// caches keyed to the file's content identity (for example kernel
	// code-signature validation caches). Whether it is needed depends on
	// the deployment target, so it is selected by configuration rather
	// than detected.
	FlushInvalidate Flag = 1 << iota
)
