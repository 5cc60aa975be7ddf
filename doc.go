// Package mapfile provides a memory-mapped view of file contents.
//
// A MappedFile exposes a byte-addressable view of a file backed by the
// operating system's virtual-memory mapping facility. It supports mapping
// the whole file or an arbitrary, possibly unaligned sub-region, in one of
// three access modes (ReadOnly, ReadWrite, ReadWriteExtend), and offers an
// explicit flush-to-disk operation.
//
// Key features:
//   - Arbitrary byte regions: requested ranges are reconciled with the
//     platform's page-granular alignment requirements internally
//   - Extend mode grows the backing file before mapping it writable
//   - Durable flush, with optional platform cache invalidation
//   - Idempotent teardown that releases the mapping and the file handle
//
// Basic usage:
//
//	f, err := mapfile.OpenFile("/path/to/data", mapfile.ReadWrite)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m := mapfile.New(0)
//	if err := m.MapRegion(f, mapfile.Region{Offset: 100, Size: 50}, mapfile.ReadWrite); err != nil {
//	    f.Close()
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	copy(m.Data(), []byte("hello"))
//	if err := m.Flush(); err != nil {
//	    log.Fatal(err)
//	}
//
// A single MappedFile owns exactly one mapping at a time and performs no
// internal locking: MapRegion and Close need external synchronization if
// called from multiple goroutines. Concurrent reads of the mapped memory
// are safe while no writer is active. Mapping, extension and flush may
// block on disk I/O.
package mapfile
