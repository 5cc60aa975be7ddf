// Package tests contains compatibility tests that map database files
// written by external storage engines and verify that the mapped view is
// byte-identical to regular file reads.
package tests

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Giulio2002/mapfile"

	bolt "go.etcd.io/bbolt"
)

// boltMetaMagic is bbolt's meta-page magic, stored at byte 16 of page 0
// (right after the 16-byte page header).
const boltMetaMagic = 0xED0CDAED

func createBoltDB(t *testing.T, path string) {
	t.Helper()

	db, err := bolt.Open(path, 0644, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	err = db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucket([]byte("pages"))
		if err != nil {
			return err
		}
		for i := 0; i < 200; i++ {
			k := []byte(fmt.Sprintf("key-%04d", i))
			v := bytes.Repeat([]byte{byte(i)}, 256)
			if err := b.Put(k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestBoltWholeFileMapped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bolt.db")
	createBoltDB(t, path)

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	m, err := mapfile.Map(path, mapfile.ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Close()

	if m.Len() != int64(len(want)) {
		t.Fatalf("mapped length %d, file length %d", m.Len(), len(want))
	}
	if !bytes.Equal(m.Data(), want) {
		t.Error("mapped view differs from file contents")
	}
}

func TestBoltMetaRegionMapped(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bolt.db")
	createBoltDB(t, path)

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	// Map only the 4 magic bytes, at an offset no mapping primitive
	// accepts directly
	f, err := mapfile.OpenFile(path, mapfile.ReadOnly)
	if err != nil {
		t.Fatal(err)
	}
	m := mapfile.New(0)
	if err := m.MapRegion(f, mapfile.Region{Offset: 16, Size: 4}, mapfile.ReadOnly); err != nil {
		f.Close()
		t.Fatal(err)
	}
	defer m.Close()

	if !bytes.Equal(m.Data(), want[16:20]) {
		t.Fatalf("mapped magic bytes %x, file has %x", m.Data(), want[16:20])
	}
	if magic := binary.LittleEndian.Uint32(m.Data()); magic != boltMetaMagic {
		t.Errorf("meta magic = %#x, want %#x", magic, uint32(boltMetaMagic))
	}
}
