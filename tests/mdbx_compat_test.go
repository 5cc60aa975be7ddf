package tests

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Giulio2002/mapfile"

	mdbx "github.com/erigontech/mdbx-go/mdbx"
)

func createMdbxDB(t *testing.T, path string) {
	t.Helper()

	// Lock OS thread for mdbx-go transaction safety
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	env, err := mdbx.NewEnv(mdbx.Label("mapfile-compat"))
	if err != nil {
		t.Fatal(err)
	}
	defer env.Close()

	env.SetGeometry(-1, -1, 1<<30, -1, -1, 4096)

	if err := env.Open(path, mdbx.Create, 0644); err != nil {
		t.Fatal(err)
	}

	txn, err := env.BeginTxn(nil, 0)
	if err != nil {
		t.Fatal(err)
	}

	dbi, err := txn.OpenRoot(0)
	if err != nil {
		txn.Abort()
		t.Fatal(err)
	}

	for i := 0; i < 500; i++ {
		k := []byte(fmt.Sprintf("key-%04d", i))
		v := []byte(fmt.Sprintf("value-%04d", i))
		if err := txn.Put(dbi, k, v, 0); err != nil {
			txn.Abort()
			t.Fatal(err)
		}
	}

	if _, err := txn.Commit(); err != nil {
		t.Fatal(err)
	}
}

func TestMdbxDataFileMapped(t *testing.T) {
	dir := t.TempDir()
	createMdbxDB(t, dir)

	dataPath := filepath.Join(dir, "mdbx.dat")
	want, err := os.ReadFile(dataPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(want) == 0 {
		t.Fatal("libmdbx produced an empty data file")
	}

	m, err := mapfile.Map(dataPath, mapfile.ReadOnly)
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
