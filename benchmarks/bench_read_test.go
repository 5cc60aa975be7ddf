// Package benchmarks compares mapped access with buffered file access.
package benchmarks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Giulio2002/mapfile"
)

const (
	benchFileSize = 16 << 20 // 16 MB
	benchChunk    = 4096
)

func setupBenchFile(b *testing.B) string {
	b.Helper()
	path := filepath.Join(b.TempDir(), "bench.dat")

	buf := make([]byte, benchFileSize)
	for i := range buf {
		buf[i] = byte(i)
	}
	if err := os.WriteFile(path, buf, 0644); err != nil {
		b.Fatal(err)
	}
	return path
}

// nextOffset is a deterministic pseudo-random chunk offset sequence.
func nextOffset(state *uint64) int64 {
	*state = *state*6364136223846793005 + 1442695040888963407
	chunks := int64(benchFileSize / benchChunk)
	return (int64(*state>>33) % chunks) * benchChunk
}

func BenchmarkMappedReadAt(b *testing.B) {
	path := setupBenchFile(b)

	m, err := mapfile.Map(path, mapfile.ReadOnly)
	if err != nil {
		b.Fatal(err)
	}
	defer m.Close()
	m.AdviseRandom()

	buf := make([]byte, benchChunk)
	state := uint64(1)
	b.SetBytes(benchChunk)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := m.ReadAt(buf, nextOffset(&state)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFileReadAt(b *testing.B) {
	path := setupBenchFile(b)

	f, err := os.Open(path)
	if err != nil {
		b.Fatal(err)
	}
	defer f.Close()

	buf := make([]byte, benchChunk)
	state := uint64(1)
	b.SetBytes(benchChunk)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.ReadAt(buf, nextOffset(&state)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMappedScan(b *testing.B) {
	path := setupBenchFile(b)

	m, err := mapfile.Map(path, mapfile.ReadOnly)
	if err != nil {
		b.Fatal(err)
	}
	defer m.Close()
	m.AdviseSequential()

	b.SetBytes(benchFileSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var sum byte
		data := m.Data()
		for _, c := range data {
			sum += c
		}
		_ = sum
	}
}

func BenchmarkFlush(b *testing.B) {
	path := setupBenchFile(b)

	f, err := mapfile.OpenFile(path, mapfile.ReadWrite)
	if err != nil {
		b.Fatal(err)
	}
	m := mapfile.New(0)
	if err := m.MapRegion(f, mapfile.Region{Offset: 100, Size: benchChunk}, mapfile.ReadWrite); err != nil {
		f.Close()
		b.Fatal(err)
	}
	defer m.Close()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Data()[i%benchChunk] = byte(i)
		if err := m.Flush(); err != nil {
			b.Fatal(err)
		}
	}
}
