package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestExtractResourceMissing(t *testing.T) {
	scratch := t.TempDir()
	l := &Loader{Resources: fstest.MapFS{}, ScratchDir: scratch}

	_, err := l.extractResource("linux-x86_64/libmilvus-storage-jni.so")
	if !errors.Is(err, ErrResourceNotFound) {
		t.Fatalf("expected ErrResourceNotFound, got %v", err)
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("scratch dir modified on miss: %d entries", len(entries))
	}
}

func TestExtractResourceIdempotent(t *testing.T) {
	content := []byte("\x7fELF fake shared object")
	res := fstest.MapFS{
		"linux-x86_64/libarrow.so": &fstest.MapFile{Data: content},
	}
	l := &Loader{Resources: res, ScratchDir: t.TempDir()}

	for i := 0; i < 2; i++ {
		dest, err := l.extractResource("linux-x86_64/libarrow.so")
		if err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		got, err := os.ReadFile(dest)
		if err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("pass %d: extracted bytes differ from resource", i)
		}
	}
}

func TestExtractResourceOverwritesLargerFile(t *testing.T) {
	scratch := t.TempDir()
	stale := filepath.Join(scratch, "libz.so")
	if err := os.WriteFile(stale, bytes.Repeat([]byte("x"), 4096), 0o644); err != nil {
		t.Fatal(err)
	}

	content := []byte("new")
	l := &Loader{
		Resources:  fstest.MapFS{"linux-x86_64/libz.so": &fstest.MapFile{Data: content}},
		ScratchDir: scratch,
	}
	dest, err := l.extractResource("linux-x86_64/libz.so")
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, content) {
		t.Errorf("stale file not fully replaced: got %d bytes", len(got))
	}
}

func TestExtractAllToleratesMisses(t *testing.T) {
	// Only the primary library is bundled; every other catalog entry is a
	// miss and must be skipped silently.
	res := fstest.MapFS{
		"linux-x86_64/libmilvus-storage-jni.so": &fstest.MapFile{Data: []byte("jni")},
	}
	scratch := t.TempDir()
	l := &Loader{Resources: res, ScratchDir: scratch}

	if err := l.extractAll("linux-x86_64", "so"); err != nil {
		t.Fatalf("extractAll: %v", err)
	}

	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 extracted file, got %d", len(entries))
	}
	if entries[0].Name() != "libmilvus-storage-jni.so" {
		t.Errorf("unexpected file %q", entries[0].Name())
	}
}

func TestExtractAllPropagatesScratchFailure(t *testing.T) {
	// Point the scratch dir at a regular file so every write fails.
	bad := filepath.Join(t.TempDir(), "notadir")
	if err := os.WriteFile(bad, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{
		Resources:  fstest.MapFS{"linux-x86_64/libarrow.so": &fstest.MapFile{Data: []byte("a")}},
		ScratchDir: filepath.Join(bad, "sub"),
	}
	err := l.extractAll("linux-x86_64", "so")
	if !errors.Is(err, ErrScratchDirUnavailable) {
		t.Fatalf("expected ErrScratchDirUnavailable, got %v", err)
	}
}

func TestCleanupRemovesExtractedFiles(t *testing.T) {
	res := fstest.MapFS{
		"linux-x86_64/libssl.so":    &fstest.MapFile{Data: []byte("s")},
		"linux-x86_64/libcrypto.so": &fstest.MapFile{Data: []byte("c")},
	}
	scratch := t.TempDir()
	l := &Loader{Resources: res, ScratchDir: scratch}
	if err := l.extractAll("linux-x86_64", "so"); err != nil {
		t.Fatal(err)
	}

	l.Cleanup()

	entries, err := os.ReadDir(scratch)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty scratch dir after Cleanup, got %d entries", len(entries))
	}

	// A second Cleanup, and one racing a missing file, must not panic.
	l.Cleanup()
}
