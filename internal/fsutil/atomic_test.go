package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic_ReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	if err := WriteFileAtomic(path, []byte("first"), FilePerm); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}
	if err := WriteFileAtomic(path, []byte("second"), FilePerm); err != nil {
		t.Fatalf("WriteFileAtomic() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Errorf("content = %q, want %q", got, "second")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestBestEffortBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")

	// Missing source: no backup, no panic.
	BestEffortBackup(path, FilePerm)
	if _, err := os.Stat(path + ".bak"); !os.IsNotExist(err) {
		t.Fatalf("backup created for missing file: %v", err)
	}

	if err := os.WriteFile(path, []byte("v1"), FilePerm); err != nil {
		t.Fatal(err)
	}
	BestEffortBackup(path, FilePerm)

	got, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("backup = %q, want %q", got, "v1")
	}

	// An empty source must not clobber a good backup.
	if err := os.WriteFile(path, []byte("  "), FilePerm); err != nil {
		t.Fatal(err)
	}
	BestEffortBackup(path, FilePerm)
	got, _ = os.ReadFile(path + ".bak")
	if string(got) != "v1" {
		t.Errorf("backup = %q after empty source, want %q", got, "v1")
	}
}

func TestReadIfExists(t *testing.T) {
	dir := t.TempDir()

	data, ok, err := ReadIfExists(filepath.Join(dir, "missing"))
	if err != nil || ok || data != nil {
		t.Fatalf("ReadIfExists(missing) = %q, %v, %v", data, ok, err)
	}

	path := filepath.Join(dir, "present")
	if err := os.WriteFile(path, []byte("x"), FilePerm); err != nil {
		t.Fatal(err)
	}
	data, ok, err = ReadIfExists(path)
	if err != nil || !ok || string(data) != "x" {
		t.Fatalf("ReadIfExists(present) = %q, %v, %v", data, ok, err)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	if err := os.WriteFile(src, []byte("payload"), FilePerm); err != nil {
		t.Fatal(err)
	}
	if err := CopyFile(src, dst, FilePerm); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	got, _ := os.ReadFile(dst)
	if string(got) != "payload" {
		t.Errorf("dst = %q", got)
	}
	if err := CopyFile(filepath.Join(dir, "nope"), dst, FilePerm); err == nil {
		t.Error("CopyFile(missing) error = nil")
	}
}
