package pkgarchive

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildTarAndUnpackRoundTrip(t *testing.T) {
	data, err := BuildTar([]Entry{
		{Name: "hello.txt", Data: []byte("hello world")},
		{Name: "nested/inner.txt", Data: []byte("inner"), Mode: 0600},
	})
	if err != nil {
		t.Fatalf("BuildTar: %v", err)
	}

	dir := t.TempDir()
	if err := Unpack(bytes.NewReader(data), dir); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "hello.txt"))
	if err != nil {
		t.Fatalf("reading unpacked file: %v", err)
	}
	if string(got) != "hello world" {
		t.Fatalf("hello.txt = %q, want %q", got, "hello world")
	}

	got, err = os.ReadFile(filepath.Join(dir, "nested/inner.txt"))
	if err != nil {
		t.Fatalf("reading unpacked nested file: %v", err)
	}
	if string(got) != "inner" {
		t.Fatalf("nested/inner.txt = %q, want %q", got, "inner")
	}
}

func TestBuildTarFromPathDirectory(t *testing.T) {
	src := t.TempDir()
	if err := os.MkdirAll(filepath.Join(src, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "sub", "file.txt"), []byte("content"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := BuildTarFromPath(src, "root")
	if err != nil {
		t.Fatalf("BuildTarFromPath: %v", err)
	}

	dst := t.TempDir()
	if err := Unpack(bytes.NewReader(data), dst); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "root", "sub", "file.txt"))
	if err != nil {
		t.Fatalf("reading unpacked tree: %v", err)
	}
	if string(got) != "content" {
		t.Fatalf("file.txt = %q, want %q", got, "content")
	}
}

func TestBuildTarFromPathSingleFile(t *testing.T) {
	src := t.TempDir()
	path := filepath.Join(src, "single.txt")
	if err := os.WriteFile(path, []byte("single"), 0644); err != nil {
		t.Fatal(err)
	}

	data, err := BuildTarFromPath(path, "single.txt")
	if err != nil {
		t.Fatalf("BuildTarFromPath: %v", err)
	}

	dst := t.TempDir()
	if err := Unpack(bytes.NewReader(data), dst); err != nil {
		t.Fatalf("Unpack: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dst, "single.txt"))
	if err != nil {
		t.Fatalf("reading unpacked file: %v", err)
	}
	if string(got) != "single" {
		t.Fatalf("single.txt = %q, want %q", got, "single")
	}
}
