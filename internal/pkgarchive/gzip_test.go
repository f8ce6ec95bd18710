package pkgarchive

import (
	"bytes"
	"io"
	"testing"
)

func TestGzipGunzipRoundTrip(t *testing.T) {
	original := []byte("the quick brown fox jumps over the lazy dog")

	compressed, err := Gzip(original)
	if err != nil {
		t.Fatalf("Gzip: %v", err)
	}
	if bytes.Equal(compressed, original) {
		t.Fatal("compressed output should differ from input")
	}

	r, err := Gunzip(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("Gunzip: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading decompressed stream: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Fatalf("round trip = %q, want %q", got, original)
	}
}

func TestGunzipRejectsGarbage(t *testing.T) {
	if _, err := Gunzip(bytes.NewReader([]byte("not gzip data"))); err == nil {
		t.Fatal("expected an error for a non-gzip stream")
	}
}
