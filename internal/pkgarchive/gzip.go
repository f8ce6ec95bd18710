package pkgarchive

import (
	"bytes"
	"compress/gzip"
	"io"

	"github.com/pkgerio/pkger/internal/pkgerr"
)

// Gzip compresses a byte stream (typically a TAR archive built by
// [BuildTar] or [BuildTarFromPath]) for formats that want a .tar.gz.
func Gzip(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, pkgerr.Wrap(ErrArchive, err)
	}
	if err := zw.Close(); err != nil {
		return nil, pkgerr.Wrap(ErrArchive, err)
	}
	return buf.Bytes(), nil
}

// Gunzip decompresses a gzip stream.
func Gunzip(r io.Reader) (io.Reader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, pkgerr.Wrap(ErrArchive, err)
	}
	return zr, nil
}
