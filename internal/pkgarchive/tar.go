package pkgarchive

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkgerio/pkger/internal/pkgerr"
)

var ErrArchive = fmt.Errorf("archive error")

// Entry is a single named byte blob to place in a TAR stream.
type Entry struct {
	Name string
	Data []byte
	Mode int64
}

// BuildTar assembles a TAR archive in memory from a set of entries.
//
// Used for uploads where the caller already has the bytes in hand (a
// rendered control file, a recipe-relative patch, a single fetched file)
// rather than a directory tree on disk.
func BuildTar(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	for _, e := range entries {
		mode := e.Mode
		if mode == 0 {
			mode = 0644
		}
		hdr := &tar.Header{
			Name: e.Name,
			Mode: mode,
			Size: int64(len(e.Data)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return nil, pkgerr.Wrap(ErrArchive, err)
		}
		if _, err := tw.Write(e.Data); err != nil {
			return nil, pkgerr.Wrap(ErrArchive, err)
		}
	}

	if err := tw.Close(); err != nil {
		return nil, pkgerr.Wrap(ErrArchive, err)
	}
	return buf.Bytes(), nil
}

// BuildTarFromPath walks a file or directory on the host and archives it
// under archiveName (the base name used inside the archive for a single
// file, or the root prefix for a directory tree).
func BuildTarFromPath(hostPath, archiveName string) ([]byte, error) {
	info, err := os.Stat(hostPath)
	if err != nil {
		return nil, pkgerr.Wrap(ErrArchive, err)
	}

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)

	if info.IsDir() {
		err = filepath.WalkDir(hostPath, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(hostPath, path)
			if err != nil {
				return err
			}
			return writeEntry(tw, path, filepath.ToSlash(filepath.Join(archiveName, rel)), d)
		})
	} else {
		err = writeFile(tw, hostPath, archiveName, info)
	}
	if err != nil {
		tw.Close()
		return nil, pkgerr.Wrap(ErrArchive, err)
	}

	if err := tw.Close(); err != nil {
		return nil, pkgerr.Wrap(ErrArchive, err)
	}
	return buf.Bytes(), nil
}

func writeEntry(tw *tar.Writer, hostPath, archivePath string, d os.DirEntry) error {
	info, err := d.Info()
	if err != nil {
		return err
	}
	if info.Mode().IsRegular() {
		return writeFile(tw, hostPath, archivePath, info)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archivePath
	return tw.WriteHeader(hdr)
}

func writeFile(tw *tar.Writer, hostPath, archivePath string, info os.FileInfo) error {
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = archivePath

	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}

	f, err := os.Open(hostPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(tw, f)
	return err
}

// Unpack extracts a TAR stream onto the host filesystem rooted at dir.
func Unpack(r io.Reader, dir string) error {
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return pkgerr.Wrap(ErrArchive, err)
		}

		target := filepath.Join(dir, filepath.Clean(hdr.Name))

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0755); err != nil {
				return pkgerr.Wrap(ErrArchive, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return pkgerr.Wrap(ErrArchive, err)
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode))
			if err != nil {
				return pkgerr.Wrap(ErrArchive, err)
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return pkgerr.Wrap(ErrArchive, err)
			}
			f.Close()
		}
	}
}
