package dia

import (
	"archive/zip"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// ManifestEntryName is the archive entry holding the manifest JSON.
const ManifestEntryName = "optimization_map.json"

// Archive locates a layered image archive (a zip container) on disk.
// Every read opens the container fresh and releases it before returning,
// so a single Archive value holds no state and can serve any number of
// sequential or concurrent reads.
type Archive struct {
	path string
}

// NewArchive returns an Archive for the container at path. The file is
// not touched until the first read.
func NewArchive(path string) Archive {
	return Archive{path: path}
}

// Path returns the archive's file path.
func (a Archive) Path() string { return a.path }

// ReadEntry extracts the raw bytes of the entry with exactly the given
// name. The entry's declared uncompressed size is read in full; a short
// read is an error and no partial buffer is returned.
func (a Archive) ReadEntry(name string) ([]byte, error) {
	if name == "" {
		return nil, ErrEmptyEntryName
	}

	rc, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrArchiveOpen, a.path, err)
	}
	defer func() { _ = rc.Close() }()

	// Faster drop-in inflater for deflate-compressed entries.
	rc.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})

	for _, f := range rc.File {
		if f.Name != name {
			continue
		}

		fr, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrEntryRead, name, err)
		}
		buf := make([]byte, f.UncompressedSize64)
		_, err = io.ReadFull(fr, buf)
		_ = fr.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrEntryRead, name, err)
		}

		Logger().Debug("read archive entry", "entry", name, "bytes", len(buf))
		return buf, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrEntryNotFound, name)
}

// ReadManifest reads and parses the archive's manifest entry.
func (a Archive) ReadManifest() (Manifest, error) {
	data, err := a.ReadEntry(ManifestEntryName)
	if err != nil {
		return Manifest{}, err
	}
	return ParseManifest(data)
}
