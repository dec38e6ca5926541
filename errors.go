package dia

import "errors"

// Errors reported by the archive, resolver, and compositor layers. They
// are returned wrapped with the offending entry name, asset id, or
// filename, so match them with errors.Is.
var (
	// ErrEmptyEntryName is returned when an archive entry name is empty.
	ErrEmptyEntryName = errors.New("dia: entry name is empty")

	// ErrEmptyAssetID is returned when a requested asset id is empty.
	ErrEmptyAssetID = errors.New("dia: asset id is empty")

	// ErrArchiveOpen is returned when the archive cannot be opened.
	ErrArchiveOpen = errors.New("dia: cannot open archive")

	// ErrEntryNotFound is returned when an archive has no entry with the
	// requested name.
	ErrEntryNotFound = errors.New("dia: entry not found in archive")

	// ErrEntryRead is returned when an archive entry cannot be read in
	// full (including short reads against its declared size).
	ErrEntryRead = errors.New("dia: cannot read archive entry")

	// ErrAssetNotFound is returned when a chain member has no image_map
	// entry in the catalog.
	ErrAssetNotFound = errors.New("dia: no filename for asset id")

	// ErrDecode is returned when entry bytes are not a recognized raster
	// format (or the stream is truncated).
	ErrDecode = errors.New("dia: cannot decode image data")

	// ErrCircularDependency is returned when a dependency chain revisits
	// an id.
	ErrCircularDependency = errors.New("dia: circular dependency")
)
