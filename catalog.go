package dia

import (
	"maps"
	"slices"
)

// Catalog is the immutable id→filename and id→parent lookup built from a
// manifest. It never changes after construction, so it is safe to share
// across any number of concurrent renders.
type Catalog struct {
	filenames map[string]string
	parents   map[string]string
}

// NewCatalog builds a catalog from a manifest. The mappings are copied,
// so later mutation of the manifest does not affect the catalog.
func NewCatalog(m Manifest) *Catalog {
	return &Catalog{
		filenames: maps.Clone(m.ImageMap),
		parents:   maps.Clone(m.Dependencies),
	}
}

// FilenameOf returns the archive entry filename for an asset id.
func (c *Catalog) FilenameOf(id string) (string, bool) {
	filename, ok := c.filenames[id]
	return filename, ok
}

// ParentOf returns the id composited beneath the given id. An id without
// a parent is a base layer.
func (c *Catalog) ParentOf(id string) (string, bool) {
	parent, ok := c.parents[id]
	return parent, ok
}

// Len returns the number of asset ids with an image entry.
func (c *Catalog) Len() int { return len(c.filenames) }

// IDs returns every asset id with an image entry, sorted.
func (c *Catalog) IDs() []string {
	return slices.Sorted(maps.Keys(c.filenames))
}
