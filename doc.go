// Package dia resolves and composites layered image archives.
//
// # Overview
//
// A dia archive is a zip container holding raster images plus a manifest
// entry, optimization_map.json, declaring two mappings: image_map (asset
// id → entry filename) and dependencies (asset id → the id rendered
// beneath it). Rendering an id walks the dependency links down to the
// base layer, decodes every layer from the archive, and alpha-blends the
// stack in painter's order.
//
// # Quick Start
//
//	import "github.com/go-dia/dia"
//
//	ar := dia.NewArchive("pack.dia")
//	manifest, err := ar.ReadManifest()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	cat := dia.NewCatalog(manifest)
//	pm, err := dia.Render(cat, ar, "button_pressed")
//	if err != nil {
//		log.Fatal(err)
//	}
//	pm.SavePNG("button_pressed.png")
//
// # Rendering Rules
//
// The base layer (the one with no dependency entry) fixes the canvas
// size for the whole render. Overlays are blended with the source-over
// operator at the canvas origin, clipped to the region both share;
// nothing is ever scaled or repositioned. A layer without an alpha
// channel decodes fully opaque.
//
// Dependency links form chains, not graphs: each id has at most one
// parent. Resolution is cycle-checked, so a manifest whose links loop
// (including an id depending on itself) fails cleanly instead of
// walking forever.
//
// # Concurrency
//
// A render is a synchronous pipeline with no shared mutable state: the
// archive is reopened per entry read and the catalog is immutable after
// construction, so any number of renders may run concurrently against
// the same Catalog and Archive values. Nothing is cached between
// renders; repeated calls are expensive but deterministic.
package dia

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
