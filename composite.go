package dia

import (
	"fmt"

	"github.com/go-dia/dia/internal/blend"
)

// Render resolves the dependency chain for id and composites every layer
// in order. The base layer fixes the canvas size for the whole render;
// each overlay is then alpha-blended over the canvas at the origin,
// clipped to the region both share. Any failure aborts the render and no
// partial canvas is returned.
//
// Render touches no shared mutable state, so concurrent calls against
// the same catalog and archive are safe. A render cannot be cancelled
// once started; callers that want to supersede an in-flight render
// should run it on its own goroutine and discard the stale result.
func Render(cat *Catalog, ar Archive, id string) (*Pixmap, error) {
	chain, err := ResolveChain(cat, id)
	if err != nil {
		return nil, err
	}
	return Composite(cat, ar, chain)
}

// Composite renders an already-resolved chain, ordered base first. The
// chain must be non-empty.
func Composite(cat *Catalog, ar Archive, chain []string) (*Pixmap, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("%w: empty chain", ErrEmptyAssetID)
	}

	canvas, err := loadLayer(cat, ar, chain[0])
	if err != nil {
		return nil, err
	}
	Logger().Debug("base layer ready",
		"id", chain[0], "width", canvas.Width(), "height", canvas.Height())

	for _, overlayID := range chain[1:] {
		overlay, err := loadLayer(cat, ar, overlayID)
		if err != nil {
			return nil, err
		}
		canvas.drawOver(overlay)
		Logger().Debug("overlay composited", "id", overlayID,
			"width", overlay.Width(), "height", overlay.Height())
	}

	return canvas, nil
}

// loadLayer fetches and decodes a single chain member. Errors carry the
// layer's id (and filename, once known) so render failures identify the
// offending layer.
func loadLayer(cat *Catalog, ar Archive, id string) (*Pixmap, error) {
	filename, ok := cat.FilenameOf(id)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrAssetNotFound, id)
	}

	data, err := ar.ReadEntry(filename)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", id, err)
	}

	pm, err := DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("layer %q (%s): %w", id, filename, err)
	}
	return pm, nil
}

// drawOver alpha-blends overlay onto p at the origin, clipped to the
// rectangle both share. Canvas pixels outside the overlap are untouched;
// an empty overlap is a no-op. The overlay is never scaled or
// repositioned.
func (p *Pixmap) drawOver(overlay *Pixmap) {
	w := min(overlay.width, p.width)
	h := min(overlay.height, p.height)
	if w <= 0 || h <= 0 {
		return
	}

	for y := range h {
		dst := p.data[y*p.width*4:]
		src := overlay.data[y*overlay.width*4:]
		blend.OverRow(dst, src, w)
	}
}
