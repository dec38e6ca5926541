package dia

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

// solidPixmap builds a w×h pixmap filled with one color.
func solidPixmap(w, h int, c color.NRGBA) *Pixmap {
	pm := NewPixmap(w, h)
	for y := range h {
		for x := range w {
			pm.SetPixel(x, y, c)
		}
	}
	return pm
}

// pngEntry encodes a pixmap as PNG bytes for use as an archive entry.
func pngEntry(t *testing.T, pm *Pixmap) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := pm.EncodePNG(&buf); err != nil {
		t.Fatalf("encode entry: %v", err)
	}
	return buf.Bytes()
}

// layeredArchive builds an archive plus catalog from a manifest and a
// set of image entries.
func layeredArchive(t *testing.T, manifest string, entries map[string][]byte) (*Catalog, Archive) {
	t.Helper()
	all := map[string][]byte{ManifestEntryName: []byte(manifest)}
	for name, data := range entries {
		all[name] = data
	}
	ar := writeTestArchive(t, all)
	m, err := ar.ReadManifest()
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	return NewCatalog(m), ar
}

func TestRender_SingleLayer(t *testing.T) {
	base := solidPixmap(6, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	cat, ar := layeredArchive(t,
		`{"image_map": {"base": "base.png"}}`,
		map[string][]byte{"base.png": pngEntry(t, base)},
	)

	got, err := Render(cat, ar, "base")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if diff := cmp.Diff(base.Data(), got.Data()); diff != "" {
		t.Errorf("canvas mismatch (-want +got):\n%s", diff)
	}
}

// TestRender_TwoLayers composites a 5×5 opaque blue overlay on a 10×10
// opaque red base: blue block at the top-left, red elsewhere, canvas
// size fixed by the base.
func TestRender_TwoLayers(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"base": "base.png", "top": "top.png"},
			"dependencies": {"top": "base"}
		}`,
		map[string][]byte{
			"base.png": pngEntry(t, solidPixmap(10, 10, red)),
			"top.png":  pngEntry(t, solidPixmap(5, 5, blue)),
		},
	)

	got, err := Render(cat, ar, "top")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Width() != 10 || got.Height() != 10 {
		t.Fatalf("canvas %dx%d, want 10x10 (base size)", got.Width(), got.Height())
	}

	for y := range 10 {
		for x := range 10 {
			want := red
			if x < 5 && y < 5 {
				want = blue
			}
			if c := got.GetPixel(x, y); c != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, c, want)
			}
		}
	}
}

// TestRender_OversizedOverlay verifies an overlay larger than the canvas
// is clipped to the canvas, which keeps its base-given size.
func TestRender_OversizedOverlay(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"base": "base.png", "top": "top.png"},
			"dependencies": {"top": "base"}
		}`,
		map[string][]byte{
			"base.png": pngEntry(t, solidPixmap(10, 10, red)),
			"top.png":  pngEntry(t, solidPixmap(20, 20, blue)),
		},
	)

	got, err := Render(cat, ar, "top")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got.Width() != 10 || got.Height() != 10 {
		t.Fatalf("canvas %dx%d, want 10x10", got.Width(), got.Height())
	}
	for y := range 10 {
		for x := range 10 {
			if c := got.GetPixel(x, y); c != blue {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, c, blue)
			}
		}
	}
}

// TestRender_SemiTransparentOverlay checks the over operator actually
// mixes colors instead of replacing them.
func TestRender_SemiTransparentOverlay(t *testing.T) {
	overlay := solidPixmap(10, 10, color.NRGBA{B: 255, A: 128})
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"base": "base.png", "top": "top.png"},
			"dependencies": {"top": "base"}
		}`,
		map[string][]byte{
			"base.png": pngEntry(t, solidPixmap(10, 10, red)),
			"top.png":  pngEntry(t, overlay),
		},
	)

	got, err := Render(cat, ar, "top")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	c := got.GetPixel(5, 5)
	if c.A != 255 {
		t.Errorf("alpha = %d, want 255 (opaque base)", c.A)
	}
	// ≈50/50 mix of red base and blue overlay, with rounding slack.
	if c.R < 120 || c.R > 135 || c.B < 120 || c.B > 135 {
		t.Errorf("pixel (5,5) = %v, want ≈half red, half blue", c)
	}
}

// TestRender_TransparentOverlay verifies a fully transparent overlay
// leaves the canvas untouched.
func TestRender_TransparentOverlay(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"base": "base.png", "top": "top.png"},
			"dependencies": {"top": "base"}
		}`,
		map[string][]byte{
			"base.png": pngEntry(t, solidPixmap(8, 8, red)),
			"top.png":  pngEntry(t, NewPixmap(8, 8)),
		},
	)

	got, err := Render(cat, ar, "top")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if diff := cmp.Diff(solidPixmap(8, 8, red).Data(), got.Data()); diff != "" {
		t.Errorf("canvas mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_ThreeLayerChain(t *testing.T) {
	green := color.NRGBA{G: 255, A: 255}
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"base": "base.png", "mid": "mid.png", "top": "top.png"},
			"dependencies": {"top": "mid", "mid": "base"}
		}`,
		map[string][]byte{
			"base.png": pngEntry(t, solidPixmap(9, 9, red)),
			"mid.png":  pngEntry(t, solidPixmap(6, 6, green)),
			"top.png":  pngEntry(t, solidPixmap(3, 3, blue)),
		},
	)

	got, err := Render(cat, ar, "top")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	// Painter's order: top hides mid hides base where they overlap.
	cases := []struct {
		x, y int
		want color.NRGBA
	}{
		{1, 1, blue},
		{4, 4, green},
		{7, 7, red},
	}
	for _, tc := range cases {
		if c := got.GetPixel(tc.x, tc.y); c != tc.want {
			t.Errorf("pixel (%d,%d) = %v, want %v", tc.x, tc.y, c, tc.want)
		}
	}
}

// TestRender_MissingAsset verifies a dependency on an id absent from
// image_map fails with the offending id and no canvas.
func TestRender_MissingAsset(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"top": "top.png"},
			"dependencies": {"top": "ghost"}
		}`,
		map[string][]byte{"top.png": pngEntry(t, solidPixmap(2, 2, red))},
	)

	pm, err := Render(cat, ar, "top")
	if !errors.Is(err, ErrAssetNotFound) {
		t.Fatalf("got %v, want ErrAssetNotFound", err)
	}
	if !strings.Contains(err.Error(), `"ghost"`) {
		t.Errorf("error %q does not name the missing id", err)
	}
	if pm != nil {
		t.Error("partial canvas returned alongside error")
	}
}

func TestRender_Cycle(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"a": "a.png", "b": "b.png"},
			"dependencies": {"a": "b", "b": "a"}
		}`,
		map[string][]byte{
			"a.png": pngEntry(t, solidPixmap(2, 2, red)),
			"b.png": pngEntry(t, solidPixmap(2, 2, blue)),
		},
	)

	if _, err := Render(cat, ar, "a"); !errors.Is(err, ErrCircularDependency) {
		t.Errorf("got %v, want ErrCircularDependency", err)
	}
}

// TestRender_MissingEntry verifies a filename mapping that points at a
// nonexistent archive entry fails with the offending layer id.
func TestRender_MissingEntry(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{"image_map": {"base": "nowhere.png"}}`,
		nil,
	)

	_, err := Render(cat, ar, "base")
	if !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("got %v, want ErrEntryNotFound", err)
	}
	if !strings.Contains(err.Error(), `"base"`) {
		t.Errorf("error %q does not name the failing layer", err)
	}
}

// TestRender_UndecodableLayer verifies a layer whose bytes are not a
// raster image aborts the render with both id and filename in the error.
func TestRender_UndecodableLayer(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"base": "base.png", "top": "junk.bin"},
			"dependencies": {"top": "base"}
		}`,
		map[string][]byte{
			"base.png": pngEntry(t, solidPixmap(4, 4, red)),
			"junk.bin": []byte("not pixels"),
		},
	)

	_, err := Render(cat, ar, "top")
	if !errors.Is(err, ErrDecode) {
		t.Fatalf("got %v, want ErrDecode", err)
	}
	if !strings.Contains(err.Error(), `"top"`) || !strings.Contains(err.Error(), "junk.bin") {
		t.Errorf("error %q does not identify the failing layer", err)
	}
}

// TestRender_Idempotent renders the same id twice against an unchanged
// archive and expects byte-identical pixels.
func TestRender_Idempotent(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"base": "base.png", "top": "top.png"},
			"dependencies": {"top": "base"}
		}`,
		map[string][]byte{
			"base.png": pngEntry(t, solidPixmap(10, 10, red)),
			"top.png":  pngEntry(t, solidPixmap(5, 5, color.NRGBA{B: 255, A: 100})),
		},
	)

	first, err := Render(cat, ar, "top")
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	second, err := Render(cat, ar, "top")
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !bytes.Equal(first.Data(), second.Data()) {
		t.Error("repeated renders differ")
	}
}

// TestRender_Concurrent exercises the shared-catalog guarantee: many
// simultaneous renders against one catalog and archive all agree.
func TestRender_Concurrent(t *testing.T) {
	cat, ar := layeredArchive(t,
		`{
			"image_map": {"base": "base.png", "top": "top.png"},
			"dependencies": {"top": "base"}
		}`,
		map[string][]byte{
			"base.png": pngEntry(t, solidPixmap(10, 10, red)),
			"top.png":  pngEntry(t, solidPixmap(5, 5, blue)),
		},
	)

	want, err := Render(cat, ar, "top")
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pm, err := Render(cat, ar, "top")
			if err != nil {
				errs <- err
				return
			}
			if !bytes.Equal(pm.Data(), want.Data()) {
				errs <- fmt.Errorf("concurrent render differs")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestComposite_EmptyChain(t *testing.T) {
	cat, ar := layeredArchive(t, `{}`, nil)

	if _, err := Composite(cat, ar, nil); !errors.Is(err, ErrEmptyAssetID) {
		t.Errorf("got %v, want ErrEmptyAssetID", err)
	}
}
