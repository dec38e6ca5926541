package dia

import (
	"bytes"
	"fmt"
	"image"

	// Registered raster formats. Detection sniffs the byte stream, so
	// decoding never depends on an entry's filename extension.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DecodeImage decodes entry bytes into a pixmap, auto-detecting the
// raster format from the stream. Supported formats: PNG, JPEG, GIF, BMP,
// TIFF, WebP. Sources without an alpha channel decode fully opaque.
func DecodeImage(data []byte) (*Pixmap, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty data", ErrDecode)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	pm := FromImage(img)
	Logger().Debug("decoded image",
		"format", format, "width", pm.Width(), "height", pm.Height())
	return pm, nil
}
