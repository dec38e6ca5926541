// Package term renders pixmaps as ANSI half-block art for terminal
// preview. Each terminal cell shows two vertically stacked pixels: the
// upper one colors the foreground of the ▀ glyph, the lower one its
// background.
package term

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/go-dia/dia"
)

// Fit scales the pixmap to fit a terminal region of cols × rows cells,
// preserving aspect ratio. Images are only ever scaled down; anything
// that already fits is returned at its native size. Returns nil when the
// region has no room for pixels.
func Fit(pm *dia.Pixmap, cols, rows int) *image.NRGBA {
	maxW, maxH := cols, rows*2
	if maxW <= 0 || maxH <= 0 || pm.Width() <= 0 || pm.Height() <= 0 {
		return nil
	}

	src := pm.ToImage()

	scale := min(
		float64(maxW)/float64(pm.Width()),
		float64(maxH)/float64(pm.Height()),
		1.0,
	)
	if scale == 1.0 {
		return src
	}

	dw := max(int(float64(pm.Width())*scale), 1)
	dh := max(int(float64(pm.Height())*scale), 1)

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Render draws the image as half-block cells, one text row per two pixel
// rows. An odd final pixel row paints foregrounds only, leaving the
// lower half of the cell in the terminal's own background.
func Render(img *image.NRGBA) string {
	if img == nil {
		return ""
	}

	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			style := lipgloss.NewStyle().Foreground(cellColor(img.NRGBAAt(x, y)))
			if y+1 < b.Max.Y {
				style = style.Background(cellColor(img.NRGBAAt(x, y+1)))
			}
			sb.WriteString(style.Render("▀"))
		}
	}
	return sb.String()
}

// FitAndRender scales the pixmap into the given cell region and renders
// it as half-block art.
func FitAndRender(pm *dia.Pixmap, cols, rows int) string {
	return Render(Fit(pm, cols, rows))
}

// cellColor maps a pixel to a terminal color. Terminal cells have no
// alpha, so translucent pixels are composited onto black first.
func cellColor(c color.NRGBA) lipgloss.Color {
	a := uint32(c.A)
	r := uint32(c.R) * a / 255
	g := uint32(c.G) * a / 255
	b := uint32(c.B) * a / 255
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
}
