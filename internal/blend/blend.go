// Package blend implements source-over alpha compositing on
// non-premultiplied RGBA pixels.
//
// Reference: Porter-Duff, "Compositing Digital Images" (1984).
package blend

// Over composites a source pixel over a destination pixel. All channels
// are non-premultiplied, 0-255.
//
// The over operator on non-premultiplied values:
//
//	outA = srcA + dstA*(1-srcA)
//	outC = (srcC*srcA + dstC*dstA*(1-srcA)) / outA
func Over(sr, sg, sb, sa, dr, dg, db, da uint8) (r, g, b, a uint8) {
	// An opaque source, or a fully transparent destination, replaces the
	// destination outright.
	if sa == 0xff || da == 0 {
		return sr, sg, sb, sa
	}
	// A fully transparent source leaves the destination untouched.
	if sa == 0 {
		return dr, dg, db, da
	}

	srcA := uint32(sa)
	dstA := uint32(da) * (255 - srcA) / 255
	outA := srcA + dstA // > 0 since srcA > 0

	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*srcA + uint32(d)*dstA) / outA)
	}
	return mix(sr, dr), mix(sg, dg), mix(sb, db), uint8(outA)
}

// OverRow composites width pixels of src over dst in place. Both slices
// hold non-premultiplied RGBA and must be at least width*4 bytes long.
func OverRow(dst, src []uint8, width int) {
	for i := 0; i < width*4; i += 4 {
		dst[i], dst[i+1], dst[i+2], dst[i+3] = Over(
			src[i], src[i+1], src[i+2], src[i+3],
			dst[i], dst[i+1], dst[i+2], dst[i+3],
		)
	}
}
