package main

import (
	"image"
	"image/color"
)

// perturbSize is the total headroom reserved on a channel: neighbor
// values are squeezed into [perturbSize/2, 255-perturbSize/2] before
// averaging, so the written offsets can never clip at 0 or wrap at 255.
const perturbSize = 8

// squeeze rescales one channel value from [0, 255] into
// [perturbSize/2, 255-perturbSize/2]. Integer arithmetic, so write and
// read compute bit-identical baselines.
func squeeze(v uint8) int {
	return int(v)*(255-perturbSize)/255 + perturbSize/2
}

// neighborAverage returns the per-channel mean of the squeezed in-bounds
// 4-neighbors of (x, y). Every pixel has at least two such neighbors.
func neighborAverage(img *image.RGBA, x, y int) (r, g, b int) {
	bounds := img.Bounds()
	var sr, sg, sb, n int
	for _, q := range [4]image.Point{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
		if !q.In(bounds) {
			continue
		}
		c := img.RGBAAt(q.X, q.Y)
		sr += squeeze(c.R)
		sg += squeeze(c.G)
		sb += squeeze(c.B)
		n++
	}
	return sr / n, sg / n, sb / n
}

// writePixelByte hides one byte at (x, y) by offsetting the pixel's R, G
// and B channels from the neighbor average: bits 6-7 go to R, bits 3-5 to
// G, bits 0-2 to B. Each offset is centered (-2, -4, -4) so the
// perturbation stays small and roughly symmetric. Alpha is left as is.
func writePixelByte(img *image.RGBA, x, y int, v byte) {
	ar, ag, ab := neighborAverage(img, x, y)
	img.SetRGBA(x, y, color.RGBA{
		R: uint8(ar + int(v>>6&0x03) - perturbSize/4),
		G: uint8(ag + int(v>>3&0x07) - perturbSize/2),
		B: uint8(ab + int(v&0x07) - perturbSize/2),
		A: img.RGBAAt(x, y).A,
	})
}

// readPixelByte recovers the byte hidden at (x, y). It is only correct
// while the pixel's 4-neighbors are bit-identical to what writePixelByte
// saw; any lossy re-encode of the carrier breaks this silently.
func readPixelByte(img *image.RGBA, x, y int) byte {
	ar, ag, ab := neighborAverage(img, x, y)
	c := img.RGBAAt(x, y)
	rOff := int(c.R) - ar + perturbSize/4
	gOff := int(c.G) - ag + perturbSize/2
	bOff := int(c.B) - ab + perturbSize/2
	return byte(rOff<<6 | gOff<<3 | bOff)
}
