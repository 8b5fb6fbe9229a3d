// NAPS (Neighbor-Average Perturbation Steganography) hides a byte payload
// inside an RGBA raster image. Each payload byte perturbs the R, G and B
// channels of one pseudo-randomly chosen pixel relative to the average of
// its 4-connected neighbors; the chosen pixels are pairwise non-adjacent,
// so no write disturbs the baseline another pixel is decoded against. Two
// fixed 4-pixel header blocks near the bottom corners carry the payload
// length and the selection seed, so extraction needs nothing beyond the
// image itself.
//
// This hides data, it does not protect it: there is no encryption, no
// authentication and no checksum. The output must be serialized through a
// lossless format (PNG, QOI, BMP); a lossy re-encode destroys the
// sub-pixel perturbations and extraction returns wrong bytes without
// noticing.

package main

import (
	"fmt"
	"image"
	"runtime"
	"sync"
)

// minCarrierDim is the smallest usable width/height: room for the two
// header anchors with their corner pixels plus a non-empty selection
// interior.
const minCarrierDim = 2*boundOffset + 3

// parallelThreshold is the payload size above which per-pixel work is
// striped across CPUs.
const parallelThreshold = 4096

// BoundsError reports a carrier too small to hold even the header blocks.
type BoundsError struct {
	Width  int
	Height int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("carrier %dx%d is smaller than the minimum %dx%d", e.Width, e.Height, minCarrierDim, minCarrierDim)
}

// lengthAnchor is the header block center holding the payload length.
func lengthAnchor(bounds image.Rectangle) image.Point {
	return image.Point{X: bounds.Min.X + 1, Y: bounds.Max.Y - 2}
}

// seedAnchor is the header block center holding the selection seed.
func seedAnchor(bounds image.Rectangle) image.Point {
	return image.Point{X: bounds.Max.X - 2, Y: bounds.Max.Y - 2}
}

// reservedCorners returns the eight header corner pixels. The selector
// treats them as already taken: a payload pixel on or next to a header
// corner would corrupt the header baselines.
func reservedCorners(bounds image.Rectangle) []image.Point {
	a := headerCorners(lengthAnchor(bounds))
	b := headerCorners(seedAnchor(bounds))
	return append(a[:], b[:]...)
}

func checkBounds(bounds image.Rectangle) error {
	if bounds.Dx() < minCarrierDim || bounds.Dy() < minCarrierDim {
		return &BoundsError{Width: bounds.Dx(), Height: bounds.Dy()}
	}
	return nil
}

// Embed hides payload in img under a fresh random seed. img is mutated in
// place; serialize it losslessly afterwards (see SaveImage).
func Embed(img *image.RGBA, payload []byte) error {
	seed, err := randomSeed()
	if err != nil {
		return fmt.Errorf("embed: %w", err)
	}
	return EmbedWithSeed(img, payload, seed)
}

// EmbedWithSeed hides payload in img using the given seed. The same
// image, payload and seed always produce the same output pixels. img is
// mutated in place. Coordinates are selected before anything is written,
// so a CapacityError leaves img untouched.
func EmbedWithSeed(img *image.RGBA, payload []byte, seed int32) error {
	bounds := img.Bounds()
	if err := checkBounds(bounds); err != nil {
		return err
	}

	coords, err := selectCoords(uint32(seed), bounds, len(payload), reservedCorners(bounds))
	if err != nil {
		return err
	}

	writeInt32Block(img, int32(len(payload)), lengthAnchor(bounds))
	writeInt32Block(img, seed, seedAnchor(bounds))

	eachCoord(len(coords), func(i int) {
		writePixelByte(img, coords[i].X, coords[i].Y, payload[i])
	})
	return nil
}

// Extract recovers the payload hidden by Embed. The image must be
// bit-identical to the one Embed produced; there is no checksum, so a
// recompressed or edited carrier yields wrong bytes with no error.
func Extract(img *image.RGBA) ([]byte, error) {
	bounds := img.Bounds()
	if err := checkBounds(bounds); err != nil {
		return nil, err
	}

	seed := readInt32Block(img, seedAnchor(bounds))
	length := readInt32Block(img, lengthAnchor(bounds))
	if length < 0 || int(length) > capacityOf(bounds) {
		return nil, fmt.Errorf("extract: implausible payload length %d, carrier holds no message or was altered", length)
	}

	coords, err := selectCoords(uint32(seed), bounds, int(length), reservedCorners(bounds))
	if err != nil {
		return nil, err
	}

	payload := make([]byte, length)
	eachCoord(len(coords), func(i int) {
		payload[i] = readPixelByte(img, coords[i].X, coords[i].Y)
	})
	return payload, nil
}

// eachCoord runs fn for every index in [0, n), striping across CPUs for
// large payloads. Safe without locks: selected pixels are pairwise
// non-adjacent, so no call writes a pixel another call reads.
func eachCoord(n int, fn func(i int)) {
	if n < parallelThreshold {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	workers := min(runtime.NumCPU(), n)
	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(start, end)
	}
	wg.Wait()
}
