package main

import "image"

// headerCorners lists the four pixels of an anchor's header block in byte
// order: byte 0 (least significant) at (x-1,y-1), byte 1 at (x-1,y+1),
// byte 2 at (x+1,y-1), byte 3 at (x+1,y+1). The mapping is arbitrary but
// binding; it is part of the on-image format. The corners are pairwise
// non-adjacent, so writing one never moves another's baseline.
func headerCorners(anchor image.Point) [4]image.Point {
	return [4]image.Point{
		{anchor.X - 1, anchor.Y - 1},
		{anchor.X - 1, anchor.Y + 1},
		{anchor.X + 1, anchor.Y - 1},
		{anchor.X + 1, anchor.Y + 1},
	}
}

// writeInt32Block hides a 32-bit value in the four corner pixels around
// anchor, one byte per corner.
func writeInt32Block(img *image.RGBA, v int32, anchor image.Point) {
	u := uint32(v)
	for i, p := range headerCorners(anchor) {
		writePixelByte(img, p.X, p.Y, byte(u>>(8*i)))
	}
}

// readInt32Block recovers the value hidden by writeInt32Block.
func readInt32Block(img *image.RGBA, anchor image.Point) int32 {
	var u uint32
	for i, p := range headerCorners(anchor) {
		u |= uint32(readPixelByte(img, p.X, p.Y)) << (8 * i)
	}
	return int32(u)
}
