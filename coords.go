package main

import (
	"fmt"
	"image"
)

// Selection parameters. boundOffset keeps candidates away from the image
// edges and the header anchors; densityFactor bounds how much of the
// interior may be used, since every accepted pixel also reserves its
// 4-neighborhood.
const (
	boundOffset   = 2
	densityFactor = 0.35
)

// CapacityError reports a payload that does not fit the carrier interior.
type CapacityError struct {
	Requested int
	Capacity  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("payload of %d bytes exceeds carrier capacity of %d bytes", e.Requested, e.Capacity)
}

// splitmix32 is the pinned pseudo-random generator shared by embed and
// extract. math/rand does not guarantee a stable stream across Go
// releases, and the coordinate sequence must be reproducible from the
// seed alone, so the generator is spelled out here: a 32-bit Weyl
// sequence (increment 0x9e3779b9) run through a murmur3-style finalizer.
type splitmix32 struct {
	state uint32
}

func (s *splitmix32) next() uint32 {
	s.state += 0x9e3779b9
	z := s.state
	z ^= z >> 16
	z *= 0x21f0aaad
	z ^= z >> 15
	z *= 0x735a2d97
	z ^= z >> 15
	return z
}

// intn returns a value in [0, n). The modulo bias does not matter here;
// the draw only has to be deterministic, not perfectly uniform.
func (s *splitmix32) intn(n int) int {
	return int(s.next() % uint32(n))
}

// capacityOf returns how many payload bytes a carrier of the given bounds
// can hold.
func capacityOf(bounds image.Rectangle) int {
	innerW := bounds.Dx() - 2*boundOffset
	innerH := bounds.Dy() - 2*boundOffset
	if innerW <= 0 || innerH <= 0 {
		return 0
	}
	return int(float64(innerW) * float64(innerH) * densityFactor)
}

// selectCoords derives count carrier coordinates from seed and bounds by
// rejection sampling: draw a candidate from the inset rectangle
// [boundOffset, w-boundOffset) x [boundOffset, h-boundOffset), accept it
// only if neither it nor any of its 4-connected neighbors was already
// accepted. The returned slice is in acceptance order, and that order is
// part of the on-image format: payload byte i lives at coordinate i.
//
// reserved coordinates (the header corner pixels) are treated as already
// accepted, so no payload pixel lands on a header corner or next to one.
func selectCoords(seed uint32, bounds image.Rectangle, count int, reserved []image.Point) ([]image.Point, error) {
	capacity := capacityOf(bounds)
	if count > capacity {
		return nil, &CapacityError{Requested: count, Capacity: capacity}
	}

	taken := make(map[image.Point]struct{}, count+len(reserved))
	for _, p := range reserved {
		taken[p] = struct{}{}
	}

	innerW := bounds.Dx() - 2*boundOffset
	innerH := bounds.Dy() - 2*boundOffset

	coords := make([]image.Point, 0, count)
	rng := splitmix32{state: seed}
	for len(coords) < count {
		p := image.Point{
			X: bounds.Min.X + boundOffset + rng.intn(innerW),
			Y: bounds.Min.Y + boundOffset + rng.intn(innerH),
		}
		if blocked(taken, p) {
			continue
		}
		taken[p] = struct{}{}
		coords = append(coords, p)
	}
	return coords, nil
}

// blocked reports whether p or any of its 4-connected neighbors is taken.
func blocked(taken map[image.Point]struct{}, p image.Point) bool {
	for _, q := range [5]image.Point{
		p,
		{p.X - 1, p.Y},
		{p.X + 1, p.Y},
		{p.X, p.Y - 1},
		{p.X, p.Y + 1},
	} {
		if _, ok := taken[q]; ok {
			return true
		}
	}
	return false
}
