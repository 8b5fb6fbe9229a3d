package main

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif"
	_ "image/jpeg"

	"github.com/xfmoulet/qoi"
	"golang.org/x/image/bmp"
)

// randomSeed draws a fresh 32-bit seed from the OS entropy pool. The seed
// is not secret (it is stored in the image itself); it only has to differ
// between runs.
func randomSeed() (int32, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("seed: %w", err)
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// ImageToRGBA copies any image.Image into an *image.RGBA with bounds starting at (0,0).
func ImageToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// LoadCarrier reads an image file and decodes it into an RGBA grid.
// PNG, QOI, BMP, JPEG and GIF all work as embed input, since the pixels
// are re-saved losslessly afterwards. As extract input only the lossless
// formats make sense.
func LoadCarrier(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return ImageToRGBA(img), nil
}

// SaveImage writes img to path in a lossless format chosen by the file
// extension: .qoi, .bmp, or PNG for anything else. Lossless is the whole
// point; a lossy re-encode would destroy the embedded perturbations.
func SaveImage(path string, img *image.RGBA) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".qoi":
		err = qoi.Encode(f, img)
	case ".bmp":
		err = bmp.Encode(f, img)
	default:
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}
