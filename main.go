package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 4 {
		fmt.Fprint(os.Stderr, "Hide:   naps <carrier-image> <payload-file|-> [output-image]\nReveal: naps <stego-image>\nThe output extension picks the lossless container: .png (default), .qoi, .bmp\n")
		os.Exit(1)
	}

	inputPath := os.Args[1]

	// A single argument means reveal: the payload goes to stdout.
	if len(os.Args) == 2 {
		if err := reveal(inputPath, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "reveal error:", err)
			os.Exit(1)
		}
		return
	}

	payloadPath := os.Args[2]
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	outPath := base + "-naps.png"
	if len(os.Args) == 4 {
		outPath = os.Args[3]
	}

	if err := hide(inputPath, payloadPath, outPath); err != nil {
		fmt.Fprintln(os.Stderr, "hide error:", err)
		os.Exit(1)
	}
}

func hide(carrierPath, payloadPath, outPath string) error {
	img, err := LoadCarrier(carrierPath)
	if err != nil {
		return err
	}

	var payload []byte
	if payloadPath == "-" {
		payload, err = io.ReadAll(os.Stdin)
	} else {
		payload, err = os.ReadFile(payloadPath)
	}
	if err != nil {
		return err
	}

	if err := Embed(img, payload); err != nil {
		return err
	}

	if err := SaveImage(outPath, img); err != nil {
		return err
	}

	fmt.Printf("Hid %d of %d possible bytes in %s → %s\n", len(payload), capacityOf(img.Bounds()), carrierPath, outPath)
	return nil
}

func reveal(stegoPath string, w io.Writer) error {
	img, err := LoadCarrier(stegoPath)
	if err != nil {
		return err
	}

	payload, err := Extract(img)
	if err != nil {
		return err
	}

	_, err = w.Write(payload)
	return err
}
