// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jd79668

// The JD79668 framebuffer holds 2 bits per pixel, four pixels per byte with
// the leftmost pixel in the two most significant bits, rows packed
// back-to-back in scan order.
const (
	bitsPerPixel  = 2
	pixelsPerByte = 8 / bitsPerPixel
	maxIndex      = 1<<bitsPerPixel - 1
)

// packFrame packs row-major palette indices into the controller wire layout.
// pix must hold exactly one index per pixel and every index must fit in two
// bits.
func packFrame(pix []uint8, width, height int) ([]byte, error) {
	if len(pix) != width*height {
		return nil, &BufferLengthError{Expected: width * height, Found: len(pix)}
	}
	for _, p := range pix {
		if p > maxIndex {
			return nil, &PalettizationError{Index: p, Max: maxIndex}
		}
	}

	out := make([]byte, (len(pix)+pixelsPerByte-1)/pixelsPerByte)
	for i, p := range pix {
		shift := uint(6 - bitsPerPixel*(i%pixelsPerByte))
		out[i/pixelsPerByte] |= p << shift
	}
	return out, nil
}
