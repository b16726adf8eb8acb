// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package palette

import (
	"image"
	"image/color"
)

// Frame is a palette-indexed image: one palette index per pixel, row-major.
// It implements image.Image against its palette so it can be saved or
// previewed directly.
type Frame struct {
	// Pix holds one palette index per pixel in row-major order.
	Pix []uint8

	pal  *Palette
	rect image.Rectangle
}

// NewFrame returns an all-zero (first palette entry) frame of the given size.
func NewFrame(pal *Palette, w, h int) *Frame {
	return &Frame{
		Pix:  make([]uint8, w*h),
		pal:  pal,
		rect: image.Rect(0, 0, w, h),
	}
}

// NewUniform returns a frame of the given size with every pixel set to idx.
func NewUniform(pal *Palette, w, h int, idx uint8) *Frame {
	f := NewFrame(pal, w, h)
	for i := range f.Pix {
		f.Pix[i] = idx
	}
	return f
}

// Palette returns the palette the frame is indexed against.
func (f *Frame) Palette() *Palette {
	return f.pal
}

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle {
	return f.rect
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model {
	return f.pal.ColorModel()
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	return f.pal.Entry(int(f.IndexAt(x, y))).NRGBA
}

// IndexAt returns the palette index at (x, y).
func (f *Frame) IndexAt(x, y int) uint8 {
	return f.Pix[y*f.rect.Dx()+x]
}

// SetIndex sets the palette index at (x, y).
func (f *Frame) SetIndex(x, y int, idx uint8) {
	f.Pix[y*f.rect.Dx()+x] = idx
}
