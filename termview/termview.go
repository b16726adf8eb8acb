// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package termview renders images to a terminal (stdout) using ANSI color
// codes.
//
// Useful for previewing quantized frames without a panel attached: a refresh
// on real e-paper takes tens of seconds, the terminal takes none.
package termview

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for this view.
type Opts struct {
	// Palette used to map colors onto the terminal's 256 color cube.
	// Defaults to ansi256.Default.
	Palette *ansi256.Palette

	// W is the destination writer. Defaults to a colorable stdout.
	W io.Writer
}

// View writes images as rows of colored terminal cells.
type View struct {
	w       io.Writer
	palette ansi256.Palette

	buf bytes.Buffer
}

// New returns a View writing to the configured writer.
func New(opts *Opts) *View {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &View{w: w, palette: *p}
}

// Draw writes src to the terminal, one line per pixel row. Each pixel is two
// character cells wide to roughly compensate for the cell aspect ratio.
func (v *View) Draw(src image.Image) error {
	b := src.Bounds()

	v.buf.Reset()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			block := v.palette.Block(c)
			_, _ = io.WriteString(&v.buf, block)
			_, _ = io.WriteString(&v.buf, block)
		}
		_, _ = v.buf.WriteString("\033[0m\n")
	}
	_, err := v.buf.WriteTo(v.w)
	return err
}
