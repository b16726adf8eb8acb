// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package palette

import (
	"image"
)

// Quantize maps every pixel of src to the nearest palette entry and returns
// the resulting indexed frame. The output has the same dimensions as src;
// callers that render to hardware are responsible for checking those against
// the panel resolution first.
func Quantize(src image.Image, pal *Palette) *Frame {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	f := NewFrame(pal, w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r16, g16, b16, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
			f.Pix[y*w+x] = pal.index(int32(r16>>8), int32(g16>>8), int32(b16>>8))
		}
	}
	return f
}

// Dither quantizes src with Floyd-Steinberg error diffusion.
//
// Pixels are processed strictly left-to-right, top-to-bottom. For each pixel
// the accumulated error is added to the source color, the sum is clamped to
// [0, 255] per channel, and the clamped value is quantized with the same
// nearest-entry rule as Quantize. The residual (clamped value minus chosen
// palette color) is spread to the unprocessed neighbors with weights 7/16
// (right), 3/16 (below left), 5/16 (below) and 1/16 (below right).
// Contributions falling outside the image are dropped.
//
// Error terms are kept as integers; the weighted shares use Go integer
// division, which truncates toward zero for both signs.
func Dither(src image.Image, pal *Palette) *Frame {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	f := NewFrame(pal, w, h)

	// Accumulated error for the current and the next row, 3 channels per
	// pixel. The state is row-local and discarded once the pass is done.
	cur := make([]int32, 3*w)
	next := make([]int32, 3*w)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r16, g16, b16, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()

			ar := clamp8(int32(r16>>8) + cur[3*x])
			ag := clamp8(int32(g16>>8) + cur[3*x+1])
			ab := clamp8(int32(b16>>8) + cur[3*x+2])

			idx := pal.index(ar, ag, ab)
			f.Pix[y*w+x] = idx

			pc := pal.Entry(int(idx)).NRGBA
			er := ar - int32(pc.R)
			eg := ag - int32(pc.G)
			eb := ab - int32(pc.B)

			if x+1 < w {
				diffuse(cur, x+1, er, eg, eb, 7)
			}
			if x-1 >= 0 {
				diffuse(next, x-1, er, eg, eb, 3)
			}
			diffuse(next, x, er, eg, eb, 5)
			if x+1 < w {
				diffuse(next, x+1, er, eg, eb, 1)
			}
		}

		cur, next = next, cur
		for i := range next {
			next[i] = 0
		}
	}
	return f
}

func diffuse(row []int32, x int, er, eg, eb, weight int32) {
	row[3*x] += er * weight / 16
	row[3*x+1] += eg * weight / 16
	row[3*x+2] += eb * weight / 16
}

func clamp8(v int32) int32 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
