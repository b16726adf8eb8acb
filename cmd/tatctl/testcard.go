// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"flag"
	"fmt"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/rs/zerolog/log"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tatted-hw/tatted/internal/config"
	"github.com/tatted-hw/tatted/palette"
)

// cmdTestcard draws a panel-sized card exercising every palette color, a
// gray ramp to judge dithering, and a caption.
func cmdTestcard(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("testcard", flag.ExitOnError)
	out := fs.String("out", "./testcard.png", "out path for the test card image")
	palName := fs.String("palette", cfg.Display.Palette, "palette to draw the color bars from")
	if err := fs.Parse(args); err != nil {
		return err
	}

	pal, err := palette.Named(*palName)
	if err != nil {
		return err
	}

	w, h := cfg.Display.Width, cfg.Display.Height
	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Color bars over the top half, one per palette entry.
	barW := float64(w) / float64(pal.Len())
	barH := float64(h) / 2
	for i := 0; i < pal.Len(); i++ {
		c := pal.Entry(i)
		dc.SetRGBA255(int(c.NRGBA.R), int(c.NRGBA.G), int(c.NRGBA.B), 255)
		dc.DrawRectangle(float64(i)*barW, 0, barW, barH)
		dc.Fill()
	}

	// Gray ramp across the third quarter. Out of gamut on purpose, so the
	// dithered and non-dithered pipelines produce visibly different output.
	rampY := barH
	rampH := float64(h) / 4
	for x := 0; x < w; x++ {
		v := float64(x) / float64(w-1)
		dc.SetRGB(v, v, v)
		dc.DrawRectangle(float64(x), rampY, 1, rampH)
		dc.Fill()
	}

	// Alternating circles along the bottom quarter.
	r := float64(h) / 10
	for i, x := 0, r; x < float64(w); i, x = i+1, x+r*2.5 {
		c := pal.Entry(i % pal.Len())
		dc.SetRGBA255(int(c.NRGBA.R), int(c.NRGBA.G), int(c.NRGBA.B), 255)
		dc.DrawCircle(x, rampY+rampH+float64(h)/8, r)
		dc.Fill()
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return err
	}
	dc.SetFontFace(truetype.NewFace(font, &truetype.Options{Size: 18}))
	dc.SetRGB(0, 0, 0)
	dc.DrawString(fmt.Sprintf("tatctl %s %dx%d %s", version, w, h, pal.Name()), 8, float64(h)-10)

	if err := dc.SavePNG(*out); err != nil {
		return err
	}
	log.Info().Str("path", *out).Str("palette", pal.Name()).Msg("wrote test card")
	return nil
}
