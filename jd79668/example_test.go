// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jd79668_test

import (
	"context"
	"flag"
	"image"
	"log"
	"os"

	_ "image/png"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/tatted-hw/tatted/jd79668"
)

func Example() {
	path := flag.String("image", "", "Path to image file (400x300) to display")
	dither := flag.Bool("dither", false, "Enable Floyd-Steinberg dithering")
	flag.Parse()

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Fatal(err)
	}

	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	b, err := spireg.Open("SPI0.0")
	if err != nil {
		log.Fatal(err)
	}
	defer b.Close()

	dc := gpioreg.ByName("22")
	cs := gpioreg.ByName("8")
	reset := gpioreg.ByName("27")
	busy := gpioreg.ByName("17")

	dev, err := jd79668.New(b, dc, cs, reset, busy, &jd79668.InkyWHATRY)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if err := dev.Reset(ctx); err != nil {
		log.Fatal(err)
	}
	if err := dev.RenderImage(ctx, img, *dither); err != nil {
		log.Fatal(err)
	}
}

func ExampleDetectOpts() {
	if _, err := host.Init(); err != nil {
		log.Fatal(err)
	}

	eeprom, err := i2creg.Open("")
	if err != nil {
		log.Fatal(err)
	}
	defer eeprom.Close()

	opts, err := jd79668.DetectOpts(eeprom)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("detected %s (%dx%d)", jd79668.VariantName(opts.DisplayVariant), opts.Width, opts.Height)
}
