// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// tatctl drives JD79668-based e-paper panels such as the Inky wHAT
// Red/Yellow, and pre-processes images for them.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"

	"github.com/tatted-hw/tatted/internal/config"
	"github.com/tatted-hw/tatted/jd79668"
	"github.com/tatted-hw/tatted/palette"
	"github.com/tatted-hw/tatted/termview"
)

const version = "0.3.0"

func usage() {
	fmt.Fprintf(os.Stderr, `tatctl drives JD79668 e-paper panels (Inky wHAT Red/Yellow).

Usage:
  tatctl [flags] <command> [command flags]

Commands:
  detect        list usable peripherals and read the display EEPROM
  clear         set every pixel to white
  render-color  render a single palette color
  render-image  quantize an image and render it
  image         pre-process an image offline and save the result
  testcard      generate a panel-sized test card image

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	cfgPath := flag.String("config", "", "path to a tatctl.yaml configuration file")
	showVersion := flag.Bool("version", false, "print the version and exit")
	flag.Usage = usage
	flag.Parse()

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if *showVersion {
		fmt.Println("tatctl " + version)
		return
	}
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *cfgPath).Msg("failed to load configuration")
		}
		cfg = c
	}

	// The driver defers cancellation to the next safe transaction boundary,
	// so an interrupt never truncates a command mid-flight.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	cmd, args := flag.Arg(0), flag.Args()[1:]
	switch cmd {
	case "detect":
		err = cmdDetect(args)
	case "clear":
		err = cmdClear(ctx, cfg, args)
	case "render-color":
		err = cmdRenderColor(ctx, cfg, args)
	case "render-image":
		err = cmdRenderImage(ctx, cfg, args)
	case "image":
		err = cmdImage(cfg, args)
	case "testcard":
		err = cmdTestcard(cfg, args)
	default:
		fmt.Fprintf(os.Stderr, "tatctl: unknown command %q\n\n", cmd)
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Str("command", cmd).Msg("command failed")
	}
}

// openDisplay claims the configured peripherals and returns a driver handle.
func openDisplay(cfg *config.Config) (*jd79668.Dev, func(), error) {
	if _, err := host.Init(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize host: %w", err)
	}

	port, err := spireg.Open(cfg.SPI.Port)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to claim SPI port %q: %w", cfg.SPI.Port, err)
	}

	var pinErr error
	pin := func(name string) gpio.PinIO {
		p := gpioreg.ByName(name)
		if p == nil && pinErr == nil {
			pinErr = fmt.Errorf("GPIO line %q is unavailable", name)
		}
		return p
	}
	dc := pin(cfg.GPIO.DC)
	cs := pin(cfg.GPIO.CS)
	rst := pin(cfg.GPIO.Reset)
	busy := pin(cfg.GPIO.Busy)
	if pinErr != nil {
		_ = port.Close()
		return nil, nil, pinErr
	}

	pal, err := palette.Named(cfg.Display.Palette)
	if err != nil {
		_ = port.Close()
		return nil, nil, err
	}

	logger := log.Logger
	dev, err := jd79668.New(port, dc, cs, rst, busy, &jd79668.Opts{
		Width:   cfg.Display.Width,
		Height:  cfg.Display.Height,
		Palette: pal,
		Logger:  &logger,
	})
	if err != nil {
		_ = port.Close()
		return nil, nil, err
	}
	return dev, func() { _ = port.Close() }, nil
}

func cmdDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := host.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize host: %w", err)
	}
	log.Debug().Int("drivers", len(state.Loaded)).Msg("host initialized")

	tw := tabwriter.NewWriter(os.Stdout, 2, 0, 2, ' ', 0)
	for _, ref := range spireg.All() {
		fmt.Fprintf(tw, "spi\t%s\t%s\n", ref.Name, strings.Join(ref.Aliases, " "))
	}
	for _, ref := range i2creg.All() {
		fmt.Fprintf(tw, "i2c\t%s\t%s\n", ref.Name, strings.Join(ref.Aliases, " "))
	}
	fmt.Fprintf(tw, "gpio\t%d lines\t\n", len(gpioreg.All()))
	if err := tw.Flush(); err != nil {
		return err
	}

	bus, err := i2creg.Open("")
	if err != nil {
		log.Warn().Err(err).Msg("no I2C bus available, skipping EEPROM probe")
		return nil
	}
	defer bus.Close()

	opts, err := jd79668.DetectOpts(bus)
	if err != nil {
		log.Warn().Err(err).Msg("no supported display EEPROM found")
		return nil
	}
	fmt.Printf("display: %s, %dx%d, pcb v%.1f\n",
		jd79668.VariantName(opts.DisplayVariant), opts.Width, opts.Height, float64(opts.PCBVariant)/10)
	return nil
}

func cmdClear(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	dev, done, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	defer done()

	if err := dev.Reset(ctx); err != nil {
		return err
	}
	return dev.Clear(ctx)
}

func cmdRenderColor(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("render-color", flag.ExitOnError)
	name := fs.String("color", "red", "palette color to render")
	if err := fs.Parse(args); err != nil {
		return err
	}

	dev, done, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	defer done()

	pal, err := palette.Named(cfg.Display.Palette)
	if err != nil {
		return err
	}
	idx, ok := pal.IndexOf(*name)
	if !ok {
		return fmt.Errorf("palette %q has no color %q", pal.Name(), *name)
	}

	if err := dev.Reset(ctx); err != nil {
		return err
	}
	return dev.RenderColor(ctx, idx)
}

func cmdRenderImage(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("render-image", flag.ExitOnError)
	path := fs.String("image", "", "filepath to the image to render")
	dither := fs.Bool("dither", false, "enable Floyd-Steinberg dithering")
	palName := fs.String("palette", cfg.Display.Palette, "palette to quantize against")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("render-image requires -image")
	}

	img, err := decodeImage(*path)
	if err != nil {
		return err
	}

	c := *cfg
	c.Display.Palette = *palName
	dev, done, err := openDisplay(&c)
	if err != nil {
		return err
	}
	defer done()

	if err := dev.Reset(ctx); err != nil {
		return err
	}
	return dev.RenderImage(ctx, img, *dither)
}

func cmdImage(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	path := fs.String("image", "", "the image to pre-process for rendering")
	out := fs.String("out", "./output.png", "out path for the pre-processed image")
	palName := fs.String("palette", cfg.Display.Palette, "palette to quantize against")
	dither := fs.Bool("dither", false, "enable Floyd-Steinberg dithering")
	preview := fs.Bool("preview", false, "preview the result in the terminal")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("image requires -image")
	}

	pal, err := palette.Named(*palName)
	if err != nil {
		return err
	}
	img, err := decodeImage(*path)
	if err != nil {
		return err
	}
	if b := img.Bounds(); b.Dx() != cfg.Display.Width || b.Dy() != cfg.Display.Height {
		return fmt.Errorf("input image is an unsupported resolution, expected %dx%d found %dx%d",
			cfg.Display.Width, cfg.Display.Height, b.Dx(), b.Dy())
	}

	var frame *palette.Frame
	if *dither {
		frame = palette.Dither(img, pal)
	} else {
		frame = palette.Quantize(img, pal)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, frame); err != nil {
		return err
	}
	log.Info().Str("path", *out).Str("palette", pal.Name()).Bool("dither", *dither).Msg("wrote pre-processed image")

	if *preview {
		return termview.New(&termview.Opts{}).Draw(frame)
	}
	return nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return img, nil
}
