// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jd79668

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/tatted-hw/tatted/palette"
)

// State describes where the driver is in its operation cycle.
type State uint8

const (
	// Uninitialized is the state before the first Reset.
	Uninitialized State = iota
	// Resetting means the hardware reset sequence is in progress.
	Resetting
	// Initialized means the panel answered after a reset and accepts frames.
	Initialized
	// Transmitting means configuration and frame data are going out.
	Transmitting
	// Refreshing means the panel is updating from its RAM.
	Refreshing
	// Ready means the panel shows the last transmitted frame.
	Ready
	// Faulted is entered on any bus error or busy timeout. The only way out
	// is an explicit Reset.
	Faulted
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Resetting:
		return "resetting"
	case Initialized:
		return "initialized"
	case Transmitting:
		return "transmitting"
	case Refreshing:
		return "refreshing"
	case Ready:
		return "ready"
	case Faulted:
		return "faulted"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Dev is an open handle to a JD79668 panel. It owns its SPI connection and
// GPIO lines exclusively; the controller is a single hardware state machine
// and must not see interleaved transactions from multiple callers.
type Dev struct {
	c         conn.Conn
	maxTxSize int

	dc   gpio.PinOut
	cs   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	opts   Opts
	bounds image.Rectangle
	state  State
	log    zerolog.Logger

	sleep func(time.Duration)
}

// New opens a handle to a JD79668 panel. The kernel chip select is left
// unused; the cs line is driven manually around every transaction.
func New(p spi.Port, dc, cs, rst gpio.PinOut, busy gpio.PinIn, opts *Opts) (*Dev, error) {
	c, err := p.Connect(1*physic.MegaHertz, spi.Mode0|spi.NoCS, 8)
	if err != nil {
		return nil, fmt.Errorf("jd79668: failed to connect over spi: %w", err)
	}

	maxTxSize := 0
	if limits, ok := c.(conn.Limits); ok {
		maxTxSize = limits.MaxTxSize()
	}
	if maxTxSize == 0 {
		maxTxSize = 4096 // Conservative default.
	}

	o := *opts
	if o.Palette == nil {
		o.Palette = palette.Inky4
	}
	if o.RefreshTimeout == 0 {
		o.RefreshTimeout = 40 * time.Second
	}

	d := &Dev{
		c:         c,
		maxTxSize: maxTxSize,
		dc:        dc,
		cs:        cs,
		rst:       rst,
		busy:      busy,
		opts:      o,
		bounds:    image.Rect(0, 0, o.Width, o.Height),
		state:     Uninitialized,
		log:       zerolog.Nop(),
		sleep:     time.Sleep,
	}
	if o.Logger != nil {
		d.log = *o.Logger
	}
	return d, nil
}

// State returns the current driver state.
func (d *Dev) State() State {
	return d.state
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.bounds
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return d.opts.Palette.ColorModel()
}

// String implements conn.Resource.
func (d *Dev) String() string {
	return fmt.Sprintf("jd79668.Dev{%s, %s, Width: %d, Height: %d}", d.c, d.dc, d.opts.Width, d.opts.Height)
}

// Reset drives the hardware reset line through its pulse sequence and waits
// for the panel to answer. It is the only recovery path out of Faulted.
func (d *Dev) Reset(ctx context.Context) error {
	d.log.Debug().Msg("performing a display hardware reset")

	d.state = Resetting
	eh := errorHandler{d: d, ctx: ctx}
	eh.resetPulse()
	eh.waitUntilIdle(resetBusyTimeout)
	if eh.err != nil {
		d.state = Faulted
		return eh.err
	}
	d.state = Initialized
	return nil
}

// Clear renders a solid white frame.
func (d *Dev) Clear(ctx context.Context) error {
	white, ok := d.opts.Palette.IndexOf("white")
	if !ok {
		return fmt.Errorf("jd79668: palette %q has no white entry", d.opts.Palette.Name())
	}
	return d.RenderColor(ctx, white)
}

// RenderColor renders a uniform frame filled with one palette index.
func (d *Dev) RenderColor(ctx context.Context, idx uint8) error {
	if int(idx) >= d.opts.Palette.Len() {
		return &PalettizationError{Index: idx, Max: uint8(d.opts.Palette.Len() - 1)}
	}
	d.log.Debug().Uint8("index", idx).Msg("rendering a solid color")

	f := palette.NewUniform(d.opts.Palette, d.opts.Width, d.opts.Height, idx)
	return d.render(ctx, f.Pix)
}

// RenderImage quantizes src against the panel palette, with Floyd-Steinberg
// dithering if dither is set, and renders it. src must match the panel
// resolution exactly; there is no resizing.
func (d *Dev) RenderImage(ctx context.Context, src image.Image, dither bool) error {
	if got := src.Bounds(); got.Dx() != d.opts.Width || got.Dy() != d.opts.Height {
		return &DimensionMismatchError{
			Expected: image.Pt(d.opts.Width, d.opts.Height),
			Found:    image.Pt(got.Dx(), got.Dy()),
		}
	}
	d.log.Debug().Bool("dither", dither).Msg("rendering an image")

	var f *palette.Frame
	if dither {
		f = palette.Dither(src, d.opts.Palette)
	} else {
		f = palette.Quantize(src, d.opts.Palette)
	}
	return d.render(ctx, f.Pix)
}

// render packs the frame and runs the transmit/refresh cycle. The packing
// happens before any bus traffic so a bad frame never reaches the panel.
func (d *Dev) render(ctx context.Context, pix []uint8) error {
	packed, err := packFrame(pix, d.opts.Width, d.opts.Height)
	if err != nil {
		return err
	}

	switch d.state {
	case Initialized:
	case Ready:
		// The panel deep sleeps after every refresh and only a reset pulse
		// wakes it again.
		if err := d.Reset(ctx); err != nil {
			return err
		}
	default:
		return ErrNotInitialized
	}

	eh := errorHandler{d: d, ctx: ctx}

	d.state = Transmitting
	initDisplay(&eh, &d.opts)
	transmitFrame(&eh, packed)

	if eh.err == nil {
		d.state = Refreshing
	}
	refreshDisplay(&eh, d.opts.RefreshTimeout)

	if eh.err != nil {
		d.state = Faulted
		return eh.err
	}
	d.state = Ready
	return nil
}

// waitUntilIdle polls the busy line until it signals readiness (high), the
// deadline passes, or ctx is canceled.
func (d *Dev) waitUntilIdle(ctx context.Context, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if d.busy.Read() == gpio.High {
			return nil
		}
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if !time.Now().Before(deadline) {
			return &BusyTimeoutError{Timeout: timeout}
		}
		d.sleep(busyPollInterval)
	}
}

// Draw implements display.Drawer. Partial updates are not supported and the
// source image must match the panel resolution. The image is dithered, which
// is what e-ink panels with a handful of colors want in practice.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if r != d.bounds {
		return fmt.Errorf("jd79668: partial updates are not supported")
	}
	if sp != (image.Point{}) {
		return fmt.Errorf("jd79668: non-zero source offsets are not supported")
	}

	ctx := context.Background()
	if d.state == Uninitialized {
		if err := d.Reset(ctx); err != nil {
			return err
		}
	}
	return d.RenderImage(ctx, src, true)
}

// Halt implements conn.Resource. It clears the panel to white.
func (d *Dev) Halt() error {
	return d.Clear(context.Background())
}

var _ display.Drawer = &Dev{}
var _ conn.Resource = &Dev{}
