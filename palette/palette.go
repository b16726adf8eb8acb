// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package palette implements the image pre-processing pipeline for e-ink
// rendering: fixed hardware color palettes, nearest-color quantization and
// Floyd-Steinberg dithering.
//
// The pipeline is pure: it only transforms image data and has no hardware
// state, so it can be tested without a display attached.
package palette

import (
	"fmt"
	"image/color"
	"math"
)

// Color is a single palette entry. The position of an entry within its
// Palette is the index the display controller expects on the wire.
type Color struct {
	Name  string
	NRGBA color.NRGBA
}

// Palette is a named, ordered set of colors a display can physically render.
// Entry order is significant: nearest-color lookups resolve ties in favor of
// the first minimal-distance entry.
type Palette struct {
	name   string
	colors []Color
}

// NewPalette returns a palette with the given entries, in order.
func NewPalette(name string, colors ...Color) *Palette {
	return &Palette{name: name, colors: colors}
}

// Inky4 is the palette of the JD79668-driven Red/Yellow Inky panels.
var Inky4 = NewPalette("inky4",
	Color{"black", color.NRGBA{0, 0, 0, 255}},
	Color{"white", color.NRGBA{255, 255, 255, 255}},
	Color{"yellow", color.NRGBA{255, 255, 0, 255}},
	Color{"red", color.NRGBA{255, 0, 0, 255}},
)

// Mono is a black and white palette for monochrome panels.
var Mono = NewPalette("mono",
	Color{"black", color.NRGBA{0, 0, 0, 255}},
	Color{"white", color.NRGBA{255, 255, 255, 255}},
)

var registered = map[string]*Palette{
	Inky4.name: Inky4,
	Mono.name:  Mono,
}

// UnknownPaletteError is returned by Named for unregistered palette names.
type UnknownPaletteError struct {
	Name string
}

func (e *UnknownPaletteError) Error() string {
	return fmt.Sprintf("palette: unknown palette %q: expected one of %v", e.Name, Names())
}

// Named returns the registered palette with the given name.
func Named(name string) (*Palette, error) {
	p, ok := registered[name]
	if !ok {
		return nil, &UnknownPaletteError{Name: name}
	}
	return p, nil
}

// Names returns the names of all registered palettes.
func Names() []string {
	// Deterministic order for CLI help and error messages.
	return []string{Inky4.name, Mono.name}
}

// Name returns the palette name.
func (p *Palette) Name() string {
	return p.name
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Entry returns the i-th palette entry.
func (p *Palette) Entry(i int) Color {
	return p.colors[i]
}

// IndexOf returns the index of the entry with the given name.
func (p *Palette) IndexOf(name string) (uint8, bool) {
	for i, c := range p.colors {
		if c.Name == name {
			return uint8(i), true
		}
	}
	return 0, false
}

// Index returns the index of the palette entry nearest to c under squared
// Euclidean distance in RGB space. Ties resolve to the first entry in
// declaration order.
func (p *Palette) Index(c color.Color) uint8 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return p.index(int32(n.R), int32(n.G), int32(n.B))
}

func (p *Palette) index(r, g, b int32) uint8 {
	best := 0
	bestDist := int32(math.MaxInt32)
	for i, pc := range p.colors {
		dr := r - int32(pc.NRGBA.R)
		dg := g - int32(pc.NRGBA.G)
		db := b - int32(pc.NRGBA.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			bestDist = d
			best = i
		}
	}
	return uint8(best)
}

// ColorModel returns the palette as a standard library color model.
func (p *Palette) ColorModel() color.Palette {
	cp := make(color.Palette, len(p.colors))
	for i, c := range p.colors {
		cp[i] = c.NRGBA
	}
	return cp
}
