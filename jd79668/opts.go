// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jd79668

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"periph.io/x/conn/v3/i2c"

	"github.com/tatted-hw/tatted/palette"
)

var displayVariantMap = [...]string{
	"",
	"Red pHAT (High-Temp)",
	"Yellow wHAT",
	"Black wHAT",
	"Black pHAT",
	"Yellow pHAT",
	"Red wHAT",
	"Red wHAT (High-Temp)",
	"Red wHAT",
	"",
	"Black pHAT (SSD1608)",
	"Red pHAT (SSD1608)",
	"Yellow pHAT (SSD1608)",
	"",
	"7-Colour (UC8159) 600x448",
	"7-Colour 640x400 (UC8159)",
	"7-Colour 640x400 (UC8159)",
	"Black wHAT (SSD1683)",
	"Red wHAT (SSD1683)",
	"Yellow wHAT (SSD1683)",
	"7-Colour 800x480 (AC073TC1A)",
	"Spectra 6 13.3 1600x1200 (EL133UF1)",
	"Spectra 6 7.3 800x480 (E673)",
	"Red/Yellow pHAT (JD79661)",
	"Red/Yellow wHAT (JD79668)",
}

// VariantName returns the marketing name for an EEPROM display variant code.
func VariantName(variant uint) string {
	if variant < uint(len(displayVariantMap)) && displayVariantMap[variant] != "" {
		return displayVariantMap[variant]
	}
	return "Unknown"
}

// Opts holds the panel configuration.
type Opts struct {
	// Panel resolution in pixels.
	Width  int
	Height int

	// Palette the panel can render. Defaults to palette.Inky4.
	Palette *palette.Palette

	// RefreshTimeout bounds every busy wait during a refresh. It must cover
	// the worst-case panel refresh latency. Defaults to 40 seconds.
	RefreshTimeout time.Duration

	// Board information from the EEPROM, if detected.
	PCBVariant     uint
	DisplayVariant uint

	// Logger receives driver debug traces. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// InkyWHATRY is the configuration of the Inky wHAT Red/Yellow panel.
var InkyWHATRY = Opts{
	Width:   400,
	Height:  300,
	Palette: palette.Inky4,
}

// DetectOpts reads the panel configuration from the Inky EEPROM.
func DetectOpts(bus i2c.Bus) (*Opts, error) {
	data, err := readEep(bus)
	if err != nil {
		return nil, fmt.Errorf("jd79668: failed to detect board: %w", err)
	}

	opts := &Opts{
		Width:      int(binary.LittleEndian.Uint16(data[0:])),
		Height:     int(binary.LittleEndian.Uint16(data[2:])),
		Palette:    palette.Inky4,
		PCBVariant: uint(data[5]),
	}

	switch data[6] {
	case 23, 24: // JD79661 pHAT, JD79668 wHAT
		opts.DisplayVariant = uint(data[6])
	default:
		return nil, fmt.Errorf("jd79668: display variant %d (%s) is not driven by a JD79668",
			data[6], VariantName(uint(data[6])))
	}

	return opts, nil
}

func readEep(bus i2c.Bus) ([]byte, error) {
	// The EEPROM speaks SMBus; select register 0 before reading.
	write := []byte{0x00, 0x00}
	data := make([]byte, 29)

	if err := bus.Tx(0x50, write, data); err != nil {
		return nil, err
	}
	return data, nil
}
