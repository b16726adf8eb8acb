// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package config loads the tatctl configuration file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SPI selects the bus carrying command and frame data.
type SPI struct {
	Port string `yaml:"port"` // e.g. SPI0.0
}

// GPIO names the control lines, resolvable by gpioreg.
type GPIO struct {
	DC    string `yaml:"dc"`
	CS    string `yaml:"cs"`
	Reset string `yaml:"reset"`
	Busy  string `yaml:"busy"`
}

// Display describes the attached panel.
type Display struct {
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	Palette string `yaml:"palette"`
}

type Config struct {
	SPI     SPI     `yaml:"spi"`
	GPIO    GPIO    `yaml:"gpio"`
	Display Display `yaml:"display"`
}

// Default returns the configuration for an Inky wHAT on a Raspberry Pi.
// Pinout: https://pinout.xyz/pinout/inky_what
func Default() *Config {
	return &Config{
		SPI: SPI{Port: "SPI0.0"},
		GPIO: GPIO{
			DC:    "22",
			CS:    "8",
			Reset: "27",
			Busy:  "17",
		},
		Display: Display{
			Width:   400,
			Height:  300,
			Palette: "inky4",
		},
	}
}

func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, err
	}
	return c, nil
}

func Save(path string, c *Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
