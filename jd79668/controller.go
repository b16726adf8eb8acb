// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jd79668

import "time"

// Commands, section 6 of the JD79668 user manual. This is the subset needed
// to operate the panel.
const (
	panelSetting          byte = 0x00
	powerSetting          byte = 0x01
	powerOff              byte = 0x02
	powerOn               byte = 0x04
	boosterSoftStart      byte = 0x06
	deepSleep             byte = 0x07
	dataStartTransmission byte = 0x10
	dataStopTransmission  byte = 0x11
	displayRefresh        byte = 0x12
	autoSequence          byte = 0x17
	vcomDataInterval      byte = 0x50
	resolutionSetting     byte = 0x61
)

const (
	// resetHold is the minimum width of each phase of the reset pulse.
	resetHold = 100 * time.Millisecond

	// resetBusyTimeout bounds the busy wait right after a reset pulse.
	resetBusyTimeout = 1 * time.Second

	// busyPollInterval is the sampling period of the busy line.
	busyPollInterval = 10 * time.Millisecond
)

type controller interface {
	sendCommand(byte)
	sendData([]byte)
	waitUntilIdle(time.Duration)
}

// initDisplay programs the panel configuration after a reset pulse. The
// sequence matches the vendor reference code; registers 0x4D and 0xAE..0xE9
// are not documented in the user manual.
func initDisplay(ctrl controller, opts *Opts) {
	ctrl.sendCommand(0x4D)
	ctrl.sendData([]byte{0x78})

	ctrl.sendCommand(panelSetting)
	ctrl.sendData([]byte{0x0F, 0x29})

	ctrl.sendCommand(boosterSoftStart)
	ctrl.sendData([]byte{0x0D, 0x12, 0x24, 0x25, 0x12, 0x29, 0x10})

	ctrl.sendCommand(0x30)
	ctrl.sendData([]byte{0x08})

	ctrl.sendCommand(vcomDataInterval)
	ctrl.sendData([]byte{0x37})

	// Horizontal then vertical resolution, high byte first.
	ctrl.sendCommand(resolutionSetting)
	ctrl.sendData([]byte{
		byte(opts.Width >> 8), byte(opts.Width),
		byte(opts.Height >> 8), byte(opts.Height),
	})

	ctrl.sendCommand(0xAE)
	ctrl.sendData([]byte{0xCF})

	ctrl.sendCommand(0xB0)
	ctrl.sendData([]byte{0x13})

	ctrl.sendCommand(0xBD)
	ctrl.sendData([]byte{0x07})

	ctrl.sendCommand(0xBE)
	ctrl.sendData([]byte{0xFE})

	ctrl.sendCommand(0xE9)
	ctrl.sendData([]byte{0x01})
}

// transmitFrame writes a packed framebuffer into the controller RAM.
func transmitFrame(ctrl controller, packed []byte) {
	ctrl.sendCommand(dataStartTransmission)
	ctrl.sendData(packed)
}

// refreshDisplay powers the panel, refreshes it from RAM and puts it back
// into deep sleep. Each step is bounded by timeout; the refresh itself can
// take several seconds.
func refreshDisplay(ctrl controller, timeout time.Duration) {
	ctrl.sendCommand(powerOn)
	ctrl.waitUntilIdle(timeout)

	ctrl.sendCommand(displayRefresh)
	ctrl.sendData([]byte{0x00})
	ctrl.waitUntilIdle(timeout)

	ctrl.sendCommand(powerOff)
	ctrl.sendData([]byte{0x00})
	ctrl.waitUntilIdle(timeout)

	ctrl.sendCommand(deepSleep)
	ctrl.sendData([]byte{0xA5})
	ctrl.waitUntilIdle(timeout)
}
