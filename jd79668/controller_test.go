// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jd79668

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type record struct {
	cmd  byte
	data []byte
	wait time.Duration
}

type fakeController []record

func (r *fakeController) sendCommand(cmd byte) {
	*r = append(*r, record{cmd: cmd})
}

func (r *fakeController) sendData(data []byte) {
	cur := &(*r)[len(*r)-1]
	cur.data = append(cur.data, data...)
}

func (r *fakeController) waitUntilIdle(timeout time.Duration) {
	*r = append(*r, record{wait: timeout})
}

func TestInitDisplay(t *testing.T) {
	for _, tc := range []struct {
		name string
		opts Opts
		want []record
	}{
		{
			name: "inky wHAT red/yellow",
			opts: InkyWHATRY,
			want: []record{
				{cmd: 0x4D, data: []byte{0x78}},
				{cmd: panelSetting, data: []byte{0x0F, 0x29}},
				{cmd: boosterSoftStart, data: []byte{0x0D, 0x12, 0x24, 0x25, 0x12, 0x29, 0x10}},
				{cmd: 0x30, data: []byte{0x08}},
				{cmd: vcomDataInterval, data: []byte{0x37}},
				{cmd: resolutionSetting, data: []byte{0x01, 0x90, 0x01, 0x2C}},
				{cmd: 0xAE, data: []byte{0xCF}},
				{cmd: 0xB0, data: []byte{0x13}},
				{cmd: 0xBD, data: []byte{0x07}},
				{cmd: 0xBE, data: []byte{0xFE}},
				{cmd: 0xE9, data: []byte{0x01}},
			},
		},
		{
			name: "custom resolution",
			opts: Opts{Width: 640, Height: 400},
			want: []record{
				{cmd: 0x4D, data: []byte{0x78}},
				{cmd: panelSetting, data: []byte{0x0F, 0x29}},
				{cmd: boosterSoftStart, data: []byte{0x0D, 0x12, 0x24, 0x25, 0x12, 0x29, 0x10}},
				{cmd: 0x30, data: []byte{0x08}},
				{cmd: vcomDataInterval, data: []byte{0x37}},
				{cmd: resolutionSetting, data: []byte{0x02, 0x80, 0x01, 0x90}},
				{cmd: 0xAE, data: []byte{0xCF}},
				{cmd: 0xB0, data: []byte{0x13}},
				{cmd: 0xBD, data: []byte{0x07}},
				{cmd: 0xBE, data: []byte{0xFE}},
				{cmd: 0xE9, data: []byte{0x01}},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got fakeController

			initDisplay(&got, &tc.opts)

			if diff := cmp.Diff([]record(got), tc.want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
				t.Errorf("initDisplay() difference (-got +want):\n%s", diff)
			}
		})
	}
}

func TestTransmitFrame(t *testing.T) {
	var got fakeController

	transmitFrame(&got, []byte{0x55, 0xAA, 0xFF})

	want := []record{
		{cmd: dataStartTransmission, data: []byte{0x55, 0xAA, 0xFF}},
	}
	if diff := cmp.Diff([]record(got), want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("transmitFrame() difference (-got +want):\n%s", diff)
	}
}

func TestRefreshDisplay(t *testing.T) {
	var got fakeController

	refreshDisplay(&got, 40*time.Second)

	want := []record{
		{cmd: powerOn},
		{wait: 40 * time.Second},
		{cmd: displayRefresh, data: []byte{0x00}},
		{wait: 40 * time.Second},
		{cmd: powerOff, data: []byte{0x00}},
		{wait: 40 * time.Second},
		{cmd: deepSleep, data: []byte{0xA5}},
		{wait: 40 * time.Second},
	}
	if diff := cmp.Diff([]record(got), want, cmpopts.EquateEmpty(), cmp.AllowUnexported(record{})); diff != "" {
		t.Errorf("refreshDisplay() difference (-got +want):\n%s", diff)
	}
}
