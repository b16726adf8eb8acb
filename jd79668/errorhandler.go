// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jd79668

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// errorHandler is a sticky-error wrapper around the bus and GPIO operations
// of a single driver operation. After the first failure every further call
// is a no-op, so command sequences can be written without per-step checks.
type errorHandler struct {
	d   *Dev
	ctx context.Context
	err error
}

func (eh *errorHandler) rstOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.rst.Out(l)
}

func (eh *errorHandler) dcOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.dc.Out(l)
}

func (eh *errorHandler) csOut(l gpio.Level) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.cs.Out(l)
}

func (eh *errorHandler) cTx(w []byte) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.c.Tx(w, nil)
}

func (eh *errorHandler) sleep(t time.Duration) {
	if eh.err != nil {
		return
	}
	eh.d.sleep(t)
}

// sendCommand begins a new command/data transaction. Cancellation is honored
// only here, before the opcode goes out: aborting a transaction part-way
// leaves the controller in an undefined state.
func (eh *errorHandler) sendCommand(cmd byte) {
	if eh.err != nil {
		return
	}
	if eh.ctx != nil {
		if err := eh.ctx.Err(); err != nil {
			eh.err = err
			return
		}
	}

	eh.dcOut(gpio.Low)
	eh.csOut(gpio.Low)
	eh.cTx([]byte{cmd})
	eh.csOut(gpio.High)
}

// sendData writes the parameters or payload of the current command, chunked
// to the maximum transfer size of the bus.
func (eh *errorHandler) sendData(data []byte) {
	if eh.err != nil {
		return
	}

	eh.dcOut(gpio.High)
	eh.csOut(gpio.Low)
	for len(data) > 0 && eh.err == nil {
		n := len(data)
		if n > eh.d.maxTxSize {
			n = eh.d.maxTxSize
		}
		eh.cTx(data[:n])
		data = data[n:]
	}
	eh.csOut(gpio.High)
	eh.dcOut(gpio.Low)
}

func (eh *errorHandler) waitUntilIdle(timeout time.Duration) {
	if eh.err != nil {
		return
	}
	eh.err = eh.d.waitUntilIdle(eh.ctx, timeout)
}

// resetPulse drives the hardware reset line through its assert/deassert
// sequence, holding each phase for the documented minimum width.
func (eh *errorHandler) resetPulse() {
	eh.rstOut(gpio.Low)
	eh.sleep(resetHold)
	eh.rstOut(gpio.High)
	eh.sleep(resetHold)
}
