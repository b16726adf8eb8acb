// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package jd79668

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrNotInitialized is returned by rendering operations before a successful
// Reset, and after a fault until Reset is called again.
var ErrNotInitialized = errors.New("jd79668: display is not initialized, call Reset")

// BusyTimeoutError is returned when the busy line does not signal readiness
// within the configured bound. The driver enters the Faulted state.
type BusyTimeoutError struct {
	Timeout time.Duration
}

func (e *BusyTimeoutError) Error() string {
	return fmt.Sprintf("jd79668: waiting on the busy pin timed out after %dms", e.Timeout.Milliseconds())
}

// DimensionMismatchError is returned when an input image does not match the
// panel resolution. The driver never resizes; no bus traffic is issued.
type DimensionMismatchError struct {
	Expected image.Point
	Found    image.Point
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("jd79668: input image is an unsupported resolution, expected %dx%d found %dx%d",
		e.Expected.X, e.Expected.Y, e.Found.X, e.Found.Y)
}

// PalettizationError is returned when a frame holds an index outside the
// range the controller can encode.
type PalettizationError struct {
	Index uint8
	Max   uint8
}

func (e *PalettizationError) Error() string {
	return fmt.Sprintf("jd79668: frame is palettized incorrectly, pixel value %d must be in [0, %d]", e.Index, e.Max)
}

// BufferLengthError is returned when a frame buffer does not hold exactly
// one index per panel pixel.
type BufferLengthError struct {
	Expected int
	Found    int
}

func (e *BufferLengthError) Error() string {
	return fmt.Sprintf("jd79668: frame buffer is the wrong length, expected %d and found %d", e.Expected, e.Found)
}
