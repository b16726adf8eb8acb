// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package jd79668 controls e-paper panels driven by a FitiPower JD79668
// controller, such as the Pimoroni Inky wHAT Red/Yellow 400x300.
//
// The controller is commanded over SPI with a data/command select line, a
// hardware reset line and a busy line. The panel enters deep sleep after
// every refresh; the driver wakes it with a reset pulse before the next
// render.
//
// Product page:
//
// https://shop.pimoroni.com/products/inky-what
package jd79668
