// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tatted is a container for JD79668 e-paper tooling.
//
// The driver lives in jd79668, the color pipeline in palette, and the
// tatctl command under cmd/tatctl ties them together.
package tatted
