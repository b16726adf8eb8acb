// Copyright 2026 The Tatted Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package termview

import (
	"bytes"
	"strings"
	"testing"

	"github.com/tatted-hw/tatted/palette"
)

func TestDraw(t *testing.T) {
	var buf bytes.Buffer
	v := New(&Opts{W: &buf})

	f := palette.NewUniform(palette.Inky4, 3, 2, 3)
	if err := v.Draw(f); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}

	out := buf.String()
	if got, want := strings.Count(out, "\n"), 2; got != want {
		t.Errorf("Draw() wrote %d lines, want %d", got, want)
	}
	if !strings.Contains(out, "\033[") {
		t.Error("Draw() wrote no ANSI escape sequences")
	}
	if !strings.HasSuffix(out, "\033[0m\n") {
		t.Error("Draw() does not reset terminal attributes at the last line")
	}
}

func TestNewDefaults(t *testing.T) {
	v := New(&Opts{W: &bytes.Buffer{}})
	if v.w == nil {
		t.Fatal("New() left the writer unset")
	}
}
