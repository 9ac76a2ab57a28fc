// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).WithIndex("rtree")

	l.LogSplit(1, 2, 3)
	l.LogGrow(0, 1)
	l.LogCondense(1, 2)
	l.LogOverflow("insert", 2)
	l.LogSubdivide(3, 1, 15)

	out := buf.String()
	assert.Contains(t, out, `msg="node split" index=rtree level=1 left=2 right=3`)
	assert.Contains(t, out, `msg="tree height changed" index=rtree from=0 to=1`)
	assert.Contains(t, out, `msg="tree condensed" index=rtree eliminated=1 orphans=2`)
	assert.Contains(t, out, `level=WARN msg="allocator exhausted" index=rtree op=insert needed=2`)
	assert.Contains(t, out, `msg="node subdivided" index=rtree depth=3 stayed=1 moved=15`)
}

func TestNoopLogger(t *testing.T) {
	l := NoopLogger()

	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
	assert.NotPanics(t, func() { l.LogOverflow("insert", 1) })
}
