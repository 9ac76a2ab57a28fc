// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// hilbertInputs should be kept sorted in order of relative Hilbert
// number.
//
// ...	[B]                 ^                  [C]
// ...	                    |
// ...                      |
// ...                      |
// ... <--------------------+-------------------->
// ...                      | [D]
// ...                      |
// ...                      |                  [E]
// ... [A]                  v                  [F]
var hilbertInputs = []struct {
	name string
	b    Box[float64]
}{
	{"A", box2(-10, -10, -8, -8)},
	{"B", box2(-10, 8, -8, 10)},
	{"C", box2(8, 8, 10, 10)},
	{"D", box2(1, -2, 2, -1)},
	{"E", box2(8, -8, 10, -6)},
	{"F", box2(8, -10, 10, -8)},
}

func hilbertInputsBounds() Box[float64] {
	var bounds Box[float64]
	for i := range hilbertInputs {
		bounds.ExtendBox(hilbertInputs[i].b)
	}
	return bounds
}

func TestHilbertSort(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		var values []Box[float64]

		HilbertSort[float64, Box[float64]](values, BoxIndexable[float64]{}, box2(0, 0, 1, 1))

		assert.Empty(t, values)
	})

	t.Run("EmptyExtent", func(t *testing.T) {
		assert.PanicsWithValue(t, "spatial: empty extent", func() {
			HilbertSort[float64, Box[float64]](nil, BoxIndexable[float64]{}, Box[float64]{})
		})
	})

	t.Run("hilbertInputs", func(t *testing.T) {
		values := make([]uint32, len(hilbertInputs))
		idx := SliceIndexable[float64]{}
		for i := range hilbertInputs {
			values[i] = uint32(len(hilbertInputs) - 1 - i)
			idx.Boxes = append(idx.Boxes, hilbertInputs[i].b)
		}
		// values now reference the inputs in reverse Hilbert order.

		HilbertSort[float64, uint32](values, idx, hilbertInputsBounds())

		for i := range values {
			assert.Equal(t, hilbertInputs[i].b, idx.Boxes[values[i]], "position %d", i)
		}
	})
}

func TestHilbertFromBox(t *testing.T) {
	t.Run("ZeroWidth", func(t *testing.T) {
		actual := hilbertFromBox(box2(0, 0, 0, 0), 0, 0, 0, 10)

		assert.Equal(t, uint32(0), actual)
	})

	t.Run("ZeroHeight", func(t *testing.T) {
		actual := hilbertFromBox(box2(0, 0, 0, 0), 0, 0, 10, 0)

		assert.Equal(t, uint32(0), actual)
	})

	t.Run("OneDimension", func(t *testing.T) {
		actual := hilbertFromBox(Box[int]{Min: []int{10}, Max: []int{10}}, 0, 0, 10, 0)

		assert.Equal(t, hilbertFromXY(hilbertMax, 0), actual)
	})

	t.Run("hilbertInputs", func(t *testing.T) {
		bounds := hilbertInputsBounds()
		ex, ew := extentAxis(bounds, 0)
		ey, eh := extentAxis(bounds, 1)
		var prev uint32
		for j := range hilbertInputs {
			hj := hilbertFromBox(hilbertInputs[j].b, ex, ey, ew, eh)
			if j > 0 {
				assert.Greater(t, hj, prev, "hilbertFromBox(%s) must exceed its predecessor", hilbertInputs[j].name)
			}
			prev = hj
		}
	})
}

func TestHilbertFromXY(t *testing.T) {
	testCases := []struct {
		name     string
		x, y     uint32
		expected uint32
	}{
		{name: "Zero"},
		{name: "OneX", x: 1, y: 0, expected: 1},
		{name: "OneXY", x: 1, y: 1, expected: 2},
		{name: "OneY", x: 0, y: 1, expected: 3},
		{name: "MaxX", x: hilbertMax, y: 0, expected: 0xffffffff},
		{name: "MaxY", x: 0, y: hilbertMax, expected: 0x55555555},
		{name: "MaxXY", x: hilbertMax, y: hilbertMax, expected: 0xaaaaaaaa},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := hilbertFromXY(testCase.x, testCase.y)

			assert.Equal(t, testCase.expected, actual)
		})
	}
}
