// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	x, y int
}

func TestBoundsOf(t *testing.T) {
	t.Run("BoxIndexable", func(t *testing.T) {
		b := Box[int]{Min: []int{1, 2}, Max: []int{3, 4}}
		actual := BoundsOf[int, Box[int]](BoxIndexable[int]{}, b)

		assert.Equal(t, b, actual)
		actual.Min[0] = 100
		assert.Equal(t, 1, b.Min[0], "BoundsOf must copy the bounds")
	})

	t.Run("IndexableFunc", func(t *testing.T) {
		f := IndexableFunc[int, point](func(p point) Box[int] {
			return PointBox(p.x, p.y)
		})

		assert.Equal(t, PointBox(5, 6), BoundsOf[int, point](f, point{5, 6}))
	})

	t.Run("SliceIndexable", func(t *testing.T) {
		s := SliceIndexable[int]{Boxes: []Box[int]{
			PointBox(0, 0),
			{Min: []int{1, 1}, Max: []int{2, 2}},
		}}

		assert.Equal(t, s.Boxes[1], BoundsOf[int, uint32](s, 1))
	})
}

func TestDefaultEqual(t *testing.T) {
	t.Run("Box", func(t *testing.T) {
		eq := DefaultEqual[int, Box[int]]()
		require.NotNil(t, eq)

		b := Box[int]{Min: []int{1, 2}, Max: []int{3, 4}}
		assert.True(t, eq(b, b.Clone()))
		assert.False(t, eq(b, PointBox(1, 2)))
		assert.True(t, eq(Box[int]{}, Box[int]{}))
	})

	t.Run("Comparable", func(t *testing.T) {
		eq := DefaultEqual[int, point]()
		require.NotNil(t, eq)

		assert.True(t, eq(point{1, 2}, point{1, 2}))
		assert.False(t, eq(point{1, 2}, point{2, 1}))
	})

	t.Run("NotComparable", func(t *testing.T) {
		assert.Nil(t, DefaultEqual[int, []int]())
		assert.Nil(t, DefaultEqual[float64, map[string]int]())
	})
}
