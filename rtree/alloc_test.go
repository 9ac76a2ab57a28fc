// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"testing"

	"github.com/gogama/spatial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHeapAllocator(t *testing.T) {
	var a HeapAllocator[int, rect]

	id0 := a.Allocate(0)
	id1 := a.Allocate(2)
	assert.Equal(t, NodeID(0), id0)
	assert.Equal(t, NodeID(1), id1)
	assert.Equal(t, 2, a.Node(id1).Level())
	assert.Equal(t, 2, a.Outstanding())
	assert.False(t, a.Overflowed())
	assert.False(t, a.Overflowable())

	a.Deallocate(id0)
	assert.Equal(t, 1, a.Outstanding())
	assert.Equal(t, id0, a.Allocate(1), "freed IDs are recycled")
	assert.Equal(t, 1, a.Node(id0).Level())
	assert.False(t, a.Node(id0).IsLeaf())

	t.Run("DoubleFree", func(t *testing.T) {
		a.Deallocate(id1)

		assert.PanicsWithValue(t, "rtree: deallocate of unallocated node 1", func() {
			a.Deallocate(id1)
		})
		assert.PanicsWithValue(t, "rtree: deallocate of unallocated node 99", func() {
			a.Deallocate(99)
		})
	})
}

func TestPoolAllocator(t *testing.T) {
	t.Run("Capacity", func(t *testing.T) {
		assert.PanicsWithValue(t, "rtree: pool capacity must be at least 1", func() {
			NewPoolAllocator[int, rect](0, 4)
		})
	})

	t.Run("Exhaustion", func(t *testing.T) {
		a := NewPoolAllocator[int, rect](2, 4)
		assert.True(t, a.Overflowable())
		assert.Equal(t, 2, a.Capacity())

		id0 := a.Allocate(0)
		id1 := a.Allocate(1)
		assert.Equal(t, NodeID(0), id0)
		assert.Equal(t, NodeID(1), id1)
		assert.False(t, a.Overflowed())
		assert.Equal(t, 2, a.Outstanding())

		assert.Equal(t, NoNode, a.Allocate(0))
		assert.True(t, a.Overflowed())

		a.Deallocate(id0)
		assert.True(t, a.Overflowed(), "deallocate keeps the overflow")
		assert.Equal(t, 1, a.Outstanding())
		assert.Equal(t, id0, a.Allocate(3))
		assert.False(t, a.Overflowed())
		assert.Equal(t, 3, a.Node(id0).Level())
	})

	t.Run("DoubleFree", func(t *testing.T) {
		a := NewPoolAllocator[int, rect](2, 4)
		id := a.Allocate(0)
		a.Deallocate(id)

		assert.PanicsWithValue(t, "rtree: deallocate of unallocated node 0", func() {
			a.Deallocate(id)
		})
	})

	t.Run("Reset", func(t *testing.T) {
		a := NewPoolAllocator[int, rect](1, 4)
		id := a.Allocate(0)
		a.Node(id).append(entry[int, rect]{box: box(0, 0, 1, 1), value: rect{id: 1}})
		a.Deallocate(id)

		id = a.Allocate(0)
		assert.Equal(t, 0, a.Node(id).Len())
		assert.Equal(t, 5, cap(a.Node(id).entries))
	})
}

// recordingAllocator is a mock Allocator which records calls before
// delegating them to a pool.
type recordingAllocator struct {
	mock.Mock
	*PoolAllocator[int, rect]
}

func newRecordingAllocator(capacity, maxEntries int) *recordingAllocator {
	m := &recordingAllocator{PoolAllocator: NewPoolAllocator[int, rect](capacity, maxEntries)}
	m.On("Allocate", mock.Anything)
	m.On("Deallocate", mock.Anything)
	return m
}

func (m *recordingAllocator) Allocate(level int) NodeID {
	m.Called(level)
	return m.PoolAllocator.Allocate(level)
}

func (m *recordingAllocator) Deallocate(id NodeID) {
	m.Called(id)
	m.PoolAllocator.Deallocate(id)
}

func TestRTree_InsertReservesExactly(t *testing.T) {
	m := newRecordingAllocator(10, 4)
	tree := newRectTree(WithMaxEntries(4), WithAllocator[int, rect](m))
	m.AssertNumberOfCalls(t, "Allocate", 1)

	_, err := tree.InsertAll(scenarioRects[:4]...)
	require.NoError(t, err)
	m.AssertNumberOfCalls(t, "Allocate", 1)

	// The fifth value splits the root leaf and grows a new root.
	require.NoError(t, tree.Insert(scenarioRects[4]))
	m.AssertNumberOfCalls(t, "Allocate", 3)
	m.AssertNumberOfCalls(t, "Deallocate", 0)
	assert.Equal(t, 1, tree.Levels())
	assert.Equal(t, 3, m.Outstanding())
}

func TestRTree_InsertOverflow(t *testing.T) {
	pool := NewPoolAllocator[int, rect](3, 4)
	tree := newRectTree(WithMaxEntries(4), WithAllocator[int, rect](pool))

	var inserted []rect
	var err error
	for i := 0; i < 100; i++ {
		r := rect{id: i, x0: i, y0: i, x1: i + 1, y1: i + 1}
		if err = tree.Insert(r); err != nil {
			break
		}
		inserted = append(inserted, r)
	}

	require.ErrorIs(t, err, ErrOverflow)
	assert.GreaterOrEqual(t, len(inserted), 5)
	assert.LessOrEqual(t, len(inserted), 8)
	assert.Equal(t, len(inserted), tree.Count())
	assert.Equal(t, 3, pool.Outstanding())
	assert.NoError(t, tree.Validate())
	assert.ElementsMatch(t, inserted, tree.Query(spatial.All[int](), nil))

	// Two full leaves hold at most eight values.
	more := make([]rect, 10)
	for i := range more {
		more[i] = rect{id: 1000 + i, x0: i, y0: 0, x1: i, y1: 0}
	}
	n, err := tree.InsertAll(more...)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.LessOrEqual(t, len(inserted)+n, 8)
	assert.NoError(t, tree.Validate())
}

func TestRTree_RemoveFromFullPool(t *testing.T) {
	pool := NewPoolAllocator[int, rect](3, 4)
	tree := newRectTree(WithMaxEntries(4), WithAllocator[int, rect](pool))

	var inserted []rect
	for i := 0; ; i++ {
		r := rect{id: i, x0: i, y0: i, x1: i + 1, y1: i + 1}
		if err := tree.Insert(r); err != nil {
			require.ErrorIs(t, err, ErrOverflow)
			break
		}
		inserted = append(inserted, r)
	}
	require.Equal(t, 3, pool.Outstanding())

	for i, r := range inserted {
		removed, err := tree.Remove(r)
		require.NoError(t, err, "remove %d of %d", i+1, len(inserted))
		assert.True(t, removed)
		assert.Equal(t, len(inserted)-i-1, tree.Count())
		assert.False(t, tree.Any(exactly{r.box()}))
		require.NoError(t, tree.Validate())
		assert.LessOrEqual(t, pool.Outstanding(), 3)
	}
	assert.Equal(t, 1, pool.Outstanding())
}

func TestRTree_PreallocateOverflow(t *testing.T) {
	pool := NewPoolAllocator[int, rect](3, 4)
	tree := newRectTree(WithMaxEntries(4), WithAllocator[int, rect](pool))

	r, err := tree.preallocate(3, "insert")

	assert.ErrorIs(t, err, ErrOverflow)
	assert.Nil(t, r)
	assert.True(t, pool.Overflowed(), "partial reservation released")
	assert.Equal(t, 1, pool.Outstanding())

	r, err = tree.preallocate(2, "insert")
	require.NoError(t, err)
	assert.Len(t, r, 2)
	assert.False(t, pool.Overflowed())
	tree.release(&r)
	assert.Equal(t, 1, pool.Outstanding())
}

func TestCheapestSplits(t *testing.T) {
	testCases := []struct {
		name     string
		costs    []int
		add      int
		halfCost int
		expected int
	}{
		{name: "NoNodes", add: 4, halfCost: 2},
		{name: "NothingAdded", costs: []int{1, 1}, halfCost: 2},
		{name: "FullNode", costs: []int{3, 1}, add: 1, halfCost: 2, expected: 1},
		{name: "NoFullNode", costs: []int{3, 5}, add: 1, halfCost: 2},
		{name: "HalvesAfterExisting", costs: []int{1, 1}, add: 5, halfCost: 2, expected: 3},
		{name: "CheapHalves", costs: []int{2}, add: 10, halfCost: 1, expected: 9},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := cheapestSplits(testCase.costs, testCase.add, testCase.halfCost)

			assert.Equal(t, testCase.expected, actual)
		})
	}
}

func TestRTree_SharedPool(t *testing.T) {
	pool := NewPoolAllocator[int, rect](200, 4)
	a := newRectTree(WithMaxEntries(4), WithAllocator[int, rect](pool))
	b := newRectTree(WithMaxEntries(4), WithAllocator[int, rect](pool))

	_, err := a.InsertAll(scenarioRects...)
	require.NoError(t, err)
	_, err = b.InsertAll(scenarioRects[:8]...)
	require.NoError(t, err)
	assert.NoError(t, a.Validate())
	assert.NoError(t, b.Validate())

	a.Clear()
	b.Clear()
	assert.Equal(t, 2, pool.Outstanding())
}
