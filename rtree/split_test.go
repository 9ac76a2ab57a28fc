// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"testing"

	"github.com/gogama/spatial"
	"github.com/stretchr/testify/assert"
)

func entriesOf(boxes ...spatial.Box[int]) []entry[int, rect] {
	entries := make([]entry[int, rect], len(boxes))
	for i := range boxes {
		entries[i] = entry[int, rect]{box: boxes[i], child: NoNode}
	}
	return entries
}

func TestRTree_pickSeeds(t *testing.T) {
	tree := newRectTree()
	entries := entriesOf(
		box(0, 0, 1, 1),
		box(2, 2, 3, 3),
		box(100, 100, 101, 101),
		box(1, 1, 2, 2),
	)

	s0, s1 := tree.pickSeeds(entries)

	assert.Equal(t, 0, s0)
	assert.Equal(t, 2, s1)
}

func TestRTree_partition(t *testing.T) {
	testCases := []struct {
		name       string
		opts       []Option
		boxes      []spatial.Box[int]
		wantGroups []int8
	}{
		{
			name: "TwoClusters",
			opts: []Option{WithMaxEntries(4), WithMinEntries(2)},
			boxes: []spatial.Box[int]{
				box(0, 0, 1, 1),
				box(50, 50, 51, 51),
				box(1, 0, 2, 1),
				box(51, 50, 52, 51),
				box(0, 1, 1, 2),
			},
			wantGroups: []int8{0, 1, 0, 1, 0},
		},
		{
			name: "MinFill",
			opts: []Option{WithMaxEntries(8), WithMinEntries(4)},
			boxes: []spatial.Box[int]{
				box(0, 0, 1, 1),
				box(1, 0, 2, 1),
				box(2, 0, 3, 1),
				box(3, 0, 4, 1),
				box(0, 1, 1, 2),
				box(1, 1, 2, 2),
				box(2, 1, 3, 2),
				box(3, 1, 4, 2),
				box(1000, 1000, 1001, 1001),
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			tree := newRectTree(testCase.opts...)

			groups := tree.partition(entriesOf(testCase.boxes...))

			var counts [2]int
			for _, g := range groups {
				assert.Contains(t, []int8{0, 1}, g)
				counts[g]++
			}
			assert.GreaterOrEqual(t, counts[0], tree.MinEntries())
			assert.GreaterOrEqual(t, counts[1], tree.MinEntries())
			if testCase.wantGroups != nil {
				assert.Equal(t, testCase.wantGroups, groups)
			}
		})
	}
}

func TestPreferredGroup(t *testing.T) {
	testCases := []struct {
		name           string
		g0, g1         float64
		vol0, vol1     float64
		counts         [2]int
		wantGroup      int8
		wantPreference float64
	}{
		{name: "LessGrowth0", g0: 1, g1: 4, wantGroup: 0, wantPreference: 3},
		{name: "LessGrowth1", g0: 5, g1: 3, wantGroup: 1, wantPreference: 2},
		{name: "SmallerVolume", g0: 2, g1: 2, vol0: 10, vol1: 5, wantGroup: 1},
		{name: "FewerEntries", counts: [2]int{3, 2}, wantGroup: 1},
		{name: "Tie", counts: [2]int{2, 2}, wantGroup: 0},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			g, pref := preferredGroup(testCase.g0, testCase.g1, testCase.vol0, testCase.vol1, testCase.counts)

			assert.Equal(t, testCase.wantGroup, g)
			assert.Equal(t, testCase.wantPreference, pref)
		})
	}
}
