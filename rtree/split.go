// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import "github.com/gogama/spatial"

// split divides the entries of an overflowing node between the node and
// a new sibling at the same level, returning the sibling's ID.
func (t *RTree[T, A, V]) split(id NodeID, r *nodeReserve) NodeID {
	sibling := t.newNode(t.node(id).level, r)
	n, s := t.node(id), t.node(sibling)

	entries := make([]entry[T, V], len(n.entries))
	copy(entries, n.entries)
	groups := t.partition(entries)

	clear(n.entries)
	n.entries = n.entries[:0]
	for i := range entries {
		if groups[i] == 0 {
			n.append(entries[i])
		} else {
			s.append(entries[i])
		}
	}
	t.log.LogSplit(n.level, n.Len(), s.Len())
	return sibling
}

// partition assigns each entry to one of two groups using Guttman's
// quadratic split. Each group receives at least minEntries entries.
func (t *RTree[T, A, V]) partition(entries []entry[T, V]) []int8 {
	total := len(entries)
	limit := total - t.minEntries
	groups := make([]int8, total)
	for i := range groups {
		groups[i] = -1
	}
	var covers [2]spatial.Box[T]
	var counts [2]int
	assign := func(i int, g int8) {
		groups[i] = g
		covers[g].ExtendBox(entries[i].box)
		counts[g]++
	}

	s0, s1 := t.pickSeeds(entries)
	assign(s0, 0)
	assign(s1, 1)

	// Assign the entry with the strongest preference for one group
	// until every entry is assigned or one group is so large that the
	// other needs all remaining entries to reach minEntries.
	for counts[0]+counts[1] < total && counts[0] < limit && counts[1] < limit {
		vol0 := spatial.Volume[A](covers[0], t.mode)
		vol1 := spatial.Volume[A](covers[1], t.mode)
		best, bestGroup := -1, int8(0)
		var bestDiff A
		for i := range entries {
			if groups[i] >= 0 {
				continue
			}
			g0 := spatial.UnionVolume[A](covers[0], entries[i].box, t.mode) - vol0
			g1 := spatial.UnionVolume[A](covers[1], entries[i].box, t.mode) - vol1
			g, diff := preferredGroup(g0, g1, vol0, vol1, counts)
			if best < 0 || diff > bestDiff || diff == bestDiff && counts[g] < counts[bestGroup] {
				best, bestGroup, bestDiff = i, g, diff
			}
		}
		assign(best, bestGroup)
	}

	if counts[0]+counts[1] < total {
		var g int8
		if counts[0] >= limit {
			g = 1
		}
		for i := range groups {
			if groups[i] < 0 {
				assign(i, g)
			}
		}
	}
	return groups
}

// preferredGroup returns the group an entry should join given the
// growth each group would undergo to include it, and the strength of
// the preference. Equal growth is resolved in favour of the group with
// the smaller volume, then the group with fewer entries.
func preferredGroup[A spatial.Area](g0, g1, vol0, vol1 A, counts [2]int) (int8, A) {
	switch {
	case g0 < g1:
		return 0, g1 - g0
	case g1 < g0:
		return 1, g0 - g1
	case vol1 < vol0:
		return 1, 0
	case vol0 < vol1:
		return 0, 0
	case counts[1] < counts[0]:
		return 1, 0
	default:
		return 0, 0
	}
}

// pickSeeds returns the pair of entries which would waste the most
// volume if placed in the same group.
func (t *RTree[T, A, V]) pickSeeds(entries []entry[T, V]) (int, int) {
	vols := make([]A, len(entries))
	for i := range entries {
		vols[i] = spatial.Volume[A](entries[i].box, t.mode)
	}
	s0, s1 := 0, 1
	var worst A
	for i := range entries {
		for j := i + 1; j < len(entries); j++ {
			d := spatial.UnionVolume[A](entries[i].box, entries[j].box, t.mode) - vols[i] - vols[j]
			if i == 0 && j == 1 || d > worst {
				s0, s1, worst = i, j, d
			}
		}
	}
	return s0, s1
}
