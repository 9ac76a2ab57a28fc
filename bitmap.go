// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package spatial

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// Bitmap collects a sequence of uint32 values into a compressed
// bitmap. It is intended for the results of queries against indices
// whose values are SliceIndexable positions: collecting the matches of
// two queries as bitmaps allows them to be intersected, unioned or
// differenced cheaply, for example when joining two data sets.
func Bitmap(seq iter.Seq[uint32]) *roaring.Bitmap {
	bm := roaring.New()
	for v := range seq {
		bm.Add(v)
	}
	bm.RunOptimize()
	return bm
}
