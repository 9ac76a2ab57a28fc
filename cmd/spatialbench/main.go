// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command spatialbench builds a spatial index over random boxes or the
// nodes of an OpenStreetMap extract, then times insertion, queries and
// removal.
//
// Usage:
//
//	spatialbench [flags]
//
// Run spatialbench --help for the list of flags. Every flag may also be
// set with a SPATIAL_-prefixed environment variable, for example
// SPATIAL_MAX_ENTRIES=16, or in a spatialbench.yaml file in the working
// directory.
package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/gogama/spatial"
	"github.com/gogama/spatial/internal/config"
	"github.com/spf13/pflag"
)

func main() {
	fs := config.Flags(os.Args[0])
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}
	c, err := config.Load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level, _ := c.Level()
	log := spatial.NewTextLogger(level)

	if err := run(c, log); err != nil {
		log.Error("benchmark failed", "error", err)
		os.Exit(1)
	}
}

func run(c config.Config, log *spatial.Logger) error {
	start := time.Now()
	var boxes []spatial.Box[float64]
	var err error
	if c.OSMFile != "" {
		boxes, err = loadOSM(c.OSMFile, log)
		if err != nil {
			return err
		}
	} else {
		boxes = randomBoxes(c.Count, c.Seed)
	}
	var extent spatial.Box[float64]
	for _, b := range boxes {
		extent.ExtendBox(b)
	}
	if extent.IsEmpty() {
		return errors.New("no boxes to index")
	}
	log.Info("loaded boxes", "count", len(boxes), "extent", extent, "elapsed", time.Since(start))

	ids := make([]uint32, len(boxes))
	for i := range ids {
		ids[i] = uint32(i)
	}
	if c.HilbertSort {
		start = time.Now()
		spatial.HilbertSort[float64, uint32](ids, spatial.SliceIndexable[float64]{Boxes: boxes}, extent)
		log.Info("sorted boxes", "elapsed", time.Since(start))
	}

	idx, err := newIndex(c, boxes, extent, log)
	if err != nil {
		return err
	}

	start = time.Now()
	var inserted int
	for _, id := range ids {
		if err = idx.insert(id); err != nil {
			log.Warn("insert failed", "inserted", inserted, "error", err)
			break
		}
		inserted++
	}
	log.Info("built index", append([]any{"tree", c.Tree, "inserted", inserted, "elapsed", time.Since(start)}, idx.stats()...)...)

	queries, err := queryBoxes(c, extent)
	if err != nil {
		return err
	}
	for _, mode := range []queryMode{intersects, contains} {
		start = time.Now()
		var matches uint64
		for _, q := range queries {
			matches += idx.search(q, mode).GetCardinality()
		}
		log.Info("ran queries", "mode", mode, "queries", len(queries), "matches", matches, "elapsed", time.Since(start))
	}

	removals := slices.Clone(ids[:inserted])
	removals = slices.DeleteFunc(removals, func(id uint32) bool { return id%10 != 0 })
	start = time.Now()
	var removed int
	for _, id := range removals {
		ok, err := idx.remove(id)
		if err != nil {
			log.Warn("remove failed", "removed", removed, "error", err)
			break
		} else if ok {
			removed++
		}
	}
	log.Info("removed values", append([]any{"removed", removed, "elapsed", time.Since(start)}, idx.stats()...)...)
	return nil
}
