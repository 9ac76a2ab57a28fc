// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"runtime"

	"github.com/gogama/spatial"
	"github.com/gogama/spatial/geom"
	"github.com/gogama/spatial/internal/config"
	"github.com/paulmach/orb"
	"github.com/qedus/osmpbf"
)

const (
	randomExtent  = 1000.0
	randomMaxSize = 1.0
	querySize     = 0.01
)

// loadOSM returns a degenerate box at the location of every node in an
// OpenStreetMap PBF file. Boxes are in degrees, longitude first.
func loadOSM(path string, log *spatial.Logger) ([]spatial.Box[float64], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OSM file: %w", err)
	}
	defer f.Close()

	d := osmpbf.NewDecoder(f)
	d.SetBufferSize(osmpbf.MaxBlobSize)
	if err = d.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return nil, fmt.Errorf("failed to start OSM decoder: %w", err)
	}

	var boxes []spatial.Box[float64]
	for {
		obj, err := d.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("error decoding OSM data: %w", err)
		}
		if node, ok := obj.(*osmpbf.Node); ok {
			p := orb.Point{node.Lon, node.Lat}
			boxes = append(boxes, geom.FromOrbBound(p.Bound()))
			if len(boxes)%1000000 == 0 {
				log.Debug("decoded nodes", "count", len(boxes))
			}
		}
	}
	return boxes, nil
}

// randomBoxes returns n boxes scattered uniformly over a square.
func randomBoxes(n int, seed uint64) []spatial.Box[float64] {
	rng := rand.New(rand.NewPCG(seed, seed))
	boxes := make([]spatial.Box[float64], n)
	for i := range boxes {
		x, y := rng.Float64()*randomExtent, rng.Float64()*randomExtent
		boxes[i] = spatial.NewBox(
			[]float64{x, y},
			[]float64{x + rng.Float64()*randomMaxSize, y + rng.Float64()*randomMaxSize})
	}
	return boxes
}

// queryBoxes returns the configured query box, or random query boxes
// each covering a small fraction of the extent.
func queryBoxes(c config.Config, extent spatial.Box[float64]) ([]spatial.Box[float64], error) {
	q, err := c.QueryBox()
	if err != nil {
		return nil, err
	} else if !q.IsEmpty() {
		return []spatial.Box[float64]{q}, nil
	}
	rng := rand.New(rand.NewPCG(c.Seed, c.Seed+1))
	w := (extent.Max[0] - extent.Min[0]) * querySize
	h := (extent.Max[1] - extent.Min[1]) * querySize
	queries := make([]spatial.Box[float64], c.Queries)
	for i := range queries {
		x := extent.Min[0] + rng.Float64()*(extent.Max[0]-extent.Min[0]-w)
		y := extent.Min[1] + rng.Float64()*(extent.Max[1]-extent.Min[1]-h)
		queries[i] = spatial.NewBox([]float64{x, y}, []float64{x + w, y + h})
	}
	return queries, nil
}
