// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the configuration of the spatialbench command.
//
// Settings are resolved, highest precedence first, from command line
// flags, SPATIAL_-prefixed environment variables, an optional config
// file, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gogama/spatial"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Tree kinds.
const (
	TreeRTree    = "rtree"
	TreeQuadTree = "quadtree"
	TreeRTreeGo  = "rtreego"
)

// Config holds the settings of the spatialbench command.
type Config struct {
	Tree        string `mapstructure:"TREE"`
	MaxEntries  int    `mapstructure:"MAX_ENTRIES"`
	MinEntries  int    `mapstructure:"MIN_ENTRIES"`
	Spherical   bool   `mapstructure:"SPHERICAL"`
	PoolSize    int    `mapstructure:"POOL_SIZE"`
	Threshold   int    `mapstructure:"THRESHOLD"`
	Count       int    `mapstructure:"COUNT"`
	Seed        uint64 `mapstructure:"SEED"`
	OSMFile     string `mapstructure:"OSM_FILE"`
	Query       string `mapstructure:"QUERY"`
	Queries     int    `mapstructure:"QUERIES"`
	HilbertSort bool   `mapstructure:"HILBERT_SORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"TREE":         TreeRTree,
	"MAX_ENTRIES":  8,
	"MIN_ENTRIES":  0,
	"SPHERICAL":    false,
	"POOL_SIZE":    0,
	"THRESHOLD":    16,
	"COUNT":        100000,
	"SEED":         1,
	"OSM_FILE":     "",
	"QUERY":        "",
	"QUERIES":      1000,
	"HILBERT_SORT": false,
	"LOG_LEVEL":    "info",
}

// Flags returns a flag set declaring one flag per setting. Flag names
// are the lower-case, hyphenated form of the setting name, so the flag
// for MAX_ENTRIES is --max-entries.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("config", "", "path to a config file")
	fs.String(flagName("TREE"), TreeRTree, "index to build: rtree, quadtree or rtreego")
	fs.Int(flagName("MAX_ENTRIES"), 8, "maximum entries per R-tree node")
	fs.Int(flagName("MIN_ENTRIES"), 0, "minimum entries per R-tree node (0 means half the maximum)")
	fs.Bool(flagName("SPHERICAL"), false, "use spherical volumes when building the R-tree")
	fs.Int(flagName("POOL_SIZE"), 0, "allocate R-tree nodes from a fixed pool of this size (0 means unbounded)")
	fs.Int(flagName("THRESHOLD"), 16, "values per quad-tree node before subdividing")
	fs.Int(flagName("COUNT"), 100000, "number of random boxes to index when no OSM file is given")
	fs.Uint64(flagName("SEED"), 1, "random seed")
	fs.String(flagName("OSM_FILE"), "", "index the nodes of this .osm.pbf file")
	fs.String(flagName("QUERY"), "", "query box as minX,minY,maxX,maxY (default: random boxes)")
	fs.Int(flagName("QUERIES"), 1000, "number of random query boxes")
	fs.Bool(flagName("HILBERT_SORT"), false, "sort values along a Hilbert curve before inserting")
	fs.String(flagName("LOG_LEVEL"), "info", "log level: debug, info, warn or error")
	return fs
}

func flagName(key string) string {
	return strings.ReplaceAll(strings.ToLower(key), "_", "-")
}

// Load resolves the configuration. The flags in fs, which should come
// from Flags, must already have been parsed. If fs is nil, only the
// environment and defaults are consulted.
func Load(fs *pflag.FlagSet) (c Config, err error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("SPATIAL")
	v.AutomaticEnv()

	if fs != nil {
		for key := range defaults {
			if err = v.BindPFlag(key, fs.Lookup(flagName(key))); err != nil {
				return c, err
			}
		}
		if path, _ := fs.GetString("config"); path != "" {
			v.SetConfigFile(path)
		}
	}
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("spatialbench")
		v.AddConfigPath(".")
	}

	if err = v.ReadInConfig(); err != nil {
		// Continue even if file is not found
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return c, fmt.Errorf("config: %w", err)
		}
	}

	if err = v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	return c, c.validate()
}

func (c Config) validate() error {
	switch c.Tree {
	case TreeRTree, TreeQuadTree, TreeRTreeGo:
	default:
		return fmt.Errorf("config: unknown tree %q", c.Tree)
	}
	if c.Count < 0 || c.Queries < 0 || c.PoolSize < 0 {
		return errors.New("config: counts must not be negative")
	}
	if _, err := c.QueryBox(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// QueryBox parses the Query setting. It returns the empty box if Query
// is not set.
func (c Config) QueryBox() (spatial.Box[float64], error) {
	var b spatial.Box[float64]
	if c.Query == "" {
		return b, nil
	}
	parts := strings.Split(c.Query, ",")
	if len(parts) != 4 {
		return b, fmt.Errorf("config: query %q must have four coordinates", c.Query)
	}
	coords := make([]float64, 4)
	for i, p := range parts {
		x, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return b, fmt.Errorf("config: query %q: %w", c.Query, err)
		}
		coords[i] = x
	}
	b = spatial.Box[float64]{Min: coords[:2], Max: coords[2:]}
	if err := b.Validate(); err != nil {
		return spatial.Box[float64]{}, fmt.Errorf("config: query %q: %w", c.Query, err)
	}
	return b, nil
}

// Level parses the LogLevel setting.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, fmt.Errorf("config: %w", err)
	}
	return l, nil
}
