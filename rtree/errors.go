// Copyright 2023 The spatial (Go) Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package rtree

import (
	"errors"
	"fmt"
)

const packageName = "rtree: "

var (
	// ErrOverflow is returned when an operation needs more nodes than
	// the tree's Allocator can supply. The tree is unchanged when an
	// operation fails with ErrOverflow.
	ErrOverflow = textErr("allocator overflow")
	// ErrOutOfDomain is returned when inserting a value whose bounding
	// box does not lie within the tree's domain.
	ErrOutOfDomain = textErr("value out of domain")
)

func textErr(text string) error {
	return errors.New(packageName + text)
}

func fmtErr(format string, a ...interface{}) error {
	return fmt.Errorf(packageName+format, a...)
}

func wrapErr(text string, err error, a ...interface{}) error {
	return fmt.Errorf(packageName+text+": %w", append(a, err)...)
}

func textPanic(text string) {
	panic(packageName + text)
}

func fmtPanic(format string, a ...interface{}) {
	panic(fmt.Sprintf(packageName+format, a...))
}
