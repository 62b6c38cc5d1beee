// SPDX-License-Identifier: Unlicense OR MIT

/*
Package visual defines the retained scene graph the composition core
positions and sizes.

The graph itself belongs to the graphics backend. The core only reads
and writes sizes and offsets and inserts or removes children; it never
draws. MemCompositor is an in-memory backend for hosts that render the
graph themselves and for tests.
*/
package visual

import (
	"errors"
	"image/color"

	"github.com/wagui/wag/f32"
)

// Node is a positionable node of the scene graph. Offsets are
// relative to the parent node.
type Node interface {
	Size() (f32.Point, error)
	SetSize(sz f32.Point) error
	Offset() (f32.Point, error)
	SetOffset(off f32.Point) error
	Children() Children
	// Parent returns the parent node, or nil if n is detached.
	Parent() Node
}

// Children is the ordered child list of a Node, bottom to top.
type Children interface {
	// InsertTop adds n above all existing children.
	InsertTop(n Node) error
	// Remove removes n. Removing a node that is not a child is a
	// no-op.
	Remove(n Node) error
	Len() int
}

// Shape is a node painting a filled, optionally rounded, rectangle
// over its whole size.
type Shape interface {
	Node
	SetFill(c color.Color, cornerRadius float32) error
}

// Compositor creates nodes.
type Compositor interface {
	NewContainer() (Node, error)
	NewShape() (Shape, error)
}

var (
	// ErrHasParent is returned when inserting a node that is already
	// a child of another node.
	ErrHasParent = errors.New("visual: node already has a parent")
	// ErrForeignNode is returned when a node from a different
	// compositor is inserted.
	ErrForeignNode = errors.New("visual: node belongs to another compositor")
)
