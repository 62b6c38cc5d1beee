// SPDX-License-Identifier: Unlicense OR MIT

package visual

import (
	"image/color"
	"sync"

	"github.com/wagui/wag/f32"
)

// MemCompositor is a Compositor keeping the scene graph in memory.
// It is safe for concurrent use; all nodes of a compositor share
// one lock.
type MemCompositor struct {
	mu sync.Mutex
}

// MemNode is a node created by a MemCompositor.
type MemNode struct {
	comp *MemCompositor

	name     string
	size     f32.Point
	offset   f32.Point
	parent   *MemNode
	children []*MemNode

	shape  bool
	fill   color.Color
	radius float32
}

type memChildren struct {
	n *MemNode
}

// NewMemCompositor returns an empty compositor.
func NewMemCompositor() *MemCompositor {
	return new(MemCompositor)
}

// NewContainer implements Compositor.
func (c *MemCompositor) NewContainer() (Node, error) {
	return c.NewNode(""), nil
}

// NewShape implements Compositor.
func (c *MemCompositor) NewShape() (Shape, error) {
	n := c.NewNode("")
	n.shape = true
	return n, nil
}

// NewNode returns a named container node.
func (c *MemCompositor) NewNode(name string) *MemNode {
	return &MemNode{comp: c, name: name}
}

// Name returns the node's debug name.
func (n *MemNode) Name() string {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	return n.name
}

// SetName sets the node's debug name.
func (n *MemNode) SetName(name string) {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	n.name = name
}

func (n *MemNode) Size() (f32.Point, error) {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	return n.size, nil
}

func (n *MemNode) SetSize(sz f32.Point) error {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	n.size = sz
	return nil
}

func (n *MemNode) Offset() (f32.Point, error) {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	return n.offset, nil
}

func (n *MemNode) SetOffset(off f32.Point) error {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	n.offset = off
	return nil
}

func (n *MemNode) Children() Children {
	return memChildren{n: n}
}

func (n *MemNode) Parent() Node {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// SetFill implements Shape.
func (n *MemNode) SetFill(c color.Color, cornerRadius float32) error {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	n.fill = c
	n.radius = cornerRadius
	return nil
}

// Fill returns the fill of a shape node; ok is false for containers
// and shapes without a fill.
func (n *MemNode) Fill() (c color.Color, cornerRadius float32, ok bool) {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	return n.fill, n.radius, n.shape && n.fill != nil
}

// Nodes returns a snapshot of the children, bottom to top.
func (n *MemNode) Nodes() []*MemNode {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	return append([]*MemNode(nil), n.children...)
}

// Bounds returns the node's rectangle in the coordinate space of
// the root of its tree.
func (n *MemNode) Bounds() f32.Rectangle {
	n.comp.mu.Lock()
	defer n.comp.mu.Unlock()
	var off f32.Point
	for p := n; p != nil; p = p.parent {
		off = off.Add(p.offset)
	}
	return f32.Rectangle{Max: n.size}.Add(off)
}

// Walk calls f for n and every descendant in paint order, bottom
// first.
func (n *MemNode) Walk(f func(n *MemNode, depth int)) {
	n.walk(f, 0)
}

func (n *MemNode) walk(f func(n *MemNode, depth int), depth int) {
	f(n, depth)
	for _, c := range n.Nodes() {
		c.walk(f, depth+1)
	}
}

func (c memChildren) InsertTop(child Node) error {
	m, ok := child.(*MemNode)
	if !ok || m.comp != c.n.comp {
		return ErrForeignNode
	}
	c.n.comp.mu.Lock()
	defer c.n.comp.mu.Unlock()
	if m.parent != nil {
		return ErrHasParent
	}
	m.parent = c.n
	c.n.children = append(c.n.children, m)
	return nil
}

func (c memChildren) Remove(child Node) error {
	m, ok := child.(*MemNode)
	if !ok || m.comp != c.n.comp {
		return ErrForeignNode
	}
	c.n.comp.mu.Lock()
	defer c.n.comp.mu.Unlock()
	for i, k := range c.n.children {
		if k == m {
			c.n.children = append(c.n.children[:i], c.n.children[i+1:]...)
			m.parent = nil
			return nil
		}
	}
	return nil
}

func (c memChildren) Len() int {
	c.n.comp.mu.Lock()
	defer c.n.comp.mu.Unlock()
	return len(c.n.children)
}
