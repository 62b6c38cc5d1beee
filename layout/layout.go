// SPDX-License-Identifier: Unlicense OR MIT

// Package layout implements the constraint solver that distributes
// a container's extent among its cells.
package layout

import (
	"github.com/wagui/wag/f32"
)

// Orientation of a container's cells.
type Orientation uint8

const (
	// Stack centers every cell independently over the whole
	// container.
	Stack Orientation = iota
	// Horizontal places cells left to right.
	Horizontal
	// Vertical places cells top to bottom.
	Vertical
)

// CellLimit describes how a cell competes for space along the main
// axis and, for Stack orientation, how much of the container its
// content covers.
type CellLimit struct {
	// Ratio is the cell's weight among unlocked cells. It must be
	// positive.
	Ratio float32
	// MinSize is the smallest main axis size of the cell.
	MinSize float32
	// MaxSize is the largest main axis size of the cell. It only
	// applies if HasMax is set.
	MaxSize float32
	HasMax  bool
	// ContentRatio is the fraction of the container covered by the
	// cell in Stack orientation.
	ContentRatio f32.Point
}

// DefaultLimit returns a limit with ratio 1, no bounds and full
// content ratio.
func DefaultLimit() CellLimit {
	return CellLimit{Ratio: 1, ContentRatio: f32.Pt(1, 1)}
}

// Ratio returns DefaultLimit with the given ratio.
func Ratio(r float32) CellLimit {
	l := DefaultLimit()
	l.Ratio = r
	return l
}

// SetSize pins the cell to a fixed main axis size.
func (l *CellLimit) SetSize(size float32) {
	l.MinSize = size
	l.MaxSize = size
	l.HasMax = true
}

// WithMin returns l with the given minimum size.
func (l CellLimit) WithMin(size float32) CellLimit {
	l.MinSize = size
	return l
}

// WithMax returns l with the given maximum size.
func (l CellLimit) WithMax(size float32) CellLimit {
	l.MaxSize = size
	l.HasMax = true
	return l
}

// Adjust returns the main axis sizes of cells with the given limits
// sharing target.
//
// Each round offers every unlocked cell its ratio's share of the
// remaining extent. A cell offered no more than its minimum, or more
// than its maximum, is locked at that bound and leaves the pool; all
// cells locking in the same round are decided against the same
// offer. Rounds repeat until none locks or the remainder stops
// changing. The remainder never goes below zero, so minimums that do
// not fit overflow the target rather than shrink.
//
// Adjust panics if a ratio is not positive.
func Adjust(limits []CellLimit, target float32) []float32 {
	sizes := make([]float32, len(limits))
	locked := make([]bool, len(limits))
	var sumRatio float32
	for _, l := range limits {
		if !(l.Ratio > 0) {
			panic("layout: cell ratio must be positive")
		}
		sumRatio += l.Ratio
	}
	if target < 0 {
		target = 0
	}
	for {
		newTarget := target
		newSum := sumRatio
		allLocked := true
		for i, l := range limits {
			if locked[i] {
				continue
			}
			share := target * l.Ratio / sumRatio
			if share <= l.MinSize {
				share = l.MinSize
				locked[i] = true
			} else if l.HasMax && share > l.MaxSize {
				share = l.MaxSize
				locked[i] = true
			}
			if locked[i] {
				newTarget -= share
				newSum -= l.Ratio
			} else {
				allLocked = false
			}
			sizes[i] = share
		}
		if allLocked || newTarget == target {
			break
		}
		if newTarget < 0 {
			newTarget = 0
		}
		target, sumRatio = newTarget, newSum
	}
	return sizes
}

// Arrange returns the rectangle of each cell of a container of size
// sz. In Stack orientation every cell covers sz scaled by its content
// ratio, centered. Otherwise Adjust divides the main axis, cells abut
// in order starting at zero and span the whole cross axis.
func Arrange(o Orientation, limits []CellLimit, sz f32.Point) []f32.Rectangle {
	rects := make([]f32.Rectangle, len(limits))
	if o == Stack {
		for i, l := range limits {
			content := sz.Scale(l.ContentRatio)
			off := sz.Sub(content).Mul(.5)
			rects[i] = f32.Rectangle{Min: off, Max: off.Add(content)}
		}
		return rects
	}
	sizes := Adjust(limits, axisMain(o, sz))
	cross := axisCross(o, sz)
	var pos float32
	for i, s := range sizes {
		off := axisPoint(o, pos, 0)
		rects[i] = f32.Rectangle{Min: off, Max: off.Add(axisPoint(o, s, cross))}
		pos += s
	}
	return rects
}

func axisPoint(o Orientation, main, cross float32) f32.Point {
	if o == Horizontal {
		return f32.Pt(main, cross)
	} else {
		return f32.Pt(cross, main)
	}
}

func axisMain(o Orientation, sz f32.Point) float32 {
	if o == Horizontal {
		return sz.X
	} else {
		return sz.Y
	}
}

func axisCross(o Orientation, sz f32.Point) float32 {
	if o == Horizontal {
		return sz.Y
	} else {
		return sz.X
	}
}

func (o Orientation) String() string {
	switch o {
	case Stack:
		return "Stack"
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("unreachable")
	}
}
