// SPDX-License-Identifier: Unlicense OR MIT

/*
Package unit implements device independent units.

Device independent pixel, or dp, is the unit of the layout. Window
events arrive in pixels, px, whose size varies between platforms and
displays; a Metric converts between the two.
*/
package unit

import (
	"fmt"

	"github.com/wagui/wag/f32"
)

// Metric converts between pixels and device independent pixels.
type Metric struct {
	// PxPerDp is the device dependent density of a dp. The zero
	// value means one pixel per dp.
	PxPerDp float32
}

// Dp represents device independent pixels. 1 dp has the same apparent
// size across platforms and display resolutions.
type Dp float32

// Dp converts v to pixels.
func (m Metric) Dp(v Dp) float32 {
	return float32(v) * nonZero(m.PxPerDp)
}

// PxToDp converts px pixels to dp.
func (m Metric) PxToDp(px float32) Dp {
	return Dp(px / nonZero(m.PxPerDp))
}

// PointToDp converts a point in pixels to a point in dp.
func (m Metric) PointToDp(p f32.Point) f32.Point {
	return f32.Pt(float32(m.PxToDp(p.X)), float32(m.PxToDp(p.Y)))
}

func (v Dp) String() string {
	return fmt.Sprintf("%gdp", float32(v))
}

func nonZero(v float32) float32 {
	if v == 0. {
		return 1
	}
	return v
}
