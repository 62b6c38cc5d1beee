// SPDX-License-Identifier: Unlicense OR MIT

package unit_test

import (
	"testing"

	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/unit"
)

func TestMetric(t *testing.T) {
	m := unit.Metric{PxPerDp: 2}
	if got := m.Dp(5); got != 10 {
		t.Errorf("Dp(5) = %v, want 10", got)
	}
	if got := m.PxToDp(m.Dp(5)); got != unit.Dp(5) {
		t.Errorf("PxToDp conversion mismatch 5dp != %v", got)
	}
	if got := m.PointToDp(f32.Pt(8, 3)); got != f32.Pt(4, 1.5) {
		t.Errorf("PointToDp = %v", got)
	}
	var zero unit.Metric
	if got := zero.PxToDp(7); got != 7 {
		t.Errorf("zero metric PxToDp(7) = %v, want 7", got)
	}
}
