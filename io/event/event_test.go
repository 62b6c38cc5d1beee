// SPDX-License-Identifier: Unlicense OR MIT

package event

import (
	"image"
	"testing"

	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/pointer"
	"github.com/wagui/wag/io/system"
)

func TestFromWindowEvent(t *testing.T) {
	tests := []struct {
		in   system.Event
		want Data
	}{
		{system.ResizeEvent{Size: image.Pt(800, 600)}, Resized{Size: f32.Pt(800, 600)}},
		{system.CursorEvent{Position: f32.Pt(3, 4)}, CursorMoved{Position: f32.Pt(3, 4)}},
		{
			system.MouseEvent{State: pointer.Pressed, Button: pointer.ButtonSecondary},
			MouseInput{InBounds: true, State: pointer.Pressed, Button: pointer.ButtonSecondary},
		},
		{system.FocusEvent{Focus: true}, Empty{}},
	}
	for _, tc := range tests {
		e := FromWindowEvent(tc.in)
		if e.Data != tc.want {
			t.Errorf("FromWindowEvent(%#v).Data = %#v, want %#v", tc.in, e.Data, tc.want)
		}
		if e.Window != tc.in || e.Parent != nil {
			t.Errorf("FromWindowEvent(%#v) lost its provenance", tc.in)
		}
	}
}

func TestDeriveKeepsParentIntact(t *testing.T) {
	root := FromWindowEvent(system.ResizeEvent{Size: image.Pt(100, 50)})
	child := root.Derive(Resized{Size: f32.Pt(50, 50)})
	grandchild := child.Derive(Resized{Size: f32.Pt(25, 50)})

	if root.Data != (Resized{Size: f32.Pt(100, 50)}) {
		t.Errorf("Derive modified the parent: %v", root)
	}
	if grandchild.Depth() != 2 {
		t.Errorf("Depth = %d, want 2", grandchild.Depth())
	}
	if grandchild.Parent.Parent.Data != root.Data {
		t.Errorf("provenance chain does not reach the root event")
	}
	if grandchild.Window != root.Window {
		t.Errorf("window event not carried to derived events")
	}
}
