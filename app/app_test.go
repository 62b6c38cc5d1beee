// SPDX-License-Identifier: Unlicense OR MIT

package app

import (
	"bytes"
	"context"
	stderrors "errors"
	"image"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/wagui/wag/errors"
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/io/pointer"
	"github.com/wagui/wag/io/system"
	"github.com/wagui/wag/layout"
	"github.com/wagui/wag/visual"
	"github.com/wagui/wag/widget"
)

func TestParseConfig(t *testing.T) {
	cnf, err := ParseConfig(`
title = "demo"
width = 320
log_level = "debug"
workers = 4
concurrent_fanout = true
`, Title("override"))
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultConfig()
	want.Title = "override"
	want.Width = 320
	want.LogLevel = "debug"
	want.Workers = 4
	want.ConcurrentFanout = true
	if cnf != want {
		t.Errorf("ParseConfig = %+v, want %+v", cnf, want)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"syntax", `width = `},
		{"unknown key", `colour = "red"`},
		{"size", `height = 0`},
		{"workers", `workers = -1`},
		{"queue", `queue_size = 0`},
		{"scale", `scale = 0.0`},
		{"level", `log_level = "chatty"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(tt.doc)
			if !errors.Is(err, errors.ErrCodeConfig) {
				t.Errorf("ParseConfig(%q) = %v, want a config error", tt.doc, err)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wag.toml")
	if err := os.WriteFile(path, []byte("title = \"file\"\nheight = 200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cnf, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cnf.Title != "file" || cnf.Height != 200 || cnf.Width != DefaultConfig().Width {
		t.Errorf("LoadConfig = %+v", cnf)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeConfig) {
		t.Errorf("loading a missing file: %v", err)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, log.InfoLevel)
	l.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug record written at info level: %q", buf.String())
	}
	l.Info("shown")
	if !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("info record missing: %q", buf.String())
	}
	if lvl, err := ParseLevel("warn"); err != nil || lvl != log.WarnLevel {
		t.Errorf("ParseLevel(warn) = %v, %v", lvl, err)
	}
}

func TestPoolSaturated(t *testing.T) {
	p := NewPool(context.Background(), 1)
	release := make(chan struct{})
	if err := p.Spawn(func(ctx context.Context) error {
		<-release
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	err := p.Spawn(func(context.Context) error { return nil })
	if !errors.Is(err, errors.ErrCodeSpawn) {
		t.Errorf("Spawn on a saturated pool = %v, want a spawn error", err)
	}
	close(release)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if err := p.Spawn(func(context.Context) error { return nil }); !errors.Is(err, errors.ErrCodeSpawn) {
		t.Errorf("Spawn on a closed pool = %v, want a spawn error", err)
	}
}

func TestPoolCancelOnError(t *testing.T) {
	p := NewPool(context.Background(), 0)
	boom := stderrors.New("boom")
	stopped := make(chan struct{})
	p.Spawn(func(ctx context.Context) error {
		<-ctx.Done()
		close(stopped)
		return nil
	})
	p.Spawn(func(context.Context) error { return boom })
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("sibling task not cancelled")
	}
	if err := p.Wait(); err != boom {
		t.Errorf("Wait = %v, want %v", err, boom)
	}
	if err := p.Close(); err != boom {
		t.Errorf("Close = %v, want %v", err, boom)
	}
}

func TestWindow(t *testing.T) {
	ctx := context.Background()
	comp := visual.NewMemCompositor()
	w, err := NewWindow(comp, DefaultConfig(), Size(300, 100))
	if err != nil {
		t.Fatal(err)
	}
	r, err := widget.NewRibbon(comp, layout.Horizontal)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	r.AddCell(ctx, layout.DefaultLimit())
	r.AddCell(ctx, layout.DefaultLimit())
	if err := w.SetItem(ctx, r); err != nil {
		t.Fatal(err)
	}
	if sz, _ := r.Size(); sz != f32.Pt(300, 100) {
		t.Errorf("item size = %v, want the window size", sz)
	}

	pool := NewPool(ctx, 0)
	events := w.Subscribe()
	if err := pool.Spawn(w.Run); err != nil {
		t.Fatal(err)
	}
	w.Queue(system.ResizeEvent{Size: image.Pt(400, 50)})
	w.Queue(system.CursorEvent{Position: f32.Pt(10, 10)})
	w.Queue(system.MouseEvent{State: pointer.Pressed, Button: pointer.ButtonPrimary})
	var got []event.Event
	for len(got) < 3 {
		tctx, cancel := context.WithTimeout(ctx, time.Second)
		e, ok := events.Next(tctx)
		cancel()
		if !ok {
			t.Fatalf("window dispatched %d events, want 3", len(got))
		}
		got = append(got, e)
	}
	if got[0].Window != (system.ResizeEvent{Size: image.Pt(400, 50)}) {
		t.Errorf("event does not carry its window event: %v", got[0])
	}
	if sz, _ := w.Root().Size(); sz != f32.Pt(400, 50) {
		t.Errorf("root size = %v, want (400,50)", sz)
	}
	if sz, _ := r.Cells()[1].Container().Size(); sz != f32.Pt(200, 50) {
		t.Errorf("cell size = %v, want (200,50)", sz)
	}

	w.Queue(system.CloseEvent{})
	select {
	case <-w.Done():
	case <-time.After(time.Second):
		t.Fatal("window did not close")
	}
	if err := pool.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Queue(system.FocusEvent{}); !errors.Is(err, errors.ErrCodeClosed) {
		t.Errorf("Queue after close = %v, want a closed error", err)
	}
	if w.Root().Children().Len() != 0 {
		t.Error("item still attached after close")
	}
}

func TestWindowMount(t *testing.T) {
	ctx := context.Background()
	comp := visual.NewMemCompositor()
	w, _ := NewWindow(comp, DefaultConfig())
	defer w.Close()
	pool := NewPool(ctx, 0)
	defer pool.Close()

	s, _ := widget.NewLayerStack(comp)
	defer s.Close()
	events := s.Subscribe()
	// Plugging into a sized slot replays its size first.
	if err := s.Mount(pool, w.Slot()); err != nil {
		t.Fatal(err)
	}
	pool.Spawn(w.Run)
	w.Queue(system.ResizeEvent{Size: image.Pt(20, 10)})
	for _, want := range []f32.Point{f32.Pt(800, 600), f32.Pt(20, 10)} {
		tctx, cancel := context.WithTimeout(ctx, time.Second)
		e, ok := events.Next(tctx)
		cancel()
		if !ok || e.Data != (event.Resized{Size: want}) {
			t.Fatalf("stack got %v, %v; want Resized%v", e, ok, want)
		}
	}
}

func TestWindowScale(t *testing.T) {
	ctx := context.Background()
	comp := visual.NewMemCompositor()
	cnf := DefaultConfig()
	cnf.Scale = 2
	w, err := NewWindow(comp, cnf)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	pool := NewPool(ctx, 0)
	defer pool.Close()
	events := w.Subscribe()
	pool.Spawn(w.Run)
	w.Queue(system.ResizeEvent{Size: image.Pt(400, 50)})
	w.Queue(system.CursorEvent{Position: f32.Pt(10, 4)})
	want := []event.Data{
		event.Resized{Size: f32.Pt(200, 25)},
		event.CursorMoved{Position: f32.Pt(5, 2)},
	}
	for _, d := range want {
		tctx, cancel := context.WithTimeout(ctx, time.Second)
		e, ok := events.Next(tctx)
		cancel()
		if !ok || e.Data != d {
			t.Fatalf("window dispatched %v, %v; want %v", e, ok, d)
		}
	}
	if sz, _ := w.Root().Size(); sz != f32.Pt(200, 25) {
		t.Errorf("root size = %v, want (200,25)", sz)
	}
}
