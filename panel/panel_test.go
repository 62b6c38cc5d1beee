// SPDX-License-Identifier: Unlicense OR MIT

package panel

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/wagui/wag/actor"
	"github.com/wagui/wag/errors"
	"github.com/wagui/wag/f32"
	"github.com/wagui/wag/io/event"
	"github.com/wagui/wag/visual"
)

// goSpawner runs every task on its own goroutine.
type goSpawner struct {
	ctx    context.Context
	reject bool

	wg   sync.WaitGroup
	mu   sync.Mutex
	errs []error
}

func (s *goSpawner) Spawn(t Task) error {
	if s.reject {
		return errors.New(errors.ErrCodeSpawn, "pool saturated")
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := t(s.ctx); err != nil {
			s.mu.Lock()
			s.errs = append(s.errs, err)
			s.mu.Unlock()
		}
	}()
	return nil
}

// recorder is a Sink recording the events it receives.
type recorder struct {
	mu     sync.Mutex
	events []event.Event
	err    error
}

func (r *recorder) OnEvent(ctx context.Context, e event.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) received() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event.Event(nil), r.events...)
}

func TestSlotPlug(t *testing.T) {
	c := visual.NewMemCompositor()
	container := c.NewNode("cell")
	container.SetSize(f32.Pt(40, 30))
	s := NewSlot(container, "root/Ribbon_1")
	defer s.Close()

	child := c.NewNode("child")
	p, err := s.Plug(child)
	if err != nil {
		t.Fatal(err)
	}
	if sz, _ := child.Size(); sz != f32.Pt(40, 30) {
		t.Errorf("plugged visual size = %v, want (40,30)", sz)
	}
	if child.Parent() != visual.Node(container) {
		t.Fatalf("plugged visual not inserted into the slot container")
	}
	if err := p.Unplug(); err != nil {
		t.Fatal(err)
	}
	if child.Parent() != nil {
		t.Errorf("Unplug left the visual attached")
	}
	// Re-plugging the same visual elsewhere must not be undone by a
	// second Unplug of the old plug.
	container.Children().InsertTop(child)
	if err := p.Unplug(); err != nil {
		t.Fatal(err)
	}
	if child.Parent() == nil {
		t.Errorf("second Unplug removed the visual again")
	}
}

func TestUnplugAfterSlotClosed(t *testing.T) {
	c := visual.NewMemCompositor()
	container := c.NewNode("cell")
	s := NewSlot(container, "s")
	child := c.NewNode("child")
	p, err := s.Plug(child)
	if err != nil {
		t.Fatal(err)
	}
	s.Close()
	if err := p.Unplug(); err != nil {
		t.Errorf("Unplug after Close: %v", err)
	}
	if s.Name() != "(dropped)" || s.Container() != nil {
		t.Errorf("closed slot still reports its state")
	}
	if p.Slot().Alive() {
		t.Errorf("plug's slot reference alive after Close")
	}
}

func TestSlotLoosePlugging(t *testing.T) {
	c := visual.NewMemCompositor()
	container := c.NewNode("cell")
	s := NewSlot(container, "s")
	defer s.Close()
	a, b := c.NewNode("a"), c.NewNode("b")
	if _, err := s.Plug(a); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Plug(b); err != nil {
		t.Fatal(err)
	}
	if n := container.Children().Len(); n != 2 {
		t.Errorf("slot container has %d children, want both plugged visuals", n)
	}
}

func TestSlotResendOnSubscribe(t *testing.T) {
	c := visual.NewMemCompositor()
	container := c.NewNode("cell")
	s := NewSlot(container, "s")
	defer s.Close()
	ctx := context.Background()

	early := s.Subscribe()
	if err := s.Resize(ctx, f32.Pt(10, 20)); err != nil {
		t.Fatal(err)
	}
	if sz, _ := container.Size(); sz != f32.Pt(10, 20) {
		t.Errorf("Resize did not resize the container: %v", sz)
	}
	late := s.Subscribe()
	for name, st := range map[string]interface {
		Next(context.Context) (event.Event, bool)
	}{"early": early, "late": late} {
		e, ok := st.Next(ctx)
		if !ok {
			t.Fatalf("%s subscriber got no event", name)
		}
		if e.Data != (event.Resized{Size: f32.Pt(10, 20)}) {
			t.Errorf("%s subscriber got %v, want Resized(10,20)", name, e)
		}
	}
}

func TestSlotNoResendWithoutSize(t *testing.T) {
	c := visual.NewMemCompositor()
	s := NewSlot(c.NewNode("cell"), "s")
	defer s.Close()
	st := s.Subscribe()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if e, ok := st.Next(ctx); ok {
		t.Errorf("unsized slot resent %v", e)
	}
}

func TestRouterSequential(t *testing.T) {
	a, b := new(recorder), new(recorder)
	b.err = stderrors.New("boom")
	c := new(recorder)
	root := event.New(event.CursorMoved{Position: f32.Pt(1, 1)})
	ds := Fan([]Sink{a, b, c}, root, event.CursorMoved{Position: f32.Pt(2, 2)})
	err := Router{}.Deliver(context.Background(), ds)
	if err == nil || err.Error() != "boom" {
		t.Errorf("Deliver = %v, want boom", err)
	}
	if len(a.received()) != 1 || len(c.received()) != 0 {
		t.Errorf("sequential delivery did not stop at the failing sink")
	}
	got := a.received()[0]
	if got.Parent == nil || got.Parent.Data != root.Data {
		t.Errorf("delivered event lost its provenance")
	}
}

func TestRouterConcurrent(t *testing.T) {
	sinks := make([]Sink, 8)
	recs := make([]*recorder, len(sinks))
	for i := range sinks {
		recs[i] = new(recorder)
		sinks[i] = recs[i]
	}
	ds := Fan(sinks, event.New(event.Empty{}), event.Empty{})
	if err := (Router{Concurrent: true}).Deliver(context.Background(), ds); err != nil {
		t.Fatal(err)
	}
	for i, r := range recs {
		if n := len(r.received()); n != 1 {
			t.Errorf("sink %d received %d events, want 1", i, n)
		}
	}
}

func TestPolicyOf(t *testing.T) {
	if PolicyOf(event.New(event.MouseInput{})) != Focused {
		t.Errorf("mouse input is not routed to the focused child")
	}
	for _, d := range []event.Data{event.Resized{}, event.CursorMoved{}, event.Empty{}} {
		if PolicyOf(event.New(d)) != Broadcast {
			t.Errorf("%T is not broadcast", d)
		}
	}
}

func TestPipe(t *testing.T) {
	c := visual.NewMemCompositor()
	s := NewSlot(c.NewNode("cell"), "s")
	sp := &goSpawner{ctx: context.Background()}
	dst := new(recorder)
	err := Pipe(sp, "test", s.Subscribe(), func(ctx context.Context, e event.Event) (bool, error) {
		return true, dst.OnEvent(ctx, e)
	})
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		s.Resize(ctx, f32.Pt(float32(i), 1))
	}
	deadline := time.Now().Add(5 * time.Second)
	for len(dst.received()) < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	s.Close()
	sp.wg.Wait()
	got := dst.received()
	if len(got) != 3 {
		t.Fatalf("piped %d events, want 3", len(got))
	}
	for i, e := range got {
		if want := (event.Resized{Size: f32.Pt(float32(i+1), 1)}); e.Data != want {
			t.Errorf("event %d = %v, want %v", i, e, want)
		}
	}
	if len(sp.errs) != 0 {
		t.Errorf("pipe task failed: %v", sp.errs)
	}
}

func TestPipeStopsWhenDestinationGone(t *testing.T) {
	c := visual.NewMemCompositor()
	s := NewSlot(c.NewNode("cell"), "s")
	defer s.Close()
	sp := &goSpawner{ctx: context.Background()}
	src := s.Subscribe()
	Pipe(sp, "test", src, func(ctx context.Context, e event.Event) (bool, error) {
		return false, nil
	})
	s.Resize(context.Background(), f32.Pt(1, 1))
	sp.wg.Wait()
	if !src.Closed() {
		t.Errorf("pipe task left its source open")
	}
}

func TestPipeSpawnFailure(t *testing.T) {
	c := visual.NewMemCompositor()
	s := NewSlot(c.NewNode("cell"), "s")
	defer s.Close()
	src := s.Subscribe()
	err := Pipe(&goSpawner{reject: true}, "test", src, func(context.Context, event.Event) (bool, error) {
		return true, nil
	})
	if !errors.Is(err, errors.ErrCodeSpawn) {
		t.Errorf("Pipe = %v, want a spawn failure", err)
	}
	if !src.Closed() {
		t.Errorf("rejected pipe left its source open")
	}
}

func TestPipeError(t *testing.T) {
	c := visual.NewMemCompositor()
	s := NewSlot(c.NewNode("cell"), "s")
	defer s.Close()
	sp := &goSpawner{ctx: context.Background()}
	boom := stderrors.New("backend failure")
	src := s.Subscribe()
	Pipe(sp, "test", src, func(context.Context, event.Event) (bool, error) {
		return true, boom
	})
	s.Resize(context.Background(), f32.Pt(1, 1))
	sp.wg.Wait()
	if len(sp.errs) != 1 || sp.errs[0] != boom {
		t.Errorf("task errors = %v, want [%v]", sp.errs, boom)
	}
	if !src.Closed() {
		t.Errorf("failed pipe left its source open")
	}
}

// sizeless is a container whose size cannot be read.
type sizeless struct {
	*visual.MemNode
}

func (sizeless) Size() (f32.Point, error) {
	return f32.Point{}, stderrors.New("size unavailable")
}

func TestMountMove(t *testing.T) {
	ctx := context.Background()
	c := visual.NewMemCompositor()
	a := NewSlot(c.NewNode("a"), "a")
	b := NewSlot(c.NewNode("b"), "b")
	defer a.Close()
	defer b.Close()
	v := c.NewNode("v")
	sp := &goSpawner{ctx: ctx}
	dst := new(recorder)
	sink := func(ctx context.Context, e event.Event) (bool, error) {
		return true, dst.OnEvent(ctx, e)
	}
	var m Mount
	if err := m.Move(sp, a, v, sink); err != nil {
		t.Fatal(err)
	}
	if err := m.Move(sp, b, v, sink); err != nil {
		t.Fatalf("second Move: %v", err)
	}
	if n := a.Container().Children().Len(); n != 0 {
		t.Errorf("old slot has %d children, want 0", n)
	}
	if n := b.Container().Children().Len(); n != 1 {
		t.Errorf("new slot has %d children, want 1", n)
	}
	if s, ok := m.Slot(); !ok || s.Name() != "b" {
		t.Errorf("mounted in %q, %v; want b", s.Name(), ok)
	}

	a.Resize(ctx, f32.Pt(1, 1))
	b.Resize(ctx, f32.Pt(2, 2))
	deadline := time.Now().Add(5 * time.Second)
	for len(dst.received()) < 1 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if err := m.Unmount(); err != nil {
		t.Fatal(err)
	}
	sp.wg.Wait()
	got := dst.received()
	if len(got) != 1 || got[0].Data != (event.Resized{Size: f32.Pt(2, 2)}) {
		t.Errorf("received %v, want only the new slot's resize", got)
	}
	if n := b.Container().Children().Len(); n != 0 {
		t.Errorf("Unmount left %d children", n)
	}
}

func TestMountMoveFailure(t *testing.T) {
	ctx := context.Background()
	c := visual.NewMemCompositor()
	a := NewSlot(c.NewNode("a"), "a")
	broken := NewSlot(sizeless{c.NewNode("broken")}, "broken")
	defer a.Close()
	defer broken.Close()
	v := c.NewNode("v")
	sp := &goSpawner{ctx: ctx}
	var m Mount
	if err := m.Move(sp, a, v, func(context.Context, event.Event) (bool, error) {
		return true, nil
	}); err != nil {
		t.Fatal(err)
	}
	if err := m.Move(sp, broken, v, nil); err == nil {
		t.Fatal("Move into a broken slot succeeded")
	}
	if v.Parent() != a.Container() {
		t.Errorf("visual not restored to the old slot")
	}
	if s, ok := m.Slot(); !ok || s.Name() != "a" {
		t.Errorf("mounted in %q, %v; want a", s.Name(), ok)
	}
	m.Unmount()
	sp.wg.Wait()
}

func TestSubscribeDuringResize(t *testing.T) {
	ctx := context.Background()
	c := visual.NewMemCompositor()
	s := NewSlot(c.NewNode("cell"), "s")
	defer s.Close()
	const n = 200
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= n; i++ {
			s.Resize(ctx, f32.Pt(float32(i), 1))
		}
	}()
	var streams []*actor.Stream[event.Event]
	for i := 0; i < 20; i++ {
		streams = append(streams, s.Subscribe())
	}
	<-done
	for i, st := range streams {
		var last event.Data
		for {
			tctx, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
			e, ok := st.Next(tctx)
			cancel()
			if !ok {
				break
			}
			last = e.Data
		}
		if want := (event.Resized{Size: f32.Pt(n, 1)}); last != want {
			t.Errorf("stream %d last saw %v, want %v", i, last, want)
		}
	}
}
