// This file is part of VidShim.
//
// VidShim is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// VidShim is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with VidShim.  If not, see <https://www.gnu.org/licenses/>.

package blitter_test

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vidshim/vidshim/assert"
	"github.com/vidshim/vidshim/blitter"
	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/display/nullvideo"
	"github.com/vidshim/vidshim/framering"
	"github.com/vidshim/vidshim/modeswitch"
	"github.com/vidshim/vidshim/test"
)

// backend is a display.Backend that records what it is asked to do
type backend struct {
	*nullvideo.Backend

	initErr    error
	presentErr error

	closed    bool
	viewports []image.Rectangle
	frames    []byte
	osd       []string
	resizes   []image.Point
}

func newBackend() *backend {
	return &backend{Backend: nullvideo.NewBackend(640, 480)}
}

func (b *backend) Kind() display.Kind {
	return display.Software
}

func (b *backend) Init() error {
	if b.initErr != nil {
		return b.initErr
	}
	return b.Backend.Init()
}

func (b *backend) Close() {
	b.closed = true
}

func (b *backend) Resize(w, h int) {
	b.resizes = append(b.resizes, image.Pt(w, h))
	b.Backend.Resize(w, h)
}

func (b *backend) Present(s *framering.Slot, viewport image.Rectangle) error {
	if b.presentErr != nil {
		return b.presentErr
	}
	b.viewports = append(b.viewports, viewport)
	b.frames = append(b.frames, s.Row(0)[0])
	return b.Backend.Present(s, viewport)
}

func (b *backend) SetOSD(lines []string) {
	b.osd = lines
}

type acks struct {
	n atomic.Int64
}

func (a *acks) ack() {
	a.n.Add(1)
}

func newBlitter(t *testing.T, a *acks, shots blitter.Screenshotter) *blitter.Blitter {
	t.Helper()
	blt, err := blitter.NewBlitter(blitter.Config{
		Slots:       3,
		Ack:         a.ack,
		Screenshots: shots,
	})
	test.DemandSuccess(t, err)
	return blt
}

// frame returns an RGBA image where every byte has the value v
func frame(w, h int, v byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func submit(blt *blitter.Blitter, img *image.RGBA) {
	blt.Submit(0, 0, img.Rect.Dx(), img.Rect.Dy(), img.Pix, img.Stride)
}

func TestSubmitAndDrop(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)
	b := newBackend()
	test.DemandSuccess(t, blt.Init(b))
	test.ExpectSuccess(t, blt.Enabled())
	test.ExpectFailure(t, blt.Pending())

	submit(blt, frame(64, 64, 1))
	w, r := blt.Positions()
	test.ExpectEquality(t, w, 1)
	test.ExpectEquality(t, r, 0)
	test.ExpectSuccess(t, blt.Pending())

	submit(blt, frame(64, 64, 2))
	w, _ = blt.Positions()
	test.ExpectEquality(t, w, 2)

	// third frame before any consume fills the final slot
	submit(blt, frame(64, 64, 3))
	w, _ = blt.Positions()
	test.ExpectEquality(t, w, 0)

	// fourth frame is dropped
	submit(blt, frame(64, 64, 4))
	w, _ = blt.Positions()
	test.ExpectEquality(t, w, 0)

	st := blt.Stats()
	test.ExpectEquality(t, st.Submitted, int64(3))
	test.ExpectEquality(t, st.Dropped, int64(1))
	test.ExpectEquality(t, st.Rejected, int64(0))
	test.ExpectEquality(t, a.n.Load(), int64(4))

	// frames are presented in the order they were submitted
	test.ExpectSuccess(t, blt.Render())
	test.ExpectSuccess(t, blt.Pending())
	_, r = blt.Positions()
	test.ExpectEquality(t, r, 1)

	// slot zero is free again
	submit(blt, frame(64, 64, 5))
	w, _ = blt.Positions()
	test.ExpectEquality(t, w, 1)

	test.ExpectSuccess(t, blt.Render())
	test.ExpectSuccess(t, blt.Render())
	test.ExpectSuccess(t, blt.Render())
	test.ExpectFailure(t, blt.Render())
	test.ExpectFailure(t, blt.Pending())

	test.DemandEquality(t, len(b.frames), 4)
	test.ExpectEquality(t, b.frames[0], byte(1))
	test.ExpectEquality(t, b.frames[1], byte(2))
	test.ExpectEquality(t, b.frames[2], byte(3))
	test.ExpectEquality(t, b.frames[3], byte(5))

	st = blt.Stats()
	test.ExpectEquality(t, st.Presented, int64(4))
	test.ExpectEquality(t, a.n.Load(), int64(5))

	test.ExpectEquality(t, blt.LastRequest(), blitter.BlitRequest{W: 64, H: 64})
}

func TestInvalidSubmissions(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)

	// submissions before Init() are rejected
	submit(blt, frame(64, 64, 1))
	test.ExpectEquality(t, a.n.Load(), int64(1))
	test.ExpectEquality(t, blt.Stats().Rejected, int64(1))

	test.DemandSuccess(t, blt.Init(newBackend()))

	img := frame(64, 64, 1)
	wide := make([]byte, (framering.MaxWidth+1)*framering.BytesPerPixel)

	cases := []struct {
		name       string
		x, y, w, h int
		src        []byte
		stride     int
	}{
		{name: "zero width", w: 0, h: 64, src: img.Pix, stride: img.Stride},
		{name: "zero height", w: 64, h: 0, src: img.Pix, stride: img.Stride},
		{name: "negative x", x: -1, w: 32, h: 32, src: img.Pix, stride: img.Stride},
		{name: "negative y", y: -1, w: 32, h: 32, src: img.Pix, stride: img.Stride},
		{name: "too wide", w: framering.MaxWidth + 1, h: 1, src: wide, stride: len(wide)},
		{name: "too tall", w: 1, h: framering.MaxHeight + 1, src: img.Pix, stride: img.Stride},
		{name: "outside stride", x: 32, w: 64, h: 1, src: img.Pix, stride: img.Stride},
		{name: "short source", y: 32, w: 64, h: 64, src: img.Pix, stride: img.Stride},
		{name: "nil source", w: 64, h: 64, stride: img.Stride},
		{name: "huge x", x: 1 << 61, w: 1, h: 1, src: make([]byte, 64), stride: 64},
		{name: "huge y", y: 1 << 60, w: 1, h: 1, src: make([]byte, 64), stride: 16},
		{name: "huge x and y", x: 1 << 62, y: 1 << 62, w: 1, h: 1, src: img.Pix, stride: img.Stride},
	}

	for i, c := range cases {
		blt.Submit(c.x, c.y, c.w, c.h, c.src, c.stride)
		test.ExpectEquality(t, a.n.Load(), int64(i+2), c.name)
		test.ExpectEquality(t, blt.Stats().Rejected, int64(i+2), c.name)
	}

	test.ExpectEquality(t, blt.Stats().Submitted, int64(0))
	w, r := blt.Positions()
	test.ExpectEquality(t, w, 0)
	test.ExpectEquality(t, r, 0)

	// a sub-rectangle of a larger image is fine
	blt.SubmitImage(image.Rect(16, 16, 48, 48), img)
	test.ExpectEquality(t, blt.Stats().Submitted, int64(1))
	test.ExpectSuccess(t, blt.Render())
	test.ExpectEquality(t, blt.LastRequest(), blitter.BlitRequest{X: 16, Y: 16, W: 32, H: 32})

	// nil image
	blt.SubmitImage(image.Rect(0, 0, 1, 1), nil)
	test.ExpectEquality(t, blt.Stats().Rejected, int64(len(cases)+2))

	// the last row of the source need only be long enough for the region
	short := img.Pix[:63*img.Stride+32*framering.BytesPerPixel]
	blt.Submit(0, 32, 32, 32, short, img.Stride)
	test.ExpectEquality(t, blt.Stats().Submitted, int64(2))
	blt.Submit(1, 32, 32, 32, short, img.Stride)
	blt.Submit(0, 33, 32, 32, short, img.Stride)
	test.ExpectEquality(t, blt.Stats().Submitted, int64(2))
	test.ExpectEquality(t, blt.Stats().Rejected, int64(len(cases)+4))
}

func TestRenderAffinity(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)
	test.DemandSuccess(t, blt.Init(newBackend()))

	// rendering from a goroutine other than the display thread is only
	// refused when assertions are built in
	submit(blt, frame(32, 32, 1))
	other := make(chan bool)
	go func() {
		other <- blt.Render()
	}()
	test.ExpectEquality(t, <-other, !assert.Enabled)

	if assert.Enabled {
		test.ExpectSuccess(t, blt.Render())
	}
}

func TestModeSwitch(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)
	b := newBackend()
	test.DemandSuccess(t, blt.Init(b))

	test.ExpectEquality(t, blt.ModeState(), modeswitch.Stable)

	// the latest request wins
	blt.RequestMode(modeswitch.DisplayMode{Width: 640, Height: 480, Refresh: 60})
	blt.RequestMode(modeswitch.DisplayMode{Width: 320, Height: 200, Refresh: 70})
	test.ExpectEquality(t, blt.ModeState(), modeswitch.SwitchRequested)
	test.ExpectSuccess(t, blt.Pending())

	// the switch happens on render even if there is no frame
	test.ExpectFailure(t, blt.Render())
	test.ExpectEquality(t, blt.ModeState(), modeswitch.Stable)

	m := blt.Mode()
	test.ExpectEquality(t, m.Width, 320)
	test.ExpectEquality(t, m.Height, 200)
	test.ExpectEquality(t, m.XScale, float32(2))
	test.ExpectEquality(t, m.YScale, float32(2))
	test.ExpectEquality(t, blt.Stats().Switches, int64(1))

	test.DemandEquality(t, len(b.resizes), 1)
	test.ExpectEquality(t, b.resizes[0], image.Pt(640, 400))

	// the presented frame fills the window at the scaled size
	submit(blt, frame(320, 200, 1))
	test.ExpectSuccess(t, blt.Render())
	test.DemandEquality(t, len(b.viewports), 1)
	test.ExpectEquality(t, b.viewports[0], image.Rect(0, 0, 640, 400))

	w, h := b.TextureSize()
	test.ExpectEquality(t, w, 320)
	test.ExpectEquality(t, h, 200)
}

func TestOSD(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)
	b := newBackend()
	test.DemandSuccess(t, blt.Init(b))

	blt.SetOSD([]string{"hello", "world"})
	submit(blt, frame(32, 32, 1))
	test.ExpectSuccess(t, blt.Render())

	test.DemandEquality(t, len(b.osd), 2)
	test.ExpectEquality(t, b.osd[0], "hello")
	test.ExpectEquality(t, b.osd[1], "world")
}

func TestPresentFailure(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)
	b := newBackend()
	b.presentErr = errors.New("device lost")
	test.DemandSuccess(t, blt.Init(b))
	test.ExpectEquality(t, blt.Kind(), display.Software)

	submit(blt, frame(32, 32, 1))
	test.ExpectFailure(t, blt.Render())

	test.ExpectSuccess(t, b.closed)
	test.ExpectEquality(t, blt.Kind(), display.Null)
	test.ExpectEquality(t, blt.Stats().Failures, int64(1))

	// the slot was released and the blitter carries on with the null backend
	_, r := blt.Positions()
	test.ExpectEquality(t, r, 1)

	submit(blt, frame(32, 32, 2))
	test.ExpectSuccess(t, blt.Render())
	test.ExpectEquality(t, a.n.Load(), int64(2))
}

func TestInitFailure(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)
	b := newBackend()
	b.initErr = errors.New("no display")

	err := blt.Init(b)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, blt.Kind(), display.Null)
	test.ExpectSuccess(t, blt.Enabled())

	submit(blt, frame(32, 32, 1))
	test.ExpectSuccess(t, blt.Render())
}

func TestClose(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)
	b := newBackend()
	test.DemandSuccess(t, blt.Init(b))
	session := blt.Session()
	test.ExpectFailure(t, session.IsZero())

	img := frame(64, 64, 1)

	const submissions = 1000

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range submissions {
			submit(blt, img)
		}
	}()

	// consume frames while the producer is running
	for range 10 {
		blt.Render()
	}

	blt.Close()
	test.ExpectSuccess(t, b.closed)
	test.ExpectFailure(t, blt.Enabled())

	wg.Wait()

	// every submission was acknowledged
	test.ExpectEquality(t, a.n.Load(), int64(submissions))
	st := blt.Stats()
	test.ExpectEquality(t, st.Submitted+st.Dropped+st.Rejected, int64(submissions))

	// nothing is presented after close
	test.ExpectFailure(t, blt.Render())

	// the blitter can be initialised again with a new session
	test.DemandSuccess(t, blt.Init(newBackend()))
	test.ExpectInequality(t, blt.Session(), session)
	submit(blt, img)
	test.ExpectSuccess(t, blt.Render())
}

// slowClose is a backend where Close() blocks until released. calls made to
// the backend after Close() has started are counted
type slowClose struct {
	*backend
	started chan bool
	release chan bool
	closing atomic.Bool
	late    atomic.Int64
}

func (b *slowClose) Close() {
	b.closing.Store(true)
	b.started <- true
	<-b.release
}

func (b *slowClose) touch() {
	if b.closing.Load() {
		b.late.Add(1)
	}
}

func (b *slowClose) ReloadOptions() {
	b.touch()
}

func (b *slowClose) Resize(w, h int) {
	b.touch()
}

func (b *slowClose) Pause(paused bool) {
	b.touch()
}

func (b *slowClose) SetFullscreen(fullscreen bool) {
	b.touch()
}

func (b *slowClose) Reinit() error {
	b.touch()
	return nil
}

func TestLifecycleDuringClose(t *testing.T) {
	var a acks
	blt := newBlitter(t, &a, nil)
	b := &slowClose{
		backend: newBackend(),
		started: make(chan bool),
		release: make(chan bool),
	}
	test.DemandSuccess(t, blt.Init(b))

	done := make(chan bool)
	go func() {
		blt.Close()
		done <- true
	}()

	<-b.started

	// the backend is being destroyed. none of these should reach it
	blt.ReloadOptions()
	blt.Resize(800, 600)
	blt.Pause(true)
	blt.SetFullscreen(true)
	blt.SetTitle("closing")
	blt.DeviceReset()

	close(b.release)
	<-done

	test.ExpectEquality(t, b.late.Load(), int64(0))
	test.ExpectEquality(t, blt.Kind(), display.Null)
	test.ExpectFailure(t, blt.Enabled())

	blt.ReloadOptions()
	test.ExpectEquality(t, b.late.Load(), int64(0))
}

type screenshots struct {
	size    image.Point
	w, h    int
	session string
	calls   int
}

func (s *screenshots) Save(pix []byte, w, h, stride int, size image.Point, session string) {
	s.calls++
	s.w = w
	s.h = h
	s.size = size
	s.session = session
}

func TestScreenshot(t *testing.T) {
	var a acks
	var shots screenshots
	blt := newBlitter(t, &a, &shots)
	test.DemandSuccess(t, blt.Init(newBackend()))

	submit(blt, frame(32, 32, 1))
	test.ExpectEquality(t, shots.calls, 0)

	blt.Screenshot()
	submit(blt, frame(320, 240, 1))
	test.ExpectEquality(t, shots.calls, 1)
	test.ExpectEquality(t, shots.w, 320)
	test.ExpectEquality(t, shots.h, 240)
	test.ExpectEquality(t, shots.size, image.Pt(320, 240))
	test.ExpectEquality(t, shots.session, blt.Session().Short())

	// one screenshot per request
	test.ExpectSuccess(t, blt.Render())
	submit(blt, frame(32, 32, 1))
	test.ExpectEquality(t, shots.calls, 1)
	test.ExpectEquality(t, blt.Stats().Screenshots, int64(1))
}

func BenchmarkSubmitRender(b *testing.B) {
	blt, err := blitter.NewBlitter(blitter.Config{})
	if err != nil {
		b.Fatal(err)
	}
	if err := blt.Init(nullvideo.NewBackend(640, 480)); err != nil {
		b.Fatal(err)
	}
	defer blt.Close()

	img := frame(640, 480, 1)

	b.ResetTimer()
	for range b.N {
		submit(blt, img)
		blt.Render()
	}
}
