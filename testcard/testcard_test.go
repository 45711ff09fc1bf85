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

package testcard

import (
	"context"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/vidshim/vidshim/modeswitch"
	"github.com/vidshim/vidshim/test"
)

type submitter struct {
	ack     chan struct{}
	regions []image.Rectangle
	modes   []modeswitch.DisplayMode
}

func newSubmitter() *submitter {
	return &submitter{ack: make(chan struct{}, 1)}
}

func (s *submitter) SubmitImage(r image.Rectangle, img *image.RGBA) {
	s.regions = append(s.regions, r)
	s.ack <- struct{}{}
}

func (s *submitter) RequestMode(m modeswitch.DisplayMode) {
	s.modes = append(s.modes, m)
}

type pacer struct {
	rates  []float32
	checks int
}

func (p *pacer) SetRefreshRate(refreshRate float32) {
	p.rates = append(p.rates, refreshRate)
}

func (p *pacer) CheckFrame() {
	p.checks++
}

func (p *pacer) MeasureActual() {
}

func TestParsePattern(t *testing.T) {
	for _, p := range []Pattern{Bars, Grid, Ramp, Noise} {
		q, err := ParsePattern(p.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, q, p)
	}
	_, err := ParsePattern("checkerboard")
	test.ExpectFailure(t, err)
}

func TestInvalidMode(t *testing.T) {
	_, err := NewCard(Config{Mode: modeswitch.DisplayMode{Width: 0, Height: 480}})
	test.ExpectFailure(t, err)
	_, err = NewCard(Config{Mode: modeswitch.DisplayMode{Width: 4096, Height: 480}})
	test.ExpectFailure(t, err)
}

func TestRunFrames(t *testing.T) {
	c, err := NewCard(Config{
		Pattern: Bars,
		Mode:    modeswitch.DisplayMode{Width: 640, Height: 480, Refresh: 60},
		Frames:  10,
	})
	test.DemandSuccess(t, err)

	sub := newSubmitter()
	var pc pacer

	err = c.Run(context.Background(), sub, sub.ack, &pc)
	test.ExpectSuccess(t, err)

	test.ExpectEquality(t, len(sub.regions), 10)
	test.ExpectEquality(t, pc.checks, 10)
	test.ExpectEquality(t, sub.regions[0], image.Rect(0, 0, 640, 480))
	test.ExpectEquality(t, len(sub.modes), 1)
	test.ExpectEquality(t, pc.rates[0], float32(60))
}

func TestCycle(t *testing.T) {
	c, err := NewCard(Config{
		Pattern:     Grid,
		Mode:        Script[0],
		Cycle:       true,
		CycleFrames: 3,
		Frames:      13,
	})
	test.DemandSuccess(t, err)

	sub := newSubmitter()
	var pc pacer

	err = c.Run(context.Background(), sub, sub.ack, &pc)
	test.ExpectSuccess(t, err)

	// the initial mode and then a change at frames 3, 6, 9 and 12
	test.DemandEquality(t, len(sub.modes), 5)
	test.ExpectEquality(t, sub.modes[1], Script[1])
	test.ExpectEquality(t, sub.modes[2], Script[2])
	test.ExpectEquality(t, sub.modes[3], Script[3])
	test.ExpectEquality(t, sub.modes[4], Script[0])
	test.ExpectEquality(t, pc.rates[1], float32(70))

	// the submitted region follows the mode. interlaced modes are submitted
	// one field at a time
	test.ExpectEquality(t, sub.regions[3], image.Rect(0, 0, 320, 200))
	test.ExpectEquality(t, sub.regions[6], image.Rect(0, 0, 720, 400))
	test.ExpectEquality(t, sub.regions[9], image.Rect(0, 0, 640, 240))
	test.ExpectEquality(t, sub.regions[12], image.Rect(0, 0, 640, 480))
}

func TestCancel(t *testing.T) {
	c, err := NewCard(Config{Mode: Script[0]})
	test.DemandSuccess(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	// a submitter that never acknowledges
	sub := &submitter{ack: make(chan struct{}, 1000)}
	ack := make(chan struct{})

	done := make(chan error)
	go func() {
		done <- c.Run(ctx, sub, ack, &pacer{})
	}()

	cancel()

	select {
	case err := <-done:
		test.ExpectSuccess(t, err)
	case <-time.After(time.Second):
		t.Errorf("testcard did not stop")
	}
}

func TestPatterns(t *testing.T) {
	c, err := NewCard(Config{Pattern: Bars, Mode: modeswitch.DisplayMode{Width: 70, Height: 10}})
	test.DemandSuccess(t, err)

	img := c.Image()

	// the first row is the moving white line on the first frame
	c.Draw()
	test.ExpectEquality(t, img.RGBAAt(35, 0).R, uint8(0xff))
	test.ExpectEquality(t, img.RGBAAt(35, 0).B, uint8(0xff))

	// the fourth bar is green
	px := img.RGBAAt(35, 5)
	test.ExpectEquality(t, px.R, uint8(0x00))
	test.ExpectEquality(t, px.G, uint8(0xc0))
	test.ExpectEquality(t, px.B, uint8(0x00))
	test.ExpectEquality(t, px.A, uint8(0xff))

	// the line has moved down
	c.Draw()
	test.ExpectEquality(t, img.RGBAAt(35, 0).G, uint8(0xc0))
	test.ExpectEquality(t, img.RGBAAt(35, 1).R, uint8(0xff))

	// grid has a red border
	c.cfg.Pattern = Grid
	c.Draw()
	test.ExpectEquality(t, img.RGBAAt(0, 5), color.RGBA{R: 0xff, A: 0xff})
}

func TestNoise(t *testing.T) {
	a, err := NewCard(Config{Pattern: Noise, Mode: modeswitch.DisplayMode{Width: 32, Height: 32}})
	test.DemandSuccess(t, err)
	b, err := NewCard(Config{Pattern: Noise, Mode: modeswitch.DisplayMode{Width: 32, Height: 32}})
	test.DemandSuccess(t, err)

	a.rnd.ZeroSeed = true
	b.rnd.ZeroSeed = true

	a.Draw()
	b.Draw()

	// the same frame gives the same noise
	for y := 0; y < 32; y++ {
		test.ExpectEquality(t, a.Image().RGBAAt(7, y), b.Image().RGBAAt(7, y))
	}
}
