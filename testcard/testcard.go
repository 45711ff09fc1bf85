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

	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/framering"
	"github.com/vidshim/vidshim/logger"
	"github.com/vidshim/vidshim/modeswitch"
	"github.com/vidshim/vidshim/random"
)

// Script is the sequence of modes used when cycling.
var Script = []modeswitch.DisplayMode{
	{Width: 640, Height: 480, Refresh: 60},
	{Width: 320, Height: 200, Refresh: 70},
	{Width: 720, Height: 400, Refresh: 70},
	{Width: 640, Height: 480, Refresh: 60, Interlace: true},
}

// DefaultCycleFrames is the number of frames between mode changes when
// cycling.
const DefaultCycleFrames = 300

// Submitter is the part of the blitter used by the Card.
type Submitter interface {
	SubmitImage(r image.Rectangle, img *image.RGBA)
	RequestMode(m modeswitch.DisplayMode)
}

// Pacer is the part of the limiter used by the Card.
type Pacer interface {
	SetRefreshRate(refreshRate float32)
	CheckFrame()
	MeasureActual()
}

// Config for a new Card.
type Config struct {
	Pattern Pattern

	// the initial display mode
	Mode modeswitch.DisplayMode

	// request a new mode from Script every CycleFrames frames. the
	// DefaultCycleFrames value is used if CycleFrames is zero
	Cycle       bool
	CycleFrames int

	// the number of frames to produce before Run() returns. zero means
	// produce until the context is cancelled
	Frames int
}

// Card produces frames.
type Card struct {
	cfg Config

	src  *image.RGBA
	mode modeswitch.DisplayMode

	frame int
	rnd   *random.Random

	// position in Script when cycling
	script int
}

// NewCard is the preferred method of initialisation for the Card type.
func NewCard(cfg Config) (*Card, error) {
	if cfg.Mode.Width <= 0 || cfg.Mode.Height <= 0 ||
		cfg.Mode.Width > framering.MaxWidth || cfg.Mode.Height > framering.MaxHeight {
		return nil, curated.Errorf("testcard: invalid mode: %v", cfg.Mode)
	}
	if cfg.CycleFrames <= 0 {
		cfg.CycleFrames = DefaultCycleFrames
	}

	c := &Card{
		cfg:  cfg,
		src:  image.NewRGBA(image.Rect(0, 0, framering.MaxWidth, framering.MaxHeight)),
		mode: cfg.Mode,
	}
	c.rnd = random.NewRandom(c)

	return c, nil
}

// FrameNum implements the random.Frame interface.
func (c *Card) FrameNum() int {
	return c.frame
}

// Mode returns the current display mode of the card.
func (c *Card) Mode() modeswitch.DisplayMode {
	return c.mode
}

// Image returns the framebuffer. Only the region returned by the most recent
// call to Draw() is valid.
func (c *Card) Image() *image.RGBA {
	return c.src
}

// visible size of the frame. an interlaced mode is drawn one field at a time
func (c *Card) size() (int, int) {
	if c.mode.Interlace {
		return c.mode.Width, c.mode.Height / 2
	}
	return c.mode.Width, c.mode.Height
}

// Draw the next frame. Returns the region of the framebuffer that was drawn.
func (c *Card) Draw() image.Rectangle {
	w, h := c.size()

	switch c.cfg.Pattern {
	case Bars:
		drawBars(c.src.Pix, w, h, c.frame)
	case Grid:
		drawGrid(c.src.Pix, w, h, c.frame)
	case Ramp:
		drawRamp(c.src.Pix, w, h, c.frame)
	case Noise:
		drawNoise(c.src.Pix, w, h, c.rnd.Source().Uint32)
	}

	c.frame++

	return image.Rect(0, 0, w, h)
}

// advance the mode if cycling and the frame is on a cycle boundary. returns
// true if the mode has changed
func (c *Card) cycle() bool {
	if !c.cfg.Cycle || c.frame == 0 || c.frame%c.cfg.CycleFrames != 0 {
		return false
	}
	c.script = (c.script + 1) % len(Script)
	c.mode = Script[c.script]
	return true
}

// Run produces frames until the context is cancelled or until the configured
// number of frames has been produced. The ack channel must receive once for
// every frame submitted. Returns nil if the context was cancelled.
func (c *Card) Run(ctx context.Context, sub Submitter, ack <-chan struct{}, pace Pacer) error {
	logger.Logf(logger.Allow, "testcard", "%s pattern at %v", c.cfg.Pattern, c.mode)

	sub.RequestMode(c.mode)
	pace.SetRefreshRate(c.mode.Refresh)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if c.cfg.Frames > 0 && c.frame >= c.cfg.Frames {
			logger.Logf(logger.Allow, "testcard", "%d frames produced", c.frame)
			return nil
		}

		if c.cycle() {
			logger.Logf(logger.Allow, "testcard", "changing mode to %v", c.mode)
			sub.RequestMode(c.mode)
			pace.SetRefreshRate(c.mode.Refresh)
		}

		sub.SubmitImage(c.Draw(), c.src)

		select {
		case <-ack:
		case <-ctx.Done():
			return nil
		}

		pace.CheckFrame()
		pace.MeasureActual()
	}
}
