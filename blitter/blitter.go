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

package blitter

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/vidshim/vidshim/assert"
	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/display/nullvideo"
	"github.com/vidshim/vidshim/framering"
	"github.com/vidshim/vidshim/geometry"
	"github.com/vidshim/vidshim/modeswitch"
)

// BlitRequest is the region of the emulated framebuffer most recently
// submitted.
type BlitRequest struct {
	X, Y, W, H int
}

func (r BlitRequest) String() string {
	return fmt.Sprintf("%dx%d at %d,%d", r.W, r.H, r.X, r.Y)
}

// Screenshotter is implemented by types that can save the pixels of a frame.
// The pixel data must be copied before Save() returns.
type Screenshotter interface {
	Save(pix []byte, w, h, stride int, size image.Point, session string)
}

// Config for a new Blitter.
type Config struct {
	// number of slots in the frame ring. DefaultSlots if zero
	Slots int

	// called exactly once for every call to Submit()
	Ack func()

	// finds the nearest display timing for a mode switch. a desktop timing
	// table is used if nil
	Resolver modeswitch.Resolver

	// returns the stretch mode to use when presenting. if nil then
	// StretchFull is used
	Stretch func() geometry.Stretch

	// saves screenshots. screenshots are not possible if nil
	Screenshots Screenshotter
}

// Blitter connects the emulation goroutine to a display backend.
type Blitter struct {
	crit sync.Mutex

	// the active backend. replaced by the null backend on failure. guarded
	// by crit
	backend display.Backend
	session display.Session

	// short form of the session for use by Submit()
	shortSession atomic.Pointer[string]

	ring     *framering.Ring
	requests []BlitRequest

	// the request of the most recently presented slot. guarded by crit
	presented BlitRequest

	modes    *modeswitch.Coordinator
	resolver modeswitch.Resolver
	stretch  func() geometry.Stretch

	ack   func()
	shots Screenshotter

	enabled    atomic.Bool
	pending    atomic.Bool
	screenshot atomic.Bool
	paused     atomic.Bool

	// number of Submit() calls in progress. Close() waits for this to reach
	// zero before destroying the backend
	inflight atomic.Int32

	osd atomic.Pointer[[]string]

	stats stats

	display assert.Affinity
}

// DefaultSlots is the number of slots in the frame ring.
const DefaultSlots = framering.DefaultSlots

// NewBlitter is the preferred method of initialisation for the Blitter type.
// The blitter is disabled until Init() is called.
func NewBlitter(cfg Config) (*Blitter, error) {
	ring, err := framering.NewRing(cfg.Slots, nil)
	if err != nil {
		return nil, err
	}

	blt := &Blitter{
		backend:  nullvideo.NewBackend(0, 0),
		ring:     ring,
		requests: make([]BlitRequest, ring.Len()),
		modes:    modeswitch.NewCoordinator(),
		resolver: cfg.Resolver,
		stretch:  cfg.Stretch,
		ack:      cfg.Ack,
		shots:    cfg.Screenshots,
	}

	if blt.resolver == nil {
		blt.resolver = modeswitch.NewDesktopTable(0)
	}
	if blt.stretch == nil {
		blt.stretch = func() geometry.Stretch { return geometry.StretchFull }
	}

	return blt, nil
}

// Enabled returns true if the blitter has been initialised and not closed.
func (blt *Blitter) Enabled() bool {
	return blt.enabled.Load()
}

// Pending returns true if there may be a frame ready to be rendered.
func (blt *Blitter) Pending() bool {
	return blt.pending.Load()
}

// Kind returns the kind of the active backend.
func (blt *Blitter) Kind() display.Kind {
	blt.crit.Lock()
	defer blt.crit.Unlock()
	return blt.backend.Kind()
}

// Session returns the session of the active backend.
func (blt *Blitter) Session() display.Session {
	blt.crit.Lock()
	defer blt.crit.Unlock()
	return blt.session
}

// Mode returns the current display mode.
func (blt *Blitter) Mode() modeswitch.DisplayMode {
	return blt.modes.Current()
}

// ModeState returns the state of the mode switch coordinator.
func (blt *Blitter) ModeState() modeswitch.State {
	return blt.modes.State()
}

// RequestMode latches a new display mode. The mode is applied by the display
// thread before the next frame is presented. Safe to call from any goroutine.
func (blt *Blitter) RequestMode(m modeswitch.DisplayMode) {
	blt.modes.Request(m)
	blt.pending.Store(true)
}

// Screenshot requests that the next submitted frame is saved.
func (blt *Blitter) Screenshot() {
	blt.screenshot.Store(true)
}

// Paused returns true if the blitter has been paused with Pause().
func (blt *Blitter) Paused() bool {
	return blt.paused.Load()
}

// SetOSD sets the lines of text to be drawn by backends that support an
// on-screen display. Safe to call from any goroutine.
func (blt *Blitter) SetOSD(lines []string) {
	blt.osd.Store(&lines)
}

// LastRequest returns the region of the most recently presented frame.
func (blt *Blitter) LastRequest() BlitRequest {
	blt.crit.Lock()
	defer blt.crit.Unlock()
	return blt.presented
}

// Positions returns the write and read positions of the frame ring.
func (blt *Blitter) Positions() (int, int) {
	return blt.ring.Positions()
}
