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

package modeswitch

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vidshim/vidshim/assert"
	"github.com/vidshim/vidshim/logger"
)

// DisplayMode describes the timing of the emulated display and, once the mode
// has been applied, the scale factors used to present frames in that mode.
type DisplayMode struct {
	Width     int
	Height    int
	Refresh   float32
	Interlace bool

	// scale factors are set by Apply()
	XScale float32
	YScale float32
}

func (m DisplayMode) String() string {
	i := ""
	if m.Interlace {
		i = "i"
	}
	return fmt.Sprintf("%dx%d%s@%.2fHz", m.Width, m.Height, i, m.Refresh)
}

// Valid returns true if the mode has a non-zero size.
func (m DisplayMode) Valid() bool {
	return m.Width > 0 && m.Height > 0
}

// Resolver implementations find the nearest timing supported by the display
// for the requested mode.
type Resolver interface {
	Nearest(m DisplayMode) Timing
}

// Window is the part of the window that the Coordinator needs to apply a
// mode.
type Window interface {
	DrawableSize() (int, int)
	SetSize(w, h int)
}

// State of the Coordinator.
type State int

// List of valid State values.
const (
	Stable State = iota
	SwitchRequested
)

func (s State) String() string {
	switch s {
	case Stable:
		return "stable"
	case SwitchRequested:
		return "switch requested"
	}
	return "unknown"
}

// Coordinator serialises mode changes into the display thread.
type Coordinator struct {
	// the most recent request. nil if there is no request pending
	latch atomic.Pointer[DisplayMode]

	// the current mode and timing. only accessed by the display thread except
	// through Current() and Timing(), which load the atomic copies
	current atomic.Pointer[DisplayMode]
	timing  atomic.Pointer[Timing]

	// number of switches applied
	Switches atomic.Int64

	display assert.Affinity
}

// NewCoordinator is the preferred method of initialisation for the
// Coordinator type.
func NewCoordinator() *Coordinator {
	c := &Coordinator{}
	c.current.Store(&DisplayMode{})
	c.timing.Store(&Timing{})
	return c
}

// BindDisplayThread restricts Apply() to the calling goroutine.
func (c *Coordinator) BindDisplayThread() {
	c.display.Bind()
}

// Request a new display mode. The request replaces any request that has not
// yet been applied. Safe to call from any goroutine.
func (c *Coordinator) Request(m DisplayMode) {
	m.XScale = 0
	m.YScale = 0
	c.latch.Store(&m)
}

// State returns the state of the Coordinator.
func (c *Coordinator) State() State {
	if c.latch.Load() != nil {
		return SwitchRequested
	}
	return Stable
}

// Current returns the most recently applied mode, including scale factors.
// The zero value is returned if no mode has been applied.
func (c *Coordinator) Current() DisplayMode {
	return *c.current.Load()
}

// Timing returns the display timing chosen for the current mode.
func (c *Coordinator) Timing() Timing {
	return *c.timing.Load()
}

// Apply the latched mode, if there is one. Returns true if a mode was
// applied. The window may be nil, in which case no resize takes place and the
// scale factors are calculated from the resolved timing only.
//
// Must only be called on the display thread.
func (c *Coordinator) Apply(resolver Resolver, win Window) bool {
	if c.latch.Load() == nil {
		return false
	}

	if !c.display.Check() {
		logger.Log(logger.Allow, "modeswitch", "apply called from outside the display thread")
		return false
	}

	m := c.latch.Swap(nil)
	if m == nil {
		return false
	}

	start := time.Now()
	logger.Logf(logger.Allow, "modeswitch", "mode detected %s", m)

	t := resolver.Nearest(*m)

	if win != nil {
		w, h := win.DrawableSize()
		if w != t.Width || h != t.Height {
			win.SetSize(t.Width, t.Height)
		}
	}

	m.XScale = scale(t.Width, m.Width)
	m.YScale = scale(t.Height, m.Height)

	c.current.Store(m)
	c.timing.Store(&t)
	c.Switches.Add(1)

	logger.Logf(logger.Allow, "modeswitch", "mode applied %s (scale %.2fx%.2f) in %v", t, m.XScale, m.YScale, time.Since(start))

	return true
}

// scale returns the factor needed to scale the logical size to the display
// size. if the display is larger than the logical size then the factor is an
// integer, so that every emulated pixel is the same size.
func scale(display int, logical int) float32 {
	if logical <= 0 || display <= 0 {
		return 1.0
	}
	if display >= logical {
		return float32(display / logical)
	}
	return float32(display) / float32(logical)
}
