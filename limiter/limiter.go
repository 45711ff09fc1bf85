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

// Package limiter paces the frame producer. The rate is the refresh rate of
// the current display mode, quantised to the refresh rate of the host display
// if the two are close enough.
package limiter

import (
	"sync/atomic"
	"time"
)

// Display is implemented by the window that frames are eventually shown on.
type Display interface {
	// returns the refresh rate of the host display and whether the rate
	// should be used for quantisation
	DisplayRefreshRate() (float32, bool)
}

// DefaultRefreshRate is used until SetRefreshRate() is called.
const DefaultRefreshRate = float32(60.0)

// MatchRefreshRate can be used with SetLimit() to indicate that the limit
// should equal the refresh rate.
const MatchRefreshRate float32 = -1.0

// rates within this fraction of the host display's refresh rate are quantised
// to the host rate
const quantisation = 0.04

type Limiter struct {
	// whether to wait each frame
	Active bool

	// the refresh rate of the requested display mode
	RefreshRate atomic.Value // float32

	// the frame rate after quantisation
	IdealFPS atomic.Value // float32

	// the value passed to SetLimit()
	requestedFPS atomic.Value // float32

	// the pulse performs the limiting. the ticker duration is reset when
	// SetLimit() is called
	pulse *time.Ticker

	// the pulse is used once every pulseCtLimit frames. frequent waits on a
	// ticker are less accurate than infrequent ones
	pulseCt      int
	pulseCtLimit int

	// pulse that performs the FPS measurement
	measuringPulse *time.Ticker
	measureTime    time.Time
	measureCt      int

	// the measured number of frames per second
	Measured atomic.Value // float32

	// nudge the limiter so that it doesn't wait for the specified number of
	// frames
	Nudge atomic.Int32

	display Display
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The refresh rate will be DefaultRefreshRate and the limit set to match the
// refresh rate.
func NewLimiter() *Limiter {
	lmtr := &Limiter{
		Active:         true,
		pulse:          time.NewTicker(time.Millisecond * 16),
		measuringPulse: time.NewTicker(time.Second),
	}
	lmtr.Measured.Store(float32(0.0))
	lmtr.IdealFPS.Store(float32(0.0))

	lmtr.SetRefreshRate(DefaultRefreshRate)

	return lmtr
}

// SetDisplay sets the display used for quantisation.
func (lmtr *Limiter) SetDisplay(display Display) {
	lmtr.display = display
	lmtr.SetLimit(lmtr.requestedFPS.Load().(float32))
}

// SetRefreshRate sets the refresh rate of the display mode being produced.
// The limit is changed if it was set with MatchRefreshRate.
func (lmtr *Limiter) SetRefreshRate(refreshRate float32) {
	lmtr.RefreshRate.Store(refreshRate)

	fps, ok := lmtr.requestedFPS.Load().(float32)
	if !ok || fps <= 0.0 {
		lmtr.SetLimit(MatchRefreshRate)
	}
}

// SetLimit sets the number of frames per second. Use MatchRefreshRate to
// indicate that the limit should equal the refresh rate.
func (lmtr *Limiter) SetLimit(fps float32) {
	lmtr.requestedFPS.Store(fps)

	if fps <= 0.0 {
		fps = lmtr.RefreshRate.Load().(float32)
	}

	// refresh rate probably hasn't been set
	if fps <= 0.0 {
		return
	}

	if lmtr.display != nil {
		if hz, ok := lmtr.display.DisplayRefreshRate(); ok {
			fps = Quantise(fps, hz)
		}
	}

	lmtr.IdealFPS.Store(fps)

	lmtr.pulseCt = 0
	lmtr.pulseCtLimit = 1 + int(fps/20)
	lmtr.pulse.Reset(time.Duration(float32(time.Second) / fps * float32(lmtr.pulseCtLimit)))

	lmtr.measureCt = 0
	lmtr.measureTime = time.Now()
}

// Quantise returns the host refresh rate if fps is within four percent of it.
// Otherwise fps is returned unchanged.
func Quantise(fps float32, hz float32) float32 {
	if hz <= 0.0 {
		return fps
	}
	if fps >= hz*(1-quantisation) && fps <= hz*(1+quantisation) {
		return hz
	}
	return fps
}

// CheckFrame should be called every frame.
func (lmtr *Limiter) CheckFrame() {
	lmtr.measureCt++

	nudge := lmtr.Nudge.Load()
	if nudge > 0 {
		lmtr.Nudge.Store(nudge - 1)
		return
	}

	if lmtr.Active {
		lmtr.pulseCt++
		if lmtr.pulseCt >= lmtr.pulseCtLimit {
			lmtr.pulseCt = 0
			<-lmtr.pulse.C
		}
	}
}

// MeasureActual measures the frame rate once per second. Calls in between
// return immediately.
func (lmtr *Limiter) MeasureActual() {
	select {
	case <-lmtr.measuringPulse.C:
		t := time.Now()
		m := float32(lmtr.measureCt) / float32(t.Sub(lmtr.measureTime).Seconds())
		lmtr.Measured.Store(m)
		lmtr.measureTime = t
		lmtr.measureCt = 0
	default:
	}
}

// Stop the limiter's tickers. The limiter should not be used afterwards.
func (lmtr *Limiter) Stop() {
	lmtr.pulse.Stop()
	lmtr.measuringPulse.Stop()
}
