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
	"math"
)

// Timing is a display timing supported by the host display.
type Timing struct {
	Width     int
	Height    int
	Refresh   float32
	Interlace bool
}

func (t Timing) String() string {
	i := ""
	if t.Interlace {
		i = "i"
	}
	return fmt.Sprintf("%dx%d%s@%.2fHz", t.Width, t.Height, i, t.Refresh)
}

// The range within which a refresh rate is considered a match.
const refreshTolerance = 0.04

func refreshMatch(a, b float32) bool {
	return a >= b*(1-refreshTolerance) && a <= b*(1+refreshTolerance)
}

// TimingTable is an implementation of the Resolver interface.
type TimingTable struct {
	Timings []Timing

	// replace the requested height with 240 (or 480 for interlaced modes)
	FixedHeight bool

	// the refresh rate of the host display. if the requested refresh rate is
	// within four percent of the host rate then the host rate is used. a
	// value of zero disables quantisation
	HostRefresh float32
}

// DesktopTimings is a list of timings that should be supported by most
// desktop displays.
var DesktopTimings = []Timing{
	{Width: 640, Height: 400, Refresh: 70},
	{Width: 640, Height: 480, Refresh: 60},
	{Width: 720, Height: 400, Refresh: 70},
	{Width: 800, Height: 600, Refresh: 60},
	{Width: 1024, Height: 768, Refresh: 60},
	{Width: 1280, Height: 960, Refresh: 60},
	{Width: 1280, Height: 1024, Refresh: 60},
	{Width: 1600, Height: 1200, Refresh: 60},
	{Width: 1920, Height: 1080, Refresh: 60},
}

// LowFrequencyTimings is a list of "super resolution" timings for displays
// driven at 15kHz. The width is large so that every emulated width can be
// scaled horizontally by an integer factor.
var LowFrequencyTimings = []Timing{
	{Width: 2560, Height: 240, Refresh: 59.70},
	{Width: 2560, Height: 240, Refresh: 50.00},
	{Width: 2560, Height: 480, Refresh: 59.70, Interlace: true},
	{Width: 2560, Height: 480, Refresh: 50.00, Interlace: true},
}

// NewDesktopTable returns a TimingTable suitable for desktop displays.
func NewDesktopTable(hostRefresh float32) *TimingTable {
	return &TimingTable{
		Timings:     DesktopTimings,
		HostRefresh: hostRefresh,
	}
}

// NewLowFrequencyTable returns a TimingTable suitable for 15kHz displays.
func NewLowFrequencyTable() *TimingTable {
	return &TimingTable{
		Timings:     LowFrequencyTimings,
		FixedHeight: true,
	}
}

// Nearest implements the Resolver interface.
//
// Candidate timings are those with the same interlace flag as the request and
// with a refresh rate within four percent of the requested rate. If there are
// no such timings then the restriction is relaxed, first on the refresh rate
// and then on the interlace flag. From the candidates, the smallest timing
// that the request fits into is chosen. If the request fits in no timing then
// the largest timing is chosen.
func (tab *TimingTable) Nearest(m DisplayMode) Timing {
	w := m.Width
	h := m.Height
	if tab.FixedHeight {
		if m.Interlace {
			h = 480
		} else {
			h = 240
		}
	}

	refresh := m.Refresh
	if tab.HostRefresh > 0 && refreshMatch(refresh, tab.HostRefresh) {
		refresh = tab.HostRefresh
	}

	// the request if there are no timings at all
	if len(tab.Timings) == 0 {
		return Timing{Width: w, Height: h, Refresh: refresh, Interlace: m.Interlace}
	}

	filter := func(interlace bool, matchRefresh bool) []Timing {
		var c []Timing
		for _, t := range tab.Timings {
			if interlace && t.Interlace != m.Interlace {
				continue
			}
			if matchRefresh && !refreshMatch(t.Refresh, refresh) {
				continue
			}
			c = append(c, t)
		}
		return c
	}

	candidates := filter(true, true)
	if len(candidates) == 0 {
		candidates = filter(true, false)
	}
	if len(candidates) == 0 {
		candidates = tab.Timings
	}

	var best Timing
	bestCost := math.MaxInt
	bestFits := false
	var bestRefresh float64

	for _, t := range candidates {
		fits := t.Width >= w && t.Height >= h
		var cost int
		if fits {
			cost = (t.Width - w) + (t.Height - h)
		} else {
			// larger timings are better when nothing fits
			cost = -(t.Width * t.Height)
		}
		rd := math.Abs(float64(t.Refresh - refresh))

		better := false
		switch {
		case fits && !bestFits:
			better = true
		case fits != bestFits:
			better = false
		case cost < bestCost:
			better = true
		case cost == bestCost && rd < bestRefresh:
			better = true
		}

		if better {
			best = t
			bestCost = cost
			bestFits = fits
			bestRefresh = rd
		}
	}

	if tab.HostRefresh > 0 && refreshMatch(best.Refresh, tab.HostRefresh) {
		best.Refresh = tab.HostRefresh
	}

	return best
}
