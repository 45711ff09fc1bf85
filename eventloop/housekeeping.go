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

package eventloop

import (
	"context"
	"fmt"
	"time"

	"github.com/vidshim/vidshim/blitter"
	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/modeswitch"
	"github.com/vidshim/vidshim/version"
)

// Source is the part of the blitter read by Housekeeping. Every method must be
// safe to call from any goroutine.
type Source interface {
	Stats() blitter.Stats
	Paused() bool
	Mode() modeswitch.DisplayMode
	SetOSD(lines []string)
}

// Titler implementations accept title requests from any goroutine.
type Titler interface {
	SetTitle(title string)
}

// HousekeepingPeriod is the period between updates of the title and the
// on-screen display.
const HousekeepingPeriod = time.Second

// Housekeeping periodically updates the window title and on-screen display
// with the rate of presented and dropped frames.
type Housekeeping struct {
	src   Source
	title Titler

	// kind and session of the backend as shown in the on-screen display
	Kind    func() display.Kind
	Session func() display.Session

	prev     blitter.Stats
	prevTime time.Time

	// the most recent measurements
	FPS     float32
	Dropped float32
}

// NewHousekeeping is the preferred method of initialisation for the
// Housekeeping type.
func NewHousekeeping(src Source, title Titler) *Housekeeping {
	return &Housekeeping{
		src:   src,
		title: title,
	}
}

// Run updates the title and on-screen display every HousekeepingPeriod until
// the context is cancelled. Always returns nil.
func (hk *Housekeeping) Run(ctx context.Context) error {
	tck := time.NewTicker(HousekeepingPeriod)
	defer tck.Stop()

	hk.prev = hk.src.Stats()
	hk.prevTime = time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-tck.C:
			hk.tick(now)
		}
	}
}

func (hk *Housekeeping) tick(now time.Time) {
	stats := hk.src.Stats()

	elapsed := now.Sub(hk.prevTime).Seconds()
	if elapsed > 0 {
		hk.FPS = float32(float64(stats.Presented-hk.prev.Presented) / elapsed)
		hk.Dropped = float32(float64(stats.Dropped-hk.prev.Dropped) / elapsed)
	}

	hk.prev = stats
	hk.prevTime = now

	paused := hk.src.Paused()
	hk.title.SetTitle(Title(hk.FPS, hk.Dropped, paused))
	hk.src.SetOSD(hk.osd(stats, paused))
}

// Title returns the window title for the measured rates.
func Title(fps float32, dropped float32, paused bool) string {
	s := fmt.Sprintf("%s - %.1f fps - %.0f dropped", version.ApplicationName, fps, dropped)
	if paused {
		s = fmt.Sprintf("%s - PAUSED", s)
	}
	return s
}

func (hk *Housekeeping) osd(stats blitter.Stats, paused bool) []string {
	lines := []string{
		fmt.Sprintf("%.1f fps", hk.FPS),
		fmt.Sprintf("%d dropped (%.0f/s)", stats.Dropped, hk.Dropped),
	}

	if m := hk.src.Mode(); m.Valid() {
		lines = append(lines, m.String())
	}

	if hk.Kind != nil {
		s := hk.Kind().String()
		if hk.Session != nil {
			s = fmt.Sprintf("%s %s", s, hk.Session().Short())
		}
		lines = append(lines, s)
	}

	if paused {
		lines = append(lines, "PAUSED")
	}

	return lines
}
