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
	"sync/atomic"
)

type stats struct {
	submitted   atomic.Int64
	dropped     atomic.Int64
	rejected    atomic.Int64
	presented   atomic.Int64
	screenshots atomic.Int64
	failures    atomic.Int64
}

// Stats is a snapshot of the blitter's counters. The counters are never reset.
type Stats struct {
	// frames copied into the ring
	Submitted int64

	// frames dropped because the ring was full
	Dropped int64

	// submissions rejected because of invalid geometry or because the
	// blitter was disabled
	Rejected int64

	// frames presented by the backend
	Presented int64

	// screenshots requested from the screenshotter
	Screenshots int64

	// backends that have failed and been replaced by the null backend
	Failures int64

	// mode switches applied
	Switches int64
}

func (s Stats) String() string {
	return fmt.Sprintf("submitted %d, presented %d, dropped %d, rejected %d",
		s.Submitted, s.Presented, s.Dropped, s.Rejected)
}

// Stats returns a snapshot of the counters. Safe to call from any goroutine.
func (blt *Blitter) Stats() Stats {
	return Stats{
		Submitted:   blt.stats.submitted.Load(),
		Dropped:     blt.stats.dropped.Load(),
		Rejected:    blt.stats.rejected.Load(),
		Presented:   blt.stats.presented.Load(),
		Screenshots: blt.stats.screenshots.Load(),
		Failures:    blt.stats.failures.Load(),
		Switches:    blt.modes.Switches.Load(),
	}
}
