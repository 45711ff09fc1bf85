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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Frame is implemented by the producer of frames.
type Frame interface {
	FrameNum() int
}

// Random is a random number generator that is sensitive to the frame being
// produced.
type Random struct {
	frame Frame

	// use zero seed rather than the random base seed
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(frame Frame) *Random {
	return &Random{
		frame: frame,
	}
}

// Source returns a generator seeded for the current frame. Successive calls
// for the same frame return generators with the same sequence.
func (rnd *Random) Source() *rand.Rand {
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(int64(rnd.frame.FrameNum())))
	}
	return rand.New(rand.NewSource(baseSeed + int64(rnd.frame.FrameNum())))
}

// Intn returns a random number in the range 0 to n-1 for the current frame.
func (rnd *Random) Intn(n int) int {
	return rnd.Source().Intn(n)
}
