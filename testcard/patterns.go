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
	"fmt"
	"strings"

	"github.com/vidshim/vidshim/framering"
)

// Pattern is the picture drawn by the Card.
type Pattern int

// List of valid Pattern values.
const (
	Bars Pattern = iota
	Grid
	Ramp
	Noise
)

func (p Pattern) String() string {
	switch p {
	case Bars:
		return "bars"
	case Grid:
		return "grid"
	case Ramp:
		return "ramp"
	case Noise:
		return "noise"
	}
	return fmt.Sprintf("pattern(%d)", int(p))
}

// ParsePattern converts a string to a Pattern. The strings are those returned
// by Pattern.String().
func ParsePattern(s string) (Pattern, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bars":
		return Bars, nil
	case "grid":
		return Grid, nil
	case "ramp":
		return Ramp, nil
	case "noise":
		return Noise, nil
	}
	return Bars, fmt.Errorf("unknown pattern (%s)", s)
}

// the seven colours of the standard colour bars
var bars = [...][3]uint8{
	{0xc0, 0xc0, 0xc0},
	{0xc0, 0xc0, 0x00},
	{0x00, 0xc0, 0xc0},
	{0x00, 0xc0, 0x00},
	{0xc0, 0x00, 0xc0},
	{0xc0, 0x00, 0x00},
	{0x00, 0x00, 0xc0},
}

const stride = framering.Stride

func setPixel(pix []byte, x, y int, r, g, b uint8) {
	o := y*stride + x*4
	pix[o] = r
	pix[o+1] = g
	pix[o+2] = b
	pix[o+3] = 0xff
}

// colour bars with a white line moving down the picture
func drawBars(pix []byte, w, h, frame int) {
	line := frame % h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if y == line {
				setPixel(pix, x, y, 0xff, 0xff, 0xff)
				continue
			}
			c := bars[x*len(bars)/w]
			setPixel(pix, x, y, c[0], c[1], c[2])
		}
	}
}

// size of grid cells in pixels
const gridSize = 16

// white grid lines on black with a border. the border makes it easy to see
// whether the whole frame is visible
func drawGrid(pix []byte, w, h, frame int) {
	// a cell that moves one cell every second at 60Hz
	cols := max(1, w/gridSize)
	rows := max(1, h/gridSize)
	cell := (frame / 60) % (cols * rows)
	cellX := (cell % cols) * gridSize
	cellY := (cell / cols) * gridSize

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			switch {
			case x == 0 || y == 0 || x == w-1 || y == h-1:
				setPixel(pix, x, y, 0xff, 0x00, 0x00)
			case x%gridSize == 0 || y%gridSize == 0:
				setPixel(pix, x, y, 0xff, 0xff, 0xff)
			case x >= cellX && x < cellX+gridSize && y >= cellY && y < cellY+gridSize:
				setPixel(pix, x, y, 0x00, 0x80, 0xff)
			default:
				setPixel(pix, x, y, 0x00, 0x00, 0x00)
			}
		}
	}
}

// horizontal grey ramp above red, green and blue ramps. the ramps scroll one
// pixel every frame
func drawRamp(pix []byte, w, h, frame int) {
	for y := 0; y < h; y++ {
		band := y * 4 / h
		for x := 0; x < w; x++ {
			v := uint8(((x + frame) % w) * 256 / w)
			switch band {
			case 0:
				setPixel(pix, x, y, v, v, v)
			case 1:
				setPixel(pix, x, y, v, 0, 0)
			case 2:
				setPixel(pix, x, y, 0, v, 0)
			default:
				setPixel(pix, x, y, 0, 0, v)
			}
		}
	}
}

// grey noise. the noise source must be seeded for the frame
func drawNoise(pix []byte, w, h int, next func() uint32) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x += 4 {
			n := next()
			for i := 0; i < 4 && x+i < w; i++ {
				v := uint8(n >> (i * 8))
				setPixel(pix, x+i, y, v, v, v)
			}
		}
	}
}
