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

// Package geometry computes where in the drawable area of the window a frame
// should be presented.
package geometry

import (
	"fmt"
	"image"
	"math"
	"strings"
)

// Stretch is the method used to fit the frame into the drawable area.
type Stretch int

// List of valid Stretch values.
const (
	// frame is presented at its logical size, centred
	StretchNone Stretch = iota

	// frame is scaled by the scale factors of the current display mode.
	// with scale factors of drawable/logical the frame fills the drawable
	StretchFull

	// the largest 4:3 rectangle that fits in the drawable
	StretchFourThree

	// the largest rectangle with the same aspect ratio as the logical frame
	StretchKeep

	// the largest integer multiple of the logical frame that fits
	StretchInteger
)

func (s Stretch) String() string {
	switch s {
	case StretchNone:
		return "none"
	case StretchFull:
		return "full"
	case StretchFourThree:
		return "43"
	case StretchKeep:
		return "keep"
	case StretchInteger:
		return "integer"
	}
	return fmt.Sprintf("stretch(%d)", int(s))
}

// ParseStretch converts a string to a Stretch value. The strings are the same
// as returned by Stretch.String().
func ParseStretch(s string) (Stretch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return StretchNone, nil
	case "full", "":
		return StretchFull, nil
	case "43", "4:3":
		return StretchFourThree, nil
	case "keep":
		return StretchKeep, nil
	case "integer":
		return StretchInteger, nil
	}
	return StretchFull, fmt.Errorf("unknown stretch mode (%s)", s)
}

// round to the nearest integer. halves are rounded up.
func round(v float32) int {
	return int(math.Floor(0.5 + float64(v)))
}

// Viewport returns the rectangle in the drawable area where the frame should
// be presented. The logical size is the size of the frame. The scale factors
// are used only by StretchFull.
//
// The rectangle is always centred in the drawable and never larger than the
// drawable.
func Viewport(logical image.Point, drawable image.Point, xScale, yScale float32, stretch Stretch) image.Rectangle {
	if logical.X <= 0 || logical.Y <= 0 || drawable.X <= 0 || drawable.Y <= 0 {
		return image.Rectangle{}
	}

	var w, h int

	switch stretch {
	case StretchNone:
		w = logical.X
		h = logical.Y

	case StretchFull:
		if xScale <= 0 || yScale <= 0 {
			w = drawable.X
			h = drawable.Y
		} else {
			w = round(float32(logical.X) * xScale)
			h = round(float32(logical.Y) * yScale)
		}

	case StretchFourThree:
		w, h = fitAspect(drawable, 4, 3)

	case StretchKeep:
		w, h = fitAspect(drawable, logical.X, logical.Y)

	case StretchInteger:
		m := min(drawable.X/logical.X, drawable.Y/logical.Y)
		if m < 1 {
			// frame is larger than the drawable. fall back to keeping the
			// aspect ratio
			w, h = fitAspect(drawable, logical.X, logical.Y)
		} else {
			w = logical.X * m
			h = logical.Y * m
		}

	default:
		w = drawable.X
		h = drawable.Y
	}

	w = min(max(w, 1), drawable.X)
	h = min(max(h, 1), drawable.Y)

	x := (drawable.X - w) / 2
	y := (drawable.Y - h) / 2

	return image.Rect(x, y, x+w, y+h)
}

// fitAspect returns the largest width and height with the aspect ratio of
// aw:ah that fits in the drawable.
func fitAspect(drawable image.Point, aw, ah int) (int, int) {
	// compare drawable.X/drawable.Y with aw/ah without division
	if drawable.X*ah > drawable.Y*aw {
		// drawable is wider than the aspect ratio. height is the constraint
		h := drawable.Y
		w := round(float32(h) * float32(aw) / float32(ah))
		return w, h
	}
	w := drawable.X
	h := round(float32(w) * float32(ah) / float32(aw))
	return w, h
}

// Scale returns the scale factors required to fill the drawable with the
// logical frame.
func Scale(logical image.Point, drawable image.Point) (float32, float32) {
	if logical.X <= 0 || logical.Y <= 0 {
		return 1.0, 1.0
	}
	return float32(drawable.X) / float32(logical.X), float32(drawable.Y) / float32(logical.Y)
}
