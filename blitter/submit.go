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
	"image"
	"math"

	"github.com/vidshim/vidshim/framering"
	"github.com/vidshim/vidshim/geometry"
)

// Submit copies the w x h region at x, y of the source pixels into the frame
// ring. Rows in the source are srcStride bytes apart and pixels are four
// bytes in RGBA order. The source is only read during the call.
//
// Submit never blocks and never calls the backend. The acknowledgement
// function is called exactly once, whether the frame was accepted, dropped
// or rejected.
func (blt *Blitter) Submit(x, y, w, h int, src []byte, srcStride int) {
	blt.inflight.Add(1)
	defer blt.inflight.Add(-1)
	defer blt.acknowledge()

	if !blt.enabled.Load() || !valid(x, y, w, h, src, srcStride) {
		blt.stats.rejected.Add(1)
		return
	}

	slot, ok := blt.ring.Acquire()
	if !ok {
		// the consumer will find the frames already in the ring
		blt.stats.dropped.Add(1)
		blt.pending.Store(true)
		return
	}

	slot.CopyFrom(src, srcStride, x, y, w, h)

	if blt.shots != nil && blt.screenshot.CompareAndSwap(true, false) {
		blt.stats.screenshots.Add(1)
		blt.shots.Save(slot.Pix, w, h, framering.Stride, blt.screenshotSize(w, h), blt.sessionShort())
	}

	blt.requests[slot.Index] = BlitRequest{X: x, Y: y, W: w, H: h}
	blt.ring.Commit(slot)
	blt.stats.submitted.Add(1)
	blt.pending.Store(true)
}

// SubmitImage is a convenience wrapper for Submit(). The rectangle is in the
// coordinate space of the image.
func (blt *Blitter) SubmitImage(r image.Rectangle, img *image.RGBA) {
	if img == nil {
		blt.Submit(0, 0, 0, 0, nil, 0)
		return
	}
	blt.Submit(r.Min.X-img.Rect.Min.X, r.Min.Y-img.Rect.Min.Y, r.Dx(), r.Dy(), img.Pix, img.Stride)
}

func (blt *Blitter) acknowledge() {
	if blt.ack != nil {
		blt.ack()
	}
}

// valid returns true if the region is acceptable for the ring and lies
// entirely within the source.
func valid(x, y, w, h int, src []byte, srcStride int) bool {
	if x < 0 || y < 0 || w <= 0 || h <= 0 {
		return false
	}
	if w > framering.MaxWidth || h > framering.MaxHeight {
		return false
	}
	if src == nil || srcStride <= 0 {
		return false
	}

	// the limits are found by division so that very large coordinates cannot
	// overflow. w and h have already been limited
	cols := srcStride / framering.BytesPerPixel
	if x > cols-w {
		return false
	}

	// bytes of the source after the end of the first row of the region. each
	// additional row requires another srcStride bytes
	tail := len(src) - (x+w)*framering.BytesPerPixel
	if tail < 0 {
		return false
	}
	if y > tail/srcStride-(h-1) {
		return false
	}
	return true
}

// the size of the screenshot image depends on how the frame is stretched
// when it is presented.
func (blt *Blitter) screenshotSize(w, h int) image.Point {
	switch blt.stretch() {
	case geometry.StretchFourThree:
		return image.Pt(int(math.Round(float64(h)*4/3)), h)
	case geometry.StretchFull:
		m := blt.modes.Current()
		if m.XScale > 0 && m.YScale > 0 {
			// normalise so that the height is unchanged
			return image.Pt(int(math.Round(float64(w)*float64(m.XScale/m.YScale))), h)
		}
	}
	return image.Pt(w, h)
}

// Submit() does not take the lock so the short form of the session is stored
// atomically by Init()
func (blt *Blitter) sessionShort() string {
	if s := blt.shortSession.Load(); s != nil {
		return *s
	}
	return ""
}
