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

	"github.com/vidshim/vidshim/assert"
	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/display/nullvideo"
	"github.com/vidshim/vidshim/geometry"
	"github.com/vidshim/vidshim/logger"
)

// backendWindow adapts a display.Backend for the modeswitch.Window interface.
type backendWindow struct {
	display.Backend
}

func (w backendWindow) SetSize(width, height int) {
	w.Resize(width, height)
}

// Render presents the oldest ready frame. Returns true if a frame was
// presented.
//
// Must only be called on the display thread.
func (blt *Blitter) Render() bool {
	blt.crit.Lock()
	defer blt.crit.Unlock()

	// the affinity check is too slow for every frame in a normal build
	if assert.Enabled && !blt.display.Check() {
		logger.Log(logger.Allow, "blitter", "render called from outside the display thread")
		return false
	}

	// pending is cleared before the ring is inspected. a frame committed
	// after this point will set the flag again
	blt.pending.Store(false)

	if !blt.enabled.Load() {
		return false
	}

	blt.modes.Apply(blt.resolver, backendWindow{blt.backend})

	slot, ok := blt.ring.Peek()
	if !ok {
		return false
	}

	// the slot is released whatever happens
	defer func() {
		blt.presented = blt.requests[slot.Index]
		blt.ring.Release(slot)
		if blt.ring.Ready() > 0 {
			blt.pending.Store(true)
		}
	}()

	tw, th := blt.backend.TextureSize()
	if tw != slot.Width || th != slot.Height {
		if err := blt.backend.ResizeTexture(slot.Width, slot.Height); err != nil {
			blt.fail(curated.Errorf(display.TextureError, err))
			return false
		}
	}

	// the logical size of the frame is the size of the current mode. if no
	// mode has been applied then the size of the frame is used
	m := blt.modes.Current()
	logical := image.Pt(slot.Width, slot.Height)
	if m.Valid() {
		logical = image.Pt(m.Width, m.Height)
	}

	dw, dh := blt.backend.DrawableSize()
	viewport := geometry.Viewport(logical, image.Pt(dw, dh), m.XScale, m.YScale, blt.stretch())

	if osd, ok := blt.backend.(display.OSD); ok {
		if lines := blt.osd.Load(); lines != nil {
			osd.SetOSD(*lines)
		}
	}

	if err := blt.backend.Present(slot, viewport); err != nil {
		blt.fail(curated.Errorf(display.PresentError, err))
		return false
	}

	blt.stats.presented.Add(1)

	return true
}

// fail replaces the active backend with the null backend. must be called with
// the lock held.
func (blt *Blitter) fail(err error) {
	logger.Logf(logger.Allow, "blitter", "%s backend failed: %v", blt.backend.Kind(), err)
	blt.stats.failures.Add(1)

	w, h := blt.backend.DrawableSize()
	blt.backend.Close()

	blt.backend = nullvideo.NewBackend(w, h)
	_ = blt.backend.Init()

	logger.Logf(logger.Allow, "blitter", "falling back to %s backend", blt.backend.Kind())
}
