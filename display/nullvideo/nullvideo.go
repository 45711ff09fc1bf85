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

// Package nullvideo is a display backend that presents nothing. It is used
// when video output is disabled and as the fallback when another backend
// fails. Frames sent to the backend are counted and then discarded.
package nullvideo

import (
	"image"
	"sync/atomic"

	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/framering"
)

// Backend is an implementation of the display.Backend interface.
type Backend struct {
	drawW, drawH int
	texW, texH   int

	paused     bool
	fullscreen bool

	// the number of frames "presented"
	Presents atomic.Int64
}

// DefaultWidth and DefaultHeight are the size of the drawable area if no size
// is given to NewBackend().
const (
	DefaultWidth  = 640
	DefaultHeight = 480
)

// NewBackend is the preferred method of initialisation for the Backend type.
// The size is the size that will be reported by DrawableSize().
func NewBackend(w, h int) *Backend {
	if w <= 0 || h <= 0 {
		w = DefaultWidth
		h = DefaultHeight
	}
	return &Backend{
		drawW: w,
		drawH: h,
	}
}

// Kind implements the display.Backend interface.
func (b *Backend) Kind() display.Kind {
	return display.Null
}

// Init implements the display.Backend interface.
func (b *Backend) Init() error {
	b.texW = 0
	b.texH = 0
	return nil
}

// Close implements the display.Backend interface.
func (b *Backend) Close() {
}

// Pause implements the display.Backend interface.
func (b *Backend) Pause(paused bool) {
	b.paused = paused
}

// Resize implements the display.Backend interface.
func (b *Backend) Resize(w, h int) {
	if w > 0 && h > 0 {
		b.drawW = w
		b.drawH = h
	}
}

// SetFullscreen implements the display.Backend interface.
func (b *Backend) SetFullscreen(fullscreen bool) {
	b.fullscreen = fullscreen
}

// ReloadOptions implements the display.Backend interface.
func (b *Backend) ReloadOptions() {
}

// Reinit implements the display.Backend interface.
func (b *Backend) Reinit() error {
	return b.Init()
}

// DrawableSize implements the display.Backend interface.
func (b *Backend) DrawableSize() (int, int) {
	return b.drawW, b.drawH
}

// TextureSize implements the display.Backend interface.
func (b *Backend) TextureSize() (int, int) {
	return b.texW, b.texH
}

// ResizeTexture implements the display.Backend interface.
func (b *Backend) ResizeTexture(w, h int) error {
	b.texW = w
	b.texH = h
	return nil
}

// Present implements the display.Backend interface.
func (b *Backend) Present(_ *framering.Slot, _ image.Rectangle) error {
	b.Presents.Add(1)
	return nil
}
