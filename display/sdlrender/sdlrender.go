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

// Package sdlrender implements the software and hardware backends. Both use
// an SDL renderer with a streaming texture large enough for the largest
// possible frame. Frames are uploaded to the top-left corner of the texture
// and only that part of the texture is copied to the window.
package sdlrender

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/display"
	"github.com/vidshim/vidshim/display/sdlwindow"
	"github.com/vidshim/vidshim/framering"
	"github.com/vidshim/vidshim/logger"
)

// Backend implements the display.Backend interface.
type Backend struct {
	kind  display.Kind
	wnd   *sdlwindow.Window
	prefs *display.Preferences

	renderer *sdl.Renderer
	texture  *sdl.Texture

	// the size of the frame currently in the texture
	texW, texH int

	// options as they were when the renderer was created
	vsync  bool
	linear bool

	paused bool
}

// NewBackend is the preferred method of initialisation for the Backend type.
// The kind should be either display.Software or display.Hardware.
func NewBackend(kind display.Kind, wnd *sdlwindow.Window, prefs *display.Preferences) *Backend {
	return &Backend{
		kind:  kind,
		wnd:   wnd,
		prefs: prefs,
	}
}

// Kind implements the display.Backend interface.
func (b *Backend) Kind() display.Kind {
	return b.kind
}

// Init implements the display.Backend interface.
func (b *Backend) Init() error {
	if b.wnd == nil {
		return curated.Errorf(display.InitError, "no window")
	}

	b.vsync = b.prefs.VSync.Get().(bool)
	b.linear = b.prefs.LinearFilter()

	var flags uint32
	switch b.kind {
	case display.Software:
		flags = sdl.RENDERER_SOFTWARE
	case display.Hardware:
		flags = sdl.RENDERER_ACCELERATED
		if b.vsync {
			flags |= sdl.RENDERER_PRESENTVSYNC
		}
	default:
		return curated.Errorf(display.InitError, fmt.Sprintf("sdlrender cannot be used for %s", b.kind))
	}

	var err error

	b.renderer, err = sdl.CreateRenderer(b.wnd.SDL(), -1, flags)
	if err != nil {
		return curated.Errorf(display.InitError, err)
	}

	info, err := b.renderer.GetInfo()
	if err == nil {
		logger.Logf(logger.Allow, "sdlrender", "renderer: %s", info.Name)
	}

	err = b.createTexture()
	if err != nil {
		return err
	}

	b.wnd.Show()

	return nil
}

func (b *Backend) createTexture() error {
	// the scale quality hint is used by SDL when the texture is created
	if b.linear {
		sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "linear")
	} else {
		sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "nearest")
	}

	var err error

	b.texture, err = b.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888), int(sdl.TEXTUREACCESS_STREAMING),
		framering.MaxWidth, framering.MaxHeight)
	if err != nil {
		return curated.Errorf(display.TextureError, err)
	}

	err = b.texture.SetBlendMode(sdl.BlendMode(sdl.BLENDMODE_NONE))
	if err != nil {
		return curated.Errorf(display.TextureError, err)
	}

	b.texW = 0
	b.texH = 0

	return nil
}

func (b *Backend) destroyTexture() {
	if b.texture != nil {
		if err := b.texture.Destroy(); err != nil {
			logger.Log(logger.Allow, "sdlrender", err)
		}
		b.texture = nil
	}
}

// Close implements the display.Backend interface.
func (b *Backend) Close() {
	b.destroyTexture()
	if b.renderer != nil {
		if err := b.renderer.Destroy(); err != nil {
			logger.Log(logger.Allow, "sdlrender", err)
		}
		b.renderer = nil
	}
}

// Pause implements the display.Backend interface. Paused frames are dimmed.
func (b *Backend) Pause(paused bool) {
	b.paused = paused
}

// Resize implements the display.Backend interface.
func (b *Backend) Resize(w, h int) {
	b.wnd.SetSize(w, h)
}

// SetFullscreen implements the display.Backend interface.
func (b *Backend) SetFullscreen(fullscreen bool) {
	b.wnd.SetFullscreen(fullscreen)
}

// SetTitle implements the display.Title interface.
func (b *Backend) SetTitle(title string) {
	b.wnd.SetTitle(title)
}

// ReloadOptions implements the display.Backend interface. A change of vsync
// requires the renderer to be recreated. A change of filter requires the
// texture to be recreated.
func (b *Backend) ReloadOptions() {
	vsync := b.prefs.VSync.Get().(bool)
	linear := b.prefs.LinearFilter()

	if b.kind == display.Hardware && vsync != b.vsync {
		logger.Logf(logger.Allow, "sdlrender", "vsync changed: recreating renderer")
		b.Close()
		if err := b.Init(); err != nil {
			logger.Log(logger.Allow, "sdlrender", err)
		}
		return
	}

	if linear != b.linear {
		b.linear = linear
		if err := b.Reinit(); err != nil {
			logger.Log(logger.Allow, "sdlrender", err)
		}
	}
}

// Reinit implements the display.Backend interface.
func (b *Backend) Reinit() error {
	if b.renderer == nil {
		return curated.Errorf(display.InitError, "no renderer")
	}
	b.destroyTexture()
	return b.createTexture()
}

// DrawableSize implements the display.Backend interface.
func (b *Backend) DrawableSize() (int, int) {
	if b.renderer == nil {
		return b.wnd.Size()
	}
	w, h, err := b.renderer.GetOutputSize()
	if err != nil {
		return b.wnd.Size()
	}
	return int(w), int(h)
}

// TextureSize implements the display.Backend interface.
func (b *Backend) TextureSize() (int, int) {
	return b.texW, b.texH
}

// ResizeTexture implements the display.Backend interface. The texture is
// always the maximum size so only the size of the frame is recorded.
func (b *Backend) ResizeTexture(w, h int) error {
	if w <= 0 || h <= 0 || w > framering.MaxWidth || h > framering.MaxHeight {
		return curated.Errorf(display.TextureError, fmt.Sprintf("invalid size %dx%d", w, h))
	}
	b.texW = w
	b.texH = h
	return nil
}

// Present implements the display.Backend interface.
func (b *Backend) Present(slot *framering.Slot, viewport image.Rectangle) error {
	if b.texture == nil {
		return curated.Errorf(display.PresentError, "no texture")
	}

	src := sdl.Rect{W: int32(slot.Width), H: int32(slot.Height)}
	dst := sdl.Rect{
		X: int32(viewport.Min.X),
		Y: int32(viewport.Min.Y),
		W: int32(viewport.Dx()),
		H: int32(viewport.Dy()),
	}

	err := b.texture.Update(&src, unsafe.Pointer(&slot.Pix[0]), framering.Stride)
	if err != nil {
		return curated.Errorf(display.PresentError, err)
	}

	if b.paused {
		_ = b.texture.SetColorMod(128, 128, 128)
	} else {
		_ = b.texture.SetColorMod(255, 255, 255)
	}

	err = b.renderer.SetDrawColor(0, 0, 0, 255)
	if err != nil {
		return curated.Errorf(display.PresentError, err)
	}
	err = b.renderer.Clear()
	if err != nil {
		return curated.Errorf(display.PresentError, err)
	}
	err = b.renderer.Copy(b.texture, &src, &dst)
	if err != nil {
		return curated.Errorf(display.PresentError, err)
	}

	b.renderer.Present()

	return nil
}
