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

// Package sdlwindow is the SDL window shared by the SDL based backends. The
// window is created once and outlives any backend that draws into it. All
// functions must be called from the display thread.
package sdlwindow

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/vidshim/vidshim/logger"
	"github.com/vidshim/vidshim/version"
)

// Window is a wrapper for an SDL window.
type Window struct {
	win  *sdl.Window
	mode sdl.DisplayMode

	fullscreen bool
}

// the initial size of the window
const (
	initialWidth  = 640
	initialHeight = 480
)

// NewWindow creates a new window. SDL video must already be initialised. The
// window has the OpenGL flag so that it can be used by any backend.
func NewWindow() (*Window, error) {
	var err error

	wnd := &Window{}

	var sdlVersion sdl.Version
	sdl.VERSION(&sdlVersion)
	logger.Logf(logger.Allow, "sdl", "version %d.%d.%d", sdlVersion.Major, sdlVersion.Minor, sdlVersion.Patch)

	wnd.mode, err = sdl.GetCurrentDisplayMode(0)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}
	logger.Logf(logger.Allow, "sdl", "refresh rate: %dHz", wnd.mode.RefreshRate)

	// the context attributes must be set before the window is created
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 3)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 2)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)
	_ = sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	_ = sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	wnd.win, err = sdl.CreateWindow(version.Title(),
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		initialWidth, initialHeight,
		sdl.WINDOW_OPENGL|sdl.WINDOW_ALLOW_HIGHDPI|sdl.WINDOW_RESIZABLE|sdl.WINDOW_HIDDEN)
	if err != nil {
		return nil, fmt.Errorf("sdl: %w", err)
	}

	return wnd, nil
}

// Destroy the window.
func (wnd *Window) Destroy() {
	if wnd.win == nil {
		return
	}
	err := wnd.win.Destroy()
	if err != nil {
		logger.Log(logger.Allow, "sdl", err)
	}
	wnd.win = nil
}

// SDL returns the underlying SDL window.
func (wnd *Window) SDL() *sdl.Window {
	return wnd.win
}

// ID returns the SDL window ID. Used to filter window events.
func (wnd *Window) ID() uint32 {
	id, _ := wnd.win.GetID()
	return id
}

// Show the window.
func (wnd *Window) Show() {
	wnd.win.Show()
}

// Size returns the size of the window in screen coordinates.
func (wnd *Window) Size() (int, int) {
	w, h := wnd.win.GetSize()
	return int(w), int(h)
}

// GLDrawableSize returns the size of the OpenGL drawable. This can differ from
// Size() on high DPI displays.
func (wnd *Window) GLDrawableSize() (int, int) {
	w, h := wnd.win.GLGetDrawableSize()
	return int(w), int(h)
}

// SetSize sets the size of the window. Ignored if the window is fullscreen.
func (wnd *Window) SetSize(w, h int) {
	if wnd.fullscreen || w <= 0 || h <= 0 {
		return
	}
	wnd.win.SetSize(int32(w), int32(h))
}

// SetFullscreen toggles fullscreen desktop mode.
func (wnd *Window) SetFullscreen(fullscreen bool) {
	var err error
	if fullscreen {
		err = wnd.win.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	} else {
		err = wnd.win.SetFullscreen(0)
	}
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "fullscreen: %v", err)
		return
	}
	wnd.fullscreen = fullscreen

	// a short delay gives time for the system to make the changes to the full
	// screen state
	<-time.After(100 * time.Millisecond)
}

// IsFullscreen returns true if the window is fullscreen.
func (wnd *Window) IsFullscreen() bool {
	return wnd.fullscreen
}

// SetTitle sets the window title.
func (wnd *Window) SetTitle(title string) {
	wnd.win.SetTitle(title)
}

// DisplayRefreshRate implements the limiter.Display interface.
func (wnd *Window) DisplayRefreshRate() (float32, bool) {
	return float32(wnd.mode.RefreshRate), wnd.mode.RefreshRate > 0
}
