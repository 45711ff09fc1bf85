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
	"sync/atomic"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/vidshim/vidshim/blitter"
	"github.com/vidshim/vidshim/display/sdlwindow"
	"github.com/vidshim/vidshim/input"
	"github.com/vidshim/vidshim/logger"
)

// time periods in milliseconds that Service() waits for an event. frames are
// submitted by another goroutine which does not wake the event queue, so the
// period while running must be shorter than a frame
const (
	runningSleepPeriod = 2
	idleSleepPeriod    = 100
)

// Loop services the SDL event queue.
type Loop struct {
	blt *blitter.Blitter

	// window can be nil, in which case window events are ignored and the mouse
	// is never captured
	wnd *sdlwindow.Window

	kb    *input.Keyboard
	Mouse input.Mouse

	captured   bool
	inside     bool
	fullscreen bool

	// latest title requested by Housekeeping. applied on the display thread
	title atomic.Pointer[string]

	// set when a quit event has been received
	Quit bool

	// log every key translation
	Verbose bool
}

// AllowLogging implements the logger.Permission interface. Only used for the
// logging of key translations.
func (l *Loop) AllowLogging() bool {
	return l.Verbose
}

// NewLoop is the preferred method of initialisation for the Loop type. The
// send function is called with every change in key state.
func NewLoop(blt *blitter.Blitter, wnd *sdlwindow.Window, send func(code uint16, pressed bool)) *Loop {
	l := &Loop{
		blt: blt,
		wnd: wnd,
		kb:  input.NewKeyboard(send),
	}
	if wnd != nil {
		l.fullscreen = wnd.IsFullscreen()
	}
	return l
}

// SetTitle requests a new window title. The most recent request is applied by
// the next call to Service(). Safe to call from any goroutine.
func (l *Loop) SetTitle(title string) {
	l.title.Store(&title)
}

// Service waits for and handles SDL events. Any frame that is ready is
// rendered. Must be called from the display thread.
func (l *Loop) Service() {
	timeout := idleSleepPeriod
	if l.blt.Enabled() && !l.blt.Paused() {
		timeout = runningSleepPeriod
	}
	if l.blt.Pending() {
		timeout = 0
	}

	for ev := sdl.WaitEventTimeout(timeout); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			l.Quit = true

		case *sdl.WindowEvent:
			l.serviceWindowEvent(ev)

		case *sdl.KeyboardEvent:
			l.serviceKeyboard(ev)

		case *sdl.MouseMotionEvent:
			if l.captured {
				l.Mouse.Motion(int(ev.XRel), int(ev.YRel))
			}

		case *sdl.MouseButtonEvent:
			l.serviceMouseButton(ev)

		case *sdl.MouseWheelEvent:
			if l.captured {
				l.Mouse.Wheel(int(ev.Y), ev.Direction == sdl.MOUSEWHEEL_FLIPPED)
			}

		default:
			switch ev.GetType() {
			case sdl.RENDER_TARGETS_RESET, sdl.RENDER_DEVICE_RESET:
				l.blt.DeviceReset()
			}
		}
	}

	if t := l.title.Swap(nil); t != nil {
		l.blt.SetTitle(*t)
	}

	if l.blt.Pending() {
		l.blt.Render()
	}
}

func (l *Loop) serviceWindowEvent(ev *sdl.WindowEvent) {
	if l.wnd == nil || ev.WindowID != l.wnd.ID() {
		return
	}

	switch ev.Event {
	case sdl.WINDOWEVENT_RESIZED:
		l.blt.Resize(int(ev.Data1), int(ev.Data2))
	case sdl.WINDOWEVENT_ENTER:
		l.inside = true
	case sdl.WINDOWEVENT_LEAVE:
		l.inside = false
	case sdl.WINDOWEVENT_FOCUS_LOST:
		l.kb.ReleaseAll()
		l.setCapture(false)
	case sdl.WINDOWEVENT_CLOSE:
		l.Quit = true
	}
}

func (l *Loop) serviceKeyboard(ev *sdl.KeyboardEvent) {
	pressed := ev.Type == sdl.KEYDOWN

	if pressed && ev.Repeat == 0 {
		switch ev.Keysym.Scancode {
		case sdl.SCANCODE_F11:
			l.toggleFullscreen()
			return
		case sdl.SCANCODE_F12:
			l.blt.Screenshot()
			return
		case sdl.SCANCODE_PAUSE:
			l.blt.Pause(!l.blt.Paused())
			return
		}
	}

	// the release of a hotkey
	switch ev.Keysym.Scancode {
	case sdl.SCANCODE_F11, sdl.SCANCODE_F12, sdl.SCANCODE_PAUSE:
		return
	}

	code := l.kb.Key(ev.Keysym.Scancode, pressed)
	if code != 0 {
		logger.Logf(l, "eventloop", "%s %s: % 02x", sdl.GetScancodeName(ev.Keysym.Scancode), upDown(pressed), input.Bytes(code, pressed))
	}

	if pressed && ev.Repeat == 0 {
		if l.kb.IsFullscreenToggle() {
			l.toggleFullscreen()
		}
		if l.kb.IsMouseRelease() {
			l.setCapture(false)
		}
	}
}

func upDown(pressed bool) string {
	if pressed {
		return "down"
	}
	return "up"
}

func (l *Loop) serviceMouseButton(ev *sdl.MouseButtonEvent) {
	pressed := ev.Type == sdl.MOUSEBUTTONDOWN

	if !l.captured {
		// a click in the window captures the mouse. the click itself is not
		// forwarded
		if ev.Button == sdl.BUTTON_LEFT && !pressed && l.inside {
			l.setCapture(true)
		}
		return
	}

	if ev.Button == sdl.BUTTON_MIDDLE && pressed {
		l.setCapture(false)
		return
	}

	l.Mouse.Button(ev.Button, pressed)
}

func (l *Loop) setCapture(capture bool) {
	if l.wnd == nil || l.captured == capture {
		return
	}
	l.captured = capture

	l.wnd.SDL().SetGrab(capture)
	sdl.SetRelativeMouseMode(capture)
	if capture {
		sdl.ShowCursor(sdl.DISABLE)
	} else {
		sdl.ShowCursor(sdl.ENABLE)
		l.Mouse.Reset()
	}

	logger.Logf(logger.Allow, "eventloop", "mouse captured: %v", capture)
}

// Captured returns true if the mouse is captured by the window.
func (l *Loop) Captured() bool {
	return l.captured
}

func (l *Loop) toggleFullscreen() {
	if l.wnd == nil {
		return
	}
	l.fullscreen = !l.fullscreen
	l.blt.SetFullscreen(l.fullscreen)
}
