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

package display

import (
	"fmt"
	"image"
	"strings"

	"github.com/vidshim/vidshim/framering"
)

// Kind identifies the variant of a Backend.
type Kind int

// List of valid Kind values.
const (
	Null Kind = iota
	Software
	Hardware
	Shader
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Software:
		return "software"
	case Hardware:
		return "hardware"
	case Shader:
		return "opengl"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind converts a string to a Kind value. The strings are those returned
// by Kind.String(). The string "sdl" is accepted as an alias for Software.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "null", "none":
		return Null, nil
	case "software", "sdl":
		return Software, nil
	case "hardware":
		return Hardware, nil
	case "opengl", "shader", "gl":
		return Shader, nil
	}
	return Null, fmt.Errorf("unknown backend (%s)", s)
}

// Sentinel errors for the Backend implementations.
const (
	InitError    = "display: init: %v"
	PresentError = "display: present: %v"
	TextureError = "display: texture: %v"
	ShaderError  = "display: shader: %v"
)

// Backend is the uniform capability set of a video backend.
type Backend interface {
	// the variant of the backend
	Kind() Kind

	// Init creates the resources required by the backend. An error means the
	// backend is unusable and Close() should be called
	Init() error

	// Close destroys all resources. The backend cannot be used after Close()
	Close()

	// Pause is called when the emulation is paused or resumed
	Pause(paused bool)

	// Resize the window
	Resize(w, h int)

	// SetFullscreen switches the window between windowed and fullscreen
	SetFullscreen(fullscreen bool)

	// ReloadOptions reads the options in the Preferences again
	ReloadOptions()

	// Reinit recreates the textures and buffers. Called after the graphics
	// device has been reset
	Reinit() error

	// DrawableSize returns the size of the drawable area in pixels. This may
	// be different to the size of the window on high DPI displays
	DrawableSize() (int, int)

	// TextureSize returns the size of the frame the texture is currently
	// set up for
	TextureSize() (int, int)

	// ResizeTexture sets the texture up for a frame of the new size
	ResizeTexture(w, h int) error

	// Present uploads the slot to the texture and presents it in the
	// viewport. The slot must not be retained after Present() returns
	Present(slot *framering.Slot, viewport image.Rectangle) error
}

// OSD is implemented by backends that can draw an on-screen display over the
// frame.
type OSD interface {
	SetOSD(lines []string)
}

// Title is implemented by backends that have a window with a title.
type Title interface {
	SetTitle(title string)
}
