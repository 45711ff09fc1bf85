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

package input

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"
)

// Mouse button bits as used by MouseState.Buttons.
const (
	ButtonLeft   = 1
	ButtonRight  = 2
	ButtonMiddle = 4
	ButtonX1     = 8
	ButtonX2     = 16
)

// ButtonMask returns the button bit for the SDL mouse button.
func ButtonMask(button uint8) int {
	switch button {
	case sdl.BUTTON_LEFT:
		return ButtonLeft
	case sdl.BUTTON_RIGHT:
		return ButtonRight
	case sdl.BUTTON_MIDDLE:
		return ButtonMiddle
	case sdl.BUTTON_X1:
		return ButtonX1
	case sdl.BUTTON_X2:
		return ButtonX2
	}
	return 0
}

// MouseState is returned by Mouse.Poll().
type MouseState struct {
	X, Y, Z int
	Buttons int
}

// Mouse accumulates motion and button state between polls.
type Mouse struct {
	crit  sync.Mutex
	state MouseState
}

// Motion adds to the accumulated movement.
func (m *Mouse) Motion(dx, dy int) {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.state.X += dx
	m.state.Y += dy
}

// Wheel sets the wheel movement. A flipped wheel reverses the direction.
func (m *Mouse) Wheel(dz int, flipped bool) {
	if flipped {
		dz = -dz
	}
	m.crit.Lock()
	defer m.crit.Unlock()
	m.state.Z = dz
}

// Button sets or clears the bit for the SDL mouse button.
func (m *Mouse) Button(button uint8, pressed bool) {
	mask := ButtonMask(button)
	m.crit.Lock()
	defer m.crit.Unlock()
	if pressed {
		m.state.Buttons |= mask
	} else {
		m.state.Buttons &^= mask
	}
}

// Buttons returns the current button state.
func (m *Mouse) Buttons() int {
	m.crit.Lock()
	defer m.crit.Unlock()
	return m.state.Buttons
}

// Poll returns the accumulated movement and the button state. The movement
// is cleared.
func (m *Mouse) Poll() MouseState {
	m.crit.Lock()
	defer m.crit.Unlock()
	s := m.state
	m.state.X = 0
	m.state.Y = 0
	m.state.Z = 0
	return s
}

// Reset clears all state, including the buttons. Used when the mouse is
// released from the window.
func (m *Mouse) Reset() {
	m.crit.Lock()
	defer m.crit.Unlock()
	m.state = MouseState{}
}
