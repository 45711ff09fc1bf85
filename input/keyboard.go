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
	"github.com/veandco/go-sdl2/sdl"

	"github.com/vidshim/vidshim/logger"
)

// Keyboard tracks which keys are pressed and forwards changes to a
// callback as XT codes.
type Keyboard struct {
	pressed map[uint16]bool

	// called with the XT code of every change of key state. may be nil
	send func(code uint16, pressed bool)
}

// NewKeyboard is the preferred method of initialisation for the Keyboard type.
func NewKeyboard(send func(code uint16, pressed bool)) *Keyboard {
	return &Keyboard{
		pressed: make(map[uint16]bool),
		send:    send,
	}
}

// Key handles an SDL key event. Returns the XT code or zero if the key has no
// XT equivalent. Auto-repeat of a held key is forwarded as a repeated make
// code.
func (kb *Keyboard) Key(sc sdl.Scancode, pressed bool) uint16 {
	code := ScancodeToXT(sc)
	if code == 0 {
		logger.Logf(logger.Allow, "input", "no XT code for %s", sdl.GetScancodeName(sc))
		return 0
	}

	// a release of a key that isn't pressed
	if !pressed && !kb.pressed[code] {
		return code
	}

	if pressed {
		kb.pressed[code] = true
	} else {
		delete(kb.pressed, code)
	}

	if kb.send != nil {
		kb.send(code, pressed)
	}

	return code
}

// IsPressed returns true if the key with the XT code is pressed.
func (kb *Keyboard) IsPressed(code uint16) bool {
	return kb.pressed[code]
}

// ReleaseAll releases every pressed key. Used when the window loses focus.
func (kb *Keyboard) ReleaseAll() {
	for code := range kb.pressed {
		delete(kb.pressed, code)
		if kb.send != nil {
			kb.send(code, false)
		}
	}
}

func (kb *Keyboard) ctrl() bool {
	return kb.pressed[0x1d] || kb.pressed[Extended|0x1d]
}

func (kb *Keyboard) alt() bool {
	return kb.pressed[0x38] || kb.pressed[Extended|0x38]
}

// IsMouseRelease returns true if the key combination to release the mouse
// (Ctrl+End) is pressed.
func (kb *Keyboard) IsMouseRelease() bool {
	return kb.ctrl() && kb.pressed[Extended|0x4f]
}

// IsFullscreenToggle returns true if the key combination to leave fullscreen
// (Ctrl+Alt+PageDown) is pressed.
func (kb *Keyboard) IsFullscreenToggle() bool {
	return kb.ctrl() && kb.alt() && kb.pressed[Extended|0x51]
}
