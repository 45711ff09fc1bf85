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

import "github.com/veandco/go-sdl2/sdl"

// Extended is the bit set in an XT code for keys sent with the 0xE0 prefix.
const Extended = 0x100

// Break is the bit set in a scancode byte to indicate a key release.
const Break = 0x80

var sdlToXT = map[sdl.Scancode]uint16{
	sdl.SCANCODE_ESCAPE:       0x01,
	sdl.SCANCODE_1:            0x02,
	sdl.SCANCODE_2:            0x03,
	sdl.SCANCODE_3:            0x04,
	sdl.SCANCODE_4:            0x05,
	sdl.SCANCODE_5:            0x06,
	sdl.SCANCODE_6:            0x07,
	sdl.SCANCODE_7:            0x08,
	sdl.SCANCODE_8:            0x09,
	sdl.SCANCODE_9:            0x0a,
	sdl.SCANCODE_0:            0x0b,
	sdl.SCANCODE_MINUS:        0x0c,
	sdl.SCANCODE_EQUALS:       0x0d,
	sdl.SCANCODE_BACKSPACE:    0x0e,
	sdl.SCANCODE_TAB:          0x0f,
	sdl.SCANCODE_Q:            0x10,
	sdl.SCANCODE_W:            0x11,
	sdl.SCANCODE_E:            0x12,
	sdl.SCANCODE_R:            0x13,
	sdl.SCANCODE_T:            0x14,
	sdl.SCANCODE_Y:            0x15,
	sdl.SCANCODE_U:            0x16,
	sdl.SCANCODE_I:            0x17,
	sdl.SCANCODE_O:            0x18,
	sdl.SCANCODE_P:            0x19,
	sdl.SCANCODE_LEFTBRACKET:  0x1a,
	sdl.SCANCODE_RIGHTBRACKET: 0x1b,
	sdl.SCANCODE_RETURN:       0x1c,
	sdl.SCANCODE_LCTRL:        0x1d,
	sdl.SCANCODE_A:            0x1e,
	sdl.SCANCODE_S:            0x1f,
	sdl.SCANCODE_D:            0x20,
	sdl.SCANCODE_F:            0x21,
	sdl.SCANCODE_G:            0x22,
	sdl.SCANCODE_H:            0x23,
	sdl.SCANCODE_J:            0x24,
	sdl.SCANCODE_K:            0x25,
	sdl.SCANCODE_L:            0x26,
	sdl.SCANCODE_SEMICOLON:    0x27,
	sdl.SCANCODE_APOSTROPHE:   0x28,
	sdl.SCANCODE_GRAVE:        0x29,
	sdl.SCANCODE_LSHIFT:       0x2a,
	sdl.SCANCODE_BACKSLASH:    0x2b,
	sdl.SCANCODE_Z:            0x2c,
	sdl.SCANCODE_X:            0x2d,
	sdl.SCANCODE_C:            0x2e,
	sdl.SCANCODE_V:            0x2f,
	sdl.SCANCODE_B:            0x30,
	sdl.SCANCODE_N:            0x31,
	sdl.SCANCODE_M:            0x32,
	sdl.SCANCODE_COMMA:        0x33,
	sdl.SCANCODE_PERIOD:       0x34,
	sdl.SCANCODE_SLASH:        0x35,
	sdl.SCANCODE_RSHIFT:       0x36,
	sdl.SCANCODE_KP_MULTIPLY:  0x37,
	sdl.SCANCODE_LALT:         0x38,
	sdl.SCANCODE_SPACE:        0x39,
	sdl.SCANCODE_CAPSLOCK:     0x3a,
	sdl.SCANCODE_F1:           0x3b,
	sdl.SCANCODE_F2:           0x3c,
	sdl.SCANCODE_F3:           0x3d,
	sdl.SCANCODE_F4:           0x3e,
	sdl.SCANCODE_F5:           0x3f,
	sdl.SCANCODE_F6:           0x40,
	sdl.SCANCODE_F7:           0x41,
	sdl.SCANCODE_F8:           0x42,
	sdl.SCANCODE_F9:           0x43,
	sdl.SCANCODE_F10:          0x44,
	sdl.SCANCODE_NUMLOCKCLEAR: 0x45,
	sdl.SCANCODE_SCROLLLOCK:   0x46,
	sdl.SCANCODE_KP_7:         0x47,
	sdl.SCANCODE_KP_8:         0x48,
	sdl.SCANCODE_KP_9:         0x49,
	sdl.SCANCODE_KP_MINUS:     0x4a,
	sdl.SCANCODE_KP_4:         0x4b,
	sdl.SCANCODE_KP_5:         0x4c,
	sdl.SCANCODE_KP_6:         0x4d,
	sdl.SCANCODE_KP_PLUS:      0x4e,
	sdl.SCANCODE_KP_1:         0x4f,
	sdl.SCANCODE_KP_2:         0x50,
	sdl.SCANCODE_KP_3:         0x51,
	sdl.SCANCODE_KP_0:         0x52,
	sdl.SCANCODE_KP_PERIOD:    0x53,
	sdl.SCANCODE_F11:          0x57,
	sdl.SCANCODE_F12:          0x58,

	// extended keys
	sdl.SCANCODE_KP_ENTER:    Extended | 0x1c,
	sdl.SCANCODE_RCTRL:       Extended | 0x1d,
	sdl.SCANCODE_KP_DIVIDE:   Extended | 0x35,
	sdl.SCANCODE_PRINTSCREEN: Extended | 0x37,
	sdl.SCANCODE_RALT:        Extended | 0x38,
	sdl.SCANCODE_HOME:        Extended | 0x47,
	sdl.SCANCODE_UP:          Extended | 0x48,
	sdl.SCANCODE_PAGEUP:      Extended | 0x49,
	sdl.SCANCODE_LEFT:        Extended | 0x4b,
	sdl.SCANCODE_RIGHT:       Extended | 0x4d,
	sdl.SCANCODE_END:         Extended | 0x4f,
	sdl.SCANCODE_DOWN:        Extended | 0x50,
	sdl.SCANCODE_PAGEDOWN:    Extended | 0x51,
	sdl.SCANCODE_INSERT:      Extended | 0x52,
	sdl.SCANCODE_DELETE:      Extended | 0x53,
	sdl.SCANCODE_LGUI:        Extended | 0x5b,
	sdl.SCANCODE_RGUI:        Extended | 0x5c,
	sdl.SCANCODE_APPLICATION: Extended | 0x5d,
}

// ScancodeToXT returns the XT code for the SDL scancode. Returns zero if
// there is no equivalent key.
func ScancodeToXT(sc sdl.Scancode) uint16 {
	return sdlToXT[sc]
}

// Bytes returns the sequence of bytes sent by the keyboard for the XT code.
func Bytes(code uint16, pressed bool) []byte {
	b := byte(code & 0xff)
	if !pressed {
		b |= Break
	}
	if code&Extended == Extended {
		return []byte{0xe0, b}
	}
	return []byte{b}
}
