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

// Package eventloop services the SDL event queue on the display thread and
// renders frames as they become ready. Keyboard and mouse events are
// translated by the input package and forwarded to the emulated machine.
//
// The following hotkeys are handled by the loop and are not forwarded:
//
//	F11                 toggle fullscreen
//	F12                 screenshot
//	Pause               toggle pause
//
// Ctrl+Alt+PageDown also toggles fullscreen and Ctrl+End releases a captured
// mouse. These combinations are forwarded to the emulated machine as normal
// because they are made up of ordinary keys.
//
// The Housekeeping type runs on its own goroutine and updates the window
// title and on-screen display once a second.
package eventloop
