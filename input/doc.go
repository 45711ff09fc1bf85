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

// Package input translates SDL keyboard and mouse events into the form
// expected by a PC emulation core. Key presses are translated to XT (set 1)
// scancodes. Extended keys, those sent with the 0xE0 prefix, are represented
// by a value in the range 0x100 to 0x1ff.
//
// Mouse motion is accumulated between polls. The Mouse type is safe to use
// from more than one goroutine: events are added on the display thread and
// polled by the emulation.
package input
