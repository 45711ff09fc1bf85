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

// Package modeswitch coordinates changes of display timing requested by the
// emulated video hardware.
//
// The Coordinator has two states. Stable means the current mode has been
// applied. SwitchRequested means a new mode has been latched by a call to
// Request() and is waiting to be applied. Request() can be called from any
// goroutine and never blocks. If Request() is called more than once before
// the switch is applied then only the most recent request is applied.
//
// Apply() must only be called on the display thread because it may resize
// the window. The Coordinator is bound to the display thread with
// BindDisplayThread(). Apply() finds the nearest supported timing with a
// Resolver, resizes the window if the drawable size has changed and stores
// the new scale factors.
//
// The TimingTable type is the default Resolver. A table can be created with
// the FixedHeight option, in which case the requested height is replaced by
// 240 lines for progressive modes and 480 lines for interlaced modes before
// a timing is chosen. This is suitable for displays that are driven at low
// horizontal frequencies, where the vertical resolution of the display is
// fixed and the frame is scaled to fit.
package modeswitch
