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

// Package testcard produces frames in place of an emulated machine. A Card
// draws one of several patterns into a framebuffer of the maximum size and
// submits the visible region to the blitter once per frame, pacing itself
// with a limiter.
//
// When cycling is enabled the Card requests a new display mode every few
// seconds, taken from a fixed script of common PC video modes. This exercises
// the mode switch and texture resizing of the display backends.
package testcard
