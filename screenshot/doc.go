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

// Package screenshot saves frames taken from the blitter as PNG files.
//
// The pixels are copied before Save() returns so the caller is free to reuse
// the memory immediately. Scaling and encoding take place on a separate
// goroutine. Frames are scaled to their display size with the CatmullRom
// kernel from golang.org/x/image/draw, or with NearestNeighbor if the frame
// is being scaled by an integer factor.
package screenshot
