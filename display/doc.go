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

// Package display defines the uniform set of capabilities that every video
// backend implements. The blitter uses a Backend without knowing which
// variant it is, so that backends can be swapped without special-casing.
//
// The variants are in the sub-packages:
//
//	nullvideo   disabled backend, presents nothing. used headless and as the
//	            fallback when another backend fails
//	sdlrender   SDL renderer with a streaming texture. in software and
//	            hardware-accelerated flavours
//	glshader    OpenGL 3.2 with a pixel buffer upload path and a custom
//	            fragment shader
//
// The sdlwindow sub-package contains the window shared by all the SDL
// backends.
//
// All functions of the Backend interface must be called on the display
// thread, with the exception of Kind().
//
// Options for the backends are in the Preferences type. Backends read the
// options in Init() and again whenever ReloadOptions() is called.
package display
