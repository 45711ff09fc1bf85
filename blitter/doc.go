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

// Package blitter hands frames from the emulation goroutine to the display
// thread.
//
// The emulation goroutine is the producer. It calls Submit() once for every
// frame. Submit() copies the frame into a free slot of the frame ring and
// returns without waiting for the display thread. If there is no free slot
// then the frame is dropped. Whatever happens, the acknowledgement function
// is called exactly once before Submit() returns, so the emulation is never
// stalled by the display.
//
// The display thread is the consumer. When Pending() is true it calls
// Render(), which applies any latched mode switch, uploads the oldest ready
// slot to the backend and presents it.
//
// The blitter has a single mutex. It guards the backend and the window and
// is held by Render() and by the lifecycle functions (Init(), Close(),
// Resize(), etc.). It is never taken by Submit(). The handoff between
// producer and consumer is made by the in-use flag of each slot in the ring.
//
// A backend error during Render() is fatal to the backend. The error is
// logged, the backend is closed and replaced with the null backend. The
// emulation continues without video.
//
// Shutdown is in two phases. Close() takes the mutex, disables the blitter
// and releases the mutex. It then waits for any Submit() in progress to
// return before the backend resources are destroyed.
package blitter
