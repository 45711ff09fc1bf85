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

// Package framering implements the frame buffer pool that hands frames from
// the emulation goroutine to the display thread.
//
// The pool is a bounded single-producer/single-consumer ring of slots. Each
// slot is a fixed capacity region of one backing allocation, large enough for
// a frame of MaxWidth x MaxHeight pixels at four bytes per pixel. Rows in a
// slot are always Stride bytes apart, regardless of the width of the frame in
// the slot. Graphics backends rely on this when uploading the slot, by
// setting the unpack row length to RowLength.
//
// The producer calls Acquire(), writes to the slot and then calls Commit().
// The consumer calls Peek(), uploads the slot and then calls Release().
//
//	producer                          consumer
//	--------                          --------
//	s, ok := r.Acquire()              s, ok := r.Peek()
//	if !ok { drop frame }             if !ok { nothing to do }
//	s.CopyFrom(...)                   upload(s)
//	r.Commit(s)                       r.Release(s)
//
// Acquire() never blocks. If the slot at the write position is still in use
// then the pool is full and the frame should be dropped by the caller. No
// allocation takes place after NewRing().
//
// The in-use flag of each slot has three states: free, claimed and ready. A
// claimed slot is being written to by the producer and is not visible to the
// consumer. InUse() is true for both claimed and ready slots.
package framering
