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

package framering

import (
	"sync/atomic"

	"github.com/vidshim/vidshim/curated"
)

// Geometry of every slot in the ring.
const (
	RowLength     = 2048
	MaxWidth      = 2048
	MaxHeight     = 2048
	BytesPerPixel = 4
	Stride        = RowLength * BytesPerPixel
	SlotBytes     = Stride * MaxHeight
)

// DefaultSlots is the number of slots created by NewRing() when the requested
// number is zero or less.
const DefaultSlots = 3

// SizeError is returned by NewRing() when the supplied backing memory is too
// small for the number of slots.
const SizeError = "framering: backing too small: %d bytes for %d slots"

// slot states.
const (
	free int32 = iota
	claimed
	ready
)

// Slot is one buffer in the ring.
type Slot struct {
	// index of slot in the ring
	Index int

	// dimensions of the frame in the slot. only valid when the slot is ready
	Width  int
	Height int

	// pixel data. rows are Stride bytes apart
	Pix []byte

	// sequence number of the frame. assigned on Commit() and increasing by
	// one for every committed frame
	Seq uint64

	// optional completion handle for the graphics backend. for example, a
	// fence object that must be waited on before the slot can be reused
	Fence any

	state atomic.Int32
}

// InUse returns true if the slot has been acquired by the producer and not
// yet released by the consumer.
func (s *Slot) InUse() bool {
	return s.state.Load() != free
}

// Ready returns true if the slot has been committed by the producer and is
// waiting to be released by the consumer.
func (s *Slot) Ready() bool {
	return s.state.Load() == ready
}

// CopyFrom copies the w x h region at x, y of the source pixels into the
// slot. Rows in the source are srcStride bytes apart. Rows in the slot are
// Stride bytes apart. The Width and Height fields are updated.
//
// The caller must have validated the region against the length of src and
// against MaxWidth and MaxHeight.
func (s *Slot) CopyFrom(src []byte, srcStride int, x, y, w, h int) {
	rowBytes := w * BytesPerPixel
	for row := 0; row < h; row++ {
		o := (y+row)*srcStride + x*BytesPerPixel
		copy(s.Pix[row*Stride:row*Stride+rowBytes], src[o:o+rowBytes])
	}
	s.Width = w
	s.Height = h
}

// Row returns the visible pixels of the row in the slot.
func (s *Slot) Row(row int) []byte {
	return s.Pix[row*Stride : row*Stride+s.Width*BytesPerPixel]
}

// Ring is a fixed number of slots with a write position, used only by the
// producer, and a read position, used only by the consumer.
type Ring struct {
	slots []Slot

	writePos atomic.Int32
	readPos  atomic.Int32

	// the next sequence number. only touched by the producer
	seq uint64
}

// NewRing is the preferred method of initialisation for the Ring type. The
// backing memory can be nil, in which case it will be allocated. Otherwise it
// must be at least n * SlotBytes in length. This allows a backend to supply
// memory that is mapped directly to the graphics device.
func NewRing(n int, backing []byte) (*Ring, error) {
	if n <= 0 {
		n = DefaultSlots
	}

	if backing == nil {
		backing = make([]byte, n*SlotBytes)
	} else if len(backing) < n*SlotBytes {
		return nil, curated.Errorf(SizeError, len(backing), n)
	}

	r := &Ring{
		slots: make([]Slot, n),
	}

	for i := range r.slots {
		r.slots[i].Index = i
		r.slots[i].Pix = backing[i*SlotBytes : (i+1)*SlotBytes : (i+1)*SlotBytes]
	}

	return r, nil
}

// Len returns the number of slots in the ring.
func (r *Ring) Len() int {
	return len(r.slots)
}

// Slot returns the slot at index i.
func (r *Ring) Slot(i int) *Slot {
	return &r.slots[i]
}

// Positions returns the current write and read positions.
func (r *Ring) Positions() (write int, read int) {
	return int(r.writePos.Load()), int(r.readPos.Load())
}

// Acquire claims the slot at the write position for the producer. It returns
// false if the slot is in use, meaning the pool is full. Acquire never
// blocks.
func (r *Ring) Acquire() (*Slot, bool) {
	s := &r.slots[r.writePos.Load()]
	if !s.state.CompareAndSwap(free, claimed) {
		return nil, false
	}
	return s, true
}

// Abandon returns a claimed slot to the pool without committing it. The write
// position does not advance.
func (r *Ring) Abandon(s *Slot) {
	s.state.CompareAndSwap(claimed, free)
}

// Commit makes the claimed slot visible to the consumer and advances the
// write position. The slot must be the one returned by the most recent
// Acquire().
func (r *Ring) Commit(s *Slot) {
	s.Seq = r.seq
	r.seq++
	s.state.Store(ready)
	r.writePos.Store(int32((int(r.writePos.Load()) + 1) % len(r.slots)))
}

// Peek returns the slot at the read position if it is ready. The slot remains
// in use until Release() is called.
func (r *Ring) Peek() (*Slot, bool) {
	s := &r.slots[r.readPos.Load()]
	if s.state.Load() != ready {
		return nil, false
	}
	return s, true
}

// Release clears the in-use flag of the slot and advances the read position.
// The slot must be the one returned by the most recent Peek().
func (r *Ring) Release(s *Slot) {
	s.state.Store(free)
	r.readPos.Store(int32((int(r.readPos.Load()) + 1) % len(r.slots)))
}

// Ready returns the number of slots that have been committed but not yet
// released.
func (r *Ring) Ready() int {
	var n int
	for i := range r.slots {
		if r.slots[i].Ready() {
			n++
		}
	}
	return n
}

// Reset clears the in-use flag of every slot and returns both positions to
// zero. It must only be called when neither the producer nor the consumer are
// active.
func (r *Ring) Reset() {
	for i := range r.slots {
		r.slots[i].state.Store(free)
		r.slots[i].Width = 0
		r.slots[i].Height = 0
		r.slots[i].Fence = nil
	}
	r.writePos.Store(0)
	r.readPos.Store(0)
}
