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

package framering_test

import (
	"encoding/binary"
	"sync"
	"testing"

	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/framering"
	"github.com/vidshim/vidshim/test"
)

func TestNewRing(t *testing.T) {
	r, err := framering.NewRing(0, nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, r.Len(), framering.DefaultSlots)

	for i := range r.Len() {
		s := r.Slot(i)
		test.ExpectEquality(t, s.Index, i)
		test.ExpectEquality(t, len(s.Pix), framering.SlotBytes)
		test.ExpectFailure(t, s.InUse())
	}

	_, err = framering.NewRing(2, make([]byte, framering.SlotBytes))
	test.ExpectSuccess(t, curated.Is(err, framering.SizeError))

	_, err = framering.NewRing(1, make([]byte, framering.SlotBytes))
	test.ExpectSuccess(t, err)
}

// three submissions without a consume go into slots 0, 1 and 2. the fourth
// submission finds the pool full.
func TestFullPool(t *testing.T) {
	r, err := framering.NewRing(3, nil)
	test.DemandSuccess(t, err)

	for i := range 3 {
		s, ok := r.Acquire()
		test.DemandSuccess(t, ok)
		test.ExpectEquality(t, s.Index, i)
		r.Commit(s)
	}

	w, rd := r.Positions()
	test.ExpectEquality(t, w, 0)
	test.ExpectEquality(t, rd, 0)
	test.ExpectEquality(t, r.Ready(), 3)

	_, ok := r.Acquire()
	test.ExpectFailure(t, ok)

	// nothing has changed because of the failed acquire
	w, rd = r.Positions()
	test.ExpectEquality(t, w, 0)
	test.ExpectEquality(t, rd, 0)

	// consuming one slot makes room for one more
	s, ok := r.Peek()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.Index, 0)
	r.Release(s)

	s, ok = r.Acquire()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, s.Index, 0)
}

func TestCursors(t *testing.T) {
	r, err := framering.NewRing(3, nil)
	test.DemandSuccess(t, err)

	for i := range 10 {
		s, ok := r.Acquire()
		test.DemandSuccess(t, ok)
		r.Commit(s)

		w, rd := r.Positions()
		test.ExpectEquality(t, w, (i+1)%3)
		test.ExpectEquality(t, rd, i%3)

		s, ok = r.Peek()
		test.DemandSuccess(t, ok)
		test.ExpectEquality(t, s.Seq, uint64(i))
		r.Release(s)

		w, rd = r.Positions()
		test.ExpectEquality(t, w, rd)
		test.ExpectEquality(t, r.Ready(), 0)
	}
}

func TestClaimedSlotNotVisible(t *testing.T) {
	r, err := framering.NewRing(3, nil)
	test.DemandSuccess(t, err)

	// empty ring
	_, ok := r.Peek()
	test.ExpectFailure(t, ok)

	// a claimed slot is in use but is not ready
	s, ok := r.Acquire()
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, s.InUse())
	test.ExpectFailure(t, s.Ready())
	_, ok = r.Peek()
	test.ExpectFailure(t, ok)

	// abandoning the slot frees it without advancing
	r.Abandon(s)
	test.ExpectFailure(t, s.InUse())
	w, _ := r.Positions()
	test.ExpectEquality(t, w, 0)

	s, ok = r.Acquire()
	test.DemandSuccess(t, ok)
	r.Commit(s)
	p, ok := r.Peek()
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, p, s)
}

func TestReset(t *testing.T) {
	r, err := framering.NewRing(3, nil)
	test.DemandSuccess(t, err)

	s, _ := r.Acquire()
	s.CopyFrom(make([]byte, 16), 16, 0, 0, 4, 1)
	r.Commit(s)
	s, _ = r.Acquire()

	r.Reset()
	w, rd := r.Positions()
	test.ExpectEquality(t, w, 0)
	test.ExpectEquality(t, rd, 0)
	test.ExpectEquality(t, r.Ready(), 0)
	for i := range r.Len() {
		test.ExpectFailure(t, r.Slot(i).InUse())
		test.ExpectEquality(t, r.Slot(i).Width, 0)
	}
}

func TestCopyFrom(t *testing.T) {
	r, err := framering.NewRing(1, nil)
	test.DemandSuccess(t, err)

	// source is 8 pixels wide and 4 rows high
	const srcStride = 8 * framering.BytesPerPixel
	src := make([]byte, srcStride*4)
	for i := range src {
		src[i] = byte(i)
	}

	s, ok := r.Acquire()
	test.DemandSuccess(t, ok)

	// copy a 2x2 region from x=3, y=1
	s.CopyFrom(src, srcStride, 3, 1, 2, 2)
	test.ExpectEquality(t, s.Width, 2)
	test.ExpectEquality(t, s.Height, 2)

	for row := range 2 {
		o := (1+row)*srcStride + 3*framering.BytesPerPixel
		test.ExpectEquality(t, string(s.Row(row)), string(src[o:o+8]))

		// rows in the slot are padded to the stride
		test.ExpectEquality(t, string(s.Pix[row*framering.Stride:row*framering.Stride+8]), string(src[o:o+8]))
	}
}

// the consumer must never see a slot that has not been completely written.
// the producer stamps each frame with its sequence number in every row and
// the consumer checks the stamp against the slot's sequence number.
func TestConcurrentProducerConsumer(t *testing.T) {
	r, err := framering.NewRing(3, nil)
	test.DemandSuccess(t, err)

	const frames = 2000
	const rows = 16

	var wg sync.WaitGroup
	done := make(chan bool)

	var committed uint64
	var dropped int

	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(done)

		src := make([]byte, framering.BytesPerPixel*2*rows)
		for range frames {
			s, ok := r.Acquire()
			if !ok {
				dropped++
				continue
			}
			for row := range rows {
				binary.LittleEndian.PutUint64(src[row*8:], committed)
			}
			s.CopyFrom(src, 8, 0, 0, 2, rows)
			r.Commit(s)
			committed++
		}
	}()

	var consumed uint64
	var failed bool

	check := func() {
		for {
			s, ok := r.Peek()
			if !ok {
				return
			}
			if !s.InUse() || s.Seq != consumed {
				failed = true
			}
			for row := range rows {
				if binary.LittleEndian.Uint64(s.Row(row)) != s.Seq {
					failed = true
				}
			}
			r.Release(s)
			consumed++
		}
	}

	running := true
	for running {
		select {
		case <-done:
			running = false
		default:
		}
		check()
	}
	wg.Wait()
	check()

	test.ExpectFailure(t, failed)
	test.ExpectEquality(t, consumed, committed)
	test.ExpectEquality(t, int(committed)+dropped, frames)
}
