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

package assert

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
)

// GetGoRoutineID returns an identifier for a goroutine. it returns a result
// that is (a) different between goroutines and (b) consistent for a given
// goroutine. It should only ever be used for debugging or testing purposes.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Affinity records the goroutine that is allowed to call a group of
// functions. For example, the functions that touch the window and the graphics
// context must only be called from the display thread.
//
// The zero value is unbound and Check() will always succeed until Bind() is
// called.
type Affinity struct {
	id atomic.Uint64
}

// Bind the affinity to the calling goroutine.
func (a *Affinity) Bind() {
	a.id.Store(GetGoRoutineID())
}

// Unbind the affinity. Check() will succeed for all goroutines.
func (a *Affinity) Unbind() {
	a.id.Store(0)
}

// Check returns true if the calling goroutine is the bound goroutine or if
// the affinity is unbound.
func (a *Affinity) Check() bool {
	id := a.id.Load()
	return id == 0 || id == GetGoRoutineID()
}
