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

package assert_test

import (
	"testing"

	"github.com/vidshim/vidshim/assert"
	"github.com/vidshim/vidshim/test"
)

func TestGoRoutineID(t *testing.T) {
	id := assert.GetGoRoutineID()
	test.ExpectInequality(t, id, 0)
	test.ExpectEquality(t, assert.GetGoRoutineID(), id)

	other := make(chan uint64)
	go func() {
		other <- assert.GetGoRoutineID()
	}()
	test.ExpectInequality(t, <-other, id)
}

func TestAffinity(t *testing.T) {
	var a assert.Affinity
	test.ExpectSuccess(t, a.Check())

	a.Bind()
	test.ExpectSuccess(t, a.Check())

	other := make(chan bool)
	go func() {
		other <- a.Check()
	}()
	test.ExpectFailure(t, <-other)

	a.Unbind()
	go func() {
		other <- a.Check()
	}()
	test.ExpectSuccess(t, <-other)
}
