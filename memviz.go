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

package main

import (
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/vidshim/vidshim/blitter"
	"github.com/vidshim/vidshim/curated"
	"github.com/vidshim/vidshim/modeswitch"
)

// the state of the blitter as written by writeMemviz(). the blitter itself is
// not mapped because the frame ring is too large to be usefully drawn
type displayState struct {
	Kind    string
	Session string
	Mode    modeswitch.DisplayMode
	State   string
	Request blitter.BlitRequest
	Stats   blitter.Stats
	Ring    ringState
}

type ringState struct {
	Write int
	Read  int
}

func newDisplayState(blt *blitter.Blitter) *displayState {
	st := &displayState{
		Kind:    blt.Kind().String(),
		Session: blt.Session().String(),
		Mode:    blt.Mode(),
		State:   blt.ModeState().String(),
		Request: blt.LastRequest(),
		Stats:   blt.Stats(),
	}
	st.Ring.Write, st.Ring.Read = blt.Positions()
	return st
}

// writeMemviz writes a graphviz file showing the state of the blitter.
func writeMemviz(filename string, blt *blitter.Blitter) error {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("memviz: %v", err)
	}
	defer f.Close()

	memviz.Map(f, newDisplayState(blt))

	return nil
}
